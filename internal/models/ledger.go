package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	LedgerEntryTypeDebit  = "debit"
	LedgerEntryTypeCredit = "credit"
)

// LedgerEntry is one side of a completed transfer.
// Immutable once written: entries are appended, never updated or removed.
// Counterparty name is a snapshot taken at transfer time, not a live reference.
type LedgerEntry struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	CounterpartyFirstName string
	CounterpartyLastName  string
	CreatedAt             time.Time
	Amount                decimal.Decimal
	Type                  string
}

// Receipt confirms a committed transfer to the caller.
type Receipt struct {
	TransactionID uuid.UUID
	SenderBalance decimal.Decimal
	ProcessedAt   time.Time
}
