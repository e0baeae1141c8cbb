package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one synthetic customer record in a transactions CSV.
type Transaction struct {
	ID               uuid.UUID
	Customer         string
	Amount           decimal.Decimal // last transaction amount
	TransactionCount int             // transactions in the trailing 30 days
	DaysSinceLast    int
	Balance          decimal.Decimal // may be negative (overdrawn)
	Label            int             // 1 = customer transacts again
}

// Positive reports whether the record is labeled as a future transaction.
func (t Transaction) Positive() bool {
	return t.Label == 1
}
