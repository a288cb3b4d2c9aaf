package models

import "time"

// Expense is a single ledger entry. Amounts are minor currency units and
// always positive; the sign convention (money spent) lives in the ledger
// semantics, not the record.
type Expense struct {
	Base
	Date     time.Time `gorm:"not null;index" json:"date"`
	Category string    `gorm:"not null;index" json:"category"`
	Amount   int64     `gorm:"type:bigint;not null" json:"amount"`
	Note     string    `json:"note"`
}
