package models

import "time"

// BalanceRowID is the primary key of the single balance row. The balance is
// a singleton: it is initialized to zero on first use and only ever
// overwritten, never deleted.
const BalanceRowID uint = 1

// Balance is the current available funds, stored in minor currency units.
type Balance struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	Amount      int64     `gorm:"not null;default:0" json:"balance"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
}
