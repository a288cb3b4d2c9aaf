package models

import "time"

// BudgetPeriod is the recurring window a budget covers.
type BudgetPeriod string

const (
	BudgetPeriodWeek  BudgetPeriod = "week"
	BudgetPeriodMonth BudgetPeriod = "month"
)

// Days returns the number of days in the period window.
func (p BudgetPeriod) Days() int {
	if p == BudgetPeriodWeek {
		return 7
	}
	return 30
}

// BudgetStatus represents the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetStatusActive  BudgetStatus = "active"
	BudgetStatusExpired BudgetStatus = "expired"
)

// BudgetCategoryOverall is the sentinel category matching every expense.
const BudgetCategoryOverall = "Overall"

// DefaultAlertThreshold is the percentage of the limit at which a budget
// starts alerting.
const DefaultAlertThreshold = 80

// Budget is a spending limit for a category over a week or month window.
// Spending against the limit is always recomputed from the expense ledger;
// budgets never cache a running total.
type Budget struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Category       string       `gorm:"not null;index" json:"category"`
	Amount         int64        `gorm:"type:bigint;not null" json:"amount"`
	Period         BudgetPeriod `gorm:"not null" json:"period"`
	StartDate      time.Time    `gorm:"not null" json:"start_date"`
	EndDate        time.Time    `gorm:"not null;index" json:"end_date"`
	AlertThreshold int          `gorm:"not null;default:80" json:"alert_threshold"`
	Status         BudgetStatus `gorm:"not null;default:'active'" json:"status"`
	CreatedAt      time.Time    `json:"created_date"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// Matches reports whether an expense category counts against this budget.
func (b *Budget) Matches(category string) bool {
	return b.Category == BudgetCategoryOverall || b.Category == category
}
