package models

import "time"

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// Goal is a savings target with accumulated progress. CurrentAmount only
// ever increases; completed and cancelled are terminal states.
type Goal struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	TargetAmount  int64      `gorm:"type:bigint;not null" json:"target_amount"`
	CurrentAmount int64      `gorm:"type:bigint;not null;default:0" json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Status        GoalStatus `gorm:"not null;default:'active'" json:"status"`
	// LockAmount marks the remaining target as advisory-reserved: it is
	// subtracted from the "available" balance figure but never blocks debits.
	LockAmount    bool       `gorm:"not null;default:false" json:"lock_amount"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	CancelledDate *time.Time `json:"cancelled_date,omitempty"`
	CreatedAt     time.Time  `json:"created_date"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Remaining returns how much is still needed to reach the target, floored
// at zero.
func (g *Goal) Remaining() int64 {
	if r := g.TargetAmount - g.CurrentAmount; r > 0 {
		return r
	}
	return 0
}

// Percentage returns progress toward the target as a percentage. Progress
// past the target is not capped.
func (g *Goal) Percentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return float64(g.CurrentAmount) / float64(g.TargetAmount) * 100
}
