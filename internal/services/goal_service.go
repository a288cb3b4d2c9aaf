package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
	"paisa/internal/money"
	"paisa/internal/pagination"
)

// goalAlertDeadlineWindow is how close a deadline must be before the
// deadline_approaching alert fires.
const goalAlertDeadlineWindow = 7

// goalService handles savings-goal business logic.
type goalService struct {
	db      *gorm.DB
	balance BalanceServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, balance BalanceServicer) GoalServicer {
	return &goalService{db: db, balance: balance}
}

// Create adds a new active goal with zero progress.
func (s *goalService) Create(name string, targetAmount int64, deadline *time.Time, lockAmount bool) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "target amount must be greater than zero")
	}

	goal := &models.Goal{
		Name:         name,
		TargetAmount: targetAmount,
		Deadline:     deadline,
		Status:       models.GoalStatusActive,
		LockAmount:   lockAmount,
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetByID retrieves a goal.
func (s *goalService) GetByID(id uint) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// List returns a paginated list of goals, optionally filtered by status.
func (s *goalService) List(page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).Order("id").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Contribute adds amount to an active goal's progress. With
// deductFromBalance the amount is debited first, inside the same database
// transaction, so a failed debit leaves the goal untouched and a failed
// progress write rolls the debit back. Crossing the target completes the
// goal; progress is not capped at the target.
func (s *goalService) Contribute(goalID uint, amount int64, deductFromBalance bool) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var result *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.First(&goal, goalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.Status != models.GoalStatusActive {
			return apperrors.ErrGoalNotActive
		}

		if deductFromBalance {
			if _, err := s.balance.DebitTx(tx, amount); err != nil {
				return err
			}
		}

		goal.CurrentAmount += amount
		if goal.CurrentAmount >= goal.TargetAmount {
			goal.Status = models.GoalStatusCompleted
			completed := today()
			goal.CompletedDate = &completed
		}

		if err := tx.Save(&goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = &goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel moves an active goal to the terminal cancelled state. The status
// check and the write run in one transaction so a goal cannot be cancelled
// twice.
func (s *goalService) Cancel(goalID uint) (*models.Goal, error) {
	var result *models.Goal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		if err := tx.First(&goal, goalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if goal.Status != models.GoalStatusActive {
			return apperrors.ErrGoalNotActive
		}

		cancelled := today()
		goal.Status = models.GoalStatusCancelled
		goal.CancelledDate = &cancelled
		if err := tx.Save(&goal).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		result = &goal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByID permanently removes a goal.
func (s *goalService) DeleteByID(goalID uint) error {
	res := s.db.Delete(&models.Goal{}, goalID)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// DeleteByName permanently removes every goal with the given name.
func (s *goalService) DeleteByName(name string) error {
	res := s.db.Where("name = ?", name).Delete(&models.Goal{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrGoalNotFound
	}
	return nil
}

// Progress returns percentage and remaining-amount information for a goal.
func (s *goalService) Progress(goalID uint) (*GoalProgress, error) {
	goal, err := s.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	return &GoalProgress{
		Goal:        *goal,
		Percentage:  goal.Percentage(),
		Remaining:   goal.Remaining(),
		IsCompleted: goal.Status == models.GoalStatusCompleted,
	}, nil
}

func (s *goalService) activeGoals() ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.db.Where("status = ?", models.GoalStatusActive).Order("id").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

// Alerts surveys active goals for near-completion and deadline conditions.
func (s *goalService) Alerts() ([]GoalAlert, error) {
	goals, err := s.activeGoals()
	if err != nil {
		return nil, err
	}

	now := today()
	alerts := []GoalAlert{}
	for _, goal := range goals {
		pct := goal.Percentage()

		if pct >= 80 && pct < 100 {
			alerts = append(alerts, GoalAlert{
				Type:     "near_completion",
				GoalID:   goal.ID,
				GoalName: goal.Name,
				Message:  fmt.Sprintf("Almost there! Only %s left to reach '%s'", money.Format(goal.Remaining()), goal.Name),
			})
		}
		if pct >= 100 {
			alerts = append(alerts, GoalAlert{
				Type:     "completed",
				GoalID:   goal.ID,
				GoalName: goal.Name,
				Message:  fmt.Sprintf("Congratulations! You've reached your goal: '%s'", goal.Name),
			})
		}

		if goal.Deadline != nil {
			daysLeft := int(goal.Deadline.Sub(now).Hours() / 24)
			switch {
			case daysLeft >= 0 && daysLeft <= goalAlertDeadlineWindow && pct < 100:
				alerts = append(alerts, GoalAlert{
					Type:     "deadline_approaching",
					GoalID:   goal.ID,
					GoalName: goal.Name,
					Message:  fmt.Sprintf("%d days left for '%s' (%s remaining)", daysLeft, goal.Name, money.Format(goal.Remaining())),
				})
			case daysLeft < 0 && pct < 100:
				alerts = append(alerts, GoalAlert{
					Type:     "deadline_passed",
					GoalID:   goal.ID,
					GoalName: goal.Name,
					Message:  fmt.Sprintf("Deadline passed for '%s'", goal.Name),
				})
			}
		}
	}
	return alerts, nil
}

// TotalLocked sums the remaining target of active goals flagged with
// lock_amount.
func (s *goalService) TotalLocked() (int64, error) {
	goals, err := s.activeGoals()
	if err != nil {
		return 0, err
	}

	var total int64
	for _, goal := range goals {
		if goal.LockAmount {
			total += goal.Remaining()
		}
	}
	return total, nil
}

// AvailableBalance returns the balance minus locked goal amounts, floored
// at zero. Advisory only: ordinary debits are never blocked by locks.
func (s *goalService) AvailableBalance() (int64, error) {
	balance, err := s.balance.Get()
	if err != nil {
		return 0, err
	}
	locked, err := s.TotalLocked()
	if err != nil {
		return 0, err
	}
	if available := balance - locked; available > 0 {
		return available, nil
	}
	return 0, nil
}

// Summary aggregates counts and totals across all goals.
func (s *goalService) Summary() (*GoalSummary, error) {
	var goals []models.Goal
	if err := s.db.Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &GoalSummary{TotalGoals: len(goals)}
	for _, goal := range goals {
		switch goal.Status {
		case models.GoalStatusActive:
			summary.ActiveGoals++
			summary.TotalTargetAmount += goal.TargetAmount
			summary.TotalSavedAmount += goal.CurrentAmount
		case models.GoalStatusCompleted:
			summary.CompletedGoals++
		}
	}
	if summary.TotalTargetAmount > 0 {
		summary.OverallProgress = float64(summary.TotalSavedAmount) / float64(summary.TotalTargetAmount) * 100
	}
	return summary, nil
}
