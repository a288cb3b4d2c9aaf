package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
	"paisa/internal/money"
	"paisa/internal/pagination"
)

// budgetService handles budget business logic. It is a read-only consumer
// of the expense ledger: spending against a limit is recomputed from the
// ledger on demand and never cached on the budget row.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Create adds a new active budget whose window starts today and runs for
// the period's length. A zero alertThreshold takes the default.
func (s *budgetService) Create(category string, amount int64, period models.BudgetPeriod, alertThreshold int) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget category is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "budget amount must be greater than zero")
	}
	if period != models.BudgetPeriodWeek && period != models.BudgetPeriodMonth {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be week or month")
	}
	if alertThreshold == 0 {
		alertThreshold = models.DefaultAlertThreshold
	}
	if alertThreshold < 0 || alertThreshold > 100 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "alert threshold must be between 0 and 100")
	}

	start := today()
	budget := &models.Budget{
		Category:       category,
		Amount:         amount,
		Period:         period,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, period.Days()),
		AlertThreshold: alertThreshold,
		Status:         models.BudgetStatusActive,
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// GetByID retrieves a budget.
func (s *budgetService) GetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// List returns a paginated list of budgets, optionally filtered by status.
// Expiry is swept first so the statuses are current.
func (s *budgetService) List(page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error) {
	if _, err := s.SweepExpired(); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Budget{})
	if status != nil {
		base = base.Where("status = ?", *status)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Scopes(pagination.Paginate(page)).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// ActiveBudgets sweeps expiry and returns the budgets still active.
func (s *budgetService) ActiveBudgets() ([]models.Budget, error) {
	if _, err := s.SweepExpired(); err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Where("status = ?", models.BudgetStatusActive).Order("id").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// SweepExpired marks active budgets whose window has ended as expired and
// returns how many were flipped.
func (s *budgetService) SweepExpired() (int64, error) {
	res := s.db.Model(&models.Budget{}).
		Where("status = ? AND end_date < ?", models.BudgetStatusActive, today()).
		Update("status", models.BudgetStatusExpired)
	if res.Error != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	return res.RowsAffected, nil
}

// Update edits a budget's limit and alert threshold.
func (s *budgetService) Update(id uint, amount *int64, alertThreshold *int) (*models.Budget, error) {
	if amount != nil && *amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "budget amount must be greater than zero")
	}
	if alertThreshold != nil && (*alertThreshold < 0 || *alertThreshold > 100) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "alert threshold must be between 0 and 100")
	}

	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != nil {
		updates["amount"] = *amount
	}
	if alertThreshold != nil {
		updates["alert_threshold"] = *alertThreshold
	}
	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return budget, nil
}

// DeleteByID removes a budget.
func (s *budgetService) DeleteByID(id uint) error {
	res := s.db.Delete(&models.Budget{}, id)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// DeleteByCategory removes every budget for the given category.
func (s *budgetService) DeleteByCategory(category string) error {
	res := s.db.Where("category = ?", category).Delete(&models.Budget{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBudgetNotFound
	}
	return nil
}

// Renew creates a fresh budget with the same parameters, windowed from
// today. The source budget may already be expired.
func (s *budgetService) Renew(id uint) (*models.Budget, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.Create(budget.Category, budget.Amount, budget.Period, budget.AlertThreshold)
}

// spending recomputes the ledger total for the budget's window and category.
func (s *budgetService) spending(budget *models.Budget) (int64, error) {
	q := s.db.Model(&models.Expense{}).
		Where("date >= ? AND date <= ?", budget.StartDate, budget.EndDate)
	if budget.Category != models.BudgetCategoryOverall {
		q = q.Where("category = ?", budget.Category)
	}

	var spent int64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&spent).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return spent, nil
}

func (s *budgetService) statusOf(budget *models.Budget) (*BudgetStatusReport, error) {
	spent, err := s.spending(budget)
	if err != nil {
		return nil, err
	}

	var percentage float64
	if budget.Amount > 0 {
		percentage = float64(spent) / float64(budget.Amount) * 100
	}

	remaining := budget.Amount - spent
	if remaining < 0 {
		remaining = 0
	}

	threshold := float64(budget.AlertThreshold)
	var level string
	switch {
	case percentage >= 100:
		level = BudgetLevelExceeded
	case percentage >= threshold:
		level = BudgetLevelWarning
	case percentage >= threshold*0.5:
		level = BudgetLevelCaution
	default:
		level = BudgetLevelSafe
	}

	return &BudgetStatusReport{
		Budget:     *budget,
		Spent:      spent,
		Percentage: percentage,
		Remaining:  remaining,
		Level:      level,
		IsExceeded: percentage >= 100,
	}, nil
}

// Status reports spending against the budget's limit, recomputed from the
// ledger.
func (s *budgetService) Status(id uint) (*BudgetStatusReport, error) {
	budget, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	return s.statusOf(budget)
}

// Alerts surveys active budgets for threshold and overspend conditions.
func (s *budgetService) Alerts() ([]BudgetAlert, error) {
	budgets, err := s.ActiveBudgets()
	if err != nil {
		return nil, err
	}

	alerts := []BudgetAlert{}
	for i := range budgets {
		status, err := s.statusOf(&budgets[i])
		if err != nil {
			return nil, err
		}

		threshold := float64(budgets[i].AlertThreshold)
		switch {
		case status.Percentage >= 100:
			overspent := status.Spent - budgets[i].Amount
			alerts = append(alerts, BudgetAlert{
				Type:     "exceeded",
				BudgetID: budgets[i].ID,
				Category: budgets[i].Category,
				Message: fmt.Sprintf("%s %sly budget exceeded by %s!",
					budgets[i].Category, budgets[i].Period, money.Format(overspent)),
			})
		case status.Percentage >= threshold:
			alerts = append(alerts, BudgetAlert{
				Type:     "warning",
				BudgetID: budgets[i].ID,
				Category: budgets[i].Category,
				Message: fmt.Sprintf("%s %sly budget at %.1f%% (%s left)",
					budgets[i].Category, budgets[i].Period, status.Percentage, money.Format(status.Remaining)),
			})
		}
	}
	return alerts, nil
}

// Summary aggregates all active budgets.
func (s *budgetService) Summary() (*BudgetSummary, error) {
	budgets, err := s.ActiveBudgets()
	if err != nil {
		return nil, err
	}

	summary := &BudgetSummary{TotalBudgets: len(budgets)}
	for i := range budgets {
		status, err := s.statusOf(&budgets[i])
		if err != nil {
			return nil, err
		}

		summary.TotalBudgetAmount += budgets[i].Amount
		summary.TotalSpent += status.Spent

		switch status.Level {
		case BudgetLevelExceeded:
			summary.ExceededCount++
		case BudgetLevelWarning, BudgetLevelCaution:
			summary.WarningCount++
		default:
			summary.SafeCount++
		}
	}
	if summary.TotalBudgetAmount > 0 {
		summary.OverallPercentage = float64(summary.TotalSpent) / float64(summary.TotalBudgetAmount) * 100
	}
	return summary, nil
}

// CategoryBudget finds the active budget for a category and period.
func (s *budgetService) CategoryBudget(category string, period models.BudgetPeriod) (*models.Budget, error) {
	budgets, err := s.ActiveBudgets()
	if err != nil {
		return nil, err
	}
	for i := range budgets {
		if budgets[i].Category == category && budgets[i].Period == period {
			return &budgets[i], nil
		}
	}
	return nil, apperrors.ErrBudgetNotFound
}
