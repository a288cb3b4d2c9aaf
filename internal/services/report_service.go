package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
)

type reportService struct {
	db      *gorm.DB
	balance BalanceServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, balance BalanceServicer) ReportServicer {
	return &reportService{db: db, balance: balance}
}

// Generate builds a spending report for the trailing week or month.
func (s *reportService) Generate(period string) (*Report, error) {
	var days int
	switch period {
	case "week":
		days = 7
	case "month":
		days = 30
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "period must be week or month")
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	var expenses []models.Expense
	if err := s.db.Where("date >= ? AND date <= ?", start, end).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	categoryTotals := make(map[string]int64)
	var totalSpent int64
	for _, e := range expenses {
		categoryTotals[e.Category] += e.Amount
		totalSpent += e.Amount
	}

	top := make([]CategoryTotal, 0, len(categoryTotals))
	for category, amount := range categoryTotals {
		top = append(top, CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Amount != top[j].Amount {
			return top[i].Amount > top[j].Amount
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > 3 {
		top = top[:3]
	}

	remaining, err := s.balance.Get()
	if err != nil {
		return nil, err
	}

	return &Report{
		Period:           period,
		StartDate:        start.Format(time.DateOnly),
		EndDate:          end.Format(time.DateOnly),
		TotalSpent:       totalSpent,
		DailyAverage:     float64(totalSpent) / float64(days),
		RemainingBalance: remaining,
		CategoryTotals:   categoryTotals,
		TopCategories:    top,
		NumExpenses:      len(expenses),
	}, nil
}
