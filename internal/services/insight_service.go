package services

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
	"paisa/internal/money"
)

// Suggestion tuning knobs, matching the behavior users know: a category is
// "dominant" above 20% of total spending, purchases under smallExpenseLimit
// with more than 10 occurrences are "frequent small expenses", and the
// savings hint proposes a 10% cut.
const (
	defaultAnomalyThreshold = 20.0
	dominantCategoryShare   = 20.0
	smallExpenseLimit       = 10000 // minor units
	frequentExpenseCount    = 10
	savingsCutFraction      = 0.10
)

// insightService derives read-only analytics from the expense ledger. It
// never mutates the ledger or the balance.
type insightService struct {
	db *gorm.DB
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB) InsightServicer {
	return &insightService{db: db}
}

// spendingSince returns per-category amount lists for expenses dated on or
// after the cutoff.
func (s *insightService) spendingSince(days int) (map[string][]int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	var expenses []models.Expense
	if err := s.db.Where("date >= ?", cutoff).Order("id").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byCategory := make(map[string][]int64)
	for _, e := range expenses {
		byCategory[e.Category] = append(byCategory[e.Category], e.Amount)
	}
	return byCategory, nil
}

func sortedCategories(m map[string][]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sum(amounts []int64) int64 {
	var total int64
	for _, a := range amounts {
		total += a
	}
	return total
}

// Anomalies compares this week's spending per category against the
// four-week weekly average and flags categories above the threshold
// percentage increase.
func (s *insightService) Anomalies(thresholdPercentage float64) ([]Anomaly, error) {
	if thresholdPercentage <= 0 {
		thresholdPercentage = defaultAnomalyThreshold
	}

	thisWeek, err := s.spendingSince(7)
	if err != nil {
		return nil, err
	}
	lastMonth, err := s.spendingSince(30)
	if err != nil {
		return nil, err
	}

	alerts := []Anomaly{}
	for _, category := range sortedCategories(thisWeek) {
		weekTotal := sum(thisWeek[category])

		monthAmounts, ok := lastMonth[category]
		if !ok {
			continue
		}
		weeklyAvg := float64(sum(monthAmounts)) / 4

		if weeklyAvg <= 0 {
			continue
		}
		change := (float64(weekTotal) - weeklyAvg) / weeklyAvg * 100
		if change > thresholdPercentage {
			alerts = append(alerts, Anomaly{
				Category:         category,
				Current:          weekTotal,
				Average:          weeklyAvg,
				ChangePercentage: change,
				Message:          fmt.Sprintf("Your spending on %s this week is %.0f%% higher than your average!", category, change),
			})
		}
	}
	return alerts, nil
}

// Suggestions derives cost-saving hints from the last 30 days of spending.
func (s *insightService) Suggestions() ([]Suggestion, error) {
	suggestions := []Suggestion{}

	spending, err := s.spendingSince(30)
	if err != nil {
		return nil, err
	}
	if len(spending) == 0 {
		return suggestions, nil
	}

	categories := sortedCategories(spending)

	var totalSpending int64
	for _, amounts := range spending {
		totalSpending += sum(amounts)
	}

	// Dominant categories.
	for _, category := range categories {
		amount := sum(spending[category])
		if totalSpending == 0 {
			break
		}
		share := float64(amount) / float64(totalSpending) * 100
		if share > dominantCategoryShare {
			suggestions = append(suggestions, Suggestion{
				Type:     "high_category_spending",
				Category: category,
				Amount:   amount,
				Message:  fmt.Sprintf("%s accounts for %.1f%% of your spending (%s). Consider setting a budget!", category, share, money.Format(amount)),
			})
		}
	}

	// Frequent small purchases.
	for _, category := range categories {
		amounts := spending[category]
		if len(amounts) > frequentExpenseCount {
			avg := float64(sum(amounts)) / float64(len(amounts))
			if avg < smallExpenseLimit {
				suggestions = append(suggestions, Suggestion{
					Type:     "frequent_small_expenses",
					Category: category,
					Count:    len(amounts),
					Message:  fmt.Sprintf("You have %d small %s expenses. Consider bulk purchases to save money!", len(amounts), category),
				})
			}
		}
	}

	// One unusually large single expense among the most recent thirty.
	var recent []models.Expense
	if err := s.db.Order("id DESC").Limit(30).Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, e := range recent {
		amounts, ok := spending[e.Category]
		if !ok || len(amounts) == 0 {
			continue
		}
		avg := float64(sum(amounts)) / float64(len(amounts))
		if float64(e.Amount) > avg*2 {
			suggestions = append(suggestions, Suggestion{
				Type:     "high_single_expense",
				Category: e.Category,
				Amount:   e.Amount,
				Message:  fmt.Sprintf("High %s expense of %s detected. Was this necessary?", e.Category, money.Format(e.Amount)),
			})
			break // one is enough
		}
	}

	// One savings hint for a consistently-used category.
	for _, category := range categories {
		amounts := spending[category]
		if len(amounts) >= 4 {
			total := sum(amounts)
			potential := int64(float64(total) * savingsCutFraction)
			suggestions = append(suggestions, Suggestion{
				Type:     "potential_savings",
				Category: category,
				Amount:   potential,
				Message:  fmt.Sprintf("Reducing %s spending by 10%% could save you %s this month!", category, money.Format(potential)),
			})
			break
		}
	}

	return suggestions, nil
}

// Trend groups recent spending by ISO week and labels the direction.
func (s *insightService) Trend(days int) (*Trend, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	var expenses []models.Expense
	if err := s.db.Where("date >= ?", cutoff).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	weekly := make(map[int]int64)
	for _, e := range expenses {
		_, week := e.Date.ISOWeek()
		weekly[week] += e.Amount
	}

	if len(weekly) == 0 {
		return &Trend{Trend: "no_data", WeeklyTotals: weekly}, nil
	}

	weeks := make([]int, 0, len(weekly))
	for w := range weekly {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	first := float64(weekly[weeks[0]])
	last := float64(weekly[weeks[len(weeks)-1]])

	trend := "insufficient_data"
	if len(weeks) >= 2 {
		switch {
		case last > first*1.1:
			trend = "increasing"
		case last < first*0.9:
			trend = "decreasing"
		default:
			trend = "stable"
		}
	}

	var total int64
	for _, w := range weeks {
		total += weekly[w]
	}

	return &Trend{
		Trend:         trend,
		WeeklyTotals:  weekly,
		AverageWeekly: float64(total) / float64(len(weeks)),
	}, nil
}

// Comparison compares month-to-date spending with the previous month,
// optionally restricted to one category.
func (s *insightService) Comparison(category *string) (*MonthComparison, error) {
	now := time.Now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevStart := currentStart.AddDate(0, -1, 0)

	sumWindow := func(from, to time.Time) (int64, error) {
		q := s.db.Model(&models.Expense{}).Where("date >= ? AND date < ?", from, to)
		if category != nil {
			q = q.Where("category = ?", *category)
		}
		var total int64
		if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return total, nil
	}

	current, err := sumWindow(currentStart, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	previous, err := sumWindow(prevStart, currentStart)
	if err != nil {
		return nil, err
	}

	var changePct float64
	if previous > 0 {
		changePct = float64(current-previous) / float64(previous) * 100
	}

	direction := "stable"
	if changePct > 0 {
		direction = "increase"
	} else if changePct < 0 {
		direction = "decrease"
	}

	return &MonthComparison{
		CurrentMonthSpending:  current,
		PreviousMonthSpending: previous,
		ChangeAmount:          current - previous,
		ChangePercentage:      changePct,
		Direction:             direction,
	}, nil
}

// All bundles every insight view.
func (s *insightService) All() (*Insights, error) {
	anomalies, err := s.Anomalies(defaultAnomalyThreshold)
	if err != nil {
		return nil, err
	}
	suggestions, err := s.Suggestions()
	if err != nil {
		return nil, err
	}
	trend, err := s.Trend(30)
	if err != nil {
		return nil, err
	}
	comparison, err := s.Comparison(nil)
	if err != nil {
		return nil, err
	}

	return &Insights{
		Anomalies:   anomalies,
		Suggestions: suggestions,
		Trend:       trend,
		Comparison:  comparison,
	}, nil
}
