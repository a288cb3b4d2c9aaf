package services

import (
	"time"

	"gorm.io/gorm"

	"paisa/internal/models"
	"paisa/internal/pagination"
)

// UserServicer defines the contract for owner-account business logic.
type UserServicer interface {
	RegisterOwner(email, password, name string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// BalanceServicer defines the contract for the single cash balance.
//
// CreditTx and DebitTx mutate the balance inside a caller-supplied database
// transaction; callers must hold the ledger lock for the full span of the
// surrounding operation (see LockLedger).
type BalanceServicer interface {
	Get() (int64, error)
	Info() (*models.Balance, error)
	Set(amount int64) (*models.Balance, error)
	Credit(amount int64) (int64, error)
	Debit(amount int64) (int64, error)
	CreditTx(tx *gorm.DB, amount int64) (int64, error)
	DebitTx(tx *gorm.DB, amount int64) (int64, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	Category *string
	From     *time.Time
	To       *time.Time
}

// ExpenseUpdate holds the optional fields of an expense edit. Nil fields are
// left unchanged.
type ExpenseUpdate struct {
	Category *string
	Amount   *int64
	Note     *string
}

// ExpenseStatistics aggregates the full ledger.
type ExpenseStatistics struct {
	TotalExpenses   int64   `json:"total_expenses"`
	TotalSpent      int64   `json:"total_spent"`
	AverageExpense  float64 `json:"average_expense"`
	MaxExpense      int64   `json:"max_expense"`
	MinExpense      int64   `json:"min_expense"`
	CategoriesCount int64   `json:"categories_count"`
}

// ExpenseServicer defines the contract for the expense ledger. Every
// mutation keeps the stored balance consistent with the ledger: the balance
// adjustment runs first and the ledger change is abandoned when it fails.
type ExpenseServicer interface {
	Create(category string, amount int64, note string, deductFromBalance bool) (*models.Expense, error)
	GetByID(id string) (*models.Expense, error)
	List(page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	Update(id string, update ExpenseUpdate) (*models.Expense, error)
	Delete(id string) error
	TotalSpent() (int64, error)
	Summary() (map[string]int64, error)
	Statistics() (*ExpenseStatistics, error)
}

// GoalProgress reports progress toward a single goal.
type GoalProgress struct {
	Goal        models.Goal `json:"goal"`
	Percentage  float64     `json:"percentage"`
	Remaining   int64       `json:"remaining"`
	IsCompleted bool        `json:"is_completed"`
}

// GoalAlert is a user-facing notification about an active goal.
type GoalAlert struct {
	Type     string `json:"type"` // near_completion, completed, deadline_approaching, deadline_passed
	GoalID   uint   `json:"goal_id"`
	GoalName string `json:"goal_name"`
	Message  string `json:"message"`
}

// GoalSummary aggregates all goals.
type GoalSummary struct {
	TotalGoals        int     `json:"total_goals"`
	ActiveGoals       int     `json:"active_goals"`
	CompletedGoals    int     `json:"completed_goals"`
	TotalTargetAmount int64   `json:"total_target_amount"`
	TotalSavedAmount  int64   `json:"total_saved_amount"`
	OverallProgress   float64 `json:"overall_progress"`
}

// GoalServicer defines the contract for savings goals. Contribute is the
// combined funded-contribution operation: when deductFromBalance is set the
// balance debit and the progress update commit or roll back together.
type GoalServicer interface {
	Create(name string, targetAmount int64, deadline *time.Time, lockAmount bool) (*models.Goal, error)
	GetByID(id uint) (*models.Goal, error)
	List(page pagination.PageRequest, status *models.GoalStatus) (*pagination.PageResponse[models.Goal], error)
	Contribute(goalID uint, amount int64, deductFromBalance bool) (*models.Goal, error)
	Cancel(goalID uint) (*models.Goal, error)
	DeleteByID(goalID uint) error
	DeleteByName(name string) error
	Progress(goalID uint) (*GoalProgress, error)
	Alerts() ([]GoalAlert, error)
	TotalLocked() (int64, error)
	AvailableBalance() (int64, error)
	Summary() (*GoalSummary, error)
}

// Budget status levels, ordered from calm to loud.
const (
	BudgetLevelSafe     = "safe"
	BudgetLevelCaution  = "caution"
	BudgetLevelWarning  = "warning"
	BudgetLevelExceeded = "exceeded"
)

// BudgetStatusReport is the on-demand spending-vs-limit view of one budget.
type BudgetStatusReport struct {
	Budget     models.Budget `json:"budget"`
	Spent      int64         `json:"spent"`
	Percentage float64       `json:"percentage"`
	Remaining  int64         `json:"remaining"`
	Level      string        `json:"level"`
	IsExceeded bool          `json:"is_exceeded"`
}

// BudgetAlert is a user-facing notification about an active budget.
type BudgetAlert struct {
	Type     string `json:"type"` // warning, exceeded
	BudgetID uint   `json:"budget_id"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// BudgetSummary aggregates all active budgets.
type BudgetSummary struct {
	TotalBudgets      int     `json:"total_budgets"`
	SafeCount         int     `json:"safe_count"`
	WarningCount      int     `json:"warning_count"`
	ExceededCount     int     `json:"exceeded_count"`
	TotalBudgetAmount int64   `json:"total_budget_amount"`
	TotalSpent        int64   `json:"total_spent"`
	OverallPercentage float64 `json:"overall_percentage"`
}

// BudgetServicer defines the contract for spending budgets. Budgets are a
// read-only consumer of the expense ledger: spending is recomputed from the
// ledger on every status call, never cached.
type BudgetServicer interface {
	Create(category string, amount int64, period models.BudgetPeriod, alertThreshold int) (*models.Budget, error)
	GetByID(id uint) (*models.Budget, error)
	List(page pagination.PageRequest, status *models.BudgetStatus) (*pagination.PageResponse[models.Budget], error)
	ActiveBudgets() ([]models.Budget, error)
	Update(id uint, amount *int64, alertThreshold *int) (*models.Budget, error)
	DeleteByID(id uint) error
	DeleteByCategory(category string) error
	Renew(id uint) (*models.Budget, error)
	Status(id uint) (*BudgetStatusReport, error)
	Alerts() ([]BudgetAlert, error)
	Summary() (*BudgetSummary, error)
	CategoryBudget(category string, period models.BudgetPeriod) (*models.Budget, error)
	SweepExpired() (int64, error)
}

// Anomaly flags a category whose recent spending runs well above its
// historical average.
type Anomaly struct {
	Category         string  `json:"category"`
	Current          int64   `json:"current"`
	Average          float64 `json:"average"`
	ChangePercentage float64 `json:"change_percentage"`
	Message          string  `json:"message"`
}

// Suggestion is a derived cost-saving hint.
type Suggestion struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   int64  `json:"amount,omitempty"`
	Count    int    `json:"count,omitempty"`
	Message  string `json:"message"`
}

// Trend summarizes week-over-week spending direction.
type Trend struct {
	Trend         string        `json:"trend"` // increasing, decreasing, stable, insufficient_data, no_data
	WeeklyTotals  map[int]int64 `json:"weekly_totals"`
	AverageWeekly float64       `json:"average_weekly"`
}

// MonthComparison compares this month's spending to last month's.
type MonthComparison struct {
	CurrentMonthSpending  int64   `json:"current_month_spending"`
	PreviousMonthSpending int64   `json:"previous_month_spending"`
	ChangeAmount          int64   `json:"change_amount"`
	ChangePercentage      float64 `json:"change_percentage"`
	Direction             string  `json:"direction"` // increase, decrease, stable
}

// Insights bundles every derived view.
type Insights struct {
	Anomalies   []Anomaly        `json:"anomalies"`
	Suggestions []Suggestion     `json:"suggestions"`
	Trend       *Trend           `json:"trend"`
	Comparison  *MonthComparison `json:"comparison"`
}

// InsightServicer defines read-only analytics over the expense ledger.
type InsightServicer interface {
	Anomalies(thresholdPercentage float64) ([]Anomaly, error)
	Suggestions() ([]Suggestion, error)
	Trend(days int) (*Trend, error)
	Comparison(category *string) (*MonthComparison, error)
	All() (*Insights, error)
}

// CategoryTotal pairs a category with its spending total.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
}

// Report is the periodic spending report consumed by presentation layers.
// DailyAverage is in minor currency units.
type Report struct {
	Period           string           `json:"period"`
	StartDate        string           `json:"start_date"`
	EndDate          string           `json:"end_date"`
	TotalSpent       int64            `json:"total_spent"`
	DailyAverage     float64          `json:"daily_average"`
	RemainingBalance int64            `json:"remaining_balance"`
	CategoryTotals   map[string]int64 `json:"category_totals"`
	TopCategories    []CategoryTotal  `json:"top_categories"`
	NumExpenses      int              `json:"num_expenses"`
}

// ReportServicer defines the contract for periodic reports.
type ReportServicer interface {
	Generate(period string) (*Report, error)
}
