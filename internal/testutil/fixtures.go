package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"paisa/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// SeedBalance sets the singleton balance row to the given amount (in cents).
func SeedBalance(t *testing.T, db *gorm.DB, amount int64) *models.Balance {
	t.Helper()

	balance := &models.Balance{
		ID:          models.BalanceRowID,
		Amount:      amount,
		LastUpdated: time.Now().Truncate(24 * time.Hour),
	}
	if err := db.Save(balance).Error; err != nil {
		t.Fatalf("failed to seed test balance: %v", err)
	}
	return balance
}

// CreateTestExpense creates an expense dated now for the given category and
// amount (in cents). It writes the ledger row directly without touching the
// balance.
func CreateTestExpense(t *testing.T, db *gorm.DB, category string, amount int64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, category, amount, time.Now())
}

// CreateTestExpenseOn creates an expense with an explicit date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, category string, amount int64, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     fmt.Sprintf("Test Expense %d", nextID()),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestGoal creates an active savings goal with the given target (in cents).
func CreateTestGoal(t *testing.T, db *gorm.DB, target int64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		Name:         fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		Status:       models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestBudget creates an active budget for the given category and
// limit (in cents), covering a month window starting today.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, amount int64) *models.Budget {
	t.Helper()

	start := time.Now().Truncate(24 * time.Hour)
	budget := &models.Budget{
		Category:       category,
		Amount:         amount,
		Period:         models.BudgetPeriodMonth,
		StartDate:      start,
		EndDate:        start.AddDate(0, 0, models.BudgetPeriodMonth.Days()),
		AlertThreshold: models.DefaultAlertThreshold,
		Status:         models.BudgetStatusActive,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
