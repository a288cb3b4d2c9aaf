package services

import (
	"testing"
	"time"

	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid_week", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.Create("Groceries", 50000, models.BudgetPeriodWeek, 90)
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Status != models.BudgetStatusActive {
			t.Errorf("expected active, got %s", budget.Status)
		}
		wantEnd := budget.StartDate.AddDate(0, 0, 7)
		if !budget.EndDate.Equal(wantEnd) {
			t.Errorf("expected end date %v, got %v", wantEnd, budget.EndDate)
		}
	})

	t.Run("month_window_is_30_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.Create("Rent", 100000, models.BudgetPeriodMonth, 80)
		testutil.AssertNoError(t, err)
		wantEnd := budget.StartDate.AddDate(0, 0, 30)
		if !budget.EndDate.Equal(wantEnd) {
			t.Errorf("expected end date %v, got %v", wantEnd, budget.EndDate)
		}
	})

	t.Run("zero_threshold_takes_default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		budget, err := svc.Create("Groceries", 50000, models.BudgetPeriodMonth, 0)
		testutil.AssertNoError(t, err)
		if budget.AlertThreshold != models.DefaultAlertThreshold {
			t.Errorf("expected threshold %d, got %d", models.DefaultAlertThreshold, budget.AlertThreshold)
		}
	})

	t.Run("invalid_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.Create("Groceries", 50000, models.BudgetPeriod("year"), 80)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.Create("Groceries", 0, models.BudgetPeriodMonth, 80)
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("threshold_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		_, err := svc.Create("Groceries", 50000, models.BudgetPeriodMonth, 101)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestBudgetStatus(t *testing.T) {
	t.Run("levels", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 10000) // threshold 80

		cases := []struct {
			name  string
			spend int64
			level string
		}{
			{"safe", 1000, BudgetLevelSafe},
			{"caution", 3500, BudgetLevelCaution},  // cumulative 4500, 45% >= 40%
			{"warning", 4000, BudgetLevelWarning},  // cumulative 8500, 85% >= 80%
			{"exceeded", 2000, BudgetLevelExceeded}, // cumulative 10500, 105%
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				testutil.CreateTestExpense(t, db, "Groceries", tc.spend)
				status, err := svc.Status(budget.ID)
				testutil.AssertNoError(t, err)
				if status.Level != tc.level {
					t.Errorf("expected level %s, got %s (%.1f%%)", tc.level, status.Level, status.Percentage)
				}
			})
		}
	})

	t.Run("overall_budget_counts_all_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, models.BudgetCategoryOverall, 10000)
		testutil.CreateTestExpense(t, db, "Groceries", 2000)
		testutil.CreateTestExpense(t, db, "Entertainment", 3000)

		status, err := svc.Status(budget.ID)
		testutil.AssertNoError(t, err)
		if status.Spent != 5000 {
			t.Errorf("expected spent 5000, got %d", status.Spent)
		}
	})

	t.Run("ignores_spending_outside_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 10000)
		testutil.CreateTestExpenseOn(t, db, "Groceries", 9000, time.Now().AddDate(0, 0, -60))

		status, err := svc.Status(budget.ID)
		testutil.AssertNoError(t, err)
		if status.Spent != 0 {
			t.Errorf("expected spent 0, got %d", status.Spent)
		}
	})

	t.Run("remaining_floors_at_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 1000)
		testutil.CreateTestExpense(t, db, "Groceries", 2500)

		status, err := svc.Status(budget.ID)
		testutil.AssertNoError(t, err)
		if status.Remaining != 0 {
			t.Errorf("expected remaining 0, got %d", status.Remaining)
		}
		if !status.IsExceeded {
			t.Error("expected exceeded")
		}
	})
}

func TestSweepExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	stale := testutil.CreateTestBudget(t, db, "Groceries", 10000)
	if err := db.Model(stale).Update("end_date", time.Now().AddDate(0, 0, -1)).Error; err != nil {
		t.Fatalf("failed to backdate budget: %v", err)
	}
	testutil.CreateTestBudget(t, db, "Rent", 100000)

	flipped, err := svc.SweepExpired()
	testutil.AssertNoError(t, err)
	if flipped != 1 {
		t.Errorf("expected 1 budget swept, got %d", flipped)
	}

	active, err := svc.ActiveBudgets()
	testutil.AssertNoError(t, err)
	if len(active) != 1 {
		t.Fatalf("expected 1 active budget, got %d", len(active))
	}
	if active[0].Category != "Rent" {
		t.Errorf("expected Rent to survive, got %s", active[0].Category)
	}

	got, err := svc.GetByID(stale.ID)
	testutil.AssertNoError(t, err)
	if got.Status != models.BudgetStatusExpired {
		t.Errorf("expected expired, got %s", got.Status)
	}
}

func TestRenewBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	old := testutil.CreateTestBudget(t, db, "Groceries", 10000)
	if err := db.Model(old).Updates(map[string]interface{}{
		"end_date": time.Now().AddDate(0, 0, -1),
		"status":   models.BudgetStatusExpired,
	}).Error; err != nil {
		t.Fatalf("failed to expire budget: %v", err)
	}

	renewed, err := svc.Renew(old.ID)
	testutil.AssertNoError(t, err)

	if renewed.ID == old.ID {
		t.Error("expected a new budget row")
	}
	if renewed.Category != old.Category || renewed.Amount != old.Amount || renewed.Period != old.Period {
		t.Error("expected renewed budget to carry the same parameters")
	}
	if renewed.Status != models.BudgetStatusActive {
		t.Errorf("expected active, got %s", renewed.Status)
	}
	if !renewed.EndDate.After(time.Now()) {
		t.Error("expected fresh window ending in the future")
	}
}

func TestUpdateBudget(t *testing.T) {
	t.Run("amount_and_threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 10000)

		amount := int64(20000)
		threshold := 50
		_, err := svc.Update(budget.ID, &amount, &threshold)
		testutil.AssertNoError(t, err)

		got, err := svc.GetByID(budget.ID)
		testutil.AssertNoError(t, err)
		if got.Amount != 20000 || got.AlertThreshold != 50 {
			t.Errorf("expected amount 20000 threshold 50, got %d %d", got.Amount, got.AlertThreshold)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		amount := int64(100)
		_, err := svc.Update(9999, &amount, nil)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("by_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		budget := testutil.CreateTestBudget(t, db, "Groceries", 10000)

		err := svc.DeleteByID(budget.ID)
		testutil.AssertNoError(t, err)
		_, err = svc.GetByID(budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("by_category_removes_all", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		testutil.CreateTestBudget(t, db, "Groceries", 10000)
		testutil.CreateTestBudget(t, db, "Groceries", 20000)
		testutil.CreateTestBudget(t, db, "Rent", 100000)

		err := svc.DeleteByCategory("Groceries")
		testutil.AssertNoError(t, err)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.List(page, nil)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 budget left, got %d", result.TotalItems)
		}
	})

	t.Run("by_category_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)

		err := svc.DeleteByCategory("nonexistent")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestBudgetAlerts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	testutil.CreateTestBudget(t, db, "Groceries", 10000)
	testutil.CreateTestExpense(t, db, "Groceries", 8500) // 85%, warning

	testutil.CreateTestBudget(t, db, "Entertainment", 5000)
	testutil.CreateTestExpense(t, db, "Entertainment", 6000) // 120%, exceeded

	testutil.CreateTestBudget(t, db, "Rent", 100000) // quiet

	alerts, err := svc.Alerts()
	testutil.AssertNoError(t, err)
	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(alerts))
	}

	byCategory := make(map[string]string)
	for _, a := range alerts {
		byCategory[a.Category] = a.Type
	}
	if byCategory["Groceries"] != "warning" {
		t.Errorf("expected Groceries warning, got %s", byCategory["Groceries"])
	}
	if byCategory["Entertainment"] != "exceeded" {
		t.Errorf("expected Entertainment exceeded, got %s", byCategory["Entertainment"])
	}
}

func TestBudgetSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	testutil.CreateTestBudget(t, db, "Groceries", 10000)
	testutil.CreateTestExpense(t, db, "Groceries", 1000) // safe

	testutil.CreateTestBudget(t, db, "Entertainment", 5000)
	testutil.CreateTestExpense(t, db, "Entertainment", 6000) // exceeded

	summary, err := svc.Summary()
	testutil.AssertNoError(t, err)

	if summary.TotalBudgets != 2 {
		t.Errorf("expected 2 budgets, got %d", summary.TotalBudgets)
	}
	if summary.SafeCount != 1 || summary.ExceededCount != 1 {
		t.Errorf("expected 1 safe 1 exceeded, got %d safe %d exceeded", summary.SafeCount, summary.ExceededCount)
	}
	if summary.TotalBudgetAmount != 15000 {
		t.Errorf("expected total budget 15000, got %d", summary.TotalBudgetAmount)
	}
	if summary.TotalSpent != 7000 {
		t.Errorf("expected total spent 7000, got %d", summary.TotalSpent)
	}
}

func TestCategoryBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)

	want := testutil.CreateTestBudget(t, db, "Groceries", 10000)

	got, err := svc.CategoryBudget("Groceries", models.BudgetPeriodMonth)
	testutil.AssertNoError(t, err)
	if got.ID != want.ID {
		t.Errorf("expected budget %d, got %d", want.ID, got.ID)
	}

	_, err = svc.CategoryBudget("Groceries", models.BudgetPeriodWeek)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
}
