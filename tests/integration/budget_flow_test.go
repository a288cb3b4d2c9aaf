package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_SpendingAgainstLimit(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerOwner(t)
	app.setBalance(t, token, 100000)

	// Monthly budget of 100.00 for groceries, alerting at 80%.
	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Groceries","amount":10000,"period":"month"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(float64)
	if budget["alert_threshold"].(float64) != 80 {
		t.Errorf("expected default threshold 80, got %v", budget["alert_threshold"])
	}

	statusPath := fmt.Sprintf("/api/v1/budgets/%.0f/status", budgetID)

	// Nothing spent yet.
	rec = app.request("GET", statusPath, "", token)
	status := parseJSON(t, rec)
	if status["spent"].(float64) != 0 {
		t.Errorf("expected 0 spent, got %v", status["spent"])
	}
	if status["level"].(string) != "safe" {
		t.Errorf("expected level safe, got %v", status["level"])
	}

	// Spend 85.00 in the category; the budget is now in the warning band.
	rec = app.request("POST", "/api/v1/expenses",
		`{"category":"Groceries","amount":8500}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", statusPath, "", token)
	status = parseJSON(t, rec)
	if status["spent"].(float64) != 8500 {
		t.Errorf("expected 8500 spent, got %v", status["spent"])
	}
	if status["level"].(string) != "warning" {
		t.Errorf("expected level warning at 85%%, got %v", status["level"])
	}
	if status["remaining"].(float64) != 1500 {
		t.Errorf("expected 1500 remaining, got %v", status["remaining"])
	}

	// Push past the limit.
	rec = app.request("POST", "/api/v1/expenses",
		`{"category":"Groceries","amount":3000}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", statusPath, "", token)
	status = parseJSON(t, rec)
	if status["level"].(string) != "exceeded" {
		t.Errorf("expected level exceeded, got %v", status["level"])
	}
	if status["is_exceeded"].(bool) != true {
		t.Error("expected is_exceeded true")
	}
	if status["remaining"].(float64) != 0 {
		t.Errorf("expected remaining floored at 0, got %v", status["remaining"])
	}

	// The warning shows up in the alerts feed.
	rec = app.request("GET", "/api/v1/budgets/alerts", "", token)
	alerts := parseJSON(t, rec)["alerts"].([]interface{})
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	alert := alerts[0].(map[string]interface{})
	if alert["type"].(string) != "exceeded" {
		t.Errorf("expected alert type exceeded, got %v", alert["type"])
	}
}

func TestBudgetFlow_OverallBudgetCountsEverything(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerOwner(t)
	app.setBalance(t, token, 100000)

	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Overall","amount":50000,"period":"week"}`, token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	app.request("POST", "/api/v1/expenses", `{"category":"Groceries","amount":5000}`, token)
	app.request("POST", "/api/v1/expenses", `{"category":"Transportation","amount":3000}`, token)

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%.0f/status", budgetID), "", token)
	status := parseJSON(t, rec)
	if status["spent"].(float64) != 8000 {
		t.Errorf("expected 8000 spent across categories, got %v", status["spent"])
	}
}

func TestBudgetFlow_RenewStartsFreshWindow(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerOwner(t)

	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Entertainment","amount":20000,"period":"week","alert_threshold":70}`, token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	rec = app.request("POST", fmt.Sprintf("/api/v1/budgets/%.0f/renew", budgetID), "", token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	renewed := parseJSON(t, rec)["budget"].(map[string]interface{})
	if renewed["id"].(float64) == budgetID {
		t.Error("expected renewal to create a new budget")
	}
	if renewed["category"].(string) != "Entertainment" {
		t.Errorf("expected category carried over, got %v", renewed["category"])
	}
	if renewed["alert_threshold"].(float64) != 70 {
		t.Errorf("expected threshold carried over, got %v", renewed["alert_threshold"])
	}
	if renewed["status"].(string) != "active" {
		t.Errorf("expected renewed budget active, got %v", renewed["status"])
	}
}

func TestBudgetFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerOwner(t)

	rec := app.request("POST", "/api/v1/budgets",
		`{"category":"Shopping","amount":10000,"period":"month"}`, token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID),
		`{"amount":15000,"alert_threshold":90}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["amount"].(float64) != 15000 {
		t.Errorf("expected amount 15000, got %v", budget["amount"])
	}

	rec = app.request("POST", "/api/v1/budgets/delete-by-category",
		`{"category":"Shopping"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%.0f/status", budgetID), "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d: %s", rec.Code, rec.Body.String())
	}
}
