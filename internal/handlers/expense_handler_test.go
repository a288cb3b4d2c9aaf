package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"paisa/internal/apperrors"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
	"paisa/internal/validator"
)

// --- mock expense service ---

type mockExpenseService struct {
	createFn     func(category string, amount int64, note string, deductFromBalance bool) (*models.Expense, error)
	getByIDFn    func(id string) (*models.Expense, error)
	listFn       func(page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	updateFn     func(id string, update services.ExpenseUpdate) (*models.Expense, error)
	deleteFn     func(id string) error
	totalSpentFn func() (int64, error)
	summaryFn    func() (map[string]int64, error)
	statisticsFn func() (*services.ExpenseStatistics, error)
}

func (m *mockExpenseService) Create(category string, amount int64, note string, deductFromBalance bool) (*models.Expense, error) {
	if m.createFn != nil {
		return m.createFn(category, amount, note, deductFromBalance)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetByID(id string) (*models.Expense, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(id)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) List(page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if m.listFn != nil {
		return m.listFn(page, filter)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) Update(id string, update services.ExpenseUpdate) (*models.Expense, error) {
	if m.updateFn != nil {
		return m.updateFn(id, update)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

func (m *mockExpenseService) TotalSpent() (int64, error) {
	if m.totalSpentFn != nil {
		return m.totalSpentFn()
	}
	return 0, nil
}

func (m *mockExpenseService) Summary() (map[string]int64, error) {
	if m.summaryFn != nil {
		return m.summaryFn()
	}
	return map[string]int64{}, nil
}

func (m *mockExpenseService) Statistics() (*services.ExpenseStatistics, error) {
	if m.statisticsFn != nil {
		return m.statisticsFn()
	}
	return &services.ExpenseStatistics{}, nil
}

// verify interface compliance
var _ services.ExpenseServicer = (*mockExpenseService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses", handler.GetExpenses)
	auth.GET("/expenses/summary", handler.GetSummary)
	auth.GET("/expenses/statistics", handler.GetStatistics)
	auth.GET("/expenses/:id", handler.GetExpense)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotDeduct *bool
		svc := &mockExpenseService{
			createFn: func(category string, amount int64, note string, deduct bool) (*models.Expense, error) {
				gotDeduct = &deduct
				return &models.Expense{
					Base:     models.Base{ID: "0195e33a-0000-7000-8000-000000000001"},
					Category: category,
					Amount:   amount,
					Note:     note,
				}, nil
			},
		}
		handler := NewExpenseHandler(svc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category":"Groceries","amount":20000,"note":"weekly shop"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDeduct == nil || !*gotDeduct {
			t.Error("expected deduct_from_balance to default to true")
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["category"] != "Groceries" {
			t.Errorf("expected category Groceries, got %v", expense["category"])
		}
	})

	t.Run("deduction can be disabled", func(t *testing.T) {
		var gotDeduct *bool
		svc := &mockExpenseService{
			createFn: func(category string, amount int64, note string, deduct bool) (*models.Expense, error) {
				gotDeduct = &deduct
				return &models.Expense{}, nil
			},
		}
		handler := NewExpenseHandler(svc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category":"Groceries","amount":20000,"deduct_from_balance":false}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotDeduct == nil || *gotDeduct {
			t.Error("expected deduct_from_balance false to be passed through")
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"category":"Groceries"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on insufficient funds", func(t *testing.T) {
		svc := &mockExpenseService{
			createFn: func(string, int64, string, bool) (*models.Expense, error) {
				return nil, apperrors.ErrInsufficientFunds
			},
		}
		handler := NewExpenseHandler(svc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"category":"Groceries","amount":20000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_FUNDS")
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		var gotFilter services.ExpenseFilter
		svc := &mockExpenseService{
			listFn: func(page pagination.PageRequest, filter services.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
				gotFilter = filter
				resp := pagination.NewPageResponse([]models.Expense{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		handler := NewExpenseHandler(svc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?category=Groceries&from=2026-08-01", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Groceries" {
			t.Error("expected category filter to be passed through")
		}
		if gotFilter.From == nil {
			t.Error("expected from filter to be passed through")
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?from=yesterday", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockExpenseService{
			deleteFn: func(string) error { return apperrors.ErrExpenseNotFound },
		}
		handler := NewExpenseHandler(svc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/unknown-id", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})
}
