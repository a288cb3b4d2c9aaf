package services

import (
	"errors"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
	"paisa/internal/pagination"
)

// expenseService owns the expense ledger and coordinates every mutation
// with the balance so the two stay consistent. The ordering contract is
// strict: the balance step runs first, and the ledger step only happens if
// the balance step succeeded. Both run in one database transaction under
// the ledger lock, so a failure on either side leaves both untouched.
type expenseService struct {
	db      *gorm.DB
	balance BalanceServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, balance BalanceServicer) ExpenseServicer {
	return &expenseService{db: db, balance: balance}
}

// Create records a new expense dated today. With deductFromBalance the
// amount is debited first; an insufficient balance aborts the whole
// operation and no record is appended.
func (s *expenseService) Create(category string, amount int64, note string, deductFromBalance bool) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	expense := &models.Expense{
		Date:     today(),
		Category: category,
		Amount:   amount,
		Note:     note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if deductFromBalance {
			if _, err := s.balance.DebitTx(tx, amount); err != nil {
				return err
			}
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// GetByID retrieves a single expense.
func (s *expenseService) GetByID(id string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ?", id).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// List returns a paginated, filtered slice of the ledger in insertion order.
func (s *expenseService) List(page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{})
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("id").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	return q
}

// Update edits an expense in place. An amount change adjusts the balance by
// the difference before any field is written: increases debit the delta (and
// can fail on insufficient funds), decreases credit it back. When the
// balance step fails nothing changes.
func (s *expenseService) Update(id string, update ExpenseUpdate) (*models.Expense, error) {
	if update.Amount != nil && *update.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var result *models.Expense
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ?", id).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if update.Amount != nil && *update.Amount != expense.Amount {
			delta := *update.Amount - expense.Amount
			if delta > 0 {
				if _, err := s.balance.DebitTx(tx, delta); err != nil {
					return err
				}
			} else {
				if _, err := s.balance.CreditTx(tx, -delta); err != nil {
					return err
				}
			}
		}

		updates := make(map[string]interface{})
		if update.Category != nil {
			updates["category"] = *update.Category
		}
		if update.Amount != nil {
			updates["amount"] = *update.Amount
		}
		if update.Note != nil {
			updates["note"] = *update.Note
		}
		if len(updates) > 0 {
			if err := tx.Model(&expense).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		result = &expense
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an expense, restoring its amount to the balance first so
// money is never destroyed by deleting its expense. A failure on the credit
// or the delete retains the record unchanged.
func (s *expenseService) Delete(id string) error {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var expense models.Expense
		if err := tx.Where("id = ?", id).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrExpenseNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if _, err := s.balance.CreditTx(tx, expense.Amount); err != nil {
			return err
		}

		if err := tx.Delete(&expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// TotalSpent sums the amounts of all currently-present expenses.
func (s *expenseService) TotalSpent() (int64, error) {
	var total int64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// Summary returns total spending per category.
func (s *expenseService) Summary() (map[string]int64, error) {
	var rows []CategoryTotal
	if err := s.db.Model(&models.Expense{}).
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := make(map[string]int64, len(rows))
	for _, row := range rows {
		summary[row.Category] = row.Amount
	}
	return summary, nil
}

// Statistics aggregates the whole ledger in one scan.
func (s *expenseService) Statistics() (*ExpenseStatistics, error) {
	var row struct {
		TotalExpenses   int64
		TotalSpent      int64
		AverageExpense  float64
		MaxExpense      int64
		MinExpense      int64
		CategoriesCount int64
	}
	if err := s.db.Model(&models.Expense{}).
		Select("COUNT(*) AS total_expenses, " +
			"COALESCE(SUM(amount), 0) AS total_spent, " +
			"COALESCE(AVG(amount), 0) AS average_expense, " +
			"COALESCE(MAX(amount), 0) AS max_expense, " +
			"COALESCE(MIN(amount), 0) AS min_expense, " +
			"COUNT(DISTINCT category) AS categories_count").
		Scan(&row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &ExpenseStatistics{
		TotalExpenses:   row.TotalExpenses,
		TotalSpent:      row.TotalSpent,
		AverageExpense:  row.AverageExpense,
		MaxExpense:      row.MaxExpense,
		MinExpense:      row.MinExpense,
		CategoriesCount: row.CategoriesCount,
	}, nil
}
