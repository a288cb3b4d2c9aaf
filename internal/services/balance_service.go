package services

import (
	"errors"

	"gorm.io/gorm"

	"paisa/internal/apperrors"
	"paisa/internal/models"
)

// balanceService owns the singleton balance row.
type balanceService struct {
	db *gorm.DB
}

// NewBalanceService creates a new BalanceServicer.
func NewBalanceService(db *gorm.DB) BalanceServicer {
	return &balanceService{db: db}
}

// load reads the balance row, returning a zero-valued row when none has
// been persisted yet (first use).
func (s *balanceService) load(tx *gorm.DB) (*models.Balance, error) {
	var balance models.Balance
	if err := tx.First(&balance, models.BalanceRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Balance{ID: models.BalanceRowID}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &balance, nil
}

// save persists the balance row and stamps the day.
func (s *balanceService) save(tx *gorm.DB, balance *models.Balance) error {
	balance.LastUpdated = today()
	if err := tx.Save(balance).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Get returns the current balance, zero when uninitialized.
func (s *balanceService) Get() (int64, error) {
	balance, err := s.load(s.db)
	if err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

// Info returns the balance together with its last-updated day.
func (s *balanceService) Info() (*models.Balance, error) {
	balance, err := s.load(s.db)
	if err != nil {
		return nil, err
	}
	if balance.LastUpdated.IsZero() {
		balance.LastUpdated = today()
	}
	return balance, nil
}

// Set overwrites the stored balance. Negative amounts are rejected.
func (s *balanceService) Set(amount int64) (*models.Balance, error) {
	if amount < 0 {
		return nil, apperrors.ErrNegativeBalance
	}

	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var result *models.Balance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		balance, err := s.load(tx)
		if err != nil {
			return err
		}
		balance.Amount = amount
		if err := s.save(tx, balance); err != nil {
			return err
		}
		result = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Credit adds amount to the balance and returns the new balance.
func (s *balanceService) Credit(amount int64) (int64, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var newBalance int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		newBalance, txErr = s.CreditTx(tx, amount)
		return txErr
	})
	return newBalance, err
}

// Debit subtracts amount from the balance and returns the new balance. It
// fails without mutating anything when the result would be negative.
func (s *balanceService) Debit(amount int64) (int64, error) {
	ledgerMu.Lock()
	defer ledgerMu.Unlock()

	var newBalance int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		newBalance, txErr = s.DebitTx(tx, amount)
		return txErr
	})
	return newBalance, err
}

// CreditTx adds amount to the balance inside the caller's transaction.
// Non-positive amounts are rejected. The caller holds the ledger lock.
func (s *balanceService) CreditTx(tx *gorm.DB, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	balance, err := s.load(tx)
	if err != nil {
		return 0, err
	}
	balance.Amount += amount
	if err := s.save(tx, balance); err != nil {
		return 0, err
	}
	return balance.Amount, nil
}

// DebitTx subtracts amount from the balance inside the caller's transaction.
// Non-positive amounts are rejected. No partial debit: when the candidate
// balance is negative the stored value is untouched and ErrInsufficientFunds
// is returned. The caller holds the ledger lock.
func (s *balanceService) DebitTx(tx *gorm.DB, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}
	balance, err := s.load(tx)
	if err != nil {
		return 0, err
	}
	candidate := balance.Amount - amount
	if candidate < 0 {
		return 0, apperrors.ErrInsufficientFunds
	}
	balance.Amount = candidate
	if err := s.save(tx, balance); err != nil {
		return 0, err
	}
	return balance.Amount, nil
}
