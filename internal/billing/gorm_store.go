package billing

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fincare-backend/internal/models"
)

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Card(ctx context.Context, userID, cardID uint) (*models.CreditCard, error) {
	var card models.CreditCard
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cardID, userID).
		First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *GormStore) CardTransactions(ctx context.Context, userID, cardID uint) ([]models.CreditCardTransaction, error) {
	var txs []models.CreditCardTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ?", userID, cardID).
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) CardTransactionsBetween(ctx context.Context, userID, cardID uint, start, end time.Time) ([]models.CreditCardTransaction, error) {
	var txs []models.CreditCardTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ? AND date >= ? AND date <= ?", userID, cardID, start, end).
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) UpdateCardBalance(ctx context.Context, userID, cardID uint, balance float64) error {
	return s.db.WithContext(ctx).
		Model(&models.CreditCard{}).
		Where("id = ? AND user_id = ?", cardID, userID).
		Update("current_balance", balance).Error
}

func (s *GormStore) LatestInvoiceBefore(ctx context.Context, userID, cardID uint, before time.Time) (*models.CreditCardInvoice, error) {
	var inv models.CreditCardInvoice
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ? AND cycle_end < ?", userID, cardID, before).
		Order("cycle_end desc").
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *GormStore) InvoiceForCycle(ctx context.Context, userID, cardID uint, start, end time.Time) (*models.CreditCardInvoice, error) {
	var inv models.CreditCardInvoice
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND credit_card_id = ? AND cycle_start = ? AND cycle_end = ?", userID, cardID, start, end).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *GormStore) SaveInvoice(ctx context.Context, inv *models.CreditCardInvoice) error {
	return s.db.WithContext(ctx).Save(inv).Error
}

func (s *GormStore) Account(ctx context.Context, userID, accountID uint) (*models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *GormStore) AccountTransactions(ctx context.Context, userID, accountID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND account_id = ?", userID, accountID).
		Find(&txs).Error
	return txs, err
}

func (s *GormStore) UpdateAccountBalance(ctx context.Context, userID, accountID uint, balance float64) error {
	return s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND user_id = ?", accountID, userID).
		Update("balance", balance).Error
}

var _ Store = (*GormStore)(nil)
