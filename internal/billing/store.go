package billing

import (
	"context"
	"errors"
	"time"

	"fincare-backend/internal/models"
)

// ErrNotFound is returned when a card or account does not exist or does
// not belong to the requesting user.
var ErrNotFound = errors.New("not found")

// Store is the persistence surface the billing services depend on. All
// reads and writes are scoped by user id; the gorm implementation filters
// every query with it and tests substitute an in-memory fake.
type Store interface {
	Card(ctx context.Context, userID, cardID uint) (*models.CreditCard, error)
	CardTransactions(ctx context.Context, userID, cardID uint) ([]models.CreditCardTransaction, error)
	// CardTransactionsBetween returns transactions dated within
	// [start, end] inclusive.
	CardTransactionsBetween(ctx context.Context, userID, cardID uint, start, end time.Time) ([]models.CreditCardTransaction, error)
	UpdateCardBalance(ctx context.Context, userID, cardID uint, balance float64) error

	// LatestInvoiceBefore returns the most recent invoice whose cycle
	// ended strictly before the given date, or nil when none exists.
	LatestInvoiceBefore(ctx context.Context, userID, cardID uint, before time.Time) (*models.CreditCardInvoice, error)
	// InvoiceForCycle returns the invoice for the exact cycle window, or
	// nil when none exists.
	InvoiceForCycle(ctx context.Context, userID, cardID uint, start, end time.Time) (*models.CreditCardInvoice, error)
	SaveInvoice(ctx context.Context, inv *models.CreditCardInvoice) error

	Account(ctx context.Context, userID, accountID uint) (*models.Account, error)
	AccountTransactions(ctx context.Context, userID, accountID uint) ([]models.Transaction, error)
	UpdateAccountBalance(ctx context.Context, userID, accountID uint, balance float64) error
}
