package billing

import (
	"context"
	"time"

	"fincare-backend/internal/models"
)

// fakeStore is an in-memory Store used by the service tests.
type fakeStore struct {
	cards    map[uint]*models.CreditCard
	cardTxs  []models.CreditCardTransaction
	invoices []models.CreditCardInvoice
	accounts map[uint]*models.Account
	accTxs   []models.Transaction

	nextInvoiceID uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards:    make(map[uint]*models.CreditCard),
		accounts: make(map[uint]*models.Account),
	}
}

func (f *fakeStore) Card(_ context.Context, userID, cardID uint) (*models.CreditCard, error) {
	card, ok := f.cards[cardID]
	if !ok || card.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *card
	return &copied, nil
}

func (f *fakeStore) CardTransactions(_ context.Context, userID, cardID uint) ([]models.CreditCardTransaction, error) {
	var out []models.CreditCardTransaction
	for _, tx := range f.cardTxs {
		if tx.UserID == userID && tx.CreditCardID == cardID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStore) CardTransactionsBetween(_ context.Context, userID, cardID uint, start, end time.Time) ([]models.CreditCardTransaction, error) {
	var out []models.CreditCardTransaction
	for _, tx := range f.cardTxs {
		if tx.UserID != userID || tx.CreditCardID != cardID {
			continue
		}
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

func (f *fakeStore) UpdateCardBalance(_ context.Context, userID, cardID uint, balance float64) error {
	card, ok := f.cards[cardID]
	if !ok || card.UserID != userID {
		return ErrNotFound
	}
	card.CurrentBalance = balance
	return nil
}

func (f *fakeStore) LatestInvoiceBefore(_ context.Context, userID, cardID uint, before time.Time) (*models.CreditCardInvoice, error) {
	var latest *models.CreditCardInvoice
	for i := range f.invoices {
		inv := f.invoices[i]
		if inv.UserID != userID || inv.CreditCardID != cardID || !inv.CycleEnd.Before(before) {
			continue
		}
		if latest == nil || inv.CycleEnd.After(latest.CycleEnd) {
			copied := inv
			latest = &copied
		}
	}
	return latest, nil
}

func (f *fakeStore) InvoiceForCycle(_ context.Context, userID, cardID uint, start, end time.Time) (*models.CreditCardInvoice, error) {
	for i := range f.invoices {
		inv := f.invoices[i]
		if inv.UserID == userID && inv.CreditCardID == cardID &&
			inv.CycleStart.Equal(start) && inv.CycleEnd.Equal(end) {
			copied := inv
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SaveInvoice(_ context.Context, inv *models.CreditCardInvoice) error {
	if inv.ID == 0 {
		for _, existing := range f.invoices {
			if existing.ID > f.nextInvoiceID {
				f.nextInvoiceID = existing.ID
			}
		}
		f.nextInvoiceID++
		inv.ID = f.nextInvoiceID
		f.invoices = append(f.invoices, *inv)
		return nil
	}
	for i := range f.invoices {
		if f.invoices[i].ID == inv.ID {
			f.invoices[i] = *inv
			return nil
		}
	}
	f.invoices = append(f.invoices, *inv)
	return nil
}

func (f *fakeStore) Account(_ context.Context, userID, accountID uint) (*models.Account, error) {
	acc, ok := f.accounts[accountID]
	if !ok || acc.UserID != userID {
		return nil, ErrNotFound
	}
	copied := *acc
	return &copied, nil
}

func (f *fakeStore) AccountTransactions(_ context.Context, userID, accountID uint) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range f.accTxs {
		if tx.UserID == userID && tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateAccountBalance(_ context.Context, userID, accountID uint, balance float64) error {
	acc, ok := f.accounts[accountID]
	if !ok || acc.UserID != userID {
		return ErrNotFound
	}
	acc.Balance = balance
	return nil
}

var _ Store = (*fakeStore)(nil)
