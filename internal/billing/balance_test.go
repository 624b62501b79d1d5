package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"fincare-backend/internal/models"
)

func TestRecalculateCard(t *testing.T) {
	cases := []struct {
		name    string
		amounts []float64
		want    float64
	}{
		{"purchases minus payments", []float64{100, 50, -30}, 120},
		{"no transactions", nil, 0},
		{"overpayment clamps to zero", []float64{100, -150}, 0},
		{"exact payoff", []float64{75, -75}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			card := newTestCard(store)
			card.CurrentBalance = 999 // stale cached value
			for i, amount := range tc.amounts {
				store.cardTxs = append(store.cardTxs, models.CreditCardTransaction{
					ID: uint(i + 1), UserID: card.UserID, CreditCardID: card.ID,
					Amount: amount, Date: date(2024, time.March, i+1),
				})
			}

			recalc := NewRecalculator(store)
			if err := recalc.RecalculateCard(context.Background(), card.UserID, card.ID); err != nil {
				t.Fatalf("recalculate card: %v", err)
			}
			if got := store.cards[card.ID].CurrentBalance; !almostEqual(got, tc.want) {
				t.Errorf("expected balance %f, got %f", tc.want, got)
			}
		})
	}
}

func TestRecalculateAccount(t *testing.T) {
	store := newFakeStore()
	store.accounts[5] = &models.Account{ID: 5, UserID: 10, InitialBalance: 1000, Balance: 0}
	store.accTxs = []models.Transaction{
		{ID: 1, UserID: 10, AccountID: 5, Type: models.TransactionIncome, Amount: 200},
		{ID: 2, UserID: 10, AccountID: 5, Type: models.TransactionExpense, Amount: 50},
		// Foreign account, must not count.
		{ID: 3, UserID: 10, AccountID: 6, Type: models.TransactionIncome, Amount: 5000},
	}

	recalc := NewRecalculator(store)
	if err := recalc.RecalculateAccount(context.Background(), 10, 5); err != nil {
		t.Fatalf("recalculate account: %v", err)
	}
	if got := store.accounts[5].Balance; !almostEqual(got, 1150) {
		t.Errorf("expected balance 1150, got %f", got)
	}
}

func TestRecalculateAccountMayGoNegative(t *testing.T) {
	store := newFakeStore()
	store.accounts[5] = &models.Account{ID: 5, UserID: 10, InitialBalance: 10}
	store.accTxs = []models.Transaction{
		{ID: 1, UserID: 10, AccountID: 5, Type: models.TransactionExpense, Amount: 60},
	}

	recalc := NewRecalculator(store)
	if err := recalc.RecalculateAccount(context.Background(), 10, 5); err != nil {
		t.Fatalf("recalculate account: %v", err)
	}
	// Unlike cards, generic accounts are not floored at zero.
	if got := store.accounts[5].Balance; !almostEqual(got, -50) {
		t.Errorf("expected balance -50, got %f", got)
	}
}

func TestRecalculateUnknownAccount(t *testing.T) {
	store := newFakeStore()
	recalc := NewRecalculator(store)
	if err := recalc.RecalculateAccount(context.Background(), 10, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
