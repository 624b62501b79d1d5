package billing

import (
	"context"

	"github.com/rs/zerolog"

	"fincare-backend/internal/logger"
	"fincare-backend/internal/models"
)

// Recalculator rebuilds cached balances from full transaction history.
// Every call is a complete recomputation, O(n) in transaction count, which
// keeps the cached value consistent without incremental bookkeeping.
type Recalculator struct {
	store Store
	log   zerolog.Logger
}

func NewRecalculator(store Store) *Recalculator {
	return &Recalculator{store: store, log: logger.WithComponent("billing")}
}

// RecalculateCard folds the card's entire transaction history into its
// cached balance: purchases minus payments, floored at zero. The floor
// discards overpayment credits; invoice totals keep them instead.
// Called after every card transaction mutation.
func (r *Recalculator) RecalculateCard(ctx context.Context, userID, cardID uint) error {
	txs, err := r.store.CardTransactions(ctx, userID, cardID)
	if err != nil {
		return err
	}

	var balance float64
	for _, t := range txs {
		balance += t.Amount
	}
	if balance < 0 {
		balance = 0
	}

	return r.store.UpdateCardBalance(ctx, userID, cardID, balance)
}

// RecalculateAccount rebuilds a generic account's balance: initial balance
// plus income minus expenses across all its transactions. No floor is
// applied here; accounts may legitimately go negative.
func (r *Recalculator) RecalculateAccount(ctx context.Context, userID, accountID uint) error {
	acc, err := r.store.Account(ctx, userID, accountID)
	if err != nil {
		return err
	}
	txs, err := r.store.AccountTransactions(ctx, userID, accountID)
	if err != nil {
		return err
	}

	balance := acc.InitialBalance
	for _, t := range txs {
		switch t.Type {
		case models.TransactionIncome:
			balance += t.Amount
		case models.TransactionExpense:
			balance -= t.Amount
		}
	}

	return r.store.UpdateAccountBalance(ctx, userID, accountID, balance)
}
