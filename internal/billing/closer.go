package billing

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"fincare-backend/internal/logger"
	"fincare-backend/internal/models"
)

// Closer aggregates a card's transactions for one billing cycle and
// upserts the resulting invoice.
type Closer struct {
	store Store
	log   zerolog.Logger
}

func NewCloser(store Store) *Closer {
	return &Closer{store: store, log: logger.WithComponent("billing")}
}

// Close computes and persists the invoice for the card's cycle in the
// given month. It is idempotent per (card, cycle): a second close of the
// same month updates the existing invoice row instead of inserting a
// duplicate.
//
// The read-then-upsert sequence is not atomic; two concurrent closes of
// the same cycle race with last-write-wins semantics on the upsert.
func (cl *Closer) Close(ctx context.Context, userID, cardID uint, month CycleMonth) (*models.CreditCardInvoice, error) {
	card, err := cl.store.Card(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}

	cycle := ComputeCycle(card.ClosingDay, card.DueDay, month)

	txs, err := cl.store.CardTransactionsBetween(ctx, userID, cardID, cycle.Start, cycle.End)
	if err != nil {
		return nil, err
	}

	var purchases, payments float64
	for _, t := range txs {
		if t.Amount > 0 {
			purchases += t.Amount
		} else {
			payments += -t.Amount
		}
	}

	var previous float64
	prior, err := cl.store.LatestInvoiceBefore(ctx, userID, cardID, cycle.Start)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		previous = math.Max(0, prior.TotalDue-prior.PaidAmount)
	}

	// Not floored: payments exceeding purchases plus the carried balance
	// leave a negative total, which callers treat as a credit.
	totalDue := purchases + previous - payments

	inv, err := cl.store.InvoiceForCycle(ctx, userID, cardID, cycle.Start, cycle.End)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = &models.CreditCardInvoice{
			UserID:       userID,
			CreditCardID: cardID,
			CycleStart:   cycle.Start,
			CycleEnd:     cycle.End,
		}
	}
	inv.DueDate = cycle.DueDate
	inv.PurchasesTotal = purchases
	inv.PaymentsTotal = payments
	inv.PreviousBalance = previous
	inv.TotalDue = totalDue
	inv.Status = models.InvoiceClosed

	if err := cl.store.SaveInvoice(ctx, inv); err != nil {
		return nil, err
	}

	cl.log.Info().
		Uint("card_id", cardID).
		Str("cycle_month", month.String()).
		Float64("total_due", totalDue).
		Msg("invoice closed")
	return inv, nil
}
