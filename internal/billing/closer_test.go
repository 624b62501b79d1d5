package billing

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"fincare-backend/internal/models"
)

const tolerance = 0.01

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func newTestCard(f *fakeStore) *models.CreditCard {
	card := &models.CreditCard{ID: 1, UserID: 10, Name: "Main", ClosingDay: 10, DueDay: 20}
	f.cards[card.ID] = card
	return card
}

func TestCloseInvoiceWithCarriedBalance(t *testing.T) {
	store := newFakeStore()
	card := newTestCard(store)

	// Cycle for 2024-03 runs 2024-02-11 .. 2024-03-10.
	store.cardTxs = []models.CreditCardTransaction{
		{ID: 1, UserID: 10, CreditCardID: 1, Amount: 100, Date: date(2024, time.February, 20)},
		{ID: 2, UserID: 10, CreditCardID: 1, Amount: 50, Date: date(2024, time.March, 5)},
		{ID: 3, UserID: 10, CreditCardID: 1, Amount: -30, Date: date(2024, time.March, 1)},
		// Outside the window, must not count.
		{ID: 4, UserID: 10, CreditCardID: 1, Amount: 999, Date: date(2024, time.March, 11)},
	}
	store.invoices = []models.CreditCardInvoice{{
		ID: 1, UserID: 10, CreditCardID: 1,
		CycleStart: date(2024, time.January, 11),
		CycleEnd:   date(2024, time.February, 10),
		TotalDue:   200, PaidAmount: 150,
		Status: models.InvoiceClosed,
	}}

	closer := NewCloser(store)
	inv, err := closer.Close(context.Background(), card.UserID, card.ID, CycleMonth{2024, time.March})
	if err != nil {
		t.Fatalf("close invoice: %v", err)
	}

	if !almostEqual(inv.PurchasesTotal, 150) {
		t.Errorf("purchases: expected 150, got %f", inv.PurchasesTotal)
	}
	if !almostEqual(inv.PaymentsTotal, 30) {
		t.Errorf("payments: expected 30, got %f", inv.PaymentsTotal)
	}
	if !almostEqual(inv.PreviousBalance, 50) {
		t.Errorf("previous balance: expected 50, got %f", inv.PreviousBalance)
	}
	if !almostEqual(inv.TotalDue, 170) {
		t.Errorf("total due: expected 170, got %f", inv.TotalDue)
	}
	if !almostEqual(inv.TotalDue, inv.PurchasesTotal+inv.PreviousBalance-inv.PaymentsTotal) {
		t.Errorf("total due invariant violated: %f", inv.TotalDue)
	}
	if inv.Status != models.InvoiceClosed {
		t.Errorf("expected status closed, got %s", inv.Status)
	}
	if !inv.DueDate.Equal(date(2024, time.April, 20)) {
		t.Errorf("due date: expected 2024-04-20, got %s", inv.DueDate)
	}
	if inv.PaidAmount != 0 {
		t.Errorf("new invoice must start with zero paid amount, got %f", inv.PaidAmount)
	}
}

func TestCloseInvoiceIsIdempotent(t *testing.T) {
	store := newFakeStore()
	card := newTestCard(store)
	store.cardTxs = []models.CreditCardTransaction{
		{ID: 1, UserID: 10, CreditCardID: 1, Amount: 80, Date: date(2024, time.March, 1)},
	}

	closer := NewCloser(store)
	month := CycleMonth{2024, time.March}

	first, err := closer.Close(context.Background(), card.UserID, card.ID, month)
	if err != nil {
		t.Fatalf("first close: %v", err)
	}

	// A partial payment lands on the invoice between the two closes; the
	// re-close must keep it.
	for i := range store.invoices {
		if store.invoices[i].ID == first.ID {
			store.invoices[i].PaidAmount = 25
		}
	}

	second, err := closer.Close(context.Background(), card.UserID, card.ID, month)
	if err != nil {
		t.Fatalf("second close: %v", err)
	}

	if len(store.invoices) != 1 {
		t.Fatalf("expected exactly one invoice row, got %d", len(store.invoices))
	}
	if second.ID != first.ID {
		t.Errorf("expected the same invoice row, got ids %d and %d", first.ID, second.ID)
	}
	if !almostEqual(second.TotalDue, first.TotalDue) {
		t.Errorf("totals changed on idempotent re-close: %f vs %f", first.TotalDue, second.TotalDue)
	}
	if !almostEqual(second.PaidAmount, 25) {
		t.Errorf("re-close must preserve paid amount, got %f", second.PaidAmount)
	}
}

func TestCloseInvoiceWithoutPriorInvoice(t *testing.T) {
	store := newFakeStore()
	card := newTestCard(store)
	store.cardTxs = []models.CreditCardTransaction{
		{ID: 1, UserID: 10, CreditCardID: 1, Amount: 40, Date: date(2024, time.March, 1)},
	}

	closer := NewCloser(store)
	inv, err := closer.Close(context.Background(), card.UserID, card.ID, CycleMonth{2024, time.March})
	if err != nil {
		t.Fatalf("close invoice: %v", err)
	}
	if inv.PreviousBalance != 0 {
		t.Errorf("expected zero previous balance, got %f", inv.PreviousBalance)
	}
	if !almostEqual(inv.TotalDue, 40) {
		t.Errorf("expected total due 40, got %f", inv.TotalDue)
	}
}

func TestCloseInvoiceAllowsNegativeTotal(t *testing.T) {
	store := newFakeStore()
	card := newTestCard(store)
	store.cardTxs = []models.CreditCardTransaction{
		{ID: 1, UserID: 10, CreditCardID: 1, Amount: 20, Date: date(2024, time.March, 1)},
		{ID: 2, UserID: 10, CreditCardID: 1, Amount: -100, Date: date(2024, time.March, 2)},
	}

	closer := NewCloser(store)
	inv, err := closer.Close(context.Background(), card.UserID, card.ID, CycleMonth{2024, time.March})
	if err != nil {
		t.Fatalf("close invoice: %v", err)
	}
	// Payments exceeding purchases leave a credit; the total is not floored.
	if !almostEqual(inv.TotalDue, -80) {
		t.Errorf("expected total due -80, got %f", inv.TotalDue)
	}
}

func TestCloseInvoiceOverpaidPriorCarriesNothing(t *testing.T) {
	store := newFakeStore()
	card := newTestCard(store)
	store.invoices = []models.CreditCardInvoice{{
		ID: 1, UserID: 10, CreditCardID: 1,
		CycleStart: date(2024, time.January, 11),
		CycleEnd:   date(2024, time.February, 10),
		TotalDue:   100, PaidAmount: 150,
		Status: models.InvoicePaid,
	}}

	closer := NewCloser(store)
	inv, err := closer.Close(context.Background(), card.UserID, card.ID, CycleMonth{2024, time.March})
	if err != nil {
		t.Fatalf("close invoice: %v", err)
	}
	if inv.PreviousBalance != 0 {
		t.Errorf("overpaid prior invoice must carry zero, got %f", inv.PreviousBalance)
	}
}

func TestCloseInvoiceCardNotFound(t *testing.T) {
	store := newFakeStore()
	newTestCard(store)

	closer := NewCloser(store)

	if _, err := closer.Close(context.Background(), 10, 99, CycleMonth{2024, time.March}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown card, got %v", err)
	}
	// Right card, wrong user.
	if _, err := closer.Close(context.Background(), 11, 1, CycleMonth{2024, time.March}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign card, got %v", err)
	}
}
