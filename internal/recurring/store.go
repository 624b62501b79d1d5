package recurring

import (
	"context"
	"time"

	"fincare-backend/internal/models"
)

// Store is the persistence surface the generator depends on. Tests
// substitute an in-memory fake.
type Store interface {
	// Templates returns up to limit recurring templates for the user
	// (is_recurring = true, no parent payment).
	Templates(ctx context.Context, userID uint, limit int) ([]models.PatientPayment, error)
	// HasGeneratedPaymentOn reports whether a generated payment already
	// exists for the patient on the given date.
	HasGeneratedPaymentOn(ctx context.Context, userID, patientID uint, date time.Time) (bool, error)
	// InsertPayments inserts the batch; conflicting rows are dropped
	// instead of failing the whole batch.
	InsertPayments(ctx context.Context, payments []models.PatientPayment) error
	// UserIDsWithTemplates lists users owning at least one template.
	UserIDsWithTemplates(ctx context.Context) ([]uint, error)
}
