package recurring

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fincare-backend/internal/models"
)

// GormStore is the PostgreSQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Templates(ctx context.Context, userID uint, limit int) ([]models.PatientPayment, error) {
	var templates []models.PatientPayment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_recurring = ? AND parent_payment_id IS NULL", userID, true).
		Order("id").
		Limit(limit).
		Find(&templates).Error
	return templates, err
}

func (s *GormStore) HasGeneratedPaymentOn(ctx context.Context, userID, patientID uint, date time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PatientPayment{}).
		Where("user_id = ? AND patient_id = ? AND payment_date = ? AND parent_payment_id IS NOT NULL", userID, patientID, date).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) InsertPayments(ctx context.Context, payments []models.PatientPayment) error {
	// Conflicting rows are dropped without failing the rest of the batch.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&payments).Error
}

func (s *GormStore) UserIDsWithTemplates(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.PatientPayment{}).
		Where("is_recurring = ? AND parent_payment_id IS NULL", true).
		Distinct("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

var _ Store = (*GormStore)(nil)
