package models

import (
	"time"
)

const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentOverdue   = "overdue"
	PaymentCancelled = "cancelled"
)

// PatientPayment doubles as a recurring template and a concrete payment.
// Template rows have IsRecurring = true and no ParentPaymentID; rows
// produced by the generator point at their template through
// ParentPaymentID and start out pending. Generated rows are then mutated
// independently by the user, so generation never overwrites an existing
// row for a date already covered.
type PatientPayment struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"index" json:"user_id"`
	PatientID          uint       `gorm:"index" json:"patient_id"`
	Amount             float64    `json:"amount"`
	PaymentDate        time.Time  `gorm:"type:date;index" json:"payment_date"`
	PaymentMethod      string     `json:"payment_method"`
	Description        string     `json:"description"`
	Status             string     `gorm:"default:'pending'" json:"status"`
	IsRecurring        bool       `gorm:"default:false" json:"is_recurring"`
	RecurringFrequency string     `json:"recurring_frequency"` // weekly, monthly
	RecurringUntil     *time.Time `gorm:"type:date" json:"recurring_until,omitempty"`
	RecurringDay       int        `gorm:"check:chk_recurring_day,NOT is_recurring OR (recurring_day >= 1 AND recurring_day <= 31)" json:"recurring_day"` // 1-31, clamped to month length
	ParentPaymentID    *uint      `gorm:"index" json:"parent_payment_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
