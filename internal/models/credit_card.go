package models

import (
	"time"
)

type CreditCard struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	Name           string    `json:"name"`
	LimitAmount    float64   `json:"limit_amount"`
	CurrentBalance float64   `json:"current_balance"` // derived, cached; see billing.Recalculator
	ClosingDay     int       `gorm:"check:closing_day >= 1 AND closing_day <= 31" json:"closing_day"`
	DueDay         int       `gorm:"check:due_day >= 1 AND due_day <= 31" json:"due_day"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
