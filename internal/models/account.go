package models

import (
	"time"
)

type Account struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"` // checking, savings, wallet, other
	InitialBalance float64   `json:"initial_balance"`
	Balance        float64   `json:"balance"` // derived, cached; see billing.Recalculator
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
