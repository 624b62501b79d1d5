package models

import (
	"time"
)

// CreditCardTransaction is a single card movement. Positive amounts are
// purchases, negative amounts are payments against the card. Amount is
// never zero.
type CreditCardTransaction struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"index" json:"user_id"`
	CreditCardID       uint      `gorm:"index" json:"credit_card_id"`
	Amount             float64   `json:"amount"`
	Description        string    `json:"description"`
	Date               time.Time `gorm:"type:date;index" json:"date"`
	Installments       int       `gorm:"default:1;check:installments >= 1 AND installments <= 24" json:"installments"`
	CurrentInstallment int       `gorm:"default:1;check:current_installment >= 1" json:"current_installment"`
	Category           string    `json:"category"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
