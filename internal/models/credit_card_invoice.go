package models

import (
	"time"
)

type InvoiceStatus string

const (
	InvoiceOpen    InvoiceStatus = "open"
	InvoiceClosed  InvoiceStatus = "closed"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceOpen, InvoiceClosed, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// CreditCardInvoice is a closed billing cycle. At most one row exists per
// (card, cycle_start, cycle_end); closing the same cycle again updates the
// totals in place. TotalDue = PurchasesTotal + PreviousBalance - PaymentsTotal.
type CreditCardInvoice struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	UserID          uint          `gorm:"index" json:"user_id"`
	CreditCardID    uint          `gorm:"index;uniqueIndex:idx_invoice_cycle,priority:1" json:"credit_card_id"`
	CycleStart      time.Time     `gorm:"type:date;uniqueIndex:idx_invoice_cycle,priority:2" json:"cycle_start"`
	CycleEnd        time.Time     `gorm:"type:date;uniqueIndex:idx_invoice_cycle,priority:3" json:"cycle_end"`
	DueDate         time.Time     `gorm:"type:date" json:"due_date"`
	PurchasesTotal  float64       `json:"purchases_total"`
	PaymentsTotal   float64       `json:"payments_total"`
	PreviousBalance float64       `json:"previous_balance"`
	TotalDue        float64       `json:"total_due"`
	PaidAmount      float64       `json:"paid_amount"`
	Status          InvoiceStatus `gorm:"default:'open'" json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
