package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"fincare-backend/internal/billing"
	"fincare-backend/internal/models"
)

type closeInvoiceRequest struct {
	CreditCardID uint    `json:"credit_card_id"`
	CycleMonth   string  `json:"cycle_month"`
	PaidAmount   float64 `json:"paid_amount"`
}

type invoiceView struct {
	CycleStart      string  `json:"cycle_start"`
	CycleEnd        string  `json:"cycle_end"`
	DueDate         string  `json:"due_date"`
	PurchasesTotal  float64 `json:"purchases_total"`
	PaymentsTotal   float64 `json:"payments_total"`
	PreviousBalance float64 `json:"previous_balance"`
	TotalDue        float64 `json:"total_due"`
}

// POST /functions/v1/close_credit_card_invoice
func (s *Server) closeInvoice(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request_body"})
		return
	}

	res, err := s.validator.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid_request_body"})
		return
	}
	if !res.Valid() {
		details := []string{}
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"error": "schema_invalid", "details": details})
		return
	}

	var req closeInvoiceRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(400, gin.H{"error": "invalid_request_body"})
		return
	}

	month, err := billing.ParseCycleMonth(req.CycleMonth)
	if err != nil {
		c.JSON(400, gin.H{"error": "cycle_month must be YYYY-MM"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(s.cfg.ReqTimeoutSec)*time.Second)
	defer cancel()

	inv, err := s.closer.Close(ctx, userID, req.CreditCardID, month)
	if err != nil {
		if errors.Is(err, billing.ErrNotFound) {
			c.JSON(404, gin.H{"error": "card not found"})
			return
		}
		s.log.Error().Err(err).Uint("card_id", req.CreditCardID).Msg("invoice close failed")
		c.JSON(500, gin.H{"error": "invoice close failed"})
		return
	}

	// A paid amount entered alongside the close is recorded as a payment
	// transaction against the card, which the recalculated balance then
	// reflects.
	if req.PaidAmount > 0 {
		now := s.clock.Now()
		payment := models.CreditCardTransaction{
			UserID:       userID,
			CreditCardID: req.CreditCardID,
			Amount:       -req.PaidAmount,
			Description:  "Invoice payment " + month.String(),
			Date:         time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		}
		if err := s.db.Create(&payment).Error; err != nil {
			s.log.Error().Err(err).Uint("card_id", req.CreditCardID).Msg("recording invoice payment failed")
		} else if err := s.recalc.RecalculateCard(ctx, userID, req.CreditCardID); err != nil {
			s.log.Error().Err(err).Uint("card_id", req.CreditCardID).Msg("card balance recalculation failed")
		}
	}

	c.JSON(200, gin.H{
		"success": true,
		"invoice": invoiceView{
			CycleStart:      inv.CycleStart.Format("2006-01-02"),
			CycleEnd:        inv.CycleEnd.Format("2006-01-02"),
			DueDate:         inv.DueDate.Format("2006-01-02"),
			PurchasesTotal:  inv.PurchasesTotal,
			PaymentsTotal:   inv.PaymentsTotal,
			PreviousBalance: inv.PreviousBalance,
			TotalDue:        inv.TotalDue,
		},
	})
}
