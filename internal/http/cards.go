package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
)

const (
	maxCardNameLen  = 100
	maxInstallments = 24
)

func validateCard(card *models.CreditCard) string {
	if strings.TrimSpace(card.Name) == "" || len(card.Name) > maxCardNameLen {
		return "name must be 1-100 characters"
	}
	if card.ClosingDay < 1 || card.ClosingDay > 31 {
		return "closing_day must be between 1 and 31"
	}
	if card.DueDay < 1 || card.DueDay > 31 {
		return "due_day must be between 1 and 31"
	}
	return ""
}

func (s *Server) createCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var card models.CreditCard
	if err := c.BindJSON(&card); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if msg := validateCard(&card); msg != "" {
		c.JSON(400, gin.H{"error": msg})
		return
	}

	card.UserID = userID
	card.CurrentBalance = 0
	if err := s.db.Create(&card).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, card)
}

func (s *Server) listCards(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var cards []models.CreditCard
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&cards).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, cards)
}

func (s *Server) getCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var card models.CreditCard
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		c.JSON(404, gin.H{"error": "card not found"})
		return
	}

	c.JSON(200, card)
}

func (s *Server) updateCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var card models.CreditCard
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		c.JSON(404, gin.H{"error": "card not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["name"].(string); ok {
		card.Name = v
	}
	if v, ok := input["limit_amount"].(float64); ok {
		card.LimitAmount = v
	}
	if v, ok := input["closing_day"].(float64); ok {
		card.ClosingDay = int(v)
	}
	if v, ok := input["due_day"].(float64); ok {
		card.DueDay = int(v)
	}
	if msg := validateCard(&card); msg != "" {
		c.JSON(400, gin.H{"error": msg})
		return
	}

	if err := s.db.Save(&card).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, card)
}

func (s *Server) deleteCard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CreditCard{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "card deleted"})
}

func (s *Server) createCardTransaction(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var card models.CreditCard
	if err := s.db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
		c.JSON(404, gin.H{"error": "card not found"})
		return
	}

	var tx models.CreditCardTransaction
	if err := c.BindJSON(&tx); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if tx.Amount == 0 {
		c.JSON(400, gin.H{"error": "amount must not be zero"})
		return
	}
	if tx.Installments == 0 {
		tx.Installments = 1
	}
	if tx.CurrentInstallment == 0 {
		tx.CurrentInstallment = 1
	}
	if tx.Installments < 1 || tx.Installments > maxInstallments {
		c.JSON(400, gin.H{"error": "installments must be between 1 and 24"})
		return
	}

	tx.UserID = userID
	tx.CreditCardID = card.ID
	if err := s.db.Create(&tx).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := s.recalc.RecalculateCard(c.Request.Context(), userID, card.ID); err != nil {
		s.log.Error().Err(err).Uint("card_id", card.ID).Msg("card balance recalculation failed")
	}

	c.JSON(201, tx)
}

func (s *Server) listCardTransactions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	query := s.db.Where("user_id = ? AND credit_card_id = ?", userID, cardID).Order("date desc, created_at desc")
	if start := c.Query("start_date"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("end_date"); end != "" {
		query = query.Where("date <= ?", end)
	}

	var txs []models.CreditCardTransaction
	if err := query.Find(&txs).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, txs)
}

func (s *Server) deleteCardTransaction(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}
	txID, err := strconv.ParseUint(c.Param("txID"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}

	res := s.db.Where("id = ? AND user_id = ? AND credit_card_id = ?", txID, userID, cardID).
		Delete(&models.CreditCardTransaction{})
	if res.Error != nil {
		c.JSON(500, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(404, gin.H{"error": "transaction not found"})
		return
	}

	if err := s.recalc.RecalculateCard(c.Request.Context(), userID, uint(cardID)); err != nil {
		s.log.Error().Err(err).Uint("card_id", uint(cardID)).Msg("card balance recalculation failed")
	}

	c.JSON(200, gin.H{"message": "transaction deleted"})
}

func (s *Server) listInvoices(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var invoices []models.CreditCardInvoice
	err = s.db.Where("user_id = ? AND credit_card_id = ?", userID, cardID).
		Order("cycle_end desc").
		Find(&invoices).Error
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, invoices)
}
