package http

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
)

func (s *Server) createTransaction(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var tx models.Transaction
	if err := c.BindJSON(&tx); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if tx.Type != models.TransactionIncome && tx.Type != models.TransactionExpense {
		c.JSON(400, gin.H{"error": "type must be income or expense"})
		return
	}
	if tx.Amount <= 0 {
		c.JSON(400, gin.H{"error": "amount must be positive"})
		return
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", tx.AccountID, userID).First(&account).Error; err != nil {
		c.JSON(404, gin.H{"error": "account not found"})
		return
	}

	tx.UserID = userID
	if err := s.db.Create(&tx).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := s.recalc.RecalculateAccount(c.Request.Context(), userID, tx.AccountID); err != nil {
		s.log.Error().Err(err).Uint("account_id", tx.AccountID).Msg("account balance recalculation failed")
	}

	c.JSON(201, tx)
}

func (s *Server) listTransactions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var txs []models.Transaction
	query := s.db.Where("user_id = ?", userID).Order("date desc, created_at desc")

	if t := strings.TrimSpace(c.Query("type")); t != "" && t != "All" {
		query = query.Where("LOWER(type) = LOWER(?)", t)
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		query = query.Where("LOWER(category) = LOWER(?)", cat)
	}
	if acc := c.Query("account_id"); acc != "" {
		if id, err := strconv.ParseUint(acc, 10, 32); err == nil {
			query = query.Where("account_id = ?", id)
		}
	}
	if minStr := c.Query("min_amount"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			query = query.Where("amount >= ?", min)
		}
	}
	if maxStr := c.Query("max_amount"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			query = query.Where("amount <= ?", max)
		}
	}
	if start := c.Query("start_date"); start != "" {
		query = query.Where("date >= ?", start)
	}
	if end := c.Query("end_date"); end != "" {
		query = query.Where("date <= ?", end)
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		if tagFilter, err := json.Marshal([]string{tag}); err == nil {
			query = query.Where("tags @> ?", string(tagFilter))
		}
	}

	if err := query.Find(&txs).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, txs)
}

func (s *Server) updateTransaction(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		c.JSON(404, gin.H{"error": "transaction not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["description"].(string); ok {
		tx.Description = v
	}
	if v, ok := input["amount"].(float64); ok {
		if v <= 0 {
			c.JSON(400, gin.H{"error": "amount must be positive"})
			return
		}
		tx.Amount = v
	}
	if v, ok := input["type"].(string); ok {
		v = strings.ToLower(v)
		if v != models.TransactionIncome && v != models.TransactionExpense {
			c.JSON(400, gin.H{"error": "type must be income or expense"})
			return
		}
		tx.Type = v
	}
	if v, ok := input["category"].(string); ok {
		tx.Category = v
	}
	if v, ok := input["date"].(string); ok {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(400, gin.H{"error": "invalid date"})
			return
		}
		tx.Date = d
	}

	if err := s.db.Save(&tx).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := s.recalc.RecalculateAccount(c.Request.Context(), userID, tx.AccountID); err != nil {
		s.log.Error().Err(err).Uint("account_id", tx.AccountID).Msg("account balance recalculation failed")
	}

	c.JSON(200, tx)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&tx).Error; err != nil {
		c.JSON(404, gin.H{"error": "transaction not found"})
		return
	}

	if err := s.db.Delete(&tx).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := s.recalc.RecalculateAccount(c.Request.Context(), userID, tx.AccountID); err != nil {
		s.log.Error().Err(err).Uint("account_id", tx.AccountID).Msg("account balance recalculation failed")
	}

	c.JSON(200, gin.H{"message": "transaction deleted"})
}
