package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
)

func (s *Server) createAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var account models.Account
	if err := c.BindJSON(&account); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(account.Name) == "" {
		c.JSON(400, gin.H{"error": "name_required"})
		return
	}

	account.UserID = userID
	account.Balance = account.InitialBalance
	if err := s.db.Create(&account).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, account)
}

func (s *Server) listAccounts(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var accounts []models.Account
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&accounts).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	// Balances are refreshed opportunistically on list loads so a missed
	// recalculation after a mutation heals itself here.
	for i := range accounts {
		if err := s.recalc.RecalculateAccount(c.Request.Context(), userID, accounts[i].ID); err != nil {
			s.log.Error().Err(err).Uint("account_id", accounts[i].ID).Msg("account balance recalculation failed")
			continue
		}
	}
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&accounts).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, accounts)
}

func (s *Server) getAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		c.JSON(404, gin.H{"error": "account not found"})
		return
	}

	c.JSON(200, account)
}

func (s *Server) updateAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var account models.Account
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		c.JSON(404, gin.H{"error": "account not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["name"].(string); ok {
		account.Name = v
	}
	if v, ok := input["type"].(string); ok {
		account.Type = v
	}
	if v, ok := input["initial_balance"].(float64); ok {
		account.InitialBalance = v
	}

	if err := s.db.Save(&account).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	if err := s.recalc.RecalculateAccount(c.Request.Context(), userID, account.ID); err != nil {
		s.log.Error().Err(err).Uint("account_id", account.ID).Msg("account balance recalculation failed")
	}
	// Reload so the response carries the recalculated balance.
	s.db.Where("id = ?", account.ID).First(&account)

	c.JSON(200, account)
}

func (s *Server) deleteAccount(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Account{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "account deleted"})
}
