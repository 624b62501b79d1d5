package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
)

func (s *Server) createBudget(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var budget models.Budget
	if err := c.BindJSON(&budget); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(budget.Category) == "" {
		c.JSON(400, gin.H{"error": "category_required"})
		return
	}
	if budget.MonthlyLimit <= 0 {
		c.JSON(400, gin.H{"error": "monthly_limit must be positive"})
		return
	}
	if _, err := time.Parse("2006-01", budget.Month); err != nil {
		c.JSON(400, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	budget.UserID = userID
	if err := s.db.Create(&budget).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, budget)
}

func (s *Server) listBudgets(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := s.db.Where("user_id = ?", userID).Order("month desc, category")
	if month := c.Query("month"); month != "" {
		query = query.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := query.Find(&budgets).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, budgets)
}

func (s *Server) updateBudget(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&budget).Error; err != nil {
		c.JSON(404, gin.H{"error": "budget not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["category"].(string); ok {
		budget.Category = v
	}
	if v, ok := input["monthly_limit"].(float64); ok {
		if v <= 0 {
			c.JSON(400, gin.H{"error": "monthly_limit must be positive"})
			return
		}
		budget.MonthlyLimit = v
	}

	if err := s.db.Save(&budget).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, budget)
}

func (s *Server) deleteBudget(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Budget{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "budget deleted"})
}
