package http

import (
	"math"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
)

type MonthlyHealth struct {
	Income      float64 `json:"income"`
	Spent       float64 `json:"spent"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savings_rate"` // Percentage
}

type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Change     float64 `json:"change"` // vs last month
}

type CreditUtilization struct {
	CardName   string  `json:"card_name"`
	Used       float64 `json:"used"`
	Limit      float64 `json:"limit"`
	Percentage float64 `json:"percentage"`
	DueDay     int     `json:"due_day"`
	Warning    bool    `json:"warning"`
}

type PracticeSummary struct {
	SessionsHeld    float64 `json:"sessions_held"`
	PaymentsPending float64 `json:"payments_pending"`
	PaymentsPaid    float64 `json:"payments_paid"`
}

type MonthlyReport struct {
	Month             string              `json:"month"`
	Health            MonthlyHealth       `json:"health"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
	CreditUtilization []CreditUtilization `json:"credit_utilization"`
	Practice          PracticeSummary     `json:"practice"`
}

// GET /v1/reports/monthly?month=YYYY-MM
func (s *Server) monthlyReport(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	now := s.clock.Now()
	month := now.Format("2006-01")
	if m := c.Query("month"); m != "" {
		month = m
	}
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		c.JSON(400, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, lastMonthStart, monthEnd).Find(&txs).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	res := MonthlyReport{
		Month:             month,
		CategoryBreakdown: []CategoryBreakdown{},
		CreditUtilization: []CreditUtilization{},
	}

	var income, spent float64
	categoryThis := make(map[string]float64)
	categoryLast := make(map[string]float64)

	for _, t := range txs {
		inMonth := !t.Date.Before(monthStart) && !t.Date.After(monthEnd)
		switch {
		case inMonth && t.Type == models.TransactionIncome:
			income += t.Amount
		case inMonth && t.Type == models.TransactionExpense:
			spent += t.Amount
			categoryThis[t.Category] += t.Amount
		case t.Type == models.TransactionExpense:
			categoryLast[t.Category] += t.Amount
		}
	}

	res.Health.Income = income
	res.Health.Spent = spent
	res.Health.Savings = income - spent
	if income > 0 {
		res.Health.SavingsRate = math.Max(0, (res.Health.Savings/income)*100)
	}

	for cat, amt := range categoryThis {
		percentage := 0.0
		if spent > 0 {
			percentage = (amt / spent) * 100
		}
		change := 0.0
		if last := categoryLast[cat]; last > 0 {
			change = ((amt - last) / last) * 100
		}
		res.CategoryBreakdown = append(res.CategoryBreakdown, CategoryBreakdown{
			Category:   cat,
			Amount:     amt,
			Percentage: percentage,
			Change:     change,
		})
	}
	sort.Slice(res.CategoryBreakdown, func(i, j int) bool {
		return res.CategoryBreakdown[i].Amount > res.CategoryBreakdown[j].Amount
	})

	var cards []models.CreditCard
	if err := s.db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	for _, card := range cards {
		if card.LimitAmount <= 0 {
			continue
		}
		utilization := (card.CurrentBalance / card.LimitAmount) * 100
		res.CreditUtilization = append(res.CreditUtilization, CreditUtilization{
			CardName:   card.Name,
			Used:       card.CurrentBalance,
			Limit:      card.LimitAmount,
			Percentage: utilization,
			DueDay:     card.DueDay,
			Warning:    utilization > 60,
		})
	}

	var sessionsHeld int64
	s.db.Model(&models.Session{}).
		Where("user_id = ? AND date >= ? AND date <= ? AND status = ?", userID, monthStart, monthEnd, "done").
		Count(&sessionsHeld)
	res.Practice.SessionsHeld = float64(sessionsHeld)

	var payments []models.PatientPayment
	if err := s.db.Where("user_id = ? AND payment_date >= ? AND payment_date <= ?", userID, monthStart, monthEnd).Find(&payments).Error; err == nil {
		for _, p := range payments {
			switch p.Status {
			case models.PaymentPending, models.PaymentOverdue:
				res.Practice.PaymentsPending += p.Amount
			case models.PaymentPaid:
				res.Practice.PaymentsPaid += p.Amount
			}
		}
	}

	c.JSON(200, res)
}
