package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"fincare-backend/internal/models"
	"fincare-backend/internal/recurring"
)

func (s *Server) createPatient(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var patient models.Patient
	if err := c.BindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(patient.Name) == "" {
		c.JSON(400, gin.H{"error": "name_required"})
		return
	}

	patient.UserID = userID
	if err := s.db.Create(&patient).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, patient)
}

func (s *Server) listPatients(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var patients []models.Patient
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&patients).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, patients)
}

func (s *Server) updatePatient(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var patient models.Patient
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&patient).Error; err != nil {
		c.JSON(404, gin.H{"error": "patient not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["name"].(string); ok {
		patient.Name = v
	}
	if v, ok := input["email"].(string); ok {
		patient.Email = v
	}
	if v, ok := input["phone"].(string); ok {
		patient.Phone = v
	}
	if v, ok := input["session_price"].(float64); ok {
		patient.SessionPrice = v
	}

	if err := s.db.Save(&patient).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, patient)
}

func (s *Server) deletePatient(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Patient{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "patient deleted"})
}

func (s *Server) createSession(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var session models.Session
	if err := c.BindJSON(&session); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	var patient models.Patient
	if err := s.db.Where("id = ? AND user_id = ?", session.PatientID, userID).First(&patient).Error; err != nil {
		c.JSON(404, gin.H{"error": "patient not found"})
		return
	}
	if session.Price == 0 {
		session.Price = patient.SessionPrice
	}
	if session.Status == "" {
		session.Status = "scheduled"
	}

	session.UserID = userID
	if err := s.db.Create(&session).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, session)
}

func (s *Server) listSessions(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := s.db.Where("user_id = ?", userID).Order("date desc")
	if p := c.Query("patient_id"); p != "" {
		if id, err := strconv.ParseUint(p, 10, 32); err == nil {
			query = query.Where("patient_id = ?", id)
		}
	}

	var sessions []models.Session
	if err := query.Find(&sessions).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, sessions)
}

func (s *Server) createPatientPayment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var payment models.PatientPayment
	if err := c.BindJSON(&payment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if payment.Amount <= 0 {
		c.JSON(400, gin.H{"error": "amount must be positive"})
		return
	}
	if payment.IsRecurring {
		if !recurring.Frequency(payment.RecurringFrequency).IsValid() {
			c.JSON(400, gin.H{"error": "recurring_frequency must be weekly or monthly"})
			return
		}
		if payment.RecurringDay < 1 || payment.RecurringDay > 31 {
			c.JSON(400, gin.H{"error": "recurring_day must be between 1 and 31"})
			return
		}
		// Templates are the generator's input, never its output.
		payment.ParentPaymentID = nil
	}

	var patient models.Patient
	if err := s.db.Where("id = ? AND user_id = ?", payment.PatientID, userID).First(&patient).Error; err != nil {
		c.JSON(404, gin.H{"error": "patient not found"})
		return
	}

	payment.UserID = userID
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	if err := s.db.Create(&payment).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, payment)
}

func (s *Server) listPatientPayments(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	query := s.db.Where("user_id = ?", userID).Order("payment_date desc")
	if p := c.Query("patient_id"); p != "" {
		if id, err := strconv.ParseUint(p, 10, 32); err == nil {
			query = query.Where("patient_id = ?", id)
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.PatientPayment
	if err := query.Find(&payments).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, payments)
}

func (s *Server) updatePatientPayment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	var payment models.PatientPayment
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&payment).Error; err != nil {
		c.JSON(404, gin.H{"error": "payment not found"})
		return
	}

	var input map[string]interface{}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if v, ok := input["status"].(string); ok {
		switch v {
		case models.PaymentPending, models.PaymentPaid, models.PaymentOverdue, models.PaymentCancelled:
			payment.Status = v
		default:
			c.JSON(400, gin.H{"error": "invalid status"})
			return
		}
	}
	if v, ok := input["amount"].(float64); ok {
		if v <= 0 {
			c.JSON(400, gin.H{"error": "amount must be positive"})
			return
		}
		payment.Amount = v
	}
	if v, ok := input["payment_method"].(string); ok {
		payment.PaymentMethod = v
	}
	if v, ok := input["description"].(string); ok {
		payment.Description = v
	}

	if err := s.db.Save(&payment).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, payment)
}

func (s *Server) deletePatientPayment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid id"})
		return
	}

	if err := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PatientPayment{}).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{"message": "payment deleted"})
}

// POST /v1/recurring-payments/generate
//
// Always returns 200; per-template failures are carried in the report.
func (s *Server) generateRecurring(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	report := s.generator.Run(c.Request.Context(), userID)
	c.JSON(200, report)
}
