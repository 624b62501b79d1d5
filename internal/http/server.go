package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
	"gorm.io/gorm"

	"fincare-backend/internal/billing"
	"fincare-backend/internal/clock"
	"fincare-backend/internal/config"
	"fincare-backend/internal/logger"
	"fincare-backend/internal/recurring"
)

type Server struct {
	cfg       *config.Config
	db        *gorm.DB
	closer    *billing.Closer
	recalc    *billing.Recalculator
	generator *recurring.Generator
	validator *gojsonschema.Schema
	clock     clock.Clock
	log       zerolog.Logger
}

func NewServer(cfg *config.Config, db *gorm.DB, clk clock.Clock) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors(cfg))
	r.Use(logging())

	loader := gojsonschema.NewReferenceLoader("file://./schemas/close_invoice_request.schema.json")
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(err)
	}

	billingStore := billing.NewGormStore(db)
	s := &Server{
		cfg:       cfg,
		db:        db,
		closer:    billing.NewCloser(billingStore),
		recalc:    billing.NewRecalculator(billingStore),
		generator: recurring.NewGenerator(recurring.NewGormStore(db), clk),
		validator: schema,
		clock:     clk,
		log:       logger.WithComponent("http"),
	}

	// Auth
	r.POST("/v1/auth/register", s.authRegister)
	r.POST("/v1/auth/login", s.authLogin)

	// Protected routes (user token)
	authorized := r.Group("/v1")
	authorized.Use(AuthMiddleware(cfg, db))
	{
		authorized.POST("/accounts", s.createAccount)
		authorized.GET("/accounts", s.listAccounts)
		authorized.GET("/accounts/:id", s.getAccount)
		authorized.PUT("/accounts/:id", s.updateAccount)
		authorized.DELETE("/accounts/:id", s.deleteAccount)

		authorized.POST("/transactions", s.createTransaction)
		authorized.GET("/transactions", s.listTransactions)
		authorized.PUT("/transactions/:id", s.updateTransaction)
		authorized.DELETE("/transactions/:id", s.deleteTransaction)

		authorized.POST("/budgets", s.createBudget)
		authorized.GET("/budgets", s.listBudgets)
		authorized.PUT("/budgets/:id", s.updateBudget)
		authorized.DELETE("/budgets/:id", s.deleteBudget)

		authorized.POST("/credit-cards", s.createCard)
		authorized.GET("/credit-cards", s.listCards)
		authorized.GET("/credit-cards/:id", s.getCard)
		authorized.PUT("/credit-cards/:id", s.updateCard)
		authorized.DELETE("/credit-cards/:id", s.deleteCard)
		authorized.POST("/credit-cards/:id/transactions", s.createCardTransaction)
		authorized.GET("/credit-cards/:id/transactions", s.listCardTransactions)
		authorized.DELETE("/credit-cards/:id/transactions/:txID", s.deleteCardTransaction)
		authorized.GET("/credit-cards/:id/invoices", s.listInvoices)

		authorized.POST("/patients", s.createPatient)
		authorized.GET("/patients", s.listPatients)
		authorized.PUT("/patients/:id", s.updatePatient)
		authorized.DELETE("/patients/:id", s.deletePatient)
		authorized.POST("/sessions", s.createSession)
		authorized.GET("/sessions", s.listSessions)
		authorized.POST("/patient-payments", s.createPatientPayment)
		authorized.GET("/patient-payments", s.listPatientPayments)
		authorized.PUT("/patient-payments/:id", s.updatePatientPayment)
		authorized.DELETE("/patient-payments/:id", s.deletePatientPayment)
		authorized.POST("/recurring-payments/generate", s.generateRecurring)

		authorized.GET("/reports/monthly", s.monthlyReport)
	}

	// Invoice closing keeps its function-style path for compatibility
	// with the hosted deployment it replaces.
	functions := r.Group("/functions/v1")
	functions.Use(AuthMiddleware(cfg, db))
	functions.POST("/close_credit_card_invoice", s.closeInvoice)

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	return r
}

func cors(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.AllowOrigins)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func logging() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
