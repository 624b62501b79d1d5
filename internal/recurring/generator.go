package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fincare-backend/internal/clock"
	"fincare-backend/internal/logger"
	"fincare-backend/internal/models"
)

const (
	// maxTemplatesPerRun bounds how many templates one run considers.
	maxTemplatesPerRun = 50
	// lookaheadMonths bounds how far into the future payments are created.
	lookaheadMonths = 6
	// maxPerTemplate is a hard cap on emissions per template per run,
	// independent of the date bound.
	maxPerTemplate = 24
)

// Report is the outcome of one generation run. A failing template is
// recorded here and skipped instead of aborting the run, so callers can
// see partial failure explicitly.
type Report struct {
	Templates int             `json:"templates"`
	Generated int             `json:"generated"`
	Skipped   int             `json:"skipped"`
	Errors    []TemplateError `json:"errors,omitempty"`
}

// TemplateError ties a failure to the template it happened on.
// TemplateID 0 marks a run-level failure (template load or batch insert).
type TemplateError struct {
	TemplateID uint   `json:"template_id"`
	Message    string `json:"message"`
}

// Generator expands recurring payment templates into concrete pending
// payments. Idempotent per (patient, date): a date already covered by a
// generated payment is skipped, so re-running never duplicates.
type Generator struct {
	store Store
	clock clock.Clock
	log   zerolog.Logger
}

func NewGenerator(store Store, clk clock.Clock) *Generator {
	return &Generator{store: store, clock: clk, log: logger.WithComponent("recurring")}
}

// Run expands all of the user's templates and batch-inserts the new
// payments. It never returns an error; failures end up in the Report.
func (g *Generator) Run(ctx context.Context, userID uint) Report {
	var report Report

	templates, err := g.store.Templates(ctx, userID, maxTemplatesPerRun)
	if err != nil {
		g.log.Error().Err(err).Uint("user_id", userID).Msg("loading recurring templates failed")
		report.Errors = append(report.Errors, TemplateError{Message: err.Error()})
		return report
	}
	report.Templates = len(templates)

	today := DateOnly(g.clock.Now())
	horizon := today.AddDate(0, lookaheadMonths, 0)

	var batch []models.PatientPayment
	seen := make(map[string]bool) // dedupe within the run across templates

	for _, tpl := range templates {
		emitted, skipped, err := g.expand(ctx, tpl, horizon, seen)
		if err != nil {
			g.log.Error().Err(err).Uint("template_id", tpl.ID).Msg("template expansion failed")
			report.Errors = append(report.Errors, TemplateError{TemplateID: tpl.ID, Message: err.Error()})
			continue
		}
		batch = append(batch, emitted...)
		report.Generated += len(emitted)
		report.Skipped += skipped
	}

	if len(batch) > 0 {
		if err := g.store.InsertPayments(ctx, batch); err != nil {
			g.log.Error().Err(err).Uint("user_id", userID).Msg("inserting generated payments failed")
			report.Generated = 0
			report.Errors = append(report.Errors, TemplateError{Message: err.Error()})
			return report
		}
	}

	g.log.Info().
		Uint("user_id", userID).
		Int("templates", report.Templates).
		Int("generated", report.Generated).
		Int("skipped", report.Skipped).
		Msg("recurring generation run complete")
	return report
}

// expand walks one template's schedule from its anchor date, collecting
// uncovered dates. It stops at the horizon, the template's end date, or
// after maxPerTemplate emissions, whichever comes first.
func (g *Generator) expand(ctx context.Context, tpl models.PatientPayment, horizon time.Time, seen map[string]bool) (emitted []models.PatientPayment, skipped int, err error) {
	freq := Frequency(tpl.RecurringFrequency)
	if !freq.IsValid() {
		return nil, 0, fmt.Errorf("invalid recurring frequency %q", tpl.RecurringFrequency)
	}
	// A day outside 1-31 would make the monthly step a fixed point and the
	// walk below would never terminate.
	if tpl.RecurringDay < 1 || tpl.RecurringDay > 31 {
		return nil, 0, fmt.Errorf("invalid recurring day %d", tpl.RecurringDay)
	}

	limit := horizon
	if tpl.RecurringUntil != nil && tpl.RecurringUntil.Before(limit) {
		limit = DateOnly(*tpl.RecurringUntil)
	}

	next := NextDate(DateOnly(tpl.PaymentDate), freq, tpl.RecurringDay)
	for !next.After(limit) && len(emitted) < maxPerTemplate {
		key := fmt.Sprintf("%d:%s", tpl.PatientID, next.Format("2006-01-02"))
		if seen[key] {
			skipped++
			next = NextDate(next, freq, tpl.RecurringDay)
			continue
		}

		exists, err := g.store.HasGeneratedPaymentOn(ctx, tpl.UserID, tpl.PatientID, next)
		if err != nil {
			return nil, skipped, err
		}
		if exists {
			skipped++
		} else {
			templateID := tpl.ID
			emitted = append(emitted, models.PatientPayment{
				UserID:          tpl.UserID,
				PatientID:       tpl.PatientID,
				Amount:          tpl.Amount,
				PaymentDate:     next,
				PaymentMethod:   tpl.PaymentMethod,
				Description:     tpl.Description,
				Status:          models.PaymentPending,
				IsRecurring:     false,
				ParentPaymentID: &templateID,
			})
		}
		seen[key] = true

		next = NextDate(next, freq, tpl.RecurringDay)
	}
	return emitted, skipped, nil
}
