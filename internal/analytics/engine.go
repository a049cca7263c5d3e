package analytics

import (
	"fmt"
	"time"

	"cafe_backoffice/internal/models"
)

// Engine runs the whole pipeline: classify, transform, measure, alert, aggregate.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	classifier  *Classifier
	cashShare   float64
	thresholds  AlertThresholds
	clock       func() time.Time
	transformer *Transformer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock used for burn rate, roster month and report timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithCashShare sets the share of sales booked as cash.
func WithCashShare(share float64) Option {
	return func(e *Engine) { e.cashShare = share }
}

// WithAlertThresholds replaces the default alert limits.
func WithAlertThresholds(th AlertThresholds) Option {
	return func(e *Engine) { e.thresholds = th }
}

// NewEngine builds an engine around classifier, DefaultClassifier when nil.
func NewEngine(classifier *Classifier, opts ...Option) *Engine {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	e := &Engine{
		classifier: classifier,
		cashShare:  DefaultCashShare,
		thresholds: DefaultAlertThresholds(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.transformer = NewTransformer(e.classifier, e.cashShare, e.clock)
	return e
}

// Now is the engine's notion of the current time.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// Settings renders the tunables that change the engine's output, for cache keys.
func (e *Engine) Settings() string {
	th := e.thresholds
	return fmt.Sprintf("cash_share=%g;spike=%g;max_expense=%g;max_payroll=%g;new_vendor=%g",
		e.cashShare, th.SpikeMultiplier, th.MaxExpenseRatio, th.MaxPayrollRatio, th.NewVendorMinAmount)
}

// Classifier returns the classifier the engine was built with.
func (e *Engine) Classifier() *Classifier {
	return e.classifier
}

// Analyze computes facts, KPIs, alerts and aggregations for the period. Expenses
// outside the period only feed the burn rate.
func (e *Engine) Analyze(records models.RecordSet, period models.Period) models.AnalyticsResult {
	facts := e.transformer.Transform(records, period)
	kpis := CalculateKPIs(facts, BurnRate(records.Expenses, e.clock()))
	return models.AnalyticsResult{
		Period:       period,
		Facts:        facts,
		KPIs:         kpis,
		Alerts:       GenerateAlerts(facts, kpis, e.thresholds),
		Aggregations: Aggregate(facts, false),
	}
}

// BuildReportInput adds forecast, anomalies, weekly patterns and peak hours to an
// analysis. Peak hours only count orders inside the analysed period.
func (e *Engine) BuildReportInput(records models.RecordSet, result models.AnalyticsResult) models.ReportInput {
	series := DailySalesSeries(result.Facts.Inflow)

	orders := make([]models.Order, 0, len(records.Orders))
	for _, o := range records.Orders {
		if result.Period.Contains(o.CreatedAt) {
			orders = append(orders, o)
		}
	}

	return models.ReportInput{
		GeneratedAt:  e.clock(),
		Period:       result.Period,
		KPIs:         result.KPIs,
		Limits:       models.RatioLimits{MaxExpenseRatio: e.thresholds.MaxExpenseRatio, MaxPayrollRatio: e.thresholds.MaxPayrollRatio},
		Alerts:       result.Alerts,
		Aggregations: result.Aggregations,
		TopSpend:     ByCategory(result.Facts.Outflow, true),
		Patterns:     AnalyzePatterns(series),
		PeakHours:    PeakHours(orders, DefaultPeakHours),
		Forecast:     Forecast(series, MaxForecastHorizon),
		Anomalies:    DetectAnomalies(series),
	}
}
