package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cafe_backoffice/internal/analytics"
	"cafe_backoffice/internal/models"
	"cafe_backoffice/internal/repositories"
	"cafe_backoffice/pkg/utils"
)

var (
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrInvalidReportMode = errors.New("invalid report mode")
	ErrUnknownDimension  = errors.New("unknown aggregation dimension")
)

// DefaultPeriodDays is the window used when no start date is given.
const DefaultPeriodDays = 30

// Aggregation dimensions accepted by AnalyticsService.Aggregation.
const (
	DimensionCategory    = "category"
	DimensionSubcategory = "subcategory"
	DimensionVendor      = "vendor"
	DimensionPayer       = "payer"
	DimensionEmployee    = "employee"
	DimensionDaily       = "daily"
)

// ParsePeriod reads YYYY-MM-DD bounds. A missing end means today, a missing
// start means DefaultPeriodDays ending on end.
func ParsePeriod(start, end string, now time.Time) (models.Period, error) {
	to := models.StartOfDay(now)
	if s := strings.TrimSpace(end); s != "" {
		t, err := time.ParseInLocation(models.DateLayout, s, now.Location())
		if err != nil {
			return models.Period{}, fmt.Errorf("%w: end_date %q is not YYYY-MM-DD", ErrInvalidPeriod, end)
		}
		to = t
	}
	from := to.AddDate(0, 0, -(DefaultPeriodDays - 1))
	if s := strings.TrimSpace(start); s != "" {
		t, err := time.ParseInLocation(models.DateLayout, s, now.Location())
		if err != nil {
			return models.Period{}, fmt.Errorf("%w: start_date %q is not YYYY-MM-DD", ErrInvalidPeriod, start)
		}
		from = t
	}
	if from.After(to) {
		return models.Period{}, fmt.Errorf("%w: start_date %s is after end_date %s", ErrInvalidPeriod, models.DayKey(from), models.DayKey(to))
	}
	return models.NewPeriod(from, to), nil
}

// AnalyticsService loads records for a period and runs the engine over them.
type AnalyticsService interface {
	LoadRecords(ctx context.Context, period models.Period) (models.RecordSet, error)
	Analyze(ctx context.Context, period models.Period) (*models.AnalyticsResult, error)
	Aggregation(ctx context.Context, period models.Period, dimension string, excludePayroll bool) (interface{}, error)
	Report(ctx context.Context, period models.Period, mode string) (string, error)
	ExportXLSX(ctx context.Context, period models.Period, w io.Writer) error
	Now() time.Time
}

type analyticsService struct {
	orderRepo   repositories.OrderRepository
	receiptRepo repositories.ReceiptRepository
	expenseRepo repositories.ExpenseRepository
	staffRepo   repositories.StaffRepository
	engine      *analytics.Engine
	cache       ReportCache
	slowAfter   time.Duration
}

// NewAnalyticsService wires the record repositories to an engine. A nil cache disables caching.
func NewAnalyticsService(
	orderRepo repositories.OrderRepository,
	receiptRepo repositories.ReceiptRepository,
	expenseRepo repositories.ExpenseRepository,
	staffRepo repositories.StaffRepository,
	engine *analytics.Engine,
	cache ReportCache,
) AnalyticsService {
	if cache == nil {
		cache = NoopReportCache()
	}
	return &analyticsService{
		orderRepo:   orderRepo,
		receiptRepo: receiptRepo,
		expenseRepo: expenseRepo,
		staffRepo:   staffRepo,
		engine:      engine,
		cache:       cache,
		slowAfter:   time.Duration(utils.GetenvInt("REPORT_SLOW_MS", 500)) * time.Millisecond,
	}
}

func (s *analyticsService) Now() time.Time {
	return s.engine.Now()
}

// LoadRecords reads the four collections in parallel. The first failure cancels the rest.
// Expenses also cover the burn rate window when the period does not.
func (s *analyticsService) LoadRecords(ctx context.Context, period models.Period) (models.RecordSet, error) {
	var records models.RecordSet
	var trailing []models.Expense
	burnWindow := analytics.BurnRateWindow(s.engine.Now())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.orderRepo.ListOrders(gctx, period.From, period.To)
		records.Orders = orders
		return err
	})
	g.Go(func() error {
		receipts, err := s.receiptRepo.ListReceipts(gctx, period.From, period.To)
		records.Receipts = receipts
		return err
	})
	g.Go(func() error {
		expenses, err := s.expenseRepo.ListExpenses(gctx, period.From, period.To)
		records.Expenses = expenses
		return err
	})
	if !period.Contains(burnWindow.From) || !period.Contains(burnWindow.To) {
		g.Go(func() error {
			expenses, err := s.expenseRepo.ListExpenses(gctx, burnWindow.From, burnWindow.To)
			trailing = expenses
			return err
		})
	}
	g.Go(func() error {
		staff, err := s.staffRepo.ListStaff(gctx)
		records.Staff = staff
		return err
	})
	if err := g.Wait(); err != nil {
		return models.RecordSet{}, fmt.Errorf("loading records: %w", err)
	}
	records.Expenses = mergeExpenses(records.Expenses, trailing)

	utils.LogDebug("Records loaded", map[string]interface{}{
		"from":     models.DayKey(period.From),
		"to":       models.DayKey(period.To),
		"orders":   len(records.Orders),
		"receipts": len(records.Receipts),
		"expenses": len(records.Expenses),
		"staff":    len(records.Staff),
	})
	return records, nil
}

// mergeExpenses appends the extra expenses not already present, by ID.
func mergeExpenses(expenses, extra []models.Expense) []models.Expense {
	if len(extra) == 0 {
		return expenses
	}
	seen := make(map[int64]struct{}, len(expenses))
	for _, e := range expenses {
		seen[e.ID] = struct{}{}
	}
	for _, e := range extra {
		if _, dup := seen[e.ID]; !dup {
			expenses = append(expenses, e)
		}
	}
	return expenses
}

func (s *analyticsService) Analyze(ctx context.Context, period models.Period) (*models.AnalyticsResult, error) {
	records, err := s.LoadRecords(ctx, period)
	if err != nil {
		return nil, err
	}
	result := s.engine.Analyze(records, period)
	return &result, nil
}

func (s *analyticsService) Aggregation(ctx context.Context, period models.Period, dimension string, excludePayroll bool) (interface{}, error) {
	dimension = strings.ToLower(strings.TrimSpace(dimension))
	switch dimension {
	case DimensionCategory, DimensionSubcategory, DimensionVendor, DimensionPayer, DimensionEmployee, DimensionDaily:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDimension, dimension)
	}

	result, err := s.Analyze(ctx, period)
	if err != nil {
		return nil, err
	}
	facts := result.Facts
	switch dimension {
	case DimensionCategory:
		return analytics.ByCategory(facts.Outflow, excludePayroll), nil
	case DimensionSubcategory:
		return analytics.BySubcategory(facts.Outflow, excludePayroll), nil
	case DimensionVendor:
		return analytics.ByVendor(facts.Outflow), nil
	case DimensionPayer:
		return analytics.ByPayer(facts.Outflow), nil
	case DimensionEmployee:
		return analytics.ByEmployee(facts.Payroll), nil
	default:
		return analytics.DailyTrend(facts.Inflow, facts.Outflow), nil
	}
}

// Report renders the markdown report of a period, served from the cache when
// the underlying records have not changed.
func (s *analyticsService) Report(ctx context.Context, period models.Period, mode string) (string, error) {
	started := time.Now()
	reportMode, err := analytics.ParseReportMode(mode)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidReportMode, err)
	}

	records, err := s.LoadRecords(ctx, period)
	if err != nil {
		return "", err
	}

	key, err := ReportCacheKey(records, s.engine.Settings(), period, reportMode, s.engine.Now())
	if err != nil {
		utils.LogWarn(err, "report cache key unavailable, rendering without cache")
	} else if cached, ok := s.cache.Get(ctx, key); ok {
		utils.LogDebug("Report served from cache", map[string]interface{}{"key": key})
		return cached, nil
	}

	result := s.engine.Analyze(records, period)
	report := analytics.RenderReport(s.engine.BuildReportInput(records, result), reportMode)
	if key != "" {
		s.cache.Set(ctx, key, report)
	}
	s.logSlow("report", started, map[string]interface{}{"mode": string(reportMode), "from": models.DayKey(period.From), "to": models.DayKey(period.To)})
	return report, nil
}

func (s *analyticsService) ExportXLSX(ctx context.Context, period models.Period, w io.Writer) error {
	started := time.Now()
	result, err := s.Analyze(ctx, period)
	if err != nil {
		return err
	}
	if err := WriteWorkbook(*result, w); err != nil {
		return err
	}
	s.logSlow("export_xlsx", started, map[string]interface{}{"from": models.DayKey(period.From), "to": models.DayKey(period.To)})
	return nil
}

func (s *analyticsService) logSlow(name string, started time.Time, fields map[string]interface{}) {
	d := time.Since(started)
	if s.slowAfter <= 0 || d < s.slowAfter {
		return
	}
	fields["name"] = name
	fields["ms"] = d.Milliseconds()
	utils.LogInfo("Slow report", fields)
}
