package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"cafe_backoffice/internal/analytics"
	"cafe_backoffice/internal/models"
	"cafe_backoffice/internal/repositories"
)

var now = time.Date(2025, time.March, 20, 15, 0, 0, 0, time.UTC)

func march(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

type fakeOrders struct {
	orders []models.Order
	err    error
}

func (f *fakeOrders) ListOrders(context.Context, time.Time, time.Time) ([]models.Order, error) {
	return f.orders, f.err
}
func (f *fakeOrders) BulkCreate(_ context.Context, o []models.Order) (int, error) { return len(o), nil }

type fakeReceipts struct {
	receipts []models.DailyReceipt
	err      error
}

func (f *fakeReceipts) ListReceipts(context.Context, time.Time, time.Time) ([]models.DailyReceipt, error) {
	return f.receipts, f.err
}
func (f *fakeReceipts) BulkCreate(_ context.Context, r []models.DailyReceipt) (int, error) {
	return len(r), nil
}

type fakeExpenses struct {
	expenses []models.Expense
	err      error
	calls    int
}

func (f *fakeExpenses) ListExpenses(_ context.Context, from, to time.Time) ([]models.Expense, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	window := models.NewPeriod(from, to)
	var out []models.Expense
	for _, e := range f.expenses {
		if window.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f *fakeExpenses) BulkCreate(_ context.Context, e []models.Expense) (int, error) {
	return len(e), nil
}

type fakeStaff struct {
	staff []models.StaffMember
	err   error
}

func (f *fakeStaff) ListStaff(context.Context) ([]models.StaffMember, error) { return f.staff, f.err }
func (f *fakeStaff) BulkCreate(_ context.Context, s []models.StaffMember) (int, error) {
	return len(s), nil
}

type mapCache struct {
	entries    map[string]string
	gets, sets int
}

func newMapCache() *mapCache { return &mapCache{entries: map[string]string{}} }

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.gets++
	v, ok := c.entries[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, report string) {
	c.sets++
	c.entries[key] = report
}

type fixture struct {
	orders   *fakeOrders
	receipts *fakeReceipts
	expenses *fakeExpenses
	staff    *fakeStaff
	cache    *mapCache
	svc      AnalyticsService
}

func newFixture() *fixture {
	f := &fixture{
		orders:   &fakeOrders{},
		receipts: &fakeReceipts{},
		expenses: &fakeExpenses{},
		staff:    &fakeStaff{},
		cache:    newMapCache(),
	}
	for d := 1; d <= 10; d++ {
		f.receipts.receipts = append(f.receipts.receipts, models.DailyReceipt{ID: int64(d), Date: march(d), ShiftNumber: 1, TotalSales: 150000, IsClosed: true})
	}
	f.orders.orders = []models.Order{
		{ID: 1, CreatedAt: march(2).Add(20 * time.Hour), TotalAmount: 9000, TableLabel: "T1"},
	}
	f.expenses.expenses = []models.Expense{
		{ID: 1, Date: march(2), Category: "رواتب", Amount: 300000, Description: "راتب سالم"},
		{ID: 2, Date: march(3), Category: "مواد", Amount: 45000, Description: "شراء قهوة من شركة الريم"},
	}
	engine := analytics.NewEngine(nil, analytics.WithClock(func() time.Time { return now }))
	f.svc = NewAnalyticsService(f.orders, f.receipts, f.expenses, f.staff, engine, f.cache)
	return f
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		start, end string
		from, to   string
		err        bool
	}{
		{"", "", "2025-02-19", "2025-03-20", false},
		{"2025-03-01", "2025-03-10", "2025-03-01", "2025-03-10", false},
		{"2025-03-05", "", "2025-03-05", "2025-03-20", false},
		{"", "2025-01-30", "2025-01-01", "2025-01-30", false},
		{"2025-03-10", "2025-03-01", "", "", true},
		{"03/01/2025", "", "", "", true},
		{"", "yesterday", "", "", true},
	}
	for _, tc := range cases {
		p, err := ParsePeriod(tc.start, tc.end, now)
		if tc.err {
			if !errors.Is(err, ErrInvalidPeriod) {
				t.Fatalf("ParsePeriod(%q, %q) expected ErrInvalidPeriod, got %v", tc.start, tc.end, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePeriod(%q, %q) unexpected error: %v", tc.start, tc.end, err)
		}
		if models.DayKey(p.From) != tc.from || models.DayKey(p.To) != tc.to {
			t.Fatalf("ParsePeriod(%q, %q) expected %s..%s, got %s..%s", tc.start, tc.end, tc.from, tc.to,
				models.DayKey(p.From), models.DayKey(p.To))
		}
	}
}

func TestLoadRecords(t *testing.T) {
	f := newFixture()
	records, err := f.svc.LoadRecords(context.Background(), models.NewPeriod(march(1), march(31)))
	if err != nil {
		t.Fatalf("LoadRecords unexpected error: %v", err)
	}
	if len(records.Receipts) != 10 || len(records.Expenses) != 2 || len(records.Orders) != 1 {
		t.Fatalf("LoadRecords expected 10 receipts, 2 expenses, 1 order, got %d/%d/%d",
			len(records.Receipts), len(records.Expenses), len(records.Orders))
	}
}

func TestLoadRecords_HistoricalPeriodKeepsBurnRate(t *testing.T) {
	f := newFixture()
	f.expenses.expenses = append(f.expenses.expenses,
		models.Expense{ID: 3, Date: time.Date(2025, time.February, 12, 0, 0, 0, 0, time.UTC), Category: "مواد", Amount: 40000, Description: "شراء حليب"},
		models.Expense{ID: 4, Date: march(18), Category: "مواد", Amount: 70000, Description: "شراء قهوة"},
	)
	feb := models.NewPeriod(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))

	records, err := f.svc.LoadRecords(context.Background(), feb)
	if err != nil {
		t.Fatalf("LoadRecords unexpected error: %v", err)
	}
	if f.expenses.calls != 2 || len(records.Expenses) != 2 {
		t.Fatalf("LoadRecords expected the period plus the trailing week, got %d calls and %d expenses",
			f.expenses.calls, len(records.Expenses))
	}

	res, err := f.svc.Analyze(context.Background(), feb)
	if err != nil {
		t.Fatalf("Analyze unexpected error: %v", err)
	}
	if res.KPIs.Expenses != 40000 || res.KPIs.BurnRate != 10000 {
		t.Fatalf("Analyze expected February expenses 40000 and burn rate 10000, got %v/%v", res.KPIs.Expenses, res.KPIs.BurnRate)
	}
}

func TestLoadRecords_PeriodCoversBurnWindow(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.LoadRecords(context.Background(), models.NewPeriod(march(1), march(31))); err != nil {
		t.Fatalf("LoadRecords unexpected error: %v", err)
	}
	if f.expenses.calls != 1 {
		t.Fatalf("LoadRecords expected a single expense query, got %d", f.expenses.calls)
	}
}

func TestReportCacheKey(t *testing.T) {
	records := models.RecordSet{Receipts: []models.DailyReceipt{{ID: 1, Date: march(1), TotalSales: 1000}}}
	period := models.NewPeriod(march(1), march(31))
	defaults := analytics.NewEngine(nil).Settings()
	tuned := analytics.NewEngine(nil, analytics.WithCashShare(0.5)).Settings()

	base, err := ReportCacheKey(records, defaults, period, models.ReportFull, now)
	if err != nil {
		t.Fatalf("ReportCacheKey error: %v", err)
	}
	if !strings.HasPrefix(base, "analytics:") || !strings.HasSuffix(base, ":2025-03-01:2025-03-31:full:2025-03-20") {
		t.Fatalf("ReportCacheKey unexpected layout %s", base)
	}
	same, _ := ReportCacheKey(records, defaults, period, models.ReportFull, now.Add(time.Hour))
	if same != base {
		t.Fatalf("ReportCacheKey expected the same key within a day")
	}
	cases := map[string]func() (string, error){
		"next day": func() (string, error) {
			return ReportCacheKey(records, defaults, period, models.ReportFull, now.AddDate(0, 0, 1))
		},
		"engine settings": func() (string, error) {
			return ReportCacheKey(records, tuned, period, models.ReportFull, now)
		},
		"records": func() (string, error) {
			return ReportCacheKey(models.RecordSet{}, defaults, period, models.ReportFull, now)
		},
	}
	for name, key := range cases {
		got, err := key()
		if err != nil || got == base {
			t.Fatalf("ReportCacheKey(%s) expected a new key, got %s (%v)", name, got, err)
		}
	}
}

func TestLoadRecords_RepositoryError(t *testing.T) {
	f := newFixture()
	f.expenses.err = fmt.Errorf("%w: listing expenses: connection refused", repositories.ErrDatabaseError)
	_, err := f.svc.LoadRecords(context.Background(), models.NewPeriod(march(1), march(31)))
	if !errors.Is(err, repositories.ErrDatabaseError) {
		t.Fatalf("LoadRecords expected ErrDatabaseError, got %v", err)
	}
	if _, err := f.svc.Report(context.Background(), models.NewPeriod(march(1), march(31)), "full"); !errors.Is(err, repositories.ErrDatabaseError) {
		t.Fatalf("Report expected ErrDatabaseError, got %v", err)
	}
}

func TestReport_Cached(t *testing.T) {
	f := newFixture()
	period := models.NewPeriod(march(1), march(31))

	first, err := f.svc.Report(context.Background(), period, "full")
	if err != nil {
		t.Fatalf("Report unexpected error: %v", err)
	}
	if !strings.Contains(first, "# تقرير الأداء المالي") {
		t.Fatalf("Report expected a rendered report, got:\n%s", first)
	}
	if f.cache.sets != 1 {
		t.Fatalf("Report expected 1 cache write, got %d", f.cache.sets)
	}

	second, err := f.svc.Report(context.Background(), period, "full")
	if err != nil || second != first {
		t.Fatalf("Report expected the cached report, got err=%v", err)
	}
	if f.cache.sets != 1 {
		t.Fatalf("Report expected no second cache write, got %d", f.cache.sets)
	}

	f.receipts.receipts[0].TotalSales = 175000
	if _, err := f.svc.Report(context.Background(), period, "full"); err != nil {
		t.Fatalf("Report unexpected error: %v", err)
	}
	if f.cache.sets != 2 {
		t.Fatalf("Report expected changed records to miss the cache, got %d writes", f.cache.sets)
	}
}

func TestReport_Modes(t *testing.T) {
	f := newFixture()
	period := models.NewPeriod(march(1), march(31))
	out, err := f.svc.Report(context.Background(), period, "forecast")
	if err != nil {
		t.Fatalf("Report(forecast) unexpected error: %v", err)
	}
	if strings.Contains(out, "## التوصيات") {
		t.Fatalf("Report(forecast) expected no recommendations section")
	}
	if _, err := f.svc.Report(context.Background(), period, "weekly"); !errors.Is(err, ErrInvalidReportMode) {
		t.Fatalf("Report(weekly) expected ErrInvalidReportMode, got %v", err)
	}
}

func TestAggregation(t *testing.T) {
	f := newFixture()
	period := models.NewPeriod(march(1), march(31))

	if _, err := f.svc.Aggregation(context.Background(), period, "weather", false); !errors.Is(err, ErrUnknownDimension) {
		t.Fatalf("Aggregation(weather) expected ErrUnknownDimension, got %v", err)
	}

	hasPayroll := func(exclude bool) bool {
		v, err := f.svc.Aggregation(context.Background(), period, " Category ", exclude)
		if err != nil {
			t.Fatalf("Aggregation(category) unexpected error: %v", err)
		}
		for _, it := range v.([]models.SummaryItem) {
			if it.Key == analytics.CategoryPayroll {
				return true
			}
		}
		return false
	}
	if !hasPayroll(false) || hasPayroll(true) {
		t.Fatalf("Aggregation(category) expected payroll only without exclude_payroll")
	}

	v, err := f.svc.Aggregation(context.Background(), period, DimensionDaily, false)
	if err != nil {
		t.Fatalf("Aggregation(daily) unexpected error: %v", err)
	}
	if daily := v.([]models.DailyTrendItem); len(daily) != 10 || daily[0].Date != "2025-03-01" {
		t.Fatalf("Aggregation(daily) expected 10 days from 2025-03-01, got %+v", daily)
	}
}

func TestExportXLSX(t *testing.T) {
	f := newFixture()
	var buf bytes.Buffer
	if err := f.svc.ExportXLSX(context.Background(), models.NewPeriod(march(1), march(31)), &buf); err != nil {
		t.Fatalf("ExportXLSX unexpected error: %v", err)
	}

	book, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("excelize.OpenReader error: %v", err)
	}
	defer book.Close()

	expected := []string{SheetKPIs, SheetDaily, SheetCategories, SheetVendors, SheetPayroll, SheetAlerts}
	got := book.GetSheetList()
	if len(got) != len(expected) {
		t.Fatalf("ExportXLSX expected sheets %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("ExportXLSX sheet %d expected %s, got %s", i, expected[i], got[i])
		}
	}

	rows, err := book.GetRows(SheetDaily)
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", SheetDaily, err)
	}
	if len(rows) != 11 || rows[0][0] != "Date" || rows[1][0] != "2025-03-01" {
		t.Fatalf("Daily sheet expected header plus 10 days, got %v", rows)
	}

	kpis, err := book.GetRows(SheetKPIs)
	if err != nil {
		t.Fatalf("GetRows(%s) error: %v", SheetKPIs, err)
	}
	if kpis[3][0] != "Revenue" || kpis[3][1] != "1500000" {
		t.Fatalf("KPIs sheet expected revenue 1500000, got %v", kpis[3])
	}
}
