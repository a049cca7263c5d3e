package seed

import (
	"reflect"
	"testing"
	"time"

	"cafe_backoffice/internal/analytics"
	"cafe_backoffice/internal/models"
)

var end = time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(Options{Days: 10, Seed: 7, End: end})
	b := Generate(Options{Days: 10, Seed: 7, End: end})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Generate expected identical records for the same seed")
	}
	c := Generate(Options{Days: 10, Seed: 8, End: end})
	if reflect.DeepEqual(a, c) {
		t.Fatalf("Generate expected different records for a different seed")
	}
}

func TestGenerate_StaysInWindow(t *testing.T) {
	rs := Generate(Options{Days: 31, Seed: 42, End: end})
	period := models.NewPeriod(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), end)

	if len(rs.Staff) != len(staffRoles) {
		t.Fatalf("Generate expected %d staff, got %d", len(staffRoles), len(rs.Staff))
	}
	if len(rs.Receipts) == 0 || len(rs.Receipts) > 31 {
		t.Fatalf("Generate expected at most one receipt per day, got %d", len(rs.Receipts))
	}
	for _, o := range rs.Orders {
		if !period.Contains(o.CreatedAt) {
			t.Fatalf("order %d on %s outside window", o.ID, models.DayKey(o.CreatedAt))
		}
		if o.TotalAmount <= 0 {
			t.Fatalf("order %d expected a positive total, got %v", o.ID, o.TotalAmount)
		}
	}
	for _, e := range rs.Expenses {
		if !period.Contains(e.Date) {
			t.Fatalf("expense %d on %s outside window", e.ID, models.DayKey(e.Date))
		}
	}
}

func TestGenerate_FeedsTheEngine(t *testing.T) {
	rs := Generate(Options{Days: 31, Seed: 42, End: end})
	e := analytics.NewEngine(nil, analytics.WithClock(func() time.Time { return end.Add(20 * time.Hour) }))
	res := e.Analyze(rs, models.NewPeriod(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), end))

	if len(res.Facts.Inflow) != 31 {
		t.Fatalf("inflow expected one fact per day, got %d", len(res.Facts.Inflow))
	}
	if res.KPIs.Payroll <= 0 || res.KPIs.Expenses <= 0 {
		t.Fatalf("KPIs expected payroll and expenses, got %+v", res.KPIs)
	}
	var rent bool
	for _, c := range res.Aggregations.ByCategory {
		if c.Key == analytics.CategoryRent {
			rent = true
		}
	}
	if !rent {
		t.Fatalf("ByCategory expected the monthly rent, got %+v", res.Aggregations.ByCategory)
	}
}
