package analytics

import (
	"math"
	"testing"
	"time"

	"cafe_backoffice/internal/models"
)

// expensesOf turns outflow facts back into the raw expenses they came from.
func expensesOf(outflow []models.OutflowFact) []models.Expense {
	out := make([]models.Expense, len(outflow))
	for i, o := range outflow {
		out[i] = models.Expense{ID: int64(i + 1), Date: o.Date, Amount: o.Amount, Description: o.Description}
	}
	return out
}

func TestCalculateKPIs_ZeroRevenueRatios(t *testing.T) {
	facts := models.FactSet{Outflow: sampleOutflow()}
	k := CalculateKPIs(facts, 0)
	if k.Revenue != 0 {
		t.Fatalf("Revenue expected 0, got %v", k.Revenue)
	}
	if k.ExpenseRatio != 0 || k.PayrollRatio != 0 || k.WasteRatio != 0 {
		t.Fatalf("ratios expected 0 at zero revenue, got %v/%v/%v", k.ExpenseRatio, k.PayrollRatio, k.WasteRatio)
	}
	if k.NetProfit != -k.TotalOutflow {
		t.Fatalf("NetProfit expected %v, got %v", -k.TotalOutflow, k.NetProfit)
	}
	if k.AvgOrderValue != 0 {
		t.Fatalf("AvgOrderValue expected 0 without orders, got %v", k.AvgOrderValue)
	}
}

func TestCalculateKPIs_RatiosAndBurnRate(t *testing.T) {
	facts := models.FactSet{
		Inflow: []models.InflowFact{
			{Date: day(1, 0), NetSales: 100000, CashSales: 70000, CardSales: 30000, OrdersCount: 10},
			{Date: day(2, 0), NetSales: 100000, CashSales: 70000, CardSales: 30000, OrdersCount: 15},
		},
		Outflow: sampleOutflow(),
	}
	// Window of seven days ending on March 8 starts on March 2.
	k := CalculateKPIs(facts, BurnRate(expensesOf(sampleOutflow()), day(8, 23)))

	cases := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"Revenue", k.Revenue, 200000},
		{"Expenses", k.Expenses, 60000},
		{"Payroll", k.Payroll, 50000},
		{"Waste", k.Waste, 10000},
		{"TotalOutflow", k.TotalOutflow, 120000},
		{"NetProfit", k.NetProfit, 80000},
		{"ExpenseRatio", k.ExpenseRatio, 30},
		{"PayrollRatio", k.PayrollRatio, 25},
		{"WasteRatio", k.WasteRatio, 5},
		{"BurnRate", k.BurnRate, 40000.0 / 7},
		{"Runway", k.Runway, 80000 / (40000.0 / 7)},
		{"AvgOrderValue", k.AvgOrderValue, 8000},
		{"CashSales", k.CashSales, 140000},
	}
	for _, tc := range cases {
		if math.Abs(tc.got-tc.expected) > 1e-6 {
			t.Fatalf("%s expected %v, got %v", tc.name, tc.expected, tc.got)
		}
	}
	if k.OrdersCount != 25 {
		t.Fatalf("OrdersCount expected 25, got %d", k.OrdersCount)
	}
}

func TestBurnRate_IgnoresAnalysedPeriod(t *testing.T) {
	now := day(31, 12)
	expenses := []models.Expense{
		{ID: 1, Date: day(30, 10), Amount: 70000, Description: "شراء قهوة"},
		{ID: 2, Date: day(25, 10), Amount: 14000, Description: "ثلج"},
		{ID: 3, Date: day(24, 10), Amount: 999000, Description: "ايجار"},
		{ID: 4, Date: time.Date(2025, time.February, 10, 9, 0, 0, 0, time.UTC), Amount: 50000, Description: "حليب"},
	}
	if got := BurnRate(expenses, now); math.Abs(got-12000) > 1e-6 {
		t.Fatalf("BurnRate expected 12000, got %v", got)
	}
	if w := BurnRateWindow(now); models.DayKey(w.From) != "2025-03-25" || models.DayKey(w.To) != "2025-03-31" {
		t.Fatalf("BurnRateWindow expected 2025-03-25..2025-03-31, got %s..%s", models.DayKey(w.From), models.DayKey(w.To))
	}
	if got := BurnRate(nil, now); got != 0 {
		t.Fatalf("BurnRate(nil) expected 0, got %v", got)
	}
}
