package analytics

import (
	"math"
	"testing"

	"cafe_backoffice/internal/models"
)

func strPtr(s string) *string { return &s }

func sampleOutflow() []models.OutflowFact {
	return []models.OutflowFact{
		{Date: day(1, 8), Type: models.OutflowExpense, Category: CategoryIngredients, Subcategory: "قهوة", Vendor: strPtr("شركة الريم"), Amount: 30000},
		{Date: day(1, 9), Type: models.OutflowPayroll, Category: CategoryPayroll, Subcategory: "راتب", Payer: strPtr("سالم"), Amount: 50000},
		{Date: day(2, 8), Type: models.OutflowExpense, Category: CategoryUtilities, Subcategory: "كهرباء", Amount: 20000},
		{Date: day(2, 9), Type: models.OutflowExpense, Category: CategoryIngredients, Subcategory: "حليب", Vendor: strPtr("شركة الريم"), Amount: 10000},
		{Date: day(3, 9), Type: models.OutflowWaste, Category: CategoryWaste, Subcategory: "حليب", Amount: 10000},
	}
}

func TestByCategory_PercentagesSumTo100(t *testing.T) {
	for _, exclude := range []bool{false, true} {
		items := ByCategory(sampleOutflow(), exclude)
		var sum float64
		for _, it := range items {
			sum += it.Percentage
		}
		if math.Abs(sum-100) > 1e-9 {
			t.Fatalf("ByCategory(exclude=%v) percentages expected 100, got %v", exclude, sum)
		}
		for i := 1; i < len(items); i++ {
			if items[i].Amount > items[i-1].Amount {
				t.Fatalf("ByCategory(exclude=%v) not sorted by amount: %+v", exclude, items)
			}
		}
	}
}

func TestByCategory_Ordering(t *testing.T) {
	items := ByCategory(sampleOutflow(), false)
	expected := []string{CategoryPayroll, CategoryIngredients, CategoryUtilities, CategoryWaste}
	if len(items) != len(expected) {
		t.Fatalf("ByCategory expected %d groups, got %+v", len(expected), items)
	}
	for i, key := range expected {
		if items[i].Key != key {
			t.Fatalf("ByCategory[%d] expected %s, got %s", i, key, items[i].Key)
		}
	}
	if items[1].Count != 2 || items[1].Amount != 40000 {
		t.Fatalf("ByCategory Ingredients expected 2 entries of 40000, got %+v", items[1])
	}

	excluded := ByCategory(sampleOutflow(), true)
	for _, it := range excluded {
		if it.Key == CategoryPayroll {
			t.Fatalf("ByCategory(exclude=true) still contains payroll")
		}
	}
}

func TestByVendorAndPayer_Unspecified(t *testing.T) {
	vendors := ByVendor(sampleOutflow())
	if vendors[0].Key != models.Unspecified || vendors[0].Amount != 80000 {
		t.Fatalf("ByVendor expected unspecified 80000 first, got %+v", vendors[0])
	}
	if vendors[1].Key != "شركة الريم" || vendors[1].Amount != 40000 {
		t.Fatalf("ByVendor expected شركة الريم 40000, got %+v", vendors[1])
	}
	payers := ByPayer(sampleOutflow())
	if payers[0].Key != models.Unspecified || payers[1].Key != "سالم" {
		t.Fatalf("ByPayer unexpected order %+v", payers)
	}
}

func TestByEmployee(t *testing.T) {
	payroll := []models.PayrollFact{
		{EmployeeName: "سالم", Role: "Barista", Type: models.PayrollSalary, Amount: 500000},
		{EmployeeName: "سالم", Type: models.PayrollAdvance, Amount: 50000},
		{EmployeeName: "علي", Role: "Waiter", Type: models.PayrollSalary, Amount: 400000},
		{EmployeeName: "", Type: models.PayrollBonus, Amount: 10000},
	}
	got := ByEmployee(payroll)
	if len(got) != 3 {
		t.Fatalf("ByEmployee expected 3 employees, got %d", len(got))
	}
	if got[0].EmployeeName != "سالم" || got[0].Total != 550000 || got[0].ByType[models.PayrollAdvance] != 50000 || got[0].Entries != 2 {
		t.Fatalf("ByEmployee first entry unexpected: %+v", got[0])
	}
	if got[2].EmployeeName != models.Unspecified {
		t.Fatalf("ByEmployee blank name expected %s, got %q", models.Unspecified, got[2].EmployeeName)
	}
}

func TestDailyTrend_ProfitIsRevenueMinusExpenses(t *testing.T) {
	inflow := []models.InflowFact{
		{Date: day(2, 0), NetSales: 90000},
		{Date: day(1, 0), NetSales: 100000},
		{Date: day(4, 0), NetSales: 70000},
	}
	daily := DailyTrend(inflow, sampleOutflow())
	expected := []string{"2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04"}
	if len(daily) != len(expected) {
		t.Fatalf("DailyTrend expected %d days, got %d", len(expected), len(daily))
	}
	for i, d := range daily {
		if d.Date != expected[i] {
			t.Fatalf("DailyTrend[%d] expected %s, got %s", i, expected[i], d.Date)
		}
		if d.Profit != d.Revenue-d.Expenses {
			t.Fatalf("DailyTrend %s profit expected %v, got %v", d.Date, d.Revenue-d.Expenses, d.Profit)
		}
	}
	if daily[2].Revenue != 0 || daily[2].Expenses != 10000 {
		t.Fatalf("DailyTrend 2025-03-03 unexpected %+v", daily[2])
	}
}

func TestRank_EmptyInput(t *testing.T) {
	if got := ByCategory(nil, false); len(got) != 0 {
		t.Fatalf("ByCategory(nil) expected empty, got %+v", got)
	}
}
