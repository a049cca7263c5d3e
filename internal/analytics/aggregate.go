package analytics

import (
	"sort"
	"strings"

	"cafe_backoffice/internal/models"
)

// rank groups items by key, sums their amounts and sorts the groups by amount,
// largest first, ties broken by key.
func rank[T any](items []T, key func(T) string, amount func(T) float64) []models.SummaryItem {
	index := make(map[string]int)
	out := []models.SummaryItem{}
	var total float64
	for _, it := range items {
		k := key(it)
		a := amount(it)
		total += a
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.SummaryItem{Key: k})
		}
		out[i].Amount += a
		out[i].Count++
	}
	for i := range out {
		out[i].Percentage = ratio(out[i].Amount, total)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func filterOutflow(outflow []models.OutflowFact, excludePayroll bool) []models.OutflowFact {
	if !excludePayroll {
		return outflow
	}
	kept := make([]models.OutflowFact, 0, len(outflow))
	for _, o := range outflow {
		if o.Type != models.OutflowPayroll {
			kept = append(kept, o)
		}
	}
	return kept
}

func outflowAmount(o models.OutflowFact) float64 { return o.Amount }

func orUnspecified(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return models.Unspecified
	}
	return *s
}

// ByCategory ranks outflow by category. excludePayroll gives the "expenses only" view.
func ByCategory(outflow []models.OutflowFact, excludePayroll bool) []models.SummaryItem {
	return rank(filterOutflow(outflow, excludePayroll),
		func(o models.OutflowFact) string { return o.Category }, outflowAmount)
}

// BySubcategory ranks outflow by subcategory.
func BySubcategory(outflow []models.OutflowFact, excludePayroll bool) []models.SummaryItem {
	return rank(filterOutflow(outflow, excludePayroll),
		func(o models.OutflowFact) string { return o.Subcategory }, outflowAmount)
}

// ByVendor ranks outflow by vendor; entries without a vendor go under Unspecified.
func ByVendor(outflow []models.OutflowFact) []models.SummaryItem {
	return rank(outflow, func(o models.OutflowFact) string { return orUnspecified(o.Vendor) }, outflowAmount)
}

// ByPayer ranks outflow by payer; entries without a payer go under Unspecified.
func ByPayer(outflow []models.OutflowFact) []models.SummaryItem {
	return rank(outflow, func(o models.OutflowFact) string { return orUnspecified(o.Payer) }, outflowAmount)
}

// ByEmployee totals payroll per employee with a breakdown per payroll type.
func ByEmployee(payroll []models.PayrollFact) []models.EmployeeSummary {
	index := make(map[string]int)
	out := []models.EmployeeSummary{}
	for _, p := range payroll {
		name := p.EmployeeName
		if strings.TrimSpace(name) == "" {
			name = models.Unspecified
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, models.EmployeeSummary{EmployeeName: name, ByType: map[models.PayrollType]float64{}})
		}
		if out[i].Role == "" {
			out[i].Role = p.Role
		}
		out[i].Total += p.Amount
		out[i].ByType[p.Type] += p.Amount
		out[i].Entries++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].EmployeeName < out[j].EmployeeName
	})
	return out
}

// DailyTrend lines up sales and outflow per day over every date present in
// either collection, oldest first.
func DailyTrend(inflow []models.InflowFact, outflow []models.OutflowFact) []models.DailyTrendItem {
	days := make(map[string]*models.DailyTrendItem)
	get := func(k string) *models.DailyTrendItem {
		d, ok := days[k]
		if !ok {
			d = &models.DailyTrendItem{Date: k}
			days[k] = d
		}
		return d
	}
	for _, in := range inflow {
		get(models.DayKey(in.Date)).Revenue += in.NetSales
	}
	for _, o := range outflow {
		get(models.DayKey(o.Date)).Expenses += o.Amount
	}

	out := make([]models.DailyTrendItem, 0, len(days))
	for _, d := range days {
		d.Profit = d.Revenue - d.Expenses
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Aggregate computes every summary of a fact set.
func Aggregate(facts models.FactSet, excludePayroll bool) models.Aggregations {
	return models.Aggregations{
		ByCategory:    ByCategory(facts.Outflow, excludePayroll),
		BySubcategory: BySubcategory(facts.Outflow, excludePayroll),
		ByVendor:      ByVendor(facts.Outflow),
		ByPayer:       ByPayer(facts.Outflow),
		ByEmployee:    ByEmployee(facts.Payroll),
		Daily:         DailyTrend(facts.Inflow, facts.Outflow),
	}
}
