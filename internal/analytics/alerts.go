package analytics

import (
	"fmt"
	"sort"
	"time"

	"cafe_backoffice/internal/models"
)

// AlertThresholds are the fixed business limits the alert rules compare against.
type AlertThresholds struct {
	SpikeMultiplier    float64 `mapstructure:"spike_multiplier" json:"spike_multiplier"`
	MaxExpenseRatio    float64 `mapstructure:"max_expense_ratio" json:"max_expense_ratio"`
	MaxPayrollRatio    float64 `mapstructure:"max_payroll_ratio" json:"max_payroll_ratio"`
	NewVendorMinAmount float64 `mapstructure:"new_vendor_min_amount" json:"new_vendor_min_amount"`
}

// DefaultAlertThresholds returns the standard limits.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		SpikeMultiplier:    1.5,
		MaxExpenseRatio:    60,
		MaxPayrollRatio:    35,
		NewVendorMinAmount: 100000,
	}
}

// GenerateAlerts evaluates every rule independently over one period.
// Rules run in a fixed order and per-day alerts come out oldest first.
func GenerateAlerts(facts models.FactSet, kpis models.KPISet, th AlertThresholds) []models.Alert {
	alerts := []models.Alert{}
	daily := DailyTrend(facts.Inflow, facts.Outflow)
	dates := dayDates(facts)

	for _, d := range daily {
		if d.Revenue == 0 && d.Expenses > 0 {
			alerts = append(alerts, models.Alert{
				Type:    models.AlertDanger,
				Code:    models.AlertZeroSalesWithSpend,
				Message: fmt.Sprintf("لا توجد مبيعات يوم %s رغم صرف %s", d.Date, formatMoney(d.Expenses)),
				Date:    dates[d.Date],
			})
		}
	}

	var outflowDays int
	var outflowSum float64
	for _, d := range daily {
		if d.Expenses > 0 {
			outflowDays++
			outflowSum += d.Expenses
		}
	}
	if outflowDays > 0 {
		mean := outflowSum / float64(outflowDays)
		for _, d := range daily {
			if d.Expenses > th.SpikeMultiplier*mean {
				alerts = append(alerts, models.Alert{
					Type:    models.AlertWarning,
					Code:    models.AlertExpenseSpike,
					Message: fmt.Sprintf("مصروفات يوم %s (%s) أعلى من %.1f ضعف المعدل اليومي (%s)", d.Date, formatMoney(d.Expenses), th.SpikeMultiplier, formatMoney(mean)),
					Date:    dates[d.Date],
				})
			}
		}
	}

	if kpis.ExpenseRatio > th.MaxExpenseRatio {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertDanger,
			Code:    models.AlertHighExpenseRatio,
			Message: fmt.Sprintf("نسبة المصروفات %s من الإيرادات تتجاوز الحد %s", formatPercent(kpis.ExpenseRatio), formatPercent(th.MaxExpenseRatio)),
		})
	}
	if kpis.PayrollRatio > th.MaxPayrollRatio {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertWarning,
			Code:    models.AlertHighPayrollRatio,
			Message: fmt.Sprintf("نسبة الرواتب %s من الإيرادات تتجاوز الحد %s", formatPercent(kpis.PayrollRatio), formatPercent(th.MaxPayrollRatio)),
		})
	}
	if kpis.NetProfit < 0 {
		alerts = append(alerts, models.Alert{
			Type:    models.AlertDanger,
			Code:    models.AlertNegativeProfit,
			Message: fmt.Sprintf("صافي الربح سالب: %s", formatMoney(kpis.NetProfit)),
		})
	}

	alerts = append(alerts, newVendorAlerts(facts.Outflow, th.NewVendorMinAmount)...)
	return alerts
}

type vendorSeen struct {
	count  int
	amount float64
	date   time.Time
}

func newVendorAlerts(outflow []models.OutflowFact, minAmount float64) []models.Alert {
	seen := make(map[string]*vendorSeen)
	for _, o := range outflow {
		if o.Vendor == nil {
			continue
		}
		v, ok := seen[*o.Vendor]
		if !ok {
			v = &vendorSeen{date: o.Date}
			seen[*o.Vendor] = v
		}
		v.count++
		v.amount += o.Amount
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	alerts := []models.Alert{}
	for _, name := range names {
		v := seen[name]
		if v.count != 1 || v.amount <= minAmount {
			continue
		}
		date := models.StartOfDay(v.date)
		alerts = append(alerts, models.Alert{
			Type:    models.AlertInfo,
			Code:    models.AlertNewVendor,
			Message: fmt.Sprintf("مورد جديد \"%s\" بمبلغ %s", name, formatMoney(v.amount)),
			Date:    &date,
		})
	}
	return alerts
}

// dayDates maps a day key to the first fact date seen on that day.
func dayDates(facts models.FactSet) map[string]*time.Time {
	dates := make(map[string]*time.Time)
	add := func(t time.Time) {
		k := models.DayKey(t)
		if _, ok := dates[k]; !ok {
			d := models.StartOfDay(t)
			dates[k] = &d
		}
	}
	for _, in := range facts.Inflow {
		add(in.Date)
	}
	for _, o := range facts.Outflow {
		add(o.Date)
	}
	return dates
}
