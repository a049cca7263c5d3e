package analytics

import (
	"math"
	"time"

	"cafe_backoffice/internal/models"
)

// BurnRateWindowDays is the trailing window of the burn rate.
const BurnRateWindowDays = 7

// BurnRateWindow is the inclusive window of BurnRateWindowDays calendar days ending on now.
func BurnRateWindow(now time.Time) models.Period {
	return models.NewPeriod(now.AddDate(0, 0, -(BurnRateWindowDays - 1)), now)
}

// BurnRate is the average daily spend over BurnRateWindow(now). It reads raw
// expenses so the result does not depend on the analysed period.
func BurnRate(expenses []models.Expense, now time.Time) float64 {
	window := BurnRateWindow(now)
	var recent float64
	for _, e := range expenses {
		if window.Contains(e.Date) {
			recent += e.Amount
		}
	}
	return recent / BurnRateWindowDays
}

// CalculateKPIs reduces facts to business metrics. burnRate comes from BurnRate.
func CalculateKPIs(facts models.FactSet, burnRate float64) models.KPISet {
	k := models.KPISet{CashSplitEstimated: true}

	for _, in := range facts.Inflow {
		k.Revenue += in.NetSales
		k.CashSales += in.CashSales
		k.CardSales += in.CardSales
		k.OrdersCount += in.OrdersCount
	}

	for _, o := range facts.Outflow {
		switch o.Type {
		case models.OutflowPayroll:
			k.Payroll += o.Amount
		case models.OutflowWaste:
			k.Waste += o.Amount
		default:
			k.Expenses += o.Amount
		}
	}

	for _, p := range facts.Payroll {
		if p.Source == models.PayrollFromRoster {
			k.CommittedPayroll += p.Amount
		}
	}

	k.TotalOutflow = k.Expenses + k.Payroll + k.Waste
	k.NetProfit = k.Revenue - k.TotalOutflow
	k.BurnRate = burnRate

	k.ExpenseRatio = ratio(k.Expenses, k.Revenue)
	k.PayrollRatio = ratio(k.Payroll, k.Revenue)
	k.WasteRatio = ratio(k.Waste, k.Revenue)

	if k.BurnRate > 0 {
		k.Runway = k.NetProfit / k.BurnRate
	}
	if k.OrdersCount > 0 {
		k.AvgOrderValue = k.Revenue / float64(k.OrdersCount)
	}
	return k
}

// ratio is part as a percentage of total, never negative, 0 without a positive total.
func ratio(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Max(0, part/total*100)
}
