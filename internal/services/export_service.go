package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"cafe_backoffice/internal/models"
)

// Workbook sheet names, in tab order.
const (
	SheetKPIs       = "KPIs"
	SheetDaily      = "Daily"
	SheetCategories = "Categories"
	SheetVendors    = "Vendors"
	SheetPayroll    = "Payroll"
	SheetAlerts     = "Alerts"
)

// XLSXContentType is the MIME type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func (s *sheetWriter) put(values ...interface{}) {
	if s.err != nil {
		return
	}
	s.row++
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		s.err = err
		return
	}
	s.err = s.f.SetSheetRow(s.sheet, cell, &values)
}

// WriteWorkbook renders an analysis as an XLSX workbook with one sheet per view.
func WriteWorkbook(result models.AnalyticsResult, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetKPIs); err != nil {
		return fmt.Errorf("preparing workbook: %w", err)
	}
	for _, name := range []string{SheetDaily, SheetCategories, SheetVendors, SheetPayroll, SheetAlerts} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %s: %w", name, err)
		}
	}

	k := result.KPIs
	kpis := &sheetWriter{f: f, sheet: SheetKPIs}
	kpis.put("Metric", "Value")
	kpis.put("Period from", models.DayKey(result.Period.From))
	kpis.put("Period to", models.DayKey(result.Period.To))
	kpis.put("Revenue", k.Revenue)
	kpis.put("Expenses", k.Expenses)
	kpis.put("Payroll", k.Payroll)
	kpis.put("Waste", k.Waste)
	kpis.put("Total outflow", k.TotalOutflow)
	kpis.put("Net profit", k.NetProfit)
	kpis.put("Expense ratio %", k.ExpenseRatio)
	kpis.put("Payroll ratio %", k.PayrollRatio)
	kpis.put("Waste ratio %", k.WasteRatio)
	kpis.put("Burn rate / day", k.BurnRate)
	kpis.put("Runway days", k.Runway)
	kpis.put("Orders", k.OrdersCount)
	kpis.put("Average order value", k.AvgOrderValue)
	kpis.put("Cash sales (estimated)", k.CashSales)
	kpis.put("Card sales (estimated)", k.CardSales)
	kpis.put("Committed payroll", k.CommittedPayroll)

	daily := &sheetWriter{f: f, sheet: SheetDaily}
	daily.put("Date", "Revenue", "Expenses", "Profit")
	for _, d := range result.Aggregations.Daily {
		daily.put(d.Date, d.Revenue, d.Expenses, d.Profit)
	}

	cats := &sheetWriter{f: f, sheet: SheetCategories}
	cats.put("Category", "Amount", "Count", "Percentage")
	for _, c := range result.Aggregations.ByCategory {
		cats.put(c.Key, c.Amount, c.Count, c.Percentage)
	}

	vendors := &sheetWriter{f: f, sheet: SheetVendors}
	vendors.put("Vendor", "Amount", "Count", "Percentage")
	for _, v := range result.Aggregations.ByVendor {
		vendors.put(v.Key, v.Amount, v.Count, v.Percentage)
	}

	payroll := &sheetWriter{f: f, sheet: SheetPayroll}
	payroll.put("Employee", "Role", "Total", "Salary", "Advance", "Bonus", "Deduction", "Overtime", "Entries")
	for _, e := range result.Aggregations.ByEmployee {
		payroll.put(e.EmployeeName, e.Role, e.Total,
			e.ByType[models.PayrollSalary], e.ByType[models.PayrollAdvance], e.ByType[models.PayrollBonus],
			e.ByType[models.PayrollDeduction], e.ByType[models.PayrollOvertime], e.Entries)
	}

	alerts := &sheetWriter{f: f, sheet: SheetAlerts}
	alerts.put("Type", "Code", "Date", "Message")
	for _, a := range result.Alerts {
		date := ""
		if a.Date != nil {
			date = models.DayKey(*a.Date)
		}
		alerts.put(string(a.Type), a.Code, date, a.Message)
	}

	for _, s := range []*sheetWriter{kpis, daily, cats, vendors, payroll, alerts} {
		if s.err != nil {
			return fmt.Errorf("writing sheet %s: %w", s.sheet, s.err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
