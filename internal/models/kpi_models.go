package models

import "time"

// KPISet holds the business metrics of a period.
// Ratios are percentages of revenue; BurnRate is relative to wall-clock now,
// not to the period.
type KPISet struct {
	Revenue            float64 `json:"revenue"`
	Expenses           float64 `json:"expenses"`
	Payroll            float64 `json:"payroll"`
	Waste              float64 `json:"waste"`
	TotalOutflow       float64 `json:"total_outflow"`
	NetProfit          float64 `json:"net_profit"`
	BurnRate           float64 `json:"burn_rate"`
	ExpenseRatio       float64 `json:"expense_ratio"`
	PayrollRatio       float64 `json:"payroll_ratio"`
	WasteRatio         float64 `json:"waste_ratio"`
	Runway             float64 `json:"runway"`
	CashSales          float64 `json:"cash_sales"`
	CardSales          float64 `json:"card_sales"`
	CashSplitEstimated bool    `json:"cash_split_estimated"`
	OrdersCount        int     `json:"orders_count"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	CommittedPayroll   float64 `json:"committed_payroll"`
}

// AlertType is the severity of an alert.
type AlertType string

const (
	AlertDanger  AlertType = "danger"
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
)

// Alert codes.
const (
	AlertZeroSalesWithSpend = "ZERO_SALES_WITH_SPEND"
	AlertExpenseSpike       = "EXPENSE_SPIKE"
	AlertHighExpenseRatio   = "HIGH_EXPENSE_RATIO"
	AlertHighPayrollRatio   = "HIGH_PAYROLL_RATIO"
	AlertNegativeProfit     = "NEGATIVE_PROFIT"
	AlertNewVendor          = "NEW_VENDOR"
)

// Alert is a rule hit.
type Alert struct {
	Type    AlertType  `json:"type"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Date    *time.Time `json:"date,omitempty"`
}
