package models

import (
	"encoding/json"
	"time"
)

// OutflowType tags where money went. Exactly one per outflow fact.
type OutflowType string

const (
	OutflowExpense OutflowType = "EXPENSE"
	OutflowPayroll OutflowType = "PAYROLL"
	OutflowWaste   OutflowType = "WASTE"
)

// PayrollType is the kind of a payroll movement.
type PayrollType string

const (
	PayrollSalary    PayrollType = "SALARY"
	PayrollAdvance   PayrollType = "ADVANCE"
	PayrollBonus     PayrollType = "BONUS"
	PayrollDeduction PayrollType = "DEDUCTION"
	PayrollOvertime  PayrollType = "OVERTIME"
)

// Inflow sources.
const (
	InflowFromReceipt = "receipt"
	InflowFromOrders  = "orders"
)

// Payroll sources.
const (
	PayrollFromRoster  = "roster"
	PayrollFromExpense = "expense"
)

// Unspecified replaces a missing payer, vendor or employee name in summaries.
const Unspecified = "unspecified"

// InflowFact is one day of sales. NetSales = GrossSales - Discounts - Refunds.
type InflowFact struct {
	Date        time.Time `json:"date"`
	ShiftNumber int       `json:"shift_number"`
	ShiftCount  int       `json:"shift_count"`
	GrossSales  float64   `json:"gross_sales"`
	NetSales    float64   `json:"net_sales"`
	Discounts   float64   `json:"discounts"`
	Refunds     float64   `json:"refunds"`
	CashSales   float64   `json:"cash_sales"`
	CardSales   float64   `json:"card_sales"`
	OrdersCount int       `json:"orders_count"`
	Source      string    `json:"source"`
}

// OutflowFact is one classified expense entry.
type OutflowFact struct {
	Date          time.Time   `json:"date"`
	Type          OutflowType `json:"outflow_type"`
	Category      string      `json:"category"`
	Subcategory   string      `json:"subcategory"`
	Vendor        *string     `json:"vendor"`
	Payer         *string     `json:"payer"`
	Amount        float64     `json:"amount"`
	PaymentMethod string      `json:"payment_method"`
	HasReceipt    bool        `json:"has_receipt"`
	Description   string      `json:"description"`
}

// PayrollFact is a salary line from the roster or a payroll movement found in expenses.
type PayrollFact struct {
	PayMonth     time.Time   `json:"pay_month"`
	EmployeeName string      `json:"employee_name"`
	Role         string      `json:"role"`
	Type         PayrollType `json:"payroll_type"`
	Amount       float64     `json:"amount"`
	Note         string      `json:"note"`
	Source       string      `json:"source"`
}

// WasteQuantity is a spoilage quantity that may be unknown. The bookkeeping
// source never records quantities, so facts built from it carry Known=false.
type WasteQuantity struct {
	Value float64
	Known bool
}

// UnknownQuantity is the quantity of waste derived from free text.
var UnknownQuantity = WasteQuantity{}

// KnownQuantity wraps a measured quantity.
func KnownQuantity(v float64) WasteQuantity {
	return WasteQuantity{Value: v, Known: true}
}

func (q WasteQuantity) MarshalJSON() ([]byte, error) {
	if !q.Known {
		return []byte("null"), nil
	}
	return json.Marshal(q.Value)
}

func (q *WasteQuantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = UnknownQuantity
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = KnownQuantity(v)
	return nil
}

// WasteFact is one spoilage entry.
type WasteFact struct {
	Timestamp      time.Time     `json:"timestamp"`
	Item           string        `json:"item"`
	Quantity       WasteQuantity `json:"quantity"`
	UnitCost       float64       `json:"unit_cost"`
	EstimatedValue float64       `json:"estimated_value"`
	Note           string        `json:"note"`
}

// FactSet is the output of the fact transformer.
type FactSet struct {
	Inflow  []InflowFact  `json:"inflow"`
	Outflow []OutflowFact `json:"outflow"`
	Payroll []PayrollFact `json:"payroll"`
	Waste   []WasteFact   `json:"waste"`
}
