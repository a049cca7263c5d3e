package models

import "time"

// TakeawayLabel is stored in TableLabel for orders not served at a table.
const TakeawayLabel = "takeaway"

// Order is a point-of-sale order as exported by the register.
// TotalAmount is what the customer was charged; Discount was already taken off it.
type Order struct {
	ID          int64     `json:"id" db:"id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Discount    float64   `json:"discount" db:"discount_amount"`
	TableLabel  string    `json:"table_label" db:"table_label"` // table name or "takeaway"
}

// IsTakeaway reports whether the order was not served at a table.
func (o Order) IsTakeaway() bool {
	return o.TableLabel == "" || o.TableLabel == TakeawayLabel
}

// DailyReceipt is the cash-register closing sheet for one shift of one day.
type DailyReceipt struct {
	ID            int64     `json:"id" db:"id"`
	Date          time.Time `json:"date" db:"receipt_date"`
	ShiftNumber   int       `json:"shift_number" db:"shift_number"`
	OpeningCash   float64   `json:"opening_cash" db:"opening_cash"`
	TotalSales    float64   `json:"total_sales" db:"total_sales"`
	TotalExpenses float64   `json:"total_expenses" db:"total_expenses"`
	ClosingCash   float64   `json:"closing_cash" db:"closing_cash"`
	ExpectedCash  float64   `json:"expected_cash" db:"expected_cash"`
	Discrepancy   float64   `json:"discrepancy" db:"discrepancy"`
	IsClosed      bool      `json:"is_closed" db:"is_closed"`
}
