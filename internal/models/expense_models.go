package models

import "time"

// Expense is a free-text bookkeeping entry. Description is typed by staff and
// carries the payer, vendor and the real nature of the spend.
type Expense struct {
	ID            int64     `json:"id" db:"id"`
	Date          time.Time `json:"date" db:"expense_date"`
	Category      string    `json:"category" db:"category"`
	Amount        float64   `json:"amount" db:"amount"`
	Description   string    `json:"description" db:"description"`
	ReceiptNumber *string   `json:"receipt_number,omitempty" db:"receipt_number"`
}
