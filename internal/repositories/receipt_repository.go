package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/pkg/utils"
)

// ReceiptRepository reads the daily register closing sheets.
type ReceiptRepository interface {
	ListReceipts(ctx context.Context, from, to time.Time) ([]models.DailyReceipt, error)
	BulkCreate(ctx context.Context, receipts []models.DailyReceipt) (int, error)
}

type receiptRepository struct {
	db *sql.DB
}

// NewReceiptRepository creates a new instance of ReceiptRepository.
func NewReceiptRepository(db *sql.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) ListReceipts(ctx context.Context, from, to time.Time) ([]models.DailyReceipt, error) {
	query := `SELECT id, receipt_date, shift_number, opening_cash, total_sales, total_expenses,
	                 closing_cash, expected_cash, discrepancy, is_closed
	          FROM daily_receipts
	          WHERE receipt_date BETWEEN $1 AND $2
	          ORDER BY receipt_date, shift_number, id`
	rows, err := r.db.QueryContext(ctx, query, models.DayKey(from), models.DayKey(to))
	if err != nil {
		return nil, wrapDBError(err, "listing daily receipts")
	}
	return collect(rows, "daily receipts", func(s scanner) (models.DailyReceipt, error) {
		var d models.DailyReceipt
		var opening, sales, expenses, closing, expected, discrepancy decimal.Decimal
		err := s.Scan(&d.ID, &d.Date, &d.ShiftNumber, &opening, &sales, &expenses,
			&closing, &expected, &discrepancy, &d.IsClosed)
		if err != nil {
			return d, err
		}
		d.OpeningCash = utils.DecimalToFloat(opening)
		d.TotalSales = utils.DecimalToFloat(sales)
		d.TotalExpenses = utils.DecimalToFloat(expenses)
		d.ClosingCash = utils.DecimalToFloat(closing)
		d.ExpectedCash = utils.DecimalToFloat(expected)
		d.Discrepancy = utils.DecimalToFloat(discrepancy)
		return d, nil
	})
}

func (r *receiptRepository) BulkCreate(ctx context.Context, receipts []models.DailyReceipt) (int, error) {
	columns := []string{"receipt_date", "shift_number", "opening_cash", "total_sales", "total_expenses",
		"closing_cash", "expected_cash", "discrepancy", "is_closed"}
	return copyRows(ctx, r.db, "daily_receipts", columns, len(receipts), func(i int) []interface{} {
		d := receipts[i]
		return []interface{}{
			models.DayKey(d.Date), d.ShiftNumber,
			utils.FloatToDecimal(d.OpeningCash), utils.FloatToDecimal(d.TotalSales), utils.FloatToDecimal(d.TotalExpenses),
			utils.FloatToDecimal(d.ClosingCash), utils.FloatToDecimal(d.ExpectedCash), utils.FloatToDecimal(d.Discrepancy),
			d.IsClosed,
		}
	})
}
