package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/pkg/utils"
)

// ExpenseRepository reads free-text expense entries.
type ExpenseRepository interface {
	ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error)
	BulkCreate(ctx context.Context, expenses []models.Expense) (int, error)
}

type expenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new instance of ExpenseRepository.
func NewExpenseRepository(db *sql.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	query := `SELECT id, expense_date, category, amount, description, receipt_number
	          FROM expenses
	          WHERE expense_date >= $1 AND expense_date < $2
	          ORDER BY expense_date, id`
	rows, err := r.db.QueryContext(ctx, query, models.StartOfDay(from), models.StartOfDay(to).AddDate(0, 0, 1))
	if err != nil {
		return nil, wrapDBError(err, "listing expenses")
	}
	return collect(rows, "expenses", func(s scanner) (models.Expense, error) {
		var e models.Expense
		var amount decimal.NullDecimal
		var receipt sql.NullString
		if err := s.Scan(&e.ID, &e.Date, &e.Category, &amount, &e.Description, &receipt); err != nil {
			return e, err
		}
		e.Amount = utils.NullDecimalToFloat(amount)
		if receipt.Valid {
			e.ReceiptNumber = utils.NewNullString(receipt.String)
		}
		return e, nil
	})
}

func (r *expenseRepository) BulkCreate(ctx context.Context, expenses []models.Expense) (int, error) {
	columns := []string{"expense_date", "category", "amount", "description", "receipt_number"}
	return copyRows(ctx, r.db, "expenses", columns, len(expenses), func(i int) []interface{} {
		e := expenses[i]
		var receipt sql.NullString
		if e.ReceiptNumber != nil {
			receipt = sql.NullString{String: *e.ReceiptNumber, Valid: true}
		}
		return []interface{}{e.Date, e.Category, utils.FloatToDecimal(e.Amount), e.Description, receipt}
	})
}
