package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/pkg/utils"
)

// OrderRepository reads point-of-sale orders.
type OrderRepository interface {
	ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error)
	BulkCreate(ctx context.Context, orders []models.Order) (int, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// ListOrders returns orders created on any calendar day in [from, to], oldest first.
func (r *orderRepository) ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	query := `SELECT id, created_at, total_amount, discount_amount, table_label
	          FROM orders
	          WHERE created_at >= $1 AND created_at < $2
	          ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, models.StartOfDay(from), models.StartOfDay(to).AddDate(0, 0, 1))
	if err != nil {
		return nil, wrapDBError(err, "listing orders")
	}
	return collect(rows, "orders", scanOrder)
}

func scanOrder(s scanner) (models.Order, error) {
	var o models.Order
	var total, discount decimal.Decimal
	if err := s.Scan(&o.ID, &o.CreatedAt, &total, &discount, &o.TableLabel); err != nil {
		return o, err
	}
	o.TotalAmount = utils.DecimalToFloat(total)
	o.Discount = utils.DecimalToFloat(discount)
	return o, nil
}

// BulkCreate inserts orders with COPY.
func (r *orderRepository) BulkCreate(ctx context.Context, orders []models.Order) (int, error) {
	columns := []string{"created_at", "total_amount", "discount_amount", "table_label"}
	return copyRows(ctx, r.db, "orders", columns, len(orders), func(i int) []interface{} {
		o := orders[i]
		return []interface{}{o.CreatedAt, utils.FloatToDecimal(o.TotalAmount), utils.FloatToDecimal(o.Discount), o.TableLabel}
	})
}
