package repositories

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"cafe_backoffice/internal/models"
	"cafe_backoffice/pkg/utils"
)

// StaffRepository reads the staff roster.
type StaffRepository interface {
	ListStaff(ctx context.Context) ([]models.StaffMember, error)
	BulkCreate(ctx context.Context, staff []models.StaffMember) (int, error)
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

// ListStaff returns the whole roster, inactive members included.
func (r *staffRepository) ListStaff(ctx context.Context) ([]models.StaffMember, error) {
	query := `SELECT id, full_name, role, monthly_salary, is_active FROM staff ORDER BY full_name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapDBError(err, "listing staff")
	}
	return collect(rows, "staff", func(s scanner) (models.StaffMember, error) {
		var m models.StaffMember
		var salary decimal.Decimal
		if err := s.Scan(&m.ID, &m.Name, &m.Role, &salary, &m.IsActive); err != nil {
			return m, err
		}
		m.Salary = utils.DecimalToFloat(salary)
		return m, nil
	})
}

func (r *staffRepository) BulkCreate(ctx context.Context, staff []models.StaffMember) (int, error) {
	columns := []string{"full_name", "role", "monthly_salary", "is_active"}
	return copyRows(ctx, r.db, "staff", columns, len(staff), func(i int) []interface{} {
		m := staff[i]
		return []interface{}{m.Name, m.Role, utils.FloatToDecimal(m.Salary), m.IsActive}
	})
}
