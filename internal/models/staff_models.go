package models

// StaffMember is an entry of the staff roster.
type StaffMember struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"full_name"`
	Role     string  `json:"role" db:"role"`
	Salary   float64 `json:"salary" db:"monthly_salary"`
	IsActive bool    `json:"is_active" db:"is_active"`
}
