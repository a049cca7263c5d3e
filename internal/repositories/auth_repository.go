package repositories

import (
	"context"
	"database/sql"
	"time"

	"cafe_backoffice/internal/models"
)

// AuthRepository stores dashboard users and their roles.
type AuthRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, string, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
	FindRoleByName(ctx context.Context, name string) (*models.Role, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `u.id, u.username, u.password_hash, u.email, u.full_name, u.role_id, u.is_active,
	u.created_at, u.updated_at, COALESCE(ro.name, '')`

func (r *authRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	if executor == nil {
		executor = r.db
	}
	query := `INSERT INTO users (username, password_hash, email, full_name, role_id, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
	          RETURNING id`

	var roleID sql.NullInt64
	if user.RoleID != nil {
		roleID = sql.NullInt64{Int64: *user.RoleID, Valid: true}
	}

	var id int64
	err := executor.QueryRowContext(ctx, query,
		user.Username, hashedPassword, user.Email, user.FullName, roleID, time.Now(),
	).Scan(&id)
	if err != nil {
		return 0, wrapDBError(err, "creating user")
	}
	return id, nil
}

// FindUserByUsername returns the user and their password hash.
func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, string, error) {
	query := `SELECT ` + userColumns + `
	          FROM users u LEFT JOIN roles ro ON u.role_id = ro.id
	          WHERE u.username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, "", wrapDBError(err, "finding user by username "+username)
	}
	hash := user.PasswordHash
	user.PasswordHash = ""
	return user, hash, nil
}

func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + `
	          FROM users u LEFT JOIN roles ro ON u.role_id = ro.id
	          WHERE u.id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, wrapDBError(err, "finding user by id")
	}
	user.PasswordHash = ""
	return user, nil
}

func (r *authRepository) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	role := &models.Role{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, description FROM roles WHERE LOWER(name) = LOWER($1)`, name).
		Scan(&role.ID, &role.Name, &role.Description)
	if err != nil {
		return nil, wrapDBError(err, "finding role "+name)
	}
	return role, nil
}

func scanUser(s scanner) (*models.User, error) {
	user := &models.User{}
	var roleID sql.NullInt64
	var roleName string
	err := s.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Email, &user.FullName,
		&roleID, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &roleName)
	if err != nil {
		return nil, err
	}
	if roleID.Valid {
		user.RoleID = &roleID.Int64
		user.Role = &models.Role{ID: roleID.Int64, Name: roleName}
	}
	return user, nil
}
