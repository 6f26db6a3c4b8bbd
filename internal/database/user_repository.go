package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/complaintdesk/triage/internal/domain"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO users (id, employee_id, name, designation, phone, email, password_hash, role, department, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID.String(),
		u.EmployeeID,
		u.Name,
		u.Designation,
		u.Phone,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.Department,
		u.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", u.EmployeeID, err)
	}
	return nil
}

// GetByEmployeeID retrieves a user by employee id.
func (r *UserRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error) {
	var u domain.User
	query := `
		SELECT id, employee_id, name, designation, phone, email, password_hash, role, department, created_at
		FROM users
		WHERE employee_id = ?
	`
	if err := r.db.GetContext(ctx, &u, query, employeeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, employeeID)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", employeeID, err)
	}
	return &u, nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	query := `
		SELECT id, employee_id, name, designation, phone, email, password_hash, role, department, created_at
		FROM users
		WHERE id = ?
	`
	if err := r.db.GetContext(ctx, &u, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &u, nil
}

// ExistsEmployeeID reports whether an employee id is already registered.
func (r *UserRepository) ExistsEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE employee_id = ?)`
	if err := r.db.GetContext(ctx, &exists, query, employeeID); err != nil {
		return false, fmt.Errorf("failed to check employee id %s: %w", employeeID, err)
	}
	return exists, nil
}

// ExistsEmail reports whether an email is already registered.
func (r *UserRepository) ExistsEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("failed to check email %s: %w", email, err)
	}
	return exists, nil
}
