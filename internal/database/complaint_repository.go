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

// ComplaintRepository handles database operations for complaints.
type ComplaintRepository struct {
	db *sqlx.DB
}

// NewComplaintRepository creates a new complaint repository.
func NewComplaintRepository(db *sqlx.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

// Create inserts a new complaint. Category and the initial pending status
// are written in the same statement, so a complaint is never visible
// without its category.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	now := time.Now().UTC()
	c.Status = domain.StatusPending
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO complaints (submitter_id, complaint_type, department, description, category, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		c.SubmitterID.String(),
		c.ComplaintType,
		c.Department,
		c.Description,
		c.Category,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read complaint id: %w", err)
	}
	c.ID = id
	return nil
}

// GetByID retrieves a complaint by its ID.
func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	var c domain.Complaint
	query := `
		SELECT id, submitter_id, complaint_type, department, description, category, status, created_at, updated_at
		FROM complaints
		WHERE id = ?
	`
	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: complaint %d", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get complaint %d: %w", id, err)
	}
	return &c, nil
}

// UpdateStatus moves a pending complaint to target. The conditional UPDATE
// serializes concurrent transition attempts at the storage layer: of two
// racing officers exactly one statement matches the pending row, and the
// loser resolves to domain.ErrInvalidTransition (or ErrNotFound if the row
// never existed). No partial effects either way.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id int64, target domain.Status) (*domain.Complaint, error) {
	query := `
		UPDATE complaints
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`
	res, err := r.db.ExecContext(ctx, query, target, time.Now().UTC(), id, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint %d status: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: complaint %d is %s, not %s",
			domain.ErrInvalidTransition, id, current.Status, domain.StatusPending)
	}

	return r.GetByID(ctx, id)
}

// ListBySubmitter returns a submitter's complaints, newest first.
func (r *ComplaintRepository) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT id, submitter_id, complaint_type, department, description, category, status, created_at, updated_at
		FROM complaints
		WHERE submitter_id = ?
		ORDER BY created_at DESC, id DESC
	`
	if err := r.db.SelectContext(ctx, &complaints, query, submitterID.String()); err != nil {
		return nil, fmt.Errorf("failed to list complaints for %s: %w", submitterID, err)
	}
	return complaints, nil
}

// ListByStatus returns all complaints in the given status, oldest first.
// The pending queue is this with StatusPending; queue membership is derived,
// never stored.
func (r *ComplaintRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT id, submitter_id, complaint_type, department, description, category, status, created_at, updated_at
		FROM complaints
		WHERE status = ?
		ORDER BY created_at ASC, id ASC
	`
	if err := r.db.SelectContext(ctx, &complaints, query, status); err != nil {
		return nil, fmt.Errorf("failed to list %s complaints: %w", status, err)
	}
	return complaints, nil
}

// ListByStatusAndDepartment returns complaints in the given status for one
// department, oldest first. The specialist queue is this with
// StatusApproved.
func (r *ComplaintRepository) ListByStatusAndDepartment(
	ctx context.Context,
	status domain.Status,
	department string,
) ([]domain.Complaint, error) {
	var complaints []domain.Complaint
	query := `
		SELECT id, submitter_id, complaint_type, department, description, category, status, created_at, updated_at
		FROM complaints
		WHERE status = ? AND department = ?
		ORDER BY created_at ASC, id ASC
	`
	if err := r.db.SelectContext(ctx, &complaints, query, status, department); err != nil {
		return nil, fmt.Errorf("failed to list %s complaints for %s: %w", status, department, err)
	}
	return complaints, nil
}
