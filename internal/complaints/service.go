// Package complaints orchestrates complaint creation, lifecycle transitions
// and queue views.
package complaints

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/lifecycle"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/telemetry"
)

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, target domain.Status) (*domain.Complaint, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.Complaint, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]domain.Complaint, error)
	ListByStatusAndDepartment(ctx context.Context, status domain.Status, department string) ([]domain.Complaint, error)
}

// Predictor maps a description to a category label. ZeroVector reports
// whether the description carries no known tokens, meaning the prediction
// resolved to the default category.
type Predictor interface {
	Predict(description string) (string, error)
	ZeroVector(description string) bool
}

// Service carries a complaint from submission through review.
type Service struct {
	store     Store
	predictor Predictor
	logger    logging.Logger
	metrics   *telemetry.Metrics
}

// NewService creates a complaint service. metrics may be nil in tests.
func NewService(store Store, predictor Predictor, logger logging.Logger, metrics *telemetry.Metrics) *Service {
	return &Service{
		store:     store,
		predictor: predictor,
		logger:    logger,
		metrics:   metrics,
	}
}

// Create classifies the description and inserts the complaint in pending
// state. The category is decided exactly once, here; a classifier failure
// fails the request rather than defaulting silently.
func (s *Service) Create(
	ctx context.Context,
	submitterID uuid.UUID,
	actorRole domain.Role,
	req CreateRequest,
) (*domain.Complaint, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := lifecycle.CanCreate(actorRole); err != nil {
		return nil, err
	}

	start := time.Now()
	category, err := s.predictor.Predict(req.Description)
	if err != nil {
		s.logger.Error("category prediction failed",
			logging.String("submitter_id", submitterID.String()),
			logging.Error(err),
		)
		return nil, fmt.Errorf("classify complaint: %w", err)
	}
	if s.metrics != nil {
		s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
		s.metrics.PredictionsTotal.WithLabelValues(category).Inc()
		if s.predictor.ZeroVector(req.Description) {
			s.metrics.EmptyPredictions.Inc()
		}
	}

	complaint := &domain.Complaint{
		SubmitterID:   submitterID,
		ComplaintType: req.ComplaintType,
		Department:    req.Department,
		Description:   req.Description,
		Category:      category,
	}
	if err := s.store.Create(ctx, complaint); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.ComplaintsCreated.Inc()
	}

	s.logger.Info("complaint created",
		logging.Int64("complaint_id", complaint.ID),
		logging.String("submitter_id", submitterID.String()),
		logging.String("category", category),
		logging.String("department", complaint.Department),
	)
	return complaint, nil
}

// Transition attempts to move a complaint to target on behalf of actorRole.
// The guard runs on every attempt; a guard pass can still lose a storage
// race, in which case the conditional update reports ErrInvalidTransition.
func (s *Service) Transition(
	ctx context.Context,
	complaintID int64,
	actorRole domain.Role,
	target domain.Status,
) (*domain.Complaint, error) {
	current, err := s.store.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.Check(current.Status, target, actorRole); err != nil {
		s.countFailure(err)
		s.logger.Warn("transition denied",
			logging.Int64("complaint_id", complaintID),
			logging.String("from", string(current.Status)),
			logging.String("to", string(target)),
			logging.String("actor_role", string(actorRole)),
			logging.Error(err),
		)
		return nil, err
	}

	updated, err := s.store.UpdateStatus(ctx, complaintID, target)
	if err != nil {
		s.countFailure(err)
		s.logger.Warn("transition lost",
			logging.Int64("complaint_id", complaintID),
			logging.String("to", string(target)),
			logging.String("actor_role", string(actorRole)),
			logging.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.TransitionsTotal.WithLabelValues(string(target)).Inc()
	}
	s.logger.Info("complaint transitioned",
		logging.Int64("complaint_id", complaintID),
		logging.String("to", string(target)),
		logging.String("actor_role", string(actorRole)),
	)
	return updated, nil
}

// Approve moves a pending complaint to approved.
func (s *Service) Approve(ctx context.Context, complaintID int64, actorRole domain.Role) (*domain.Complaint, error) {
	return s.Transition(ctx, complaintID, actorRole, domain.StatusApproved)
}

// Reject moves a pending complaint to rejected.
func (s *Service) Reject(ctx context.Context, complaintID int64, actorRole domain.Role) (*domain.Complaint, error) {
	return s.Transition(ctx, complaintID, actorRole, domain.StatusRejected)
}

// Get returns one complaint. Employees may only read their own.
func (s *Service) Get(ctx context.Context, complaintID int64, actorID uuid.UUID, actorRole domain.Role) (*domain.Complaint, error) {
	c, err := s.store.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if actorRole == domain.RoleEmployee && c.SubmitterID != actorID {
		return nil, fmt.Errorf("%w: complaint %d belongs to another submitter", domain.ErrUnauthorized, complaintID)
	}
	return c, nil
}

// OwnComplaints returns the submitter's complaints, rejected ones included.
func (s *Service) OwnComplaints(ctx context.Context, submitterID uuid.UUID) ([]domain.Complaint, error) {
	return s.store.ListBySubmitter(ctx, submitterID)
}

// PendingQueue is the officer work queue: all pending complaints. Queue
// membership is derived from status, never stored.
func (s *Service) PendingQueue(ctx context.Context, actorRole domain.Role) ([]domain.Complaint, error) {
	if actorRole != domain.RoleOfficer {
		return nil, fmt.Errorf("%w: role %q may not read the pending queue", domain.ErrUnauthorized, actorRole)
	}
	return s.store.ListByStatus(ctx, domain.StatusPending)
}

// DepartmentQueue is the specialist work queue: approved complaints for one
// department. Specialists are confined to their own department; officers may
// inspect any.
func (s *Service) DepartmentQueue(
	ctx context.Context,
	actorRole domain.Role,
	actorDepartment, department string,
) ([]domain.Complaint, error) {
	switch actorRole {
	case domain.RoleOfficer:
	case domain.RoleSpecialist:
		if actorDepartment != department {
			return nil, fmt.Errorf("%w: specialist of %q may not read the %q queue",
				domain.ErrUnauthorized, actorDepartment, department)
		}
	default:
		return nil, fmt.Errorf("%w: role %q may not read department queues", domain.ErrUnauthorized, actorRole)
	}
	return s.store.ListByStatusAndDepartment(ctx, domain.StatusApproved, department)
}

func (s *Service) countFailure(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		s.metrics.TransitionFailures.WithLabelValues("unauthorized").Inc()
	case errors.Is(err, domain.ErrInvalidTransition):
		s.metrics.TransitionFailures.WithLabelValues("invalid_transition").Inc()
	}
}
