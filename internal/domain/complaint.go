// Package domain holds the core types shared across the complaint triage
// service.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a complaint.
type Status string

// Complaint lifecycle states. Pending is the only non-terminal state.
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Complaint represents a submitted employee complaint.
//
// Category is set exactly once at creation time by the classifier and never
// mutated afterwards. Status starts at pending and only changes through the
// lifecycle guard.
type Complaint struct {
	ID            int64     `db:"id"             json:"id"`
	SubmitterID   uuid.UUID `db:"submitter_id"   json:"submitter_id"`
	ComplaintType string    `db:"complaint_type" json:"complaint_type"`
	Department    string    `db:"department"     json:"department"`
	Description   string    `db:"description"    json:"description"`
	Category      string    `db:"category"       json:"category"`
	Status        Status    `db:"status"         json:"status"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"     json:"updated_at"`
}
