package complaints

import (
	"strings"

	"github.com/complaintdesk/triage/internal/domain"
)

// maxDescriptionLen bounds complaint descriptions; sqlite would take more,
// but the encoder gains nothing past this and it caps abuse.
const maxDescriptionLen = 10000

// CreateRequest is the validated input for submitting a complaint.
type CreateRequest struct {
	ComplaintType string `json:"complaint_type"`
	Department    string `json:"department"`
	Description   string `json:"description"`
}

// Validate checks all fields in one pass and returns the complete
// field-error list, or nil when the request is valid.
func (r *CreateRequest) Validate() error {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(r.ComplaintType) == "" {
		verr.Add("complaint_type", "required")
	}
	if strings.TrimSpace(r.Department) == "" {
		verr.Add("department", "required")
	}
	if strings.TrimSpace(r.Description) == "" {
		verr.Add("description", "required")
	} else if len(r.Description) > maxDescriptionLen {
		verr.Add("description", "too long")
	}
	return verr.OrNil()
}
