package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/triage/internal/domain"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	EmployeeID  string `json:"employee_id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Department  string `json:"department"`
}

// Validate checks all fields in one pass and returns the complete
// field-error list, or nil when the request is valid.
func (r *RegisterRequest) Validate() error {
	verr := &domain.ValidationError{}
	if r.EmployeeID == "" {
		verr.Add("employee_id", "required")
	}
	if r.Name == "" {
		verr.Add("name", "required")
	}
	if r.Designation == "" {
		verr.Add("designation", "required")
	}
	if r.Phone == "" {
		verr.Add("phone", "required")
	}
	if r.Email == "" {
		verr.Add("email", "required")
	}
	if r.Password == "" {
		verr.Add("password", "required")
	}
	if r.Role != "" && !domain.Role(r.Role).Valid() {
		verr.Add("role", "unknown role")
	}
	return verr.OrNil()
}

// LoginRequest represents a login request, keyed by employee id.
type LoginRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	Password   string `json:"password"    binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

// UserInfo is the public view of a user.
type UserInfo struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

func toUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:         u.ID.String(),
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Role:       string(u.Role),
		Department: u.Department,
	}
}

// TransitionRequest carries the target status for the generalized
// transition endpoint.
type TransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// QueueResponse is a list of complaints with a total.
type QueueResponse struct {
	Complaints []domain.Complaint `json:"complaints"`
	Total      int                `json:"total"`
}

// ChatRequest carries one user message to the chatbot relay.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the chatbot's reply (or the fixed fallback).
type ChatResponse struct {
	Response string `json:"response"`
}

// respondError maps domain errors to HTTP statuses. Validation errors keep
// their field list; everything else surfaces the message.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrModelUnavailable):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
