package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/triage/internal/auth"
	"github.com/complaintdesk/triage/internal/chatbot"
	"github.com/complaintdesk/triage/internal/complaints"
	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/logging"
)

// UserStore is the user persistence surface the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.User, error)
	ExistsEmployeeID(ctx context.Context, employeeID string) (bool, error)
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

// Handler handles HTTP requests for the complaint triage API.
type Handler struct {
	complaints *complaints.Service
	users      UserStore
	jwt        *auth.JWTManager
	bot        *chatbot.Client
	ready      func() error
	logger     logging.Logger
}

// NewHandler creates a new API handler. ready reports whether downstream
// components (database, model artifact) are usable; nil means always ready.
func NewHandler(
	complaintService *complaints.Service,
	users UserStore,
	jwtManager *auth.JWTManager,
	bot *chatbot.Client,
	ready func() error,
	logger logging.Logger,
) *Handler {
	return &Handler{
		complaints: complaintService,
		users:      users,
		jwt:        jwtManager,
		bot:        bot,
		ready:      ready,
		logger:     logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	if exists, err := h.users.ExistsEmployeeID(ctx, req.EmployeeID); err != nil {
		respondError(c, err)
		return
	} else if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "employee id already exists"})
		return
	}
	if exists, err := h.users.ExistsEmail(ctx, req.Email); err != nil {
		respondError(c, err)
		return
	} else if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleEmployee
	}

	user := &domain.User{
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		Designation:  req.Designation,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Department:   req.Department,
	}
	if err := h.users.Create(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("user registered",
		logging.String("employee_id", user.EmployeeID),
		logging.String("role", string(user.Role)),
	)
	c.JSON(http.StatusCreated, toUserInfo(user))
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.GetByEmployeeID(c.Request.Context(), req.EmployeeID)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown id and wrong password.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserInfo(user),
	})
}

// CreateComplaint handles POST /api/v1/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req complaints.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint, err := h.complaints.Create(c.Request.Context(), identity.UserID, identity.Role, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListOwnComplaints handles GET /api/v1/complaints.
func (h *Handler) ListOwnComplaints(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	list, err := h.complaints.OwnComplaints(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueueResponse{Complaints: list, Total: len(list)})
}

// GetComplaint handles GET /api/v1/complaints/:id.
func (h *Handler) GetComplaint(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, err := complaintID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	complaint, err := h.complaints.Get(c.Request.Context(), id, identity.UserID, identity.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// ApproveComplaint handles POST /api/v1/complaints/:id/approve.
func (h *Handler) ApproveComplaint(c *gin.Context) {
	h.transition(c, domain.StatusApproved)
}

// RejectComplaint handles POST /api/v1/complaints/:id/reject.
func (h *Handler) RejectComplaint(c *gin.Context) {
	h.transition(c, domain.StatusRejected)
}

// TransitionStatus handles POST /api/v1/complaints/:id/transition with an
// explicit target status in the body.
func (h *Handler) TransitionStatus(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.transition(c, domain.Status(req.TargetStatus))
}

func (h *Handler) transition(c *gin.Context, target domain.Status) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	id, err := complaintID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}

	complaint, err := h.complaints.Transition(c.Request.Context(), id, identity.Role, target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// PendingQueue handles GET /api/v1/queues/pending.
func (h *Handler) PendingQueue(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	list, err := h.complaints.PendingQueue(c.Request.Context(), identity.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueueResponse{Complaints: list, Total: len(list)})
}

// DepartmentQueue handles GET /api/v1/queues/department/:department.
func (h *Handler) DepartmentQueue(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	department := c.Param("department")

	list, err := h.complaints.DepartmentQueue(c.Request.Context(), identity.Role, identity.Department, department)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, QueueResponse{Complaints: list, Total: len(list)})
}

// Chat handles POST /api/v1/chat.
func (h *Handler) Chat(c *gin.Context) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response := h.bot.Process(c.Request.Context(), req.Message, "user-"+identity.UserID.String())
	c.JSON(http.StatusOK, ChatResponse{Response: response})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func complaintID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
