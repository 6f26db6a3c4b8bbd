package api

import (
	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/triage/internal/auth"
	"github.com/complaintdesk/triage/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(
	router *gin.Engine,
	handler *Handler,
	jwtManager *auth.JWTManager,
	provider *telemetry.Provider,
) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if provider != nil {
		router.GET("/metrics", gin.WrapH(provider.Handler()))
	}

	v1 := router.Group("/api/v1")

	// Authentication endpoints (public)
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", handler.Register) // POST /api/v1/auth/register
		authGroup.POST("/login", handler.Login)       // POST /api/v1/auth/login
	}

	protected := v1.Group("")
	protected.Use(auth.Middleware(jwtManager))

	// Complaint endpoints
	complaintsGroup := protected.Group("/complaints")
	{
		complaintsGroup.POST("", handler.CreateComplaint)                 // POST /api/v1/complaints
		complaintsGroup.GET("", handler.ListOwnComplaints)                // GET /api/v1/complaints
		complaintsGroup.GET("/:id", handler.GetComplaint)                 // GET /api/v1/complaints/:id
		complaintsGroup.POST("/:id/approve", handler.ApproveComplaint)    // POST /api/v1/complaints/:id/approve
		complaintsGroup.POST("/:id/reject", handler.RejectComplaint)      // POST /api/v1/complaints/:id/reject
		complaintsGroup.POST("/:id/transition", handler.TransitionStatus) // POST /api/v1/complaints/:id/transition
	}

	// Queue endpoints (derived views, never stored)
	queues := protected.Group("/queues")
	{
		queues.GET("/pending", handler.PendingQueue)                  // GET /api/v1/queues/pending
		queues.GET("/department/:department", handler.DepartmentQueue) // GET /api/v1/queues/department/:department
	}

	// Chatbot relay
	protected.POST("/chat", handler.Chat) // POST /api/v1/chat
}
