package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complaintdesk/triage/internal/domain"
)

func middlewareRouter(manager *JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(manager))
	r.GET("/whoami", func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"employee_id": identity.EmployeeID, "role": string(identity.Role)})
	})
	return r
}

func TestMiddleware_ValidToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	token, _, err := manager.GenerateToken(testUser())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	middlewareRouter(manager).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "E1001")
	assert.Contains(t, w.Body.String(), string(domain.RoleOfficer))
}

func TestMiddleware_Rejections(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	router := middlewareRouter(manager)

	foreign, _, err := NewJWTManager("other-secret", time.Hour).GenerateToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
		{"wrong secret", "Bearer " + foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
