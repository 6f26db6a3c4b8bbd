package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complaintdesk/triage/internal/auth"
	"github.com/complaintdesk/triage/internal/chatbot"
	"github.com/complaintdesk/triage/internal/complaints"
	"github.com/complaintdesk/triage/internal/database"
	"github.com/complaintdesk/triage/internal/domain"
	"github.com/complaintdesk/triage/internal/logging"
	"github.com/complaintdesk/triage/internal/ml"
	"github.com/complaintdesk/triage/internal/trainer"
)

type echoMessenger struct{ err error }

func (m *echoMessenger) Send(_ context.Context, message, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "echo: " + message, nil
}

type testAPI struct {
	router *gin.Engine
	bot    *echoMessenger
}

func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "triage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logging.NewNop()

	artifact, err := trainer.New(trainer.Config{}, log).Train(trainer.SeedExamples())
	require.NoError(t, err)
	predictor := ml.NewPredictor(artifact)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	messenger := &echoMessenger{}
	bot := chatbot.NewWithMessenger(messenger, log, nil)
	service := complaints.NewService(database.NewComplaintRepository(db), predictor, log, nil)
	handler := NewHandler(service, database.NewUserRepository(db), jwtManager, bot, db.Ping, log)

	router := gin.New()
	SetupRoutes(router, handler, jwtManager, nil)
	return &testAPI{router: router, bot: messenger}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user and returns a bearer token for it.
func (a *testAPI) registerAndLogin(t *testing.T, employeeID string, role domain.Role, department string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		EmployeeID:  employeeID,
		Name:        "Test " + employeeID,
		Designation: "staff",
		Phone:       "555-0100",
		Email:       employeeID + "@example.com",
		Password:    "pass-" + employeeID,
		Role:        string(role),
		Department:  department,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": employeeID,
		"password":    "pass-" + employeeID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestAuthFlow(t *testing.T) {
	api := setupAPI(t)

	token := api.registerAndLogin(t, "E1001", domain.RoleEmployee, "it")
	assert.NotEmpty(t, token)

	// Duplicate employee id rejected.
	w := api.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		EmployeeID:  "E1001",
		Name:        "Someone Else",
		Designation: "staff",
		Phone:       "555-0101",
		Email:       "else@example.com",
		Password:    "whatever",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Wrong password and unknown id give the same response.
	w = api.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": "E1001", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPass := w.Body.String()

	w = api.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"employee_id": "E9999", "password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, wrongPass, w.Body.String())
}

func TestRegister_ValidationFieldList(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{Role: "superuser"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields []domain.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 7)
}

func TestComplaintLifecycleOverHTTP(t *testing.T) {
	api := setupAPI(t)

	employee := api.registerAndLogin(t, "E2001", domain.RoleEmployee, "it")
	officer := api.registerAndLogin(t, "E2002", domain.RoleOfficer, "it")
	specialist := api.registerAndLogin(t, "E2003", domain.RoleSpecialist, "it")

	// The employee submits; the classifier assigns the category.
	w := api.do(t, http.MethodPost, "/api/v1/complaints", employee, complaints.CreateRequest{
		ComplaintType: "incident",
		Department:    "it",
		Description:   "Printer not responding",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created domain.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "technical", created.Category)
	assert.Equal(t, domain.StatusPending, created.Status)

	path := fmt.Sprintf("/api/v1/complaints/%d", created.ID)

	// The submitter cannot approve their own complaint.
	w = api.do(t, http.MethodPost, path+"/approve", employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The officer sees it in the pending queue and approves it.
	w = api.do(t, http.MethodGet, "/api/v1/queues/pending", officer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue QueueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	assert.Equal(t, 1, queue.Total)

	w = api.do(t, http.MethodPost, path+"/approve", officer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A second transition conflicts: approved is terminal.
	w = api.do(t, http.MethodPost, path+"/reject", officer, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The approved complaint is now in the department queue for the
	// specialist, and the pending queue is empty.
	w = api.do(t, http.MethodGet, "/api/v1/queues/department/it", specialist, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Equal(t, 1, queue.Total)
	assert.Equal(t, created.ID, queue.Complaints[0].ID)

	w = api.do(t, http.MethodGet, "/api/v1/queues/pending", officer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	assert.Zero(t, queue.Total)

	// The submitter still sees their complaint with the final status.
	w = api.do(t, http.MethodGet, "/api/v1/complaints", employee, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Equal(t, 1, queue.Total)
	assert.Equal(t, domain.StatusApproved, queue.Complaints[0].Status)
}

func TestQueueAccessControl(t *testing.T) {
	api := setupAPI(t)

	employee := api.registerAndLogin(t, "E3001", domain.RoleEmployee, "it")
	specialist := api.registerAndLogin(t, "E3002", domain.RoleSpecialist, "facilities")

	w := api.do(t, http.MethodGet, "/api/v1/queues/pending", employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// A specialist may only read their own department's queue.
	w = api.do(t, http.MethodGet, "/api/v1/queues/department/it", specialist, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/queues/department/facilities", specialist, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetComplaint_EmployeeIsolation(t *testing.T) {
	api := setupAPI(t)

	owner := api.registerAndLogin(t, "E4001", domain.RoleEmployee, "it")
	other := api.registerAndLogin(t, "E4002", domain.RoleEmployee, "it")

	w := api.do(t, http.MethodPost, "/api/v1/complaints", owner, complaints.CreateRequest{
		ComplaintType: "incident",
		Department:    "it",
		Description:   "WiFi not connecting",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "network", created.Category)

	path := fmt.Sprintf("/api/v1/complaints/%d", created.ID)
	w = api.do(t, http.MethodGet, path, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodGet, "/api/v1/complaints/404", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateComplaint_ValidationErrors(t *testing.T) {
	api := setupAPI(t)
	token := api.registerAndLogin(t, "E5001", domain.RoleEmployee, "it")

	w := api.do(t, http.MethodPost, "/api/v1/complaints", token, complaints.CreateRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Fields []domain.FieldError `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Fields, 3)
}

func TestChat(t *testing.T) {
	api := setupAPI(t)
	token := api.registerAndLogin(t, "E6001", domain.RoleEmployee, "it")

	w := api.do(t, http.MethodPost, "/api/v1/chat", token, ChatRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "echo: hello", resp.Response)

	// A chatbot failure still renders a 200 with the fixed fallback.
	api.bot.err = errors.New("upstream down")
	w = api.do(t, http.MethodPost, "/api/v1/chat", token, ChatRequest{Message: "hello"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chatbot.FallbackResponse, resp.Response)
}

func TestHealthAndReady(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := setupAPI(t)

	w := api.do(t, http.MethodGet, "/api/v1/complaints", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodPost, "/api/v1/chat", "", ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
