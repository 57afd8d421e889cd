package handlers

import (
	"context"
	"net/http"

	"tasktracker/internal/models"
	"tasktracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginPair    service.TokenPair
	loginErr     error
	refreshPair  service.TokenPair
	refreshErr   error
	authUser     models.User
	authErr      error
	deleteErr    error

	lastRegisterName     string
	lastRegisterPassword string
	lastLoginName        string
	lastLoginPassword    string
	lastRefreshToken     string
	lastAuthToken        string
	deleteCalls          []int
}

func (m *mockAuth) Register(_ context.Context, name, password string) (models.User, error) {
	m.lastRegisterName = name
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, name, password string) (service.TokenPair, error) {
	m.lastLoginName = name
	m.lastLoginPassword = password
	return m.loginPair, m.loginErr
}

func (m *mockAuth) Refresh(_ context.Context, refreshToken string) (service.TokenPair, error) {
	m.lastRefreshToken = refreshToken
	return m.refreshPair, m.refreshErr
}

func (m *mockAuth) Authenticate(_ context.Context, accessToken string) (models.User, error) {
	m.lastAuthToken = accessToken
	return m.authUser, m.authErr
}

func (m *mockAuth) DeleteAccount(_ context.Context, userID int) error {
	m.deleteCalls = append(m.deleteCalls, userID)
	return m.deleteErr
}

type mockTasks struct {
	createTask models.Task
	createErr  error
	listResp   []models.Task
	listErr    error
	getTask    models.Task
	getErr     error
	updateTask models.Task
	updateErr  error
	deleteErr  error

	lastUserID  int
	lastTaskID  int
	lastInput   service.TaskInput
	deleteCalls int
}

func (m *mockTasks) Create(_ context.Context, userID int, in service.TaskInput) (models.Task, error) {
	m.lastUserID = userID
	m.lastInput = in
	return m.createTask, m.createErr
}

func (m *mockTasks) List(_ context.Context, userID int) ([]models.Task, error) {
	m.lastUserID = userID
	return m.listResp, m.listErr
}

func (m *mockTasks) GetByID(_ context.Context, userID, taskID int) (models.Task, error) {
	m.lastUserID = userID
	m.lastTaskID = taskID
	return m.getTask, m.getErr
}

func (m *mockTasks) Update(_ context.Context, userID, taskID int, in service.TaskInput) (models.Task, error) {
	m.lastUserID = userID
	m.lastTaskID = taskID
	m.lastInput = in
	return m.updateTask, m.updateErr
}

func (m *mockTasks) Delete(_ context.Context, userID, taskID int) error {
	m.lastUserID = userID
	m.lastTaskID = taskID
	m.deleteCalls++
	return m.deleteErr
}

// ---- Test helpers ----

// newTestRouter builds the full route table over the given services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

// authHeader returns headers carrying the given bearer token.
func authHeader(token string) http.Header {
	return http.Header{"Authorization": []string{"Bearer " + token}}
}
