package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/handler"
	"todoapi/internal/middleware"
	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, userID, title, description string, completed bool) (*model.Task, error) {
	args := m.Called(ctx, userID, title, description, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, userID string, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, userID string, taskID uuid.UUID, patch service.UpdatePatch) (*model.Task, error) {
	args := m.Called(ctx, userID, taskID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, userID string, taskID uuid.UUID) error {
	args := m.Called(ctx, userID, taskID)
	return args.Error(0)
}

// setupTaskRouter wires the handler behind a stand-in for the auth
// middleware that injects a fixed identity.
func setupTaskRouter(userID string) (*gin.Engine, *MockTaskService) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	mockService := new(MockTaskService)
	taskHandler := handler.NewTaskHandler(mockService)

	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
	})

	r.GET("/tasks", taskHandler.List)
	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks/:id", taskHandler.GetByID)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)

	return r, mockService
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf *bytes.Buffer
	if body != nil {
		encoded, _ := json.Marshal(body)
		buf = bytes.NewBuffer(encoded)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestTaskHandler_List(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	stored := []model.Task{
		{ID: uuid.New(), Title: "First", UserID: "user-1"},
		{ID: uuid.New(), Title: "Second", UserID: "user-1"},
	}
	mockService.On("ListByUser", mock.Anything, "user-1").Return(stored, nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("GET", "/tasks", nil))

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var tasks []model.Task
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &tasks))
	assert.Len(t, tasks, 2)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_Create(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	created := &model.Task{
		ID:          uuid.New(),
		Title:       "Buy milk",
		Description: "2%",
		UserID:      "user-1",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	mockService.On("Create", mock.Anything, "user-1", "Buy milk", "2%", false).Return(created, nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("POST", "/tasks", handler.TaskCreateRequest{
		Title:       "Buy milk",
		Description: "2%",
	}))

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var task model.Task
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "2%", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, "user-1", task.UserID)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_Create_EmptyTitle(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("POST", "/tasks", map[string]string{"title": ""}))

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_Create_WhitespaceTitle(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("POST", "/tasks", map[string]string{"title": "   "}))

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "detail")
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_Create_TitleLengthBoundary(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	okTitle := strings.Repeat("a", 255)
	created := &model.Task{ID: uuid.New(), Title: okTitle, UserID: "user-1"}
	mockService.On("Create", mock.Anything, "user-1", okTitle, "", false).Return(created, nil)

	// Act: exactly 255 characters is accepted
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("POST", "/tasks", map[string]string{"title": okTitle}))
	assert.Equal(t, http.StatusCreated, resp.Code)

	// Act: 256 characters is rejected before the service runs
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("POST", "/tasks", map[string]string{"title": strings.Repeat("a", 256)}))

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockService.AssertNumberOfCalls(t, "Create", 1)
}

func TestTaskHandler_GetByID_NotFound(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-b")

	taskID := uuid.New()
	mockService.On("GetByID", mock.Anything, "user-b", taskID).Return(nil, repository.ErrTaskNotFound)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("GET", "/tasks/"+taskID.String(), nil))

	// Assert: another user's task is indistinguishable from an absent one
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "detail")
}

func TestTaskHandler_GetByID_MalformedID(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("GET", "/tasks/not-a-uuid", nil))

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_Update_PatchOnlyPresentFields(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	taskID := uuid.New()
	updated := &model.Task{ID: taskID, Title: "Buy milk", Completed: true, UserID: "user-1"}

	mockService.On("Update", mock.Anything, "user-1", taskID, mock.MatchedBy(func(patch service.UpdatePatch) bool {
		return patch.Title == nil && patch.Description == nil &&
			patch.Completed != nil && *patch.Completed
	})).Return(updated, nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("PUT", "/tasks/"+taskID.String(), map[string]bool{"completed": true}))

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_Update_IgnoresUserIDField(t *testing.T) {
	// Arrange: user_id in the payload is not an updatable field and simply
	// does not bind
	router, mockService := setupTaskRouter("user-1")

	taskID := uuid.New()
	updated := &model.Task{ID: taskID, Title: "Renamed", UserID: "user-1"}

	mockService.On("Update", mock.Anything, "user-1", taskID, mock.MatchedBy(func(patch service.UpdatePatch) bool {
		return patch.Title != nil && *patch.Title == "Renamed"
	})).Return(updated, nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("PUT", "/tasks/"+taskID.String(), map[string]string{
		"title":   "Renamed",
		"user_id": "someone-else",
	}))

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var task model.Task
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	assert.Equal(t, "user-1", task.UserID)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	taskID := uuid.New()
	mockService.On("Update", mock.Anything, "user-1", taskID, mock.Anything).Return(nil, repository.ErrTaskNotFound)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("PUT", "/tasks/"+taskID.String(), map[string]string{"title": "x"}))

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTaskHandler_Delete(t *testing.T) {
	// Arrange
	router, mockService := setupTaskRouter("user-1")

	taskID := uuid.New()
	mockService.On("Delete", mock.Anything, "user-1", taskID).Return(nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, jsonRequest("DELETE", "/tasks/"+taskID.String(), nil))

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task deleted successfully")
}

func TestTaskHandler_Delete_SecondCallNotFound(t *testing.T) {
	// Arrange: the second delete of the same id answers not found
	router, mockService := setupTaskRouter("user-1")

	taskID := uuid.New()
	mockService.On("Delete", mock.Anything, "user-1", taskID).Return(nil).Once()
	mockService.On("Delete", mock.Anything, "user-1", taskID).Return(repository.ErrTaskNotFound).Once()

	// Act
	first := httptest.NewRecorder()
	router.ServeHTTP(first, jsonRequest("DELETE", "/tasks/"+taskID.String(), nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, jsonRequest("DELETE", "/tasks/"+taskID.String(), nil))

	// Assert
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)
	mockService.AssertExpectations(t)
}

func TestTaskHandler_Unauthenticated_NoServiceCall(t *testing.T) {
	// Arrange: the real auth middleware in front of the handler; no
	// credential means 401 before any service (and thus database) access
	gin.SetMode(gin.TestMode)
	r := gin.New()

	mockService := new(MockTaskService)
	taskHandler := handler.NewTaskHandler(mockService)
	verifier := auth.NewVerifier("test-secret-key", 60)

	r.Use(middleware.JWTAuthMiddleware(verifier))
	r.GET("/tasks", taskHandler.List)

	// Act
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, jsonRequest("GET", "/tasks", nil))

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "detail")
	mockService.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}
