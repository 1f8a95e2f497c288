package handler

import (
	"errors"
	"net/http"
	"strings"

	"todoapi/internal/middleware"
	"todoapi/internal/repository"
	"todoapi/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	service service.TaskServiceInterface
}

func NewTaskHandler(svc service.TaskServiceInterface) *TaskHandler {
	return &TaskHandler{service: svc}
}

// TaskCreateRequest is the POST /tasks body. user_id is never accepted
// from the client; it comes from the verified token.
type TaskCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskUpdateRequest is the PUT /tasks/:id body. Pointer fields distinguish
// "absent" from "set to zero value": only present fields are applied.
type TaskUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondDetail(c, http.StatusUnauthorized, "Authentication required")
		return "", false
	}

	userID, ok := value.(string)
	if !ok || userID == "" {
		respondDetail(c, http.StatusUnauthorized, "Authentication required")
		return "", false
	}

	return userID, true
}

func taskIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot match any task; report it the same way
		// as a missing one so nothing is confirmed about other ids.
		respondDetail(c, http.StatusNotFound, "Task not found or does not belong to the user")
		return uuid.Nil, false
	}
	return id, true
}

// List returns all tasks owned by the authenticated user
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create creates a new task for the authenticated user
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		respondDetail(c, http.StatusBadRequest, "Task title is required")
		return
	}

	task, err := h.service.Create(c.Request.Context(), userID, req.Title, req.Description, req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondDetail(c, http.StatusNotFound, "User not found")
			return
		}
		respondDetail(c, http.StatusBadRequest, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetByID returns a single task; an id owned by someone else answers 404
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondDetail(c, http.StatusNotFound, "Task not found or does not belong to the user")
			return
		}
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondDetail(c, http.StatusBadRequest, "Task title is required")
		return
	}

	task, err := h.service.Update(c.Request.Context(), userID, taskID, service.UpdatePatch{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondDetail(c, http.StatusNotFound, "Task not found or does not belong to the user")
			return
		}
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete removes a task permanently
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, taskID); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			respondDetail(c, http.StatusNotFound, "Task not found or does not belong to the user")
			return
		}
		respondInternal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
