package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"todoapi/internal/logger"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// UpdatePatch carries partial-update semantics: only non-nil fields are
// applied. There is no user_id field on purpose; ownership is immutable.
type UpdatePatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

type TaskServiceInterface interface {
	Create(ctx context.Context, userID, title, description string, completed bool) (*model.Task, error)
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByID(ctx context.Context, userID string, taskID uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, userID string, taskID uuid.UUID, patch UpdatePatch) (*model.Task, error)
	Delete(ctx context.Context, userID string, taskID uuid.UUID) error
}

// TaskService owns all task reads and writes. The user id it receives is
// trusted only because it came out of the token verifier, never from a
// request body, and is enforced on every repository call. Each operation
// leaves an audit log entry; logging can never abort the data operation.
type TaskService struct {
	tasks       repository.TaskRepositoryInterface
	users       repository.UserRepositoryInterface
	requireUser bool
	log         *slog.Logger
}

var _ TaskServiceInterface = (*TaskService)(nil)

func NewTaskService(tasks repository.TaskRepositoryInterface, users repository.UserRepositoryInterface, requireUser bool) *TaskService {
	return &TaskService{
		tasks:       tasks,
		users:       users,
		requireUser: requireUser,
		log:         logger.With("component", "task_service"),
	}
}

func (s *TaskService) Create(ctx context.Context, userID, title, description string, completed bool) (*model.Task, error) {
	if s.requireUser {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			s.audit("create", userID, "", false)
			return nil, err
		}
		if user == nil {
			s.audit("create", userID, "", false)
			return nil, repository.ErrUserNotFound
		}
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Completed:   completed,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.audit("create", userID, "", false)
		return nil, err
	}

	s.audit("create", userID, task.ID.String(), true)
	return task, nil
}

func (s *TaskService) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		s.audit("list", userID, "", false)
		return nil, err
	}

	s.audit("list", userID, "", true)
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID string, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByOwner(ctx, taskID, userID)
	if err != nil {
		s.audit("get", userID, taskID.String(), false)
		return nil, err
	}

	s.audit("get", userID, taskID.String(), true)
	return task, nil
}

// Update applies only the fields present in the patch. An empty patch is
// legal and still bumps updated_at. The write is a single statement scoped
// by (id, user_id); a concurrent delete degrades to not-found.
func (s *TaskService) Update(ctx context.Context, userID string, taskID uuid.UUID, patch UpdatePatch) (*model.Task, error) {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Completed != nil {
		fields["completed"] = *patch.Completed
	}

	if err := s.tasks.UpdateFields(ctx, taskID, userID, fields); err != nil {
		s.audit("update", userID, taskID.String(), false)
		return nil, err
	}

	task, err := s.tasks.GetByOwner(ctx, taskID, userID)
	if err != nil {
		s.audit("update", userID, taskID.String(), false)
		return nil, err
	}

	s.audit("update", userID, taskID.String(), true)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID string, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, taskID, userID); err != nil {
		s.audit("delete", userID, taskID.String(), false)
		return err
	}

	s.audit("delete", userID, taskID.String(), true)
	return nil
}

func (s *TaskService) audit(op, userID, taskID string, success bool) {
	if success {
		s.log.Info("task operation", "op", op, "user_id", userID, "task_id", taskID)
	} else {
		s.log.Warn("task operation failed", "op", op, "user_id", userID, "task_id", taskID)
	}
}
