package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapi/internal/model"
)

// TaskRepository is the only module that reads or writes the tasks table.
// Every lookup and mutation is keyed on (id, user_id), so a query that
// omits the ownership filter cannot be expressed through it.
type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	ListByUser(ctx context.Context, userID string) ([]model.Task, error)
	GetByOwner(ctx context.Context, id uuid.UUID, userID string) (*model.Task, error)
	UpdateFields(ctx context.Context, id uuid.UUID, userID string, fields map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// ListByUser retrieves all tasks owned by the given user, oldest first
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	tasks := []model.Task{}
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// GetByOwner retrieves a task only if both id and owner match
func (r *TaskRepository) GetByOwner(ctx context.Context, id uuid.UUID, userID string) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// UpdateFields applies a partial update as a single scoped statement.
// Only the supplied columns change; user_id is never among them.
func (r *TaskRepository) UpdateFields(ctx context.Context, id uuid.UUID, userID string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes the task permanently. Deleting an already-deleted id
// reports not found, not success.
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
