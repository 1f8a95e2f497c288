package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is one to-do item. UserID stores the subject of the token the owner
// authenticated with; the owning user record lives in the external identity
// system, so there is no structural foreign key.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null" json:"completed"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
