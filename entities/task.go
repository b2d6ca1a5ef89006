package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	UserID    string     `gorm:"index;size:64;not null" json:"user_id"`
	ProjectID string     `gorm:"index;size:36;not null" json:"project_id"`
	Title     string     `gorm:"size:300;not null" json:"title"`
	Notes     *string    `json:"notes"`
	IsDone    bool       `gorm:"not null" json:"is_done"`
	DoneAt    *time.Time `json:"done_at"` // set iff IsDone
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

const (
	ActionComplete   = "complete"
	ActionUncomplete = "uncomplete"
)

// TaskLog is append-only. One row per (task, day, action).
type TaskLog struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"index;size:64;not null" json:"user_id"`
	TaskID       string    `gorm:"size:36;not null;uniqueIndex:idx_task_logs_once,priority:1" json:"task_id"`
	OccurredDate string    `gorm:"size:10;not null;uniqueIndex:idx_task_logs_once,priority:2" json:"occurred_date"` // YYYY-MM-DD
	Action       string    `gorm:"size:16;not null;uniqueIndex:idx_task_logs_once,priority:3" json:"action"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func (l *TaskLog) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
