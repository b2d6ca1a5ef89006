package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ProjectActive = "active"

type Project struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index;size:64;not null" json:"user_id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description *string   `json:"description"`
	Status      string    `gorm:"index;size:16;not null" json:"status"` // active
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectActive
	}
	return nil
}
