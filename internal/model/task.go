package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities.
const (
	PriorityLow      = "Low"
	PriorityMedium   = "Medium"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Status      string     `gorm:"not null;index"`
	Priority    string     `gorm:"not null;default:'Medium'"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	DueDate     *time.Time
	Tags        []string   `gorm:"type:jsonb;serializer:json"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	CompletedAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Assignee *User     `gorm:"foreignKey:AssigneeID"`
	Comments []Comment `gorm:"foreignKey:TaskID"`
}

func (t Task) SearchTitle() string       { return t.Title }
func (t Task) SearchDescription() string { return t.Description }
func (t Task) SearchTags() []string      { return t.Tags }
