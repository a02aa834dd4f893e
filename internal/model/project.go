package model

import (
	"time"

	"github.com/google/uuid"

	"visionflow/internal/board"
)

// Project owns exactly one board. The board is stored as a jsonb snapshot so
// column and task ordering round-trips unchanged to the web client.
type Project struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string      `gorm:"not null"`
	Description string
	Key         string      `gorm:"uniqueIndex;not null"`
	LeadID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Board       board.Board `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lead    User            `gorm:"foreignKey:LeadID"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID"`
}
