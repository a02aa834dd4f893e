package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMember grants a user access to a project board.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"not null;check:role IN ('viewer', 'editor')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
}

// Member roles on a project.
const (
	RoleViewer = "viewer" // read only
	RoleEditor = "editor" // may edit tasks and move them on the board
)
