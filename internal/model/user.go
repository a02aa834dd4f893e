package model

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User roles as shown in the web client.
const (
	UserRoleAdmin   = "Admin"
	UserRoleManager = "Manager"
	UserRoleMember  = "Member"
	UserRoleViewer  = "Viewer"
)

var UserRoles = []string{UserRoleAdmin, UserRoleManager, UserRoleMember, UserRoleViewer}

func IsUserRole(role string) bool {
	return slices.Contains(UserRoles, role)
}

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Avatar         string
	Role           string    `gorm:"not null;default:'Member'"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}
