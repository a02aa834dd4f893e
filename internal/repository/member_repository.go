package repository

import (
	"context"
	"errors"

	"visionflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// AddMember adds a user to a project or updates their role if already present
func (r *MemberRepository) AddMember(ctx context.Context, projectID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.ProjectMember
		err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&existing).Error
		if err == nil {
			existing.Role = role
			return tx.Save(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model.ProjectMember{
			ProjectID: projectID,
			UserID:    userID,
			Role:      role,
		}).Error
	})
}

// RemoveMember revokes a user's access to a project
func (r *MemberRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&model.ProjectMember{}).Error
}

// ListMembers returns the members of a project with their user records
func (r *MemberRepository) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Find(&members).Error
	return members, err
}

// CheckAccess reports whether the user leads the project or holds requiredRole or higher on it.
// Members of a team linked to the project may view it.
func (r *MemberRepository) CheckAccess(ctx context.Context, projectID, userID uuid.UUID, requiredRole string) (bool, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Select("id").
		Where("id = ? AND lead_id = ?", projectID, userID).
		First(&project).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var member model.ProjectMember
	err = r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if requiredRole != model.RoleViewer {
			return false, nil
		}
		return r.viaTeam(ctx, projectID, userID)
	}
	if err != nil {
		return false, err
	}

	if requiredRole == model.RoleViewer {
		return true, nil
	}
	return member.Role == model.RoleEditor, nil
}

func (r *MemberRepository) viaTeam(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Joins("JOIN team_projects ON team_projects.team_id = team_members.team_id").
		Where("team_projects.project_id = ? AND team_members.user_id = ?", projectID, userID).
		Count(&n).Error
	return n > 0, err
}
