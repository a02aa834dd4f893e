package repository

import (
	"context"
	"errors"
	"time"

	"visionflow/internal/board"
	"visionflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project together with its initial board snapshot
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	err := r.db.WithContext(ctx).Create(project).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

// GetByID retrieves a project with its board
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListForUser returns projects the user leads, is a member of, or sees through a team
func (r *ProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("lead_id = ? OR id IN (?) OR id IN (?)", userID,
			r.db.Model(&model.ProjectMember{}).Select("project_id").Where("user_id = ?", userID),
			r.db.Model(&model.TeamProject{}).Select("team_projects.project_id").
				Joins("JOIN team_members ON team_members.team_id = team_projects.team_id").
				Where("team_members.user_id = ?", userID)).
		Order("created_at").
		Find(&projects).Error
	return projects, err
}

// Update saves name, description and key. The board is only written through SaveBoard.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Model(&model.Project{ID: project.ID}).
		Select("Name", "Description", "Key", "UpdatedAt").
		Updates(&model.Project{
			Name:        project.Name,
			Description: project.Description,
			Key:         project.Key,
			UpdatedAt:   time.Now(),
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// SaveBoard replaces the stored board snapshot of a project
func (r *ProjectRepository) SaveBoard(ctx context.Context, projectID uuid.UUID, b board.Board) error {
	result := r.db.WithContext(ctx).Model(&model.Project{ID: projectID}).
		Select("Board", "UpdatedAt").
		Updates(&model.Project{Board: b, UpdatedAt: time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes a project with its tasks, comments and memberships
func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProjectNotFound
		}
		return nil
	})
}
