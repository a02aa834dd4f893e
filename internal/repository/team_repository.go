package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"visionflow/internal/model"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a team and makes its creator the first member
func (r *TeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}
		return tx.Create(&model.TeamMember{TeamID: team.ID, UserID: team.CreatedBy}).Error
	})
}

// GetByID retrieves a team with its members and linked projects
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.withLinks(ctx).Where("id = ?", id).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns every team ordered by name
func (r *TeamRepository) List(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.withLinks(ctx).Order("name").Find(&teams).Error
	return teams, err
}

func (r *TeamRepository) withLinks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Members.User").
		Preload("Projects")
}

// Update saves name and description
func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	team.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&model.Team{ID: team.ID}).
		Select("Name", "Description", "UpdatedAt").
		Updates(team)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// Delete removes a team; memberships and project links go with it
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AddMember is idempotent
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.TeamMember{TeamID: teamID, UserID: userID}).Error
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{}).Error
}

// AddProject links a project to the team. Linking twice is not an error.
func (r *TeamRepository) AddProject(ctx context.Context, teamID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.TeamProject{TeamID: teamID, ProjectID: projectID}).Error
}

func (r *TeamRepository) RemoveProject(ctx context.Context, teamID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("team_id = ? AND project_id = ?", teamID, projectID).
		Delete(&model.TeamProject{}).Error
}
