package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"visionflow/internal/model"
)

// UserRepository stores accounts. Lookups report a missing user as nil, nil so
// the auth handlers can tell "no such account" from a database failure.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers an account. A taken email is reported as ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return emailTaken(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) findOne(ctx context.Context, cond string, arg any) (*model.User, error) {
	var found []model.User
	if err := r.db.WithContext(ctx).Where(cond, arg).Limit(1).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// List returns every account ordered by name, for the admin user list and
// the member pickers of teams and projects.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("name").Find(&users).Error
	return users, err
}

// UpdateProfile saves name, email and avatar.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	return r.updateColumns(ctx, user.ID, map[string]any{
		"name":   user.Name,
		"email":  user.Email,
		"avatar": user.Avatar,
	})
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	return r.updateColumns(ctx, id, map[string]any{"role": role})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.updateColumns(ctx, id, map[string]any{"hashed_password": hashedPassword})
}

func (r *UserRepository) updateColumns(ctx context.Context, id uuid.UUID, cols map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(cols)
	if err := emailTaken(result.Error); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// emailTaken maps the unique violation on users.email, the only unique
// column besides the key, onto ErrEmailTaken.
func emailTaken(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}
