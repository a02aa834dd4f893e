package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/auth"
	"visionflow/internal/model"
	"visionflow/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
}

type UserHandler struct {
	repo   UserStore
	tokens *auth.TokenManager
}

func NewUserHandler(repo UserStore, tokens *auth.TokenManager) *UserHandler {
	return &UserHandler{repo: repo, tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileRequest edits an account. Empty fields keep their value.
type ProfileRequest struct {
	Name   string  `json:"name" binding:"omitempty,min=2"`
	Email  string  `json:"email" binding:"omitempty,email"`
	Avatar *string `json:"avatar"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// Register godoc
// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "New account"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Router       /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		Name:           req.Name,
		HashedPassword: hash,
		Role:           model.UserRoleMember,
	}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		log.Error().Err(err).Msg("create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Credentials"
// @Success      200 {object} AuthResponse
// @Failure      401 {object} map[string]string
// @Router       /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check user"})
		return
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

// Me godoc
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} UserResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// List godoc
// @Summary      All users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} UserResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	users, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = *newUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary      One user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200 {object} UserResponse
// @Failure      404 {object} map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	id, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	user, ok := h.load(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary      Edit own profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProfileRequest true "Profile"
// @Success      200 {object} UserResponse
// @Failure      409 {object} map[string]string
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	h.updateProfile(c, userID)
}

// Update godoc
// @Summary      Edit a user's profile
// @Description  Admins may edit anyone; other users only themselves.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body ProfileRequest true "Profile"
// @Success      200 {object} UserResponse
// @Failure      403 {object} map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	if self, ok := currentUser(c); !ok {
		return
	} else if self != id {
		if _, ok := requireUserRole(c, h.repo, model.UserRoleAdmin); !ok {
			return
		}
	}
	h.updateProfile(c, id)
}

func (h *UserHandler) updateProfile(c *gin.Context, id uuid.UUID) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	user, ok := h.load(c, id)
	if !ok {
		return
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := h.repo.UpdateProfile(c.Request.Context(), user); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// ChangePassword godoc
// @Summary      Change own password
// @Tags         Users
// @Accept       json
// @Security     BearerAuth
// @Param        request body PasswordRequest true "Current and new password"
// @Success      204
// @Failure      400 {object} map[string]string
// @Router       /users/me/password [post]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	user, ok := h.load(c, userID)
	if !ok {
		return
	}
	if !auth.CheckPassword(user.HashedPassword, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := h.repo.UpdatePassword(c.Request.Context(), userID, hash); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeRole godoc
// @Summary      Change a user's account role
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body RoleRequest true "Admin, Manager, Member or Viewer"
// @Success      200 {object} UserResponse
// @Failure      403 {object} map[string]string
// @Router       /users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := uuidParam(c, "id", "user")
	if !ok {
		return
	}
	admin, ok := requireUserRole(c, h.repo, model.UserRoleAdmin)
	if !ok {
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil || !model.IsUserRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if admin.ID == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admins cannot change their own role"})
		return
	}

	user, ok := h.load(c, id)
	if !ok {
		return
	}
	if err := h.repo.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
		h.writeUpdateError(c, err)
		return
	}
	user.Role = req.Role
	log.Info().Str("user_id", id.String()).Str("role", req.Role).Str("by", admin.ID.String()).Msg("user role changed")
	c.JSON(http.StatusOK, newUserResponse(user))
}

// load fetches a user or writes 404 or 500.
func (h *UserHandler) load(c *gin.Context, id uuid.UUID) (*model.User, bool) {
	user, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return user, true
}

func (h *UserHandler) writeUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		log.Error().Err(err).Msg("update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
	}
}

func (h *UserHandler) respondWithToken(c *gin.Context, status int, user *model.User) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, AuthResponse{Token: token, User: *newUserResponse(user)})
}
