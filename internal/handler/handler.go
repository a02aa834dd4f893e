package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
	"visionflow/internal/middleware"
	"visionflow/internal/model"
	"visionflow/internal/repository"
)

// AccessChecker answers whether a user may act on a project with a given role.
type AccessChecker interface {
	CheckAccess(ctx context.Context, projectID, userID uuid.UUID, requiredRole string) (bool, error)
}

// UserLookup loads accounts by id.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// requireUserRole loads the current account and writes 401, 403 or 500
// unless its role is one of roles.
func requireUserRole(c *gin.Context, users UserLookup, roles ...string) (*model.User, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("load current user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return nil, false
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}
	if !slices.Contains(roles, user.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action"})
		return nil, false
	}
	return user, true
}

// currentUser reads the authenticated user id or writes a 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	return userID, true
}

// uuidParam parses a path parameter or writes a 400.
func uuidParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// authorize checks project access for the current user and writes 401, 403
// or 500 when the request may not continue.
func authorize(c *gin.Context, access AccessChecker, projectID uuid.UUID, role string) (uuid.UUID, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	allowed, err := access.CheckAccess(c.Request.Context(), projectID, userID, role)
	if err != nil {
		log.Error().Err(err).Str("project_id", projectID.String()).Msg("check project access")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check permissions"})
		return uuid.Nil, false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this project"})
		return uuid.Nil, false
	}
	return userID, true
}

// writeBoardError maps board and repository errors onto HTTP responses.
func writeBoardError(c *gin.Context, err error) {
	var moveErr *board.InvalidMoveError
	switch {
	case errors.As(err, &moveErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":  moveErr.Error(),
			"reason": moveErr.Reason,
			"stale":  moveErr.Stale(),
		})
	case errors.Is(err, repository.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
	case errors.Is(err, repository.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("board operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update board"})
	}
}

// projectIDs lists the ids of every project the user can see.
func projectIDs(projects []model.Project) []uuid.UUID {
	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}
