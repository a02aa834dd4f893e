package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
	"visionflow/internal/model"
	"visionflow/internal/repository"
)

type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberStore interface {
	AccessChecker
	AddMember(ctx context.Context, projectID, userID uuid.UUID, role string) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error)
}

type ProjectHandler struct {
	projects ProjectStore
	members  MemberStore
	users    UserLookup
}

func NewProjectHandler(projects ProjectStore, members MemberStore, users UserLookup) *ProjectHandler {
	return &ProjectHandler{projects: projects, members: members, users: users}
}

type ProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Key         string `json:"key" binding:"required,alphanum,max=10"`
}

type AddMemberRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
	Role   string `json:"role" binding:"omitempty,oneof=viewer editor"`
}

// List godoc
// @Summary      Projects the current user leads or belongs to
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ProjectResponse
// @Router       /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projects.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i := range projects {
		response[i] = newProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary      Create a project with an empty four-column board
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ProjectRequest true "Project"
// @Success      201 {object} ProjectResponse
// @Failure      409 {object} map[string]string
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project := &model.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Key:         strings.ToUpper(req.Key),
		LeadID:      userID,
		Board:       board.New(),
	}
	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Project key already exists"})
			return
		}
		log.Error().Err(err).Msg("create project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

// GetByID godoc
// @Summary      Project with lead, members and board
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} ProjectResponse
// @Failure      404 {object} map[string]string
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.members, projectID, model.RoleViewer); !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeBoardError(c, err)
		return
	}

	members, err := h.members.ListMembers(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve members"})
		return
	}
	project.Members = members
	if lead, err := h.users.GetByID(c.Request.Context(), project.LeadID); err == nil && lead != nil {
		project.Lead = *lead
	}

	c.JSON(http.StatusOK, newProjectResponse(project))
}

// Update godoc
// @Summary      Rename or re-key a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body ProjectRequest true "Project"
// @Success      200 {object} ProjectResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.members, projectID, model.RoleEditor); !ok {
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	project.Name = req.Name
	project.Description = req.Description
	project.Key = strings.ToUpper(req.Key)

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			c.JSON(http.StatusConflict, gin.H{"error": "Project key already exists"})
		case errors.Is(err, repository.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		}
		return
	}

	c.JSON(http.StatusOK, newProjectResponse(project))
}

// Delete godoc
// @Summary      Delete a project, its tasks and memberships
// @Tags         Projects
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      204
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), projectID)
	if err != nil {
		writeBoardError(c, err)
		return
	}
	if project.LeadID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the project lead can delete this project"})
		return
	}

	if err := h.projects.Delete(c.Request.Context(), projectID); err != nil {
		writeBoardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMember godoc
// @Summary      Add a user to a project
// @Tags         Projects
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body AddMemberRequest true "Member"
// @Success      204
// @Router       /projects/{id}/members [post]
func (h *ProjectHandler) AddMember(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.members, projectID, model.RoleEditor); !ok {
		return
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	memberID := uuid.MustParse(req.UserID)
	if req.Role == "" {
		req.Role = model.RoleEditor
	}

	user, err := h.users.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.members.AddMember(c.Request.Context(), projectID, memberID, req.Role); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add member"})
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Remove a user from a project
// @Tags         Projects
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        user_id path string true "User ID"
// @Success      204
// @Router       /projects/{id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	projectID, ok := uuidParam(c, "id", "project")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}
	if _, ok := authorize(c, h.members, projectID, model.RoleEditor); !ok {
		return
	}

	if err := h.members.RemoveMember(c.Request.Context(), projectID, memberID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove member"})
		return
	}
	c.Status(http.StatusNoContent)
}
