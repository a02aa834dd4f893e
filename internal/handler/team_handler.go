package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/model"
	"visionflow/internal/repository"
)

type TeamStore interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	List(ctx context.Context) ([]model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	AddProject(ctx context.Context, teamID, projectID uuid.UUID) error
	RemoveProject(ctx context.Context, teamID, projectID uuid.UUID) error
}

// TeamHandler serves /teams. Admins, managers and the team's creator manage
// a team; every signed-in user may read teams.
type TeamHandler struct {
	teams  TeamStore
	users  UserLookup
	access AccessChecker
}

func NewTeamHandler(teams TeamStore, users UserLookup, access AccessChecker) *TeamHandler {
	return &TeamHandler{teams: teams, users: users, access: access}
}

type TeamRequest struct {
	Name        string `json:"name" binding:"required,min=2"`
	Description string `json:"description"`
}

type TeamMemberRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

type TeamProjectRequest struct {
	ProjectID string `json:"projectId" binding:"required,uuid"`
}

// List godoc
// @Summary      All teams
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} TeamResponse
// @Router       /teams [get]
func (h *TeamHandler) List(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	teams, err := h.teams.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}
	response := make([]TeamResponse, len(teams))
	for i := range teams {
		response[i] = newTeamResponse(&teams[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary      Create a team
// @Description  Admins and managers only. The creator becomes the first member.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TeamRequest true "Team"
// @Success      201 {object} TeamResponse
// @Failure      403 {object} map[string]string
// @Router       /teams [post]
func (h *TeamHandler) Create(c *gin.Context) {
	user, ok := requireUserRole(c, h.users, model.UserRoleAdmin, model.UserRoleManager)
	if !ok {
		return
	}
	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	now := time.Now()
	team := &model.Team{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.teams.Create(c.Request.Context(), team); err != nil {
		log.Error().Err(err).Msg("create team")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}
	team.Members = []model.TeamMember{{TeamID: team.ID, UserID: user.ID, User: *user}}
	c.JSON(http.StatusCreated, newTeamResponse(team))
}

// GetByID godoc
// @Summary      One team with members and linked projects
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Success      200 {object} TeamResponse
// @Failure      404 {object} map[string]string
// @Router       /teams/{id} [get]
func (h *TeamHandler) GetByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	team, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newTeamResponse(team))
}

// Update godoc
// @Summary      Rename a team or change its description
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        request body TeamRequest true "Team"
// @Success      200 {object} TeamResponse
// @Router       /teams/{id} [put]
func (h *TeamHandler) Update(c *gin.Context) {
	team, ok := h.loadManaged(c)
	if !ok {
		return
	}
	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	team.Name = req.Name
	team.Description = req.Description
	if err := h.teams.Update(c.Request.Context(), team); err != nil {
		writeTeamError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTeamResponse(team))
}

// Delete godoc
// @Summary      Delete a team
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Success      204
// @Router       /teams/{id} [delete]
func (h *TeamHandler) Delete(c *gin.Context) {
	team, ok := h.loadManaged(c)
	if !ok {
		return
	}
	if err := h.teams.Delete(c.Request.Context(), team.ID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMember godoc
// @Summary      Add a user to a team
// @Tags         Teams
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        request body TeamMemberRequest true "Member"
// @Success      204
// @Router       /teams/{id}/members [post]
func (h *TeamHandler) AddMember(c *gin.Context) {
	team, ok := h.loadManaged(c)
	if !ok {
		return
	}
	var req TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	memberID := uuid.MustParse(req.UserID)

	user, err := h.users.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := h.teams.AddMember(c.Request.Context(), team.ID, memberID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Remove a user from a team
// @Description  Managers remove anyone; members may leave on their own.
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        user_id path string true "User ID"
// @Success      204
// @Router       /teams/{id}/members/{user_id} [delete]
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	memberID, ok := uuidParam(c, "user_id", "user")
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var team *model.Team
	if memberID == userID {
		team, ok = h.load(c)
	} else {
		team, ok = h.loadManaged(c)
	}
	if !ok {
		return
	}
	if err := h.teams.RemoveMember(c.Request.Context(), team.ID, memberID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddProject godoc
// @Summary      Link a project to a team
// @Description  Team members gain viewer access to the project. The caller must be able to edit the project.
// @Tags         Teams
// @Accept       json
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        request body TeamProjectRequest true "Project"
// @Success      204
// @Router       /teams/{id}/projects [post]
func (h *TeamHandler) AddProject(c *gin.Context) {
	team, ok := h.loadManaged(c)
	if !ok {
		return
	}
	var req TeamProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	projectID := uuid.MustParse(req.ProjectID)
	if _, ok := authorize(c, h.access, projectID, model.RoleEditor); !ok {
		return
	}
	if err := h.teams.AddProject(c.Request.Context(), team.ID, projectID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveProject godoc
// @Summary      Unlink a project from a team
// @Tags         Teams
// @Security     BearerAuth
// @Param        id path string true "Team ID"
// @Param        project_id path string true "Project ID"
// @Success      204
// @Router       /teams/{id}/projects/{project_id} [delete]
func (h *TeamHandler) RemoveProject(c *gin.Context) {
	projectID, ok := uuidParam(c, "project_id", "project")
	if !ok {
		return
	}
	team, ok := h.loadManaged(c)
	if !ok {
		return
	}
	if err := h.teams.RemoveProject(c.Request.Context(), team.ID, projectID); err != nil {
		writeTeamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// load reads the team named by the id path parameter or writes 400, 404 or 500.
func (h *TeamHandler) load(c *gin.Context) (*model.Team, bool) {
	teamID, ok := uuidParam(c, "id", "team")
	if !ok {
		return nil, false
	}
	team, err := h.teams.GetByID(c.Request.Context(), teamID)
	if err != nil {
		writeTeamError(c, err)
		return nil, false
	}
	return team, true
}

// loadManaged is load plus the manage check: the creator, admins and managers pass.
func (h *TeamHandler) loadManaged(c *gin.Context) (*model.Team, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	team, ok := h.load(c)
	if !ok {
		return nil, false
	}
	if team.CreatedBy == userID {
		return team, true
	}
	if _, ok := requireUserRole(c, h.users, model.UserRoleAdmin, model.UserRoleManager); !ok {
		return nil, false
	}
	return team, true
}

func writeTeamError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrTeamNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("team operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team"})
}
