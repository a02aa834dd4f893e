package handler

import (
	"time"

	"github.com/google/uuid"

	"visionflow/internal/board"
	"visionflow/internal/model"
)

type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	Role   string `json:"role"`
}

type ProjectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Key         string         `json:"key"`
	Lead        *UserResponse  `json:"lead,omitempty"`
	LeadID      string         `json:"leadId"`
	Members     []UserResponse `json:"members"`
	Board       board.Board    `json:"board"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	UserID    string        `json:"userId"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt string        `json:"createdAt"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"projectId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      string            `json:"status"`
	Priority    string            `json:"priority"`
	AssigneeID  *string           `json:"assigneeId,omitempty"`
	Assignee    *UserResponse     `json:"assignee,omitempty"`
	DueDate     *string           `json:"dueDate,omitempty"`
	Tags        []string          `json:"tags"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
	CompletedAt *string           `json:"completedAt,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

func newUserResponse(u *model.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:     u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Role:   u.Role,
	}
}

func newProjectResponse(p *model.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Key:         p.Key,
		LeadID:      p.LeadID.String(),
		Members:     make([]UserResponse, 0, len(p.Members)),
		Board:       p.Board,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Lead.ID != uuid.Nil {
		resp.Lead = newUserResponse(&p.Lead)
	}
	for i := range p.Members {
		if u := newUserResponse(&p.Members[i].User); u != nil {
			resp.Members = append(resp.Members, *u)
		}
	}
	return resp
}

func newCommentResponse(cm *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        cm.ID.String(),
		Content:   cm.Content,
		UserID:    cm.UserID.String(),
		CreatedAt: cm.CreatedAt.Format(time.RFC3339),
	}
	if cm.User.ID == cm.UserID {
		resp.User = newUserResponse(&cm.User)
	}
	return resp
}

func newTaskResponse(t *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Assignee:    newUserResponse(t.Assignee),
		Tags:        t.Tags,
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
		Comments:    make([]CommentResponse, 0, len(t.Comments)),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if t.AssigneeID != nil {
		id := t.AssigneeID.String()
		resp.AssigneeID = &id
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}
	if t.CompletedAt != nil {
		done := t.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &done
	}
	for i := range t.Comments {
		resp.Comments = append(resp.Comments, newCommentResponse(&t.Comments[i]))
	}
	return resp
}

type TeamResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Members     []UserResponse `json:"members"`
	Projects    []string       `json:"projects"`
	CreatedBy   string         `json:"createdBy"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

func newTeamResponse(t *model.Team) TeamResponse {
	resp := TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		Members:     make([]UserResponse, 0, len(t.Members)),
		Projects:    make([]string, 0, len(t.Projects)),
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	for i := range t.Members {
		if t.Members[i].User.ID != uuid.Nil {
			resp.Members = append(resp.Members, *newUserResponse(&t.Members[i].User))
		}
	}
	for _, p := range t.Projects {
		resp.Projects = append(resp.Projects, p.ProjectID.String())
	}
	return resp
}
