package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
	"visionflow/internal/model"
	"visionflow/internal/repository"
)

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectLister lists the projects visible to a user.
type ProjectLister interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
}

type TaskHandler struct {
	tasks    TaskStore
	comments CommentStore
	boards   BoardService
	access   AccessChecker
	projects ProjectLister
}

func NewTaskHandler(tasks TaskStore, comments CommentStore, boards BoardService, access AccessChecker, projects ProjectLister) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		comments: comments,
		boards:   boards,
		access:   access,
		projects: projects,
	}
}

// TaskRequest is used for both create and update. ProjectID is ignored on update.
type TaskRequest struct {
	ProjectID   string     `json:"projectId" binding:"omitempty,uuid"`
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=Low Medium High Critical"`
	AssigneeID  *string    `json:"assigneeId" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// List godoc
// @Summary      Tasks visible to the current user
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId query string false "Project ID"
// @Param        assigneeId query string false "Assignee ID"
// @Param        status query string false "Status"
// @Success      200 {array} TaskResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var filter repository.TaskFilter
	filter.Status = c.Query("status")
	if raw := c.Query("assigneeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		filter.AssigneeID = &id
	}

	var visible []uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		if _, ok := authorize(c, h.access, id, model.RoleViewer); !ok {
			return
		}
		filter.ProjectID = &id
	} else {
		projects, err := h.projects.ListForUser(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
			return
		}
		visible = projectIDs(projects)
	}

	tasks, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		if filter.ProjectID == nil && !slices.Contains(visible, tasks[i].ProjectID) {
			continue
		}
		response = append(response, newTaskResponse(&tasks[i]))
	}
	c.JSON(http.StatusOK, response)
}

// Create godoc
// @Summary      Create a task and place it on the board
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TaskRequest true "Task"
// @Success      201 {object} TaskResponse
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Status == "" {
		req.Status = board.StatusToDo
	}
	if !board.IsStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	projectID := uuid.MustParse(req.ProjectID)
	userID, ok := authorize(c, h.access, projectID, model.RoleEditor)
	if !ok {
		return
	}

	task := &model.Task{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		CreatedBy:   userID,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if req.AssigneeID != nil {
		id := uuid.MustParse(*req.AssigneeID)
		task.AssigneeID = &id
	}

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		log.Error().Err(err).Msg("create task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}
	if _, err := h.boards.AddTask(c.Request.Context(), projectID, task); err != nil {
		// Keep the task table and the board in step.
		if delErr := h.tasks.Delete(c.Request.Context(), task.ID); delErr != nil {
			log.Error().Err(delErr).Str("task_id", task.ID.String()).Msg("remove task after board insert failed")
		}
		writeBoardError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

// GetByID godoc
// @Summary      Task with comments
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {object} TaskResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleViewer)
	if !ok {
		return
	}
	h.respondWithComments(c, http.StatusOK, task)
}

// Update godoc
// @Summary      Edit a task
// @Description  A changed status also moves the task to the end of the matching column.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body TaskRequest true "Task"
// @Success      200 {object} TaskResponse
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleEditor)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if req.Status != "" && !board.IsStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.DueDate = req.DueDate
	task.Tags = req.Tags
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	task.AssigneeID = nil
	if req.AssigneeID != nil {
		id := uuid.MustParse(*req.AssigneeID)
		task.AssigneeID = &id
	}
	task.Assignee = nil

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		writeBoardError(c, err)
		return
	}

	if req.Status != "" && req.Status != task.Status {
		if _, err := h.boards.SetStatus(c.Request.Context(), task.ProjectID, task.ID, req.Status); err != nil {
			writeBoardError(c, err)
			return
		}
		task.Status = req.Status
	}

	h.respondWithComments(c, http.StatusOK, task)
}

// UpdateStatus godoc
// @Summary      Change a task's status
// @Description  Moves the task to the end of the column whose title matches the status.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body StatusRequest true "Status"
// @Success      200 {object} TaskResponse
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleEditor)
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !board.IsStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	if req.Status != task.Status {
		if _, err := h.boards.SetStatus(c.Request.Context(), task.ProjectID, task.ID, req.Status); err != nil {
			writeBoardError(c, err)
			return
		}
		task.Status = req.Status
	}

	h.respondWithComments(c, http.StatusOK, task)
}

// Delete godoc
// @Summary      Delete a task and take it off the board
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      204
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleEditor)
	if !ok {
		return
	}

	if err := h.boards.RemoveTask(c.Request.Context(), task.ProjectID, task.ID); err != nil {
		writeBoardError(c, err)
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		writeBoardError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddComment godoc
// @Summary      Comment on a task
// @Tags         Comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        request body CommentRequest true "Comment"
// @Success      201 {object} TaskResponse
// @Router       /tasks/{id}/comments [post]
func (h *TaskHandler) AddComment(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleViewer)
	if !ok {
		return
	}
	userID, _ := currentUser(c)

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := &model.Comment{
		ID:      uuid.New(),
		TaskID:  task.ID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.comments.Create(c.Request.Context(), comment); err != nil {
		writeBoardError(c, err)
		return
	}

	h.respondWithComments(c, http.StatusCreated, task)
}

// ListComments godoc
// @Summary      Comments of a task, oldest first
// @Tags         Comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Success      200 {array} CommentResponse
// @Router       /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleViewer)
	if !ok {
		return
	}

	comments, err := h.comments.GetByTaskID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}
	response := make([]CommentResponse, len(comments))
	for i := range comments {
		response[i] = newCommentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

// DeleteComment godoc
// @Summary      Delete one of your comments
// @Tags         Comments
// @Security     BearerAuth
// @Param        id path string true "Task ID"
// @Param        comment_id path string true "Comment ID"
// @Success      204
// @Router       /tasks/{id}/comments/{comment_id} [delete]
func (h *TaskHandler) DeleteComment(c *gin.Context) {
	task, ok := h.loadTask(c, model.RoleViewer)
	if !ok {
		return
	}
	commentID, ok := uuidParam(c, "comment_id", "comment")
	if !ok {
		return
	}
	userID, _ := currentUser(c)

	comment, err := h.comments.GetByID(c.Request.Context(), commentID)
	if err != nil || comment.TaskID != task.ID {
		if err == nil || errors.Is(err, repository.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		return
	}
	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	if err := h.comments.Delete(c.Request.Context(), commentID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	c.Status(http.StatusNoContent)
}

// loadTask resolves the :id task and checks the caller's role on its project.
func (h *TaskHandler) loadTask(c *gin.Context, role string) (*model.Task, bool) {
	taskID, ok := uuidParam(c, "id", "task")
	if !ok {
		return nil, false
	}

	task, err := h.tasks.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return nil, false
	}

	if _, ok := authorize(c, h.access, task.ProjectID, role); !ok {
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) respondWithComments(c *gin.Context, status int, task *model.Task) {
	comments, err := h.comments.GetByTaskID(c.Request.Context(), task.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}
	task.Comments = comments
	c.JSON(status, newTaskResponse(task))
}
