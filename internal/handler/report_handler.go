package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"visionflow/internal/model"
	"visionflow/internal/repository"
)

type ReportStore interface {
	TasksByStatus(ctx context.Context, projectIDs []uuid.UUID) ([]repository.Bucket, error)
	TasksByPriority(ctx context.Context, projectIDs []uuid.UUID) ([]repository.Bucket, error)
	Progress(ctx context.Context, projects []model.Project) ([]repository.ProjectProgress, error)
	CompletionTrend(ctx context.Context, projectIDs []uuid.UUID, timeframe string) ([]repository.TrendPoint, error)
}

type ReportHandler struct {
	reports  ReportStore
	projects ProjectLister
}

func NewReportHandler(reports ReportStore, projects ProjectLister) *ReportHandler {
	return &ReportHandler{reports: reports, projects: projects}
}

type DashboardResponse struct {
	TasksByStatus       []repository.Bucket          `json:"tasksByStatus"`
	TasksByPriority     []repository.Bucket          `json:"tasksByPriority"`
	ProjectProgress     []repository.ProjectProgress `json:"projectProgress"`
	TaskCompletionTrend []repository.TrendPoint      `json:"taskCompletionTrend"`
}

// Dashboard godoc
// @Summary      All report series for the current user's projects
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        timeframe query string false "week, month or year" default(month)
// @Success      200 {object} DashboardResponse
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	projects, ok := h.visibleProjects(c)
	if !ok {
		return
	}
	ids := projectIDs(projects)
	timeframe := c.DefaultQuery("timeframe", "month")

	var resp DashboardResponse
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		resp.TasksByStatus, err = h.reports.TasksByStatus(ctx, ids)
		return err
	})
	g.Go(func() (err error) {
		resp.TasksByPriority, err = h.reports.TasksByPriority(ctx, ids)
		return err
	})
	g.Go(func() (err error) {
		resp.ProjectProgress, err = h.reports.Progress(ctx, projects)
		return err
	})
	g.Go(func() (err error) {
		resp.TaskCompletionTrend, err = h.reports.CompletionTrend(ctx, ids, timeframe)
		return err
	})
	if err := g.Wait(); err != nil {
		h.writeError(c, err)
		return
	}

	resp.TasksByStatus = nonNil(resp.TasksByStatus)
	resp.TasksByPriority = nonNil(resp.TasksByPriority)
	resp.ProjectProgress = nonNil(resp.ProjectProgress)
	resp.TaskCompletionTrend = nonNil(resp.TaskCompletionTrend)
	c.JSON(http.StatusOK, resp)
}

// TasksByStatus godoc
// @Summary      Task count per status
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} repository.Bucket
// @Router       /reports/tasks-by-status [get]
func (h *ReportHandler) TasksByStatus(c *gin.Context) {
	projects, ok := h.visibleProjects(c)
	if !ok {
		return
	}
	buckets, err := h.reports.TasksByStatus(c.Request.Context(), projectIDs(projects))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(buckets))
}

// TasksByPriority godoc
// @Summary      Task count per priority
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} repository.Bucket
// @Router       /reports/tasks-by-priority [get]
func (h *ReportHandler) TasksByPriority(c *gin.Context) {
	projects, ok := h.visibleProjects(c)
	if !ok {
		return
	}
	buckets, err := h.reports.TasksByPriority(c.Request.Context(), projectIDs(projects))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(buckets))
}

// ProjectProgress godoc
// @Summary      Percentage of done tasks per project
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} repository.ProjectProgress
// @Router       /reports/project-progress [get]
func (h *ReportHandler) ProjectProgress(c *gin.Context) {
	projects, ok := h.visibleProjects(c)
	if !ok {
		return
	}
	progress, err := h.reports.Progress(c.Request.Context(), projects)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(progress))
}

// CompletionTrend godoc
// @Summary      Done tasks per period
// @Tags         Reports
// @Produce      json
// @Security     BearerAuth
// @Param        timeframe query string false "week, month or year" default(month)
// @Success      200 {array} repository.TrendPoint
// @Router       /reports/task-completion-trend [get]
func (h *ReportHandler) CompletionTrend(c *gin.Context) {
	projects, ok := h.visibleProjects(c)
	if !ok {
		return
	}
	points, err := h.reports.CompletionTrend(c.Request.Context(), projectIDs(projects), c.DefaultQuery("timeframe", "month"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(points))
}

func (h *ReportHandler) visibleProjects(c *gin.Context) ([]model.Project, bool) {
	userID, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	projects, err := h.projects.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return nil, false
	}
	return projects, true
}

func (h *ReportHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrUnknownTimeframe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Timeframe must be week, month or year"})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("build report")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
