package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"visionflow/internal/board"
	"visionflow/internal/model"
)

// Bucket is one slice of a report chart.
type Bucket struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ProjectProgress summarises how far along a project is.
type ProjectProgress struct {
	ProjectID uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Progress  int       `json:"progress"`
	Tasks     int64     `json:"tasks"`
}

// TrendPoint counts tasks completed within one period.
type TrendPoint struct {
	Name      string `json:"name"`
	Completed int64  `json:"completed"`
}

// ErrUnknownTimeframe is returned for a trend timeframe other than week, month or year.
var ErrUnknownTimeframe = errors.New("unknown timeframe")

type trendWindow struct {
	unit   string
	window time.Duration
}

var trendWindows = map[string]trendWindow{
	"week":  {unit: "day", window: 7 * 24 * time.Hour},
	"month": {unit: "week", window: 30 * 24 * time.Hour},
	"year":  {unit: "month", window: 365 * 24 * time.Hour},
}

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// TasksByStatus counts tasks per status across the given projects
func (r *ReportRepository) TasksByStatus(ctx context.Context, projectIDs []uuid.UUID) ([]Bucket, error) {
	return r.countBy(ctx, "status", projectIDs)
}

// TasksByPriority counts tasks per priority across the given projects
func (r *ReportRepository) TasksByPriority(ctx context.Context, projectIDs []uuid.UUID) ([]Bucket, error) {
	return r.countBy(ctx, "priority", projectIDs)
}

func (r *ReportRepository) countBy(ctx context.Context, column string, projectIDs []uuid.UUID) ([]Bucket, error) {
	var buckets []Bucket
	if len(projectIDs) == 0 {
		return buckets, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(column+" AS name, COUNT(*) AS value").
		Where("project_id IN ?", projectIDs).
		Group(column).
		Order("name").
		Scan(&buckets).Error
	return buckets, err
}

// Progress computes the share of done tasks for each project
func (r *ReportRepository) Progress(ctx context.Context, projects []model.Project) ([]ProjectProgress, error) {
	out := make([]ProjectProgress, 0, len(projects))
	if len(projects) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}

	var rows []struct {
		ProjectID uuid.UUID
		Total     int64
		Done      int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("project_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS done", board.StatusDone).
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	type counts struct{ total, done int64 }
	byProject := make(map[uuid.UUID]counts, len(rows))
	for _, row := range rows {
		byProject[row.ProjectID] = counts{total: row.Total, done: row.Done}
	}

	for _, p := range projects {
		c := byProject[p.ID]
		progress := 0
		if c.total > 0 {
			progress = int(c.done * 100 / c.total)
		}
		out = append(out, ProjectProgress{ProjectID: p.ID, Name: p.Name, Progress: progress, Tasks: c.total})
	}
	return out, nil
}

// CompletionTrend counts done tasks per period over the timeframe, by the time they were completed
func (r *ReportRepository) CompletionTrend(ctx context.Context, projectIDs []uuid.UUID, timeframe string) ([]TrendPoint, error) {
	w, ok := trendWindows[timeframe]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeframe, timeframe)
	}
	points := []TrendPoint{}
	if len(projectIDs) == 0 {
		return points, nil
	}

	var rows []struct {
		Period    time.Time
		Completed int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("date_trunc(?, completed_at) AS period, COUNT(*) AS completed", w.unit).
		Where("project_id IN ? AND status = ? AND completed_at >= ?", projectIDs, board.StatusDone, time.Now().Add(-w.window)).
		Group("period").
		Order("period").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		points = append(points, TrendPoint{Name: formatPeriod(row.Period, w.unit), Completed: row.Completed})
	}
	return points, nil
}

func formatPeriod(t time.Time, unit string) string {
	switch unit {
	case "day":
		return t.Format("Mon")
	case "week":
		_, week := t.ISOWeek()
		return fmt.Sprintf("W%02d", week)
	default:
		return t.Format("Jan")
	}
}
