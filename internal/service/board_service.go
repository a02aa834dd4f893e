// Package service coordinates the board engine with persistence and
// notifications.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
	"visionflow/internal/lock"
	"visionflow/internal/model"
	"visionflow/internal/notify"
)

// ProjectStore loads the project owning a board.
type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

// Gateway persists board snapshots.
type Gateway interface {
	SaveBoard(ctx context.Context, projectID uuid.UUID, b board.Board) error
}

// TaskStore is the subset of the task repository the board needs.
type TaskStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (map[string]model.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// ErrStatusUnknown is returned when a task's status has no column on the board.
var ErrStatusUnknown = errors.New("status has no board column")

// MoveResult is what a successful move hands back to the caller.
type MoveResult struct {
	Board  board.Board
	Change *board.StatusChange
}

type BoardService struct {
	projects  ProjectStore
	gateway   Gateway
	tasks     TaskStore
	emitter   notify.Emitter
	broadcast notify.Broadcaster

	locker lock.Locker
}

type Option func(*BoardService)

// WithLocker replaces the in-process project lock, e.g. with a Redis lock
// when several API instances share one database.
func WithLocker(l lock.Locker) Option {
	return func(s *BoardService) {
		s.locker = l
	}
}

func NewBoardService(projects ProjectStore, gateway Gateway, tasks TaskStore, emitter notify.Emitter, broadcast notify.Broadcaster, opts ...Option) *BoardService {
	if emitter == nil {
		emitter = notify.Discard{}
	}
	if broadcast == nil {
		broadcast = notify.Discard{}
	}
	s := &BoardService{
		projects:  projects,
		gateway:   gateway,
		tasks:     tasks,
		emitter:   emitter,
		broadcast: broadcast,
		locker:    lock.NewMemoryLocker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BoardService) lockProject(ctx context.Context, projectID uuid.UUID) (func(), error) {
	release, err := s.locker.Lock(ctx, "project-board:"+projectID.String())
	if err != nil {
		return nil, fmt.Errorf("lock board of project %s: %w", projectID, err)
	}
	return release, nil
}

// Get returns the current board of a project.
func (s *BoardService) Get(ctx context.Context, projectID uuid.UUID) (board.Board, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.Get: %w", err)
	}
	return project.Board, nil
}

// Move applies a drag gesture to the stored board. Invalid moves are returned
// as *board.InvalidMoveError and leave storage untouched. If persisting fails
// the previous snapshot is restored and a failure notification is emitted.
func (s *BoardService) Move(ctx context.Context, projectID uuid.UUID, req board.MoveRequest) (MoveResult, error) {
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("service.BoardService.Move: %w", err)
	}
	defer release()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("service.BoardService.Move: load project: %w", err)
	}
	return s.move(ctx, projectID, project.Board, req)
}

// move does the work of Move. The caller holds the project lock.
func (s *BoardService) move(ctx context.Context, projectID uuid.UUID, before board.Board, req board.MoveRequest) (MoveResult, error) {
	next, change, err := board.MoveTask(before, req)
	if err != nil {
		return MoveResult{Board: before}, err
	}
	if !req.CrossColumn() && req.SourceIndex == req.DestIndex {
		return MoveResult{Board: before}, nil
	}

	if err := s.persist(ctx, projectID, next, change); err != nil {
		s.rollback(ctx, projectID, before, req.TaskID, err)
		return MoveResult{Board: before}, fmt.Errorf("service.BoardService.Move: persist: %w", err)
	}

	s.publish(ctx, projectID, next)
	if change != nil {
		s.notifyStatusChange(ctx, projectID, change)
	}
	return MoveResult{Board: next, Change: change}, nil
}

func (s *BoardService) persist(ctx context.Context, projectID uuid.UUID, next board.Board, change *board.StatusChange) error {
	if err := s.gateway.SaveBoard(ctx, projectID, next); err != nil {
		return err
	}
	if change == nil {
		return nil
	}
	return s.updateStatus(ctx, change.TaskID, change.DestinationTitle)
}

func (s *BoardService) updateStatus(ctx context.Context, taskID, status string) error {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return fmt.Errorf("task id %q: %w", taskID, err)
	}
	return s.tasks.UpdateStatus(ctx, id, status)
}

func (s *BoardService) rollback(ctx context.Context, projectID uuid.UUID, before board.Board, taskID string, cause error) {
	if err := s.gateway.SaveBoard(ctx, projectID, before); err != nil {
		log.Error().Err(err).Str("project_id", projectID.String()).Msg("service.BoardService: failed to restore board after move failure")
	}
	ev := notify.Event{
		Type:      notify.TypeMoveFailed,
		ProjectID: projectID,
		TaskID:    taskID,
		Message:   "Could not save the board: " + cause.Error(),
		At:        time.Now(),
	}
	if err := s.emitter.Emit(ctx, ev); err != nil {
		log.Warn().Err(err).Str("project_id", projectID.String()).Msg("service.BoardService: failed to emit move failure")
	}
}

func (s *BoardService) notifyStatusChange(ctx context.Context, projectID uuid.UUID, change *board.StatusChange) {
	title := change.TaskID
	if id, err := uuid.Parse(change.TaskID); err == nil {
		if task, err := s.tasks.GetByID(ctx, id); err == nil && task != nil {
			title = task.Title
		}
	}
	ev := notify.Event{
		Type:                   notify.TypeStatusChanged,
		ProjectID:              projectID,
		TaskID:                 change.TaskID,
		Title:                  title,
		DestinationColumnTitle: change.DestinationTitle,
		Message:                fmt.Sprintf("%q moved to %s", title, change.DestinationTitle),
		At:                     time.Now(),
	}
	if err := s.emitter.Emit(ctx, ev); err != nil {
		log.Warn().Err(err).Str("task_id", change.TaskID).Msg("service.BoardService: failed to emit status change")
	}
}

func (s *BoardService) publish(ctx context.Context, projectID uuid.UUID, b board.Board) {
	if err := s.broadcast.PublishBoard(ctx, projectID, b); err != nil {
		log.Warn().Err(err).Str("project_id", projectID.String()).Msg("service.BoardService: failed to broadcast board")
	}
}

// Replace stores a whole board sent by the client. The board may only
// rearrange the stored tasks: columns keep their order, ids and titles. Every
// task that lands in another column gets its status updated and one status
// change notification, exactly as if it had been dragged there.
func (s *BoardService) Replace(ctx context.Context, projectID uuid.UUID, next board.Board) (board.Board, error) {
	if err := board.Validate(next); err != nil {
		return board.Board{}, &board.InvalidMoveError{Reason: board.ReasonInvalidBoard, Detail: err.Error()}
	}
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.Replace: %w", err)
	}
	defer release()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.Replace: %w", err)
	}
	before := project.Board
	changes, err := board.Rearrange(before, next)
	if err != nil {
		return before, err
	}

	if err := s.persistAll(ctx, projectID, before, next, changes); err != nil {
		taskID := ""
		if len(changes) == 1 {
			taskID = changes[0].TaskID
		}
		s.rollback(ctx, projectID, before, taskID, err)
		return before, fmt.Errorf("service.BoardService.Replace: persist: %w", err)
	}

	s.publish(ctx, projectID, next)
	for i := range changes {
		s.notifyStatusChange(ctx, projectID, &changes[i])
	}
	return next, nil
}

// persistAll saves next and updates the status of every moved task. Statuses
// already written are put back when a later one fails.
func (s *BoardService) persistAll(ctx context.Context, projectID uuid.UUID, before, next board.Board, changes []board.StatusChange) error {
	if err := s.gateway.SaveBoard(ctx, projectID, next); err != nil {
		return err
	}
	for i, change := range changes {
		if err := s.updateStatus(ctx, change.TaskID, change.DestinationTitle); err != nil {
			s.revertStatuses(ctx, before, changes[:i])
			return fmt.Errorf("task %s: %w", change.TaskID, err)
		}
	}
	return nil
}

func (s *BoardService) revertStatuses(ctx context.Context, before board.Board, applied []board.StatusChange) {
	for _, change := range applied {
		from := before.Columns[change.FromColumnID].Title
		if err := s.updateStatus(ctx, change.TaskID, from); err != nil {
			log.Error().Err(err).Str("task_id", change.TaskID).Msg("service.BoardService: failed to restore task status")
		}
	}
}

// AddTask places a newly created task at the end of the column for its status.
func (s *BoardService) AddTask(ctx context.Context, projectID uuid.UUID, task *model.Task) (board.Board, error) {
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.AddTask: %w", err)
	}
	defer release()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.AddTask: %w", err)
	}
	col, ok := project.Board.ColumnForStatus(task.Status)
	if !ok {
		return board.Board{}, fmt.Errorf("service.BoardService.AddTask: %q: %w", task.Status, ErrStatusUnknown)
	}
	next, err := board.InsertTask(project.Board, col.ID, task.ID.String(), -1)
	if err != nil {
		return board.Board{}, err
	}
	if err := s.gateway.SaveBoard(ctx, projectID, next); err != nil {
		return board.Board{}, fmt.Errorf("service.BoardService.AddTask: %w", err)
	}
	s.publish(ctx, projectID, next)
	return next, nil
}

// RemoveTask takes a deleted task off the board.
func (s *BoardService) RemoveTask(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID) error {
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("service.BoardService.RemoveTask: %w", err)
	}
	defer release()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("service.BoardService.RemoveTask: %w", err)
	}
	next, removed := board.RemoveTask(project.Board, taskID.String())
	if !removed {
		return nil
	}
	if err := s.gateway.SaveBoard(ctx, projectID, next); err != nil {
		return fmt.Errorf("service.BoardService.RemoveTask: %w", err)
	}
	s.publish(ctx, projectID, next)
	return nil
}

// SetStatus moves a task to the end of the column matching status. It is
// the board side of a status change made outside drag and drop.
func (s *BoardService) SetStatus(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID, status string) (MoveResult, error) {
	release, err := s.lockProject(ctx, projectID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("service.BoardService.SetStatus: %w", err)
	}
	defer release()

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("service.BoardService.SetStatus: %w", err)
	}
	b := project.Board
	srcCol, srcIdx, ok := b.Locate(taskID.String())
	if !ok {
		return MoveResult{Board: b}, &board.InvalidMoveError{Reason: board.ReasonTaskNotFound, TaskID: taskID.String()}
	}
	dest, ok := b.ColumnForStatus(status)
	if !ok {
		return MoveResult{Board: b}, fmt.Errorf("service.BoardService.SetStatus: %q: %w", status, ErrStatusUnknown)
	}
	destIdx := len(dest.TaskIDs)
	if dest.ID == srcCol {
		destIdx = srcIdx
	}
	return s.move(ctx, projectID, b, board.MoveRequest{
		TaskID:         taskID.String(),
		SourceColumnID: srcCol,
		SourceIndex:    srcIdx,
		DestColumnID:   dest.ID,
		DestIndex:      destIdx,
	})
}

// Tasks returns the tasks of one column, optionally narrowed by a search term.
func (s *BoardService) Tasks(ctx context.Context, projectID uuid.UUID, columnID, search string) ([]model.Task, error) {
	b, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if _, ok := b.Column(columnID); !ok {
		return nil, &board.InvalidMoveError{Reason: board.ReasonUnknownColumn, ColumnID: columnID}
	}
	byID, err := s.tasks.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("service.BoardService.Tasks: %w", err)
	}
	lookup := func(id string) (model.Task, bool) {
		t, ok := byID[id]
		return t, ok
	}
	tasks := slices.Collect(board.TasksForColumn(b, columnID, lookup, board.MatchSearch[model.Task](search)))
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
