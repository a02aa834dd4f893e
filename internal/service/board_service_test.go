package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"visionflow/internal/board"
	"visionflow/internal/model"
	"visionflow/internal/notify"
	"visionflow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	switch p := args.Get(0).(type) {
	case func(context.Context, uuid.UUID) *model.Project:
		return p(ctx, id), args.Error(1)
	case *model.Project:
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) SaveBoard(ctx context.Context, projectID uuid.UUID, b board.Board) error {
	args := m.Called(ctx, projectID, b)
	return args.Error(0)
}

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	t := args.Get(0)
	if t == nil {
		return nil, args.Error(1)
	}
	return t.(*model.Task), args.Error(1)
}

func (m *MockTaskStore) GetByProjectID(ctx context.Context, projectID uuid.UUID) (map[string]model.Task, error) {
	args := m.Called(ctx, projectID)
	tasks := args.Get(0)
	if tasks == nil {
		return nil, args.Error(1)
	}
	return tasks.(map[string]model.Task), args.Error(1)
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// recorder collects everything sent to notify.Emitter and notify.Broadcaster.
type recorder struct {
	mu     sync.Mutex
	events []notify.Event
	boards []board.Board
}

func (r *recorder) Emit(_ context.Context, ev notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) PublishBoard(_ context.Context, _ uuid.UUID, b board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = append(r.boards, b)
	return nil
}

type fixture struct {
	svc      *service.BoardService
	projects *MockProjectStore
	gateway  *MockGateway
	tasks    *MockTaskStore
	rec      *recorder

	project *model.Project
	taskA   uuid.UUID
	taskB   uuid.UUID
	taskC   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		projects: new(MockProjectStore),
		gateway:  new(MockGateway),
		tasks:    new(MockTaskStore),
		rec:      &recorder{},
		taskA:    uuid.New(),
		taskB:    uuid.New(),
		taskC:    uuid.New(),
	}

	b := board.New()
	todo := b.Columns["column-1"]
	todo.TaskIDs = []string{f.taskA.String(), f.taskB.String()}
	b.Columns["column-1"] = todo
	doing := b.Columns["column-2"]
	doing.TaskIDs = []string{f.taskC.String()}
	b.Columns["column-2"] = doing

	f.project = &model.Project{ID: uuid.New(), Name: "VisionFlow", Key: "VF", Board: b}
	f.svc = service.NewBoardService(f.projects, f.gateway, f.tasks, f.rec, f.rec)
	return f
}

func (f *fixture) assertExpectations(t *testing.T) {
	f.projects.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
	f.tasks.AssertExpectations(t)
}

func TestMove_SameColumn(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Return(nil)

	// Act
	res, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID:         f.taskA.String(),
		SourceColumnID: "column-1",
		SourceIndex:    0,
		DestColumnID:   "column-1",
		DestIndex:      1,
	})

	// Assert
	require.NoError(t, err)
	assert.Nil(t, res.Change)
	assert.Equal(t, []string{f.taskB.String(), f.taskA.String()}, res.Board.Columns["column-1"].TaskIDs)
	assert.Empty(t, f.rec.events, "reorders inside a column do not notify")
	require.Len(t, f.rec.boards, 1)
	assert.Equal(t, res.Board, f.rec.boards[0])
	f.tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestMove_CrossColumnNotifiesOnce(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Return(nil)
	f.tasks.On("UpdateStatus", mock.Anything, f.taskB, board.StatusDone).Return(nil)
	f.tasks.On("GetByID", mock.Anything, f.taskB).Return(&model.Task{ID: f.taskB, Title: "Design login page"}, nil)

	// Act
	res, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID:         f.taskB.String(),
		SourceColumnID: "column-1",
		SourceIndex:    1,
		DestColumnID:   "column-4",
		DestIndex:      0,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, res.Change)
	assert.Equal(t, []string{f.taskB.String()}, res.Board.Columns["column-4"].TaskIDs)

	require.Len(t, f.rec.events, 1)
	ev := f.rec.events[0]
	assert.Equal(t, notify.TypeStatusChanged, ev.Type)
	assert.Equal(t, "Design login page", ev.Title)
	assert.Equal(t, board.StatusDone, ev.DestinationColumnTitle)
	assert.Equal(t, f.project.ID, ev.ProjectID)
	assert.Len(t, f.rec.boards, 1)
	f.assertExpectations(t)
}

func TestMove_NoOpSkipsPersistence(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

	res, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID:         f.taskC.String(),
		SourceColumnID: "column-2",
		SourceIndex:    0,
		DestColumnID:   "column-2",
		DestIndex:      0,
	})

	require.NoError(t, err)
	assert.Equal(t, f.project.Board, res.Board)
	f.gateway.AssertNotCalled(t, "SaveBoard", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.rec.events)
	assert.Empty(t, f.rec.boards)
}

func TestMove_InvalidLeavesStorageUntouched(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

	res, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID:         f.taskA.String(),
		SourceColumnID: "column-1",
		SourceIndex:    1,
		DestColumnID:   "column-2",
		DestIndex:      0,
	})

	var moveErr *board.InvalidMoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, board.ReasonTaskMismatch, moveErr.Reason)
	assert.True(t, moveErr.Stale())
	assert.Equal(t, f.project.Board, res.Board)
	f.gateway.AssertNotCalled(t, "SaveBoard", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.rec.events)
}

func TestMove_PersistFailureRollsBack(t *testing.T) {
	// Arrange
	f := newFixture(t)
	original := f.project.Board.Clone()
	saveErr := errors.New("connection reset")

	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.MatchedBy(func(b board.Board) bool {
		return len(b.Columns["column-4"].TaskIDs) == 1
	})).Return(nil).Once()
	f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusDone).Return(saveErr)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, original).Return(nil).Once()

	// Act
	res, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID:         f.taskA.String(),
		SourceColumnID: "column-1",
		SourceIndex:    0,
		DestColumnID:   "column-4",
		DestIndex:      0,
	})

	// Assert
	require.ErrorIs(t, err, saveErr)
	assert.NotErrorIs(t, err, board.ErrInvalidMove)
	assert.Equal(t, original, res.Board)

	require.Len(t, f.rec.events, 1)
	assert.Equal(t, notify.TypeMoveFailed, f.rec.events[0].Type)
	assert.Equal(t, f.taskA.String(), f.rec.events[0].TaskID)
	assert.Empty(t, f.rec.boards)
	f.assertExpectations(t)
}

func TestMove_ProjectNotFound(t *testing.T) {
	f := newFixture(t)
	notFound := errors.New("project not found")
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(nil, notFound)

	_, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID: "x", SourceColumnID: "column-1", DestColumnID: "column-2",
	})

	assert.ErrorIs(t, err, notFound)
}

func TestReplace(t *testing.T) {
	t.Run("valid board is saved", func(t *testing.T) {
		f := newFixture(t)
		next := f.project.Board.Clone()
		todo := next.Columns["column-1"]
		todo.TaskIDs = []string{f.taskB.String(), f.taskA.String()}
		next.Columns["column-1"] = todo

		f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.gateway.On("SaveBoard", mock.Anything, f.project.ID, next).Return(nil)

		got, err := f.svc.Replace(context.Background(), f.project.ID, next)

		require.NoError(t, err)
		assert.Equal(t, next, got)
		assert.Len(t, f.rec.boards, 1)
		f.assertExpectations(t)
	})

	t.Run("malformed board is rejected", func(t *testing.T) {
		f := newFixture(t)
		next := f.project.Board.Clone()
		next.ColumnOrder = next.ColumnOrder[:2]

		_, err := f.svc.Replace(context.Background(), f.project.ID, next)

		var moveErr *board.InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, board.ReasonInvalidBoard, moveErr.Reason)
		f.projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("task listed twice is an invalid board", func(t *testing.T) {
		f := newFixture(t)
		next := f.project.Board.Clone()
		doing := next.Columns["column-2"]
		doing.TaskIDs = append(doing.TaskIDs, f.taskA.String())
		next.Columns["column-2"] = doing

		_, err := f.svc.Replace(context.Background(), f.project.ID, next)

		var moveErr *board.InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, board.ReasonInvalidBoard, moveErr.Reason)
		assert.NotEqual(t, board.ReasonUnknownColumn, moveErr.Reason)
	})

	t.Run("cross column placement updates status and notifies", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		next := f.project.Board.Clone()
		todo := next.Columns["column-1"]
		todo.TaskIDs = []string{f.taskB.String()}
		next.Columns["column-1"] = todo
		done := next.Columns["column-4"]
		done.TaskIDs = []string{f.taskA.String()}
		next.Columns["column-4"] = done

		f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.gateway.On("SaveBoard", mock.Anything, f.project.ID, next).Return(nil)
		f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusDone).Return(nil).Once()
		f.tasks.On("GetByID", mock.Anything, f.taskA).Return(&model.Task{ID: f.taskA, Title: "Ship release"}, nil)

		// Act
		got, err := f.svc.Replace(context.Background(), f.project.ID, next)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, next, got)
		require.Len(t, f.rec.events, 1)
		assert.Equal(t, notify.TypeStatusChanged, f.rec.events[0].Type)
		assert.Equal(t, f.taskA.String(), f.rec.events[0].TaskID)
		assert.Equal(t, board.StatusDone, f.rec.events[0].DestinationColumnTitle)
		assert.Len(t, f.rec.boards, 1)
		f.assertExpectations(t)
	})

	t.Run("renamed column is rejected", func(t *testing.T) {
		f := newFixture(t)
		next := f.project.Board.Clone()
		done := next.Columns["column-4"]
		done.Title = "Shipped"
		done.TaskIDs = []string{f.taskA.String()}
		next.Columns["column-4"] = done
		todo := next.Columns["column-1"]
		todo.TaskIDs = []string{f.taskB.String()}
		next.Columns["column-1"] = todo

		f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

		got, err := f.svc.Replace(context.Background(), f.project.ID, next)

		var moveErr *board.InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, board.ReasonLayoutChanged, moveErr.Reason)
		assert.Equal(t, f.project.Board, got)
		f.gateway.AssertNotCalled(t, "SaveBoard", mock.Anything, mock.Anything, mock.Anything)
		f.tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, f.rec.events)
	})

	t.Run("status failure restores board and earlier statuses", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		original := f.project.Board.Clone()
		next := f.project.Board.Clone()
		next.Columns["column-1"] = board.Column{ID: "column-1", Title: board.StatusToDo, TaskIDs: []string{}}
		next.Columns["column-3"] = board.Column{ID: "column-3", Title: board.StatusReview, TaskIDs: []string{f.taskA.String()}}
		next.Columns["column-4"] = board.Column{ID: "column-4", Title: board.StatusDone, TaskIDs: []string{f.taskB.String()}}
		dbErr := errors.New("deadlock detected")

		f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
		f.gateway.On("SaveBoard", mock.Anything, f.project.ID, next).Return(nil).Once()
		f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusReview).Return(nil).Once()
		f.tasks.On("UpdateStatus", mock.Anything, f.taskB, board.StatusDone).Return(dbErr).Once()
		// откат: статус taskA возвращается в исходную колонку
		f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusToDo).Return(nil).Once()
		f.gateway.On("SaveBoard", mock.Anything, f.project.ID, original).Return(nil).Once()

		// Act
		got, err := f.svc.Replace(context.Background(), f.project.ID, next)

		// Assert
		require.ErrorIs(t, err, dbErr)
		assert.Equal(t, original, got)
		require.Len(t, f.rec.events, 1)
		assert.Equal(t, notify.TypeMoveFailed, f.rec.events[0].Type)
		assert.Empty(t, f.rec.boards)
		f.assertExpectations(t)
	})

	t.Run("task set must match", func(t *testing.T) {
		f := newFixture(t)
		next := f.project.Board.Clone()
		todo := next.Columns["column-1"]
		todo.TaskIDs = []string{f.taskA.String(), "stranger"}
		next.Columns["column-1"] = todo

		f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

		_, err := f.svc.Replace(context.Background(), f.project.ID, next)

		var moveErr *board.InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, board.ReasonTaskNotFound, moveErr.Reason)
		f.gateway.AssertNotCalled(t, "SaveBoard", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAddTask(t *testing.T) {
	f := newFixture(t)
	task := &model.Task{ID: uuid.New(), Title: "Write docs", Status: board.StatusInProgress}
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Return(nil)

	next, err := f.svc.AddTask(context.Background(), f.project.ID, task)

	require.NoError(t, err)
	assert.Equal(t, []string{f.taskC.String(), task.ID.String()}, next.Columns["column-2"].TaskIDs)
	f.assertExpectations(t)
}

func TestAddTask_UnknownStatus(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

	_, err := f.svc.AddTask(context.Background(), f.project.ID, &model.Task{ID: uuid.New(), Status: "Blocked"})

	assert.ErrorIs(t, err, service.ErrStatusUnknown)
}

func TestRemoveTask(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.MatchedBy(func(b board.Board) bool {
		_, _, ok := b.Locate(f.taskC.String())
		return !ok
	})).Return(nil).Once()

	require.NoError(t, f.svc.RemoveTask(context.Background(), f.project.ID, f.taskC))
	// Unknown ids are ignored without touching storage.
	require.NoError(t, f.svc.RemoveTask(context.Background(), f.project.ID, uuid.New()))

	f.assertExpectations(t)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Return(nil)
	f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusReview).Return(nil)
	f.tasks.On("GetByID", mock.Anything, f.taskA).Return(&model.Task{ID: f.taskA, Title: "API"}, nil)

	res, err := f.svc.SetStatus(context.Background(), f.project.ID, f.taskA, board.StatusReview)

	require.NoError(t, err)
	assert.Equal(t, []string{f.taskA.String()}, res.Board.Columns["column-3"].TaskIDs)
	require.Len(t, f.rec.events, 1)
	assert.Equal(t, notify.TypeStatusChanged, f.rec.events[0].Type)
	f.projects.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestSetStatus_LocatesUnderLock(t *testing.T) {
	// Arrange: every load sees a board where taskA moved one slot down,
	// as if another move landed between two reads.
	f := newFixture(t)
	loads := 0
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(func(context.Context, uuid.UUID) *model.Project {
		loads++
		p := *f.project
		p.Board = f.project.Board.Clone()
		if loads > 1 {
			todo := p.Board.Columns["column-1"]
			todo.TaskIDs = []string{f.taskB.String(), f.taskA.String()}
			p.Board.Columns["column-1"] = todo
		}
		return &p
	}, nil).Once()
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Return(nil)
	f.tasks.On("UpdateStatus", mock.Anything, f.taskA, board.StatusDone).Return(nil)
	f.tasks.On("GetByID", mock.Anything, f.taskA).Return(&model.Task{ID: f.taskA, Title: "API"}, nil)

	// Act
	res, err := f.svc.SetStatus(context.Background(), f.project.ID, f.taskA, board.StatusDone)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
	assert.Equal(t, []string{f.taskA.String()}, res.Board.Columns["column-4"].TaskIDs)
	f.assertExpectations(t)
}

func TestSetStatus_TaskNotOnBoard(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)

	_, err := f.svc.SetStatus(context.Background(), f.project.ID, uuid.New(), board.StatusDone)

	var moveErr *board.InvalidMoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, board.ReasonTaskNotFound, moveErr.Reason)
	f.gateway.AssertNotCalled(t, "SaveBoard", mock.Anything, mock.Anything, mock.Anything)
}

func TestTasks(t *testing.T) {
	f := newFixture(t)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(f.project, nil)
	f.tasks.On("GetByProjectID", mock.Anything, f.project.ID).Return(map[string]model.Task{
		f.taskA.String(): {ID: f.taskA, Title: "Login page", Tags: []string{"frontend"}},
		f.taskB.String(): {ID: f.taskB, Title: "Database schema", Description: "postgres"},
	}, nil)

	all, err := f.svc.Tasks(context.Background(), f.project.ID, "column-1", "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, f.taskA, all[0].ID)
	assert.Equal(t, f.taskB, all[1].ID)

	found, err := f.svc.Tasks(context.Background(), f.project.ID, "column-1", "FRONT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, f.taskA, found[0].ID)

	none, err := f.svc.Tasks(context.Background(), f.project.ID, "column-1", "nothing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.svc.Tasks(context.Background(), f.project.ID, "column-9", "")
	assert.ErrorIs(t, err, board.ErrInvalidMove)
}

func TestMove_SerialisedPerProject(t *testing.T) {
	f := newFixture(t)
	var (
		mu      sync.Mutex
		current = f.project.Board
	)
	f.projects.On("GetByID", mock.Anything, f.project.ID).Return(func(context.Context, uuid.UUID) *model.Project {
		mu.Lock()
		defer mu.Unlock()
		p := *f.project
		p.Board = current
		return &p
	}, nil)
	f.gateway.On("SaveBoard", mock.Anything, f.project.ID, mock.AnythingOfType("board.Board")).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		current = args.Get(2).(board.Board)
	}).Return(nil)

	// Each goroutine swaps the two tasks at the top of To Do. Without
	// serialisation a stale read would surface as a task_mismatch.
	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mu.Lock()
			top := current.Columns["column-1"].TaskIDs[0]
			mu.Unlock()
			_, err := f.svc.Move(context.Background(), f.project.ID, board.MoveRequest{
				TaskID: top, SourceColumnID: "column-1", SourceIndex: 0, DestColumnID: "column-1", DestIndex: 1,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, board.ErrInvalidMove)
		}
	}
	assert.NoError(t, board.Validate(current))
	assert.Equal(t, 3, current.TaskCount())
}

type failingLocker struct{}

func (failingLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, errors.New("redis down")
}

func TestMove_LockFailure(t *testing.T) {
	f := newFixture(t)
	svc := service.NewBoardService(f.projects, f.gateway, f.tasks, f.rec, f.rec, service.WithLocker(failingLocker{}))

	_, err := svc.Move(context.Background(), f.project.ID, board.MoveRequest{
		TaskID: f.taskA.String(), SourceColumnID: "column-1", DestColumnID: "column-2",
	})

	assert.ErrorContains(t, err, "redis down")
	f.projects.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
