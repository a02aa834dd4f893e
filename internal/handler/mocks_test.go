package handler_test

import (
	"context"

	"visionflow/internal/board"
	"visionflow/internal/middleware"
	"visionflow/internal/model"
	"visionflow/internal/repository"
	"visionflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// withUser stands in for JWTAuthMiddleware.
func withUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Next()
	}
}

// Мок проверки доступа к проекту
type MockAccess struct {
	mock.Mock
}

func (m *MockAccess) CheckAccess(ctx context.Context, projectID, userID uuid.UUID, role string) (bool, error) {
	args := m.Called(ctx, projectID, userID, role)
	return args.Bool(0), args.Error(1)
}

type MockMemberStore struct {
	MockAccess
}

func (m *MockMemberStore) AddMember(ctx context.Context, projectID, userID uuid.UUID, role string) error {
	return m.Called(ctx, projectID, userID, role).Error(0)
}

func (m *MockMemberStore) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *MockMemberStore) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

type MockProjectStore struct {
	mock.Mock
}

func (m *MockProjectStore) Create(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*model.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProjectStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectStore) Update(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Мок сервиса доски
type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) Get(ctx context.Context, projectID uuid.UUID) (board.Board, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(board.Board), args.Error(1)
}

func (m *MockBoardService) Replace(ctx context.Context, projectID uuid.UUID, next board.Board) (board.Board, error) {
	args := m.Called(ctx, projectID, next)
	return args.Get(0).(board.Board), args.Error(1)
}

func (m *MockBoardService) Move(ctx context.Context, projectID uuid.UUID, req board.MoveRequest) (service.MoveResult, error) {
	args := m.Called(ctx, projectID, req)
	return args.Get(0).(service.MoveResult), args.Error(1)
}

func (m *MockBoardService) Tasks(ctx context.Context, projectID uuid.UUID, columnID, search string) ([]model.Task, error) {
	args := m.Called(ctx, projectID, columnID, search)
	if t := args.Get(0); t != nil {
		return t.([]model.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBoardService) AddTask(ctx context.Context, projectID uuid.UUID, task *model.Task) (board.Board, error) {
	args := m.Called(ctx, projectID, task)
	return args.Get(0).(board.Board), args.Error(1)
}

func (m *MockBoardService) RemoveTask(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID) error {
	return m.Called(ctx, projectID, taskID).Error(0)
}

func (m *MockBoardService) SetStatus(ctx context.Context, projectID uuid.UUID, taskID uuid.UUID, status string) (service.MoveResult, error) {
	args := m.Called(ctx, projectID, taskID, status)
	return args.Get(0).(service.MoveResult), args.Error(1)
}

type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if t := args.Get(0); t != nil {
		return t.(*model.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaskStore) List(ctx context.Context, filter repository.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskStore) Update(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockCommentStore struct {
	mock.Mock
}

func (m *MockCommentStore) Create(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentStore) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if cm := args.Get(0); cm != nil {
		return cm.(*model.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) TasksByStatus(ctx context.Context, ids []uuid.UUID) ([]repository.Bucket, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]repository.Bucket), args.Error(1)
}

func (m *MockReportStore) TasksByPriority(ctx context.Context, ids []uuid.UUID) ([]repository.Bucket, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]repository.Bucket), args.Error(1)
}

func (m *MockReportStore) Progress(ctx context.Context, projects []model.Project) ([]repository.ProjectProgress, error) {
	args := m.Called(ctx, projects)
	return args.Get(0).([]repository.ProjectProgress), args.Error(1)
}

func (m *MockReportStore) CompletionTrend(ctx context.Context, ids []uuid.UUID, timeframe string) ([]repository.TrendPoint, error) {
	args := m.Called(ctx, ids, timeframe)
	return args.Get(0).([]repository.TrendPoint), args.Error(1)
}
