package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
)

// MockAuthService mocks services.AuthServiceInterface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(db *database.Database, input services.RegisterInput) (models.User, error) {
	args := m.Called(db, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAuthService) Login(db *database.Database, email, password string) (string, error) {
	args := m.Called(db, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *services.JWTClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, tokenString string) (*services.JWTClaims, error) {
	args := m.Called(ctx, tokenString)
	claims, _ := args.Get(0).(*services.JWTClaims)
	return claims, args.Error(1)
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// MockUserService mocks services.UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUsers(db *database.Database) ([]models.User, error) {
	args := m.Called(db)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetUserById(db *database.Database, id string) (models.User, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(db *database.Database, id string, actorID uuid.UUID) error {
	args := m.Called(db, id, actorID)
	return args.Error(0)
}

// MockBoardService mocks services.BoardServiceInterface
type MockBoardService struct {
	mock.Mock
}

func (m *MockBoardService) CreateBoard(db *database.Database, ownerID uuid.UUID, input services.BoardInput) (models.Board, error) {
	args := m.Called(db, ownerID, input)
	return args.Get(0).(models.Board), args.Error(1)
}

func (m *MockBoardService) GetBoardById(db *database.Database, id string) (models.Board, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Board), args.Error(1)
}

func (m *MockBoardService) GetBoards(db *database.Database, ownerID uuid.UUID) ([]models.Board, error) {
	args := m.Called(db, ownerID)
	return args.Get(0).([]models.Board), args.Error(1)
}

func (m *MockBoardService) GetVisibleBoards(db *database.Database, userID uuid.UUID) ([]models.Board, error) {
	args := m.Called(db, userID)
	return args.Get(0).([]models.Board), args.Error(1)
}

func (m *MockBoardService) UpdateBoard(db *database.Database, id string, update services.BoardUpdate, actorID uuid.UUID) (models.Board, error) {
	args := m.Called(db, id, update, actorID)
	return args.Get(0).(models.Board), args.Error(1)
}

func (m *MockBoardService) DeleteBoard(db *database.Database, id string, actorID uuid.UUID) error {
	args := m.Called(db, id, actorID)
	return args.Error(0)
}

func (m *MockBoardService) GetBoardSummary(db *database.Database, id string) (services.BoardSummary, error) {
	args := m.Called(db, id)
	return args.Get(0).(services.BoardSummary), args.Error(1)
}

func (m *MockBoardService) GetAllSummaries(db *database.Database, ownerID uuid.UUID) ([]services.BoardSummary, error) {
	args := m.Called(db, ownerID)
	return args.Get(0).([]services.BoardSummary), args.Error(1)
}

// MockListService mocks services.ListServiceInterface
type MockListService struct {
	mock.Mock
}

func (m *MockListService) CreateList(db *database.Database, boardID string, title string, actorID uuid.UUID) (models.List, error) {
	args := m.Called(db, boardID, title, actorID)
	return args.Get(0).(models.List), args.Error(1)
}

func (m *MockListService) DeleteList(db *database.Database, id string, actorID uuid.UUID) error {
	args := m.Called(db, id, actorID)
	return args.Error(0)
}

// MockTaskService mocks services.TaskServiceInterface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) CreateTask(db *database.Database, listID string, input services.TaskInput, assigneeIDs []uuid.UUID, creatorID uuid.UUID) (models.Task, []models.Notification, error) {
	args := m.Called(db, listID, input, assigneeIDs, creatorID)
	notifications, _ := args.Get(1).([]models.Notification)
	return args.Get(0).(models.Task), notifications, args.Error(2)
}

func (m *MockTaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateTask(db *database.Database, id string, update services.TaskUpdate, assigneeIDs []uuid.UUID, actorID uuid.UUID) (models.Task, []models.Notification, error) {
	args := m.Called(db, id, update, assigneeIDs, actorID)
	notifications, _ := args.Get(1).([]models.Notification)
	return args.Get(0).(models.Task), notifications, args.Error(2)
}

func (m *MockTaskService) DeleteTask(db *database.Database, id string, actorID uuid.UUID) error {
	args := m.Called(db, id, actorID)
	return args.Error(0)
}

func (m *MockTaskService) GetTasks(db *database.Database, filter services.TaskFilter) ([]models.Task, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetMyTasks(db *database.Database, userID uuid.UUID) (services.MyTasks, error) {
	args := m.Called(db, userID)
	return args.Get(0).(services.MyTasks), args.Error(1)
}

func (m *MockTaskService) GetCalendarEvents(db *database.Database) ([]services.CalendarEvent, error) {
	args := m.Called(db)
	return args.Get(0).([]services.CalendarEvent), args.Error(1)
}

// MockNotificationService mocks services.NotificationServiceInterface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) ScanOverdue(db *database.Database, userID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(db, userID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationService) GetNotifications(db *database.Database, userID uuid.UUID) ([]models.Notification, error) {
	args := m.Called(db, userID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(db *database.Database, userID uuid.UUID) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) OpenNotification(db *database.Database, userID uuid.UUID, id string) (services.NotificationTarget, error) {
	args := m.Called(db, userID, id)
	return args.Get(0).(services.NotificationTarget), args.Error(1)
}

func (m *MockNotificationService) DeleteNotification(db *database.Database, userID uuid.UUID, id string) error {
	args := m.Called(db, userID, id)
	return args.Error(0)
}

func (m *MockNotificationService) UnreadCount(db *database.Database, userID uuid.UUID) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportService mocks services.ReportServiceInterface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetDashboard(db *database.Database, userID uuid.UUID) (services.Dashboard, error) {
	args := m.Called(db, userID)
	return args.Get(0).(services.Dashboard), args.Error(1)
}

func (m *MockReportService) GetChart(db *database.Database, ownerID uuid.UUID) (services.Chart, error) {
	args := m.Called(db, ownerID)
	return args.Get(0).(services.Chart), args.Error(1)
}
