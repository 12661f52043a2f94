package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/reports"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/testutils"
	"taskflow-app/taskflow/testutils/mocks"
)

type boardMocks struct {
	boards *mocks.MockBoardService
	lists  *mocks.MockListService
	users  *mocks.MockUserService
}

func setupBoardRoutes(userID uuid.UUID, db *database.Database) (http.Handler, boardMocks) {
	m := boardMocks{
		boards: new(mocks.MockBoardService),
		lists:  new(mocks.MockListService),
		users:  new(mocks.MockUserService),
	}
	router, apiGroup := testutils.NewAuthedRouter(userID)
	RegisterBoardRoutes(apiGroup, db, m.boards, m.lists, m.users)
	return router, m
}

func TestCreateBoard(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	router, m := setupBoardRoutes(userID, db)

	t.Run("Success", func(t *testing.T) {
		m.boards.On("CreateBoard", db, userID, services.BoardInput{Name: "Roadmap"}).
			Return(models.Board{ID: uuid.New(), Name: "Roadmap", OwnerID: &userID}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/boards", bytes.NewBufferString(`{"name":"Roadmap"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Roadmap")
	})

	t.Run("Missing name", func(t *testing.T) {
		m.boards.On("CreateBoard", db, userID, services.BoardInput{}).
			Return(models.Board{}, services.ErrValidation).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/boards", bytes.NewBufferString(`{}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	m.boards.AssertExpectations(t)
}

func TestGetBoardById(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	router, m := setupBoardRoutes(userID, db)

	t.Run("Board with members", func(t *testing.T) {
		boardID := uuid.New()
		board := models.Board{
			ID:   boardID,
			Name: "Roadmap",
			Lists: []models.List{
				{ID: uuid.New(), Title: "Todo", Position: 1, BoardID: boardID},
			},
		}
		m.boards.On("GetBoardById", db, boardID.String()).Return(board, nil).Once()
		m.users.On("GetUsers", db).Return([]models.User{{ID: userID, Name: "Alice"}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/boards/"+boardID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"members"`)
		assert.Contains(t, w.Body.String(), "Todo")
		assert.Contains(t, w.Body.String(), "Alice")
	})

	t.Run("Not Found", func(t *testing.T) {
		m.boards.On("GetBoardById", db, "missing").Return(models.Board{}, services.ErrBoardNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/boards/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Board not found")
	})

	m.boards.AssertExpectations(t)
	m.users.AssertExpectations(t)
}

func TestUpdateAndDeleteBoard(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	router, m := setupBoardRoutes(userID, db)
	boardID := uuid.New()

	m.boards.On("UpdateBoard", db, boardID.String(), mock.MatchedBy(func(u services.BoardUpdate) bool {
		return u.Name != nil && *u.Name == "Renamed" && u.Description == nil
	}), userID).Return(models.Board{ID: boardID, Name: "Renamed"}, nil).Once()
	m.boards.On("DeleteBoard", db, boardID.String(), userID).Return(nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/boards/"+boardID.String(), bytes.NewBufferString(`{"name":"Renamed"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/boards/"+boardID.String(), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	m.boards.AssertExpectations(t)
}

func TestCreateList(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	router, m := setupBoardRoutes(userID, db)
	boardID := uuid.New()

	m.lists.On("CreateList", db, boardID.String(), "Doing", userID).
		Return(models.List{ID: uuid.New(), Title: "Doing", Position: 2, BoardID: boardID}, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/boards/"+boardID.String()+"/lists", bytes.NewBufferString(`{"title":"Doing"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"position":2`)
	m.lists.AssertExpectations(t)
}

func TestBoardSummaries(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	router, m := setupBoardRoutes(userID, db)
	boardID := uuid.New()

	summary := services.BoardSummary{
		Board:  models.Board{ID: boardID, Name: "Roadmap"},
		Groups: []reports.StatusGroup{{Status: models.StatusDone, Count: 1, Tasks: []models.Task{{Title: "Ship"}}}},
		Counts: map[models.TaskStatus]int{models.StatusDone: 1},
	}
	m.boards.On("GetBoardSummary", db, boardID.String()).Return(summary, nil).Once()
	m.boards.On("GetAllSummaries", db, userID).Return([]services.BoardSummary{summary}, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/boards/"+boardID.String()+"/summary", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ship")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/summary", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Roadmap")

	m.boards.AssertExpectations(t)
}

func TestDeleteList(t *testing.T) {
	userID := uuid.New()
	db := &database.Database{}
	listService := new(mocks.MockListService)
	router, apiGroup := testutils.NewAuthedRouter(userID)
	RegisterListRoutes(apiGroup, db, listService, new(mocks.MockTaskService))

	listService.On("DeleteList", db, "missing", userID).Return(services.ErrListNotFound).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/lists/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	listService.AssertExpectations(t)
}
