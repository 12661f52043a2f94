package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/testutils"
	"taskflow-app/taskflow/testutils/mocks"
)

func TestGetUsers(t *testing.T) {
	db := &database.Database{}
	userService := new(mocks.MockUserService)
	router, apiGroup := testutils.NewAuthedRouter(uuid.New())
	RegisterUserRoutes(apiGroup, db, userService)

	userService.On("GetUsers", db).Return([]models.User{
		{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"},
		{ID: uuid.New(), Name: "Bob", Email: "bob@example.com"},
	}, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.Contains(t, w.Body.String(), "bob@example.com")
	assert.NotContains(t, w.Body.String(), "password")
	userService.AssertExpectations(t)
}

func TestGetUserById(t *testing.T) {
	db := &database.Database{}
	userService := new(mocks.MockUserService)
	router, apiGroup := testutils.NewAuthedRouter(uuid.New())
	RegisterUserRoutes(apiGroup, db, userService)

	t.Run("Not Found", func(t *testing.T) {
		userService.On("GetUserById", db, "nope").Return(models.User{}, services.ErrUserNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/nope", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		userService.On("GetUserById", db, id.String()).Return(models.User{ID: id, Email: "test@example.com"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/"+id.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "test@example.com")
	})

	userService.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	actorID := uuid.New()
	db := &database.Database{}
	userService := new(mocks.MockUserService)
	router, apiGroup := testutils.NewAuthedRouter(actorID)
	RegisterUserRoutes(apiGroup, db, userService)

	t.Run("Self deletion", func(t *testing.T) {
		userService.On("DeleteUser", db, actorID.String(), actorID).Return(services.ErrSelfDeletion).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/"+actorID.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Success", func(t *testing.T) {
		id := uuid.New()
		userService.On("DeleteUser", db, id.String(), actorID).Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/v1/users/"+id.String(), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	userService.AssertExpectations(t)
}
