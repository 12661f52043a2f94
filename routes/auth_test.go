package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/testutils/mocks"
)

func setupAuthRouter(authService services.AuthServiceInterface, claims *services.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	public := router.Group("/api/v1")
	protected := router.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set("userID", claims.UserID)
			c.Set("claims", claims)
		}
		c.Next()
	})
	RegisterAuthRoutes(public, protected, &database.Database{}, authService)
	return router
}

func TestRegister(t *testing.T) {
	authService := new(mocks.MockAuthService)
	router := setupAuthRouter(authService, nil)

	t.Run("Success", func(t *testing.T) {
		input := services.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret123"}
		authService.On("Register", mock.Anything, input).
			Return(models.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register",
			bytes.NewBufferString(`{"name":"Alice","email":"alice@example.com","password":"secret123"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
	})

	t.Run("Duplicate email", func(t *testing.T) {
		authService.On("Register", mock.Anything, mock.MatchedBy(func(in services.RegisterInput) bool {
			return in.Email == "taken@example.com"
		})).Return(models.User{}, services.ErrResourceExists).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/register",
			bytes.NewBufferString(`{"name":"Bob","email":"taken@example.com","password":"secret123"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	authService.AssertExpectations(t)
}

func TestLogin(t *testing.T) {
	authService := new(mocks.MockAuthService)
	router := setupAuthRouter(authService, nil)

	t.Run("Success", func(t *testing.T) {
		authService.On("Login", mock.Anything, "alice@example.com", "secret123").Return("signed-token", nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"secret123"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"token":"signed-token"}`, w.Body.String())
	})

	t.Run("Wrong password", func(t *testing.T) {
		authService.On("Login", mock.Anything, "alice@example.com", "wrong").Return("", services.ErrInvalidCredentials).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"email":"alice@example.com","password":"wrong"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("Malformed email", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/login",
			bytes.NewBufferString(`{"email":"alice","password":"secret123"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	authService.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	t.Run("Revokes the current token", func(t *testing.T) {
		claims := &services.JWTClaims{
			UserID: uuid.New(),
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		authService := new(mocks.MockAuthService)
		authService.On("Logout", mock.Anything, claims).Return(nil).Once()
		router := setupAuthRouter(authService, claims)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		authService.AssertExpectations(t)
	})

	t.Run("Without claims", func(t *testing.T) {
		authService := new(mocks.MockAuthService)
		router := setupAuthRouter(authService, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		authService.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}
