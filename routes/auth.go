package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/services"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// RegisterAuthRoutes mounts register/login on public and logout on
// protected, which must sit behind the auth middleware.
func RegisterAuthRoutes(public *gin.RouterGroup, protected *gin.RouterGroup, db *database.Database, authService services.AuthServiceInterface) {
	public.POST("/auth/register", func(c *gin.Context) { Register(c, db, authService) })
	public.POST("/auth/login", func(c *gin.Context) { Login(c, db, authService) })
	protected.POST("/auth/logout", func(c *gin.Context) { Logout(c, authService) })
}

func Register(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := authService.Register(db, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := authService.Login(db, request.Email, request.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token})
}

func Logout(c *gin.Context, authService services.AuthServiceInterface) {
	value, exists := c.Get("claims")
	claims, ok := value.(*services.JWTClaims)
	if !exists || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
