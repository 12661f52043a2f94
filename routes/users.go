package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/services"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.GET("/users", func(c *gin.Context) { GetUsers(c, db, userService) })
	group.GET("/users/:id", func(c *gin.Context) { GetUserById(c, db, userService) })
	group.DELETE("/users/:id", func(c *gin.Context) { DeleteUser(c, db, userService) })
}

func GetUsers(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	users, err := userService.GetUsers(db)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUserById(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	user, err := userService.GetUserById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func DeleteUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := userService.DeleteUser(db, c.Param("id"), actorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
