package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
)

type pinger interface {
	Ping() error
}

func RegisterHealthRoutes(group *gin.RouterGroup, db *database.Database) {
	group.GET("/health", func(c *gin.Context) { Health(c, db) })
}

func Health(c *gin.Context, db pinger) {
	if err := db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
