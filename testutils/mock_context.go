package testutils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func GetTestGinContext(w http.ResponseWriter, req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

// NewAuthedRouter returns a test engine whose /api/v1 group behaves as if
// userID had already passed the auth middleware.
func NewAuthedRouter(userID uuid.UUID) (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	return router, group
}
