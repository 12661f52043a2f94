package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/services"
)

func RegisterReportRoutes(group *gin.RouterGroup, db *database.Database, reportService services.ReportServiceInterface, taskService services.TaskServiceInterface) {
	group.GET("/dashboard", func(c *gin.Context) { GetDashboard(c, db, reportService) })
	group.GET("/chart", func(c *gin.Context) { GetChart(c, db, reportService) })
	group.GET("/calendar/events", func(c *gin.Context) { GetCalendarEvents(c, db, taskService) })
}

func GetDashboard(c *gin.Context, db *database.Database, reportService services.ReportServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	dashboard, err := reportService.GetDashboard(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// GetChart reports on the boards the caller owns.
func GetChart(c *gin.Context, db *database.Database, reportService services.ReportServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chart, err := reportService.GetChart(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chart)
}

func GetCalendarEvents(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	events, err := taskService.GetCalendarEvents(db)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
