package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
)

func RegisterNotificationRoutes(group *gin.RouterGroup, db *database.Database, notificationService services.NotificationServiceInterface) {
	group.GET("/notifications", func(c *gin.Context) { GetNotifications(c, db, notificationService) })
	group.GET("/notifications/unread-count", func(c *gin.Context) { GetUnreadCount(c, db, notificationService) })
	group.POST("/notifications/read-all", func(c *gin.Context) { MarkAllRead(c, db, notificationService) })
	group.POST("/notifications/:id/open", func(c *gin.Context) { OpenNotification(c, db, notificationService) })
	group.DELETE("/notifications/:id", func(c *gin.Context) { DeleteNotification(c, db, notificationService) })
}

// GetNotifications runs the overdue scan for the caller before listing the
// inbox.
func GetNotifications(c *gin.Context, db *database.Database, notificationService services.NotificationServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if _, err := notificationService.ScanOverdue(db, userID); err != nil {
		respondError(c, err)
		return
	}

	notifications, err := notificationService.GetNotifications(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

func GetUnreadCount(c *gin.Context, db *database.Database, notificationService services.NotificationServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := notificationService.UnreadCount(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func MarkAllRead(c *gin.Context, db *database.Database, notificationService services.NotificationServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updated, err := notificationService.MarkAllRead(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func OpenNotification(c *gin.Context, db *database.Database, notificationService services.NotificationServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	target, err := notificationService.OpenNotification(db, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func DeleteNotification(c *gin.Context, db *database.Database, notificationService services.NotificationServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := notificationService.DeleteNotification(db, userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
