package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
)

type createTaskRequest struct {
	services.TaskInput
	AssigneeIDs []uuid.UUID `json:"assignee_ids"`
}

type taskResponse struct {
	Task          models.Task           `json:"task"`
	Notifications []models.Notification `json:"notifications"`
}

func RegisterListRoutes(group *gin.RouterGroup, db *database.Database, listService services.ListServiceInterface, taskService services.TaskServiceInterface) {
	group.DELETE("/lists/:id", func(c *gin.Context) { DeleteList(c, db, listService) })
	group.POST("/lists/:id/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
}

func DeleteList(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := listService.DeleteList(db, c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, notifications, err := taskService.CreateTask(db, c.Param("id"), request.TaskInput, request.AssigneeIDs, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusCreated, taskResponse{Task: task, Notifications: notifications})
}
