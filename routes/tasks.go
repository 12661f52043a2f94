package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
)

type updateTaskRequest struct {
	services.TaskUpdate
	AssigneeIDs *[]uuid.UUID `json:"assignee_ids"`
}

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.GET("/tasks/mine", func(c *gin.Context) { GetMyTasks(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
}

// GetTasks lists tasks filtered by the name, status, assignee and due query
// parameters.
func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	filter := services.TaskFilter{
		Title:      c.Query("name"),
		Status:     c.Query("status"),
		AssigneeID: c.Query("assignee"),
		DueDate:    c.Query("due"),
	}

	tasks, err := taskService.GetTasks(db, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetMyTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetMyTasks(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	task, err := taskService.GetTaskById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask applies the fields present in the body. assignee_ids replaces
// the assignee set when present; [] unassigns everyone and omitting it keeps
// the current assignees.
func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request updateTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assigneeIDs []uuid.UUID
	if request.AssigneeIDs != nil {
		assigneeIDs = *request.AssigneeIDs
		if assigneeIDs == nil {
			assigneeIDs = []uuid.UUID{}
		}
	}

	task, notifications, err := taskService.UpdateTask(db, c.Param("id"), request.TaskUpdate, assigneeIDs, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, taskResponse{Task: task, Notifications: notifications})
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
