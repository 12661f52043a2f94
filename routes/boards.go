package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
)

type createListRequest struct {
	Title string `json:"title"`
}

type boardViewResponse struct {
	Board   models.Board  `json:"board"`
	Members []models.User `json:"members"`
}

func RegisterBoardRoutes(group *gin.RouterGroup, db *database.Database, boardService services.BoardServiceInterface, listService services.ListServiceInterface, userService services.UserServiceInterface) {
	group.GET("/boards", func(c *gin.Context) { GetBoards(c, db, boardService) })
	group.POST("/boards", func(c *gin.Context) { CreateBoard(c, db, boardService) })
	group.GET("/boards/:id", func(c *gin.Context) { GetBoardById(c, db, boardService, userService) })
	group.PUT("/boards/:id", func(c *gin.Context) { UpdateBoard(c, db, boardService) })
	group.DELETE("/boards/:id", func(c *gin.Context) { DeleteBoard(c, db, boardService) })
	group.POST("/boards/:id/lists", func(c *gin.Context) { CreateList(c, db, listService) })
	group.GET("/boards/:id/summary", func(c *gin.Context) { GetBoardSummary(c, db, boardService) })
	group.GET("/summary", func(c *gin.Context) { GetAllSummaries(c, db, boardService) })
}

func GetBoards(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := boardService.GetBoards(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func CreateBoard(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input services.BoardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := boardService.CreateBoard(db, userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// GetBoardById returns the board with its lists and tasks, plus the member
// list used to pick assignees.
func GetBoardById(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface, userService services.UserServiceInterface) {
	board, err := boardService.GetBoardById(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	members, err := userService.GetUsers(db)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, boardViewResponse{Board: board, Members: members})
}

func UpdateBoard(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var update services.BoardUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := boardService.UpdateBoard(db, c.Param("id"), update, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func DeleteBoard(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := boardService.DeleteBoard(db, c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func CreateList(c *gin.Context, db *database.Database, listService services.ListServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request createListRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := listService.CreateList(db, c.Param("id"), request.Title, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func GetBoardSummary(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	summary, err := boardService.GetBoardSummary(db, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func GetAllSummaries(c *gin.Context, db *database.Database, boardService services.BoardServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := boardService.GetAllSummaries(db, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}
