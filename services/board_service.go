package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/reports"
)

type BoardInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BoardUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// BoardSummary groups the tasks of one board by status.
type BoardSummary struct {
	Board  models.Board              `json:"board"`
	Groups []reports.StatusGroup     `json:"groups"`
	Counts map[models.TaskStatus]int `json:"counts"`
}

type BoardServiceInterface interface {
	CreateBoard(db *database.Database, ownerID uuid.UUID, input BoardInput) (models.Board, error)
	GetBoardById(db *database.Database, id string) (models.Board, error)
	GetBoards(db *database.Database, ownerID uuid.UUID) ([]models.Board, error)
	GetVisibleBoards(db *database.Database, userID uuid.UUID) ([]models.Board, error)
	UpdateBoard(db *database.Database, id string, update BoardUpdate, actorID uuid.UUID) (models.Board, error)
	DeleteBoard(db *database.Database, id string, actorID uuid.UUID) error
	GetBoardSummary(db *database.Database, id string) (BoardSummary, error)
	GetAllSummaries(db *database.Database, ownerID uuid.UUID) ([]BoardSummary, error)
}

type BoardService struct {
	producer broker.Producer
	now      func() time.Time
}

func NewBoardService(producer broker.Producer) *BoardService {
	return &BoardService{producer: producer, now: time.Now}
}

func (s *BoardService) CreateBoard(db *database.Database, ownerID uuid.UUID, input BoardInput) (models.Board, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Board{}, fmt.Errorf("%w: board name is required", ErrValidation)
	}

	board := models.Board{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     &ownerID,
	}
	if err := db.DB.Omit("Lists", "Owner").Create(&board).Error; err != nil {
		return models.Board{}, err
	}
	board.Lists = []models.List{}

	publishEvent(s.producer, broker.BoardCreated, "board", ownerID, map[string]interface{}{
		"board_id": board.ID.String(),
		"name":     board.Name,
	})
	return board, nil
}

// GetBoardById loads a board with its lists and their tasks, both in
// position order.
func (s *BoardService) GetBoardById(db *database.Database, id string) (models.Board, error) {
	boardID, err := parseID(id, ErrBoardNotFound)
	if err != nil {
		return models.Board{}, err
	}

	var board models.Board
	err = db.DB.
		Preload("Lists", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC").Order("created_at ASC")
		}).
		Preload("Lists.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Lists.Tasks.Assignees").
		First(&board, "id = ?", boardID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, err
	}

	day := today(s.now)
	for i := range board.Lists {
		models.MarkOverdue(board.Lists[i].Tasks, day)
	}
	return board, nil
}

// GetBoards lists the boards ownerID owns.
func (s *BoardService) GetBoards(db *database.Database, ownerID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	if err := db.DB.Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// GetVisibleBoards lists the boards userID owns plus every unowned board.
func (s *BoardService) GetVisibleBoards(db *database.Database, userID uuid.UUID) ([]models.Board, error) {
	var boards []models.Board
	if err := db.DB.Where("owner_id = ? OR owner_id IS NULL", userID).
		Order("created_at ASC").Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *BoardService) UpdateBoard(db *database.Database, id string, update BoardUpdate, actorID uuid.UUID) (models.Board, error) {
	boardID, err := parseID(id, ErrBoardNotFound)
	if err != nil {
		return models.Board{}, err
	}

	changes := make(map[string]interface{})
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Board{}, fmt.Errorf("%w: board name is required", ErrValidation)
		}
		changes["name"] = name
	}
	if update.Description != nil {
		changes["description"] = strings.TrimSpace(*update.Description)
	}

	var board models.Board
	if err := db.DB.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Board{}, ErrBoardNotFound
		}
		return models.Board{}, err
	}

	if len(changes) > 0 {
		if err := db.DB.Model(&models.Board{}).Where("id = ?", board.ID).Updates(changes).Error; err != nil {
			return models.Board{}, err
		}
		if err := db.DB.First(&board, "id = ?", board.ID).Error; err != nil {
			return models.Board{}, err
		}
	}

	publishEvent(s.producer, broker.BoardUpdated, "board", actorID, map[string]interface{}{
		"board_id": board.ID.String(),
		"name":     board.Name,
	})
	return board, nil
}

// DeleteBoard removes the board with all of its lists and their tasks.
func (s *BoardService) DeleteBoard(db *database.Database, id string, actorID uuid.UUID) error {
	boardID, err := parseID(id, ErrBoardNotFound)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var board models.Board
	if err := tx.First(&board, "id = ?", boardID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return err
	}

	var listIDs []uuid.UUID
	if err := tx.Model(&models.List{}).Where("board_id = ?", board.ID).Pluck("id", &listIDs).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := deleteLists(tx, listIDs); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&board).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishEvent(s.producer, broker.BoardDeleted, "board", actorID, map[string]interface{}{
		"board_id": board.ID.String(),
	})
	return nil
}

func (s *BoardService) GetBoardSummary(db *database.Database, id string) (BoardSummary, error) {
	boardID, err := parseID(id, ErrBoardNotFound)
	if err != nil {
		return BoardSummary{}, err
	}

	var board models.Board
	if err := db.DB.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BoardSummary{}, ErrBoardNotFound
		}
		return BoardSummary{}, err
	}
	return s.summarize(db, board)
}

// GetAllSummaries builds a summary for every board ownerID owns.
func (s *BoardService) GetAllSummaries(db *database.Database, ownerID uuid.UUID) ([]BoardSummary, error) {
	boards, err := s.GetBoards(db, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for _, board := range boards {
		summary, err := s.summarize(db, board)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *BoardService) summarize(db *database.Database, board models.Board) (BoardSummary, error) {
	var tasks []models.Task
	if err := db.DB.Preload("Assignees").
		Joins("JOIN lists ON lists.id = tasks.list_id").
		Where("lists.board_id = ?", board.ID).
		Order("tasks.created_at ASC").
		Find(&tasks).Error; err != nil {
		return BoardSummary{}, err
	}
	models.MarkOverdue(tasks, today(s.now))

	groups := reports.GroupByStatus(tasks)
	counts := make(map[models.TaskStatus]int, len(groups))
	for _, g := range groups {
		counts[g.Status] = g.Count
	}
	return BoardSummary{Board: board, Groups: groups, Counts: counts}, nil
}

var BoardServiceInstance BoardServiceInterface = NewBoardService(nil)
