package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
)

type ListServiceInterface interface {
	CreateList(db *database.Database, boardID string, title string, actorID uuid.UUID) (models.List, error)
	DeleteList(db *database.Database, id string, actorID uuid.UUID) error
}

type ListService struct {
	producer broker.Producer
}

func NewListService(producer broker.Producer) *ListService {
	return &ListService{producer: producer}
}

// CreateList appends a list after the last one on the board.
func (s *ListService) CreateList(db *database.Database, boardID string, title string, actorID uuid.UUID) (models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.List{}, fmt.Errorf("%w: list title is required", ErrValidation)
	}

	bid, err := parseID(boardID, ErrBoardNotFound)
	if err != nil {
		return models.List{}, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.List{}, tx.Error
	}

	var board models.Board
	if err := tx.First(&board, "id = ?", bid).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.List{}, ErrBoardNotFound
		}
		return models.List{}, err
	}

	var last int
	if err := tx.Model(&models.List{}).
		Where("board_id = ?", board.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error; err != nil {
		tx.Rollback()
		return models.List{}, err
	}

	list := models.List{Title: title, Position: last + 1, BoardID: board.ID}
	if err := tx.Omit("Tasks").Create(&list).Error; err != nil {
		tx.Rollback()
		return models.List{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.List{}, err
	}
	list.Tasks = []models.Task{}

	publishEvent(s.producer, broker.ListCreated, "list", actorID, map[string]interface{}{
		"list_id":  list.ID.String(),
		"board_id": list.BoardID.String(),
		"title":    list.Title,
		"position": list.Position,
	})
	return list, nil
}

// DeleteList removes a list and every task on it.
func (s *ListService) DeleteList(db *database.Database, id string, actorID uuid.UUID) error {
	listID, err := parseID(id, ErrListNotFound)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var list models.List
	if err := tx.First(&list, "id = ?", listID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return err
	}

	if err := deleteLists(tx, []uuid.UUID{list.ID}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishEvent(s.producer, broker.ListDeleted, "list", actorID, map[string]interface{}{
		"list_id":  list.ID.String(),
		"board_id": list.BoardID.String(),
	})
	return nil
}

// deleteLists removes lists together with their tasks.
func deleteLists(tx *gorm.DB, listIDs []uuid.UUID) error {
	if len(listIDs) == 0 {
		return nil
	}

	var taskIDs []uuid.UUID
	if err := tx.Model(&models.Task{}).Where("list_id IN ?", listIDs).Pluck("id", &taskIDs).Error; err != nil {
		return err
	}
	if err := deleteTasks(tx, taskIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", listIDs).Delete(&models.List{}).Error
}

var ListServiceInstance ListServiceInterface = NewListService(nil)
