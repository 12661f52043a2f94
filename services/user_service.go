package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
)

type UserServiceInterface interface {
	GetUsers(db *database.Database) ([]models.User, error)
	GetUserById(db *database.Database, id string) (models.User, error)
	DeleteUser(db *database.Database, id string, actorID uuid.UUID) error
}

type UserService struct {
	producer broker.Producer
}

func NewUserService(producer broker.Producer) *UserService {
	return &UserService{producer: producer}
}

// GetUsers lists every member ordered by name.
func (s *UserService) GetUsers(db *database.Database) ([]models.User, error) {
	var users []models.User
	if err := db.DB.Order("name ASC").Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUserById(db *database.Database, id string) (models.User, error) {
	userID, err := parseID(id, ErrUserNotFound)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	if err := db.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// DeleteUser removes a member. Their assignments and inbox go with them;
// tasks they created, boards they owned and notifications they triggered
// stay, with the reference to them cleared. Members cannot delete
// themselves.
func (s *UserService) DeleteUser(db *database.Database, id string, actorID uuid.UUID) error {
	userID, err := parseID(id, ErrUserNotFound)
	if err != nil {
		return err
	}
	if userID == actorID {
		return ErrSelfDeletion
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Task{}).Where("created_by_id = ?", user.ID).
		Update("created_by_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Board{}).Where("owner_id = ?", user.ID).
		Update("owner_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Unscoped().Model(&models.Notification{}).Where("actor_id = ?", user.ID).
		Update("actor_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishEvent(s.producer, broker.UserDeleted, "user", actorID, map[string]interface{}{
		"user_id": user.ID.String(),
	})
	return nil
}

var UserServiceInstance UserServiceInterface = NewUserService(nil)
