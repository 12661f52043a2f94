package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskflow-app/taskflow/broker"
	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
)

type NotificationServiceInterface interface {
	ScanOverdue(db *database.Database, userID uuid.UUID) ([]models.Notification, error)
	GetNotifications(db *database.Database, userID uuid.UUID) ([]models.Notification, error)
	MarkAllRead(db *database.Database, userID uuid.UUID) (int64, error)
	OpenNotification(db *database.Database, userID uuid.UUID, id string) (NotificationTarget, error)
	DeleteNotification(db *database.Database, userID uuid.UUID, id string) error
	UnreadCount(db *database.Database, userID uuid.UUID) (int64, error)
}

// NotificationTarget is where opening a notification leads. TaskGone is set
// when the task it refers to no longer exists.
type NotificationTarget struct {
	Notification models.Notification `json:"notification"`
	BoardID      *uuid.UUID          `json:"board_id,omitempty"`
	TaskID       *uuid.UUID          `json:"task_id,omitempty"`
	URL          string              `json:"url,omitempty"`
	TaskGone     bool                `json:"task_gone"`
}

type NotificationService struct {
	producer broker.Producer
	now      func() time.Time
}

func NewNotificationService(producer broker.Producer) *NotificationService {
	return &NotificationService{producer: producer, now: time.Now}
}

// notify appends one notification row inside tx.
func notify(tx *gorm.DB, recipient uuid.UUID, typ models.NotificationType, taskID *uuid.UUID, actorID *uuid.UUID, message string) (models.Notification, error) {
	n := models.Notification{
		UserID:  recipient,
		TaskID:  taskID,
		Type:    typ,
		Message: message,
		ActorID: actorID,
	}
	if err := tx.Create(&n).Error; err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// notifyOverdue appends the overdue notification for (recipient, task)
// unless one was ever recorded. created is false when the row already
// existed, including when a concurrent scan inserted it first.
func notifyOverdue(tx *gorm.DB, recipient uuid.UUID, task models.Task) (n models.Notification, created bool, err error) {
	taskID := task.ID
	n = models.Notification{
		UserID:  recipient,
		TaskID:  &taskID,
		Type:    models.NotificationOverdue,
		Message: notificationMessage("Task %q is overdue.", task.Title),
	}
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&n)
	if result.Error != nil {
		return models.Notification{}, false, result.Error
	}
	return n, result.RowsAffected > 0, nil
}

// ScanOverdue creates the missing "overdue" notifications for userID: one per
// task that is past due, not Done, and assigned to or created by the user.
// A task already notified once, even if that notification was since
// deleted, is skipped, and the unique index on overdue rows keeps
// concurrent scans from both inserting. Task status is left untouched.
func (s *NotificationService) ScanOverdue(db *database.Database, userID uuid.UUID) ([]models.Notification, error) {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	assigned := tx.Model(&models.TaskAssignee{}).Select("task_id").Where("user_id = ?", userID)

	var tasks []models.Task
	if err := tx.
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", today(s.now), models.StatusDone).
		Where("created_by_id = ? OR id IN (?)", userID, assigned).
		Order("due_date ASC").Order("id").
		Find(&tasks).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var created []models.Notification
	for _, task := range tasks {
		n, ok, err := notifyOverdue(tx, userID, task)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if ok {
			created = append(created, n)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	publishNotifications(s.producer, uuid.Nil, created)
	return created, nil
}

// GetNotifications lists the inbox of userID, unread first, newest first.
func (s *NotificationService) GetNotifications(db *database.Database, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := db.DB.Preload("Actor").
		Where("user_id = ?", userID).
		Order("is_read ASC").Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkAllRead(db *database.Database, userID uuid.UUID) (int64, error) {
	result := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (s *NotificationService) findOwned(tx *gorm.DB, userID uuid.UUID, id string) (models.Notification, error) {
	notificationID, err := parseID(id, ErrNotificationNotFound)
	if err != nil {
		return models.Notification{}, err
	}

	var n models.Notification
	if err := tx.Where("id = ? AND user_id = ?", notificationID, userID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Notification{}, ErrNotificationNotFound
		}
		return models.Notification{}, err
	}
	return n, nil
}

// OpenNotification marks the notification read and resolves the board
// holding its task.
func (s *NotificationService) OpenNotification(db *database.Database, userID uuid.UUID, id string) (NotificationTarget, error) {
	n, err := s.findOwned(db.DB, userID, id)
	if err != nil {
		return NotificationTarget{}, err
	}

	if !n.IsRead {
		if err := db.DB.Model(&n).Update("is_read", true).Error; err != nil {
			return NotificationTarget{}, err
		}
		n.IsRead = true
	}

	target := NotificationTarget{Notification: n, TaskGone: true}
	if n.TaskID == nil {
		return target, nil
	}

	var task models.Task
	if err := db.DB.Preload("List").First(&task, "id = ?", *n.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return target, nil
		}
		return NotificationTarget{}, err
	}
	if task.List == nil {
		return target, nil
	}

	boardID := task.List.BoardID
	target.BoardID = &boardID
	target.TaskID = &task.ID
	target.URL = fmt.Sprintf("/boards/%s#task-%s", boardID, task.ID)
	target.TaskGone = false
	return target, nil
}

func (s *NotificationService) DeleteNotification(db *database.Database, userID uuid.UUID, id string) error {
	n, err := s.findOwned(db.DB, userID, id)
	if err != nil {
		return err
	}
	return db.DB.Delete(&n).Error
}

func (s *NotificationService) UnreadCount(db *database.Database, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

var NotificationServiceInstance NotificationServiceInterface = NewNotificationService(nil)
