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
	"taskflow-app/taskflow/utils/dates"
)

// TaskInput carries the fields of a new task. Unknown enum values fall back
// to their defaults; dates that do not parse are left empty.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
	Percentage  *int   `json:"percentage"`
	Priority    string `json:"priority"`
}

// TaskUpdate is a partial update: nil fields keep their current value. A
// date field that is present but empty or malformed clears the date.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	DueDate     *string `json:"due_date"`
	Status      *string `json:"status"`
	Percentage  *int    `json:"percentage"`
	Priority    *string `json:"priority"`
}

// TaskFilter narrows GetTasks. Empty fields do not filter.
type TaskFilter struct {
	Title      string
	Status     string
	AssigneeID string
	DueDate    string
}

// MyTasks splits the caller's assigned tasks by who created them.
type MyTasks struct {
	FromOthers   []models.Task `json:"from_others"`
	SelfAssigned []models.Task `json:"self_assigned"`
}

// CalendarEvent is one entry of the calendar feed.
type CalendarEvent struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Start string    `json:"start"`
	URL   string    `json:"url"`
}

type TaskServiceInterface interface {
	CreateTask(db *database.Database, listID string, input TaskInput, assigneeIDs []uuid.UUID, creatorID uuid.UUID) (models.Task, []models.Notification, error)
	GetTaskById(db *database.Database, id string) (models.Task, error)
	UpdateTask(db *database.Database, id string, update TaskUpdate, assigneeIDs []uuid.UUID, actorID uuid.UUID) (models.Task, []models.Notification, error)
	DeleteTask(db *database.Database, id string, actorID uuid.UUID) error
	GetTasks(db *database.Database, filter TaskFilter) ([]models.Task, error)
	GetMyTasks(db *database.Database, userID uuid.UUID) (MyTasks, error)
	GetCalendarEvents(db *database.Database) ([]CalendarEvent, error)
}

type TaskService struct {
	producer broker.Producer
	now      func() time.Time
}

func NewTaskService(producer broker.Producer) *TaskService {
	return &TaskService{producer: producer, now: time.Now}
}

func (s *TaskService) CreateTask(db *database.Database, listID string, input TaskInput, assigneeIDs []uuid.UUID, creatorID uuid.UUID) (models.Task, []models.Notification, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	lid, err := parseID(listID, ErrListNotFound)
	if err != nil {
		return models.Task{}, nil, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, nil, tx.Error
	}

	var list models.List
	if err := tx.First(&list, "id = ?", lid).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, nil, ErrListNotFound
		}
		return models.Task{}, nil, err
	}

	position, err := nextTaskPosition(tx, list)
	if err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	creator, err := loadActor(tx, creatorID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	percentage := 0
	if input.Percentage != nil && models.ValidPercentage(*input.Percentage) {
		percentage = *input.Percentage
	}

	task := models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Position:    position,
		StartDate:   dates.Parse(input.StartDate),
		DueDate:     dates.Parse(input.DueDate),
		Status:      models.TaskStatusOrDefault(input.Status),
		Percentage:  percentage,
		Priority:    models.TaskPriorityOrDefault(input.Priority),
		ListID:      list.ID,
	}
	if creator != nil {
		task.CreatedByID = &creator.ID
	}

	if err := tx.Omit("Assignees").Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	if err := tx.Model(&list).Update("task_seq", position).Error; err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	assignees, err := loadUsers(tx, assigneeIDs)
	if err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}
	if err := replaceAssignees(tx, task.ID, assignees); err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}
	task.Assignees = assignees

	var notifications []models.Notification
	for _, recipient := range AssignedRecipients(nil, userIDs(assignees), creatorID) {
		n, err := notify(tx, recipient, models.NotificationAssigned, &task.ID, actorRef(creator),
			notificationMessage("%s assigned you a task: %q.", actorName(creator), task.Title))
		if err != nil {
			tx.Rollback()
			return models.Task{}, nil, err
		}
		notifications = append(notifications, n)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	task.Overdue = task.IsOverdue(today(s.now))

	publishEvent(s.producer, broker.TaskCreated, "task", creatorID, map[string]interface{}{
		"task_id":   task.ID.String(),
		"list_id":   task.ListID.String(),
		"title":     task.Title,
		"status":    task.Status,
		"position":  task.Position,
		"assignees": userIDs(assignees),
	})
	publishNotifications(s.producer, creatorID, notifications)

	return task, notifications, nil
}

// nextTaskPosition hands out one past the larger of the list's current
// maximum and its high-water mark, so positions freed by deletes are never
// handed out again.
func nextTaskPosition(tx *gorm.DB, list models.List) (int, error) {
	var maxPosition int
	if err := tx.Model(&models.Task{}).
		Where("list_id = ?", list.ID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPosition).Error; err != nil {
		return 0, err
	}
	if list.TaskSeq > maxPosition {
		maxPosition = list.TaskSeq
	}
	return maxPosition + 1, nil
}

func (s *TaskService) GetTaskById(db *database.Database, id string) (models.Task, error) {
	taskID, err := parseID(id, ErrTaskNotFound)
	if err != nil {
		return models.Task{}, err
	}

	var task models.Task
	if err := db.DB.Preload("Assignees").Preload("CreatedBy").Preload("List").
		First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	task.Overdue = task.IsOverdue(today(s.now))
	return task, nil
}

// changes validates the update and turns it into a column map. Invalid enum
// values are rejected rather than defaulted.
func (u TaskUpdate) changes() (map[string]interface{}, error) {
	changes := make(map[string]interface{})

	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrValidation)
		}
		changes["title"] = title
	}
	if u.Description != nil {
		changes["description"] = strings.TrimSpace(*u.Description)
	}
	if u.StartDate != nil {
		changes["start_date"] = dateValue(dates.Parse(*u.StartDate))
	}
	if u.DueDate != nil {
		changes["due_date"] = dateValue(dates.Parse(*u.DueDate))
	}
	if u.Status != nil {
		status, ok := models.ParseTaskStatus(strings.TrimSpace(*u.Status))
		if !ok {
			return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, *u.Status)
		}
		changes["status"] = status
	}
	if u.Percentage != nil {
		if !models.ValidPercentage(*u.Percentage) {
			return nil, fmt.Errorf("%w: invalid percentage %d", ErrValidation, *u.Percentage)
		}
		changes["percentage"] = *u.Percentage
	}
	if u.Priority != nil {
		priority, ok := models.ParseTaskPriority(strings.TrimSpace(*u.Priority))
		if !ok {
			return nil, fmt.Errorf("%w: invalid priority %q", ErrValidation, *u.Priority)
		}
		changes["priority"] = priority
	}

	return changes, nil
}

func dateValue(d *time.Time) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

// UpdateTask applies update, replaces the assignee set with assigneeIDs and
// records the resulting notifications, all in one transaction. A nil
// assigneeIDs keeps the current assignees; an empty, non-nil one clears them.
func (s *TaskService) UpdateTask(db *database.Database, id string, update TaskUpdate, assigneeIDs []uuid.UUID, actorID uuid.UUID) (models.Task, []models.Notification, error) {
	taskID, err := parseID(id, ErrTaskNotFound)
	if err != nil {
		return models.Task{}, nil, err
	}

	changes, err := update.changes()
	if err != nil {
		return models.Task{}, nil, err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, nil, tx.Error
	}

	var task models.Task
	if err := tx.Preload("Assignees").First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, nil, ErrTaskNotFound
		}
		return models.Task{}, nil, err
	}

	oldStatus := task.Status
	oldIDs := task.AssigneeIDs()

	if len(changes) > 0 {
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).Updates(changes).Error; err != nil {
			tx.Rollback()
			return models.Task{}, nil, err
		}
	}

	newIDs := oldIDs
	if assigneeIDs != nil {
		assignees, err := loadUsers(tx, assigneeIDs)
		if err != nil {
			tx.Rollback()
			return models.Task{}, nil, err
		}
		if err := replaceAssignees(tx, task.ID, assignees); err != nil {
			tx.Rollback()
			return models.Task{}, nil, err
		}
		newIDs = userIDs(assignees)
	}

	task = models.Task{}
	if err := tx.Preload("Assignees").First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	actor, err := loadActor(tx, actorID)
	if err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	var notifications []models.Notification
	for _, recipient := range AssignedRecipients(oldIDs, newIDs, actorID) {
		n, err := notify(tx, recipient, models.NotificationAssigned, &task.ID, actorRef(actor),
			notificationMessage("%s added you to the task: %q.", actorName(actor), task.Title))
		if err != nil {
			tx.Rollback()
			return models.Task{}, nil, err
		}
		notifications = append(notifications, n)
	}

	if oldStatus != models.StatusDone && task.Status == models.StatusDone {
		for _, recipient := range CompletedRecipients(task.CreatedByID, newIDs, actorID) {
			n, err := notify(tx, recipient, models.NotificationCompleted, &task.ID, actorRef(actor),
				notificationMessage("Task %q has been completed.", task.Title))
			if err != nil {
				tx.Rollback()
				return models.Task{}, nil, err
			}
			notifications = append(notifications, n)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, nil, err
	}

	task.Overdue = task.IsOverdue(today(s.now))

	publishEvent(s.producer, broker.TaskUpdated, "task", actorID, map[string]interface{}{
		"task_id":         task.ID.String(),
		"title":           task.Title,
		"previous_status": oldStatus,
		"status":          task.Status,
		"percentage":      task.Percentage,
		"assignees":       newIDs,
	})
	publishNotifications(s.producer, actorID, notifications)

	return task, notifications, nil
}

func (s *TaskService) DeleteTask(db *database.Database, id string, actorID uuid.UUID) error {
	taskID, err := parseID(id, ErrTaskNotFound)
	if err != nil {
		return err
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := deleteTasks(tx, []uuid.UUID{task.ID}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	publishEvent(s.producer, broker.TaskDeleted, "task", actorID, map[string]interface{}{
		"task_id": task.ID.String(),
		"list_id": task.ListID.String(),
	})
	return nil
}

// deleteTasks removes tasks with their assignment rows. Notifications about
// them stay in the inbox with the task reference cleared.
func deleteTasks(tx *gorm.DB, taskIDs []uuid.UUID) error {
	if len(taskIDs) == 0 {
		return nil
	}
	if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Model(&models.Notification{}).
		Where("task_id IN ?", taskIDs).
		Update("task_id", nil).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", taskIDs).Delete(&models.Task{}).Error
}

func (s *TaskService) GetTasks(db *database.Database, filter TaskFilter) ([]models.Task, error) {
	query := db.DB.Model(&models.Task{}).Preload("Assignees").Preload("List")

	if title := strings.TrimSpace(filter.Title); title != "" {
		query = query.Where("LOWER(tasks.title) LIKE ?", "%"+strings.ToLower(title)+"%")
	}

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("tasks.status = ?", status)
	}

	if assignee := strings.TrimSpace(filter.AssigneeID); assignee != "" {
		assigneeID, err := uuid.Parse(assignee)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid assignee id", ErrValidation)
		}
		query = query.
			Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
			Where("task_assignees.user_id = ?", assigneeID)
	}

	if due := dates.Parse(filter.DueDate); due != nil {
		query = query.Where("tasks.due_date = ?", *due)
	}

	var tasks []models.Task
	if err := query.
		Order("tasks.due_date IS NULL").
		Order("tasks.due_date ASC").
		Order("tasks.created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	models.MarkOverdue(tasks, today(s.now))
	return tasks, nil
}

// GetMyTasks returns every task assigned to userID, due soonest first with
// undated tasks last, newest first among equal dates.
func (s *TaskService) GetMyTasks(db *database.Database, userID uuid.UUID) (MyTasks, error) {
	var tasks []models.Task
	if err := db.DB.Preload("Assignees").Preload("List").
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.user_id = ?", userID).
		Order("tasks.due_date IS NULL").
		Order("tasks.due_date ASC").
		Order("tasks.created_at DESC").
		Find(&tasks).Error; err != nil {
		return MyTasks{}, err
	}

	models.MarkOverdue(tasks, today(s.now))

	mine := MyTasks{FromOthers: []models.Task{}, SelfAssigned: []models.Task{}}
	for _, t := range tasks {
		if t.CreatedByID != nil && *t.CreatedByID == userID {
			mine.SelfAssigned = append(mine.SelfAssigned, t)
		} else {
			mine.FromOthers = append(mine.FromOthers, t)
		}
	}
	return mine, nil
}

// GetCalendarEvents lists every dated task as a calendar entry linking to
// its board.
func (s *TaskService) GetCalendarEvents(db *database.Database) ([]CalendarEvent, error) {
	var tasks []models.Task
	if err := db.DB.Preload("List").
		Where("due_date IS NOT NULL").
		Order("due_date ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(tasks))
	for _, t := range tasks {
		event := CalendarEvent{
			ID:    t.ID,
			Title: fmt.Sprintf("%s (%s)", t.Title, t.Status),
			Start: dates.Format(t.DueDate),
		}
		if t.List != nil {
			event.URL = fmt.Sprintf("/boards/%s", t.List.BoardID)
		}
		events = append(events, event)
	}
	return events, nil
}

// loadUsers returns the existing users among ids in the order given.
// Unknown ids are dropped and duplicates collapse.
func loadUsers(tx *gorm.DB, ids []uuid.UUID) ([]models.User, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var found []models.User
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.User, len(found))
	for _, u := range found {
		byID[u.ID] = u
	}
	users := make([]models.User, 0, len(found))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

// replaceAssignees swaps the whole assignment set of a task.
func replaceAssignees(tx *gorm.DB, taskID uuid.UUID, users []models.User) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
		return err
	}
	if len(users) == 0 {
		return nil
	}
	rows := make([]models.TaskAssignee, 0, len(users))
	for _, u := range users {
		rows = append(rows, models.TaskAssignee{TaskID: taskID, UserID: u.ID})
	}
	return tx.Create(&rows).Error
}

func userIDs(users []models.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

// loadActor returns nil when the acting user no longer exists.
func loadActor(tx *gorm.DB, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func actorRef(actor *models.User) *uuid.UUID {
	if actor == nil {
		return nil
	}
	return &actor.ID
}

func actorName(actor *models.User) string {
	if actor == nil || actor.Name == "" {
		return "Someone"
	}
	return actor.Name
}

var TaskServiceInstance TaskServiceInterface = NewTaskService(nil)
