package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	StatusInProcess TaskStatus = "In process"
	StatusDone      TaskStatus = "Done"
	StatusOverDue   TaskStatus = "OverDue"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{StatusInProcess, StatusDone, StatusOverDue}

// ParseTaskStatus returns the status named by s and whether it is valid.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	for _, st := range TaskStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// TaskStatusOrDefault falls back to In process for missing or unknown input.
func TaskStatusOrDefault(s string) TaskStatus {
	if st, ok := ParseTaskStatus(strings.TrimSpace(s)); ok {
		return st
	}
	return StatusInProcess
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityNormal TaskPriority = "Normal"
	PriorityHigh   TaskPriority = "High"
	PriorityUrgent TaskPriority = "Urgent"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent}

func ParseTaskPriority(s string) (TaskPriority, bool) {
	for _, p := range TaskPriorities {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// TaskPriorityOrDefault falls back to Normal for missing or unknown input.
func TaskPriorityOrDefault(s string) TaskPriority {
	if p, ok := ParseTaskPriority(strings.TrimSpace(s)); ok {
		return p
	}
	return PriorityNormal
}

// TaskPercentages are the only progress values a task may hold.
var TaskPercentages = []int{0, 25, 50, 75, 100}

func ValidPercentage(p int) bool {
	for _, v := range TaskPercentages {
		if v == p {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Position    int          `gorm:"not null;default:0" json:"position"`
	StartDate   *time.Time   `gorm:"type:date" json:"start_date"`
	DueDate     *time.Time   `gorm:"type:date;index" json:"due_date"`
	Status      TaskStatus   `gorm:"type:varchar(20);not null;default:'In process';index" json:"status"`
	Percentage  int          `gorm:"not null;default:0" json:"percentage"`
	Priority    TaskPriority `gorm:"type:varchar(10);not null;default:'Normal'" json:"priority"`
	ListID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"list_id"`
	List        *List        `gorm:"foreignKey:ListID" json:"list,omitempty"`
	CreatedByID *uuid.UUID   `gorm:"type:uuid;index" json:"created_by_id"`
	CreatedBy   *User        `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Assignees   []User       `gorm:"many2many:task_assignees;" json:"assignees"`
	Overdue     bool         `gorm:"-" json:"overdue"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// IsOverdue is the derived overdue fact: a due date strictly before today on a
// task that is not done. The stored status is not consulted beyond Done.
func (t *Task) IsOverdue(today time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(today) && t.Status != StatusDone
}

// MarkOverdue fills the derived Overdue flag of every task for today.
func MarkOverdue(tasks []Task, today time.Time) {
	for i := range tasks {
		tasks[i].Overdue = tasks[i].IsOverdue(today)
	}
}

// AssigneeIDs returns the ids of the loaded assignees.
func (t *Task) AssigneeIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Assignees))
	for _, u := range t.Assignees {
		ids = append(ids, u.ID)
	}
	return ids
}

// TaskAssignee is the join row between a task and an assigned user.
type TaskAssignee struct {
	TaskID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}
