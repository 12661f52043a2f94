package services

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/utils/dates"
)

type publishedMessage struct {
	Subject string
	Data    []byte
}

// recordingProducer keeps every message it is asked to publish.
type recordingProducer struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (p *recordingProducer) PublishMessage(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{Subject: subject, Data: data})
	return p.err
}

func (p *recordingProducer) Close() {}

func (p *recordingProducer) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	subjects := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		subjects = append(subjects, m.Subject)
	}
	return subjects
}

func fixedClock(day string) func() time.Time {
	d := dates.Parse(day)
	return func() time.Time { return d.Add(10 * time.Hour) }
}

func seedUser(t *testing.T, db *database.Database, name string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: uuid.NewString() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func seedBoard(t *testing.T, db *database.Database, owner *models.User, name string) models.Board {
	t.Helper()
	board := models.Board{Name: name}
	if owner != nil {
		board.OwnerID = &owner.ID
	}
	require.NoError(t, db.DB.Omit("Lists", "Owner").Create(&board).Error)
	return board
}

func seedList(t *testing.T, db *database.Database, board models.Board, title string) models.List {
	t.Helper()
	list, err := NewListService(nil).CreateList(db, board.ID.String(), title, uuid.Nil)
	require.NoError(t, err)
	return list
}

// seedTask inserts a task directly, bypassing position and notification logic.
func seedTask(t *testing.T, db *database.Database, list models.List, task models.Task, assignees ...models.User) models.Task {
	t.Helper()
	task.ListID = list.ID
	if task.Status == "" {
		task.Status = models.StatusInProcess
	}
	if task.Priority == "" {
		task.Priority = models.PriorityNormal
	}
	require.NoError(t, db.DB.Omit("Assignees").Create(&task).Error)
	for _, u := range assignees {
		require.NoError(t, db.DB.Create(&models.TaskAssignee{TaskID: task.ID, UserID: u.ID}).Error)
	}
	return task
}

func countRows(t *testing.T, db *database.Database, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.DB.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func recipients(notifications []models.Notification) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.UserID)
	}
	return ids
}
