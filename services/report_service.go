package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/reports"
	"taskflow-app/taskflow/utils/dates"
)

// Dashboard is the landing view: visible boards plus global task reports.
type Dashboard struct {
	Today        string                    `json:"today"`
	Boards       []models.Board            `json:"boards"`
	Upcoming     []models.Task             `json:"upcoming"`
	Totals       map[models.TaskStatus]int `json:"totals"`
	UserStats    []reports.UserStats       `json:"user_stats"`
	Completion   reports.Completion        `json:"completion"`
	MonthlyTrend []reports.MonthCount      `json:"monthly_trend"`
	Gantt        []reports.GanttBar        `json:"gantt"`
}

// Chart reports on the boards one user owns.
type Chart struct {
	StatusCounts map[models.TaskStatus]int                     `json:"status_counts"`
	TopAssignees map[models.TaskStatus][]reports.AssigneeCount `json:"top_assignees"`
	Progress     reports.ProgressSlots                         `json:"progress"`
}

type ReportServiceInterface interface {
	GetDashboard(db *database.Database, userID uuid.UUID) (Dashboard, error)
	GetChart(db *database.Database, ownerID uuid.UUID) (Chart, error)
}

type ReportService struct {
	boards BoardServiceInterface
	now    func() time.Time
}

func NewReportService(boards BoardServiceInterface) *ReportService {
	return &ReportService{boards: boards, now: time.Now}
}

// assignments loads one row per (user, task) assignment in user storage
// order. scope narrows the joined tasks.
func assignments(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]reports.Assignment, error) {
	query := db.Table("task_assignees").
		Select("users.id AS user_id, users.name AS name, tasks.status AS status").
		Joins("JOIN users ON users.id = task_assignees.user_id").
		Joins("JOIN tasks ON tasks.id = task_assignees.task_id")
	if scope != nil {
		query = scope(query)
	}

	var rows []reports.Assignment
	if err := query.
		Order("users.created_at ASC").
		Order("users.id ASC").
		Order("tasks.created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func ownedBy(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN lists ON lists.id = tasks.list_id").
			Joins("JOIN boards ON boards.id = lists.board_id").
			Where("boards.owner_id = ?", ownerID)
	}
}

func (s *ReportService) GetDashboard(db *database.Database, userID uuid.UUID) (Dashboard, error) {
	day := today(s.now)

	boards, err := s.boards.GetVisibleBoards(db, userID)
	if err != nil {
		return Dashboard{}, err
	}

	var tasks []models.Task
	if err := db.DB.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return Dashboard{}, err
	}
	models.MarkOverdue(tasks, day)

	rows, err := assignments(db.DB, nil)
	if err != nil {
		return Dashboard{}, err
	}
	stats := reports.UserBreakdown(rows)
	if stats == nil {
		stats = []reports.UserStats{}
	}

	return Dashboard{
		Today:        dates.Format(&day),
		Boards:       boards,
		Upcoming:     reports.Upcoming(tasks, reports.UpcomingLimit),
		Totals:       reports.StatusTotals(tasks),
		UserStats:    stats,
		Completion:   reports.CompletionPercentages(stats),
		MonthlyTrend: reports.MonthlyTrend(tasks, day),
		Gantt:        reports.Gantt(tasks, reports.GanttLimit),
	}, nil
}

func (s *ReportService) GetChart(db *database.Database, ownerID uuid.UUID) (Chart, error) {
	var tasks []models.Task
	if err := ownedBy(ownerID)(db.DB.Model(&models.Task{})).
		Order("tasks.created_at ASC").
		Find(&tasks).Error; err != nil {
		return Chart{}, err
	}

	rows, err := assignments(db.DB, ownedBy(ownerID))
	if err != nil {
		return Chart{}, err
	}

	top := make(map[models.TaskStatus][]reports.AssigneeCount, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		counts := reports.TopAssignees(rows, status, reports.TopAssigneesLimit)
		if counts == nil {
			counts = []reports.AssigneeCount{}
		}
		top[status] = counts
	}

	return Chart{
		StatusCounts: reports.StatusTotals(tasks),
		TopAssignees: top,
		Progress:     reports.Progress(tasks),
	}, nil
}

var ReportServiceInstance ReportServiceInterface = NewReportService(BoardServiceInstance)
