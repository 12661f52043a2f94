// Package reports computes the dashboard and chart aggregates from plain
// rows. Nothing here touches storage; every value is recomputed per call.
package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/utils/dates"
)

const (
	UpcomingLimit     = 8
	GanttLimit        = 10
	TopAssigneesLimit = 10
	TrendMonths       = 6
)

// Assignment is one (user, task) assignment row. Callers pass rows in user
// storage order so ties keep that order.
type Assignment struct {
	UserID uuid.UUID
	Name   string
	Status models.TaskStatus
}

type UserStats struct {
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Total     int       `json:"total"`
	Done      int       `json:"done"`
	InProcess int       `json:"in_process"`
	Overdue   int       `json:"overdue"`
}

type Completion struct {
	PercentDone      float64 `json:"percent_done"`
	PercentInProcess float64 `json:"percent_in_process"`
}

type MonthCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type GanttBar struct {
	TaskID   uuid.UUID `json:"task_id"`
	Label    string    `json:"label"`
	Days     int       `json:"days"`
	Duration int       `json:"duration"`
	Hint     string    `json:"hint"`
}

type AssigneeCount struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Count  int       `json:"count"`
}

type ProgressSlots struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Remaining int `json:"remaining"`
}

type StatusGroup struct {
	Status models.TaskStatus `json:"status"`
	Count  int               `json:"count"`
	Tasks  []models.Task     `json:"tasks"`
}

// StatusTotals counts tasks by stored status. Known statuses are always
// present, zero when unused.
func StatusTotals(tasks []models.Task) map[models.TaskStatus]int {
	totals := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, st := range models.TaskStatuses {
		totals[st] = 0
	}
	for _, t := range tasks {
		totals[t.Status]++
	}
	return totals
}

// UserBreakdown folds assignment rows into per-user counts ordered by total
// descending. Equal totals keep the order users first appear in rows.
func UserBreakdown(rows []Assignment) []UserStats {
	index := make(map[uuid.UUID]int)
	var stats []UserStats
	for _, r := range rows {
		i, ok := index[r.UserID]
		if !ok {
			i = len(stats)
			index[r.UserID] = i
			stats = append(stats, UserStats{UserID: r.UserID, Name: r.Name})
		}
		s := &stats[i]
		s.Total++
		switch r.Status {
		case models.StatusDone:
			s.Done++
		case models.StatusInProcess:
			s.InProcess++
		case models.StatusOverDue:
			s.Overdue++
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
	return stats
}

// CompletionPercentages is done/total over every assignment, rounded to one
// decimal, and its complement. Both are zero when nothing is assigned.
func CompletionPercentages(stats []UserStats) Completion {
	var total, done int
	for _, s := range stats {
		total += s.Total
		done += s.Done
	}
	if total == 0 {
		return Completion{}
	}
	pd := round1(float64(done) / float64(total) * 100)
	return Completion{PercentDone: pd, PercentInProcess: round1(100 - pd)}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// TrailingMonths returns the first day of each of the n calendar months
// ending with the month of today, oldest first.
func TrailingMonths(today time.Time, n int) []time.Time {
	current := dates.MonthStart(today)
	months := make([]time.Time, n)
	for i := 0; i < n; i++ {
		months[i] = current.AddDate(0, i-(n-1), 0)
	}
	return months
}

// MonthlyTrend counts Done tasks by due date over the six months ending at
// today's month. Each bucket is [month start, next month start).
func MonthlyTrend(tasks []models.Task, today time.Time) []MonthCount {
	months := TrailingMonths(today, TrendMonths)
	trend := make([]MonthCount, len(months))
	for i, m := range months {
		trend[i].Label = fmt.Sprintf("%02d/%d", int(m.Month()), m.Year())
	}
	for _, t := range tasks {
		if t.Status != models.StatusDone || t.DueDate == nil {
			continue
		}
		due := dates.Truncate(*t.DueDate)
		for i, start := range months {
			if !due.Before(start) && due.Before(start.AddDate(0, 1, 0)) {
				trend[i].Count++
				break
			}
		}
	}
	return trend
}

func statusRank(s models.TaskStatus) int {
	switch s {
	case models.StatusOverDue:
		return 0
	case models.StatusInProcess:
		return 1
	case models.StatusDone:
		return 2
	}
	return 99
}

// lessDue orders real dates ascending and nil dates after all of them.
func lessDue(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.Before(*b)
}

// SortByDue sorts tasks by due date ascending with undated tasks last.
func SortByDue(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessDue(tasks[i].DueDate, tasks[j].DueDate)
	})
}

// Upcoming keeps dated tasks ordered by (status rank, due date) and returns
// at most limit of them.
func Upcoming(tasks []models.Task, limit int) []models.Task {
	upcoming := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate != nil {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		ri, rj := statusRank(upcoming[i].Status), statusRank(upcoming[j].Status)
		if ri != rj {
			return ri < rj
		}
		return lessDue(upcoming[i].DueDate, upcoming[j].DueDate)
	})
	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// Gantt builds bars for up to limit tasks with both dates, latest due first.
func Gantt(tasks []models.Task, limit int) []GanttBar {
	dated := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.StartDate != nil && t.DueDate != nil {
			dated = append(dated, t)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].DueDate.After(*dated[j].DueDate)
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}

	bars := make([]GanttBar, 0, len(dated))
	for _, t := range dated {
		days := dates.DaysBetween(*t.StartDate, *t.DueDate)
		if days < 0 {
			days = 0
		}
		duration := days
		if duration < 1 {
			duration = 1
		}
		bars = append(bars, GanttBar{
			TaskID:   t.ID,
			Label:    t.Title,
			Days:     days,
			Duration: duration,
			Hint:     fmt.Sprintf("%s → %s", dates.Format(t.StartDate), dates.Format(t.DueDate)),
		})
	}
	return bars
}

// TopAssignees counts assignments with the given status per user and returns
// the limit busiest users, ties in row order.
func TopAssignees(rows []Assignment, status models.TaskStatus, limit int) []AssigneeCount {
	index := make(map[uuid.UUID]int)
	var counts []AssigneeCount
	for _, r := range rows {
		if r.Status != status {
			continue
		}
		i, ok := index[r.UserID]
		if !ok {
			i = len(counts)
			index[r.UserID] = i
			counts = append(counts, AssigneeCount{UserID: r.UserID, Name: r.Name})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// Progress sums the percentage of every In process task against 100 slots
// per task.
func Progress(tasks []models.Task) ProgressSlots {
	var p ProgressSlots
	for _, t := range tasks {
		if t.Status != models.StatusInProcess {
			continue
		}
		p.Total += 100
		p.Completed += t.Percentage
	}
	p.Remaining = p.Total - p.Completed
	if p.Remaining < 0 {
		p.Remaining = 0
	}
	return p
}

// GroupByStatus splits tasks into one group per known status, each sorted by
// due date with undated tasks last.
func GroupByStatus(tasks []models.Task) []StatusGroup {
	groups := make([]StatusGroup, len(models.TaskStatuses))
	for i, st := range models.TaskStatuses {
		groups[i] = StatusGroup{Status: st, Tasks: []models.Task{}}
	}
	for _, t := range tasks {
		for i := range groups {
			if groups[i].Status == t.Status {
				groups[i].Tasks = append(groups[i].Tasks, t)
				break
			}
		}
	}
	for i := range groups {
		SortByDue(groups[i].Tasks)
		groups[i].Count = len(groups[i].Tasks)
	}
	return groups
}
