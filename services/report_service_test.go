package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/reports"
	"taskflow-app/taskflow/testutils"
	"taskflow-app/taskflow/utils/dates"
)

func TestGetDashboard(t *testing.T) {
	db := testutils.SetupTestDB(t)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")
	mine := seedBoard(t, db, &alice, "Mine")
	seedBoard(t, db, nil, "Shared")
	seedBoard(t, db, &bob, "Bob's")

	list := seedList(t, db, mine, "Todo")
	seedTask(t, db, list, models.Task{Title: "done in jan", Status: models.StatusDone,
		StartDate: dates.Parse("2024-01-01"), DueDate: dates.Parse("2024-01-05")}, bob, alice)
	seedTask(t, db, list, models.Task{Title: "late", DueDate: dates.Parse("2024-02-01")}, bob)
	seedTask(t, db, list, models.Task{Title: "flagged", Status: models.StatusOverDue, DueDate: dates.Parse("2024-03-20")}, bob)
	seedTask(t, db, list, models.Task{Title: "undated"})

	svc := NewReportService(NewBoardService(nil))
	svc.now = fixedClock("2024-03-15")

	dashboard, err := svc.GetDashboard(db, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", dashboard.Today)
	assert.Len(t, dashboard.Boards, 2)

	require.Len(t, dashboard.Upcoming, 3)
	assert.Equal(t, "flagged", dashboard.Upcoming[0].Title)
	assert.Equal(t, "late", dashboard.Upcoming[1].Title)
	assert.True(t, dashboard.Upcoming[1].Overdue)
	assert.Equal(t, "done in jan", dashboard.Upcoming[2].Title)

	assert.Equal(t, 2, dashboard.Totals[models.StatusInProcess])
	assert.Equal(t, 1, dashboard.Totals[models.StatusDone])
	assert.Equal(t, 1, dashboard.Totals[models.StatusOverDue])

	require.Len(t, dashboard.UserStats, 2)
	assert.Equal(t, reports.UserStats{UserID: bob.ID, Name: "Bob", Total: 3, Done: 1, InProcess: 1, Overdue: 1}, dashboard.UserStats[0])
	assert.Equal(t, reports.UserStats{UserID: alice.ID, Name: "Alice", Total: 1, Done: 1}, dashboard.UserStats[1])

	assert.Equal(t, reports.Completion{PercentDone: 50, PercentInProcess: 50}, dashboard.Completion)

	require.Len(t, dashboard.MonthlyTrend, 6)
	assert.Equal(t, "10/2023", dashboard.MonthlyTrend[0].Label)
	assert.Equal(t, "01/2024", dashboard.MonthlyTrend[3].Label)
	assert.Equal(t, 1, dashboard.MonthlyTrend[3].Count)
	assert.Equal(t, "03/2024", dashboard.MonthlyTrend[5].Label)

	require.Len(t, dashboard.Gantt, 1)
	assert.Equal(t, "2024-01-01 → 2024-01-05", dashboard.Gantt[0].Hint)
	assert.Equal(t, 4, dashboard.Gantt[0].Days)
}

func TestGetDashboard_Empty(t *testing.T) {
	db := testutils.SetupTestDB(t)
	alice := seedUser(t, db, "Alice")

	svc := NewReportService(NewBoardService(nil))
	dashboard, err := svc.GetDashboard(db, alice.ID)
	require.NoError(t, err)

	assert.Empty(t, dashboard.Upcoming)
	assert.NotNil(t, dashboard.UserStats)
	assert.Equal(t, reports.Completion{}, dashboard.Completion)
	assert.Len(t, dashboard.MonthlyTrend, 6)
}

func TestGetChart(t *testing.T) {
	db := testutils.SetupTestDB(t)
	alice := seedUser(t, db, "Alice")
	bob := seedUser(t, db, "Bob")
	carol := seedUser(t, db, "Carol")

	mine := seedList(t, db, seedBoard(t, db, &alice, "Mine"), "Todo")
	theirs := seedList(t, db, seedBoard(t, db, &bob, "Theirs"), "Todo")

	seedTask(t, db, mine, models.Task{Title: "a", Percentage: 50}, bob, carol)
	seedTask(t, db, mine, models.Task{Title: "b", Percentage: 25}, carol)
	seedTask(t, db, mine, models.Task{Title: "c", Status: models.StatusDone, Percentage: 100}, carol)
	seedTask(t, db, theirs, models.Task{Title: "elsewhere"}, bob, carol)

	chart, err := NewReportService(NewBoardService(nil)).GetChart(db, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, map[models.TaskStatus]int{models.StatusInProcess: 2, models.StatusDone: 1, models.StatusOverDue: 0}, chart.StatusCounts)
	assert.Equal(t, reports.ProgressSlots{Total: 200, Completed: 75, Remaining: 125}, chart.Progress)

	inProcess := chart.TopAssignees[models.StatusInProcess]
	require.Len(t, inProcess, 2)
	assert.Equal(t, carol.ID, inProcess[0].UserID)
	assert.Equal(t, 2, inProcess[0].Count)
	assert.Equal(t, bob.ID, inProcess[1].UserID)
	assert.Equal(t, 1, inProcess[1].Count)

	assert.Len(t, chart.TopAssignees[models.StatusDone], 1)
	assert.NotNil(t, chart.TopAssignees[models.StatusOverDue])
	assert.Empty(t, chart.TopAssignees[models.StatusOverDue])
}
