package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsisolutions/shopsched/core/model"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	js, err := NewJSONStore(t.TempDir())
	require.NoError(t, err)
	sq, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	stores := map[string]Store{"json": js, "sqlite": sq}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStorePriorities(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.JobPriority("J001")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SetJobPriority("J001", 5))
			require.NoError(t, store.SetJobPriority("J002", 50))
			require.NoError(t, store.SetJobPriority("J001", 7))

			p, ok, err := store.JobPriority("J001")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 7, p)

			all, err := store.JobPriorities()
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"J001": 7, "J002": 50}, all)

			require.NoError(t, store.RemoveJobPriority("J001"))
			_, ok, err = store.JobPriority("J001")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.ClearJobPriorities())
			all, err = store.JobPriorities()
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestStoreJobs(t *testing.T) {
	jobs := []model.Job{
		{
			JobNumber:      "J001",
			PartNumber:     "P-1",
			Quantity:       4,
			DueDate:        model.NewDate(2026, time.September, 14),
			Status:         model.StatusReleased,
			ManualPriority: model.DefaultPriority,
			Operations: []model.Operation{
				{JobNumber: "J001", OperationNumber: 10, WorkCenterCode: "SAW", Quantity: 4, UnitProdTimeHours: 0.5},
			},
		},
		{JobNumber: "J002", Status: model.StatusOpen, ManualPriority: model.DefaultPriority},
	}

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			has, err := store.HasJobs()
			require.NoError(t, err)
			assert.False(t, has)

			require.NoError(t, store.SaveJobs(jobs))
			has, err = store.HasJobs()
			require.NoError(t, err)
			assert.True(t, has)

			back, err := store.Jobs()
			require.NoError(t, err)
			require.Len(t, back, 2)
			byNumber := map[string]model.Job{}
			for _, j := range back {
				byNumber[j.JobNumber] = j
			}
			got := byNumber["J001"]
			assert.Equal(t, jobs[0].DueDate, got.DueDate)
			require.Len(t, got.Operations, 1)
			assert.Equal(t, "SAW", got.Operations[0].WorkCenterCode)

			require.NoError(t, store.ClearJobs())
			has, err = store.HasJobs()
			require.NoError(t, err)
			assert.False(t, has)
		})
	}
}

func TestStoreShortages(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			s1 := model.NewShortage("J001", "missing brackets")
			s2 := model.NewShortage("J002", "missing panel")
			require.NoError(t, store.AddShortage(s1))
			require.NoError(t, store.AddShortage(s2))

			open, err := store.Shortages(model.ShortageOpen)
			require.NoError(t, err)
			assert.Len(t, open, 2)

			blocked, err := store.OpenShortageJobNumbers()
			require.NoError(t, err)
			assert.Equal(t, map[string]struct{}{"J001": {}, "J002": {}}, blocked)

			require.NoError(t, store.ResolveShortage(s1.ID))
			blocked, err = store.OpenShortageJobNumbers()
			require.NoError(t, err)
			assert.Equal(t, map[string]struct{}{"J002": {}}, blocked)

			all, err := store.Shortages("")
			require.NoError(t, err)
			assert.Len(t, all, 2)

			forJob, err := store.ShortagesForJob("J002")
			require.NoError(t, err)
			require.Len(t, forJob, 1)
			assert.Equal(t, s2.ID, forJob[0].ID)

			s2.Notes = "ordered"
			require.NoError(t, store.UpdateShortage(s2))
			forJob, err = store.ShortagesForJob("J002")
			require.NoError(t, err)
			assert.Equal(t, "ordered", forJob[0].Notes)

			require.NoError(t, store.DeleteShortage(s1.ID))
			all, err = store.Shortages("")
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestStoreEmployeesAndAbsences(t *testing.T) {
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			emp := model.NewEmployee("Jordan")
			emp.WorkCenters = []string{"MILL"}
			require.NoError(t, store.AddEmployee(emp))

			got, ok, err := store.Employee(emp.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "Jordan", got.Name)

			emp.DefaultDailyHours = 6
			require.NoError(t, store.UpdateEmployee(emp))
			got, _, err = store.Employee(emp.ID)
			require.NoError(t, err)
			assert.Equal(t, 6.0, got.DefaultDailyHours)

			day := model.NewDate(2026, time.September, 7)
			absence := model.EmployeeAbsence{EmployeeID: emp.ID, Date: day, Reason: "vacation", HoursLost: 0}
			require.NoError(t, store.AddAbsence(absence))

			abs, err := store.AbsencesForEmployee(emp.ID)
			require.NoError(t, err)
			require.Len(t, abs, 1)
			assert.Equal(t, day, abs[0].Date)

			require.NoError(t, store.DeleteAbsence(emp.ID, day))
			abs, err = store.Absences()
			require.NoError(t, err)
			assert.Empty(t, abs)

			require.NoError(t, store.DeleteEmployee(emp.ID))
			_, ok, err = store.Employee(emp.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreScheduleSnapshot(t *testing.T) {
	snap := model.ScheduleSnapshot{
		ScheduleDate: model.NewDate(2026, time.September, 7),
		JobsOnTime:   3,
		JobsLate:     1,
		BlockedJobs:  []string{"J009"},
		Notes:        []string{"1 jobs have open shortages and are blocked"},
		ScheduledOperations: []model.ScheduledOperationRecord{
			{
				JobNumber:       "J001",
				OperationNumber: 10,
				WorkCenterCode:  "SAW",
				WorkCenterName:  "SAW",
				ScheduledDate:   model.NewDate(2026, time.September, 7),
				ScheduledHours:  2,
			},
		},
		SavedAt: time.Now().UTC(),
	}

	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.LoadSchedule()
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.SaveSchedule(snap))
			back, ok, err := store.LoadSchedule()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, snap.ScheduleDate, back.ScheduleDate)
			assert.Equal(t, snap.JobsOnTime, back.JobsOnTime)
			assert.Equal(t, snap.ScheduledOperations, back.ScheduledOperations)
			assert.Equal(t, snap.BlockedJobs, back.BlockedJobs)

			require.NoError(t, store.ClearSchedule())
			_, ok, err = store.LoadSchedule()
			require.NoError(t, err)
			assert.False(t, ok)

			// Clearing an already-empty schedule is not an error.
			require.NoError(t, store.ClearSchedule())
		})
	}
}

func TestApplyPriorities(t *testing.T) {
	jobs := []model.Job{
		{JobNumber: "J001"},
		{JobNumber: "J002", ManualPriority: model.DefaultPriority},
	}
	ApplyPriorities(jobs, map[string]int{"J002": 3})
	assert.Equal(t, model.DefaultPriority, jobs[0].ManualPriority)
	assert.Equal(t, 3, jobs[1].ManualPriority)
}
