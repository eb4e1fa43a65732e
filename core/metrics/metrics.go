package metrics

import (
	"time"

	"github.com/dsisolutions/shopsched/core/model"
)

// ScheduleRunEvent summarises one completed scheduling run.
type ScheduleRunEvent struct {
	ScheduleDate   model.Date
	HorizonDays    int
	JobsOnTime     int
	JobsLate       int
	ScheduledOps   int
	UnscheduledOps int
	BlockedJobs    int
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records scheduling runs for observability purposes.
type MetricsSink interface {
	RecordScheduleRun(ev ScheduleRunEvent) error
}

// UtilizationRecorder records per-bucket work-center utilization.
type UtilizationRecorder interface {
	RecordUtilization(buckets []model.WorkCenterCapacity) error
}

// ImportEvent captures the outcome of one CSV import.
type ImportEvent struct {
	RowCount   int
	JobsLoaded int
	Warnings   int
	Errors     int
	Time       time.Time
}

// ImportRecorder records CSV import outcomes.
type ImportRecorder interface {
	RecordImport(ev ImportEvent) error
}
