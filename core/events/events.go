package events

import (
	"time"

	"github.com/dsisolutions/shopsched/core/model"
)

// ScheduleCompletedEvent is published after a scheduling run finishes.
type ScheduleCompletedEvent struct {
	Result      *model.ScheduleResult
	HorizonDays int
	Duration    time.Duration
}

// ImportCompletedEvent is published after a CSV import finishes.
type ImportCompletedEvent struct {
	RowCount   int
	JobsLoaded int
	Warnings   int
	Errors     int
}
