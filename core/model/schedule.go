package model

import (
	"encoding/json"
	"time"
)

// WorkCenterCapacity is the derived load picture for one work center on
// one date. It is computed per scheduling run, never persisted on its own.
type WorkCenterCapacity struct {
	WorkCenterCode     string  `json:"work_center_code"`
	Date               Date    `json:"date"`
	AvailableHours     float64 `json:"available_hours"`
	ScheduledHours     float64 `json:"scheduled_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// ScheduledOperation pairs an operation with its assigned date. Created
// only by the scheduler and immutable afterwards.
type ScheduledOperation struct {
	Operation          Operation
	Job                *Job
	ScheduledDate      Date
	ScheduledStartHour float64
	ScheduledEndHour   float64
	IsLate             bool
	LatenessHours      float64
}

// ScheduledHours returns the hours committed to the operation's bucket.
func (s ScheduledOperation) ScheduledHours() float64 {
	return s.ScheduledEndHour - s.ScheduledStartHour
}

// ScheduledOperationRecord is the flat serialized form of a
// ScheduledOperation used for persistence and display.
type ScheduledOperationRecord struct {
	JobNumber       string  `json:"job_number"`
	OperationNumber int     `json:"operation_number"`
	WorkCenterCode  string  `json:"work_center_code"`
	WorkCenterName  string  `json:"work_center_name"`
	ScheduledDate   Date    `json:"scheduled_date"`
	ScheduledHours  float64 `json:"scheduled_hours"`
	IsLate          bool    `json:"is_late"`
	LatenessHours   float64 `json:"lateness_hours"`
}

// Record returns the flat serialized form.
func (s ScheduledOperation) Record() ScheduledOperationRecord {
	return ScheduledOperationRecord{
		JobNumber:       s.Job.JobNumber,
		OperationNumber: s.Operation.OperationNumber,
		WorkCenterCode:  s.Operation.WorkCenterCode,
		WorkCenterName:  s.Operation.WorkCenterName,
		ScheduledDate:   s.ScheduledDate,
		ScheduledHours:  s.ScheduledHours(),
		IsLate:          s.IsLate,
		LatenessHours:   s.LatenessHours,
	}
}

// MarshalJSON emits the flat record shape.
func (s ScheduledOperation) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Record())
}

// ScheduleResult is the output of one scheduling run. It is never
// mutated after the run returns.
type ScheduleResult struct {
	ScheduledOperations   []ScheduledOperation `json:"scheduled_operations"`
	UnscheduledOperations []Operation          `json:"-"`
	JobsOnTime            int                  `json:"jobs_on_time"`
	JobsLate              int                  `json:"jobs_late"`
	BlockedJobs           []string             `json:"blocked_jobs"`
	ScheduleDate          Date                 `json:"schedule_date"`
	Notes                 []string             `json:"notes"`
}

// OperationsForJob returns the scheduled operations belonging to the
// given job, in placement order.
func (r *ScheduleResult) OperationsForJob(jobNumber string) []ScheduledOperation {
	var ops []ScheduledOperation
	for _, so := range r.ScheduledOperations {
		if so.Job.JobNumber == jobNumber {
			ops = append(ops, so)
		}
	}
	return ops
}

// CompletionDate returns the latest scheduled date among the job's
// operations and false when none were scheduled.
func (r *ScheduleResult) CompletionDate(jobNumber string) (Date, bool) {
	var latest Date
	found := false
	for _, so := range r.ScheduledOperations {
		if so.Job.JobNumber != jobNumber {
			continue
		}
		if !found || so.ScheduledDate.After(latest) {
			latest = so.ScheduledDate
		}
		found = true
	}
	return latest, found
}

// IsBlocked reports whether the job number was in the run's blocked set.
func (r *ScheduleResult) IsBlocked(jobNumber string) bool {
	for _, b := range r.BlockedJobs {
		if b == jobNumber {
			return true
		}
	}
	return false
}

// ScheduleSnapshot is the persisted form of a ScheduleResult. It carries
// only serializable records and round-trips through JSON unchanged.
type ScheduleSnapshot struct {
	ScheduleDate        Date                       `json:"schedule_date"`
	JobsOnTime          int                        `json:"jobs_on_time"`
	JobsLate            int                        `json:"jobs_late"`
	BlockedJobs         []string                   `json:"blocked_jobs"`
	Notes               []string                   `json:"notes"`
	ScheduledOperations []ScheduledOperationRecord `json:"scheduled_operations"`
	SavedAt             time.Time                  `json:"saved_at,omitempty"`
}

// Snapshot converts the result into its persisted form.
func (r *ScheduleResult) Snapshot() ScheduleSnapshot {
	records := make([]ScheduledOperationRecord, len(r.ScheduledOperations))
	for i, so := range r.ScheduledOperations {
		records[i] = so.Record()
	}
	return ScheduleSnapshot{
		ScheduleDate:        r.ScheduleDate,
		JobsOnTime:          r.JobsOnTime,
		JobsLate:            r.JobsLate,
		BlockedJobs:         r.BlockedJobs,
		Notes:               r.Notes,
		ScheduledOperations: records,
	}
}
