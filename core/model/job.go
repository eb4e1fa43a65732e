package model

import (
	"fmt"
	"strings"
)

// JobStatus is the lifecycle state of a job as reported by the M2M export.
type JobStatus string

const (
	StatusReleased  JobStatus = "RELEASED"
	StatusOpen      JobStatus = "OPEN"
	StatusCompleted JobStatus = "COMPLETED"
	StatusCancelled JobStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusReleased, StatusOpen, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Active reports whether a job in this status still needs scheduling.
func (s JobStatus) Active() bool {
	return s != StatusCompleted && s != StatusCancelled
}

// ParseJobStatus maps the spellings seen in exports onto a JobStatus.
// Unrecognised values map to StatusOpen.
func ParseJobStatus(s string) JobStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "released", "rel":
		return StatusReleased
	case "completed", "done", "closed":
		return StatusCompleted
	case "cancelled", "cancel", "void":
		return StatusCancelled
	default:
		return StatusOpen
	}
}

// DefaultPriority is the manual priority assigned to jobs without an
// override. Lower values schedule first.
const DefaultPriority = 100

// Operation is a single routing step of a job. It is immutable once built.
type Operation struct {
	JobNumber         string           `json:"job_number"`
	OperationNumber   int              `json:"operation_number"`
	WorkCenterCode    string           `json:"work_center_code"`
	WorkCenterName    string           `json:"work_center_name"`
	Quantity          int              `json:"quantity"`
	UnitProdTimeHours float64          `json:"unit_production_time_hours"`
	SetupTimeHours    float64          `json:"setup_time_hours,omitempty"`
	MoveTimeHours     float64          `json:"move_time_hours,omitempty"`
	OperationMemo     string           `json:"operation_memo,omitempty"`
	RoutingText       *RoutingTextData `json:"-"`
}

// ProductionHours returns the total production time for the operation.
func (o Operation) ProductionHours() float64 {
	return o.UnitProdTimeHours * float64(o.Quantity)
}

// Job is one manufacturing job with its routing.
type Job struct {
	JobNumber      string      `json:"job_number"`
	PartNumber     string      `json:"part_number"`
	Quantity       int         `json:"quantity"`
	DueDate        Date        `json:"due_date"`
	Status         JobStatus   `json:"status"`
	ReleaseDate    Date        `json:"release_date,omitempty"`
	ManualPriority int         `json:"manual_priority"`
	Operations     []Operation `json:"operations"`
	IsBlocked      bool        `json:"is_blocked,omitempty"`
	BlockedReason  string      `json:"blocked_reason,omitempty"`
}

// TotalProductionHours sums production hours over all operations.
func (j Job) TotalProductionHours() float64 {
	var total float64
	for _, op := range j.Operations {
		total += op.ProductionHours()
	}
	return total
}

// OperationByWorkCenter returns the first operation routed through the
// given work center, or nil.
func (j Job) OperationByWorkCenter(code string) *Operation {
	for i := range j.Operations {
		if j.Operations[i].WorkCenterCode == code {
			return &j.Operations[i]
		}
	}
	return nil
}

// NextOperation returns the routing step following op, or nil when op is
// the last step or not part of the job.
func (j Job) NextOperation(op Operation) *Operation {
	for i := range j.Operations {
		if j.Operations[i].OperationNumber == op.OperationNumber {
			if i+1 < len(j.Operations) {
				return &j.Operations[i+1]
			}
			return nil
		}
	}
	return nil
}

// Validate checks the structural invariants the scheduler relies on.
func (j Job) Validate() error {
	if j.JobNumber == "" {
		return fmt.Errorf("job without job number")
	}
	if !j.Status.Valid() {
		return fmt.Errorf("job %s: unknown status %q", j.JobNumber, j.Status)
	}
	for i, op := range j.Operations {
		if op.OperationNumber <= 0 {
			return fmt.Errorf("job %s: operation %d has non-positive operation number", j.JobNumber, i)
		}
		if i > 0 && op.OperationNumber < j.Operations[i-1].OperationNumber {
			return fmt.Errorf("job %s: operations not sorted by operation number", j.JobNumber)
		}
	}
	return nil
}
