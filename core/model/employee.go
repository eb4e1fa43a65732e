package model

import "github.com/google/uuid"

// Employee is a member of the shop roster. An empty WorkCenters list
// means the employee can staff any work center.
type Employee struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	DefaultDailyHours float64  `json:"default_daily_hours"`
	WorkCenters       []string `json:"work_centers"`
}

// NewEmployee returns an employee with a generated ID and the standard
// eight hour day.
func NewEmployee(name string) Employee {
	return Employee{
		ID:                shortID(),
		Name:              name,
		DefaultDailyHours: 8.0,
	}
}

// EligibleFor reports whether the employee may staff the given work
// center. An empty work-center list means eligible everywhere.
func (e Employee) EligibleFor(workCenter string) bool {
	if len(e.WorkCenters) == 0 {
		return true
	}
	for _, wc := range e.WorkCenters {
		if wc == workCenter {
			return true
		}
	}
	return false
}

// EmployeeAbsence records an employee being out on a specific date.
// HoursLost of zero means a full day off.
type EmployeeAbsence struct {
	EmployeeID string  `json:"employee_id"`
	Date       Date    `json:"date"`
	Reason     string  `json:"reason,omitempty"`
	HoursLost  float64 `json:"hours_lost"`
}

func shortID() string {
	return uuid.NewString()[:8]
}
