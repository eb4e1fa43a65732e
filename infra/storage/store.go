package storage

import "github.com/dsisolutions/shopsched/core/model"

// Store persists user overlays kept separate from the source CSV: manual
// priorities, shortages, the employee roster, absences, imported jobs and
// the last schedule snapshot.
type Store interface {
	// Job priorities. A missing entry means the job uses the default.
	JobPriority(jobNumber string) (int, bool, error)
	SetJobPriority(jobNumber string, priority int) error
	RemoveJobPriority(jobNumber string) error
	JobPriorities() (map[string]int, error)
	ClearJobPriorities() error

	// Imported jobs.
	Jobs() ([]model.Job, error)
	SaveJobs(jobs []model.Job) error
	ClearJobs() error
	HasJobs() (bool, error)

	// Shortages. A zero status lists all.
	Shortages(status model.ShortageStatus) ([]model.Shortage, error)
	ShortagesForJob(jobNumber string) ([]model.Shortage, error)
	AddShortage(s model.Shortage) error
	UpdateShortage(s model.Shortage) error
	DeleteShortage(id string) error
	ResolveShortage(id string) error
	OpenShortageJobNumbers() (map[string]struct{}, error)

	// Employee roster.
	Employees() ([]model.Employee, error)
	Employee(id string) (model.Employee, bool, error)
	AddEmployee(e model.Employee) error
	UpdateEmployee(e model.Employee) error
	DeleteEmployee(id string) error

	// Absences.
	Absences() ([]model.EmployeeAbsence, error)
	AbsencesForEmployee(employeeID string) ([]model.EmployeeAbsence, error)
	AddAbsence(a model.EmployeeAbsence) error
	DeleteAbsence(employeeID string, day model.Date) error

	// Last schedule snapshot.
	SaveSchedule(snap model.ScheduleSnapshot) error
	LoadSchedule() (model.ScheduleSnapshot, bool, error)
	ClearSchedule() error

	Close() error
}

// ApplyPriorities overlays stored manual priorities onto jobs, leaving
// jobs without an override at the default.
func ApplyPriorities(jobs []model.Job, priorities map[string]int) {
	for i := range jobs {
		if p, ok := priorities[jobs[i].JobNumber]; ok {
			jobs[i].ManualPriority = p
		} else if jobs[i].ManualPriority == 0 {
			jobs[i].ManualPriority = model.DefaultPriority
		}
	}
}
