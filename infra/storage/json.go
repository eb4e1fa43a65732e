package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dsisolutions/shopsched/core/model"
)

// File names inside the data directory, one overlay per file.
const (
	prioritiesFile = "job_priorities.json"
	shortagesFile  = "shortages.json"
	employeesFile  = "employees.json"
	absencesFile   = "absences.json"
	scheduleFile   = "schedule.json"
	jobsFile       = "jobs.json"
)

// JSONStore keeps each overlay in its own JSON file under a data
// directory.
type JSONStore struct {
	dir string
	mu  sync.Mutex
}

// NewJSONStore creates the data directory if needed and returns a store
// over it.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) path(name string) string {
	return filepath.Join(s.dir, name)
}

func readJSON[T any](s *JSONStore, name string, out *T) (bool, error) {
	b, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

func writeJSON(s *JSONStore, name string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), b, 0o644)
}

func (s *JSONStore) JobPriority(jobNumber string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	priorities := map[string]int{}
	if _, err := readJSON(s, prioritiesFile, &priorities); err != nil {
		return 0, false, err
	}
	p, ok := priorities[jobNumber]
	return p, ok, nil
}

func (s *JSONStore) SetJobPriority(jobNumber string, priority int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	priorities := map[string]int{}
	if _, err := readJSON(s, prioritiesFile, &priorities); err != nil {
		return err
	}
	priorities[jobNumber] = priority
	return writeJSON(s, prioritiesFile, priorities)
}

func (s *JSONStore) RemoveJobPriority(jobNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	priorities := map[string]int{}
	if _, err := readJSON(s, prioritiesFile, &priorities); err != nil {
		return err
	}
	if _, ok := priorities[jobNumber]; !ok {
		return nil
	}
	delete(priorities, jobNumber)
	return writeJSON(s, prioritiesFile, priorities)
}

func (s *JSONStore) JobPriorities() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	priorities := map[string]int{}
	if _, err := readJSON(s, prioritiesFile, &priorities); err != nil {
		return nil, err
	}
	return priorities, nil
}

func (s *JSONStore) ClearJobPriorities() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s, prioritiesFile, map[string]int{})
}

func (s *JSONStore) Jobs() ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []model.Job
	if _, err := readJSON(s, jobsFile, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JSONStore) SaveJobs(jobs []model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s, jobsFile, jobs)
}

func (s *JSONStore) ClearJobs() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s, jobsFile, []model.Job{})
}

func (s *JSONStore) HasJobs() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobs []model.Job
	found, err := readJSON(s, jobsFile, &jobs)
	if err != nil {
		return false, err
	}
	return found && len(jobs) > 0, nil
}

func (s *JSONStore) Shortages(status model.ShortageStatus) ([]model.Shortage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shortagesLocked(status)
}

func (s *JSONStore) shortagesLocked(status model.ShortageStatus) ([]model.Shortage, error) {
	var all []model.Shortage
	if _, err := readJSON(s, shortagesFile, &all); err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	var filtered []model.Shortage
	for _, sh := range all {
		if sh.Status == status {
			filtered = append(filtered, sh)
		}
	}
	return filtered, nil
}

func (s *JSONStore) ShortagesForJob(jobNumber string) ([]model.Shortage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.shortagesLocked("")
	if err != nil {
		return nil, err
	}
	var out []model.Shortage
	for _, sh := range all {
		if sh.JobNumber == jobNumber {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (s *JSONStore) AddShortage(sh model.Shortage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.shortagesLocked("")
	if err != nil {
		return err
	}
	all = append(all, sh)
	return writeJSON(s, shortagesFile, all)
}

func (s *JSONStore) UpdateShortage(sh model.Shortage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.shortagesLocked("")
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == sh.ID {
			all[i] = sh
			break
		}
	}
	return writeJSON(s, shortagesFile, all)
}

func (s *JSONStore) DeleteShortage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.shortagesLocked("")
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, sh := range all {
		if sh.ID != id {
			kept = append(kept, sh)
		}
	}
	return writeJSON(s, shortagesFile, kept)
}

func (s *JSONStore) ResolveShortage(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.shortagesLocked("")
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].Status = model.ShortageResolved
			break
		}
	}
	return writeJSON(s, shortagesFile, all)
}

func (s *JSONStore) OpenShortageJobNumbers() (map[string]struct{}, error) {
	open, err := s.Shortages(model.ShortageOpen)
	if err != nil {
		return nil, err
	}
	jobs := make(map[string]struct{}, len(open))
	for _, sh := range open {
		jobs[sh.JobNumber] = struct{}{}
	}
	return jobs, nil
}

func (s *JSONStore) Employees() ([]model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.employeesLocked()
}

func (s *JSONStore) employeesLocked() ([]model.Employee, error) {
	var emps []model.Employee
	if _, err := readJSON(s, employeesFile, &emps); err != nil {
		return nil, err
	}
	return emps, nil
}

func (s *JSONStore) Employee(id string) (model.Employee, bool, error) {
	emps, err := s.Employees()
	if err != nil {
		return model.Employee{}, false, err
	}
	for _, e := range emps {
		if e.ID == id {
			return e, true, nil
		}
	}
	return model.Employee{}, false, nil
}

func (s *JSONStore) AddEmployee(e model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emps, err := s.employeesLocked()
	if err != nil {
		return err
	}
	emps = append(emps, e)
	return writeJSON(s, employeesFile, emps)
}

func (s *JSONStore) UpdateEmployee(e model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emps, err := s.employeesLocked()
	if err != nil {
		return err
	}
	for i := range emps {
		if emps[i].ID == e.ID {
			emps[i] = e
			break
		}
	}
	return writeJSON(s, employeesFile, emps)
}

func (s *JSONStore) DeleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	emps, err := s.employeesLocked()
	if err != nil {
		return err
	}
	kept := emps[:0]
	for _, e := range emps {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return writeJSON(s, employeesFile, kept)
}

func (s *JSONStore) Absences() ([]model.EmployeeAbsence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.absencesLocked()
}

func (s *JSONStore) absencesLocked() ([]model.EmployeeAbsence, error) {
	var abs []model.EmployeeAbsence
	if _, err := readJSON(s, absencesFile, &abs); err != nil {
		return nil, err
	}
	return abs, nil
}

func (s *JSONStore) AbsencesForEmployee(employeeID string) ([]model.EmployeeAbsence, error) {
	all, err := s.Absences()
	if err != nil {
		return nil, err
	}
	var out []model.EmployeeAbsence
	for _, a := range all {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *JSONStore) AddAbsence(a model.EmployeeAbsence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	abs, err := s.absencesLocked()
	if err != nil {
		return err
	}
	abs = append(abs, a)
	return writeJSON(s, absencesFile, abs)
}

func (s *JSONStore) DeleteAbsence(employeeID string, day model.Date) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	abs, err := s.absencesLocked()
	if err != nil {
		return err
	}
	kept := abs[:0]
	for _, a := range abs {
		if !(a.EmployeeID == employeeID && a.Date == day) {
			kept = append(kept, a)
		}
	}
	return writeJSON(s, absencesFile, kept)
}

func (s *JSONStore) SaveSchedule(snap model.ScheduleSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap.SavedAt = time.Now()
	return writeJSON(s, scheduleFile, snap)
}

func (s *JSONStore) LoadSchedule() (model.ScheduleSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var snap model.ScheduleSnapshot
	found, err := readJSON(s, scheduleFile, &snap)
	return snap, found, err
}

func (s *JSONStore) ClearSchedule() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path(scheduleFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Close is a no-op for file-backed storage.
func (s *JSONStore) Close() error { return nil }
