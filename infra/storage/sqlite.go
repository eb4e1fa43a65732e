package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dsisolutions/shopsched/core/model"
)

// SQLiteStore persists overlays to a SQLite database. Entities are kept
// as JSON records with indexed key columns.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures the
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `
    CREATE TABLE IF NOT EXISTS job_priorities (
        job_number TEXT PRIMARY KEY,
        priority INTEGER NOT NULL
    );
    CREATE TABLE IF NOT EXISTS jobs (
        job_number TEXT PRIMARY KEY,
        record TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS shortages (
        id TEXT PRIMARY KEY,
        job_number TEXT NOT NULL,
        status TEXT NOT NULL,
        record TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS employees (
        id TEXT PRIMARY KEY,
        record TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS absences (
        employee_id TEXT NOT NULL,
        day TEXT NOT NULL,
        record TEXT NOT NULL,
        PRIMARY KEY (employee_id, day)
    );
    CREATE TABLE IF NOT EXISTS schedule (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        saved_at INTEGER NOT NULL,
        record TEXT NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) JobPriority(jobNumber string) (int, bool, error) {
	var p int
	err := s.db.QueryRow(`SELECT priority FROM job_priorities WHERE job_number = ?`, jobNumber).Scan(&p)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return p, true, nil
}

func (s *SQLiteStore) SetJobPriority(jobNumber string, priority int) error {
	_, err := s.db.Exec(
		`INSERT INTO job_priorities (job_number, priority) VALUES (?, ?)
         ON CONFLICT(job_number) DO UPDATE SET priority = excluded.priority`,
		jobNumber, priority)
	return err
}

func (s *SQLiteStore) RemoveJobPriority(jobNumber string) error {
	_, err := s.db.Exec(`DELETE FROM job_priorities WHERE job_number = ?`, jobNumber)
	return err
}

func (s *SQLiteStore) JobPriorities() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT job_number, priority FROM job_priorities`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	priorities := make(map[string]int)
	for rows.Next() {
		var job string
		var p int
		if err := rows.Scan(&job, &p); err != nil {
			return nil, err
		}
		priorities[job] = p
	}
	return priorities, rows.Err()
}

func (s *SQLiteStore) ClearJobPriorities() error {
	_, err := s.db.Exec(`DELETE FROM job_priorities`)
	return err
}

func (s *SQLiteStore) Jobs() ([]model.Job, error) {
	rows, err := s.db.Query(`SELECT record FROM jobs ORDER BY job_number`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var jobs []model.Job
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var job model.Job
		if err := json.Unmarshal([]byte(rec), &job); err != nil {
			return nil, fmt.Errorf("decode job record: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) SaveJobs(jobs []model.Job) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM jobs`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, job := range jobs {
		b, err := json.Marshal(job)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		if _, err := tx.Exec(`INSERT INTO jobs (job_number, record) VALUES (?, ?)`, job.JobNumber, string(b)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ClearJobs() error {
	_, err := s.db.Exec(`DELETE FROM jobs`)
	return err
}

func (s *SQLiteStore) HasJobs() (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLiteStore) Shortages(status model.ShortageStatus) ([]model.Shortage, error) {
	query := `SELECT record FROM shortages ORDER BY id`
	args := []any{}
	if status != "" {
		query = `SELECT record FROM shortages WHERE status = ? ORDER BY id`
		args = append(args, string(status))
	}
	return s.queryShortages(query, args...)
}

func (s *SQLiteStore) ShortagesForJob(jobNumber string) ([]model.Shortage, error) {
	return s.queryShortages(`SELECT record FROM shortages WHERE job_number = ? ORDER BY id`, jobNumber)
}

func (s *SQLiteStore) queryShortages(query string, args ...any) ([]model.Shortage, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var shortages []model.Shortage
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var sh model.Shortage
		if err := json.Unmarshal([]byte(rec), &sh); err != nil {
			return nil, fmt.Errorf("decode shortage record: %w", err)
		}
		shortages = append(shortages, sh)
	}
	return shortages, rows.Err()
}

func (s *SQLiteStore) AddShortage(sh model.Shortage) error {
	b, err := json.Marshal(sh)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO shortages (id, job_number, status, record) VALUES (?, ?, ?, ?)`,
		sh.ID, sh.JobNumber, string(sh.Status), string(b))
	return err
}

func (s *SQLiteStore) UpdateShortage(sh model.Shortage) error {
	b, err := json.Marshal(sh)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`UPDATE shortages SET job_number = ?, status = ?, record = ? WHERE id = ?`,
		sh.JobNumber, string(sh.Status), string(b), sh.ID)
	return err
}

func (s *SQLiteStore) DeleteShortage(id string) error {
	_, err := s.db.Exec(`DELETE FROM shortages WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ResolveShortage(id string) error {
	shortages, err := s.queryShortages(`SELECT record FROM shortages WHERE id = ?`, id)
	if err != nil || len(shortages) == 0 {
		return err
	}
	sh := shortages[0]
	sh.Status = model.ShortageResolved
	return s.UpdateShortage(sh)
}

func (s *SQLiteStore) OpenShortageJobNumbers() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT DISTINCT job_number FROM shortages WHERE status = ?`, string(model.ShortageOpen))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	jobs := make(map[string]struct{})
	for rows.Next() {
		var job string
		if err := rows.Scan(&job); err != nil {
			return nil, err
		}
		jobs[job] = struct{}{}
	}
	return jobs, rows.Err()
}

func (s *SQLiteStore) Employees() ([]model.Employee, error) {
	rows, err := s.db.Query(`SELECT record FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var emps []model.Employee
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var e model.Employee
		if err := json.Unmarshal([]byte(rec), &e); err != nil {
			return nil, fmt.Errorf("decode employee record: %w", err)
		}
		emps = append(emps, e)
	}
	return emps, rows.Err()
}

func (s *SQLiteStore) Employee(id string) (model.Employee, bool, error) {
	var rec string
	err := s.db.QueryRow(`SELECT record FROM employees WHERE id = ?`, id).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Employee{}, false, nil
	}
	if err != nil {
		return model.Employee{}, false, err
	}
	var e model.Employee
	if err := json.Unmarshal([]byte(rec), &e); err != nil {
		return model.Employee{}, false, fmt.Errorf("decode employee record: %w", err)
	}
	return e, true, nil
}

func (s *SQLiteStore) AddEmployee(e model.Employee) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO employees (id, record) VALUES (?, ?)`, e.ID, string(b))
	return err
}

func (s *SQLiteStore) UpdateEmployee(e model.Employee) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE employees SET record = ? WHERE id = ?`, string(b), e.ID)
	return err
}

func (s *SQLiteStore) DeleteEmployee(id string) error {
	_, err := s.db.Exec(`DELETE FROM employees WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) Absences() ([]model.EmployeeAbsence, error) {
	return s.queryAbsences(`SELECT record FROM absences ORDER BY employee_id, day`)
}

func (s *SQLiteStore) AbsencesForEmployee(employeeID string) ([]model.EmployeeAbsence, error) {
	return s.queryAbsences(`SELECT record FROM absences WHERE employee_id = ? ORDER BY day`, employeeID)
}

func (s *SQLiteStore) queryAbsences(query string, args ...any) ([]model.EmployeeAbsence, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var abs []model.EmployeeAbsence
	for rows.Next() {
		var rec string
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		var a model.EmployeeAbsence
		if err := json.Unmarshal([]byte(rec), &a); err != nil {
			return nil, fmt.Errorf("decode absence record: %w", err)
		}
		abs = append(abs, a)
	}
	return abs, rows.Err()
}

func (s *SQLiteStore) AddAbsence(a model.EmployeeAbsence) error {
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO absences (employee_id, day, record) VALUES (?, ?, ?)
         ON CONFLICT(employee_id, day) DO UPDATE SET record = excluded.record`,
		a.EmployeeID, a.Date.String(), string(b))
	return err
}

func (s *SQLiteStore) DeleteAbsence(employeeID string, day model.Date) error {
	_, err := s.db.Exec(`DELETE FROM absences WHERE employee_id = ? AND day = ?`, employeeID, day.String())
	return err
}

func (s *SQLiteStore) SaveSchedule(snap model.ScheduleSnapshot) error {
	snap.SavedAt = time.Now()
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO schedule (id, saved_at, record) VALUES (1, ?, ?)
         ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at, record = excluded.record`,
		snap.SavedAt.Unix(), string(b))
	return err
}

func (s *SQLiteStore) LoadSchedule() (model.ScheduleSnapshot, bool, error) {
	var rec string
	err := s.db.QueryRow(`SELECT record FROM schedule WHERE id = 1`).Scan(&rec)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ScheduleSnapshot{}, false, nil
	}
	if err != nil {
		return model.ScheduleSnapshot{}, false, err
	}
	var snap model.ScheduleSnapshot
	if err := json.Unmarshal([]byte(rec), &snap); err != nil {
		return model.ScheduleSnapshot{}, false, fmt.Errorf("decode schedule record: %w", err)
	}
	return snap, true, nil
}

func (s *SQLiteStore) ClearSchedule() error {
	_, err := s.db.Exec(`DELETE FROM schedule`)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
