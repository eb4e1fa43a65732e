package schedule

import (
	"fmt"
	"sort"

	"github.com/dsisolutions/shopsched/core/logger"
	"github.com/dsisolutions/shopsched/core/model"
)

// Support operations model material staging steps. They consume no
// capacity and are placed instantly on the date the job reaches them.
var supportOperations = map[string]struct{}{
	"STOCK": {},
	"PANEL": {},
}

// IsSupportOperation reports whether the work center is a staging step
// that consumes no capacity.
func IsSupportOperation(workCenter string) bool {
	_, ok := supportOperations[workCenter]
	return ok
}

// Scheduler places job operations into dated work-center buckets using a
// deterministic greedy pass ordered by due date, manual priority and job
// number. Hours consumed by an earlier job in the order are permanently
// unavailable to later jobs within the same run.
type Scheduler struct {
	calc                 *CapacityCalculator
	defaultDailyCapacity float64
	workDayHours         float64
	log                  logger.Logger

	// lastResult is kept by convention for callers that want the most
	// recent run; it carries no semantic weight.
	lastResult *model.ScheduleResult
}

// NewScheduler returns a scheduler using the given capacity calculator.
// A nil calculator makes every bucket fall back to the configured flat
// daily capacity.
func NewScheduler(calc *CapacityCalculator, cfg Config, log logger.Logger) *Scheduler {
	cfg.SetDefaults()
	if log == nil {
		log = logger.Nop{}
	}
	return &Scheduler{
		calc:                 calc,
		defaultDailyCapacity: cfg.DefaultDailyCapacity,
		workDayHours:         cfg.WorkDayHours,
		log:                  log,
	}
}

// LastResult returns the result of the most recent Schedule call, or nil.
func (s *Scheduler) LastResult() *model.ScheduleResult { return s.lastResult }

// Schedule runs one greedy scheduling pass over the given jobs. Jobs in
// the blocked set are placed on startDate without capacity checks and
// excluded from the priority-ordered pass. The per-bucket hours ledger is
// local to this call, so independent runs never interfere.
func (s *Scheduler) Schedule(jobs []model.Job, blocked map[string]struct{}, startDate model.Date, horizonDays int) *model.ScheduleResult {
	if startDate.IsZero() {
		startDate = model.Today()
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	// blocked_jobs is set exactly once here; the passes below must not
	// append to it again.
	result := &model.ScheduleResult{
		BlockedJobs:  sortedSet(blocked),
		ScheduleDate: startDate,
	}

	var active []model.Job
	for _, j := range jobs {
		if j.Status.Active() {
			active = append(active, j)
		}
	}

	workCenters := collectWorkCenters(active)
	capacity := s.buildCapacityMap(workCenters, startDate, horizonDays)

	// Per-run hours ledger, discarded when this call returns.
	ledger := make(map[Bucket]float64)

	for i := range active {
		job := &active[i]
		if _, ok := blocked[job.JobNumber]; !ok {
			continue
		}
		for _, op := range job.Operations {
			result.ScheduledOperations = append(result.ScheduledOperations, model.ScheduledOperation{
				Operation:     op,
				Job:           job,
				ScheduledDate: startDate,
			})
		}
	}

	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ja, jb := active[order[a]], active[order[b]]
		da := ja.DueDate.DaysSince(startDate)
		db := jb.DueDate.DaysSince(startDate)
		if da != db {
			return da < db
		}
		if ja.ManualPriority != jb.ManualPriority {
			return ja.ManualPriority < jb.ManualPriority
		}
		return ja.JobNumber < jb.JobNumber
	})

	for _, idx := range order {
		job := &active[idx]
		if _, ok := blocked[job.JobNumber]; ok {
			continue
		}
		s.scheduleJob(job, startDate, horizonDays, capacity, ledger, result)
	}

	if n := len(result.UnscheduledOperations); n > 0 {
		result.Notes = append(result.Notes,
			fmt.Sprintf("%d operations could not be scheduled (capacity exceeded within horizon)", n))
	}
	if n := len(result.BlockedJobs); n > 0 {
		result.Notes = append(result.Notes,
			fmt.Sprintf("%d jobs have open shortages and are blocked", n))
	}

	s.log.Debugw("schedule pass complete", map[string]any{
		"jobs":        len(active),
		"on_time":     result.JobsOnTime,
		"late":        result.JobsLate,
		"unscheduled": len(result.UnscheduledOperations),
		"blocked":     len(result.BlockedJobs),
	})

	s.lastResult = result
	return result
}

func (s *Scheduler) scheduleJob(job *model.Job, startDate model.Date, horizonDays int, capacity map[Bucket]float64, ledger map[Bucket]float64, result *model.ScheduleResult) {
	currentDate := startDate
	if !job.ReleaseDate.IsZero() && job.ReleaseDate.After(currentDate) {
		currentDate = job.ReleaseDate
	}

	scheduledAny := false
	for _, op := range job.Operations {
		if IsSupportOperation(op.WorkCenterCode) {
			result.ScheduledOperations = append(result.ScheduledOperations, model.ScheduledOperation{
				Operation:     op,
				Job:           job,
				ScheduledDate: currentDate,
			})
			scheduledAny = true
			continue
		}

		hoursNeeded := op.ProductionHours()
		if hoursNeeded <= 0 {
			hoursNeeded = minOperationHours
		}

		scheduledDate, ok := s.findAvailableCapacity(op.WorkCenterCode, currentDate, hoursNeeded, capacity, ledger, horizonDays, startDate)
		if !ok {
			// The operation falls off the horizon; currentDate stays
			// where it was so the job's remaining steps are still tried.
			result.UnscheduledOperations = append(result.UnscheduledOperations, op)
			continue
		}

		isLate := scheduledDate.After(job.DueDate)
		var latenessHours float64
		if isLate {
			latenessHours = float64(scheduledDate.DaysSince(job.DueDate)) * s.workDayHours
		}
		result.ScheduledOperations = append(result.ScheduledOperations, model.ScheduledOperation{
			Operation:        op,
			Job:              job,
			ScheduledDate:    scheduledDate,
			ScheduledEndHour: hoursNeeded,
			IsLate:           isLate,
			LatenessHours:    latenessHours,
		})
		ledger[Bucket{WorkCenter: op.WorkCenterCode, Date: scheduledDate}] += hoursNeeded
		currentDate = scheduledDate
		scheduledAny = true
	}

	if len(job.Operations) == 0 || !scheduledAny {
		return
	}
	completion, _ := result.CompletionDate(job.JobNumber)
	if completion.After(job.DueDate) {
		result.JobsLate++
	} else {
		result.JobsOnTime++
	}
}

// findAvailableCapacity walks forward day by day from earliest, skipping
// weekends, and returns the first date whose remaining capacity covers
// hoursNeeded. The search never passes scheduleStart+horizonDays, which
// bounds the whole run even when capacity is zero everywhere.
func (s *Scheduler) findAvailableCapacity(workCenter string, earliest model.Date, hoursNeeded float64, capacity map[Bucket]float64, ledger map[Bucket]float64, horizonDays int, scheduleStart model.Date) (model.Date, bool) {
	maxDate := scheduleStart.AddDays(horizonDays)
	for i := 0; i < horizonDays; i++ {
		day := earliest.AddDays(i)
		if day.After(maxDate) {
			break
		}
		if day.IsWeekend() {
			continue
		}
		key := Bucket{WorkCenter: workCenter, Date: day}
		available, ok := capacity[key]
		if !ok {
			available = s.defaultDailyCapacity
		}
		if available-ledger[key] >= hoursNeeded {
			return day, true
		}
	}
	return model.Date{}, false
}

func (s *Scheduler) buildCapacityMap(workCenters []string, start model.Date, horizonDays int) map[Bucket]float64 {
	if s.calc != nil {
		return s.calc.CapacityMap(workCenters, start, horizonDays, s.defaultDailyCapacity)
	}
	capacity := make(map[Bucket]float64, len(workCenters)*horizonDays)
	for _, wc := range workCenters {
		for i := 0; i < horizonDays; i++ {
			capacity[Bucket{WorkCenter: wc, Date: start.AddDays(i)}] = s.defaultDailyCapacity
		}
	}
	return capacity
}

func collectWorkCenters(jobs []model.Job) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, j := range jobs {
		for _, op := range j.Operations {
			if _, ok := seen[op.WorkCenterCode]; !ok {
				seen[op.WorkCenterCode] = struct{}{}
				codes = append(codes, op.WorkCenterCode)
			}
		}
	}
	sort.Strings(codes)
	return codes
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
