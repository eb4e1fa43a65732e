package schedule

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/dsisolutions/shopsched/core/model"
)

// maxBottlenecks caps how many work centers a bottleneck report returns.
const maxBottlenecks = 5

// CalculateUtilization computes per-day utilization for every work
// center over the window [startDate, startDate+numDays). The result is
// derived from an existing run and does not mutate it.
func (s *Scheduler) CalculateUtilization(result *model.ScheduleResult, workCenters []string, startDate model.Date, numDays int) []model.WorkCenterCapacity {
	var buckets []model.WorkCenterCapacity
	for _, wc := range workCenters {
		for i := 0; i < numDays; i++ {
			day := startDate.AddDays(i)

			var scheduled float64
			for _, so := range result.ScheduledOperations {
				if so.Operation.WorkCenterCode == wc && so.ScheduledDate == day {
					scheduled += so.ScheduledHours()
				}
			}

			available := s.defaultDailyCapacity
			if s.calc != nil {
				available = s.calc.Capacity(wc, day, s.defaultDailyCapacity)
			}

			var percent float64
			if available > 0 {
				percent = scheduled / available * 100
			}
			buckets = append(buckets, model.WorkCenterCapacity{
				WorkCenterCode:     wc,
				Date:               day,
				AvailableHours:     available,
				ScheduledHours:     scheduled,
				UtilizationPercent: percent,
			})
		}
	}
	return buckets
}

// WorkCenterLoad is total scheduled hours for one work center.
type WorkCenterLoad struct {
	WorkCenterCode string  `json:"work_center_code"`
	TotalHours     float64 `json:"total_hours"`
}

// BottleneckWorkCenters returns up to five work centers carrying the most
// scheduled hours, heaviest first. threshold is accepted for interface
// compatibility but is currently informational only.
func (s *Scheduler) BottleneckWorkCenters(result *model.ScheduleResult, threshold float64) []WorkCenterLoad {
	_ = threshold
	hours := make(map[string]float64)
	for _, so := range result.ScheduledOperations {
		hours[so.Operation.WorkCenterCode] += so.ScheduledHours()
	}

	loads := make([]WorkCenterLoad, 0, len(hours))
	for wc, h := range hours {
		loads = append(loads, WorkCenterLoad{WorkCenterCode: wc, TotalHours: h})
	}
	sort.Slice(loads, func(a, b int) bool {
		if loads[a].TotalHours != loads[b].TotalHours {
			return loads[a].TotalHours > loads[b].TotalHours
		}
		return loads[a].WorkCenterCode < loads[b].WorkCenterCode
	})

	if len(loads) > maxBottlenecks {
		loads = loads[:maxBottlenecks]
	}
	return loads
}

// Explain produces human-readable rationale lines for one job's place in
// the schedule.
func (s *Scheduler) Explain(job model.Job, result *model.ScheduleResult) []string {
	var lines []string

	scheduled := result.OperationsForJob(job.JobNumber)
	if len(scheduled) == 0 {
		lines = append(lines, fmt.Sprintf("Job %s could not be scheduled", job.JobNumber))
		if result.IsBlocked(job.JobNumber) {
			lines = append(lines, "Reason: Job has open shortages and is blocked")
		}
		return lines
	}

	completion, _ := result.CompletionDate(job.JobNumber)
	if completion.After(job.DueDate) {
		daysLate := completion.DaysSince(job.DueDate)
		lines = append(lines, fmt.Sprintf(
			"Job %s is projected to be %d day(s) late (due: %s, projected completion: %s)",
			job.JobNumber, daysLate, job.DueDate, completion))
	} else {
		daysBefore := job.DueDate.DaysSince(completion)
		lines = append(lines, fmt.Sprintf(
			"Job %s is projected to complete %d day(s) before due date",
			job.JobNumber, daysBefore))
	}

	if job.ManualPriority < model.DefaultPriority {
		lines = append(lines, fmt.Sprintf("Job has manual priority override (%d)", job.ManualPriority))
	}

	last := scheduled[len(scheduled)-1]
	if last.IsLate {
		lines = append(lines, fmt.Sprintf(
			"Last operation (%s) scheduled for %s due to capacity",
			last.Operation.WorkCenterName, last.ScheduledDate))
	}

	return lines
}

// UtilizationSummary aggregates a utilization window into headline
// statistics.
type UtilizationSummary struct {
	MeanPercent   float64 `json:"mean_percent"`
	StdDevPercent float64 `json:"stddev_percent"`
	PeakPercent   float64 `json:"peak_percent"`
	P95Percent    float64 `json:"p95_percent"`
}

// SummarizeUtilization reduces per-bucket utilization to mean, standard
// deviation, peak and 95th percentile.
func SummarizeUtilization(buckets []model.WorkCenterCapacity) UtilizationSummary {
	if len(buckets) == 0 {
		return UtilizationSummary{}
	}
	percents := make([]float64, len(buckets))
	for i, b := range buckets {
		percents[i] = b.UtilizationPercent
	}
	sort.Float64s(percents)

	var stddev float64
	if len(percents) > 1 {
		stddev = stat.StdDev(percents, nil)
	}
	return UtilizationSummary{
		MeanPercent:   stat.Mean(percents, nil),
		StdDevPercent: stddev,
		PeakPercent:   percents[len(percents)-1],
		P95Percent:    stat.Quantile(0.95, stat.Empirical, percents, nil),
	}
}
