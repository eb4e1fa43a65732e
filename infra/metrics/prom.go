package metrics

import (
	coremetrics "github.com/dsisolutions/shopsched/core/metrics"
	"github.com/dsisolutions/shopsched/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduling events in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	jobs        *prometheus.GaugeVec
	unscheduled prometheus.Gauge
	blocked     prometheus.Gauge
	duration    prometheus.Histogram
	utilization *prometheus.GaugeVec
	imports     *prometheus.CounterVec
}

// NewPromSink registers scheduling metrics on the default Prometheus
// registerer. The exposition server is started separately on
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"outcome"})
	jobs := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_jobs",
		Help: "Jobs counted by lateness outcome in the latest run",
	}, []string{"outcome"})
	unscheduled := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_unscheduled_operations",
		Help: "Operations that did not fit within the horizon in the latest run",
	})
	blocked := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_blocked_jobs",
		Help: "Jobs excluded from the latest run due to open shortages",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_run_duration_seconds",
		Help:    "Wall time of a scheduling run",
		Buckets: prometheus.DefBuckets,
	})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "work_center_utilization_percent",
		Help: "Per work center and date utilization from the latest run",
	}, []string{"work_center", "date"})
	imports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "csv_imports_total",
		Help: "Total number of CSV imports",
	}, []string{"outcome"})

	collectors := []prometheus.Collector{runs, jobs, unscheduled, blocked, duration, utilization, imports}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			collectors[i] = are.ExistingCollector
		}
	}
	return &PromSink{
		runs:        collectors[0].(*prometheus.CounterVec),
		jobs:        collectors[1].(*prometheus.GaugeVec),
		unscheduled: collectors[2].(prometheus.Gauge),
		blocked:     collectors[3].(prometheus.Gauge),
		duration:    collectors[4].(prometheus.Histogram),
		utilization: collectors[5].(*prometheus.GaugeVec),
		imports:     collectors[6].(*prometheus.CounterVec),
	}, nil
}

// RecordScheduleRun updates run counters and the latest-run gauges.
func (s *PromSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	outcome := "clean"
	if ev.UnscheduledOps > 0 {
		outcome = "partial"
	}
	s.runs.WithLabelValues(outcome).Inc()
	s.jobs.WithLabelValues("on_time").Set(float64(ev.JobsOnTime))
	s.jobs.WithLabelValues("late").Set(float64(ev.JobsLate))
	s.unscheduled.Set(float64(ev.UnscheduledOps))
	s.blocked.Set(float64(ev.BlockedJobs))
	s.duration.Observe(ev.Duration.Seconds())
	return nil
}

// RecordUtilization sets the per-bucket utilization gauges.
func (s *PromSink) RecordUtilization(buckets []model.WorkCenterCapacity) error {
	for _, b := range buckets {
		s.utilization.WithLabelValues(b.WorkCenterCode, b.Date.String()).Set(b.UtilizationPercent)
	}
	return nil
}

// RecordImport increments the import counter.
func (s *PromSink) RecordImport(ev coremetrics.ImportEvent) error {
	outcome := "ok"
	if ev.Errors > 0 {
		outcome = "error"
	}
	s.imports.WithLabelValues(outcome).Inc()
	return nil
}
