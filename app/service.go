package app

import (
	"context"
	"fmt"
	"time"

	"github.com/dsisolutions/shopsched/config"
	"github.com/dsisolutions/shopsched/core/events"
	coremetrics "github.com/dsisolutions/shopsched/core/metrics"
	"github.com/dsisolutions/shopsched/core/model"
	"github.com/dsisolutions/shopsched/core/schedule"
	"github.com/dsisolutions/shopsched/infra/csvimport"
	"github.com/dsisolutions/shopsched/infra/logger"
	"github.com/dsisolutions/shopsched/infra/metrics"
	"github.com/dsisolutions/shopsched/infra/storage"
	"github.com/dsisolutions/shopsched/internal/eventbus"
)

// Service orchestrates imports, scheduling runs and overlay storage.
type Service struct {
	Store     storage.Store
	Scheduler *schedule.Scheduler

	cfg  *config.Config
	bus  eventbus.EventBus
	sink coremetrics.MetricsSink
	log  logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var store storage.Store
	var err error
	switch cfg.Storage.Backend {
	case "sqlite":
		store, err = storage.NewSQLiteStore(cfg.Storage.Path)
	default:
		store, err = storage.NewJSONStore(cfg.Storage.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}

	svc := &Service{
		Store: store,
		cfg:   cfg,
		bus:   eventbus.New(),
		sink:  sink,
		log:   logg,
	}
	return svc, nil
}

// Start launches the background collectors. It returns immediately;
// the goroutines stop when the context is cancelled.
func (s *Service) Start(ctx context.Context) {
	metrics.StartEventCollector(ctx, s.bus, s.sink)
	if s.cfg.Metrics.PrometheusPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
}

// ImportCSV imports jobs from a CSV export and replaces the stored job
// set when the import produced no errors.
func (s *Service) ImportCSV(path string) (*csvimport.Result, error) {
	adapter := csvimport.NewAdapter()
	result, err := adapter.ImportFile(path)
	if err != nil {
		return nil, err
	}
	if !result.HasErrors() {
		if err := s.Store.SaveJobs(result.Jobs); err != nil {
			return nil, fmt.Errorf("save jobs: %w", err)
		}
	}
	s.bus.Publish(events.ImportCompletedEvent{
		RowCount:   result.RowCount,
		JobsLoaded: result.JobsLoaded,
		Warnings:   len(result.Warnings),
		Errors:     len(result.Errors),
	})
	s.log.Infof("import finished: %s", result.Summary())
	return result, nil
}

// LoadJobs returns the stored jobs with manual priorities applied.
func (s *Service) LoadJobs() ([]model.Job, error) {
	jobs, err := s.Store.Jobs()
	if err != nil {
		return nil, err
	}
	priorities, err := s.Store.JobPriorities()
	if err != nil {
		return nil, err
	}
	storage.ApplyPriorities(jobs, priorities)
	return jobs, nil
}

// RunSchedule runs the scheduler over the stored jobs and persists the
// resulting snapshot. Jobs with open shortages are blocked.
func (s *Service) RunSchedule(startDate model.Date, horizonDays int) (*model.ScheduleResult, error) {
	jobs, err := s.LoadJobs()
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no jobs loaded, import a CSV first")
	}

	blocked, err := s.Store.OpenShortageJobNumbers()
	if err != nil {
		return nil, err
	}
	employees, err := s.Store.Employees()
	if err != nil {
		return nil, err
	}
	absences, err := s.Store.Absences()
	if err != nil {
		return nil, err
	}

	var calc *schedule.CapacityCalculator
	if len(employees) > 0 {
		calc = schedule.NewCapacityCalculator(employees, absences)
	}
	s.Scheduler = schedule.NewScheduler(calc, s.cfg.Scheduler, s.log)

	start := time.Now()
	result := s.Scheduler.Schedule(jobs, blocked, startDate, horizonDays)
	elapsed := time.Since(start)

	if err := s.Store.SaveSchedule(result.Snapshot()); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}

	s.bus.Publish(events.ScheduleCompletedEvent{
		Result:      result,
		HorizonDays: horizonDays,
		Duration:    elapsed,
	})
	return result, nil
}

// Utilization derives the per-work-center load picture for the given
// result over numDays starting at startDate.
func (s *Service) Utilization(result *model.ScheduleResult, workCenters []string, startDate model.Date, numDays int) ([]model.WorkCenterCapacity, error) {
	if s.Scheduler == nil {
		return nil, fmt.Errorf("no scheduling run available")
	}
	buckets := s.Scheduler.CalculateUtilization(result, workCenters, startDate, numDays)
	if rec, ok := s.sink.(coremetrics.UtilizationRecorder); ok {
		if err := rec.RecordUtilization(buckets); err != nil {
			s.log.Warnf("record utilization: %v", err)
		}
	}
	return buckets, nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return s.Store.Close()
}
