package metrics

import (
	"errors"

	"github.com/dsisolutions/shopsched/core/model"
)

// NopSink discards every event.
type NopSink struct{}

func (NopSink) RecordScheduleRun(ScheduleRunEvent) error { return nil }

// MultiSink fans events out to several sinks, collecting their errors.
type MultiSink struct {
	sinks []MetricsSink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordScheduleRun(ev ScheduleRunEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordScheduleRun(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordUtilization forwards to every sink that records utilization.
func (m *MultiSink) RecordUtilization(buckets []model.WorkCenterCapacity) error {
	var errs []error
	for _, s := range m.sinks {
		if r, ok := s.(UtilizationRecorder); ok {
			if err := r.RecordUtilization(buckets); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordImport forwards to every sink that records imports.
func (m *MultiSink) RecordImport(ev ImportEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if r, ok := s.(ImportRecorder); ok {
			if err := r.RecordImport(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
