package metrics

import (
	"errors"
	"testing"

	"github.com/dsisolutions/shopsched/core/model"
)

type countingSink struct {
	runs    int
	buckets int
	imports int
	err     error
}

func (c *countingSink) RecordScheduleRun(ScheduleRunEvent) error {
	c.runs++
	return c.err
}

func (c *countingSink) RecordUtilization(b []model.WorkCenterCapacity) error {
	c.buckets += len(b)
	return c.err
}

func (c *countingSink) RecordImport(ImportEvent) error {
	c.imports++
	return c.err
}

func TestMultiSinkFansOut(t *testing.T) {
	s1 := &countingSink{}
	s2 := &countingSink{}
	m := NewMultiSink(s1, s2)

	if err := m.RecordScheduleRun(ScheduleRunEvent{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordUtilization([]model.WorkCenterCapacity{{}, {}}); err != nil {
		t.Fatalf("record utilization: %v", err)
	}
	if err := m.RecordImport(ImportEvent{}); err != nil {
		t.Fatalf("record import: %v", err)
	}
	if s1.runs != 1 || s2.runs != 1 || s1.buckets != 2 || s1.imports != 1 {
		t.Fatalf("events not forwarded: %+v %+v", s1, s2)
	}
}

func TestMultiSinkCollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	m := NewMultiSink(&countingSink{err: boom}, &countingSink{})
	err := m.RecordScheduleRun(ScheduleRunEvent{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error got %v", err)
	}
}

func TestMultiSinkSkipsNonRecorders(t *testing.T) {
	m := NewMultiSink(NopSink{})
	if err := m.RecordUtilization([]model.WorkCenterCapacity{{}}); err != nil {
		t.Fatalf("nop sink must be skipped, got %v", err)
	}
	if err := m.RecordImport(ImportEvent{}); err != nil {
		t.Fatalf("nop sink must be skipped, got %v", err)
	}
}

func TestNewMetricsSinkEmpty(t *testing.T) {
	sink, err := NewMetricsSink(nil)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if _, ok := sink.(NopSink); !ok {
		t.Fatalf("expected NopSink got %T", sink)
	}
}
