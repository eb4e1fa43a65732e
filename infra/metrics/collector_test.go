package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dsisolutions/shopsched/core/events"
	coremetrics "github.com/dsisolutions/shopsched/core/metrics"
	"github.com/dsisolutions/shopsched/core/model"
	"github.com/dsisolutions/shopsched/internal/eventbus"
)

type captureSink struct {
	mu      sync.Mutex
	runs    []coremetrics.ScheduleRunEvent
	imports []coremetrics.ImportEvent
}

func (c *captureSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, ev)
	return nil
}

func (c *captureSink) RecordImport(ev coremetrics.ImportEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.imports = append(c.imports, ev)
	return nil
}

func (c *captureSink) counts() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runs), len(c.imports)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestEventCollectorRecordsScheduleRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()
	sink := &captureSink{}
	StartEventCollector(ctx, bus, sink)

	result := &model.ScheduleResult{
		ScheduleDate: model.NewDate(2026, time.September, 7),
		JobsOnTime:   2,
		JobsLate:     1,
	}
	bus.Publish(events.ScheduleCompletedEvent{Result: result, HorizonDays: 30, Duration: time.Second})
	bus.Publish(events.ImportCompletedEvent{RowCount: 12, JobsLoaded: 3})

	waitFor(t, func() bool {
		runs, imports := sink.counts()
		return runs == 1 && imports == 1
	})

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.runs[0].JobsOnTime != 2 || sink.runs[0].HorizonDays != 30 {
		t.Fatalf("unexpected run event %+v", sink.runs[0])
	}
	if sink.imports[0].RowCount != 12 {
		t.Fatalf("unexpected import event %+v", sink.imports[0])
	}
}

func TestEventCollectorNilArgs(t *testing.T) {
	// Must not panic or spin.
	StartEventCollector(context.Background(), nil, nil)
}
