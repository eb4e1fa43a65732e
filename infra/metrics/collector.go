package metrics

import (
	"context"
	"time"

	"github.com/dsisolutions/shopsched/core/events"
	coremetrics "github.com/dsisolutions/shopsched/core/metrics"
	"github.com/dsisolutions/shopsched/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events. It stops when the context is canceled.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) {
	if bus == nil || sink == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.ScheduleCompletedEvent:
					_ = sink.RecordScheduleRun(coremetrics.ScheduleRunEvent{
						ScheduleDate:   e.Result.ScheduleDate,
						HorizonDays:    e.HorizonDays,
						JobsOnTime:     e.Result.JobsOnTime,
						JobsLate:       e.Result.JobsLate,
						ScheduledOps:   len(e.Result.ScheduledOperations),
						UnscheduledOps: len(e.Result.UnscheduledOperations),
						BlockedJobs:    len(e.Result.BlockedJobs),
						Duration:       e.Duration,
						Time:           time.Now(),
					})
				case events.ImportCompletedEvent:
					if r, ok := sink.(coremetrics.ImportRecorder); ok {
						_ = r.RecordImport(coremetrics.ImportEvent{
							RowCount:   e.RowCount,
							JobsLoaded: e.JobsLoaded,
							Warnings:   e.Warnings,
							Errors:     e.Errors,
							Time:       time.Now(),
						})
					}
				}
			}
		}
	}()
}
