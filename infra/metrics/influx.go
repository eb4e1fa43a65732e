package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/dsisolutions/shopsched/core/metrics"
	"github.com/dsisolutions/shopsched/core/model"
	"github.com/dsisolutions/shopsched/infra/logger"
)

// InfluxSink writes scheduling events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordScheduleRun writes the run summary as one point.
func (s *InfluxSink) RecordScheduleRun(ev coremetrics.ScheduleRunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("schedule_run").
		AddTag("schedule_date", ev.ScheduleDate.String()).
		AddTag("horizon_days", strconv.Itoa(ev.HorizonDays)).
		AddField("jobs_on_time", ev.JobsOnTime).
		AddField("jobs_late", ev.JobsLate).
		AddField("scheduled_operations", ev.ScheduledOps).
		AddField("unscheduled_operations", ev.UnscheduledOps).
		AddField("blocked_jobs", ev.BlockedJobs).
		AddField("duration_seconds", round3(ev.Duration.Seconds())).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordUtilization writes one point per work-center bucket.
func (s *InfluxSink) RecordUtilization(buckets []model.WorkCenterCapacity) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, b := range buckets {
		p := write.NewPointWithMeasurement("work_center_utilization").
			AddTag("work_center", b.WorkCenterCode).
			AddTag("date", b.Date.String()).
			AddField("available_hours", round3(b.AvailableHours)).
			AddField("scheduled_hours", round3(b.ScheduledHours)).
			AddField("utilization_percent", round3(b.UtilizationPercent)).
			SetTime(time.Now())
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordImport writes the import outcome as one point.
func (s *InfluxSink) RecordImport(ev coremetrics.ImportEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("csv_import").
		AddField("rows", ev.RowCount).
		AddField("jobs_loaded", ev.JobsLoaded).
		AddField("warnings", ev.Warnings).
		AddField("errors", ev.Errors).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
