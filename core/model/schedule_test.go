package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestScheduledOperationRecordShape(t *testing.T) {
	job := testJob()
	so := ScheduledOperation{
		Operation:        job.Operations[1],
		Job:              &job,
		ScheduledDate:    NewDate(2026, time.September, 7),
		ScheduledEndHour: 4,
		IsLate:           true,
		LatenessHours:    8,
	}

	b, err := json.Marshal(so)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"job_number", "operation_number", "work_center_code",
		"work_center_name", "scheduled_date", "scheduled_hours",
		"is_late", "lateness_hours",
	} {
		if _, ok := m[key]; !ok {
			t.Fatalf("missing key %q in %s", key, b)
		}
	}
	if m["job_number"] != "J001" || m["scheduled_hours"] != 4.0 {
		t.Fatalf("unexpected record: %s", b)
	}
}

func TestScheduleSnapshotRoundTrip(t *testing.T) {
	job := testJob()
	result := &ScheduleResult{
		ScheduledOperations: []ScheduledOperation{
			{
				Operation:        job.Operations[0],
				Job:              &job,
				ScheduledDate:    NewDate(2026, time.September, 7),
				ScheduledEndHour: 2,
			},
		},
		JobsOnTime:   1,
		BlockedJobs:  []string{"J099"},
		ScheduleDate: NewDate(2026, time.September, 7),
		Notes:        []string{"1 jobs have open shortages and are blocked"},
	}

	snap := result.Snapshot()
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ScheduleSnapshot
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ScheduleDate != snap.ScheduleDate || back.JobsOnTime != 1 {
		t.Fatalf("round trip changed header: %+v", back)
	}
	if len(back.ScheduledOperations) != 1 || back.ScheduledOperations[0] != snap.ScheduledOperations[0] {
		t.Fatalf("round trip changed operations: %+v", back.ScheduledOperations)
	}
	if len(back.BlockedJobs) != 1 || back.BlockedJobs[0] != "J099" {
		t.Fatalf("round trip changed blocked jobs: %v", back.BlockedJobs)
	}
}

func TestScheduleResultCompletionDate(t *testing.T) {
	job := testJob()
	result := &ScheduleResult{
		ScheduledOperations: []ScheduledOperation{
			{Operation: job.Operations[0], Job: &job, ScheduledDate: NewDate(2026, time.September, 7)},
			{Operation: job.Operations[1], Job: &job, ScheduledDate: NewDate(2026, time.September, 9)},
		},
	}
	got, ok := result.CompletionDate("J001")
	if !ok || got != NewDate(2026, time.September, 9) {
		t.Fatalf("expected latest date got %s ok=%v", got, ok)
	}
	if _, ok := result.CompletionDate("J999"); ok {
		t.Fatalf("unknown job must report not found")
	}
}
