package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/dsisolutions/shopsched/core/model"
)

func sampleSnapshot() model.ScheduleSnapshot {
	return model.ScheduleSnapshot{
		ScheduleDate: model.NewDate(2026, time.September, 7),
		JobsOnTime:   1,
		ScheduledOperations: []model.ScheduledOperationRecord{
			{
				JobNumber:       "J001",
				OperationNumber: 10,
				WorkCenterCode:  "MILL",
				WorkCenterName:  "Vertical Mill",
				ScheduledDate:   model.NewDate(2026, time.September, 7),
				ScheduledHours:  4,
			},
			{
				JobNumber:       "J001",
				OperationNumber: 20,
				WorkCenterCode:  "WELD",
				WorkCenterName:  "Weld Shop",
				ScheduledDate:   model.NewDate(2026, time.September, 8),
				ScheduledHours:  2.5,
				IsLate:          true,
				LatenessHours:   8,
			},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var back model.ScheduleSnapshot
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.JobsOnTime != 1 || len(back.ScheduledOperations) != 2 {
		t.Fatalf("round trip changed snapshot: %+v", back)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows got %d", len(records))
	}
	if records[0][0] != "job_number" {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[2][4] != "2026-09-08" || records[2][6] != "true" {
		t.Fatalf("unexpected row %v", records[2])
	}
}

func TestWriteUtilizationCSV(t *testing.T) {
	caps := []model.WorkCenterCapacity{
		{
			WorkCenterCode:     "MILL",
			Date:               model.NewDate(2026, time.September, 7),
			AvailableHours:     8,
			ScheduledHours:     6,
			UtilizationPercent: 75,
		},
	}
	var buf bytes.Buffer
	if err := WriteUtilizationCSV(&buf, caps); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 || records[1][0] != "MILL" || records[1][4] != "75.0" {
		t.Fatalf("unexpected records %v", records)
	}
}
