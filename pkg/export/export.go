package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/dsisolutions/shopsched/core/model"
)

// WriteJSON writes the schedule snapshot to w in JSON format.
func WriteJSON(w io.Writer, snap model.ScheduleSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// WriteCSV writes the scheduled operations to w in CSV format.
func WriteCSV(w io.Writer, snap model.ScheduleSnapshot) error {
	cw := csv.NewWriter(w)
	header := []string{
		"job_number", "operation_number", "work_center_code",
		"work_center_name", "scheduled_date", "scheduled_hours",
		"is_late", "lateness_hours",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, op := range snap.ScheduledOperations {
		rec := []string{
			op.JobNumber,
			strconv.Itoa(op.OperationNumber),
			op.WorkCenterCode,
			op.WorkCenterName,
			op.ScheduledDate.String(),
			strconv.FormatFloat(op.ScheduledHours, 'f', -1, 64),
			strconv.FormatBool(op.IsLate),
			strconv.FormatFloat(op.LatenessHours, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUtilizationCSV writes per-work-center utilization rows to w.
func WriteUtilizationCSV(w io.Writer, caps []model.WorkCenterCapacity) error {
	cw := csv.NewWriter(w)
	header := []string{
		"work_center_code", "date", "available_hours",
		"scheduled_hours", "utilization_percent",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range caps {
		rec := []string{
			c.WorkCenterCode,
			c.Date.String(),
			strconv.FormatFloat(c.AvailableHours, 'f', -1, 64),
			strconv.FormatFloat(c.ScheduledHours, 'f', -1, 64),
			strconv.FormatFloat(c.UtilizationPercent, 'f', 1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
