package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dsisolutions/shopsched/core/model"
	"github.com/dsisolutions/shopsched/core/routing"
)

// workCenterNames maps display-name fragments onto canonical codes.
var workCenterNames = []struct {
	key  string
	code string
}{
	{"saw", "SAW"},
	{"burn", "BURN"},
	{"laser", "LASER"},
	{"rad", "RAD"},
	{"lathe", "LATHE"},
	{"3 spindle", "3SPINDLE"},
	{"3spindle", "3SPINDLE"},
	{"mill", "MILL"},
	{"brake", "BRAKE"},
	{"blacky", "BLACKY"},
	{"jackass bender", "JACKBEND"},
	{"jab", "JACKBEND"},
	{"weld", "WELD"},
	{"clean", "CLEAN"},
	{"paint", "PAINT"},
	{"assembly", "ASSEMBLY"},
	{"stockroom", "STOCK"},
	{"panel build", "PANEL"},
	{"panel", "PANEL"},
}

// Result is the outcome of one import.
type Result struct {
	Jobs          []model.Job
	ColumnMapping ColumnMapping
	Warnings      []string
	Errors        []string
	RowCount      int
	JobsLoaded    int
}

// HasErrors reports whether the import produced any errors.
func (r *Result) HasErrors() bool { return len(r.Errors) > 0 }

// Summary returns a one-line overview of the import.
func (r *Result) Summary() string {
	return fmt.Sprintf("Rows processed: %d, Jobs loaded: %d, Warnings: %d, Errors: %d",
		r.RowCount, r.JobsLoaded, len(r.Warnings), len(r.Errors))
}

// Adapter imports M2M routing exports from CSV. It tolerates varying
// column names, optional columns and quoted multiline fields.
type Adapter struct {
	parser routing.Parser
}

// NewAdapter returns an import adapter.
func NewAdapter() *Adapter { return &Adapter{} }

// ImportFile reads and parses a CSV file.
func (a *Adapter) ImportFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer func() { _ = f.Close() }()
	return a.Import(f)
}

// Import reads CSV data from r and builds jobs grouped by job number.
func (a *Adapter) Import(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	result := &Result{}
	if len(records) < 2 {
		result.Errors = append(result.Errors, "No data rows found in CSV")
		return result, nil
	}

	mapping := NewColumnMapping(records[0])
	result.ColumnMapping = mapping

	if missing := mapping.MissingColumns(); len(missing) > 0 {
		result.Errors = append(result.Errors,
			"Missing essential columns: "+strings.Join(missing, ", "))
	}

	rows := records[1:]
	result.RowCount = len(rows)

	// Group rows by job number, preserving first-seen order.
	jobRows := make(map[string][][]string)
	var jobOrder []string
	for i, row := range rows {
		jobNo := mapping.Get(fieldJobNumber, row)
		if jobNo == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Row %d: Missing job number, skipping", i+1))
			continue
		}
		if _, ok := jobRows[jobNo]; !ok {
			jobOrder = append(jobOrder, jobNo)
		}
		jobRows[jobNo] = append(jobRows[jobNo], row)
	}

	for _, jobNo := range jobOrder {
		result.Jobs = append(result.Jobs, a.buildJob(jobNo, jobRows[jobNo], mapping))
	}
	result.JobsLoaded = len(result.Jobs)
	return result, nil
}

func (a *Adapter) buildJob(jobNo string, rows [][]string, mapping ColumnMapping) model.Job {
	first := rows[0]

	dueDate := parseDate(mapping.Get(fieldDueDate, first))
	if dueDate.IsZero() {
		dueDate = model.Today()
	}

	job := model.Job{
		JobNumber:      jobNo,
		PartNumber:     mapping.Get(fieldPartNumber, first),
		Quantity:       parseInt(mapping.Get(fieldQuantity, first)),
		DueDate:        dueDate,
		Status:         model.ParseJobStatus(mapping.Get(fieldStatus, first)),
		ReleaseDate:    parseDate(mapping.Get(fieldReleaseDate, first)),
		ManualPriority: model.DefaultPriority,
	}

	for _, row := range rows {
		if op, ok := a.buildOperation(jobNo, row, mapping); ok {
			job.Operations = append(job.Operations, op)
		}
	}
	sort.SliceStable(job.Operations, func(i, j int) bool {
		return job.Operations[i].OperationNumber < job.Operations[j].OperationNumber
	})
	return job
}

func (a *Adapter) buildOperation(jobNo string, row []string, mapping ColumnMapping) (model.Operation, bool) {
	opNo := parseInt(mapping.Get(fieldOperationNum, row))
	if opNo == 0 {
		// Step zero is a placeholder row, not a routing step.
		return model.Operation{}, false
	}

	wcName := mapping.Get(fieldWorkCenterName, row)
	wcCode := normalizeWorkCenterCode(mapping.Get(fieldWorkCenterCode, row), wcName)
	if wcName == "" {
		wcName = wcCode
	}

	qty := parseInt(mapping.Get(fieldOperationQty, row))
	if qty == 0 {
		qty = parseInt(mapping.Get(fieldQuantity, row))
	}

	memo := mapping.Get(fieldOperationMemo, row)
	op := model.Operation{
		JobNumber:         jobNo,
		OperationNumber:   opNo,
		WorkCenterCode:    wcCode,
		WorkCenterName:    wcName,
		Quantity:          qty,
		UnitProdTimeHours: parseFloat(mapping.Get(fieldUnitProdTime, row)),
		SetupTimeHours:    parseFloat(mapping.Get(fieldSetupTime, row)),
		MoveTimeHours:     parseFloat(mapping.Get(fieldMoveTime, row)),
		OperationMemo:     memo,
	}
	if memo != "" {
		data := a.parser.Parse(memo)
		op.RoutingText = &data
	}
	return op, true
}

// normalizeWorkCenterCode cleans a raw code, deriving one from the
// display name when the code column is empty.
func normalizeWorkCenterCode(code, displayName string) string {
	if code == "" {
		nameLower := strings.ToLower(displayName)
		for _, wc := range workCenterNames {
			if strings.Contains(nameLower, wc.key) {
				return wc.code
			}
		}
		if displayName != "" {
			return strings.ToUpper(displayName)
		}
		return "UNKNOWN"
	}

	clean := strings.ToUpper(strings.TrimSpace(code))
	if len(clean) <= 4 {
		return clean
	}
	cleanLower := strings.ToLower(clean)
	for _, wc := range workCenterNames {
		if strings.Contains(cleanLower, wc.key) {
			return wc.code
		}
	}
	return clean
}

// Date layouts seen across exports, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
}

func parseDate(s string) model.Date {
	if s == "" {
		return model.Date{}
	}
	for _, layout := range dateLayouts {
		if d, err := model.ParseDateLayout(s, layout); err == nil {
			return d
		}
	}
	return model.Date{}
}

var (
	nonNumeric    = regexp.MustCompile(`[^\d.\-]`)
	nonNumericInt = regexp.MustCompile(`[^\d]`)
)

func parseFloat(s string) float64 {
	cleaned := nonNumeric.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	cleaned := nonNumericInt.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return v
}

// WorkCenters returns the sorted distinct work-center codes used by jobs.
func WorkCenters(jobs []model.Job) []string {
	seen := make(map[string]struct{})
	var codes []string
	for _, j := range jobs {
		for _, op := range j.Operations {
			if _, ok := seen[op.WorkCenterCode]; !ok {
				seen[op.WorkCenterCode] = struct{}{}
				codes = append(codes, op.WorkCenterCode)
			}
		}
	}
	sort.Strings(codes)
	return codes
}
