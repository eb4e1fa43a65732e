package csvimport

import "strings"

// Internal field names used by the adapter.
const (
	fieldJobNumber      = "job_number"
	fieldStatus         = "status"
	fieldPartNumber     = "part_number"
	fieldQuantity       = "quantity"
	fieldDueDate        = "due_date"
	fieldReleaseDate    = "release_date"
	fieldOperationNum   = "operation_number"
	fieldWorkCenterCode = "work_center_code"
	fieldWorkCenterName = "work_center_name"
	fieldOperationQty   = "operation_quantity"
	fieldUnitProdTime   = "unit_production_time"
	fieldSetupTime      = "setup_time"
	fieldMoveTime       = "move_time"
	fieldOperationMemo  = "operation_memo"
)

// headerFallbacks lists known column-name variations per internal field,
// in preference order. M2M exports use the f-prefixed spellings; the
// rest cover hand-edited files.
var headerFallbacks = map[string][]string{
	fieldJobNumber:      {"fjobno", "jobno", "job_number", "job", "job_num"},
	fieldStatus:         {"fstatus", "status", "job_status"},
	fieldPartNumber:     {"fpartno", "partno", "part_number", "part", "part_num"},
	fieldQuantity:       {"fquantity", "quantity", "qty", "job_quantity"},
	fieldDueDate:        {"fddue_date", "due_date", "fduedate", "due", "ddue"},
	fieldReleaseDate:    {"frel_dt", "release_date", "rel_dt", "frel", "release"},
	fieldOperationNum:   {"foperno", "operno", "operation_number", "oper_no", "oper"},
	fieldWorkCenterCode: {"fpro_id", "pro_id", "work_center_code", "wc", "wc_code"},
	fieldWorkCenterName: {"fcpro_name", "cpro_name", "work_center_name", "wc_name", "pro_name"},
	fieldOperationQty:   {"foperqty", "operqty", "operation_quantity", "oper_qty"},
	fieldUnitProdTime:   {"fuprodtime", "uprodtime", "unit_prod_time", "prod_time", "unit_time"},
	fieldSetupTime:      {"fsetuptime", "setuptime", "setup_time", "setup"},
	fieldMoveTime:       {"fmovetime", "movetime", "move_time", "move"},
	fieldOperationMemo:  {"fopermemo", "opermemo", "operation_memo", "memo", "routing_text"},
}

// essentialFields must resolve to a header for an import to proceed.
var essentialFields = []string{
	fieldJobNumber, fieldPartNumber, fieldQuantity, fieldDueDate, fieldOperationNum,
}

// ColumnMapping resolves internal field names to actual CSV headers
// using per-field fallback lists.
type ColumnMapping struct {
	Headers   []string
	columnMap map[string]int
}

// NewColumnMapping builds a mapping from the header row.
func NewColumnMapping(headers []string) ColumnMapping {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	index := make(map[string]int, len(normalized))
	for i, h := range normalized {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}

	columnMap := make(map[string]int)
	for field, variations := range headerFallbacks {
		for _, v := range variations {
			if i, ok := index[v]; ok {
				columnMap[field] = i
				break
			}
		}
	}
	return ColumnMapping{Headers: normalized, columnMap: columnMap}
}

// Get returns the trimmed value for the internal field from a row, or ""
// when the column is absent.
func (m ColumnMapping) Get(field string, row []string) string {
	i, ok := m.columnMap[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Has reports whether the internal field resolved to a header.
func (m ColumnMapping) Has(field string) bool {
	_, ok := m.columnMap[field]
	return ok
}

// MappedFields returns the internal fields that resolved to a header.
func (m ColumnMapping) MappedFields() []string {
	fields := make([]string, 0, len(m.columnMap))
	for f := range m.columnMap {
		fields = append(fields, f)
	}
	return fields
}

// MissingColumns returns the essential fields that did not resolve.
func (m ColumnMapping) MissingColumns() []string {
	var missing []string
	for _, f := range essentialFields {
		if !m.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}
