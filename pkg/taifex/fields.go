package taifex

import (
	"strings"

	"github.com/guregu/null/v5"
)

// Logical bulk feed fields.
const (
	FieldDate     = "date"
	FieldContract = "contract"
	FieldMonth    = "month"
	FieldClose    = "close"
	FieldVolume   = "volume"
	FieldSession  = "session"
)

// FieldSpec maps a logical field onto header candidates. The first candidate
// contained in any header wins.
type FieldSpec struct {
	Name       string
	Candidates []string
	Required   bool
}

// BulkFieldSpecs is the header mapping for the DailyMarketReportFut feed.
var BulkFieldSpecs = []FieldSpec{
	{Name: FieldDate, Candidates: []string{"日期"}, Required: true},
	{Name: FieldContract, Candidates: []string{"契約"}, Required: true},
	{Name: FieldMonth, Candidates: []string{"到期月份"}, Required: true},
	{Name: FieldClose, Candidates: []string{"最後成交價"}, Required: true},
	{Name: FieldVolume, Candidates: []string{"合計成交量"}, Required: true},
	{Name: FieldSession, Candidates: []string{"交易時段"}},
}

// FieldMap holds resolved column indexes keyed by logical field name.
type FieldMap map[string]int

// Index returns the column for name, or -1 when it was not resolved.
func (m FieldMap) Index(name string) int {
	if idx, ok := m[name]; ok {
		return idx
	}
	return -1
}

// BulkRow is one feed record reduced to the fields the selector needs.
type BulkRow struct {
	Date          string
	Contract      string
	ContractMonth string
	Session       string
	Close         null.Float
	Volume        null.Float
}

// ResolveFields locates each spec in header. Missing required fields are
// reported together in a *SchemaMismatchError.
func ResolveFields(header []string, specs []FieldSpec) (FieldMap, error) {
	fields := make(FieldMap, len(specs))
	var missing []string
	for _, spec := range specs {
		idx := findColumn(header, spec.Candidates)
		if idx < 0 {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		fields[spec.Name] = idx
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing, Header: append([]string(nil), header...)}
	}
	return fields, nil
}

// findColumn returns the first header that contains any candidate, scanning
// headers in order for each candidate in priority order.
func findColumn(header []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, h := range header {
			if strings.Contains(h, candidate) {
				return i
			}
		}
	}
	return -1
}

// SessionMatches reports whether a feed session label belongs to the
// requested session. Rows without a label belong to every session.
func SessionMatches(text string, afterHours bool) bool {
	s := strings.TrimSpace(text)
	if s == "" {
		return true
	}
	if !afterHours {
		return strings.Contains(s, "一般")
	}
	return strings.Contains(s, "盤後") || strings.Contains(s, "夜盤")
}

// Rows returns the records for symbol in the requested session, in feed order.
func (f *Feed) Rows(symbol string, afterHours bool, fields FieldMap) []BulkRow {
	if f == nil {
		return nil
	}
	rows := make([]BulkRow, 0, len(f.Records))
	for _, record := range f.Records {
		contract := cell(record, fields.Index(FieldContract))
		if contract != symbol {
			continue
		}
		session := cell(record, fields.Index(FieldSession))
		if !SessionMatches(session, afterHours) {
			continue
		}
		rows = append(rows, BulkRow{
			Date:          NormalizeDate(cell(record, fields.Index(FieldDate))),
			Contract:      contract,
			ContractMonth: cell(record, fields.Index(FieldMonth)),
			Session:       session,
			Close:         ParseNumber(cell(record, fields.Index(FieldClose))),
			Volume:        ParseNumber(cell(record, fields.Index(FieldVolume))),
		})
	}
	return rows
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
