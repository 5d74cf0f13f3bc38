// Package dataset defines the handoff format shared by the generators, the
// validation engine, and the store adapter: an ordered sequence of string
// records under a fixed, typed column schema. The first column of every
// table is the row id.
package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the parse rule for a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
	KindDateTime
	KindOptionalDate
	KindBool
	KindEnum
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = time.RFC3339
)

// Column describes one column of a handoff table.
type Column struct {
	Name string
	Kind Kind
	// Enum lists the allowed values when Kind is KindEnum.
	Enum []string
}

// Schema is the fixed, ordered column set of a table.
type Schema struct {
	Name    string
	Columns []Column
}

// ColumnNames returns the ordered column names.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Table is an ordered sequence of string records under a schema.
type Table struct {
	Schema Schema
	Rows   [][]string
}

// RowID parses the id column (always first) of row i. Rows whose id cannot
// be parsed report id 0; the schema phase rejects them separately.
func (t Table) RowID(i int) int64 {
	if i < 0 || i >= len(t.Rows) || len(t.Rows[i]) == 0 {
		return 0
	}
	id, err := strconv.ParseInt(t.Rows[i][0], 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// ParseValue parses a raw cell according to the column kind. It returns the
// typed value (int64, float64, string, bool, time.Time or *time.Time).
func ParseValue(col Column, raw string) (any, error) {
	switch col.Kind {
	case KindString:
		return raw, nil
	case KindInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("expected int, got %q", raw)
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expected float, got %q", raw)
		}
		return v, nil
	case KindDate:
		v, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("expected date, got %q", raw)
		}
		return v, nil
	case KindDateTime:
		v, err := time.Parse(DateTimeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("expected datetime, got %q", raw)
		}
		return v, nil
	case KindOptionalDate:
		if raw == "" {
			return (*time.Time)(nil), nil
		}
		v, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("expected date or empty, got %q", raw)
		}
		return &v, nil
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		default:
			return nil, fmt.Errorf("expected bool, got %q", raw)
		}
	case KindEnum:
		for _, allowed := range col.Enum {
			if raw == allowed {
				return raw, nil
			}
		}
		return nil, fmt.Errorf("value %q not in {%s}", raw, strings.Join(col.Enum, ","))
	default:
		return nil, fmt.Errorf("unknown column kind %d", col.Kind)
	}
}

// FormatDate renders a calendar day in the handoff layout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatOptionalDate renders a nullable day; nil becomes the empty string.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// FormatDateTime renders a timestamp in the handoff layout.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

// FormatBool renders a boolean in the handoff layout.
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}

// FormatFloat renders a rate with two decimals, matching the generators'
// rounding of completion rates.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
