// Package domain contains the validation taxonomy: rules, findings, the
// per-table report, and the verdict.
package domain

import "errors"

var (
	ErrSchemaViolation   = errors.New("schema_violation")
	ErrUpstreamMissing   = errors.New("upstream_missing")
	ErrToleranceExceeded = errors.New("rejection_tolerance_exceeded")
)

// Verdict is the engine's go/no-go decision.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

// Rule is a reason code attached to every finding.
type Rule string

const (
	RuleColumnSet       Rule = "column_set"
	RuleType            Rule = "type"
	RuleEnum            Rule = "enum"
	RulePlanCatalog     Rule = "plan_catalog"
	RuleRefCustomer     Rule = "ref_customer"
	RuleRefPlan         Rule = "ref_plan"
	RuleRefContent      Rule = "ref_content"
	RuleDateOrder       Rule = "date_order"
	RuleSignupBound     Rule = "signup_bound"
	RuleDurationBound   Rule = "duration_bound"
	RuleCompletionRange Rule = "completion_range"
	RuleTimestampWindow Rule = "timestamp_window"
)

// Rejection is a row-level finding, recoverable by excluding the row.
type Rejection struct {
	Table    string
	RowID    int64
	Rule     Rule
	Field    string
	Expected string
	Actual   string
}

// Fatal is a finding that invalidates the dataset as a whole.
type Fatal struct {
	Table  string
	Rule   Rule
	Detail string
}

// RuleStats counts outcomes of one rule over one table.
type RuleStats struct {
	Rule     Rule
	Checked  int
	Passed   int
	Rejected int
}

// TableReport aggregates outcomes for one table.
type TableReport struct {
	Table       string
	Rows        int
	Rules       []*RuleStats
	rejectedIDs map[int64]struct{}
}

func newTableReport(table string, rows int) *TableReport {
	return &TableReport{
		Table:       table,
		Rows:        rows,
		rejectedIDs: make(map[int64]struct{}),
	}
}

func (t *TableReport) stats(rule Rule) *RuleStats {
	for _, s := range t.Rules {
		if s.Rule == rule {
			return s
		}
	}
	s := &RuleStats{Rule: rule}
	t.Rules = append(t.Rules, s)
	return s
}

// RejectedCount returns the number of distinct rejected rows.
func (t *TableReport) RejectedCount() int {
	return len(t.rejectedIDs)
}

// RejectionRate returns the share of rows rejected, 0 for an empty table.
func (t *TableReport) RejectionRate() float64 {
	if t.Rows == 0 {
		return 0
	}
	return float64(len(t.rejectedIDs)) / float64(t.Rows)
}

// IsRejected reports whether the row id was rejected by any rule.
func (t *TableReport) IsRejected(id int64) bool {
	_, ok := t.rejectedIDs[id]
	return ok
}

// Report is the engine's complete output: verdict, fatal findings, and
// per-table per-rule counts plus the rejected row identifiers.
type Report struct {
	Verdict    Verdict
	Fatals     []Fatal
	Rejections []Rejection
	tables     []*TableReport
}

func NewReport() *Report {
	return &Report{Verdict: VerdictPass}
}

// Table returns (creating if needed) the report section for a table.
func (r *Report) Table(name string) *TableReport {
	for _, t := range r.tables {
		if t.Table == name {
			return t
		}
	}
	t := newTableReport(name, 0)
	r.tables = append(r.tables, t)
	return t
}

// Tables returns the per-table sections in validation order.
func (r *Report) Tables() []*TableReport {
	return r.tables
}

// SetRows records the checked row count for a table.
func (r *Report) SetRows(table string, rows int) {
	r.Table(table).Rows = rows
}

// Pass records a passing check for one rule on one table.
func (r *Report) Pass(table string, rule Rule) {
	s := r.Table(table).stats(rule)
	s.Checked++
	s.Passed++
}

// Reject records a row-level rejection.
func (r *Report) Reject(rej Rejection) {
	t := r.Table(rej.Table)
	s := t.stats(rej.Rule)
	s.Checked++
	s.Rejected++
	t.rejectedIDs[rej.RowID] = struct{}{}
	r.Rejections = append(r.Rejections, rej)
}

// AddFatal records a fatal finding and flips the verdict.
func (r *Report) AddFatal(f Fatal) {
	r.Fatals = append(r.Fatals, f)
	r.Verdict = VerdictFail
}

// HasFatal reports whether any fatal finding was recorded.
func (r *Report) HasFatal() bool {
	return len(r.Fatals) > 0
}
