package engine

import (
	"strconv"

	"github.com/streamhaven/dataforge/internal/validation/domain"
)

// checkReferential runs phase two: every foreign key in subscriptions and
// usage logs must resolve to a parent row that itself survived phase one.
func (e *Engine) checkReferential(parsed map[string]*parsedTable, rep *domain.Report) {
	customers := idSet(parsed["customers"], "customer_id")
	plans := idSet(parsed["plans"], "plan_id")
	content := idSet(parsed["content"], "content_id")

	for _, row := range parsed["subscriptions"].rows {
		e.checkRef(rep, "subscriptions", row, "customer_id", customers, domain.RuleRefCustomer)
		e.checkRef(rep, "subscriptions", row, "plan_id", plans, domain.RuleRefPlan)
	}
	for _, row := range parsed["usage_logs"].rows {
		e.checkRef(rep, "usage_logs", row, "customer_id", customers, domain.RuleRefCustomer)
		e.checkRef(rep, "usage_logs", row, "content_id", content, domain.RuleRefContent)
	}
}

func (e *Engine) checkRef(rep *domain.Report, table string, row parsedRow, field string, parents map[int64]struct{}, rule domain.Rule) {
	id, _ := row.values[field].(int64)
	if _, ok := parents[id]; !ok {
		rep.Reject(domain.Rejection{
			Table:    table,
			RowID:    row.id,
			Rule:     rule,
			Field:    field,
			Expected: "existing parent row",
			Actual:   strconv.FormatInt(id, 10),
		})
		return
	}
	rep.Pass(table, rule)
}

func idSet(pt *parsedTable, field string) map[int64]struct{} {
	set := make(map[int64]struct{}, len(pt.rows))
	for _, row := range pt.rows {
		if id, ok := row.values[field].(int64); ok {
			set[id] = struct{}{}
		}
	}
	return set
}
