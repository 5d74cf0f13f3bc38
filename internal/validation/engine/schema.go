package engine

import (
	"fmt"
	"math"
	"strings"

	contentdomain "github.com/streamhaven/dataforge/internal/content/domain"
	customerdomain "github.com/streamhaven/dataforge/internal/customer/domain"
	"github.com/streamhaven/dataforge/internal/dataset"
	plandomain "github.com/streamhaven/dataforge/internal/plan/domain"
	subscriptiondomain "github.com/streamhaven/dataforge/internal/subscription/domain"
	usagedomain "github.com/streamhaven/dataforge/internal/usage/domain"
	"github.com/streamhaven/dataforge/internal/validation/domain"
)

// expectedSchemas returns the canonical handoff schemas in bundle order.
func expectedSchemas() []dataset.Schema {
	return []dataset.Schema{
		customerdomain.Schema(),
		plandomain.Schema(),
		contentdomain.Schema(),
		subscriptiondomain.Schema(),
		usagedomain.Schema(),
	}
}

// checkSchema runs phase one. Column set or order drift is fatal; a cell
// that fails its type or enum parse rejects the row. Rows that survive are
// parsed into typed values for the later phases. The static plan catalog is
// also verified here since a drifted catalog invalidates every reference to
// it.
func (e *Engine) checkSchema(b *dataset.Bundle, rep *domain.Report) map[string]*parsedTable {
	parsed := make(map[string]*parsedTable, 5)
	expected := expectedSchemas()

	for i, table := range b.Tables() {
		want := expected[i]
		rep.SetRows(want.Name, len(table.Rows))

		if !columnsMatch(table.Schema, want) {
			rep.AddFatal(domain.Fatal{
				Table: want.Name,
				Rule:  domain.RuleColumnSet,
				Detail: fmt.Sprintf("columns [%s], want [%s]",
					strings.Join(table.Schema.ColumnNames(), ","),
					strings.Join(want.ColumnNames(), ","),
				),
			})
			continue
		}

		pt := &parsedTable{schema: want, rows: make([]parsedRow, 0, len(table.Rows))}
		for idx, record := range table.Rows {
			id := table.RowID(idx)
			if len(record) != len(want.Columns) {
				rep.Reject(domain.Rejection{
					Table:    want.Name,
					RowID:    id,
					Rule:     domain.RuleType,
					Expected: fmt.Sprintf("%d cells", len(want.Columns)),
					Actual:   fmt.Sprintf("%d cells", len(record)),
				})
				continue
			}

			values := make(map[string]any, len(want.Columns))
			ok := true
			for c, col := range want.Columns {
				v, err := dataset.ParseValue(col, record[c])
				if err != nil {
					rule := domain.RuleType
					if col.Kind == dataset.KindEnum {
						rule = domain.RuleEnum
					}
					rep.Reject(domain.Rejection{
						Table:  want.Name,
						RowID:  id,
						Rule:   rule,
						Field:  col.Name,
						Actual: record[c],
					})
					ok = false
					break
				}
				values[col.Name] = v
			}
			if !ok {
				continue
			}
			rep.Pass(want.Name, domain.RuleType)
			pt.rows = append(pt.rows, parsedRow{id: id, values: values})
		}
		parsed[want.Name] = pt
	}

	if pt, ok := parsed["plans"]; ok {
		e.checkPlanCatalog(pt, rep)
	}
	return parsed
}

// checkPlanCatalog asserts the plans table is exactly the canonical catalog.
func (e *Engine) checkPlanCatalog(pt *parsedTable, rep *domain.Report) {
	catalog := plandomain.Catalog()
	if len(pt.rows) != len(catalog) {
		rep.AddFatal(domain.Fatal{
			Table:  "plans",
			Rule:   domain.RulePlanCatalog,
			Detail: fmt.Sprintf("%d rows, want %d", len(pt.rows), len(catalog)),
		})
		return
	}
	for i, want := range catalog {
		row := pt.rows[i]
		id, _ := row.values["plan_id"].(int64)
		name, _ := row.values["name"].(string)
		price, _ := row.values["price"].(float64)
		if id != want.ID || name != want.Name || math.Abs(price-want.Price) > 1e-9 {
			rep.AddFatal(domain.Fatal{
				Table: "plans",
				Rule:  domain.RulePlanCatalog,
				Detail: fmt.Sprintf("row %d is (%d,%s,%.2f), want (%d,%s,%.2f)",
					i, id, name, price, want.ID, want.Name, want.Price),
			})
			return
		}
	}
	rep.Pass("plans", domain.RulePlanCatalog)
}

func columnsMatch(got, want dataset.Schema) bool {
	if len(got.Columns) != len(want.Columns) {
		return false
	}
	for i := range want.Columns {
		if got.Columns[i].Name != want.Columns[i].Name {
			return false
		}
	}
	return true
}
