// Package domain contains the plan catalog model and handoff schema.
package domain

import (
	"strconv"

	"github.com/streamhaven/dataforge/internal/dataset"
)

const (
	PlanBasic    = "Basic"
	PlanStandard = "Standard"
	PlanPremium  = "Premium"
)

// PlanNames is the fixed plan name set.
var PlanNames = []string{PlanBasic, PlanStandard, PlanPremium}

// Plan is one row of the static subscription plan catalog.
type Plan struct {
	ID    int64   `gorm:"column:plan_id;primaryKey"`
	Name  string  `gorm:"column:name;type:text;not null"`
	Price float64 `gorm:"column:price;not null"`
}

// TableName sets the database table name.
func (Plan) TableName() string { return "plans" }

// Catalog returns the canonical three-row plan catalog.
func Catalog() []Plan {
	return []Plan{
		{ID: 1, Name: PlanBasic, Price: 8.99},
		{ID: 2, Name: PlanStandard, Price: 13.99},
		{ID: 3, Name: PlanPremium, Price: 18.99},
	}
}

// Schema is the fixed handoff column set for plans.
func Schema() dataset.Schema {
	return dataset.Schema{
		Name: "plans",
		Columns: []dataset.Column{
			{Name: "plan_id", Kind: dataset.KindInt},
			{Name: "name", Kind: dataset.KindEnum, Enum: PlanNames},
			{Name: "price", Kind: dataset.KindFloat},
		},
	}
}

// Encode renders plans as an ordered handoff table.
func Encode(rows []Plan) dataset.Table {
	table := dataset.Table{Schema: Schema(), Rows: make([][]string, 0, len(rows))}
	for _, p := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			dataset.FormatFloat(p.Price),
		})
	}
	return table
}
