// Package domain contains the subscription model and handoff schema.
package domain

import (
	"errors"
	"strconv"
	"time"

	"github.com/streamhaven/dataforge/internal/dataset"
)

var ErrMissingCustomers = errors.New("upstream_missing: customers")
var ErrMissingPlans = errors.New("upstream_missing: plans")

// PlanWeights drives the weighted plan pick per subscription.
var PlanWeights = map[int64]float64{
	1: 0.40,
	2: 0.35,
	3: 0.25,
}

// Subscription captures one billing agreement. A customer may hold several
// rows over time (plan changes).
type Subscription struct {
	ID         int64      `gorm:"column:subscription_id;primaryKey"`
	CustomerID int64      `gorm:"column:customer_id;not null;index"`
	PlanID     int64      `gorm:"column:plan_id;not null;index"`
	StartDate  time.Time  `gorm:"column:start_date;not null"`
	EndDate    *time.Time `gorm:"column:end_date"`
	AutoRenew  bool       `gorm:"column:auto_renew;not null"`
}

// TableName sets the database table name.
func (Subscription) TableName() string { return "subscriptions" }

// Active reports whether the subscription window overlaps [from, to].
func (s Subscription) Active(from, to time.Time) bool {
	if s.StartDate.After(to) {
		return false
	}
	return s.EndDate == nil || !s.EndDate.Before(from)
}

// Schema is the fixed handoff column set for subscriptions.
func Schema() dataset.Schema {
	return dataset.Schema{
		Name: "subscriptions",
		Columns: []dataset.Column{
			{Name: "subscription_id", Kind: dataset.KindInt},
			{Name: "customer_id", Kind: dataset.KindInt},
			{Name: "plan_id", Kind: dataset.KindInt},
			{Name: "start_date", Kind: dataset.KindDate},
			{Name: "end_date", Kind: dataset.KindOptionalDate},
			{Name: "auto_renew", Kind: dataset.KindBool},
		},
	}
}

// Encode renders subscriptions as an ordered handoff table.
func Encode(rows []Subscription) dataset.Table {
	table := dataset.Table{Schema: Schema(), Rows: make([][]string, 0, len(rows))}
	for _, s := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(s.ID, 10),
			strconv.FormatInt(s.CustomerID, 10),
			strconv.FormatInt(s.PlanID, 10),
			dataset.FormatDate(s.StartDate),
			dataset.FormatOptionalDate(s.EndDate),
			dataset.FormatBool(s.AutoRenew),
		})
	}
	return table
}
