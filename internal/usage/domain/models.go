// Package domain contains the usage log model and handoff schema.
package domain

import (
	"errors"
	"strconv"
	"time"

	"github.com/streamhaven/dataforge/internal/dataset"
)

var (
	ErrMissingContent       = errors.New("upstream_missing: content")
	ErrMissingSubscriptions = errors.New("upstream_missing: subscriptions")
	ErrNoEligibleCustomers  = errors.New("no_eligible_customers")
)

// ActivityWeights biases daily customer selection by plan tier.
var ActivityWeights = map[string]float64{
	"Basic":    1.0,
	"Standard": 1.2,
	"Premium":  1.5,
}

// CompletionBounds bounds the watched fraction per plan tier. The raised
// minimum for higher tiers is the skew toward full completion.
var CompletionBounds = map[string][2]float64{
	"Basic":    {0.25, 0.80},
	"Standard": {0.35, 0.90},
	"Premium":  {0.50, 1.00},
}

// UsageLog records one viewing session.
type UsageLog struct {
	ID              int64     `gorm:"column:usage_id;primaryKey"`
	CustomerID      int64     `gorm:"column:customer_id;not null;index"`
	ContentID       int64     `gorm:"column:content_id;not null;index"`
	Timestamp       time.Time `gorm:"column:timestamp;not null"`
	DurationWatched int       `gorm:"column:duration_watched;not null"`
	CompletionRate  float64   `gorm:"column:completion_rate;not null"`
}

// TableName sets the database table name.
func (UsageLog) TableName() string { return "usage_logs" }

// Schema is the fixed handoff column set for usage logs.
func Schema() dataset.Schema {
	return dataset.Schema{
		Name: "usage_logs",
		Columns: []dataset.Column{
			{Name: "usage_id", Kind: dataset.KindInt},
			{Name: "customer_id", Kind: dataset.KindInt},
			{Name: "content_id", Kind: dataset.KindInt},
			{Name: "timestamp", Kind: dataset.KindDateTime},
			{Name: "duration_watched", Kind: dataset.KindInt},
			{Name: "completion_rate", Kind: dataset.KindFloat},
		},
	}
}

// Encode renders usage logs as an ordered handoff table.
func Encode(rows []UsageLog) dataset.Table {
	table := dataset.Table{Schema: Schema(), Rows: make([][]string, 0, len(rows))}
	for _, u := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(u.ID, 10),
			strconv.FormatInt(u.CustomerID, 10),
			strconv.FormatInt(u.ContentID, 10),
			dataset.FormatDateTime(u.Timestamp),
			strconv.Itoa(u.DurationWatched),
			dataset.FormatFloat(u.CompletionRate),
		})
	}
	return table
}
