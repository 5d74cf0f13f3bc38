// Package domain contains the customer table model and handoff schema.
package domain

import (
	"strconv"
	"time"

	"github.com/streamhaven/dataforge/internal/dataset"
)

// DeviceTypes is the fixed device_type value set.
var DeviceTypes = []string{"mobile", "tablet", "desktop", "smart_tv"}

// Countries is the fixed country value set.
var Countries = []string{"United States", "Canada", "United Kingdom", "Australia", "India"}

// Customer is one generated platform account.
type Customer struct {
	ID         int64     `gorm:"column:customer_id;primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Email      string    `gorm:"column:email;not null"`
	SignupDate time.Time `gorm:"column:signup_date;not null"`
	DeviceType string    `gorm:"column:device_type;type:text;not null"`
	Country    string    `gorm:"column:country;type:text;not null"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }

// Schema is the fixed handoff column set for customers.
func Schema() dataset.Schema {
	return dataset.Schema{
		Name: "customers",
		Columns: []dataset.Column{
			{Name: "customer_id", Kind: dataset.KindInt},
			{Name: "name", Kind: dataset.KindString},
			{Name: "email", Kind: dataset.KindString},
			{Name: "signup_date", Kind: dataset.KindDate},
			{Name: "device_type", Kind: dataset.KindEnum, Enum: DeviceTypes},
			{Name: "country", Kind: dataset.KindEnum, Enum: Countries},
		},
	}
}

// Encode renders customers as an ordered handoff table.
func Encode(rows []Customer) dataset.Table {
	table := dataset.Table{Schema: Schema(), Rows: make([][]string, 0, len(rows))}
	for _, c := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			dataset.FormatDate(c.SignupDate),
			c.DeviceType,
			c.Country,
		})
	}
	return table
}
