// Package domain contains the content catalog model and handoff schema.
package domain

import (
	"strconv"

	"github.com/streamhaven/dataforge/internal/dataset"
)

const (
	GenreMovie   = "movie"
	GenreMusic   = "music"
	GenrePodcast = "podcast"
)

// Genres is the fixed genre value set.
var Genres = []string{GenreMovie, GenreMusic, GenrePodcast}

// GenreWeights is the target catalog mix.
var GenreWeights = map[string]float64{
	GenreMovie:   0.5,
	GenreMusic:   0.3,
	GenrePodcast: 0.2,
}

// DurationRange bounds duration_minutes per genre, inclusive.
type DurationRange struct {
	Min int
	Max int
}

// DurationRanges maps each genre to its allowed duration range.
var DurationRanges = map[string]DurationRange{
	GenreMovie:   {Min: 80, Max: 160},
	GenreMusic:   {Min: 3, Max: 8},
	GenrePodcast: {Min: 15, Max: 90},
}

// Content is one item of the platform catalog.
type Content struct {
	ID              int64  `gorm:"column:content_id;primaryKey"`
	Title           string `gorm:"column:title;not null"`
	Genre           string `gorm:"column:genre;type:text;not null"`
	DurationMinutes int    `gorm:"column:duration_minutes;not null"`
}

// TableName sets the database table name.
func (Content) TableName() string { return "content" }

// Schema is the fixed handoff column set for content.
func Schema() dataset.Schema {
	return dataset.Schema{
		Name: "content",
		Columns: []dataset.Column{
			{Name: "content_id", Kind: dataset.KindInt},
			{Name: "title", Kind: dataset.KindString},
			{Name: "genre", Kind: dataset.KindEnum, Enum: Genres},
			{Name: "duration_minutes", Kind: dataset.KindInt},
		},
	}
}

// Encode renders content as an ordered handoff table.
func Encode(rows []Content) dataset.Table {
	table := dataset.Table{Schema: Schema(), Rows: make([][]string, 0, len(rows))}
	for _, c := range rows {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Title,
			c.Genre,
			strconv.Itoa(c.DurationMinutes),
		})
	}
	return table
}
