package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValueOptionalDate(t *testing.T) {
	col := Column{Name: "end_date", Kind: KindOptionalDate}

	v, err := ParseValue(col, "")
	require.NoError(t, err)
	assert.Nil(t, v.(*time.Time))

	v, err = ParseValue(col, "2026-03-01")
	require.NoError(t, err)
	require.NotNil(t, v.(*time.Time))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *v.(*time.Time))

	_, err = ParseValue(col, "03/01/2026")
	assert.Error(t, err)
}

func TestParseValueEnum(t *testing.T) {
	col := Column{Name: "genre", Kind: KindEnum, Enum: []string{"movie", "music"}}

	v, err := ParseValue(col, "movie")
	require.NoError(t, err)
	assert.Equal(t, "movie", v)

	_, err = ParseValue(col, "MOVIE")
	assert.Error(t, err, "enum comparison is exact")
}

func TestParseValueBool(t *testing.T) {
	col := Column{Name: "auto_renew", Kind: KindBool}

	for raw, want := range map[string]bool{"true": true, "1": true, "false": false, "no": false} {
		v, err := ParseValue(col, raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, v, raw)
	}

	_, err := ParseValue(col, "maybe")
	assert.Error(t, err)
}

func TestRowID(t *testing.T) {
	table := Table{Rows: [][]string{{"17", "x"}, {"zero", "y"}}}
	assert.EqualValues(t, 17, table.RowID(0))
	assert.EqualValues(t, 0, table.RowID(1))
	assert.EqualValues(t, 0, table.RowID(9))
}

func TestFormatRoundTrips(t *testing.T) {
	day := time.Date(2026, 3, 18, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "2026-03-18", FormatDate(day))
	assert.Equal(t, "", FormatOptionalDate(nil))
	assert.Equal(t, "2026-03-18T15:04:05Z", FormatDateTime(day))
	assert.Equal(t, "0.50", FormatFloat(0.5))
}
