package render

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Golden(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{
			name:    "students",
			headers: []string{"id", "name", "age", "grade"},
			rows: [][]string{
				{"1", "Ann", "20", "A"},
				{"2", "Bob", "30", "B"},
			},
		},
		{
			name:    "ragged",
			headers: []string{"name", "nope", "id"},
			rows:    [][]string{{"Ann", "1"}},
		},
		{
			name:    "wide",
			headers: []string{"id", "name"},
			rows:    [][]string{{"1", "日本"}},
		},
		{
			name:    "multiline",
			headers: []string{"id", "name"},
			rows:    [][]string{{"1", "Line\nBreak"}},
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Table(&buf, tt.headers, tt.rows, "unused"))
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, []string{"id"}, nil, "No students found!"))
	assert.Equal(t, "No students found!\n", buf.String())
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 0, DisplayWidth(""))
	assert.Equal(t, 3, DisplayWidth("Ann"))
	assert.Equal(t, 6, DisplayWidth("Ökonom"))
	assert.Equal(t, 4, DisplayWidth("日本"))
	assert.Equal(t, 2, DisplayWidth("Ａ"), "fullwidth letter")
}
