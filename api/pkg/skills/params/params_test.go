package params

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	p := Params{
		"name":    "  general ",
		"count":   float64(12),
		"numeric": "7",
		"big":     json.Number("40"),
		"flag":    "true",
		"ids":     []any{"U1", " ", "U2"},
		"csv":     "a, b,,c",
		"nested":  map[string]any{"k": "v"},
		"null":    nil,
	}

	assert.Equal(t, "general", p.String("name"))
	assert.Equal(t, "12", p.String("count"))
	assert.Equal(t, 12, p.Int("count", 0))
	assert.Equal(t, 7, p.Int("numeric", 0))
	assert.Equal(t, 40, p.Int("big", 0))
	assert.Equal(t, 3, p.Int("missing", 3))
	assert.True(t, p.Bool("flag", false))
	assert.True(t, p.Bool("missing", true))
	assert.Equal(t, []string{"U1", "U2"}, p.Strings("ids"))
	assert.Equal(t, []string{"a", "b", "c"}, p.Strings("csv"))
	assert.Equal(t, map[string]any{"k": "v"}, p.Map("nested"))
	assert.False(t, p.Has("null"))
	assert.True(t, p.Has("name"))

	_, err := p.RequireString("null")
	require.EqualError(t, err, "null is required")
}

func TestLimit(t *testing.T) {
	assert.Equal(t, 20, Params{}.Limit("limit", 20, 100))
	assert.Equal(t, 100, Params{"limit": 500}.Limit("limit", 20, 100))
	assert.Equal(t, 20, Params{"limit": -1}.Limit("limit", 20, 100))
	assert.Equal(t, 5, Params{"limit": 5}.Limit("limit", 20, 100))
}
