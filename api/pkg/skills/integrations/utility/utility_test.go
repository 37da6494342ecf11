package utility

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func run(t *testing.T, s *Skills, name string, p map[string]any) (map[string]any, error) {
	t.Helper()

	reg, err := registry.NewBuilder().AddAll(s.Entries()).Build()
	require.NoError(t, err)

	handler, ok := reg.Lookup(name)
	require.True(t, ok, name)

	out, err := handler(context.Background(), p, types.SkillExecutionContext{})
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func TestCalculate(t *testing.T) {
	testCases := []struct {
		name       string
		expression any
		precision  any
		expected   float64
		formatted  string
		expectErr  string
	}{
		{name: "precedence", expression: "2 + 3 * 4", expected: 14, formatted: "2 + 3 * 4 = 14.00"},
		{name: "parentheses", expression: "10 * (5 + 3)", expected: 80, formatted: "10 * (5 + 3) = 80.00"},
		{name: "rounded", expression: "1 / 3", expected: 0.33, formatted: "1 / 3 = 0.33"},
		{name: "precision", expression: "1 / 3", precision: 4, expected: 0.3333, formatted: "1 / 3 = 0.3333"},
		{name: "math functions", expression: "Math.sqrt(16) + Math.pow(2, 3)", precision: 0, expected: 12, formatted: "Math.sqrt(16) + Math.pow(2, 3) = 12"},
		{name: "modulo", expression: "10 % 3", precision: 0, expected: 1, formatted: "10 % 3 = 1"},
		{name: "rejects identifiers", expression: "process.exit(1)", expectErr: "Invalid characters in expression"},
		{name: "rejects strings", expression: `"a" + 1`, expectErr: "Invalid characters in expression"},
		{name: "division by zero", expression: "1 / 0", expectErr: "Invalid mathematical expression"},
		{name: "syntax error", expression: "2 +* 2", expectErr: "Calculation failed"},
		{name: "missing expression", expression: nil, expectErr: "expression is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := map[string]any{}
			if tc.expression != nil {
				p["expression"] = tc.expression
			}
			if tc.precision != nil {
				p["precision"] = tc.precision
			}

			out, err := run(t, New(), SkillCalculate, p)
			if tc.expectErr != "" {
				require.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.InDelta(t, tc.expected, out["result"], 1e-9)
			require.Equal(t, tc.formatted, out["formatted_result"])
		})
	}
}

func TestRandomNumber(t *testing.T) {
	// always pick the upper bound
	s := New(WithRand(func(n int) int { return n - 1 }))

	out, err := run(t, s, SkillRandomNumber, map[string]any{"min": 1, "max": 6, "count": 3})
	require.NoError(t, err)
	require.Equal(t, []int{6, 6, 6}, out["numbers"])
	require.Equal(t, "Generated 3 random numbers: 6, 6, 6", out["summary"])

	out, err = run(t, New(), SkillRandomNumber, map[string]any{"min": 5, "max": 10, "count": 50})
	require.NoError(t, err)
	require.Equal(t, 10, out["count"])
	for _, n := range out["numbers"].([]int) {
		require.GreaterOrEqual(t, n, 5)
		require.LessOrEqual(t, n, 10)
	}

	_, err = run(t, s, SkillRandomNumber, map[string]any{"min": 10, "max": 10})
	require.EqualError(t, err, "Minimum value must be less than maximum value")
}

func TestCurrentDatetime(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 15, 4, 5, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	testCases := []struct {
		name     string
		params   map[string]any
		expected string
	}{
		{name: "default iso", params: map[string]any{}, expected: "2024-01-15T15:04:05.000Z"},
		{name: "human", params: map[string]any{"format": "human", "timezone": "America/New_York"}, expected: "Monday, January 15, 2024 at 10:04:05 AM"},
		{name: "date only", params: map[string]any{"format": "date_only"}, expected: "01/15/2024"},
		{name: "time only", params: map[string]any{"format": "time_only", "timezone": "Asia/Tokyo"}, expected: "12:04:05 AM"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, s, SkillCurrentDatetime, tc.params)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out["datetime"])
			require.Equal(t, fixed.UnixMilli(), out["timestamp"])
		})
	}

	_, err := run(t, s, SkillCurrentDatetime, map[string]any{"timezone": "Mars/Olympus"})
	require.ErrorContains(t, err, "unknown timezone")
}

func TestManipulateText(t *testing.T) {
	testCases := []struct {
		operation string
		text      string
		expected  any
	}{
		{operation: "uppercase", text: "Hello World", expected: "HELLO WORLD"},
		{operation: "lowercase", text: "Hello World", expected: "hello world"},
		{operation: "uppercase", text: "straße", expected: "STRASSE"},
		{operation: "title_case", text: "hELLO wORLD", expected: "Hello World"},
		{operation: "title_case", text: "élan vital-force", expected: "Élan Vital-force"},
		{operation: "reverse", text: "héllo", expected: "olléh"},
		{operation: "word_count", text: "  one two\tthree ", expected: 3},
		{operation: "char_count", text: "héllo", expected: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.operation, func(t *testing.T) {
			out, err := run(t, New(), SkillManipulateText, map[string]any{"text": tc.text, "operation": tc.operation})
			require.NoError(t, err)
			require.Equal(t, tc.expected, out["result"])
			require.Equal(t, tc.text, out["original_text"])
		})
	}

	_, err := run(t, New(), SkillManipulateText, map[string]any{"text": "x", "operation": "shout"})
	require.EqualError(t, err, "Unknown operation: shout")
}

func TestParseURL(t *testing.T) {
	out, err := run(t, New(), SkillParseURL, map[string]any{"url": "https://docs.example.com/path?param=value#section"})
	require.NoError(t, err)
	require.Equal(t, "https:", out["protocol"])
	require.Equal(t, "docs.example.com", out["hostname"])
	require.Equal(t, "443", out["port"])
	require.Equal(t, "/path", out["pathname"])
	require.Equal(t, "?param=value", out["search"])
	require.Equal(t, "#section", out["hash"])
	require.Equal(t, "https://docs.example.com", out["origin"])
	require.Equal(t, true, out["is_secure"])
	require.Equal(t, []string{"docs", "example", "com"}, out["domain_parts"])

	out, err = run(t, New(), SkillParseURL, map[string]any{"url": "http://localhost:3000"})
	require.NoError(t, err)
	require.Equal(t, "3000", out["port"])
	require.Equal(t, "/", out["pathname"])

	_, err = run(t, New(), SkillParseURL, map[string]any{"url": "not a url"})
	require.ErrorContains(t, err, "Invalid URL")
}

func TestDefinitionsMatchHandlers(t *testing.T) {
	entries := New().Entries()
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name] = true
	}

	defs := Definitions()
	require.Len(t, defs, len(entries))
	for _, def := range defs {
		require.True(t, names[def.Name], def.Name)
		require.Empty(t, def.IntegrationType, def.Name)
	}
}
