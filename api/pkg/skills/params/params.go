// Package params reads loosely typed tool call arguments.
package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Params are the decoded arguments of one tool call. LLMs are sloppy with
// types, so numbers may arrive as strings and lists as comma separated text.
type Params map[string]any

func (p Params) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

func (p Params) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// RequireString fails with "<key> is required" when the value is missing or blank
func (p Params) RequireString(key string) (string, error) {
	s := p.String(key)
	if s == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return s, nil
}

func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case float32:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Strings accepts a JSON array or a comma separated string and drops blanks
func (p Params) Strings(key string) []string {
	var raw []string
	switch v := p[key].(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if item != nil {
				raw = append(raw, fmt.Sprint(item))
			}
		}
	case string:
		raw = strings.Split(v, ",")
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Map returns a nested object argument
func (p Params) Map(key string) map[string]any {
	if m, ok := p[key].(map[string]any); ok {
		return m
	}
	return nil
}

// Limit reads an integer bounded to [1, max], def when absent
func (p Params) Limit(key string, def, max int) int {
	n := p.Int(key, def)
	if n < 1 {
		n = def
	}
	if n > max {
		n = max
	}
	return n
}
