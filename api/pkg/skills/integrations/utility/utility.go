// Package utility holds builtin skills that need no third-party integration.
package utility

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	// timezone names resolve without a system zoneinfo
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/dop251/goja"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/params"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const evalTimeout = time.Second

var (
	// numbers, arithmetic, grouping and Math.* calls only
	expressionPattern = regexp.MustCompile(`^(?:[0-9.+\-*/%(),\s]|Math\.[A-Za-z0-9]+)*$`)
	titleWordPattern  = regexp.MustCompile(`[\p{L}\p{N}_]\S*`)
)

type Skills struct {
	now  func() time.Time
	rand func(n int) int
}

type Option func(*Skills)

// WithClock fixes the time reported by the datetime skill
func WithClock(now func() time.Time) Option {
	return func(s *Skills) { s.now = now }
}

// WithRand replaces the random source, it must return a value in [0, n)
func WithRand(fn func(n int) int) Option {
	return func(s *Skills) { s.rand = fn }
}

func New(opts ...Option) *Skills {
	s := &Skills{now: time.Now, rand: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Skills) Entries() []registry.Entry {
	return []registry.Entry{
		{Name: SkillCalculate, Handler: handler(s.calculate)},
		{Name: SkillRandomNumber, Handler: handler(s.randomNumber)},
		{Name: SkillCurrentDatetime, Handler: handler(s.currentDatetime)},
		{Name: SkillManipulateText, Handler: handler(s.manipulateText)},
		{Name: SkillParseURL, Handler: handler(s.parseURL)},
	}
}

func handler(fn func(ctx context.Context, p params.Params) (any, error)) registry.Handler {
	return func(ctx context.Context, in map[string]any, _ types.SkillExecutionContext) (any, error) {
		return fn(ctx, params.Params(in))
	}
}

func (s *Skills) calculate(ctx context.Context, p params.Params) (any, error) {
	expression, err := p.RequireString("expression")
	if err != nil {
		return nil, err
	}
	precision := p.Int("precision", 2)
	if precision < 0 || precision > 10 {
		return nil, errors.New("precision must be between 0 and 10")
	}

	if !expressionPattern.MatchString(expression) {
		return nil, errors.New("Calculation failed: Invalid characters in expression")
	}

	vm := goja.New()
	timer := time.AfterFunc(evalTimeout, func() { vm.Interrupt("timeout") })
	defer timer.Stop()

	value, err := vm.RunString(expression)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("expression", expression).Msg("error evaluating expression")
		return nil, fmt.Errorf("Calculation failed: %w", err)
	}
	if !goja.IsNumber(value) {
		return nil, errors.New("Calculation failed: Invalid mathematical expression")
	}
	result := value.ToFloat()
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, errors.New("Calculation failed: Invalid mathematical expression")
	}

	formatted := strconv.FormatFloat(result, 'f', precision, 64)
	rounded, _ := strconv.ParseFloat(formatted, 64)
	return map[string]any{
		"expression":       expression,
		"result":           rounded,
		"formatted_result": expression + " = " + formatted,
	}, nil
}

func (s *Skills) randomNumber(_ context.Context, p params.Params) (any, error) {
	if !p.Has("min") || !p.Has("max") {
		return nil, errors.New("min and max are required")
	}
	lo := int(math.Floor(p.Float("min", 0)))
	hi := int(math.Floor(p.Float("max", 0)))
	if lo >= hi {
		return nil, errors.New("Minimum value must be less than maximum value")
	}
	count := p.Limit("count", 1, 10)

	numbers := make([]int, count)
	strs := make([]string, count)
	for i := range numbers {
		numbers[i] = lo + s.rand(hi-lo+1)
		strs[i] = strconv.Itoa(numbers[i])
	}

	summary := "Generated random number: " + strs[0]
	if count > 1 {
		summary = fmt.Sprintf("Generated %d random numbers: %s", count, strings.Join(strs, ", "))
	}
	return map[string]any{
		"numbers": numbers,
		"min":     lo,
		"max":     hi,
		"count":   count,
		"summary": summary,
	}, nil
}

func (s *Skills) currentDatetime(_ context.Context, p params.Params) (any, error) {
	timezone := p.String("timezone")
	if timezone == "" {
		timezone = "UTC"
	}
	format := p.String("format")
	if format == "" {
		format = "iso"
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("Failed to get current datetime: unknown timezone %q", timezone)
	}
	now := s.now()
	local := now.In(loc)

	var result string
	switch format {
	case "human":
		result = local.Format("Monday, January 2, 2006 at 03:04:05 PM")
	case "date_only":
		result = local.Format("01/02/2006")
	case "time_only":
		result = local.Format("03:04:05 PM")
	default:
		result = now.UTC().Format("2006-01-02T15:04:05.000Z")
	}

	return map[string]any{
		"datetime":  result,
		"timezone":  timezone,
		"format":    format,
		"timestamp": now.UnixMilli(),
	}, nil
}

func (s *Skills) manipulateText(_ context.Context, p params.Params) (any, error) {
	text, ok := p["text"].(string)
	if !ok {
		return nil, errors.New("text is required")
	}
	operation, err := p.RequireString("operation")
	if err != nil {
		return nil, err
	}

	var (
		result      any
		description string
	)
	switch operation {
	case "uppercase":
		result, description = cases.Upper(language.Und).String(text), "Converted to uppercase"
	case "lowercase":
		result, description = cases.Lower(language.Und).String(text), "Converted to lowercase"
	case "title_case":
		// casers are stateful, one pair per call
		upper, lower := cases.Upper(language.Und), cases.Lower(language.Und)
		result = titleWordPattern.ReplaceAllStringFunc(text, func(word string) string {
			_, size := utf8.DecodeRuneInString(word)
			return upper.String(word[:size]) + lower.String(word[size:])
		})
		description = "Converted to title case"
	case "reverse":
		runes := []rune(text)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		result, description = string(runes), "Reversed the text"
	case "word_count":
		result, description = len(strings.Fields(text)), "Counted words"
	case "char_count":
		result, description = utf8.RuneCountInString(text), "Counted characters"
	default:
		return nil, fmt.Errorf("Unknown operation: %s", operation)
	}

	return map[string]any{
		"original_text": text,
		"operation":     operation,
		"result":        result,
		"description":   description,
	}, nil
}

func (s *Skills) parseURL(_ context.Context, p params.Params) (any, error) {
	raw, err := p.RequireString("url")
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("Invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("Invalid URL: %s", raw)
	}

	port := u.Port()
	if port == "" {
		port = "80"
		if u.Scheme == "https" {
			port = "443"
		}
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	search := ""
	if u.RawQuery != "" {
		search = "?" + u.RawQuery
	}
	hash := ""
	if u.Fragment != "" {
		hash = "#" + u.EscapedFragment()
	}

	return map[string]any{
		"original_url": raw,
		"protocol":     u.Scheme + ":",
		"hostname":     u.Hostname(),
		"port":         port,
		"pathname":     path,
		"search":       search,
		"hash":         hash,
		"origin":       u.Scheme + "://" + u.Host,
		"is_secure":    u.Scheme == "https",
		"domain_parts": strings.Split(u.Hostname(), "."),
	}, nil
}
