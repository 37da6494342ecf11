package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var (
	emailRegex = regexp.MustCompile(emailPattern)
	dateRegex  = regexp.MustCompile(datePattern)
)

// ValidationResult lists every problem found with a set of parameters
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateParameters checks params against the skill's parameter schema.
// Parameters that the schema does not describe are allowed.
func ValidateParameters(skill *types.Skill, params map[string]any) ValidationResult {
	errs := []string{}

	var p *types.ParameterSchema
	if skill != nil {
		p = skill.FunctionSchema.Parameters
	}
	if p != nil && p.Type != "" && p.Type != TypeObject {
		errs = append(errs, fmt.Sprintf("Parameters schema must be of type object, got %s", p.Type))
	}
	if p == nil || len(p.Properties) == 0 {
		return result(errs)
	}

	for _, name := range p.Required {
		if v, ok := params[name]; !ok || v == nil {
			errs = append(errs, fmt.Sprintf("Missing required parameter: %s", name))
		}
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := p.Properties[name]
		value := params[name]
		if prop == nil || value == nil {
			continue
		}
		errs = append(errs, validateValue(name, prop, value)...)
	}

	return result(errs)
}

func result(errs []string) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func validateValue(name string, prop *types.ParameterSchema, value any) []string {
	var errs []string

	switch prop.Type {
	case TypeString:
		if _, ok := value.(string); !ok {
			errs = append(errs, fmt.Sprintf("Parameter %s must be a string", name))
		}
	case TypeNumber, TypeInteger:
		if !isNumber(value) {
			errs = append(errs, fmt.Sprintf("Parameter %s must be a number", name))
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			errs = append(errs, fmt.Sprintf("Parameter %s must be a boolean", name))
		}
	case TypeArray:
		if !isArray(value) {
			errs = append(errs, fmt.Sprintf("Parameter %s must be an array", name))
		}
	case TypeObject:
		if !isObject(value) {
			errs = append(errs, fmt.Sprintf("Parameter %s must be an object", name))
		}
	}

	if s, ok := value.(string); ok && prop.Type == TypeString {
		switch prop.Format {
		case FormatEmail:
			if !emailRegex.MatchString(s) {
				errs = append(errs, fmt.Sprintf("Parameter %s must be a valid email address", name))
			}
		case FormatURL, FormatURI:
			if !IsURL(s) {
				errs = append(errs, fmt.Sprintf("Parameter %s must be a valid URL", name))
			}
		case FormatDate:
			if !dateRegex.MatchString(s) {
				errs = append(errs, fmt.Sprintf("Parameter %s must be a valid date in YYYY-MM-DD format", name))
			}
		}
	}

	if len(prop.Enum) > 0 {
		// stored enums are strings, numeric and boolean choices compare by text
		s, ok := value.(string)
		if !ok {
			s = fmt.Sprint(value)
		}
		if !slices.Contains(prop.Enum, s) {
			errs = append(errs, fmt.Sprintf("Parameter %s must be one of: %s", name, strings.Join(prop.Enum, ", ")))
		}
	}

	return errs
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

func isArray(v any) bool {
	kind := reflect.TypeOf(v).Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func isObject(v any) bool {
	rt := reflect.TypeOf(v)
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt.Kind() == reflect.Map || rt.Kind() == reflect.Struct
}
