// Package schema translates the JSON-Schema parameter definitions of skills
// into runtime validators, LLM tool parameter schemas and example payloads.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"

	FormatEmail    = "email"
	FormatURL      = "url"
	FormatURI      = "uri"
	FormatDate     = "date"
	FormatDateTime = "date-time"

	emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`
	datePattern  = `^\d{4}-\d{2}-\d{2}$`
)

var registerFormats sync.Once

// url and uri are not validated by kin-openapi out of the box
func ensureFormats() {
	registerFormats.Do(func() {
		validator := openapi3.NewCallbackValidator(func(value string) error {
			if !IsURL(value) {
				return errors.New("must be an absolute URL")
			}
			return nil
		})
		openapi3.DefineStringFormatValidator(FormatURL, validator)
		openapi3.DefineStringFormatValidator(FormatURI, validator)
	})
}

// IsURL accepts absolute URLs with a scheme and a host
func IsURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// RuntimeSchema is a compiled skill parameter schema
type RuntimeSchema struct {
	schema     *openapi3.Schema
	parameters *types.ParameterSchema
}

// ToRuntimeSchema never fails: missing or malformed input yields an empty
// object schema and unknown property types accept any value.
func ToRuntimeSchema(p *types.ParameterSchema) *RuntimeSchema {
	ensureFormats()

	normalized := normalizeObject(p)
	return &RuntimeSchema{
		schema:     compileObject(normalized),
		parameters: normalized,
	}
}

// Definition is the tool parameter schema handed to the LLM
func (r *RuntimeSchema) Definition() jsonschema.Definition {
	return definition(r.parameters)
}

// Validate checks params against the schema and reports every violation
func (r *RuntimeSchema) Validate(params map[string]any) error {
	if params == nil {
		params = map[string]any{}
	}

	value, err := toJSONValue(params)
	if err != nil {
		return fmt.Errorf("parameters are not valid JSON: %w", err)
	}

	return r.schema.VisitJSON(value,
		openapi3.MultiErrors(),
		openapi3.SetSchemaErrorMessageCustomizer(schemaErrorMessage),
	)
}

func schemaErrorMessage(err *openapi3.SchemaError) string {
	path := strings.Join(err.JSONPointer(), ".")
	reason := err.Reason
	if reason == "" {
		reason = fmt.Sprintf("does not match %q", err.SchemaField)
	}
	if path == "" {
		return reason
	}
	return fmt.Sprintf("%s: %s", path, reason)
}

// toJSONValue turns typed Go values ([]string, structs, ints) into the
// generic shapes kin-openapi understands
func toJSONValue(v any) (any, error) {
	bts, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(bts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeObject(p *types.ParameterSchema) *types.ParameterSchema {
	out := &types.ParameterSchema{
		Type:       TypeObject,
		Properties: map[string]*types.ParameterSchema{},
	}
	if p == nil || len(p.Properties) == 0 {
		if p != nil {
			out.Description = p.Description
		}
		return out
	}

	out.Description = p.Description
	for name, prop := range p.Properties {
		if prop == nil {
			prop = &types.ParameterSchema{}
		}
		out.Properties[name] = normalizeProperty(prop)
	}
	for _, name := range p.Required {
		if _, ok := out.Properties[name]; ok {
			out.Required = append(out.Required, name)
		}
	}
	return out
}

func normalizeProperty(p *types.ParameterSchema) *types.ParameterSchema {
	switch p.Type {
	case TypeString:
		out := *p
		out.Items, out.Properties, out.Required = nil, nil, nil
		if len(out.Enum) == 0 {
			out.Enum = nil
		}
		return &out
	case TypeNumber, TypeInteger, TypeBoolean:
		out := *p
		out.Items, out.Properties, out.Required, out.Enum = nil, nil, nil, nil
		return &out
	case TypeArray:
		out := *p
		out.Properties, out.Required, out.Enum = nil, nil, nil
		if p.Items != nil {
			out.Items = normalizeProperty(p.Items)
		}
		return &out
	case TypeObject:
		obj := normalizeObject(p)
		obj.Example, obj.Default = p.Example, p.Default
		return obj
	default:
		return &types.ParameterSchema{
			Description: p.Description,
			Example:     p.Example,
			Default:     p.Default,
		}
	}
}

func compileObject(p *types.ParameterSchema) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	s.Description = p.Description
	for name, prop := range p.Properties {
		s.WithProperty(name, compileProperty(prop))
	}
	if len(p.Required) > 0 {
		s.WithRequired(p.Required)
	}
	return s
}

func compileProperty(p *types.ParameterSchema) *openapi3.Schema {
	var s *openapi3.Schema

	switch p.Type {
	case TypeString:
		s = compileString(p)
	case TypeNumber:
		s = withBounds(openapi3.NewFloat64Schema(), p)
	case TypeInteger:
		s = withBounds(openapi3.NewIntegerSchema(), p)
	case TypeBoolean:
		s = openapi3.NewBoolSchema()
	case TypeArray:
		s = openapi3.NewArraySchema()
		if p.Items != nil {
			s.WithItems(compileProperty(p.Items))
		}
	case TypeObject:
		s = compileObject(p)
	default:
		s = &openapi3.Schema{}
	}

	s.Description = p.Description
	return s
}

func compileString(p *types.ParameterSchema) *openapi3.Schema {
	if len(p.Enum) > 0 {
		values := make([]any, 0, len(p.Enum))
		for _, v := range p.Enum {
			values = append(values, v)
		}
		return openapi3.NewStringSchema().WithEnum(values...)
	}

	s := openapi3.NewStringSchema()
	switch p.Format {
	case FormatEmail:
		s.WithPattern(emailPattern)
	case FormatURL, FormatURI:
		s.WithFormat(p.Format)
	case FormatDate:
		s.WithPattern(datePattern)
	case FormatDateTime:
		s.WithFormat(FormatDateTime)
	}
	return s
}

func withBounds(s *openapi3.Schema, p *types.ParameterSchema) *openapi3.Schema {
	if p.Minimum != nil {
		s.WithMin(*p.Minimum)
	}
	if p.Maximum != nil {
		s.WithMax(*p.Maximum)
	}
	return s
}

func definition(p *types.ParameterSchema) jsonschema.Definition {
	def := jsonschema.Definition{
		Type:        jsonschema.DataType(p.Type),
		Description: p.Description,
	}

	switch p.Type {
	case TypeString:
		def.Enum = p.Enum
		if p.Format != "" && len(p.Enum) == 0 {
			def.Description = withHint(def.Description, "format: "+p.Format)
		}
	case TypeNumber, TypeInteger:
		def.Description = withHint(def.Description, boundsHint(p))
	case TypeArray:
		if p.Items != nil {
			items := definition(p.Items)
			def.Items = &items
		}
	case TypeObject:
		def.Properties = make(map[string]jsonschema.Definition, len(p.Properties))
		for name, prop := range p.Properties {
			def.Properties[name] = definition(prop)
		}
		def.Required = p.Required
	}

	return def
}

func boundsHint(p *types.ParameterSchema) string {
	switch {
	case p.Minimum != nil && p.Maximum != nil:
		return fmt.Sprintf("between %g and %g", *p.Minimum, *p.Maximum)
	case p.Minimum != nil:
		return fmt.Sprintf("minimum %g", *p.Minimum)
	case p.Maximum != nil:
		return fmt.Sprintf("maximum %g", *p.Maximum)
	}
	return ""
}

// jsonschema.Definition has no format or bounds fields so they ride along in
// the description
func withHint(description, hint string) string {
	switch {
	case hint == "":
		return description
	case description == "":
		return hint
	}
	return description + " (" + hint + ")"
}
