package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

type SkillType string

const (
	SkillTypeBuiltin SkillType = "builtin"
	SkillTypeCustom  SkillType = "custom"
)

// Skill is a callable capability exposed to the LLM as a tool. Builtin skills
// run in-process, custom skills call a tenant configured webhook.
type Skill struct {
	ID string `json:"id" gorm:"primaryKey"`
	// UserID is the owning tenant, empty for builtin skills seeded from the catalog
	UserID         string         `json:"user_id" gorm:"index:idx_skill_owner_name,unique"`
	Name           string         `json:"name" gorm:"not null;index:idx_skill_owner_name,unique"`
	Type           SkillType      `json:"type" gorm:"not null;type:text;index:idx_skill_owner_name,unique"`
	DisplayName    string         `json:"display_name"`
	Description    string         `json:"description"`
	Category       string         `json:"category" gorm:"index"`
	FunctionSchema FunctionSchema `json:"function_schema" gorm:"type:jsonb;serializer:json"`
	Configuration  map[string]any `json:"configuration" gorm:"type:jsonb;serializer:json"`

	Embedding *pgvector.Vector `json:"-" gorm:"type:vector(1536)"`

	IsActive       bool       `json:"is_active" gorm:"not null"`
	ExecutionCount int        `json:"execution_count" gorm:"not null"`
	LastExecutedAt *time.Time `json:"last_executed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// FunctionSchema is the contract exposed to the LLM tool-calling API
type FunctionSchema struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Parameters  *ParameterSchema `json:"parameters,omitempty"`
}

// ParameterSchema is the JSON-Schema subset skills use to describe their
// parameters. Nested objects and array items reuse the same shape.
type ParameterSchema struct {
	Type        string                      `json:"type,omitempty"`
	Description string                      `json:"description,omitempty"`
	Format      string                      `json:"format,omitempty"`
	Enum        []string                    `json:"enum,omitempty"`
	Minimum     *float64                    `json:"minimum,omitempty"`
	Maximum     *float64                    `json:"maximum,omitempty"`
	Items       *ParameterSchema            `json:"items,omitempty"`
	Properties  map[string]*ParameterSchema `json:"properties,omitempty"`
	Required    []string                    `json:"required,omitempty"`
	Default     any                         `json:"default,omitempty"`
	Example     any                         `json:"example,omitempty"`
}

// UnmarshalJSON accepts schemas written for the wider JSON-Schema vocabulary.
// Enum values are kept as strings, a type list resolves to its first non-null
// entry and fields of an unexpected shape are dropped.
func (p *ParameterSchema) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// a non-object schema (true, false, "x") constrains nothing we model
		*p = ParameterSchema{}
		return nil
	}

	out := ParameterSchema{
		Type:        decodeSchemaType(raw["type"]),
		Description: decodeString(raw["description"]),
		Format:      decodeString(raw["format"]),
		Enum:        decodeEnum(raw["enum"]),
		Minimum:     decodeNumber(raw["minimum"]),
		Maximum:     decodeNumber(raw["maximum"]),
		Required:    decodeStrings(raw["required"]),
		Default:     decodeAny(raw["default"]),
		Example:     decodeAny(raw["example"]),
	}

	if items, ok := raw["items"]; ok && string(items) != "null" {
		var child ParameterSchema
		if err := json.Unmarshal(items, &child); err == nil {
			out.Items = &child
		}
	}

	if props, ok := raw["properties"]; ok {
		var rawProps map[string]json.RawMessage
		if err := json.Unmarshal(props, &rawProps); err == nil && len(rawProps) > 0 {
			out.Properties = make(map[string]*ParameterSchema, len(rawProps))
			for name, prop := range rawProps {
				var child ParameterSchema
				if err := json.Unmarshal(prop, &child); err != nil {
					continue
				}
				out.Properties[name] = &child
			}
		}
	}

	*p = out
	return nil
}

func decodeSchemaType(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return ""
	}
	for _, entry := range list {
		if s, ok := entry.(string); ok && s != "null" {
			return s
		}
	}
	return ""
}

func decodeString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func decodeStrings(raw json.RawMessage) []string {
	var values []any
	if len(raw) == 0 || json.Unmarshal(raw, &values) != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeEnum(raw json.RawMessage) []string {
	var values []any
	if len(raw) == 0 || json.Unmarshal(raw, &values) != nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func decodeNumber(raw json.RawMessage) *float64 {
	var f float64
	if len(raw) == 0 || string(raw) == "null" || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return &f
}

func decodeAny(raw json.RawMessage) any {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return nil
	}
	return v
}

// IsRequired reports whether name is listed in the schema's required set
func (p *ParameterSchema) IsRequired(name string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Required {
		if r == name {
			return true
		}
	}
	return false
}

// SkillAssociation binds a skill to a chatbot and carries the per-chatbot
// overrides.
type SkillAssociation struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	ChatbotID    string         `json:"chatbot_id" gorm:"not null;index:idx_chatbot_skill,unique"`
	SkillID      string         `json:"skill_id" gorm:"not null;index:idx_chatbot_skill,unique"`
	IsActive     bool           `json:"is_active" gorm:"not null"`
	CustomConfig map[string]any `json:"custom_config" gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	Skill *Skill `json:"skill,omitempty" gorm:"foreignKey:SkillID"`
}

func (SkillAssociation) TableName() string {
	return "chatbot_skill_associations"
}

// ChatbotSkill is a skill as seen from one chatbot
type ChatbotSkill struct {
	Skill       Skill            `json:"skill"`
	Association SkillAssociation `json:"association"`
}

// Executable is true only when both the skill and its association are active
func (c *ChatbotSkill) Executable() bool {
	return c.Skill.IsActive && c.Association.IsActive
}

// EffectiveConfiguration merges the association's custom config over the
// skill's base configuration. Nested maps are merged key by key.
func (c *ChatbotSkill) EffectiveConfiguration() map[string]any {
	return MergeConfig(c.Skill.Configuration, c.Association.CustomConfig)
}

// MergeConfig deep merges override into base without mutating either
func MergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		if overrideMap, ok := v.(map[string]any); ok {
			if baseMap, ok := merged[k].(map[string]any); ok {
				merged[k] = MergeConfig(baseMap, overrideMap)
				continue
			}
		}
		merged[k] = v
	}
	return merged
}

// SkillDefinition is a static catalog entry for a builtin skill
type SkillDefinition struct {
	Name            string           `json:"name"`
	DisplayName     string           `json:"display_name"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	IntegrationType IntegrationType  `json:"integration_type,omitempty"`
	Parameters      *ParameterSchema `json:"parameters"`
	Configuration   map[string]any   `json:"configuration,omitempty"`
}

// Skill converts a catalog definition into a builtin skill record
func (d SkillDefinition) Skill() Skill {
	return Skill{
		Name:        d.Name,
		Type:        SkillTypeBuiltin,
		DisplayName: d.DisplayName,
		Description: d.Description,
		Category:    d.Category,
		FunctionSchema: FunctionSchema{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		},
		Configuration: d.Configuration,
		IsActive:      true,
	}
}

func (p *ParameterSchema) WithExample(example any) *ParameterSchema {
	p.Example = example
	return p
}

func (p *ParameterSchema) WithFormat(format string) *ParameterSchema {
	p.Format = format
	return p
}

func (p *ParameterSchema) WithEnum(values ...string) *ParameterSchema {
	p.Enum = values
	return p
}

func (p *ParameterSchema) WithDefault(value any) *ParameterSchema {
	p.Default = value
	return p
}

func (p *ParameterSchema) WithRange(minimum, maximum float64) *ParameterSchema {
	p.Minimum = &minimum
	p.Maximum = &maximum
	return p
}
