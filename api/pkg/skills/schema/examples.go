package schema

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// ExampleParameters builds a best effort example value for every parameter
func ExampleParameters(skill *types.Skill) map[string]any {
	examples := map[string]any{}
	if skill == nil || skill.FunctionSchema.Parameters == nil {
		return examples
	}

	for name, prop := range skill.FunctionSchema.Parameters.Properties {
		if prop == nil {
			examples[name] = nil
			continue
		}
		examples[name] = exampleValue(name, prop)
	}
	return examples
}

func exampleValue(name string, prop *types.ParameterSchema) any {
	if prop.Example != nil {
		return prop.Example
	}

	switch prop.Type {
	case TypeString:
		switch {
		case prop.Format == FormatEmail:
			return "user@example.com"
		case prop.Format == FormatURL || prop.Format == FormatURI:
			return "https://example.com"
		case prop.Format == FormatDate:
			return "2024-01-15"
		case prop.Format == FormatDateTime:
			return "2024-01-15T10:00:00Z"
		case len(prop.Enum) > 0:
			return prop.Enum[0]
		case prop.Description != "":
			return "Example " + name
		}
		return "example"
	case TypeNumber:
		if prop.Minimum != nil {
			return *prop.Minimum
		}
		return 0
	case TypeInteger:
		if prop.Minimum != nil {
			return int(*prop.Minimum)
		}
		return 1
	case TypeBoolean:
		return true
	case TypeArray:
		return []any{}
	case TypeObject:
		return map[string]any{}
	}
	return nil
}
