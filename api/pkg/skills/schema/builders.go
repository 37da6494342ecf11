package schema

import (
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// Object builds a parameters schema, properties not listed in required are
// optional
func Object(properties map[string]*types.ParameterSchema, required ...string) *types.ParameterSchema {
	if properties == nil {
		properties = map[string]*types.ParameterSchema{}
	}
	return &types.ParameterSchema{
		Type:       TypeObject,
		Properties: properties,
		Required:   required,
	}
}

func String(description string) *types.ParameterSchema {
	return &types.ParameterSchema{Type: TypeString, Description: description}
}

func Integer(description string) *types.ParameterSchema {
	return &types.ParameterSchema{Type: TypeInteger, Description: description}
}

func Number(description string) *types.ParameterSchema {
	return &types.ParameterSchema{Type: TypeNumber, Description: description}
}

func Boolean(description string) *types.ParameterSchema {
	return &types.ParameterSchema{Type: TypeBoolean, Description: description}
}

func Array(description string, items *types.ParameterSchema) *types.ParameterSchema {
	return &types.ParameterSchema{Type: TypeArray, Description: description, Items: items}
}

// Strings is an array of plain strings
func Strings(description string) *types.ParameterSchema {
	return Array(description, &types.ParameterSchema{Type: TypeString})
}
