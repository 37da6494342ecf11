package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var toolNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ParseParameters decodes a parameter schema leniently, malformed input gives
// an empty object schema
func ParseParameters(raw []byte) *types.ParameterSchema {
	var p types.ParameterSchema
	if len(raw) == 0 || json.Unmarshal(raw, &p) != nil {
		return normalizeObject(nil)
	}
	return &p
}

// ValidateForTool reports whether the skill can be exposed to the LLM as a tool
func ValidateForTool(skill *types.Skill) error {
	if skill == nil {
		return errors.New("skill is nil")
	}

	fs := skill.FunctionSchema
	if !toolNameRegex.MatchString(fs.Name) {
		return fmt.Errorf("function name %q must match %s", fs.Name, toolNameRegex)
	}
	if fs.Description == "" {
		return fmt.Errorf("function %s has no description", fs.Name)
	}
	if fs.Parameters != nil && fs.Parameters.Type != "" && fs.Parameters.Type != TypeObject {
		return fmt.Errorf("function %s parameters must be of type object, got %s", fs.Name, fs.Parameters.Type)
	}
	return nil
}
