package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ChatbotSkill_Executable(t *testing.T) {
	cases := []struct {
		name        string
		skill       bool
		association bool
		want        bool
	}{
		{"both active", true, true, true},
		{"skill disabled", false, true, false},
		{"association disabled", true, false, false},
		{"both disabled", false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cs := ChatbotSkill{
				Skill:       Skill{IsActive: tc.skill},
				Association: SkillAssociation{IsActive: tc.association},
			}
			assert.Equal(t, tc.want, cs.Executable())
		})
	}
}

func Test_MergeConfig_AssociationWins(t *testing.T) {
	base := map[string]any{
		"webhook_config": map[string]any{
			"url":    "https://base.test/hook",
			"method": "POST",
		},
		"keep": "me",
	}
	override := map[string]any{
		"webhook_config": map[string]any{
			"url": "https://override.test/hook",
		},
	}

	merged := MergeConfig(base, override)

	webhook, ok := merged["webhook_config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://override.test/hook", webhook["url"])
	assert.Equal(t, "POST", webhook["method"])
	assert.Equal(t, "me", merged["keep"])

	// inputs are untouched
	assert.Equal(t, "https://base.test/hook", base["webhook_config"].(map[string]any)["url"])
}

func Test_MergeConfig_NilInputs(t *testing.T) {
	assert.Empty(t, MergeConfig(nil, nil))
	assert.Equal(t, map[string]any{"a": 1}, MergeConfig(nil, map[string]any{"a": 1}))
}

func Test_SkillExecutionResult_Exclusive(t *testing.T) {
	ok := SuccessResult(map[string]any{"ok": true})
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)

	failed := ErrorResult("")
	assert.False(t, failed.Success)
	assert.NotEmpty(t, failed.Error)
	assert.Nil(t, failed.Data)
}

func Test_Integration_DisplayName(t *testing.T) {
	i := Integration{ID: "int_1", Metadata: map[string]any{"guild_name": "Guild"}}
	assert.Equal(t, "Guild", i.DisplayName())

	i = Integration{ID: "int_2", WorkspaceName: "Acme"}
	assert.Equal(t, "Acme", i.DisplayName())

	i = Integration{ID: "int_3"}
	assert.Equal(t, "int_3", i.DisplayName())
}

func Test_SkillDefinition_Skill(t *testing.T) {
	def := SkillDefinition{
		Name:        "slack_send_message",
		DisplayName: "Send Slack Message",
		Description: "Send a message",
		Category:    "communication",
		Parameters:  &ParameterSchema{Type: "object"},
	}

	skill := def.Skill()
	assert.Equal(t, SkillTypeBuiltin, skill.Type)
	assert.Equal(t, "slack_send_message", skill.FunctionSchema.Name)
	assert.True(t, skill.IsActive)
}

func Test_ParameterSchema_UnmarshalLenient(t *testing.T) {
	raw := `{
		"type": "object",
		"properties": {
			"level":   {"type": "integer", "enum": [1, 2, 3], "minimum": "low", "maximum": 5},
			"note":    {"type": ["null", "string"], "description": 42},
			"flags":   {"type": "array", "items": {"type": "boolean", "enum": [true, null]}},
			"broken":  "not a schema",
			"nested":  {"type": "object", "properties": {"x": {"type": "number"}}, "required": ["x", 7]}
		},
		"required": ["level"],
		"additionalProperties": false
	}`

	var p ParameterSchema
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, "object", p.Type)
	assert.True(t, p.IsRequired("level"))

	level := p.Properties["level"]
	require.NotNil(t, level)
	assert.Equal(t, []string{"1", "2", "3"}, level.Enum)
	assert.Nil(t, level.Minimum)
	require.NotNil(t, level.Maximum)
	assert.Equal(t, 5.0, *level.Maximum)

	note := p.Properties["note"]
	require.NotNil(t, note)
	assert.Equal(t, "string", note.Type)
	assert.Empty(t, note.Description)

	flags := p.Properties["flags"]
	require.NotNil(t, flags.Items)
	assert.Equal(t, []string{"true"}, flags.Items.Enum)

	require.NotNil(t, p.Properties["broken"])
	assert.Empty(t, p.Properties["broken"].Type)

	assert.Equal(t, []string{"x"}, p.Properties["nested"].Required)
}

func Test_FunctionSchema_RoundTrip(t *testing.T) {
	lo, hi := 1.0, 10.0
	in := FunctionSchema{
		Name:        "lookup_order",
		Description: "Find an order",
		Parameters: &ParameterSchema{
			Type: "object",
			Properties: map[string]*ParameterSchema{
				"count": {Type: "integer", Minimum: &lo, Maximum: &hi, Default: 3.0},
				"sort":  {Type: "string", Enum: []string{"asc", "desc"}},
			},
			Required: []string{"count"},
		},
	}

	bts, err := json.Marshal(in)
	require.NoError(t, err)

	var out FunctionSchema
	require.NoError(t, json.Unmarshal(bts, &out))
	assert.Equal(t, in, out)
}
