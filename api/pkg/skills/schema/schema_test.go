package schema

import (
	"encoding/json"
	"testing"

	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func ptr(f float64) *float64 { return &f }

func skillWith(p *types.ParameterSchema) *types.Skill {
	return &types.Skill{
		Name: "test_skill",
		FunctionSchema: types.FunctionSchema{
			Name:        "test_skill",
			Description: "Test skill",
			Parameters:  p,
		},
	}
}

func TestRuntimeSchema_EmailFormat(t *testing.T) {
	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"x": {Type: TypeString, Format: FormatEmail},
		},
		Required: []string{"x"},
	})

	require.Error(t, rs.Validate(map[string]any{"x": "not-an-email"}))
	require.NoError(t, rs.Validate(map[string]any{"x": "a@b.com"}))
	require.Error(t, rs.Validate(map[string]any{}))
}

func TestRuntimeSchema_Formats(t *testing.T) {
	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"link": {Type: TypeString, Format: FormatURL},
			"day":  {Type: TypeString, Format: FormatDate},
			"at":   {Type: TypeString, Format: FormatDateTime},
		},
	})

	require.NoError(t, rs.Validate(map[string]any{
		"link": "https://example.com/a",
		"day":  "2024-01-15",
		"at":   "2024-01-15T10:00:00Z",
	}))
	assert.Error(t, rs.Validate(map[string]any{"link": "example.com"}))
	assert.Error(t, rs.Validate(map[string]any{"day": "15/01/2024"}))
	assert.Error(t, rs.Validate(map[string]any{"at": "tomorrow"}))
}

func TestRuntimeSchema_EnumAndBounds(t *testing.T) {
	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"sort":  {Type: TypeString, Enum: []string{"asc", "desc"}},
			"free":  {Type: TypeString, Enum: []string{}},
			"count": {Type: TypeInteger, Minimum: ptr(1), Maximum: ptr(10)},
			"tags":  {Type: TypeArray, Items: &types.ParameterSchema{Type: TypeString}},
		},
	})

	require.NoError(t, rs.Validate(map[string]any{
		"sort":  "asc",
		"free":  "anything",
		"count": 5,
		"tags":  []string{"a", "b"},
	}))
	assert.Error(t, rs.Validate(map[string]any{"sort": "sideways"}))
	assert.Error(t, rs.Validate(map[string]any{"count": 11}))
	assert.Error(t, rs.Validate(map[string]any{"count": 0}))
	assert.Error(t, rs.Validate(map[string]any{"tags": []any{1, 2}}))
}

func TestRuntimeSchema_NestedObject(t *testing.T) {
	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"event": {
				Type: TypeObject,
				Properties: map[string]*types.ParameterSchema{
					"title": {Type: TypeString},
				},
				Required: []string{"title"},
			},
		},
	})

	require.NoError(t, rs.Validate(map[string]any{"event": map[string]any{"title": "standup"}}))
	require.Error(t, rs.Validate(map[string]any{"event": map[string]any{}}))
}

func TestRuntimeSchema_Degrades(t *testing.T) {
	for _, p := range []*types.ParameterSchema{
		nil,
		{Type: TypeString},
		{Type: TypeObject},
	} {
		rs := ToRuntimeSchema(p)
		require.NoError(t, rs.Validate(map[string]any{"anything": 1}))
		def := rs.Definition()
		require.Equal(t, jsonschema.Object, def.Type)
		require.Empty(t, def.Properties)
	}

	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"blob": {Type: "binary", Description: "raw data"},
		},
	})
	require.NoError(t, rs.Validate(map[string]any{"blob": []int{1, 2}}))
	require.Equal(t, "raw data", rs.Definition().Properties["blob"].Description)
}

func TestRuntimeSchema_Definition(t *testing.T) {
	rs := ToRuntimeSchema(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"to":    {Type: TypeString, Format: FormatEmail, Description: "Recipient"},
			"limit": {Type: TypeInteger, Minimum: ptr(1), Maximum: ptr(100)},
			"ids":   {Type: TypeArray, Items: &types.ParameterSchema{Type: TypeString}},
		},
		Required: []string{"to", "missing"},
	})

	def := rs.Definition()
	assert.Equal(t, []string{"to"}, def.Required)
	assert.Equal(t, "Recipient (format: email)", def.Properties["to"].Description)
	assert.Equal(t, "between 1 and 100", def.Properties["limit"].Description)
	require.NotNil(t, def.Properties["ids"].Items)
	assert.Equal(t, jsonschema.String, def.Properties["ids"].Items.Type)

	bts, err := json.Marshal(&def)
	require.NoError(t, err)
	assert.Contains(t, string(bts), `"type":"object"`)
}

func TestValidateParameters(t *testing.T) {
	skill := skillWith(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"channel": {Type: TypeString},
			"email":   {Type: TypeString, Format: FormatEmail},
			"site":    {Type: TypeString, Format: FormatURI},
			"day":     {Type: TypeString, Format: FormatDate},
			"count":   {Type: TypeNumber},
			"urgent":  {Type: TypeBoolean},
			"tags":    {Type: TypeArray},
			"meta":    {Type: TypeObject},
			"sort":    {Type: TypeString, Enum: []string{"asc", "desc"}},
		},
		Required: []string{"channel", "email"},
	})

	t.Run("valid with extras", func(t *testing.T) {
		res := ValidateParameters(skill, map[string]any{
			"channel": "general",
			"email":   "a@b.com",
			"count":   3,
			"tags":    []string{"x"},
			"meta":    map[string]any{"k": "v"},
			"unknown": 42,
		})
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("missing and null required", func(t *testing.T) {
		res := ValidateParameters(skill, map[string]any{"email": nil})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{
			"Missing required parameter: channel",
			"Missing required parameter: email",
		}, res.Errors)
	})

	t.Run("type and format errors", func(t *testing.T) {
		res := ValidateParameters(skill, map[string]any{
			"channel": 7,
			"email":   "nope",
			"site":    "not a url",
			"day":     "01-15-2024",
			"count":   "3",
			"urgent":  "yes",
			"tags":    "a,b",
			"meta":    []any{},
			"sort":    "up",
		})
		assert.False(t, res.Valid)
		assert.Equal(t, []string{
			"Parameter channel must be a string",
			"Parameter count must be a number",
			"Parameter day must be a valid date in YYYY-MM-DD format",
			"Parameter email must be a valid email address",
			"Parameter meta must be an object",
			"Parameter site must be a valid URL",
			"Parameter sort must be one of: asc, desc",
			"Parameter tags must be an array",
			"Parameter urgent must be a boolean",
		}, res.Errors)
	})

	t.Run("non object schema", func(t *testing.T) {
		res := ValidateParameters(skillWith(&types.ParameterSchema{Type: TypeString}), nil)
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("no schema", func(t *testing.T) {
		assert.True(t, ValidateParameters(skillWith(nil), map[string]any{"a": 1}).Valid)
		assert.True(t, ValidateParameters(nil, nil).Valid)
	})
}

func TestExampleParameters(t *testing.T) {
	skill := skillWith(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"to":      {Type: TypeString, Format: FormatEmail},
			"link":    {Type: TypeString, Format: FormatURL},
			"day":     {Type: TypeString, Format: FormatDate},
			"at":      {Type: TypeString, Format: FormatDateTime},
			"sort":    {Type: TypeString, Enum: []string{"desc", "asc"}},
			"subject": {Type: TypeString, Description: "Subject line"},
			"plain":   {Type: TypeString},
			"ratio":   {Type: TypeNumber},
			"limit":   {Type: TypeInteger, Minimum: ptr(5)},
			"page":    {Type: TypeInteger},
			"flag":    {Type: TypeBoolean},
			"ids":     {Type: TypeArray},
			"meta":    {Type: TypeObject},
			"channel": {Type: TypeString, Example: "#general"},
			"weird":   {Type: "binary"},
		},
	})

	assert.Equal(t, map[string]any{
		"to":      "user@example.com",
		"link":    "https://example.com",
		"day":     "2024-01-15",
		"at":      "2024-01-15T10:00:00Z",
		"sort":    "desc",
		"subject": "Example subject",
		"plain":   "example",
		"ratio":   0,
		"limit":   5,
		"page":    1,
		"flag":    true,
		"ids":     []any{},
		"meta":    map[string]any{},
		"channel": "#general",
		"weird":   nil,
	}, ExampleParameters(skill))

	assert.Empty(t, ExampleParameters(skillWith(nil)))
}

func TestParseParameters(t *testing.T) {
	p := ParseParameters([]byte(`{"type":"object","properties":{"q":{"type":"string"}},"required":["q"]}`))
	require.Contains(t, p.Properties, "q")
	assert.True(t, p.IsRequired("q"))

	empty := ParseParameters([]byte(`{not json`))
	assert.Equal(t, TypeObject, empty.Type)
	assert.Empty(t, empty.Properties)

	odd := ParseParameters([]byte(`{"type":"object","properties":{"level":{"type":"integer","enum":[1,2,3]}}}`))
	require.Contains(t, odd.Properties, "level")
	assert.Equal(t, []string{"1", "2", "3"}, odd.Properties["level"].Enum)
}

func TestValidateParameters_NumericEnum(t *testing.T) {
	skill := skillWith(&types.ParameterSchema{
		Type: TypeObject,
		Properties: map[string]*types.ParameterSchema{
			"level": {Type: TypeInteger, Enum: []string{"1", "2", "3"}},
		},
	})

	assert.True(t, ValidateParameters(skill, map[string]any{"level": float64(2)}).Valid)

	res := ValidateParameters(skill, map[string]any{"level": float64(4)})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Parameter level must be one of: 1, 2, 3"}, res.Errors)
}

func TestValidateForTool(t *testing.T) {
	require.NoError(t, ValidateForTool(skillWith(nil)))

	bad := skillWith(nil)
	bad.FunctionSchema.Name = "has spaces"
	require.Error(t, ValidateForTool(bad))

	noDesc := skillWith(nil)
	noDesc.FunctionSchema.Description = ""
	require.Error(t, ValidateForTool(noDesc))

	require.Error(t, ValidateForTool(skillWith(&types.ParameterSchema{Type: TypeArray})))
}
