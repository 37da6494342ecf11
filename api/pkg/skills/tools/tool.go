package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

// ToolResult is what the LLM sees after calling a tool
type ToolResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Tool is a skill bound to the execution context of one chat turn
type Tool struct {
	Name        string
	Description string
	Skill       *types.ChatbotSkill
	Schema      *schema.RuntimeSchema

	executor SkillExecutor
	sctx     types.SkillExecutionContext
}

func NewTool(skill *types.ChatbotSkill, executor SkillExecutor, sctx types.SkillExecutionContext) (*Tool, error) {
	if skill == nil {
		return nil, errors.New("skill is nil")
	}

	description := skill.Skill.Description
	if description == "" {
		description = skill.Skill.FunctionSchema.Description
	}

	// the tool is exposed under the skill name
	candidate := skill.Skill
	candidate.FunctionSchema.Name = skill.Skill.Name
	candidate.FunctionSchema.Description = description
	if err := schema.ValidateForTool(&candidate); err != nil {
		return nil, err
	}

	return &Tool{
		Name:        skill.Skill.Name,
		Description: description,
		Skill:       skill,
		Schema:      schema.ToRuntimeSchema(skill.Skill.FunctionSchema.Parameters),
		executor:    executor,
		sctx:        sctx,
	}, nil
}

// Execute runs the skill for real, never in test mode
func (t *Tool) Execute(ctx context.Context, params map[string]any) ToolResult {
	sctx := t.sctx
	sctx.SkillID = t.Skill.Skill.ID
	sctx.TestMode = false

	result := t.executor.ExecuteSkill(ctx, t.Skill, params, sctx)
	if result.Success {
		return ToolResult{
			Success: true,
			Message: fmt.Sprintf("Successfully executed %s", t.displayName()),
			Data:    result.Data,
		}
	}

	errMsg := result.Error
	if errMsg == "" {
		errMsg = "Skill execution failed"
	}
	return ToolResult{Success: false, Error: errMsg}
}

func (t *Tool) displayName() string {
	if t.Skill.Skill.DisplayName != "" {
		return t.Skill.Skill.DisplayName
	}
	return t.Name
}

// OpenAI returns the function tool definition for the chat completion request
func (t *Tool) OpenAI() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Schema.Definition(),
		},
	}
}

// Call handles a tool call from the LLM: args is the raw JSON arguments
// string. Arguments that fail the schema are reported to the LLM without
// running the skill. The returned string is the JSON encoded ToolResult.
func (t *Tool) Call(ctx context.Context, args string) (string, error) {
	params := map[string]any{}
	if strings.TrimSpace(args) != "" {
		if err := json.Unmarshal([]byte(args), &params); err != nil {
			return encodeResult(ToolResult{Success: false, Error: fmt.Sprintf("Invalid tool arguments: %s", err)})
		}
	}

	if err := t.Schema.Validate(params); err != nil {
		return encodeResult(ToolResult{Success: false, Error: fmt.Sprintf("Invalid parameters: %s", err)})
	}

	return encodeResult(t.Execute(ctx, params))
}

func encodeResult(result ToolResult) (string, error) {
	bts, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(bts), nil
}

// OpenAITools lists the tool definitions sorted by name
func OpenAITools(tools map[string]*Tool) []openai.Tool {
	names := make([]string, 0, len(tools))
	for name := range tools {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]openai.Tool, 0, len(names))
	for _, name := range names {
		out = append(out, tools[name].OpenAI())
	}
	return out
}
