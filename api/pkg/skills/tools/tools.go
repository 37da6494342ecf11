// Package tools decides which chatbot skills are offered to the LLM on a chat
// turn and adapts them to tool definitions.
package tools

import (
	"context"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

//go:generate mockgen -source $GOFILE -destination tools_mocks.go -package $GOPACKAGE

// SkillExecutor runs one skill and always returns a result
type SkillExecutor interface {
	ExecuteSkill(ctx context.Context, skill *types.ChatbotSkill, params map[string]any, sctx types.SkillExecutionContext) types.SkillExecutionResult
}

// SkillSearcher returns the chatbot's skills most relevant to a query, best
// match first
type SkillSearcher interface {
	SearchChatbotSkills(ctx context.Context, query, chatbotID string, limit int) ([]*types.ChatbotSkill, error)
}
