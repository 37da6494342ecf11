package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const (
	defaultSemanticLimit = 5

	explicitDirectLimit   = 100
	explicitSemanticLimit = 10

	smallToolset  = 5
	mediumToolset = 15
	autoLimit     = 10
)

type Selector struct {
	store    store.Store
	searcher SkillSearcher
	executor SkillExecutor
}

func NewSelector(store store.Store, searcher SkillSearcher, executor SkillExecutor) *Selector {
	return &Selector{
		store:    store,
		searcher: searcher,
		executor: executor,
	}
}

// GetSkillsAsTools builds the tools for one chat turn keyed by skill name. It
// never fails: any error yields an empty map and a skill whose tool cannot be
// built is left out.
func (s *Selector) GetSkillsAsTools(ctx context.Context, chatbotID string, sctx types.SkillExecutionContext, cfg types.ToolSelectionConfig) (tools map[string]*Tool) {
	tools = map[string]*Tool{}
	logger := log.Ctx(ctx).With().Str("chatbot_id", chatbotID).Str("method", string(cfg.Method)).Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("recovered from panic building tools")
			tools = map[string]*Tool{}
		}
	}()

	var (
		skills []*types.ChatbotSkill
		err    error
	)
	switch cfg.Method {
	case types.ToolSelectionMethodDirect:
		skills, err = s.GetDirectSkills(ctx, chatbotID, cfg.MaxTools)
	case types.ToolSelectionMethodSemantic:
		skills, err = s.GetSemanticSkills(ctx, chatbotID, cfg.SemanticQuery, cfg.MaxTools)
	default:
		logger.Error().Msg("unknown tool selection method")
		return tools
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to load skills for tools")
		return tools
	}
	if sctx.ChatbotID == "" {
		sctx.ChatbotID = chatbotID
	}

	built := iter.Map(skills, func(skill **types.ChatbotSkill) *Tool {
		return s.buildTool(ctx, *skill, sctx)
	})
	for _, tool := range built {
		if tool != nil {
			tools[tool.Name] = tool
		}
	}

	logger.Info().Int("skills", len(skills)).Int("tools", len(tools)).Msg("built tools for chatbot")
	return tools
}

func (s *Selector) buildTool(ctx context.Context, skill *types.ChatbotSkill, sctx types.SkillExecutionContext) (tool *Tool) {
	defer func() {
		if r := recover(); r != nil {
			log.Ctx(ctx).Error().Interface("panic", r).Msg("recovered from panic building tool")
			tool = nil
		}
	}()

	tool, err := NewTool(skill, s.executor, sctx)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("skill_name", skill.Skill.Name).Msg("failed to create tool for skill, skipping")
		return nil
	}
	return tool
}

// GetDirectSkills returns the chatbot's active skills. When there are more
// than maxTools they are ranked by execution count, then most recent
// execution, then newest, and truncated. maxTools <= 0 means no cap.
func (s *Selector) GetDirectSkills(ctx context.Context, chatbotID string, maxTools int) ([]*types.ChatbotSkill, error) {
	skills, err := s.store.GetActiveSkillsForChatbot(ctx, chatbotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active skills for chatbot %s: %w", chatbotID, err)
	}

	if maxTools <= 0 || len(skills) <= maxTools {
		return skills, nil
	}

	ranked := append([]*types.ChatbotSkill(nil), skills...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedBefore(&ranked[i].Skill, &ranked[j].Skill)
	})
	return ranked[:maxTools], nil
}

func rankedBefore(a, b *types.Skill) bool {
	if a.ExecutionCount != b.ExecutionCount {
		return a.ExecutionCount > b.ExecutionCount
	}
	if a.LastExecutedAt != nil && b.LastExecutedAt != nil && !a.LastExecutedAt.Equal(*b.LastExecutedAt) {
		return a.LastExecutedAt.After(*b.LastExecutedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// GetSemanticSkills returns the search results as ranked by the searcher. A
// missing query or a failed search falls back to GetDirectSkills.
func (s *Selector) GetSemanticSkills(ctx context.Context, chatbotID, query string, maxTools int) ([]*types.ChatbotSkill, error) {
	if strings.TrimSpace(query) == "" || s.searcher == nil {
		log.Ctx(ctx).Warn().Str("chatbot_id", chatbotID).Msg("semantic query not provided, falling back to direct selection")
		return s.GetDirectSkills(ctx, chatbotID, maxTools)
	}

	limit := maxTools
	if limit <= 0 {
		limit = defaultSemanticLimit
	}

	skills, err := s.searcher.SearchChatbotSkills(ctx, query, chatbotID, limit)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("chatbot_id", chatbotID).Msg("semantic skill search failed, falling back to direct selection")
		return s.GetDirectSkills(ctx, chatbotID, maxTools)
	}

	log.Ctx(ctx).Debug().Str("chatbot_id", chatbotID).Int("found", len(skills)).Msg("semantic skill search")
	return skills, nil
}

// GetOptimalToolSelectionConfig picks a selection method when the caller
// did not. An explicit method always wins. Otherwise small toolsets are sent
// whole, medium ones capped, and large ones searched when a query exists.
func (s *Selector) GetOptimalToolSelectionConfig(ctx context.Context, chatbotID string, method types.ToolSelectionMethod, query string) types.ToolSelectionConfig {
	switch method {
	case types.ToolSelectionMethodDirect:
		return types.ToolSelectionConfig{Method: method, MaxTools: explicitDirectLimit, SemanticQuery: query}
	case types.ToolSelectionMethodSemantic:
		return types.ToolSelectionConfig{Method: method, MaxTools: explicitSemanticLimit, SemanticQuery: query}
	}

	count, err := s.store.CountActiveSkillsForChatbot(ctx, chatbotID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("chatbot_id", chatbotID).Msg("failed to count chatbot skills, using capped direct selection")
		return types.ToolSelectionConfig{Method: types.ToolSelectionMethodDirect, MaxTools: autoLimit}
	}

	switch {
	case count <= smallToolset:
		return types.ToolSelectionConfig{Method: types.ToolSelectionMethodDirect, MaxTools: int(count)}
	case count <= mediumToolset:
		return types.ToolSelectionConfig{Method: types.ToolSelectionMethodDirect, MaxTools: autoLimit}
	case strings.TrimSpace(query) != "":
		return types.ToolSelectionConfig{Method: types.ToolSelectionMethodSemantic, MaxTools: autoLimit, SemanticQuery: query}
	default:
		return types.ToolSelectionConfig{Method: types.ToolSelectionMethodDirect, MaxTools: autoLimit}
	}
}
