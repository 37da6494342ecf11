package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var integrationPrefixes = []struct {
	prefix          string
	integrationType types.IntegrationType
}{
	{"slack_", types.IntegrationTypeSlack},
	{"discord_", types.IntegrationTypeDiscord},
	{"google_drive_", types.IntegrationTypeGoogle},
	{"gmail_", types.IntegrationTypeGoogle},
	{"google_calendar_", types.IntegrationTypeGoogle},
	{"notion_", types.IntegrationTypeNotion},
}

// RequiredIntegration returns the integration a builtin skill authenticates
// with, or "" when the skill needs none
func RequiredIntegration(skillName string) types.IntegrationType {
	for _, p := range integrationPrefixes {
		if strings.HasPrefix(skillName, p.prefix) {
			return p.integrationType
		}
	}
	return ""
}

// EnsureIntegrationID fills sctx.IntegrationID for skills that need a
// connected integration. When the chatbot has several active integrations of
// the type the most recently bound one wins.
func (e *Executor) EnsureIntegrationID(ctx context.Context, skillName string, sctx types.SkillExecutionContext) (types.SkillExecutionContext, error) {
	if sctx.IntegrationID != "" {
		return sctx, nil
	}

	integrationType := RequiredIntegration(skillName)
	if integrationType == "" {
		return sctx, nil
	}

	if sctx.ChatSessionID == "" {
		return sctx, fmt.Errorf("Chat session required for %s skills", integrationType)
	}
	if sctx.ChatbotID == "" {
		return sctx, fmt.Errorf("Chatbot ID required for %s skills", integrationType)
	}

	bindings, err := e.store.ListChatbotIntegrations(ctx, &store.ListChatbotIntegrationsQuery{
		ChatbotID:       sctx.ChatbotID,
		IntegrationType: integrationType,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("integration_type", string(integrationType)).Msg("failed to fetch chatbot integrations")
		bindings = nil
	}
	if len(bindings) == 0 {
		return sctx, fmt.Errorf("No active %s integration found for this chatbot. Please connect %s in the chatbot settings.", integrationType, integrationType)
	}

	sort.SliceStable(bindings, func(i, j int) bool {
		return bindings[i].CreatedAt.After(bindings[j].CreatedAt)
	})
	selected := bindings[0]

	if len(bindings) > 1 {
		names := make([]string, 0, len(bindings))
		for _, b := range bindings {
			names = append(names, workspaceName(b))
		}
		log.Ctx(ctx).Warn().
			Str("integration_type", string(integrationType)).
			Strs("workspaces", names).
			Str("selected", names[0]).
			Msgf("chatbot has %d %s integrations, using the most recent", len(bindings), integrationType)
	}

	log.Ctx(ctx).Debug().
		Str("integration_type", string(integrationType)).
		Str("integration_id", selected.IntegrationID).
		Str("workspace", workspaceName(selected)).
		Msg("resolved integration for skill")

	sctx.IntegrationID = selected.IntegrationID
	return sctx, nil
}

func workspaceName(b *types.ChatbotIntegration) string {
	if b.Integration == nil {
		return "Unknown"
	}
	return b.Integration.DisplayName()
}
