package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/system"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func (s *GormStore) CreateIntegration(ctx context.Context, integration *types.Integration) (*types.Integration, error) {
	if integration.IntegrationType == "" {
		return nil, errors.New("integration type is required")
	}
	if integration.ID == "" {
		integration.ID = system.GenerateIntegrationID()
	}

	err := s.gdb.WithContext(ctx).Create(integration).Error
	if err != nil {
		return nil, err
	}
	return integration, nil
}

func (s *GormStore) GetIntegration(ctx context.Context, id string) (*types.Integration, error) {
	if id == "" {
		return nil, errors.New("integration ID is required")
	}

	var integration types.Integration
	err := s.gdb.WithContext(ctx).Where("id = ?", id).First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &integration, nil
}

func (s *GormStore) CreateChatbotIntegration(ctx context.Context, binding *types.ChatbotIntegration) (*types.ChatbotIntegration, error) {
	if binding.ChatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}
	if binding.IntegrationID == "" {
		return nil, errors.New("integration ID is required")
	}
	if binding.ID == "" {
		binding.ID = system.GenerateChatbotIntegrationID()
	}

	err := s.gdb.WithContext(ctx).Omit(clause.Associations).Create(binding).Error
	if err != nil {
		return nil, err
	}
	return binding, nil
}

// ListChatbotIntegrations returns the active bindings of the chatbot whose
// integration is also active, newest binding first
func (s *GormStore) ListChatbotIntegrations(ctx context.Context, q *ListChatbotIntegrationsQuery) ([]*types.ChatbotIntegration, error) {
	if q == nil || q.ChatbotID == "" {
		return nil, errors.New("chatbot ID is required")
	}

	query := s.gdb.WithContext(ctx).
		InnerJoins("Integration", s.gdb.Where(&types.Integration{IsActive: true})).
		Where("chatbot_integrations.chatbot_id = ? AND chatbot_integrations.is_active = ?", q.ChatbotID, true)

	if q.IntegrationType != "" {
		query = query.Where("chatbot_integrations.integration_type = ?", q.IntegrationType)
	}

	var bindings []*types.ChatbotIntegration
	err := query.Order("chatbot_integrations.created_at DESC").Find(&bindings).Error
	if err != nil {
		return nil, err
	}
	return bindings, nil
}
