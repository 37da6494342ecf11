package store

import (
	"context"
	"errors"
	"time"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrVectorSearchUnsupported is returned by drivers without pgvector
	ErrVectorSearchUnsupported = errors.New("vector search is not supported by this store")
)

type ListSkillsQuery struct {
	UserID string `json:"user_id"`
	// IncludeBuiltin adds builtin skills to the skills owned by UserID
	IncludeBuiltin bool            `json:"include_builtin"`
	Type           types.SkillType `json:"type"`
	Category       string          `json:"category"`
	// MissingEmbedding limits results to skills without an embedding
	MissingEmbedding bool `json:"missing_embedding"`
	Offset           int  `json:"offset"`
	Limit            int  `json:"limit"`
}

type SkillEmbeddingQuery struct {
	ChatbotID string
	Embedding []float32
	// MinSimilarity is the cosine similarity floor, 0.3 when unset
	MinSimilarity float64
	Limit         int
}

type ListSkillExecutionsQuery struct {
	SkillID       string `json:"skill_id"`
	ChatbotID     string `json:"chatbot_id"`
	ChatSessionID string `json:"chat_session_id"`
	Offset        int    `json:"offset"`
	Limit         int    `json:"limit"`
}

type ListChatbotIntegrationsQuery struct {
	ChatbotID       string                `json:"chatbot_id"`
	IntegrationType types.IntegrationType `json:"integration_type"`
}

//go:generate mockgen -source $GOFILE -destination store_mocks.go -package $GOPACKAGE

type Store interface {
	// skills
	CreateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error)
	UpdateSkill(ctx context.Context, skill *types.Skill) (*types.Skill, error)
	GetSkill(ctx context.Context, id string) (*types.Skill, error)
	GetSkillByName(ctx context.Context, userID string, skillType types.SkillType, name string) (*types.Skill, error)
	ListSkills(ctx context.Context, q *ListSkillsQuery) ([]*types.Skill, error)
	IsSkillNameUnique(ctx context.Context, userID string, skillType types.SkillType, name, excludeID string) (bool, error)
	DeleteSkill(ctx context.Context, id string) error
	UpdateSkillEmbedding(ctx context.Context, id string, embedding []float32) error

	// chatbot skills
	CreateSkillAssociation(ctx context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error)
	UpdateSkillAssociation(ctx context.Context, association *types.SkillAssociation) (*types.SkillAssociation, error)
	GetSkillAssociation(ctx context.Context, id string) (*types.SkillAssociation, error)
	DeleteSkillAssociation(ctx context.Context, id string) error
	ListChatbotSkills(ctx context.Context, chatbotID string) ([]*types.ChatbotSkill, error)
	GetChatbotSkill(ctx context.Context, chatbotID, skillID string) (*types.ChatbotSkill, error)
	GetActiveSkillsForChatbot(ctx context.Context, chatbotID string) ([]*types.ChatbotSkill, error)
	CountActiveSkillsForChatbot(ctx context.Context, chatbotID string) (int64, error)
	SearchChatbotSkillsByEmbedding(ctx context.Context, q *SkillEmbeddingQuery) ([]*types.ChatbotSkill, error)
	SearchChatbotSkillsByText(ctx context.Context, chatbotID, text string, limit int) ([]*types.ChatbotSkill, error)

	// skill executions
	CreateSkillExecution(ctx context.Context, execution *types.SkillExecution) (*types.SkillExecution, error)
	ListSkillExecutions(ctx context.Context, q *ListSkillExecutionsQuery) ([]*types.SkillExecution, error)
	GetSkillExecutionStats(ctx context.Context, skillID string, since time.Time) (*types.SkillExecutionStats, error)

	// integrations
	CreateIntegration(ctx context.Context, integration *types.Integration) (*types.Integration, error)
	GetIntegration(ctx context.Context, id string) (*types.Integration, error)
	CreateChatbotIntegration(ctx context.Context, binding *types.ChatbotIntegration) (*types.ChatbotIntegration, error)
	ListChatbotIntegrations(ctx context.Context, q *ListChatbotIntegrationsQuery) ([]*types.ChatbotIntegration, error)
}
