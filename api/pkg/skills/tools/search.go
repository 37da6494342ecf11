package tools

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/embeddings"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

const defaultSimilarityThreshold = 0.3

// StoreSearcher ranks skills by embedding similarity and falls back to a text
// match when embeddings are unavailable or nothing is similar enough
type StoreSearcher struct {
	store     store.Store
	embedder  embeddings.Embedder
	threshold float64
}

var _ SkillSearcher = &StoreSearcher{}

// NewStoreSearcher accepts a nil embedder, searches are then text only
func NewStoreSearcher(store store.Store, embedder embeddings.Embedder, threshold float64) *StoreSearcher {
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	return &StoreSearcher{
		store:     store,
		embedder:  embedder,
		threshold: threshold,
	}
}

func (s *StoreSearcher) SearchChatbotSkills(ctx context.Context, query, chatbotID string, limit int) ([]*types.ChatbotSkill, error) {
	if s.embedder != nil {
		skills, err := s.searchByEmbedding(ctx, query, chatbotID, limit)
		switch {
		case err == nil && len(skills) > 0:
			return skills, nil
		case errors.Is(err, store.ErrVectorSearchUnsupported):
			log.Ctx(ctx).Debug().Msg("vector search unsupported, using text search")
		case err != nil:
			log.Ctx(ctx).Warn().Err(err).Str("chatbot_id", chatbotID).Msg("vector skill search failed, using text search")
		}
	}

	return s.store.SearchChatbotSkillsByText(ctx, chatbotID, query, limit)
}

func (s *StoreSearcher) searchByEmbedding(ctx context.Context, query, chatbotID string, limit int) ([]*types.ChatbotSkill, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.SearchChatbotSkillsByEmbedding(ctx, &store.SkillEmbeddingQuery{
		ChatbotID:     chatbotID,
		Embedding:     vec,
		MinSimilarity: s.threshold,
		Limit:         limit,
	})
}
