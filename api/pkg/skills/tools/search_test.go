package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/embeddings"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func TestStoreSearcher(t *testing.T) {
	vec := []float32{0.1, 0.2}
	hit := []*types.ChatbotSkill{chatbotSkill("gmail_send_message", 0)}
	textHit := []*types.ChatbotSkill{chatbotSkill("slack_send_message", 0)}

	testCases := []struct {
		name     string
		setup    func(s *store.MockStore, e *embeddings.MockEmbedder)
		noEmbed  bool
		expected []*types.ChatbotSkill
	}{
		{
			name: "vector hit",
			setup: func(s *store.MockStore, e *embeddings.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), "send email").Return(vec, nil)
				s.EXPECT().SearchChatbotSkillsByEmbedding(gomock.Any(), &store.SkillEmbeddingQuery{
					ChatbotID:     "bot_1",
					Embedding:     vec,
					MinSimilarity: 0.3,
					Limit:         5,
				}).Return(hit, nil)
			},
			expected: hit,
		},
		{
			name: "no similar skills",
			setup: func(s *store.MockStore, e *embeddings.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), "send email").Return(vec, nil)
				s.EXPECT().SearchChatbotSkillsByEmbedding(gomock.Any(), gomock.Any()).Return(nil, nil)
				s.EXPECT().SearchChatbotSkillsByText(gomock.Any(), "bot_1", "send email", 5).Return(textHit, nil)
			},
			expected: textHit,
		},
		{
			name: "embedding failure",
			setup: func(s *store.MockStore, e *embeddings.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), "send email").Return(nil, errors.New("rate limited"))
				s.EXPECT().SearchChatbotSkillsByText(gomock.Any(), "bot_1", "send email", 5).Return(textHit, nil)
			},
			expected: textHit,
		},
		{
			name: "vector search unsupported",
			setup: func(s *store.MockStore, e *embeddings.MockEmbedder) {
				e.EXPECT().Embed(gomock.Any(), "send email").Return(vec, nil)
				s.EXPECT().SearchChatbotSkillsByEmbedding(gomock.Any(), gomock.Any()).Return(nil, store.ErrVectorSearchUnsupported)
				s.EXPECT().SearchChatbotSkillsByText(gomock.Any(), "bot_1", "send email", 5).Return(textHit, nil)
			},
			expected: textHit,
		},
		{
			name:    "text only",
			noEmbed: true,
			setup: func(s *store.MockStore, _ *embeddings.MockEmbedder) {
				s.EXPECT().SearchChatbotSkillsByText(gomock.Any(), "bot_1", "send email", 5).Return(textHit, nil)
			},
			expected: textHit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockStore := store.NewMockStore(ctrl)
			mockEmbedder := embeddings.NewMockEmbedder(ctrl)
			tc.setup(mockStore, mockEmbedder)

			var embedder embeddings.Embedder = mockEmbedder
			if tc.noEmbed {
				embedder = nil
			}

			skills, err := NewStoreSearcher(mockStore, embedder, 0).SearchChatbotSkills(context.Background(), "send email", "bot_1", 5)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, skills)
		})
	}
}
