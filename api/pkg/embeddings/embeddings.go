package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/openai"
)

// Dimensions of the skill embedding column
const Dimensions = 1536

var ErrEmptyText = errors.New("text to embed is empty")

//go:generate mockgen -source $GOFILE -destination embeddings_mocks.go -package $GOPACKAGE

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIEmbedder generates embeddings through an OpenAI compatible API and
// keeps recent query embeddings in memory
type OpenAIEmbedder struct {
	client openai.Client
	model  goopenai.EmbeddingModel
	cache  *ristretto.Cache[string, []float32]
}

var _ Embedder = &OpenAIEmbedder{}

func NewOpenAIEmbedder(client openai.Client, model string, cacheSize int64) (*OpenAIEmbedder, error) {
	if model == "" {
		model = string(goopenai.SmallEmbedding3)
	}
	if cacheSize <= 0 {
		cacheSize = 1000
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, []float32]{
		NumCounters: cacheSize * 10,
		MaxCost:     cacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings cache: %w", err)
	}

	return &OpenAIEmbedder{
		client: client,
		model:  goopenai.EmbeddingModel(model),
		cache:  cache,
	}, nil
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	key := string(e.model) + ":" + text
	if cached, ok := e.cache.Get(key); ok {
		return cached, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response is empty")
	}

	vec := resp.Data[0].Embedding
	e.cache.Set(key, vec, 1)
	e.cache.Wait()

	return vec, nil
}

// SkillText is the text a skill is embedded from
func SkillText(displayName, description, category string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{displayName, description, category} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ". ")
}
