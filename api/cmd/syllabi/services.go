package syllabi

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/config"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/embeddings"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/openai"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/clients"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/executor"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/integrations"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/registry"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/tools"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
)

func newServeConfig() (*config.ServerConfig, error) {
	serverConfig, err := config.LoadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	return &serverConfig, nil
}

// services holds everything a command needs to run skills
type services struct {
	store    *store.GormStore
	registry *registry.Registry
	executor *executor.Executor
	embedder embeddings.Embedder
	selector *tools.Selector
}

func newServices(cfg *config.ServerConfig) (*services, error) {
	db, err := store.NewStore(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	reg, err := integrations.NewRegistry(clients.NewStoreFactory(db, *cfg))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to build skill registry: %w", err)
	}

	embedder, err := newEmbedder(cfg.Embeddings)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	skillExecutor := executor.New(db, reg, cfg.Skills)
	searcher := tools.NewStoreSearcher(db, embedder, cfg.Skills.SemanticThreshold)

	return &services{
		store:    db,
		registry: reg,
		executor: skillExecutor,
		embedder: embedder,
		selector: tools.NewSelector(db, searcher, skillExecutor),
	}, nil
}

// newEmbedder returns a nil Embedder when embeddings are off, search then
// uses text matching only
func newEmbedder(cfg config.Embeddings) (embeddings.Embedder, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if cfg.APIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set, semantic skill search falls back to text matching")
		return nil, nil
	}

	embedder, err := embeddings.NewOpenAIEmbedder(openai.New(cfg.APIKey, cfg.BaseURL, cfg.Retries), cfg.Model, cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	return embedder, nil
}

func (s *services) Close() {
	if err := s.store.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
}
