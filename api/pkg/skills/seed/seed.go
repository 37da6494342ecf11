// Package seed writes the builtin skill catalog to the store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/embeddings"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

type Result struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Embedded int `json:"embedded"`
	Failed   int `json:"failed"`
}

// Seeder upserts builtin skills by name. Skills are processed one at a time so
// the embedding provider is never hit concurrently.
type Seeder struct {
	store    store.Store
	embedder embeddings.Embedder
}

// New accepts a nil embedder, skills are then stored without embeddings
func New(store store.Store, embedder embeddings.Embedder) *Seeder {
	return &Seeder{
		store:    store,
		embedder: embedder,
	}
}

// Seed continues past individual failures and reports them in the result.
// Only a cancelled context stops it early.
func (s *Seeder) Seed(ctx context.Context, defs []types.SkillDefinition) (*Result, error) {
	result := &Result{}

	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		logger := log.Ctx(ctx).With().Str("skill_name", def.Name).Logger()

		skill, created, err := s.upsert(ctx, def)
		if err != nil {
			logger.Error().Err(err).Msg("failed to seed skill")
			result.Failed++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}

		if s.embedder == nil {
			continue
		}
		if err := s.embed(ctx, skill); err != nil {
			logger.Warn().Err(err).Msg("seeded skill without embedding")
			continue
		}
		result.Embedded++
	}

	log.Ctx(ctx).Info().
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("embedded", result.Embedded).
		Int("failed", result.Failed).
		Msg("seeded builtin skills")

	return result, nil
}

func (s *Seeder) upsert(ctx context.Context, def types.SkillDefinition) (*types.Skill, bool, error) {
	next := def.Skill()

	existing, err := s.store.GetSkillByName(ctx, "", types.SkillTypeBuiltin, def.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		created, err := s.store.CreateSkill(ctx, &next)
		if err != nil {
			return nil, false, fmt.Errorf("failed to create skill: %w", err)
		}
		return created, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to look up skill: %w", err)
	}

	// usage counters and the active flag belong to the running system
	existing.DisplayName = next.DisplayName
	existing.Description = next.Description
	existing.Category = next.Category
	existing.FunctionSchema = next.FunctionSchema
	existing.Configuration = next.Configuration

	updated, err := s.store.UpdateSkill(ctx, existing)
	if err != nil {
		return nil, false, fmt.Errorf("failed to update skill: %w", err)
	}
	return updated, false, nil
}

func (s *Seeder) embed(ctx context.Context, skill *types.Skill) error {
	vec, err := s.embedder.Embed(ctx, embeddings.SkillText(skill.DisplayName, skill.Description, skill.Category))
	if err != nil {
		return err
	}
	return s.store.UpdateSkillEmbedding(ctx, skill.ID, vec)
}
