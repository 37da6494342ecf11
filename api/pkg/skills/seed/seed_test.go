package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/embeddings"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/skills/schema"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/store"
	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func definition(name string) types.SkillDefinition {
	return types.SkillDefinition{
		Name:        name,
		DisplayName: "Display " + name,
		Description: "Does " + name,
		Category:    "utility",
		Parameters:  schema.Object(map[string]*types.ParameterSchema{"q": schema.String("query")}),
	}
}

func TestSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := store.NewMockStore(ctrl)
	mockEmbedder := embeddings.NewMockEmbedder(ctrl)

	existing := &types.Skill{ID: "skl_old", Name: "update_me", Type: types.SkillTypeBuiltin, ExecutionCount: 42, IsActive: false}

	gomock.InOrder(
		mockStore.EXPECT().GetSkillByName(gomock.Any(), "", types.SkillTypeBuiltin, "create_me").Return(nil, store.ErrNotFound),
		mockStore.EXPECT().CreateSkill(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, skill *types.Skill) (*types.Skill, error) {
			assert.Equal(t, types.SkillTypeBuiltin, skill.Type)
			assert.True(t, skill.IsActive)
			assert.Equal(t, "create_me", skill.FunctionSchema.Name)
			skill.ID = "skl_new"
			return skill, nil
		}),
		mockEmbedder.EXPECT().Embed(gomock.Any(), "Display create_me. Does create_me. utility").Return([]float32{1}, nil),
		mockStore.EXPECT().UpdateSkillEmbedding(gomock.Any(), "skl_new", []float32{1}).Return(nil),

		mockStore.EXPECT().GetSkillByName(gomock.Any(), "", types.SkillTypeBuiltin, "update_me").Return(existing, nil),
		mockStore.EXPECT().UpdateSkill(gomock.Any(), existing).DoAndReturn(func(_ context.Context, skill *types.Skill) (*types.Skill, error) {
			assert.Equal(t, 42, skill.ExecutionCount)
			assert.False(t, skill.IsActive)
			assert.Equal(t, "Does update_me", skill.Description)
			return skill, nil
		}),
		mockEmbedder.EXPECT().Embed(gomock.Any(), gomock.Any()).Return(nil, errors.New("rate limited")),

		mockStore.EXPECT().GetSkillByName(gomock.Any(), "", types.SkillTypeBuiltin, "broken").Return(nil, errors.New("db down")),
	)

	result, err := New(mockStore, mockEmbedder).Seed(context.Background(), []types.SkillDefinition{
		definition("create_me"),
		definition("update_me"),
		definition("broken"),
	})
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 1, Updated: 1, Embedded: 1, Failed: 1}, result)
}

func TestSeedWithoutEmbedder(t *testing.T) {
	mockStore := store.NewMockStore(gomock.NewController(t))
	mockStore.EXPECT().GetSkillByName(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound)
	mockStore.EXPECT().CreateSkill(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, skill *types.Skill) (*types.Skill, error) {
		return skill, nil
	})

	result, err := New(mockStore, nil).Seed(context.Background(), []types.SkillDefinition{definition("calculate")})
	require.NoError(t, err)
	assert.Equal(t, &Result{Created: 1}, result)
}

func TestSeedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(store.NewMockStore(gomock.NewController(t)), nil).Seed(ctx, []types.SkillDefinition{definition("calculate")})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, &Result{}, result)
}
