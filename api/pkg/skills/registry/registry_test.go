package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/types"
)

func handlerReturning(v any) Handler {
	return func(_ context.Context, _ map[string]any, _ types.SkillExecutionContext) (any, error) {
		return v, nil
	}
}

func TestBuild(t *testing.T) {
	r, err := NewBuilder().
		Add("slack_send_message", handlerReturning("slack")).
		AddAll([]Entry{
			{Name: "notion_search", Handler: handlerReturning("notion")},
			{Name: "calculator", Handler: handlerReturning(42)},
		}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"slack_send_message", "notion_search", "calculator"}, r.Names())

	h, ok := r.Lookup("calculator")
	require.True(t, ok)
	out, err := h(context.Background(), nil, types.SkillExecutionContext{})
	require.NoError(t, err)
	assert.Equal(t, 42, out)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestBuild_RejectsDuplicates(t *testing.T) {
	_, err := NewBuilder().
		Add("slack_send_message", handlerReturning(1)).
		Add("slack_send_message", handlerReturning(2)).
		Build()
	require.ErrorContains(t, err, `duplicate handler "slack_send_message"`)
}

func TestBuild_RejectsEmptyAndNil(t *testing.T) {
	_, err := NewBuilder().
		Add("", handlerReturning(1)).
		Add("nil_handler", nil).
		Build()
	require.ErrorContains(t, err, "without a name")
	require.ErrorContains(t, err, `"nil_handler" is nil`)
}

func TestNamesIsACopy(t *testing.T) {
	r, err := NewBuilder().Add("a", handlerReturning(nil)).Build()
	require.NoError(t, err)

	names := r.Names()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, r.Names())
}
