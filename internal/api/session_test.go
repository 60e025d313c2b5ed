package api

import (
	"testing"

	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionBinding(t *testing.T) {
	r := NewSessionRegistry()
	first := &Client{}
	second := &Client{}

	require.NoError(t, r.Bind("p1", first))

	t.Run("duplicate binding is rejected", func(t *testing.T) {
		err := r.Bind("p1", second)
		require.Error(t, err)
		assert.True(t, game.IsKind(err, game.KindSessionConflict))

		// The first binding survives the conflict.
		current, bound := r.Get("p1")
		require.True(t, bound)
		assert.Same(t, first, current)
	})

	t.Run("rebinding the same client is a no-op", func(t *testing.T) {
		assert.NoError(t, r.Bind("p1", first))
		assert.Equal(t, 1, r.Count())
	})

	t.Run("unbind frees the identity", func(t *testing.T) {
		r.Unbind("p1", first)
		_, bound := r.Get("p1")
		assert.False(t, bound)

		assert.NoError(t, r.Bind("p1", second))
	})

	t.Run("stale teardown does not evict a new binding", func(t *testing.T) {
		r.Unbind("p1", first)
		current, bound := r.Get("p1")
		require.True(t, bound)
		assert.Same(t, second, current)
	})
}
