package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *GameError
		want string
	}{
		{
			name: "without cause",
			err:  NewError(KindNotFound, "game does not exist"),
			want: "NotFound: game does not exist",
		},
		{
			name: "with cause",
			err:  NewError(KindStorage, "save failed").Wrap(errors.New("disk full")),
			want: "Storage: save failed: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapKeepsSentinelUntouched(t *testing.T) {
	cause := errors.New("boom")
	wrapped := ErrGameNotFound.Wrap(cause)

	assert.Nil(t, ErrGameNotFound.Err)
	assert.Equal(t, ErrGameNotFound.Kind, wrapped.Kind)
	assert.Same(t, cause, errors.Unwrap(wrapped))
}

func TestIsKind(t *testing.T) {
	require.True(t, IsKind(ErrCardNotHeld, KindCardNotHeld))
	require.False(t, IsKind(ErrCardNotHeld, KindNotFound))

	// Matching survives wrapping through fmt.
	err := fmt.Errorf("declare failed: %w", ErrCardNotInPlay)
	assert.True(t, IsKind(err, KindCardNotInPlay))

	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindSessionConflict, KindOf(ErrSessionConflict))
	assert.Equal(t, KindStorage, KindOf(errors.New("plain")))
}
