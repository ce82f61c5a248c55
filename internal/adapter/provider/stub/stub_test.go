package stub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStub_Complete(t *testing.T) {
	t.Parallel()

	s := NewStub("a", "b")
	var got []string
	for i := 0; i < 5; i++ {
		text, err := s.Complete(context.Background(), "prompt", 64)
		require.NoError(t, err)
		got = append(got, text)
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "a"}, got)
	assert.Equal(t, "stub", s.Name())
}

func TestStub_Default(t *testing.T) {
	t.Parallel()

	text, err := NewStub().Complete(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultResponse, text)
}

func TestStub_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStub().Complete(ctx, "", 0)
	assert.ErrorIs(t, err, context.Canceled)
}
