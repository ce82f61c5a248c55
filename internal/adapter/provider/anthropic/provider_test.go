package anthropic

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/bakabot/internal/provider"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func messageHandler(t *testing.T, calls *atomic.Int32, status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}

func TestProvider_Complete_Success(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		messageHandler(t, &calls, http.StatusOK, `{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [
				{"type": "text", "text": "Baka: you are not the moon."}
			],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 9}
		}`)(w, r)
	}))
	defer srv.Close()

	p := NewProvider(provider.Config{APIKey: "test-key", Model: "claude-test", BaseURL: srv.URL}, newTestLogger())
	text, err := p.Complete(context.Background(), "Baka: stop looking at me.\n", 64)

	require.NoError(t, err)
	assert.Equal(t, "Baka: you are not the moon.", text)
	assert.Equal(t, "claude-test", got["model"])
	assert.EqualValues(t, 64, got["max_tokens"])
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_Complete_NoTextBlock(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(messageHandler(t, &calls, http.StatusOK, `{
		"id": "msg_2", "type": "message", "role": "assistant", "model": "m",
		"content": [], "stop_reason": "max_tokens",
		"usage": {"input_tokens": 1, "output_tokens": 0}
	}`))
	defer srv.Close()

	p := NewProvider(provider.Config{APIKey: "test-key", BaseURL: srv.URL}, newTestLogger())
	_, err := p.Complete(context.Background(), "p", 8)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

func TestProvider_Complete_ServerErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(messageHandler(t, &calls, http.StatusInternalServerError,
		`{"type":"error","error":{"type":"api_error","message":"overloaded"}}`))
	defer srv.Close()

	p := NewProvider(provider.Config{APIKey: "test-key", BaseURL: srv.URL}, newTestLogger())
	_, err := p.Complete(context.Background(), "p", 8)

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestProvider_Name(t *testing.T) {
	t.Parallel()

	p := NewProvider(provider.Config{APIKey: "k"}, newTestLogger())
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, defaultModel, p.model)
}
