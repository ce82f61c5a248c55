package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_TimeoutOr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3*time.Second, Config{}.TimeoutOr(3*time.Second))
	assert.Equal(t, time.Second, Config{Timeout: time.Second}.TimeoutOr(3*time.Second))
}

func TestIsKnown(t *testing.T) {
	t.Parallel()

	for _, name := range []string{NameOpenAI, NameAnthropic, NameGemini, NameStub} {
		assert.True(t, IsKnown(name), name)
	}
	assert.False(t, IsKnown(""))
	assert.False(t, IsKnown("gpt3"))
}
