package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.NotEmpty(t, cfg.Model)
	assert.Zero(t, cfg.Temperature)
	assert.Equal(t, 20*time.Second, cfg.Timeout)
}

func TestConfigOptions(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://verifier.internal:8080"),
		WithModel("qwen-turbo"),
		WithToken("secret"),
		WithTemperature(0.2),
		WithTimeout(5*time.Second),
	)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://verifier.internal:8080/v1", cfg.Host) // normalized
	assert.Equal(t, "qwen-turbo", cfg.Model)
	assert.Equal(t, "secret", cfg.Token)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestConfigValidate(t *testing.T) {
	t.Run("missing host", func(t *testing.T) {
		cfg := NewConfig(WithHost(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := NewConfig(WithModel(""))
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := NewConfig(WithTemperature(3.5))
		assert.Error(t, cfg.Validate())
	})

	t.Run("normalize fills token and timeout", func(t *testing.T) {
		cfg := &Config{Host: "http://h", Model: "m"}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "none", cfg.Token)
		assert.Equal(t, 20*time.Second, cfg.Timeout)
	})
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short"))

	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, '减')
	}
	got := Excerpt(string(long))
	assert.Len(t, []rune(got), SnippetExcerptLen)
}
