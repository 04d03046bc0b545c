package ragcontent_test

import (
	"testing"

	"github.com/shaulkr/ragcontent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, ragcontent.DefaultConfig().Validate())
	})

	t.Run("content language required", func(t *testing.T) {
		t.Parallel()

		cfg := ragcontent.DefaultConfig()
		cfg.ContentLanguage = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, ragcontent.EINVALID, ragcontent.ErrorCode(err))
	})

	t.Run("relative ping URL rejected", func(t *testing.T) {
		t.Parallel()

		cfg := ragcontent.DefaultConfig()
		cfg.PingURL = "/not/absolute"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Equal(t, ragcontent.EINVALID, ragcontent.ErrorCode(err))
	})
}

func TestConfig_PingConfigured(t *testing.T) {
	t.Parallel()

	cfg := ragcontent.DefaultConfig()
	assert.False(t, cfg.PingConfigured())

	cfg.PingURL = "https://rag.example.org/ping"
	assert.True(t, cfg.PingConfigured())
}
