package koanf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaulkr/ragcontent"
	"github.com/shaulkr/ragcontent/koanf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := koanf.Load("")
		require.NoError(t, err)
		assert.Equal(t, []int{0}, cfg.Namespaces)
		assert.Equal(t, "en", cfg.ContentLanguage)
		assert.Equal(t, ":8080", cfg.ListenAddr)
		assert.False(t, cfg.PingConfigured())
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
ping_url: https://indexer.example.org/ping
namespaces: [0, 4]
title_allowlist: ["Special page"]
article_type_blocklist: ["portal"]
content_language: he
server: https://wiki.example.org
rest_path: /api
database_path: ":memory:"
`)

		cfg, err := koanf.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://indexer.example.org/ping", cfg.PingURL)
		assert.Equal(t, []int{0, 4}, cfg.Namespaces)
		assert.Equal(t, []string{"Special page"}, cfg.TitleAllowlist)
		assert.Equal(t, []string{"portal"}, cfg.ArticleTypeBlocklist)
		assert.Equal(t, "he", cfg.ContentLanguage)
		assert.Equal(t, ":memory:", cfg.DatabasePath)
		assert.True(t, cfg.PingConfigured())
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfigFile(t, "content_language: he\n")
		t.Setenv("RAGCONTENT_CONTENT_LANGUAGE", "ar")
		t.Setenv("RAGCONTENT_LISTEN_ADDR", ":9090")

		cfg, err := koanf.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "ar", cfg.ContentLanguage)
		assert.Equal(t, ":9090", cfg.ListenAddr)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := koanf.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid ping URL is rejected", func(t *testing.T) {
		path := writeConfigFile(t, "ping_url: not-a-url\n")
		_, err := koanf.Load(path)
		require.Error(t, err)
		assert.Equal(t, ragcontent.EINVALID, ragcontent.ErrorCode(err))
	})
}
