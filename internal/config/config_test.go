package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 60, cfg.RateLimit.IPLimitPerMin)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: "9090"
  max_body_bytes: 2048
annotator:
  url: http://annotator:9005
  timeout: 5s
cache:
  ttl: 1m
rate_limit:
  ip_limit_per_min: 30
  burst_multiplier: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "http://annotator:9005", cfg.Annotator.URL)
	assert.Equal(t, 5*time.Second, cfg.Annotator.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 30, cfg.RateLimit.IPLimitPerMin)
	// untouched fields keep defaults
	assert.Equal(t, "./lexicon", cfg.Lexicon.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("ANNOTATOR_URL", "http://nlp.internal:9005")
	t.Setenv("LEXICON_DIR", "/srv/lexicon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "http://nlp.internal:9005", cfg.Annotator.URL)
	assert.Equal(t, "/srv/lexicon", cfg.Lexicon.Dir)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rate_limit:\n  ip_limit_per_min: -1\n"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
