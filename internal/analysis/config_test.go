package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScoringConfig(t *testing.T) {
	cfg := DefaultScoringConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []float64{34, 46, 60}, cfg.Thresholds)
	assert.Equal(t, 1.3555, cfg.DefaultZipf)
	assert.True(t, cfg.CompoundFrequencyAdjustment)
	assert.False(t, cfg.VerblessClauseFallback)
}

func TestLoadScoringConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scoring.json")
	content := `{
		"coefficients": {
			"constant": -5.0,
			"freq_log": 16.0,
			"max_sdl": -1.0,
			"content_words_per_clause": -2.0,
			"proportion_concrete": 10.0
		},
		"thresholds": [30, 50, 70],
		"default_zipf": 1.5,
		"compound_frequency_adjustment": false,
		"verbless_clause_fallback": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadScoringConfig(path)
	require.NoError(t, err)

	assert.Equal(t, -5.0, cfg.Coefficients.Constant)
	assert.Equal(t, []float64{30, 50, 70}, cfg.Thresholds)
	assert.Equal(t, 1.5, cfg.DefaultZipf)
	assert.False(t, cfg.CompoundFrequencyAdjustment)
	assert.True(t, cfg.VerblessClauseFallback)
}

func TestLoadScoringConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadScoringConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScoringConfig(), cfg)
}

func TestLoadScoringConfig_Failures(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "thresholds: [1,2,3]"},
		{name: "unknown field", content: `{"coefficient": 1}`},
		{name: "descending thresholds", content: `{"thresholds": [60, 46, 34]}`},
		{name: "too few thresholds", content: `{"thresholds": [34, 46]}`},
		{name: "threshold above range", content: `{"thresholds": [34, 46, 160]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadScoringConfig(path)
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadScoringConfig(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})
}
