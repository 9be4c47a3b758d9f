package analysis

import (
	"encoding/json"
	"fmt"
	"os"
)

// Coefficients are the fixed regression weights of the readability
// formula. They are fit externally on comprehension data and treated
// as configuration, never derived at runtime.
type Coefficients struct {
	Constant              float64 `json:"constant"`
	FreqLog               float64 `json:"freq_log"`
	MaxSDL                float64 `json:"max_sdl"`
	ContentWordsPerClause float64 `json:"content_words_per_clause"`
	ProportionConcrete    float64 `json:"proportion_concrete"`
}

// ScoringConfig bundles everything that is periodically recalibrated:
// the formula weights, the difficulty-level thresholds, the smoothed
// zero-count frequency and the classifier toggles.
type ScoringConfig struct {
	Coefficients Coefficients `json:"coefficients"`

	// Thresholds are the level boundaries, ascending. A score equal to
	// a threshold belongs to the higher level: [0,t1) is level 1,
	// [t1,t2) level 2, [t2,t3) level 3, [t3,100] level 4.
	Thresholds []float64 `json:"thresholds"`

	// DefaultZipf substitutes for words absent from the frequency table.
	DefaultZipf float64 `json:"default_zipf"`

	// CompoundFrequencyAdjustment substitutes the lexicon-registered
	// compound head spelling before the frequency lookup.
	CompoundFrequencyAdjustment bool `json:"compound_frequency_adjustment"`

	// VerblessClauseFallback restores the legacy behavior of counting
	// one clause when a sentence has no finite verb. The default policy
	// leaves content-words-per-clause nil for verbless sentences so
	// they do not contribute a score.
	VerblessClauseFallback bool `json:"verbless_clause_fallback"`
}

// DefaultScoringConfig returns the published calibration of the formula.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Coefficients: Coefficients{
			Constant:              -7.83150696,
			FreqLog:               17.05020517,
			MaxSDL:                -1.33286119,
			ContentWordsPerClause: -2.38774819,
			ProportionConcrete:    11.7213491,
		},
		Thresholds:                  []float64{34, 46, 60},
		DefaultZipf:                 1.3555,
		CompoundFrequencyAdjustment: true,
	}
}

// LoadScoringConfig reads a calibration file. An empty path returns the
// built-in defaults; a missing or malformed file is a startup failure.
func LoadScoringConfig(path string) (*ScoringConfig, error) {
	if path == "" {
		return DefaultScoringConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scoring config: %w", err)
	}
	defer f.Close()

	cfg := DefaultScoringConfig()
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scoring config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return cfg, nil
}

// Validate checks the structural constraints the scorer relies on.
func (c *ScoringConfig) Validate() error {
	if len(c.Thresholds) != 3 {
		return fmt.Errorf("expected 3 level thresholds, got %d", len(c.Thresholds))
	}
	prev := 0.0
	for i, t := range c.Thresholds {
		if t <= prev || t > 100 {
			return fmt.Errorf("thresholds must be strictly ascending within (0,100], got %v at position %d", t, i)
		}
		prev = t
	}
	if c.DefaultZipf < 0 {
		return fmt.Errorf("default zipf frequency must be non-negative, got %v", c.DefaultZipf)
	}
	return nil
}
