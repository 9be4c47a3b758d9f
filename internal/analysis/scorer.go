package analysis

// Score applies the readability formula to the four aggregate features,
// at sentence or document granularity alike. Any nil input yields a nil
// result: a feature that could not be computed must not be defaulted,
// or it would silently bias the linear combination.
func (c *ScoringConfig) Score(freqLog, maxSDL, contentWordsPerClause, proportionConcrete *float64) ScoreResult {
	if freqLog == nil || maxSDL == nil || contentWordsPerClause == nil || proportionConcrete == nil {
		return ScoreResult{}
	}

	raw := c.Coefficients.Constant +
		c.Coefficients.FreqLog**freqLog +
		c.Coefficients.MaxSDL**maxSDL +
		c.Coefficients.ContentWordsPerClause**contentWordsPerClause +
		c.Coefficients.ProportionConcrete**proportionConcrete

	score := clamp(100-raw, 0, 100)
	return ScoreResult{Score: &score, Level: c.Level(&score)}
}

// Level maps a score onto the 1-4 difficulty scale. A score equal to a
// threshold falls in the higher level. Nil propagates.
func (c *ScoringConfig) Level(score *float64) *int {
	if score == nil {
		return nil
	}
	level := len(c.Thresholds) + 1
	for i, t := range c.Thresholds {
		if *score < t {
			level = i + 1
			break
		}
	}
	return &level
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
