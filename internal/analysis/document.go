package analysis

import (
	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
)

// DocumentAnalysis aggregates an ordered list of sentence analyses.
// Document-level features are means of the per-sentence values, never
// re-derived from pooled tokens, and only sentences that produced a
// value contribute to each mean.
type DocumentAnalysis struct {
	sentences []*SentenceAnalysis
	cfg       *ScoringConfig

	features *DocumentFeatures
}

// NewDocumentAnalysis wraps an annotated document.
func NewDocumentAnalysis(doc *annotation.Document, lex *lexicon.Table, cfg *ScoringConfig) *DocumentAnalysis {
	sentences := make([]*SentenceAnalysis, len(doc.Sentences))
	for i := range doc.Sentences {
		sentences[i] = NewSentenceAnalysis(&doc.Sentences[i], lex, cfg)
	}
	return &DocumentAnalysis{sentences: sentences, cfg: cfg}
}

// Features computes (once) and returns the document-level aggregates.
func (a *DocumentAnalysis) Features() *DocumentFeatures {
	if a.features != nil {
		return a.features
	}

	f := &DocumentFeatures{
		SentenceCount: len(a.sentences),
		Sentences:     make([]SentenceFeatures, len(a.sentences)),
	}

	var freqs, sdls, cwpcs, concretes, scores []float64
	for i, sa := range a.sentences {
		sf := sa.Features()
		f.Sentences[i] = *sf

		freqs = appendValue(freqs, sf.MeanLogFrequency)
		sdls = appendValue(sdls, intToFloat(sf.MaxDependencyLength))
		cwpcs = appendValue(cwpcs, sf.ContentWordsPerClause)
		concretes = appendValue(concretes, sf.ProportionConcreteNouns)
		scores = appendValue(scores, sf.Score)
	}

	f.MeanLogFrequency = mean(freqs)
	f.MeanMaxDependencyLength = mean(sdls)
	f.MeanContentWordsPerClause = mean(cwpcs)
	f.MeanProportionConcreteNouns = mean(concretes)

	f.MeanScore = mean(scores)
	f.MinScore = minOf(scores)
	f.MaxScore = maxOf(scores)

	// The document score feeds the feature means back through the same
	// formula; it is not the mean of per-sentence scores.
	result := a.cfg.Score(f.MeanLogFrequency, f.MeanMaxDependencyLength, f.MeanContentWordsPerClause, f.MeanProportionConcreteNouns)
	f.Score = result.Score
	f.Level = result.Level

	a.features = f
	return f
}

func appendValue(xs []float64, v *float64) []float64 {
	if v == nil {
		return xs
	}
	return append(xs, *v)
}

func mean(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))
	return &m
}

func minOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return &m
}

func maxOf(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return &m
}
