package analysis

import (
	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
)

// Analyzer bundles the immutable lexicon table and scoring calibration
// behind the public analysis operations. All methods are pure and safe
// for concurrent use: documents and sentences can be analyzed in
// parallel without locking.
type Analyzer struct {
	lex *lexicon.Table
	cfg *ScoringConfig
}

// NewAnalyzer creates an analyzer over a loaded lexicon and calibration.
func NewAnalyzer(lex *lexicon.Table, cfg *ScoringConfig) *Analyzer {
	return &Analyzer{lex: lex, cfg: cfg}
}

// Config exposes the active scoring calibration.
func (a *Analyzer) Config() *ScoringConfig {
	return a.cfg
}

// AnalyzeSentence computes all sentence-level features for one
// annotated sentence.
func (a *Analyzer) AnalyzeSentence(sent *annotation.Sentence) *SentenceFeatures {
	return NewSentenceAnalysis(sent, a.lex, a.cfg).Features()
}

// AnalyzeDocument computes sentence- and document-level features for an
// annotated document.
func (a *Analyzer) AnalyzeDocument(doc *annotation.Document) *DocumentFeatures {
	return NewDocumentAnalysis(doc, a.lex, a.cfg).Features()
}

// Score applies the readability formula directly to four aggregate
// features, at either granularity.
func (a *Analyzer) Score(freqLog, maxSDL, contentWordsPerClause, proportionConcrete *float64) ScoreResult {
	return a.cfg.Score(freqLog, maxSDL, contentWordsPerClause, proportionConcrete)
}
