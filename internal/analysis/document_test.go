package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tekstlab/leesmeter/internal/annotation"
)

func newTestDocumentAnalysis(doc *annotation.Document) *DocumentAnalysis {
	return NewDocumentAnalysis(doc, testLexicon(), DefaultScoringConfig())
}

// shortSentence is "Jan eet ." with minimal annotation. Its only noun
// is an unknown proper noun, so it never yields a concreteness ratio
// or a score.
func shortSentence() annotation.Sentence {
	return annotation.Sentence{Tokens: []annotation.Token{
		tk(0, "Jan", "jan", "PROPN", "N|eigen|ev", "nsubj", 1),
		tk(1, "eet", "eten", "VERB", "WW|pv|tgw|ev", "root", 1),
		tk(2, ".", ".", "PUNCT", "LET", "punct", 1),
	}}
}

// fietsSentence is "Hij ziet de fiets ."; all four features resolve.
func fietsSentence() annotation.Sentence {
	return annotation.Sentence{Tokens: []annotation.Token{
		tk(0, "Hij", "hij", "PRON", "VNW|pers|pron|nomin|vol|3|ev|masc", "nsubj", 1),
		tk(1, "ziet", "zien", "VERB", "WW|pv|tgw|ev", "root", 1),
		tk(2, "de", "de", "DET", "LID|bep", "det", 3),
		tk(3, "fiets", "fiets", "NOUN", "N|soort|ev", "obj", 1),
		tk(4, ".", ".", "PUNCT", "LET", "punct", 1),
	}}
}

func TestDocumentAnalysis_Features(t *testing.T) {
	doc := &annotation.Document{Sentences: []annotation.Sentence{
		*oudegrachtSentence(),
		fietsSentence(),
	}}

	f := newTestDocumentAnalysis(doc).Features()

	assert.Equal(t, 2, f.SentenceCount)
	require.Len(t, f.Sentences, 2)

	s1, s2 := &f.Sentences[0], &f.Sentences[1]

	// Document means are arithmetic means of the non-nil per-sentence
	// values.
	require.NotNil(t, f.MeanLogFrequency)
	assert.InDelta(t, (*s1.MeanLogFrequency+*s2.MeanLogFrequency)/2, *f.MeanLogFrequency, 1e-12)

	require.NotNil(t, f.MeanMaxDependencyLength)
	assert.InDelta(t, float64(*s1.MaxDependencyLength+*s2.MaxDependencyLength)/2, *f.MeanMaxDependencyLength, 1e-12)

	require.NotNil(t, f.MeanContentWordsPerClause)
	assert.InDelta(t, (*s1.ContentWordsPerClause+*s2.ContentWordsPerClause)/2, *f.MeanContentWordsPerClause, 1e-12)

	require.NotNil(t, f.MeanProportionConcreteNouns)
	assert.InDelta(t, (*s1.ProportionConcreteNouns+*s2.ProportionConcreteNouns)/2, *f.MeanProportionConcreteNouns, 1e-12)

	// The document score is the formula applied to the feature means,
	// never the mean of the per-sentence scores.
	expected := DefaultScoringConfig().Score(
		f.MeanLogFrequency,
		f.MeanMaxDependencyLength,
		f.MeanContentWordsPerClause,
		f.MeanProportionConcreteNouns,
	)
	require.NotNil(t, f.Score)
	assert.Equal(t, *expected.Score, *f.Score)
	assert.Equal(t, *expected.Level, *f.Level)

	// Min, max and mean of the per-sentence scores.
	require.NotNil(t, f.MinScore)
	require.NotNil(t, f.MaxScore)
	require.NotNil(t, f.MeanScore)
	assert.LessOrEqual(t, *f.MinScore, *f.MaxScore)
	assert.InDelta(t, (*s1.Score+*s2.Score)/2, *f.MeanScore, 1e-12)
}

// A sentence whose proportion-concrete is nil drops out of that mean
// but still contributes every feature it does have.
func TestDocumentAnalysis_PartialSentences(t *testing.T) {
	// "Jan eet ." has no nouns the concreteness ratio can use (the
	// proper noun is unknown) and therefore no proportion at all.
	doc := &annotation.Document{Sentences: []annotation.Sentence{
		*oudegrachtSentence(),
		shortSentence(),
	}}

	f := newTestDocumentAnalysis(doc).Features()

	s1, s2 := &f.Sentences[0], &f.Sentences[1]
	require.Nil(t, s2.ProportionConcreteNouns)
	require.NotNil(t, s1.ProportionConcreteNouns)

	// Only the first sentence contributes.
	require.NotNil(t, f.MeanProportionConcreteNouns)
	assert.Equal(t, *s1.ProportionConcreteNouns, *f.MeanProportionConcreteNouns)

	// The second sentence's score is nil (guard rail), so min/max/mean
	// cover only the first.
	require.Nil(t, s2.Score)
	require.NotNil(t, s1.Score)
	assert.Equal(t, *s1.Score, *f.MinScore)
	assert.Equal(t, *s1.Score, *f.MaxScore)
	assert.Equal(t, *s1.Score, *f.MeanScore)
}

func TestDocumentAnalysis_EmptyDocument(t *testing.T) {
	f := newTestDocumentAnalysis(&annotation.Document{}).Features()

	assert.Equal(t, 0, f.SentenceCount)
	assert.Nil(t, f.MeanLogFrequency)
	assert.Nil(t, f.MeanMaxDependencyLength)
	assert.Nil(t, f.MeanContentWordsPerClause)
	assert.Nil(t, f.MeanProportionConcreteNouns)
	assert.Nil(t, f.MinScore)
	assert.Nil(t, f.MaxScore)
	assert.Nil(t, f.MeanScore)
	assert.Nil(t, f.Score)
	assert.Nil(t, f.Level)
}

func TestDocumentAnalysis_Memoization(t *testing.T) {
	a := newTestDocumentAnalysis(&annotation.Document{Sentences: []annotation.Sentence{shortSentence()}})
	assert.Same(t, a.Features(), a.Features())
}

func TestAnalyzer(t *testing.T) {
	analyzer := NewAnalyzer(testLexicon(), DefaultScoringConfig())

	sent := oudegrachtSentence()
	sf := analyzer.AnalyzeSentence(sent)
	require.NotNil(t, sf.Score)

	df := analyzer.AnalyzeDocument(&annotation.Document{Sentences: []annotation.Sentence{*sent}})
	assert.Equal(t, 1, df.SentenceCount)
	require.NotNil(t, df.Score)

	// With one sentence the document means equal the sentence features.
	assert.Equal(t, *sf.MeanLogFrequency, *df.MeanLogFrequency)
	assert.Equal(t, *sf.Score, *df.MinScore)
	assert.Equal(t, *sf.Score, *df.MaxScore)
}
