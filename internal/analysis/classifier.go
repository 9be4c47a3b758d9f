package analysis

import (
	"fmt"
	"strings"

	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
)

// TokenClassifier derives the per-token features of one annotated token
// in the context of its sentence. Derived values are memoized: several
// sentence aggregates re-read the same feature, and the compute-once
// contract keeps repeated analysis bit-identical.
type TokenClassifier struct {
	sent *annotation.Sentence
	idx  int
	lex  *lexicon.Table
	cfg  *ScoringConfig

	headsDone bool
	heads     []int

	depLenDone bool
	depLen     int

	semDone bool
	semOK   bool
	semType lexicon.SemType

	freqDone bool
	freq     *float64
}

func newTokenClassifier(sent *annotation.Sentence, idx int, lex *lexicon.Table, cfg *ScoringConfig) *TokenClassifier {
	return &TokenClassifier{sent: sent, idx: idx, lex: lex, cfg: cfg}
}

func (c *TokenClassifier) token() *annotation.Token {
	return &c.sent.Tokens[c.idx]
}

// IsNoun reports whether the token is a common or proper noun.
func (c *TokenClassifier) IsNoun() bool {
	pos := c.token().POS
	return pos == "NOUN" || pos == "PROPN"
}

// IsFiniteVerb reports whether the fine-grained tag carries the Dutch
// finite-verb marker.
func (c *TokenClassifier) IsFiniteVerb() bool {
	return strings.Contains(c.token().Tag, "WW|pv")
}

// IsContentWord reports whether the token carries lexical meaning for
// the information-density measure: nouns, proper nouns, verbs and
// adjectives, plus adverbs from the manner-adverb list. Numerals and
// copular verbs are excluded.
func (c *TokenClassifier) IsContentWord() bool {
	t := c.token()
	if strings.HasPrefix(t.Tag, "TW") {
		return false
	}
	switch t.POS {
	case "NOUN", "PROPN", "ADJ":
		return true
	case "VERB":
		return t.Dep != "cop"
	case "ADV":
		return c.lex.IsMannerAdverb(t.Text)
	}
	return false
}

// IsContentWordExclProperNouns narrows IsContentWord for the frequency
// feature, which skips proper nouns.
func (c *TokenClassifier) IsContentWordExclProperNouns() bool {
	return c.IsContentWord() && c.token().POS != "PROPN"
}

// firstConjunct walks up the chain of "conj" relations and returns the
// index of the first conjunct. For a token that is not a conjunct this
// is the token itself.
func (c *TokenClassifier) firstConjunct(i int) int {
	j := i
	for steps := 0; c.sent.Tokens[j].Dep == "conj"; steps++ {
		if steps > len(c.sent.Tokens) {
			panic(fmt.Sprintf("conjunction cycle at token %d", i))
		}
		j = c.sent.Tokens[j].Head
	}
	return j
}

// EffectiveHeads resolves the token's semantic head set. The annotated
// head of a non-first conjunct points at the preceding conjunct and is
// overridden by the head of the first conjunct in the chain. A nominal
// subject whose head is coordinated is shared across all conjoined
// predicates, so every coordinated sibling of the head is a candidate
// head too. The set is never empty.
func (c *TokenClassifier) EffectiveHeads() []int {
	if c.headsDone {
		return c.heads
	}

	head := c.sent.Tokens[c.firstConjunct(c.idx)].Head
	heads := []int{head}

	if c.token().Dep == "nsubj" {
		for k := range c.sent.Tokens {
			if k == c.idx || c.sent.Tokens[k].Dep != "conj" {
				continue
			}
			if c.firstConjunct(k) == head {
				heads = append(heads, k)
			}
		}
	}

	c.heads = heads
	c.headsDone = true
	return heads
}

// DependencyLength is the number of intervening non-punctuation tokens
// between the token and its resolved head, maximized over all candidate
// heads. Adjacent pairs score 0; punctuation always scores 0.
func (c *TokenClassifier) DependencyLength() int {
	if c.depLenDone {
		return c.depLen
	}

	length := 0
	if !c.token().IsPunct() {
		for _, h := range c.EffectiveHeads() {
			if d := c.interveningTokens(c.idx, h); d > length {
				length = d
			}
		}
	}

	c.depLen = length
	c.depLenDone = true
	return length
}

// interveningTokens counts non-punctuation tokens strictly between two
// sentence positions, in whichever textual order they occur.
func (c *TokenClassifier) interveningTokens(i, j int) int {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	n := 0
	for k := lo + 1; k < hi; k++ {
		if !c.sent.Tokens[k].IsPunct() {
			n++
		}
	}
	return n
}

// SemanticType classifies the token's referent tangibility. It only
// applies to nouns and to "SPEC" tagged symbols; the second return
// value is false for all other tokens. Resolution order for nouns:
// exact word, then lemma, then named-entity heuristic, then unknown.
// SPEC symbols are concrete exactly when they are a known measurement
// unit.
func (c *TokenClassifier) SemanticType() (lexicon.SemType, bool) {
	if c.semDone {
		return c.semType, c.semOK
	}
	c.semType, c.semOK = c.computeSemanticType()
	c.semDone = true
	return c.semType, c.semOK
}

func (c *TokenClassifier) computeSemanticType() (lexicon.SemType, bool) {
	t := c.token()

	if c.IsNoun() {
		if st, ok := c.lex.SemanticType(t.Text); ok {
			return st, true
		}
		if st, ok := c.lex.SemanticType(t.Lemma); ok {
			return st, true
		}
		switch t.EntType {
		case "PER", "PERSON", "GPE", "LOC":
			return lexicon.Concrete, true
		case "ORG":
			return lexicon.Abstract, true
		}
		return lexicon.Unknown, true
	}

	if strings.HasPrefix(t.Tag, "SPEC") && c.lex.IsMeasurementUnit(t.Text) {
		return lexicon.Concrete, true
	}
	return 0, false
}

// WordFrequency returns the token's zipf frequency, or nil when the
// token does not participate in the frequency feature: proper nouns,
// non-content words and skip-listed words are disqualified. Words
// absent from the table get the configured smoothed zero-count value.
func (c *TokenClassifier) WordFrequency() *float64 {
	if c.freqDone {
		return c.freq
	}
	c.freq = c.computeWordFrequency()
	c.freqDone = true
	return c.freq
}

func (c *TokenClassifier) computeWordFrequency() *float64 {
	t := c.token()
	if !c.IsContentWordExclProperNouns() {
		return nil
	}
	if c.lex.IsSkipWord(t.Text) || c.lex.IsSkipWord(t.Lemma) {
		return nil
	}

	word := t.Text
	if c.cfg.CompoundFrequencyAdjustment {
		if head, ok := c.lex.CompoundHead(word); ok {
			word = head
		}
	}

	zipf, ok := c.lex.Frequency(word)
	if !ok {
		zipf = c.cfg.DefaultZipf
	}
	return &zipf
}
