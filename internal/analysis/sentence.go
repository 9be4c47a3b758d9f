package analysis

import (
	"sort"
	"strings"

	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
)

// Relations that open a subordinate clause outright. The generic "acl"
// relation only counts when a finite verb is involved.
var subordinateRelations = map[string]bool{
	"acl:relcl": true,
	"advcl":     true,
	"ccomp":     true,
}

// SentenceAnalysis aggregates the classified tokens of one sentence.
// The feature set is computed once on first use and cached; repeated
// calls return the identical value.
type SentenceAnalysis struct {
	sent        *annotation.Sentence
	cfg         *ScoringConfig
	classifiers []*TokenClassifier

	features *SentenceFeatures
}

// NewSentenceAnalysis wraps one annotated sentence. The lexicon table
// and scoring config are injected so tests can substitute fixed
// in-memory tables.
func NewSentenceAnalysis(sent *annotation.Sentence, lex *lexicon.Table, cfg *ScoringConfig) *SentenceAnalysis {
	classifiers := make([]*TokenClassifier, len(sent.Tokens))
	for i := range sent.Tokens {
		classifiers[i] = newTokenClassifier(sent, i, lex, cfg)
	}
	return &SentenceAnalysis{sent: sent, cfg: cfg, classifiers: classifiers}
}

// Features computes (once) and returns all sentence-level aggregates.
func (a *SentenceAnalysis) Features() *SentenceFeatures {
	if a.features != nil {
		return a.features
	}

	f := &SentenceFeatures{Text: a.sent.Text()}

	a.categorize(f)
	f.MeanLogFrequency = a.meanLogFrequency()
	f.MaxDependencyLength = a.maxDependencyLength()
	f.ContentWordsPerClause = a.contentWordsPerClause(len(f.ContentWords), len(f.FiniteVerbs))
	f.ProportionConcreteNouns = proportionConcrete(len(f.ConcreteNouns), len(f.AbstractNouns), len(f.UndefinedNouns))
	f.Dependencies = a.dependencies()
	f.LeastFrequent = a.leastFrequent(5)
	f.Passives = a.passiveSpans()
	f.HasPassive = len(f.Passives) > 0
	f.SubordinateClauses = a.subordinateSpans()
	f.HasSubordinate = len(f.SubordinateClauses) > 0

	maxSDL := intToFloat(f.MaxDependencyLength)
	result := a.cfg.Score(f.MeanLogFrequency, maxSDL, f.ContentWordsPerClause, f.ProportionConcreteNouns)
	f.Score = result.Score
	f.Level = result.Level

	a.features = f
	return f
}

// categorize fills the word lists: nouns by semantic type, content
// words, finite verbs and pronouns by person.
func (a *SentenceAnalysis) categorize(f *SentenceFeatures) {
	f.ConcreteNouns = []string{}
	f.AbstractNouns = []string{}
	f.UndefinedNouns = []string{}
	f.UnknownNouns = []string{}
	f.ContentWords = []string{}
	f.FiniteVerbs = []string{}

	for i, c := range a.classifiers {
		t := &a.sent.Tokens[i]

		if c.IsContentWord() {
			f.ContentWords = append(f.ContentWords, t.Text)
		}
		if c.IsFiniteVerb() {
			f.FiniteVerbs = append(f.FiniteVerbs, t.Text)
		}

		if c.IsNoun() {
			if st, ok := c.SemanticType(); ok {
				switch st {
				case lexicon.Concrete:
					f.ConcreteNouns = append(f.ConcreteNouns, t.Text)
				case lexicon.Abstract:
					f.AbstractNouns = append(f.AbstractNouns, t.Text)
				case lexicon.Undefined:
					f.UndefinedNouns = append(f.UndefinedNouns, t.Text)
				case lexicon.Unknown:
					f.UnknownNouns = append(f.UnknownNouns, t.Text)
				}
			}
		}

		if t.POS == "PRON" {
			switch pronounPerson(t.Tag) {
			case 1:
				f.Pronouns.First = append(f.Pronouns.First, t.Text)
			case 2:
				f.Pronouns.Second = append(f.Pronouns.Second, t.Text)
			case 3:
				f.Pronouns.Third = append(f.Pronouns.Third, t.Text)
			}
		}
	}
}

// pronounPerson extracts the grammatical person from a CGN-style
// pronoun tag, whose fields carry markers like "1", "2b" or "3o".
func pronounPerson(tag string) int {
	for _, field := range strings.Split(tag, "|") {
		if field == "" || len(field) > 2 {
			continue
		}
		switch field[0] {
		case '1':
			return 1
		case '2':
			return 2
		case '3':
			return 3
		}
	}
	return 0
}

func (a *SentenceAnalysis) meanLogFrequency() *float64 {
	sum := 0.0
	n := 0
	for _, c := range a.classifiers {
		if freq := c.WordFrequency(); freq != nil {
			sum += *freq
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}

// maxDependencyLength is nil for sentences with fewer than two
// non-punctuation tokens: no dependency relation is meaningful there.
func (a *SentenceAnalysis) maxDependencyLength() *int {
	words := 0
	for i := range a.sent.Tokens {
		if !a.sent.Tokens[i].IsPunct() {
			words++
		}
	}
	if words < 2 {
		return nil
	}

	maxLen := 0
	for _, c := range a.classifiers {
		if d := c.DependencyLength(); d > maxLen {
			maxLen = d
		}
	}
	return &maxLen
}

// contentWordsPerClause divides content words by finite verbs. With no
// finite verb there is no detectable clause and the feature is nil,
// unless the legacy fallback of one clause is configured.
func (a *SentenceAnalysis) contentWordsPerClause(contentWords, finiteVerbs int) *float64 {
	if finiteVerbs == 0 {
		if !a.cfg.VerblessClauseFallback {
			return nil
		}
		finiteVerbs = 1
	}
	cwpc := float64(contentWords) / float64(finiteVerbs)
	return &cwpc
}

// proportionConcrete excludes unknown nouns from both sides of the
// ratio; undefined nouns count in the denominator only.
func proportionConcrete(concrete, abstract, undefined int) *float64 {
	total := concrete + abstract + undefined
	if total == 0 {
		return nil
	}
	p := float64(concrete) / float64(total)
	return &p
}

func (a *SentenceAnalysis) dependencies() []DependencyEntry {
	entries := make([]DependencyEntry, len(a.classifiers))
	for i, c := range a.classifiers {
		heads := c.EffectiveHeads()
		entries[i] = DependencyEntry{
			Token:  a.sent.Tokens[i].Text,
			Head:   a.sent.Tokens[heads[0]].Text,
			Length: c.DependencyLength(),
		}
	}
	return entries
}

// leastFrequent returns up to n scored words, rarest first. Ties keep
// sentence order.
func (a *SentenceAnalysis) leastFrequent(n int) []FrequencyEntry {
	var entries []FrequencyEntry
	for i, c := range a.classifiers {
		if freq := c.WordFrequency(); freq != nil {
			entries = append(entries, FrequencyEntry{Word: a.sent.Tokens[i].Text, Zipf: *freq})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Zipf < entries[j].Zipf })
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// passiveSpans marks passive constructions: a passive auxiliary's span
// runs from the auxiliary across its resolved head verb(s).
func (a *SentenceAnalysis) passiveSpans() []Span {
	var spans []Span
	for i, c := range a.classifiers {
		if a.sent.Tokens[i].Dep != "aux:pass" {
			continue
		}
		lo, hi := i, i
		for _, h := range c.EffectiveHeads() {
			if h < lo {
				lo = h
			}
			if h > hi {
				hi = h
			}
		}
		spans = append(spans, a.span(lo, hi))
	}
	return spans
}

// subordinateSpans marks subordinate clauses: relative, adverbial and
// complement clause relations always qualify; a generic clausal
// modifier ("acl") qualifies when the token or one of its direct
// dependents is a finite verb. A span covers the token and its direct
// dependents.
func (a *SentenceAnalysis) subordinateSpans() []Span {
	var spans []Span
	for i := range a.sent.Tokens {
		dep := a.sent.Tokens[i].Dep

		qualifies := subordinateRelations[dep]
		if !qualifies && dep == "acl" {
			qualifies = a.classifiers[i].IsFiniteVerb() || a.hasFiniteDependent(i)
		}
		if !qualifies {
			continue
		}

		lo, hi := i, i
		for k := range a.sent.Tokens {
			if k != i && a.sent.Tokens[k].Head == i {
				if k < lo {
					lo = k
				}
				if k > hi {
					hi = k
				}
			}
		}
		spans = append(spans, a.span(lo, hi))
	}
	return spans
}

func (a *SentenceAnalysis) hasFiniteDependent(i int) bool {
	for k := range a.sent.Tokens {
		if k != i && a.sent.Tokens[k].Head == i && a.classifiers[k].IsFiniteVerb() {
			return true
		}
	}
	return false
}

func (a *SentenceAnalysis) span(lo, hi int) Span {
	texts := make([]string, 0, hi-lo+1)
	for k := lo; k <= hi; k++ {
		texts = append(texts, a.sent.Tokens[k].Text)
	}
	return Span{Start: lo, End: hi, Text: strings.Join(texts, " ")}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
