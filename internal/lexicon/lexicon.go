// Package lexicon provides the read-only lexical resources the
// analyzer depends on: noun semantic types with optional compound
// heads, zipf word frequencies, the frequency skip-list, manner
// adverbs and measurement-unit symbols. A Table is loaded once at
// startup and never mutated afterwards, so it is safe for concurrent
// readers without locking.
package lexicon

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SemType classifies a noun's referent tangibility.
type SemType int

const (
	Concrete SemType = iota
	Abstract
	Undefined
	Unknown
)

// String returns the lowercase name used in data files and JSON output.
func (t SemType) String() string {
	switch t {
	case Concrete:
		return "concrete"
	case Abstract:
		return "abstract"
	case Undefined:
		return "undefined"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// ParseSemType parses the data-file spelling of a semantic type.
// Unknown is never stored in the lexicon; it is the classifier's
// fallback for nouns the lexicon does not know.
func ParseSemType(s string) (SemType, bool) {
	switch s {
	case "concrete":
		return Concrete, true
	case "abstract":
		return Abstract, true
	case "undefined":
		return Undefined, true
	}
	return 0, false
}

// Table holds all lexical lookups. All keys are stored Dutch-lowercased
// and lookups fold their argument the same way.
type Table struct {
	semTypes      map[string]SemType
	compoundHeads map[string]string
	frequencies   map[string]float64
	skipWords     map[string]struct{}
	mannerAdverbs map[string]struct{}
	units         map[string]struct{}
}

// Fold lowercases a word with Dutch casing rules, matching how all
// table keys are stored.
func Fold(word string) string {
	return cases.Lower(language.Dutch).String(word)
}

// SemanticType looks up the curated semantic type of a word.
func (t *Table) SemanticType(word string) (SemType, bool) {
	st, ok := t.semTypes[Fold(word)]
	return st, ok
}

// CompoundHead returns the registered head spelling of a compound
// noun, used for the compound-frequency adjustment.
func (t *Table) CompoundHead(word string) (string, bool) {
	h, ok := t.compoundHeads[Fold(word)]
	return h, ok
}

// Frequency returns the zipf frequency of a word.
func (t *Table) Frequency(word string) (float64, bool) {
	f, ok := t.frequencies[Fold(word)]
	return f, ok
}

// IsSkipWord reports whether a word is excluded from frequency scoring.
func (t *Table) IsSkipWord(word string) bool {
	_, ok := t.skipWords[Fold(word)]
	return ok
}

// IsMannerAdverb reports whether an adverb counts as a content word.
func (t *Table) IsMannerAdverb(word string) bool {
	_, ok := t.mannerAdverbs[Fold(word)]
	return ok
}

// IsMeasurementUnit reports whether a symbol is a known unit of measure.
func (t *Table) IsMeasurementUnit(word string) bool {
	_, ok := t.units[Fold(word)]
	return ok
}

// Entries returns the number of loaded entries per resource, for
// startup logging.
func (t *Table) Entries() map[string]int {
	return map[string]int{
		"semantic_types":    len(t.semTypes),
		"compound_heads":    len(t.compoundHeads),
		"frequencies":       len(t.frequencies),
		"skip_words":        len(t.skipWords),
		"manner_adverbs":    len(t.mannerAdverbs),
		"measurement_units": len(t.units),
	}
}

// NewStatic builds a Table from in-memory data. Intended for tests and
// embedded defaults; keys are folded like the file loader does.
func NewStatic(
	semTypes map[string]SemType,
	compoundHeads map[string]string,
	frequencies map[string]float64,
	skipWords, mannerAdverbs, units []string,
) *Table {
	t := &Table{
		semTypes:      make(map[string]SemType, len(semTypes)),
		compoundHeads: make(map[string]string, len(compoundHeads)),
		frequencies:   make(map[string]float64, len(frequencies)),
		skipWords:     make(map[string]struct{}, len(skipWords)),
		mannerAdverbs: make(map[string]struct{}, len(mannerAdverbs)),
		units:         make(map[string]struct{}, len(units)),
	}
	for w, st := range semTypes {
		t.semTypes[Fold(w)] = st
	}
	for w, h := range compoundHeads {
		t.compoundHeads[Fold(w)] = Fold(h)
	}
	for w, f := range frequencies {
		t.frequencies[Fold(w)] = f
	}
	for _, w := range skipWords {
		t.skipWords[Fold(w)] = struct{}{}
	}
	for _, w := range mannerAdverbs {
		t.mannerAdverbs[Fold(w)] = struct{}{}
	}
	for _, w := range units {
		t.units[Fold(w)] = struct{}{}
	}
	return t
}
