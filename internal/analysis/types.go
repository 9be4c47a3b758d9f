package analysis

// Span is an inclusive token index range inside a sentence, with the
// covered surface text.
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// FrequencyEntry pairs a word with its zipf frequency.
type FrequencyEntry struct {
	Word string  `json:"word"`
	Zipf float64 `json:"zipf"`
}

// DependencyEntry reports one token's resolved dependency distance.
type DependencyEntry struct {
	Token  string `json:"token"`
	Head   string `json:"head"`
	Length int    `json:"length"`
}

// Pronouns groups pronoun surface forms by grammatical person.
type Pronouns struct {
	First  []string `json:"first,omitempty"`
	Second []string `json:"second,omitempty"`
	Third  []string `json:"third,omitempty"`
}

// SentenceFeatures holds all sentence-level aggregates. A nil pointer
// means the feature could not be computed from this sentence (empty
// contributing set), which is deliberately distinct from zero: missing
// features propagate as nil instead of biasing the score.
type SentenceFeatures struct {
	Text string `json:"text"`

	MeanLogFrequency        *float64 `json:"mean_log_frequency"`
	MaxDependencyLength     *int     `json:"max_dependency_length"`
	ContentWordsPerClause   *float64 `json:"content_words_per_clause"`
	ProportionConcreteNouns *float64 `json:"proportion_concrete_nouns"`

	ConcreteNouns  []string `json:"concrete_nouns"`
	AbstractNouns  []string `json:"abstract_nouns"`
	UndefinedNouns []string `json:"undefined_nouns"`
	UnknownNouns   []string `json:"unknown_nouns"`
	ContentWords   []string `json:"content_words"`
	FiniteVerbs    []string `json:"finite_verbs"`
	Pronouns       Pronouns `json:"pronouns"`

	Dependencies  []DependencyEntry `json:"dependencies"`
	LeastFrequent []FrequencyEntry  `json:"least_frequent_words,omitempty"`

	HasPassive         bool   `json:"has_passive"`
	Passives           []Span `json:"passives,omitempty"`
	HasSubordinate     bool   `json:"has_subordinate_clause"`
	SubordinateClauses []Span `json:"subordinate_clauses,omitempty"`

	Score *float64 `json:"score"`
	Level *int     `json:"level"`
}

// DocumentFeatures holds document-level aggregates: arithmetic means of
// the non-nil sentence-level values, never re-derived from pooled
// tokens. The document score applies the formula to the four means, not
// the mean of per-sentence scores.
type DocumentFeatures struct {
	SentenceCount int `json:"sentence_count"`

	MeanLogFrequency            *float64 `json:"mean_log_frequency"`
	MeanMaxDependencyLength     *float64 `json:"mean_max_dependency_length"`
	MeanContentWordsPerClause   *float64 `json:"mean_content_words_per_clause"`
	MeanProportionConcreteNouns *float64 `json:"mean_proportion_concrete_nouns"`

	MinScore  *float64 `json:"min_score"`
	MaxScore  *float64 `json:"max_score"`
	MeanScore *float64 `json:"mean_score"`

	Score *float64 `json:"score"`
	Level *int     `json:"level"`

	Sentences []SentenceFeatures `json:"sentences"`
}

// ScoreResult is the immutable outcome of the scoring formula. Both
/// fields are nil when any input feature was nil (the guard rail: no
// partial scoring).
type ScoreResult struct {
	Score *float64 `json:"score"`
	Level *int     `json:"level"`
}
