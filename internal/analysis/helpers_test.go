package analysis

import (
	"github.com/tekstlab/leesmeter/internal/annotation"
	"github.com/tekstlab/leesmeter/internal/lexicon"
)

// testLexicon mirrors a small slice of the production tables.
func testLexicon() *lexicon.Table {
	return lexicon.NewStatic(
		map[string]lexicon.SemType{
			"stad":  lexicon.Concrete,
			"fiets": lexicon.Concrete,
			"idee":  lexicon.Abstract,
			"hart":  lexicon.Undefined,
		},
		map[string]string{
			"stadsfiets": "fiets",
		},
		map[string]float64{
			"stad":       5.68,
			"fiets":      4.9,
			"idee":       4.5,
			"hart":       5.2,
			"sfeervolle": 3.21,
			"loopt":      5.0,
			"zie":        4.85,
			"snel":       4.8,
		},
		[]string{"enzovoort"},
		[]string{"snel"},
		[]string{"km"},
	)
}

func tk(idx int, text, lemma, pos, tag, dep string, head int) annotation.Token {
	return annotation.Token{
		Index:      idx,
		Text:       text,
		Lemma:      lemma,
		POS:        pos,
		Tag:        tag,
		Dep:        dep,
		Head:       head,
		SpaceAfter: true,
	}
}

func sentence(tokens ...annotation.Token) *annotation.Sentence {
	return &annotation.Sentence{Tokens: tokens}
}

func fp(v float64) *float64 { return &v }

func ip(v int) *int { return &v }
