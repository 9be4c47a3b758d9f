// Package annotation defines the data exchanged with the upstream
// linguistic annotation pipeline. The analyzer never tokenizes or
// parses text itself; it consumes sentences of annotated tokens
// produced by an external Annotator.
package annotation

import (
	"context"
	"fmt"
	"strings"
)

// Token is one annotated token inside a sentence. Tokens are value
// objects: created once by the pipeline and never mutated afterwards.
type Token struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	Lemma      string `json:"lemma"`
	POS        string `json:"pos"`
	Tag        string `json:"tag"`
	Dep        string `json:"dep"`
	Head       int    `json:"head"`
	EntType    string `json:"ent_type,omitempty"`
	SpaceAfter bool   `json:"space_after"`
}

// IsPunct reports whether the token is attached as punctuation.
func (t *Token) IsPunct() bool {
	return t.Dep == "punct"
}

// Sentence is an ordered sequence of annotated tokens.
type Sentence struct {
	Tokens []Token `json:"tokens"`
}

// Text reconstructs the sentence surface form from token texts and
// whitespace flags.
func (s *Sentence) Text() string {
	var b strings.Builder
	for i := range s.Tokens {
		b.WriteString(s.Tokens[i].Text)
		if s.Tokens[i].SpaceAfter && i < len(s.Tokens)-1 {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Validate checks the structural contract the analyzer relies on:
// token indexes are contiguous from zero and every head reference
// points inside the sentence. A violation means the upstream pipeline
// is broken, not that the input text is unusual.
func (s *Sentence) Validate() error {
	for i := range s.Tokens {
		t := &s.Tokens[i]
		if t.Index != i {
			return fmt.Errorf("token %d: index %d out of order", i, t.Index)
		}
		if t.Head < 0 || t.Head >= len(s.Tokens) {
			return fmt.Errorf("token %d (%q): head %d outside sentence of %d tokens", i, t.Text, t.Head, len(s.Tokens))
		}
	}
	return nil
}

// Document is an ordered sequence of annotated sentences.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// Validate validates every sentence in the document.
func (d *Document) Validate() error {
	for i := range d.Sentences {
		if err := d.Sentences[i].Validate(); err != nil {
			return fmt.Errorf("sentence %d: %w", i, err)
		}
	}
	return nil
}

// Annotator is the contract of the external annotation pipeline:
// raw text in, sentences of annotated tokens out.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Document, error)
}
