package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentence_Text(t *testing.T) {
	tests := []struct {
		name     string
		sentence Sentence
		expected string
	}{
		{
			name:     "empty sentence",
			sentence: Sentence{},
			expected: "",
		},
		{
			name: "spaces follow whitespace flags",
			sentence: Sentence{Tokens: []Token{
				{Index: 0, Text: "De", SpaceAfter: true},
				{Index: 1, Text: "stad", SpaceAfter: false},
				{Index: 2, Text: ".", SpaceAfter: true},
			}},
			expected: "De stad.",
		},
		{
			name: "trailing whitespace flag is ignored",
			sentence: Sentence{Tokens: []Token{
				{Index: 0, Text: "Ja", SpaceAfter: true},
			}},
			expected: "Ja",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sentence.Text())
		})
	}
}

func TestSentence_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []Token
		wantErr bool
	}{
		{
			name:    "empty sentence is valid",
			tokens:  nil,
			wantErr: false,
		},
		{
			name: "valid heads",
			tokens: []Token{
				{Index: 0, Text: "de", Head: 1},
				{Index: 1, Text: "stad", Head: 1},
			},
			wantErr: false,
		},
		{
			name: "head outside sentence",
			tokens: []Token{
				{Index: 0, Text: "de", Head: 5},
			},
			wantErr: true,
		},
		{
			name: "negative head",
			tokens: []Token{
				{Index: 0, Text: "de", Head: -1},
			},
			wantErr: true,
		},
		{
			name: "index out of order",
			tokens: []Token{
				{Index: 1, Text: "de", Head: 0},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sentence{Tokens: tt.tokens}
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocument_Validate(t *testing.T) {
	doc := Document{Sentences: []Sentence{
		{Tokens: []Token{{Index: 0, Text: "ok", Head: 0}}},
		{Tokens: []Token{{Index: 0, Text: "kapot", Head: 3}}},
	}}

	err := doc.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sentence 1")
}
