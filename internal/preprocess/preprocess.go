// Package preprocess turns markdown or plain text into the clean
// running text the annotation pipeline expects: prose extraction,
// quotemark normalization and whitespace collapsing.
package preprocess

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var whitespace = regexp.MustCompile(`\s+`)

// quotemarks lists every quote variant normalized to a straight double
// quote before annotation.
const quotemarks = "«»‘’‛“”„‟‹›"

// ExtractText parses markdown and returns only the prose: paragraphs,
// block quotes and list items. Headings, code blocks and raw HTML are
// dropped, since they are not running text a readability measure
// should judge.
func ExtractText(source []byte) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var parts []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindCodeBlock, ast.KindFencedCodeBlock, ast.KindHTMLBlock, ast.KindThematicBreak:
			return ast.WalkSkipChildren, nil
		case ast.KindParagraph, ast.KindTextBlock:
			if t := blockText(n, source); t != "" {
				parts = append(parts, t)
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(parts, " ")
}

// blockText collects the inline text of one block node, joining soft
// line breaks with spaces and skipping inline code and raw HTML.
func blockText(block ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(block, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// NormalizeQuotemarks replaces curly quotes, guillemets and other
// quote variants with straight double quotes.
func NormalizeQuotemarks(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(quotemarks, r) {
			return '"'
		}
		return r
	}, s)
}

// Clean normalizes quotemarks and collapses whitespace runs in plain
// text.
func Clean(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(NormalizeQuotemarks(s), " "))
}

// Text runs the full preprocessing pipeline on markdown or plain text.
func Text(source []byte) string {
	return Clean(ExtractText(source))
}
