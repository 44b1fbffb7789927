// Package scanner splits plain text into positioned tokens for the CLI
// layer. The matching engine itself only ever consumes pre-built token
// lists; this is the collaborator that builds them from files.
package scanner

import (
	"strings"
	"unicode"

	"github.com/tokmatch/tokmatch/token"
)

// Type tags attached by Scan.
const (
	TagWord   = "word"
	TagNumber = "number"
	TagPunct  = "punct"
)

// Scan tokenizes input into words, numbers and single punctuation
// characters, skipping whitespace. Every token carries its 1-based line
// and column and its absolute offset, so line anchors work on the result.
func Scan(input string) []token.Token {
	var tokens []token.Token

	line, col := 1, 1
	runes := []rune(input)
	i := 0

	for i < len(runes) {
		c := runes[i]

		if unicode.IsSpace(c) {
			if c == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
			continue
		}

		startLine, startCol, startOff := line, col, i
		var value strings.Builder

		switch {
		case isIdentifierStart(c):
			for i < len(runes) && isIdentifierChar(runes[i]) {
				value.WriteRune(runes[i])
				i++
				col++
			}
			tokens = append(tokens, token.NewTagged(value.String(), token.At(startLine, startCol, startOff), TagWord))

		case isDigit(c):
			for i < len(runes) && isDigit(runes[i]) {
				value.WriteRune(runes[i])
				i++
				col++
			}
			tokens = append(tokens, token.NewTagged(value.String(), token.At(startLine, startCol, startOff), TagNumber))

		default:
			tokens = append(tokens, token.NewTagged(string(c), token.At(startLine, startCol, startOff), TagPunct))
			i++
			col++
		}
	}

	return tokens
}

// Render joins token values back into a line of text, space-separated,
// keeping shadow tokens out of the result.
func Render(tokens []token.Token) string {
	var parts []string
	for _, tok := range tokens {
		if tok.IsShadow() {
			continue
		}
		parts = append(parts, tok.Value())
	}
	return strings.Join(parts, " ")
}

func isIdentifierStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isIdentifierChar(c rune) bool {
	return isIdentifierStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return unicode.IsDigit(c)
}
