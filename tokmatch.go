// Package tokmatch is the convenience surface over the matching engine:
// find occurrences of a rule in a token list, or run a rewrite pass over
// plain text via the bundled scanner. The composable pieces live in the
// rule, stream, token and process packages.
package tokmatch

import (
	"github.com/tokmatch/tokmatch/process"
	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/scanner"
	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

// Find returns the first match of r at or after the start of tokens, or
// nil when the rule matches nowhere. Each attempt runs in a fresh match
// context.
func Find(r rule.Rule, tokens []token.Token) (*rule.Match, error) {
	base := stream.New(tokens)
	for pos := 0; pos <= len(tokens); pos++ {
		m, err := rule.Apply(r, base.CopyWithIndex(pos), rule.NewContext())
		if err != nil {
			return nil, err
		}
		if m != nil {
			return m, nil
		}
	}
	return nil, nil
}

// FindAll returns every non-overlapping match of r over tokens, scanning
// left to right. Zero-width matches are reported once per position and
// scanning then advances by one token.
func FindAll(r rule.Rule, tokens []token.Token) ([]*rule.Match, error) {
	var matches []*rule.Match
	base := stream.New(tokens)

	pos := 0
	for pos <= len(tokens) {
		m, err := rule.Apply(r, base.CopyWithIndex(pos), rule.NewContext())
		if err != nil {
			return nil, err
		}
		if m == nil {
			pos++
			continue
		}
		matches = append(matches, m)
		if m.End > pos {
			pos = m.End
		} else {
			pos++
		}
	}
	return matches, nil
}

// RewriteText scans input into tokens, runs the processor over them and
// renders the result back to text.
func RewriteText(p *process.Processor, input string) (string, error) {
	out, err := p.Process(scanner.Scan(input))
	if err != nil {
		return "", err
	}
	return scanner.Render(out), nil
}
