package process

import (
	"github.com/samber/lo"

	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/token"
)

// Identity reproduces the original matched span, shadow tokens included.
// Running a pass with only identity actions returns a list equal to the
// input.
func Identity() Action {
	return func(m *rule.Match, rc *Context) []token.Token {
		return append([]token.Token(nil), rc.Source[m.Start:m.End]...)
	}
}

// Remove deletes the matched span.
func Remove() Action {
	return func(*rule.Match, *Context) []token.Token {
		return nil
	}
}

// Replace substitutes the matched span with a fixed token list.
func Replace(tokens ...token.Token) Action {
	replacement := append([]token.Token(nil), tokens...)
	return func(*rule.Match, *Context) []token.Token {
		return replacement
	}
}

// ReplaceValues substitutes the matched span with unpositioned tokens
// carrying the given values.
func ReplaceValues(values ...string) Action {
	return Replace(lo.Map(values, func(v string, _ int) token.Token {
		return token.New(v, token.Unpositioned)
	})...)
}

// MapTokens rewrites each matched token through f, preserving the span's
// token count.
func MapTokens(f func(token.Token) token.Token) Action {
	return func(m *rule.Match, _ *Context) []token.Token {
		return lo.Map(m.Tokens, func(t token.Token, _ int) token.Token {
			return f(t)
		})
	}
}
