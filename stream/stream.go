// Package stream provides cursors over fixed token sequences. A cursor
// tracks a read index, skips shadow tokens on every read, and can spawn
// bounded lookahead/lookbehind sub-views for non-destructive probing.
package stream

import (
	"errors"

	"github.com/tokmatch/tokmatch/token"
)

// ErrExhausted is returned when Current or Read is asked for a token and
// no non-shadow token remains. Rule logic is expected to check HasMore
// first; hitting this error indicates a cursor was advanced past valid
// bounds.
var ErrExhausted = errors.New("token stream exhausted")

// TokenStream is a cursor over an ordered, fixed token sequence. The
// mutable realization advances in place and returns itself from advancing
// operations; the immutable realization returns a fresh cursor instead.
// Callers that always continue with the returned stream behave identically
// on both.
type TokenStream interface {
	// Index is the current position, always in [0, Len()].
	Index() int
	// Len is the size of the underlying sequence, shadows included.
	Len() int
	// HasMore reports whether a non-shadow token exists at or after the
	// current index.
	HasMore() bool
	// Current returns the next non-shadow token without consuming it.
	Current() (token.Token, error)
	// Read consumes the next non-shadow token, advancing past it and past
	// any shadow tokens before it. The returned stream is positioned after
	// the token.
	Read() (token.Token, TokenStream, error)
	// AdvanceTo moves the cursor to index, clamped into [0, Len()].
	AdvanceTo(index int) TokenStream
	// CopyWithIndex produces an independent cursor over the same sequence
	// at the given (clamped) index.
	CopyWithIndex(index int) TokenStream
	// Reversed is a view over the same tokens in reverse order, starting
	// at index 0.
	Reversed() TokenStream
	// LookaheadView is a bounded sub-stream over the tokens from the
	// current index to the end, starting at index 0.
	LookaheadView() TokenStream
	// LookbehindView is a bounded sub-stream over the tokens before the
	// current index, in reverse order, starting at index 0.
	LookbehindView() TokenStream
	// Tokens exposes the underlying sequence. Callers must not modify it.
	Tokens() []token.Token
}

func nextVisible(tokens []token.Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if !tokens[i].IsShadow() {
			return i
		}
	}
	return -1
}

func clampIndex(index, size int) int {
	if index < 0 {
		return 0
	}
	if index > size {
		return size
	}
	return index
}

func reverseTokens(tokens []token.Token) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, t := range tokens {
		out[len(tokens)-1-i] = t
	}
	return out
}
