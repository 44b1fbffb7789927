package stream

import (
	"fmt"

	"github.com/tokmatch/tokmatch/token"
)

// Immutable is the copy-on-advance cursor realization: advancing
// operations leave the receiver untouched and return a fresh cursor over
// the same underlying sequence.
type Immutable struct {
	tokens []token.Token
	index  int
}

var _ TokenStream = (*Immutable)(nil)

// NewImmutable builds an immutable cursor positioned at the start of the
// sequence.
func NewImmutable(tokens []token.Token) *Immutable {
	return &Immutable{tokens: tokens}
}

// NewImmutableAt builds an immutable cursor at the given index. A negative
// index is a validation error; an index beyond the sequence is accepted
// and clamped.
func NewImmutableAt(tokens []token.Token, index int) (*Immutable, error) {
	if index < 0 {
		return nil, fmt.Errorf("stream: negative start index %d", index)
	}
	return &Immutable{tokens: tokens, index: clampIndex(index, len(tokens))}, nil
}

func (s *Immutable) Index() int { return s.index }
func (s *Immutable) Len() int   { return len(s.tokens) }

func (s *Immutable) HasMore() bool {
	return nextVisible(s.tokens, s.index) >= 0
}

func (s *Immutable) Current() (token.Token, error) {
	i := nextVisible(s.tokens, s.index)
	if i < 0 {
		return token.Token{}, ErrExhausted
	}
	return s.tokens[i], nil
}

func (s *Immutable) Read() (token.Token, TokenStream, error) {
	i := nextVisible(s.tokens, s.index)
	if i < 0 {
		return token.Token{}, s, ErrExhausted
	}
	return s.tokens[i], &Immutable{tokens: s.tokens, index: i + 1}, nil
}

func (s *Immutable) AdvanceTo(index int) TokenStream {
	return &Immutable{tokens: s.tokens, index: clampIndex(index, len(s.tokens))}
}

func (s *Immutable) CopyWithIndex(index int) TokenStream {
	return &Immutable{tokens: s.tokens, index: clampIndex(index, len(s.tokens))}
}

func (s *Immutable) Reversed() TokenStream {
	return NewImmutable(reverseTokens(s.tokens))
}

func (s *Immutable) LookaheadView() TokenStream {
	return NewImmutable(s.tokens[s.index:])
}

func (s *Immutable) LookbehindView() TokenStream {
	return NewImmutable(reverseTokens(s.tokens[:s.index]))
}

func (s *Immutable) Tokens() []token.Token { return s.tokens }
