package stream

import (
	"fmt"

	"github.com/tokmatch/tokmatch/token"
)

// Mutable is the in-place cursor realization: advancing operations update
// the receiver and return it. It is the cheap default for rule evaluation.
type Mutable struct {
	tokens []token.Token
	index  int
}

var _ TokenStream = (*Mutable)(nil)

// New builds a mutable cursor positioned at the start of the sequence.
func New(tokens []token.Token) *Mutable {
	return &Mutable{tokens: tokens}
}

// NewAt builds a mutable cursor at the given index. A negative index is a
// validation error; an index beyond the sequence is accepted and clamped,
// representing an exhausted cursor.
func NewAt(tokens []token.Token, index int) (*Mutable, error) {
	if index < 0 {
		return nil, fmt.Errorf("stream: negative start index %d", index)
	}
	return &Mutable{tokens: tokens, index: clampIndex(index, len(tokens))}, nil
}

func (s *Mutable) Index() int { return s.index }
func (s *Mutable) Len() int   { return len(s.tokens) }

func (s *Mutable) HasMore() bool {
	return nextVisible(s.tokens, s.index) >= 0
}

func (s *Mutable) Current() (token.Token, error) {
	i := nextVisible(s.tokens, s.index)
	if i < 0 {
		return token.Token{}, ErrExhausted
	}
	return s.tokens[i], nil
}

func (s *Mutable) Read() (token.Token, TokenStream, error) {
	i := nextVisible(s.tokens, s.index)
	if i < 0 {
		return token.Token{}, s, ErrExhausted
	}
	s.index = i + 1
	return s.tokens[i], s, nil
}

func (s *Mutable) AdvanceTo(index int) TokenStream {
	s.index = clampIndex(index, len(s.tokens))
	return s
}

func (s *Mutable) CopyWithIndex(index int) TokenStream {
	return &Mutable{tokens: s.tokens, index: clampIndex(index, len(s.tokens))}
}

func (s *Mutable) Reversed() TokenStream {
	return New(reverseTokens(s.tokens))
}

func (s *Mutable) LookaheadView() TokenStream {
	return New(s.tokens[s.index:])
}

func (s *Mutable) LookbehindView() TokenStream {
	return New(reverseTokens(s.tokens[:s.index]))
}

func (s *Mutable) Tokens() []token.Token { return s.tokens }
