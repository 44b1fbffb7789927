// Package process applies ordered (rule, action) registrations to token
// lists in a single left-to-right pass: the first registered rule that
// matches at a position has its action's output spliced in place of the
// matched span, and positions with no match are copied through unchanged.
// The input list is never mutated.
package process

import (
	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

// Action turns a match into the token list spliced into the output. Nil
// output deletes the matched span.
type Action func(m *rule.Match, rc *Context) []token.Token

// Context is handed to actions alongside the match: the full source list,
// the position the match started at, and the match context with any
// captures the rule committed.
type Context struct {
	Source   []token.Token
	Pos      int
	Captures *rule.Context
}

type registration struct {
	rule   rule.Rule
	action Action
}

// Processor holds ordered (rule, action) registrations.
type Processor struct {
	registrations []registration
}

// NewProcessor returns an empty processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Register adds a rule with the identity action: a matched span is
// reproduced unchanged. Registration order is match-priority order.
func (p *Processor) Register(r rule.Rule) *Processor {
	return p.RegisterAction(r, Identity())
}

// RegisterAction adds a rule paired with an action.
func (p *Processor) RegisterAction(r rule.Rule, a Action) *Processor {
	if a == nil {
		a = Identity()
	}
	p.registrations = append(p.registrations, registration{rule: r, action: a})
	return p
}

// Process runs one pass over tokens and returns a new, independent list.
// At each position the registered rules are tried in order; the first
// match is rewritten by its action and the read position advances past
// the original matched span. A rule matching zero width at a position is
// treated as not applicable there, so the pass always makes progress.
func (p *Processor) Process(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	base := stream.New(tokens)

	pos := 0
	for pos < len(tokens) {
		m, action, err := p.matchAt(base, pos)
		if err != nil {
			return nil, err
		}
		if m == nil {
			out = append(out, tokens[pos])
			pos++
			continue
		}
		out = append(out, action.apply(m)...)
		pos = m.End
	}
	return out, nil
}

type applied struct {
	action Action
	rc     *Context
}

func (a applied) apply(m *rule.Match) []token.Token {
	return a.action(m, a.rc)
}

func (p *Processor) matchAt(base *stream.Mutable, pos int) (*rule.Match, applied, error) {
	for _, reg := range p.registrations {
		ctx := rule.NewContext()
		m, err := rule.Apply(reg.rule, base.CopyWithIndex(pos), ctx)
		if err != nil {
			return nil, applied{}, err
		}
		if m == nil || m.ZeroWidth() {
			continue
		}
		rc := &Context{Source: base.Tokens(), Pos: pos, Captures: ctx}
		return m, applied{action: reg.action, rc: rc}, nil
	}
	return nil, applied{}, nil
}
