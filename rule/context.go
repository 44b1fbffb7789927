package rule

import "github.com/tokmatch/tokmatch/token"

// Context carries the mutable state of one top-level matching attempt: a
// capture registry (key → matched token list, last write wins) and a
// dynamic binding registry (key → rule and/or token list) consulted by
// Reference rules. A Context must not be shared across concurrent
// attempts; create a fresh one per attempt unless a nested sub-grammar
// needs to see earlier captures.
type Context struct {
	captures map[string][]token.Token
	bindings map[string]binding
}

type binding struct {
	rule      Rule
	tokens    []token.Token
	hasTokens bool
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{
		captures: make(map[string][]token.Token),
		bindings: make(map[string]binding),
	}
}

// SetCapture stores the token list under key, replacing any prior value.
func (c *Context) SetCapture(key string, tokens []token.Token) {
	c.captures[key] = append([]token.Token(nil), tokens...)
}

// Capture looks up a captured token list.
func (c *Context) Capture(key string) ([]token.Token, bool) {
	tokens, ok := c.captures[key]
	return tokens, ok
}

// BindRule binds a rule under key for Reference rules to re-evaluate.
func (c *Context) BindRule(key string, r Rule) {
	b := c.bindings[key]
	b.rule = r
	c.bindings[key] = b
}

// BindTokens binds a literal token list under key for Reference rules to
// compare against the upcoming stream tokens. An empty list is a valid
// binding and matches zero-width.
func (c *Context) BindTokens(key string, tokens []token.Token) {
	b := c.bindings[key]
	b.tokens = append([]token.Token(nil), tokens...)
	b.hasTokens = true
	c.bindings[key] = b
}

func (c *Context) binding(key string) (binding, bool) {
	b, ok := c.bindings[key]
	return b, ok
}
