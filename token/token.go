package token

import (
	"fmt"
	"strings"
)

// Definition classifies a token by its value. A token may carry a
// definition in addition to (or instead of) explicit type tags.
type Definition func(value string) bool

// Token is an immutable lexical unit: a string value, a position and an
// optional classification. Decorating a token (metadata, sequence index,
// shadow status, grouping) never mutates it; each decorator returns a new
// token holding a reference to the one it was built from, and Unwrap
// follows that chain back to the innermost backing token.
type Token struct {
	value string
	pos   Position
	tags  []string
	def   Definition

	backing *Token
	meta    map[string]string
	index   int
	indexed bool
	shadow  bool
	group   []Token
	grouped bool
}

// New builds a plain token.
func New(value string, pos Position) Token {
	return Token{value: value, pos: pos}
}

// NewTagged builds a token carrying a set of type tags.
func NewTagged(value string, pos Position, tags ...string) Token {
	return Token{value: value, pos: pos, tags: append([]string(nil), tags...)}
}

// NewDefined builds a token classified by a value predicate.
func NewDefined(value string, pos Position, def Definition) Token {
	return Token{value: value, pos: pos, def: def}
}

// NewGroup builds a token wrapping a nested sub-sequence. Its value is the
// space-joined values of the contents, which keeps debug output readable.
func NewGroup(pos Position, contents ...Token) Token {
	values := make([]string, len(contents))
	for i, t := range contents {
		values[i] = t.value
	}
	return Token{
		value:   strings.Join(values, " "),
		pos:     pos,
		group:   append([]Token(nil), contents...),
		grouped: true,
	}
}

func (t Token) Value() string { return t.value }
func (t Token) Pos() Position { return t.pos }

// Tags returns a copy of the token's type tags.
func (t Token) Tags() []string {
	return append([]string(nil), t.tags...)
}

// HasTag reports whether the token carries the given type tag.
func (t Token) HasTag(tag string) bool {
	for _, have := range t.tags {
		if have == tag {
			return true
		}
	}
	return false
}

// Satisfies reports whether the token's own definition accepts its value.
// Tokens without a definition satisfy nothing.
func (t Token) Satisfies() bool {
	return t.def != nil && t.def(t.value)
}

// WithTags returns a copy of the token with the given tags attached in
// addition to any it already carries.
func (t Token) WithTags(tags ...string) Token {
	c := t
	c.tags = append(append([]string(nil), t.tags...), tags...)
	return c
}

// WithMetadata decorates the token with a metadata map.
func (t Token) WithMetadata(meta map[string]string) Token {
	c := t
	c.backing = &t
	copied := make(map[string]string, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	c.meta = copied
	return c
}

// Metadata looks up a metadata entry attached to this token.
func (t Token) Metadata(key string) (string, bool) {
	v, ok := t.meta[key]
	return v, ok
}

// WithIndex decorates the token with its index in an owning sequence.
func (t Token) WithIndex(index int) Token {
	c := t
	c.backing = &t
	c.index = index
	c.indexed = true
	return c
}

// Index returns the sequence index the token was decorated with, if any.
func (t Token) Index() (int, bool) {
	return t.index, t.indexed
}

// AsShadow decorates the token as invisible to rule matching. Shadow
// tokens stay in the underlying sequence but are skipped by stream reads.
func (t Token) AsShadow() Token {
	c := t
	c.backing = &t
	c.shadow = true
	return c
}

func (t Token) IsShadow() bool { return t.shadow }

// Group returns the nested sub-sequence if the token is a group token.
func (t Token) Group() ([]Token, bool) {
	if !t.grouped {
		return nil, false
	}
	return append([]Token(nil), t.group...), true
}

// Backing returns the token this one was decorated from, if any.
func (t Token) Backing() (Token, bool) {
	if t.backing == nil {
		return Token{}, false
	}
	return *t.backing, true
}

// Unwrap follows the decoration chain to the innermost backing token.
// An undecorated token unwraps to itself.
func (t Token) Unwrap() Token {
	cur := t
	for cur.backing != nil {
		cur = *cur.backing
	}
	return cur
}

// Equal compares two tokens by value, position and shadow status. It
// ignores decorations and classification, which is the identity that
// matters to matching and to tests.
func Equal(a, b Token) bool {
	return a.value == b.value && a.pos == b.pos && a.shadow == b.shadow
}

func (t Token) String() string {
	if !t.pos.Known() {
		return fmt.Sprintf("%q", t.value)
	}
	return fmt.Sprintf("%q@%s", t.value, t.pos)
}
