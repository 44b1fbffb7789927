package rule

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

// chars splits a string into one token per character, the way the
// balanced-parentheses examples are written.
func chars(s string) []token.Token {
	return toks(strings.Split(s, "")...)
}

func TestBoundaryWithoutBetween(t *testing.T) {
	t.Parallel()

	r, err := Boundary(Value("("), nil, Value(")"))
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(chars("(ab)c")))
	assert.Equal(t, 4, m.End)
	assert.Equal(t, []string{"(", "a", "b", ")"}, m.Values())

	// end never reached
	mustNoMatch(t, r, stream.New(chars("(ab")))
	// start missing
	mustNoMatch(t, r, stream.New(chars("ab)")))
}

func TestBoundaryWithBetween(t *testing.T) {
	t.Parallel()

	word, err := Pattern(`[a-z]+`)
	require.NoError(t, err)
	r, err := Boundary(Value("{"), word, Value("}"))
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(toks("{", "aa", "bb", "}")))
	assert.Equal(t, 4, m.End)

	// a token the between rule rejects means the end is unreachable
	mustNoMatch(t, r, stream.New(toks("{", "aa", "42", "}")))

	_, err = Boundary(nil, nil, Value(")"))
	assert.Error(t, err)
	_, err = Boundary(Value("("), nil, nil)
	assert.Error(t, err)
}

func TestRecursiveBalancedParens(t *testing.T) {
	t.Parallel()

	r, err := RecursiveFunc(Value("("), Value(")"), func(self Rule) Rule {
		return Must(AnyOf(self, Value("x")))
	})
	require.NoError(t, err)

	// fully nested: all seven tokens
	m := mustMatch(t, r, stream.New(chars("(((x)))")))
	assert.Equal(t, 7, m.End)
	assert.Equal(t, 7, m.Len())

	// unbalanced nesting is a recoverable no-match
	mustNoMatch(t, r, stream.New(chars("(((x))")))
	// missing required opening
	mustNoMatch(t, r, stream.New(chars("x")))
}

func TestRecursiveFactoryRunsOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	r, err := RecursiveFunc(Value("("), Value(")"), func(self Rule) Rule {
		calls++
		return Must(AnyOf(self, Value("x")))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	mustMatch(t, r, stream.New(chars("(x)")))
	mustMatch(t, r, stream.New(chars("((x))")))
	assert.Equal(t, 1, calls, "the factory is not re-invoked per match")
}

func TestRecursiveValidation(t *testing.T) {
	t.Parallel()

	_, err := Recursive(Value("("), Value(")"), nil)
	assert.Error(t, err)
	_, err = RecursiveFunc(Value("("), Value(")"), nil)
	assert.Error(t, err)
	_, err = RecursiveFunc(Value("("), Value(")"), func(Rule) Rule { return nil })
	assert.Error(t, err, "a factory that yields nothing is a construction error")
	_, err = RecursiveFunc(nil, Value(")"), func(Rule) Rule { return Value("x") })
	assert.Error(t, err)
}

func TestLazy(t *testing.T) {
	t.Parallel()

	lazy := Lazy()
	assert.False(t, lazy.Bound())

	// evaluating unbound is a usage error, not a silent no-match
	_, err := Apply(lazy, stream.New(toks("a")), nil)
	assert.ErrorIs(t, err, ErrUnbound)

	require.NoError(t, lazy.Bind(Value("a")))
	assert.True(t, lazy.Bound())
	mustMatch(t, lazy, stream.New(toks("a")))

	assert.Error(t, lazy.Bind(Value("b")), "rebinding is rejected")

	other := Lazy()
	assert.Error(t, other.Bind(nil))
}

func TestLazyClosesMutualCycle(t *testing.T) {
	t.Parallel()

	// value ::= "x" | "(" value ")"
	value := Lazy()
	wrapped, err := Sequence(Value("("), value, Value(")"))
	require.NoError(t, err)
	alt, err := AnyOf(Value("x"), wrapped)
	require.NoError(t, err)
	require.NoError(t, value.Bind(alt))

	m := mustMatch(t, value, stream.New(chars("((x))")))
	assert.Equal(t, 5, m.End)
	mustNoMatch(t, value, stream.New(chars("((x)")))
}

func TestGroup(t *testing.T) {
	t.Parallel()

	inner, err := Sequence(Value("a"), Value("b"))
	require.NoError(t, err)
	r, err := Group(inner)
	require.NoError(t, err)

	grp := token.NewGroup(token.Unpositioned,
		token.New("a", token.Unpositioned),
		token.New("b", token.Unpositioned),
	)

	m := mustMatch(t, r, stream.New([]token.Token{grp}))
	assert.Equal(t, 1, m.End)
	require.Equal(t, 1, m.Len())
	assert.Equal(t, grp.Value(), m.Tokens[0].Value())

	// a plain token is not a group
	mustNoMatch(t, r, stream.New(toks("ab")))

	// the inner rule must cover the whole group
	partial := token.NewGroup(token.Unpositioned,
		token.New("a", token.Unpositioned),
		token.New("b", token.Unpositioned),
		token.New("c", token.Unpositioned),
	)
	mustNoMatch(t, r, stream.New([]token.Token{partial}))

	_, err = Group(nil)
	assert.Error(t, err)
}
