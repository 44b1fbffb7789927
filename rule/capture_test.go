package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

func TestCaptureStoresTokens(t *testing.T) {
	t.Parallel()

	inner, err := Sequence(Value("a"), Value("b"))
	require.NoError(t, err)
	capture, err := Capture("k", inner)
	require.NoError(t, err)

	ctx := NewContext()
	m, err := Apply(capture, stream.New(toks("a", "b")), ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	// the capture returns the inner match unchanged
	assert.Equal(t, 2, m.End)

	captured, ok := ctx.Capture("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, values(captured))
}

func TestCaptureLeavesRegistryOnFailure(t *testing.T) {
	t.Parallel()

	capture, err := Capture("k", Value("a"))
	require.NoError(t, err)

	ctx := NewContext()
	ctx.SetCapture("k", toks("old"))

	m, err := Apply(capture, stream.New(toks("b")), ctx)
	require.NoError(t, err)
	assert.Nil(t, m)

	captured, ok := ctx.Capture("k")
	require.True(t, ok)
	assert.Equal(t, []string{"old"}, values(captured), "failed match must not touch the registry")
}

func TestCaptureLastWriteWins(t *testing.T) {
	t.Parallel()

	capture, err := Capture("k", Value("a"))
	require.NoError(t, err)
	rep, err := Repeat(Must(AnyOf(capture, Value("b"))), 1, Unbounded)
	require.NoError(t, err)

	ctx := NewContext()
	m, err := Apply(rep, stream.New(toks("a", "b", "a")), ctx)
	require.NoError(t, err)
	require.NotNil(t, m)

	captured, ok := ctx.Capture("k")
	require.True(t, ok)
	// the second "a" overwrote the first
	require.Len(t, captured, 1)
	assert.Equal(t, "a", captured[0].Value())
}

func TestCaptureReferenceRoundTrip(t *testing.T) {
	t.Parallel()

	// capture "a","b", then the reference must match the second "a","b"
	ab, err := Sequence(Value("a"), Value("b"))
	require.NoError(t, err)
	capture, err := Capture("k", ab)
	require.NoError(t, err)
	ref, err := Reference("k")
	require.NoError(t, err)
	whole, err := Sequence(capture, ref)
	require.NoError(t, err)

	m := mustMatch(t, whole, stream.New(toks("a", "b", "a", "b")))
	assert.Equal(t, 4, m.End)
	assert.Equal(t, []string{"a", "b", "a", "b"}, m.Values())

	// the reference compares positionally, so a diverging tail fails
	mustNoMatch(t, whole, stream.New(toks("a", "b", "a", "c")))
}

func TestReferenceAbsentKey(t *testing.T) {
	t.Parallel()

	for _, build := range []func(string) (Rule, error){Reference, ReferenceRuleOnly, ReferenceTokensOnly} {
		ref, err := build("missing")
		require.NoError(t, err)
		// recoverable no-match, not an error
		mustNoMatch(t, ref, stream.New(toks("a")))
	}
}

func TestReferenceBoundRule(t *testing.T) {
	t.Parallel()

	ref, err := ReferenceRuleOnly("r")
	require.NoError(t, err)

	ctx := NewContext()
	ctx.BindRule("r", Value("a"))

	m, err := Apply(ref, stream.New(toks("a")), ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.End)

	// a token binding does not satisfy the rule-only mode
	other := NewContext()
	other.BindTokens("r", toks("a"))
	m, err = Apply(ref, stream.New(toks("a")), other)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestReferenceBoundTokens(t *testing.T) {
	t.Parallel()

	ref, err := ReferenceTokensOnly("t")
	require.NoError(t, err)

	ctx := NewContext()
	ctx.BindTokens("t", toks("a", "b"))

	m, err := Apply(ref, stream.New(toks("a", "b", "c")), ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 2, m.End)

	m, err = Apply(ref, stream.New(toks("a", "x")), ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestReferenceBoundEmptyTokens(t *testing.T) {
	t.Parallel()

	ref, err := ReferenceTokensOnly("t")
	require.NoError(t, err)

	// an explicitly bound empty list is present, not absent
	ctx := NewContext()
	ctx.BindTokens("t", nil)

	m, err := Apply(ref, stream.New(toks("a")), ctx)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.True(t, m.ZeroWidth())
}

func TestReferenceDynamicPrecedence(t *testing.T) {
	t.Parallel()

	ref, err := Reference("k")
	require.NoError(t, err)

	// both slots populated: the rule slot wins
	ctx := NewContext()
	ctx.BindTokens("k", toks("t"))
	ctx.BindRule("k", Value("r"))

	m, err := Apply(ref, stream.New(toks("r")), ctx)
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = Apply(ref, stream.New(toks("t")), ctx)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestValidationKeys(t *testing.T) {
	t.Parallel()

	_, err := Capture("", Value("a"))
	assert.Error(t, err)
	_, err = Capture("k", nil)
	assert.Error(t, err)
	_, err = Reference("")
	assert.Error(t, err)
}

func values(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Value()
	}
	return out
}
