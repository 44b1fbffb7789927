package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmatch/tokmatch/stream"
)

func TestSequence(t *testing.T) {
	t.Parallel()

	r, err := Sequence(Value("a"), Value("b"), Value("c"))
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(toks("a", "b", "c", "d")))
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 3, m.End)
	// matched-token count equals the sum over the sub-rules
	assert.Equal(t, []string{"a", "b", "c"}, m.Values())

	// a single failing sub-rule fails the whole sequence
	s := stream.New(toks("a", "b", "x"))
	mustNoMatch(t, r, s)
	assert.Equal(t, 0, s.Index(), "no partial consumption survives")

	_, err = Sequence()
	assert.Error(t, err)
	_, err = Sequence(Value("a"), nil)
	assert.Error(t, err)
}

func TestAnyOfOrderSensitivity(t *testing.T) {
	t.Parallel()

	// both alternatives can match the same input; the earlier one wins
	short := Value("a")
	long, err := Sequence(Value("a"), Value("b"))
	require.NoError(t, err)

	first, err := AnyOf(short, long)
	require.NoError(t, err)
	m := mustMatch(t, first, stream.New(toks("a", "b")))
	assert.Equal(t, 1, m.End, "first alternative wins even though the second matches more")

	swapped, err := AnyOf(long, short)
	require.NoError(t, err)
	m = mustMatch(t, swapped, stream.New(toks("a", "b")))
	assert.Equal(t, 2, m.End)

	none, err := AnyOf(Value("x"), Value("y"))
	require.NoError(t, err)
	mustNoMatch(t, none, stream.New(toks("a")))
}

func TestAllOf(t *testing.T) {
	t.Parallel()

	length, err := Length(3, 3)
	require.NoError(t, err)
	pattern, err := Pattern(`[a-z]+`)
	require.NoError(t, err)

	r, err := AllOf(length, pattern)
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(toks("abc")))
	assert.True(t, m.ZeroWidth())
	assert.Equal(t, 0, m.Start)

	// one branch disagreeing fails the conjunction
	mustNoMatch(t, r, stream.New(toks("abcd")))
	mustNoMatch(t, r, stream.New(toks("ABC")))
	mustNoMatch(t, r, stream.New(nil))

	_, err = AllOf(length)
	assert.Error(t, err, "allOf needs at least two rules")
}

func TestOptional(t *testing.T) {
	t.Parallel()

	r, err := Optional(Value("a"))
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(toks("a", "b")))
	assert.Equal(t, 1, m.End)

	// inner failure: zero-width success, no consumption, no failure
	s := stream.New(toks("b"))
	m = mustMatch(t, r, s)
	assert.True(t, m.ZeroWidth())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, s.Index())

	_, err = Optional(nil)
	assert.Error(t, err)
}

func TestRepeatedBounds(t *testing.T) {
	t.Parallel()

	r, err := Repeat(Value("x"), 2, Unbounded)
	require.NoError(t, err)

	// fewer than min repetitions fail
	mustNoMatch(t, r, stream.New(toks("x")))

	// greedy: consumes all three
	m := mustMatch(t, r, stream.New(toks("x", "x", "x")))
	assert.Equal(t, 3, m.End)
	assert.Equal(t, 3, m.Len())
}

func TestRepeatedGreedyNoRetrial(t *testing.T) {
	t.Parallel()

	// repeated eats every "x"; the trailing Value("x") then has nothing
	// left, and the sequence fails because repetition never re-trials
	rep, err := Repeat(Value("x"), 1, Unbounded)
	require.NoError(t, err)
	r, err := Sequence(rep, Value("x"))
	require.NoError(t, err)

	mustNoMatch(t, r, stream.New(toks("x", "x", "x")))
}

func TestRepeatedUpperBound(t *testing.T) {
	t.Parallel()

	r, err := Repeat(Value("x"), 0, 2)
	require.NoError(t, err)

	m := mustMatch(t, r, stream.New(toks("x", "x", "x")))
	assert.Equal(t, 2, m.End, "stops at max")

	// min of zero matches nothing without failing
	m = mustMatch(t, r, stream.New(toks("y")))
	assert.True(t, m.ZeroWidth())
}

func TestRepeatValidation(t *testing.T) {
	t.Parallel()

	_, err := Repeat(nil, 1, 2)
	assert.Error(t, err)
	_, err = Repeat(Value("x"), -1, 2)
	assert.Error(t, err)
	_, err = Repeat(Value("x"), 3, 2)
	assert.Error(t, err)
	_, err = Repeat(Value("x"), 0, 0)
	assert.Error(t, err)
}

func TestRepeatRejectsZeroWidthUnbounded(t *testing.T) {
	t.Parallel()

	opt, err := Optional(Value("x"))
	require.NoError(t, err)

	cases := map[string]Rule{
		"always":   Always(),
		"optional": opt,
		"anchor":   DocumentStart(),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Repeat(body, 0, Unbounded)
			assert.Error(t, err)
		})
	}

	// a bounded repetition of the same body is fine
	_, err = Repeat(opt, 0, 4)
	assert.NoError(t, err)

	// composition is seen through
	seq, err := Sequence(Always(), opt)
	require.NoError(t, err)
	_, err = Repeat(seq, 0, Unbounded)
	assert.Error(t, err)

	anchored, err := Sequence(Value("x"), opt)
	require.NoError(t, err)
	_, err = Repeat(anchored, 0, Unbounded)
	assert.NoError(t, err, "a sequence with a consuming element cannot be zero-width")
}

func TestRepeatedZeroProgressGuard(t *testing.T) {
	t.Parallel()

	// an unbound-at-construction body (lazy) that ends up zero-width
	// capable must not loop at match time
	lazy := Lazy()
	r, err := Repeat(lazy, 0, Unbounded)
	require.NoError(t, err)
	require.NoError(t, lazy.Bind(Always()))

	m := mustMatch(t, r, stream.New(toks("a")))
	assert.True(t, m.ZeroWidth())
}
