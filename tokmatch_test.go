package tokmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokmatch/tokmatch/process"
	"github.com/tokmatch/tokmatch/rule"
	"github.com/tokmatch/tokmatch/scanner"
)

func TestFind(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("one two three two")

	m, err := Find(rule.Value("two"), tokens)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Start)

	m, err = Find(rule.Value("four"), tokens)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestFindAll(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("a b a b a")

	seq, err := rule.Sequence(rule.Value("a"), rule.Value("b"))
	require.NoError(t, err)

	matches, err := FindAll(seq, tokens)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Start)
	assert.Equal(t, 2, matches[1].Start)
}

func TestFindAllNonOverlapping(t *testing.T) {
	t.Parallel()

	tokens := scanner.Scan("x x x")
	pair, err := rule.Sequence(rule.Value("x"), rule.Value("x"))
	require.NoError(t, err)

	matches, err := FindAll(pair, tokens)
	require.NoError(t, err)
	// the second "x" is consumed by the first match
	require.Len(t, matches, 1)
}

func TestFindAllPropagatesUsageErrors(t *testing.T) {
	t.Parallel()

	_, err := FindAll(rule.Lazy(), scanner.Scan("a"))
	assert.ErrorIs(t, err, rule.ErrUnbound)
}

func TestRewriteText(t *testing.T) {
	t.Parallel()

	rules, err := process.Parse([]byte(`
rules:
  - name: censor
    match: {value: secret}
    action: replace
    with: ["[redacted]"]
`))
	require.NoError(t, err)

	out, err := RewriteText(process.FromRules(rules), "a secret plan")
	require.NoError(t, err)
	assert.Equal(t, "a [redacted] plan", out)
}
