package rule

import (
	"github.com/samber/lo"

	"github.com/tokmatch/tokmatch/token"
)

// Match is the result of a successful rule application: the half-open
// span [Start, End) of stream indices it consumed, the non-shadow tokens
// inside that span in order, and the rule that produced it. A Match is
// only ever constructed on success and is not modified afterwards.
type Match struct {
	Start  int
	End    int
	Tokens []token.Token
	Rule   Rule
}

// Len is the number of matched (non-shadow) tokens.
func (m *Match) Len() int { return len(m.Tokens) }

// ZeroWidth reports whether the match consumed no tokens, as anchors and
// lookaround assertions do.
func (m *Match) ZeroWidth() bool { return m.End == m.Start }

// Values returns the matched token values in order.
func (m *Match) Values() []string {
	return lo.Map(m.Tokens, func(t token.Token, _ int) string { return t.Value() })
}

func zeroWidth(r Rule, at int) *Match {
	return &Match{Start: at, End: at, Rule: r}
}
