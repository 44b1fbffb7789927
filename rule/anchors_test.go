package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

// two lines: "a b" / "c"
func twoLines() []token.Token {
	return []token.Token{
		token.New("a", token.At(1, 1, 0)),
		token.New("b", token.At(1, 3, 2)),
		token.New("c", token.At(2, 1, 4)),
	}
}

func TestDocumentAnchors(t *testing.T) {
	t.Parallel()

	var s stream.TokenStream = stream.New(twoLines())
	mustMatch(t, DocumentStart(), s)
	mustNoMatch(t, DocumentEnd(), s)

	s = s.AdvanceTo(1)
	mustNoMatch(t, DocumentStart(), s)

	s = s.AdvanceTo(3)
	mustNoMatch(t, DocumentStart(), s)
	m := mustMatch(t, DocumentEnd(), s)
	assert.True(t, m.ZeroWidth())

	// empty stream: both ends at once
	empty := stream.New(nil)
	mustMatch(t, DocumentStart(), empty)
	mustMatch(t, DocumentEnd(), empty)
}

func TestLineAnchors(t *testing.T) {
	t.Parallel()

	tokens := twoLines()

	// document start is a line start
	mustMatch(t, LineStart(), stream.New(tokens))
	// between "a" and "b": same line
	mustNoMatch(t, LineStart(), stream.New(tokens).AdvanceTo(1))
	mustNoMatch(t, LineEnd(), stream.New(tokens).AdvanceTo(1))
	// between "b" and "c": line boundary, seen from both sides
	mustMatch(t, LineStart(), stream.New(tokens).AdvanceTo(2))
	mustMatch(t, LineEnd(), stream.New(tokens).AdvanceTo(2))
	// document end closes the final line
	mustMatch(t, LineEnd(), stream.New(tokens).AdvanceTo(3))
	// but is not the start of one
	mustNoMatch(t, LineStart(), stream.New(tokens).AdvanceTo(3))
	// nor is document start a line end while tokens remain
	mustNoMatch(t, LineEnd(), stream.New(tokens))
}

func TestLineAnchorsEmbeddedBreak(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		token.New("a\n", token.Unpositioned),
		token.New("b", token.Unpositioned),
	}

	// positions are unknown but the previous token embeds a line break
	mustMatch(t, LineStart(), stream.New(tokens).AdvanceTo(1))
	mustMatch(t, LineEnd(), stream.New(tokens).AdvanceTo(1))
}

func TestLineAnchorsNoDetermination(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		token.New("a", token.Unpositioned),
		token.New("b", token.At(2, 1, 2)),
	}

	// one side lacks position information and there is no embedded
	// break: the anchor must report no-match, not guess
	mustNoMatch(t, LineStart(), stream.New(tokens).AdvanceTo(1))
	mustNoMatch(t, LineEnd(), stream.New(tokens).AdvanceTo(1))
}
