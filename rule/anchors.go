package rule

type anchorAt int

const (
	atDocumentStart anchorAt = iota
	atDocumentEnd
	atLineStart
	atLineEnd
)

// AnchorRule is a zero-width assertion about the cursor position.
// Document anchors depend only on the cursor relative to the stream
// bounds. Line anchors compare adjacent tokens' line numbers (or detect
// an embedded line break in the preceding token's value) and report
// no-match when no determination is possible.
type AnchorRule struct {
	at anchorAt
}

func (*AnchorRule) Kind() Kind { return KindAnchor }
func (r *AnchorRule) String() string {
	switch r.at {
	case atDocumentStart:
		return "documentStart"
	case atDocumentEnd:
		return "documentEnd"
	case atLineStart:
		return "lineStart"
	default:
		return "lineEnd"
	}
}
func (*AnchorRule) isRule() {}

// DocumentStart asserts the cursor is at index 0.
func DocumentStart() Rule { return &AnchorRule{at: atDocumentStart} }

// DocumentEnd asserts no non-shadow token remains.
func DocumentEnd() Rule { return &AnchorRule{at: atDocumentEnd} }

// LineStart asserts the next token begins a new line.
func LineStart() Rule { return &AnchorRule{at: atLineStart} }

// LineEnd asserts the cursor sits at the end of a line.
func LineEnd() Rule { return &AnchorRule{at: atLineEnd} }
