package token

import "fmt"

// Position locates a token in the original input. Line and Column are
// 1-based; Offset is the absolute character offset from the start of the
// input. Positions are never mutated after creation.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Unpositioned marks tokens that carry no location information, such as
// synthetic tokens spliced in by a rewrite action. Line anchors cannot be
// determined across unpositioned tokens.
var Unpositioned = Position{Line: -1, Column: -1, Offset: -1}

// At builds a position from its three coordinates.
func At(line, column, offset int) Position {
	return Position{Line: line, Column: column, Offset: offset}
}

// Known reports whether the position carries real location information.
func (p Position) Known() bool {
	return p.Line >= 0
}

func (p Position) String() string {
	if !p.Known() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
