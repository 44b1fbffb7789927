// Package rule implements a composable token-matching algebra: primitive
// single-token rules, combinators (sequence, alternation, repetition),
// delimited and self-referential grammars, zero-width assertions
// (anchors, lookaround) and named captures with back-references. Rules
// are immutable once constructed and safe to reuse across matches; all
// mutable state lives in the stream cursor and the match Context.
package rule

// Kind identifies a rule variant. The set is closed: evaluation is a
// single dispatch over the variant, not an open hierarchy.
type Kind int

const (
	KindAlways Kind = iota
	KindNever
	KindValue
	KindPattern
	KindType
	KindLength
	KindSequence
	KindAnyOf
	KindAllOf
	KindOptional
	KindRepeated
	KindBoundary
	KindRecursive
	KindLazy
	KindGroup
	KindCustom
	KindAnchor
	KindLookahead
	KindLookbehind
	KindCapture
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindAlways:
		return "always"
	case KindNever:
		return "never"
	case KindValue:
		return "value"
	case KindPattern:
		return "pattern"
	case KindType:
		return "type"
	case KindLength:
		return "length"
	case KindSequence:
		return "sequence"
	case KindAnyOf:
		return "anyOf"
	case KindAllOf:
		return "allOf"
	case KindOptional:
		return "optional"
	case KindRepeated:
		return "repeated"
	case KindBoundary:
		return "boundary"
	case KindRecursive:
		return "recursive"
	case KindLazy:
		return "lazy"
	case KindGroup:
		return "group"
	case KindCustom:
		return "custom"
	case KindAnchor:
		return "anchor"
	case KindLookahead:
		return "lookahead"
	case KindLookbehind:
		return "lookbehind"
	case KindCapture:
		return "capture"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Rule is a single variant of the matching algebra. Evaluate a rule with
// Apply; the interface itself only identifies and describes the variant.
type Rule interface {
	Kind() Kind
	String() string

	// sealed: every variant lives in this package
	isRule()
}
