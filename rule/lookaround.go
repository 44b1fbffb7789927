package rule

import "fmt"

// LookaroundRule is a zero-width, non-consuming assertion about tokens
// ahead of or behind the cursor. Lookahead probes a forward sub-view from
// the current position; lookbehind probes a reversed view of everything
// before it, so an inner lookbehind rule sees tokens nearest-first.
// Negative polarity inverts the inner rule's outcome without changing the
// zero-width contract.
type LookaroundRule struct {
	inner    Rule
	behind   bool
	negative bool
}

func (r *LookaroundRule) Kind() Kind {
	if r.behind {
		return KindLookbehind
	}
	return KindLookahead
}

func (r *LookaroundRule) String() string {
	name := "lookahead"
	if r.behind {
		name = "lookbehind"
	}
	if r.negative {
		return fmt.Sprintf("not-%s(%s)", name, r.inner)
	}
	return fmt.Sprintf("%s(%s)", name, r.inner)
}

func (*LookaroundRule) isRule() {}

// Negated returns the same kind of lookaround over the same inner rule
// with the opposite polarity. Negating twice yields an equivalent rule.
func (r *LookaroundRule) Negated() *LookaroundRule {
	return &LookaroundRule{inner: r.inner, behind: r.behind, negative: !r.negative}
}

func lookaround(inner Rule, behind, negative bool) (Rule, error) {
	if inner == nil {
		return nil, fmt.Errorf("lookaround: inner rule is required")
	}
	return &LookaroundRule{inner: inner, behind: behind, negative: negative}, nil
}

// Lookahead asserts that inner matches the tokens ahead of the cursor.
func Lookahead(inner Rule) (Rule, error) { return lookaround(inner, false, false) }

// NotLookahead asserts that inner does not match the tokens ahead.
func NotLookahead(inner Rule) (Rule, error) { return lookaround(inner, false, true) }

// Lookbehind asserts that inner matches the reversed tokens before the
// cursor.
func Lookbehind(inner Rule) (Rule, error) { return lookaround(inner, true, false) }

// NotLookbehind asserts that inner does not match the reversed tokens
// before the cursor.
func NotLookbehind(inner Rule) (Rule, error) { return lookaround(inner, true, true) }
