package rule

import (
	"errors"
	"fmt"
)

// ErrUnbound is returned when a lazy rule is evaluated before Bind. This
// is a usage error, not a no-match: the grammar was used half-built.
var ErrUnbound = errors.New("lazy rule evaluated before binding")

// BoundaryRule matches a delimited span: a start rule, then repeated
// applications of an optional between rule (or single tokens when none is
// given) until the end rule matches.
type BoundaryRule struct {
	start, between, end Rule
}

func (*BoundaryRule) Kind() Kind { return KindBoundary }
func (r *BoundaryRule) String() string {
	if r.between == nil {
		return fmt.Sprintf("boundary(%s .. %s)", r.start, r.end)
	}
	return fmt.Sprintf("boundary(%s, %s, %s)", r.start, r.between, r.end)
}
func (*BoundaryRule) isRule() {}

// Boundary matches start, then consumes until end matches. With a between
// rule each step must match it (and make progress); without one, any
// single token is consumed per step. If the end is never reached the
// whole rule reports no-match.
func Boundary(start, between, end Rule) (Rule, error) {
	if start == nil {
		return nil, fmt.Errorf("boundary: start rule is required")
	}
	if end == nil {
		return nil, fmt.Errorf("boundary: end rule is required")
	}
	return &BoundaryRule{start: start, between: between, end: end}, nil
}

// RecursiveRule matches arbitrarily nested spans: an opening rule, then
// repeated applications of a content rule (which may reference the
// recursive rule itself) until the closing rule matches.
type RecursiveRule struct {
	open, close, content Rule
}

func (*RecursiveRule) Kind() Kind { return KindRecursive }
func (r *RecursiveRule) String() string {
	return fmt.Sprintf("recursive(%s .. %s)", r.open, r.close)
}
func (*RecursiveRule) isRule() {}

// Recursive builds a nesting rule from fixed open, close and content
// rules.
func Recursive(open, close, content Rule) (Rule, error) {
	if open == nil || close == nil {
		return nil, fmt.Errorf("recursive: open and close rules are required")
	}
	if content == nil {
		return nil, fmt.Errorf("recursive: content rule is required")
	}
	return &RecursiveRule{open: open, close: close, content: content}, nil
}

// RecursiveFunc builds a nesting rule whose content is produced by a
// factory that receives the recursive rule itself, enabling direct grammar
// self-reference. The factory runs exactly once, at construction; its
// result is held by the rule and reused across matches.
func RecursiveFunc(open, close Rule, build func(self Rule) Rule) (Rule, error) {
	if open == nil || close == nil {
		return nil, fmt.Errorf("recursive: open and close rules are required")
	}
	if build == nil {
		return nil, fmt.Errorf("recursive: content factory is required")
	}
	r := &RecursiveRule{open: open, close: close}
	content := build(r)
	if content == nil {
		return nil, fmt.Errorf("recursive: content factory returned nil")
	}
	r.content = content
	return r, nil
}

// LazyRule is a placeholder that holds no logic until bound. It lets a
// caller close cycles between mutually-referencing rules without the
// factory form of Recursive.
type LazyRule struct {
	target Rule
}

func (*LazyRule) Kind() Kind { return KindLazy }
func (r *LazyRule) String() string {
	if r.target == nil {
		return "lazy(unbound)"
	}
	return fmt.Sprintf("lazy(%s)", r.target)
}
func (*LazyRule) isRule() {}

// Lazy returns an unbound placeholder rule.
func Lazy() *LazyRule { return &LazyRule{} }

// Bind resolves the placeholder to a real rule. Binding twice or to nil
// is an error.
func (r *LazyRule) Bind(target Rule) error {
	if target == nil {
		return fmt.Errorf("lazy: target rule is required")
	}
	if r.target != nil {
		return fmt.Errorf("lazy: already bound to %s", r.target)
	}
	r.target = target
	return nil
}

// Bound reports whether the placeholder has been resolved.
func (r *LazyRule) Bound() bool { return r.target != nil }

// GroupRule matches when the current token is a group token and the inner
// rule fully matches the group's contents.
type GroupRule struct {
	inner Rule
}

func (*GroupRule) Kind() Kind       { return KindGroup }
func (r *GroupRule) String() string { return fmt.Sprintf("group(%s)", r.inner) }
func (*GroupRule) isRule()          {}

// Group matches one group token whose nested sub-sequence is fully
// matched by inner.
func Group(inner Rule) (Rule, error) {
	if inner == nil {
		return nil, fmt.Errorf("group: inner rule is required")
	}
	return &GroupRule{inner: inner}, nil
}
