package rule

import (
	"fmt"
	"strings"
)

// Unbounded marks a repetition with no upper limit.
const Unbounded = -1

func describe(rules []Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}

func checkRules(name string, rules []Rule, min int) error {
	if len(rules) < min {
		return fmt.Errorf("%s: at least %d rule(s) required, got %d", name, min, len(rules))
	}
	for i, r := range rules {
		if r == nil {
			return fmt.Errorf("%s: rule %d is nil", name, i)
		}
	}
	return nil
}

// SequenceRule matches an ordered list of sub-rules contiguously. It
// consumes nothing unless every sub-rule matches.
type SequenceRule struct {
	rules []Rule
}

func (*SequenceRule) Kind() Kind       { return KindSequence }
func (r *SequenceRule) String() string { return fmt.Sprintf("sequence(%s)", describe(r.rules)) }
func (*SequenceRule) isRule()          {}

// Sequence matches every given rule in order, each starting where the
// previous one left off.
func Sequence(rules ...Rule) (Rule, error) {
	if err := checkRules("sequence", rules, 1); err != nil {
		return nil, err
	}
	return &SequenceRule{rules: append([]Rule(nil), rules...)}, nil
}

// AnyOfRule tries alternatives in order and keeps the first success.
// This is priority alternation, not longest-match.
type AnyOfRule struct {
	rules []Rule
}

func (*AnyOfRule) Kind() Kind       { return KindAnyOf }
func (r *AnyOfRule) String() string { return fmt.Sprintf("anyOf(%s)", describe(r.rules)) }
func (*AnyOfRule) isRule()          {}

// AnyOf matches the first of the given alternatives that succeeds at the
// current position.
func AnyOf(rules ...Rule) (Rule, error) {
	if err := checkRules("anyOf", rules, 1); err != nil {
		return nil, err
	}
	return &AnyOfRule{rules: append([]Rule(nil), rules...)}, nil
}

// AllOfRule requires every sub-rule to match the same single token at the
// current position. The resulting match is zero-width.
type AllOfRule struct {
	rules []Rule
}

func (*AllOfRule) Kind() Kind       { return KindAllOf }
func (r *AllOfRule) String() string { return fmt.Sprintf("allOf(%s)", describe(r.rules)) }
func (*AllOfRule) isRule()          {}

// AllOf matches when all given rules (at least two) agree on the single
// token at the current position.
func AllOf(rules ...Rule) (Rule, error) {
	if err := checkRules("allOf", rules, 2); err != nil {
		return nil, err
	}
	return &AllOfRule{rules: append([]Rule(nil), rules...)}, nil
}

// OptionalRule turns an inner no-match into a zero-width success.
type OptionalRule struct {
	inner Rule
}

func (*OptionalRule) Kind() Kind       { return KindOptional }
func (r *OptionalRule) String() string { return fmt.Sprintf("optional(%s)", r.inner) }
func (*OptionalRule) isRule()          {}

// Optional returns the inner rule's match when it succeeds and a
// zero-width match otherwise. It never fails and never consumes on an
// inner failure.
func Optional(inner Rule) (Rule, error) {
	if inner == nil {
		return nil, fmt.Errorf("optional: inner rule is required")
	}
	return &OptionalRule{inner: inner}, nil
}

// RepeatedRule greedily matches its body between min and max times. There
// is no re-trial: once the greedy count is fixed the rule never gives
// tokens back to whatever follows.
type RepeatedRule struct {
	inner    Rule
	min, max int
}

func (*RepeatedRule) Kind() Kind { return KindRepeated }
func (r *RepeatedRule) String() string {
	if r.max == Unbounded {
		return fmt.Sprintf("repeat(%s, %d..)", r.inner, r.min)
	}
	return fmt.Sprintf("repeat(%s, %d..%d)", r.inner, r.min, r.max)
}
func (*RepeatedRule) isRule() {}

// Repeat matches inner greedily between min and max times; pass Unbounded
// as max for no upper limit. An unbounded repetition over a body that is
// statically capable of a zero-width match is rejected at construction,
// since it could loop forever at match time.
func Repeat(inner Rule, min, max int) (Rule, error) {
	if inner == nil {
		return nil, fmt.Errorf("repeat: inner rule is required")
	}
	if min < 0 {
		return nil, fmt.Errorf("repeat: negative minimum %d", min)
	}
	if max != Unbounded && max < min {
		return nil, fmt.Errorf("repeat: maximum %d below minimum %d", max, min)
	}
	if min == 0 && max == 0 {
		return nil, fmt.Errorf("repeat: bounds must not both be zero")
	}
	if max == Unbounded && canMatchZeroWidth(inner) {
		return nil, fmt.Errorf("repeat: unbounded repetition over a zero-width-capable rule (%s)", inner)
	}
	return &RepeatedRule{inner: inner, min: min, max: max}, nil
}
