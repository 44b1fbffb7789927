package rule

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tokmatch/tokmatch/token"
)

// AlwaysRule matches a zero-width span at any position.
type AlwaysRule struct{}

func (*AlwaysRule) Kind() Kind     { return KindAlways }
func (*AlwaysRule) String() string { return "always" }
func (*AlwaysRule) isRule()        {}

// NeverRule matches nothing.
type NeverRule struct{}

func (*NeverRule) Kind() Kind     { return KindNever }
func (*NeverRule) String() string { return "never" }
func (*NeverRule) isRule()        {}

// Always returns the rule that produces a zero-width match everywhere.
func Always() Rule { return &AlwaysRule{} }

// Never returns the rule that never matches.
func Never() Rule { return &NeverRule{} }

// ValueRule matches a single token whose value equals a literal.
type ValueRule struct {
	value      string
	ignoreCase bool
}

func (*ValueRule) Kind() Kind       { return KindValue }
func (r *ValueRule) String() string { return fmt.Sprintf("value(%q)", r.value) }
func (*ValueRule) isRule()          {}

func (r *ValueRule) accepts(t token.Token) bool {
	if r.ignoreCase {
		return strings.EqualFold(t.Value(), r.value)
	}
	return t.Value() == r.value
}

// Value matches one token with exactly the given value.
func Value(value string) Rule {
	return &ValueRule{value: value}
}

// ValueFold matches one token with the given value, ignoring case.
func ValueFold(value string) Rule {
	return &ValueRule{value: value, ignoreCase: true}
}

// PatternRule matches a single token whose whole value satisfies a
// regular expression.
type PatternRule struct {
	expr string
	re   *regexp.Regexp
}

func (*PatternRule) Kind() Kind       { return KindPattern }
func (r *PatternRule) String() string { return fmt.Sprintf("pattern(%q)", r.expr) }
func (*PatternRule) isRule()          {}

// Pattern compiles expr and matches one token whose entire value
// satisfies it.
func Pattern(expr string) (Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("pattern: expression must not be empty")
	}
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	return &PatternRule{expr: expr, re: re}, nil
}

// TypeRule matches a single token carrying all of a set of type tags.
type TypeRule struct {
	tags []string
}

func (*TypeRule) Kind() Kind       { return KindType }
func (r *TypeRule) String() string { return fmt.Sprintf("type(%s)", strings.Join(r.tags, ",")) }
func (*TypeRule) isRule()          {}

// Type matches one token that carries every one of the given tags.
func Type(tags ...string) (Rule, error) {
	if len(tags) == 0 {
		return nil, fmt.Errorf("type: at least one tag is required")
	}
	for _, tag := range tags {
		if tag == "" {
			return nil, fmt.Errorf("type: empty tag")
		}
	}
	return &TypeRule{tags: append([]string(nil), tags...)}, nil
}

// LengthRule matches a single token whose value length lies in an
// inclusive range.
type LengthRule struct {
	min, max int
}

func (*LengthRule) Kind() Kind       { return KindLength }
func (r *LengthRule) String() string { return fmt.Sprintf("length(%d,%d)", r.min, r.max) }
func (*LengthRule) isRule()          {}

// Length matches one token whose value length is within [min, max].
func Length(min, max int) (Rule, error) {
	if min < 0 {
		return nil, fmt.Errorf("length: negative minimum %d", min)
	}
	if max < min {
		return nil, fmt.Errorf("length: maximum %d below minimum %d", max, min)
	}
	return &LengthRule{min: min, max: max}, nil
}

// CustomRule matches a single token against a caller-supplied predicate.
type CustomRule struct {
	name string
	pred func(token.Token) bool
}

func (*CustomRule) Kind() Kind { return KindCustom }
func (r *CustomRule) String() string {
	if r.name == "" {
		return "custom"
	}
	return fmt.Sprintf("custom(%s)", r.name)
}
func (*CustomRule) isRule() {}

// Custom matches one token accepted by pred. The name is used only for
// diagnostics.
func Custom(name string, pred func(token.Token) bool) (Rule, error) {
	if pred == nil {
		return nil, fmt.Errorf("custom: predicate is required")
	}
	return &CustomRule{name: name, pred: pred}, nil
}
