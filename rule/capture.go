package rule

import "fmt"

// CaptureRule stores a successful inner match's tokens in the context
// under a key. A failed inner match leaves the capture registry
// untouched.
type CaptureRule struct {
	key   string
	inner Rule
}

func (*CaptureRule) Kind() Kind       { return KindCapture }
func (r *CaptureRule) String() string { return fmt.Sprintf("capture(%q, %s)", r.key, r.inner) }
func (*CaptureRule) isRule()          {}

// Capture wraps inner; on success the matched token list is recorded in
// the context under key (overwriting any prior value) and the inner match
// is returned unchanged.
func Capture(key string, inner Rule) (Rule, error) {
	if key == "" {
		return nil, fmt.Errorf("capture: key must not be empty")
	}
	if inner == nil {
		return nil, fmt.Errorf("capture: inner rule is required")
	}
	return &CaptureRule{key: key, inner: inner}, nil
}

type refMode int

const (
	refDynamic refMode = iota
	refRule
	refTokens
)

// ReferenceRule defers to whatever the context has under a key: a bound
// rule (re-evaluated), a bound or captured token list (compared
// positionally against the upcoming stream tokens), or either, in dynamic
// mode. An absent key is an ordinary no-match.
type ReferenceRule struct {
	key  string
	mode refMode
}

func (*ReferenceRule) Kind() Kind       { return KindReference }
func (r *ReferenceRule) String() string { return fmt.Sprintf("reference(%q)", r.key) }
func (*ReferenceRule) isRule()          {}

func reference(key string, mode refMode) (Rule, error) {
	if key == "" {
		return nil, fmt.Errorf("reference: key must not be empty")
	}
	return &ReferenceRule{key: key, mode: mode}, nil
}

// Reference resolves key dynamically: a bound rule wins, then a bound
// token list, then a capture under the same key.
func Reference(key string) (Rule, error) { return reference(key, refDynamic) }

// ReferenceRuleOnly resolves key strictly as a bound rule.
func ReferenceRuleOnly(key string) (Rule, error) { return reference(key, refRule) }

// ReferenceTokensOnly resolves key strictly as a bound token list.
func ReferenceTokensOnly(key string) (Rule, error) { return reference(key, refTokens) }
