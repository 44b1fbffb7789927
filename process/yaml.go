package process

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/tokmatch/tokmatch/rule"
)

// Config is the root of a YAML rule-definition file.
type Config struct {
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec pairs a named match specification with a rewrite action.
type RuleSpec struct {
	Name   string     `yaml:"name"`
	Match  *MatchSpec `yaml:"match"`
	Action string     `yaml:"action,omitempty"` // keep | remove | replace
	With   []string   `yaml:"with,omitempty"`
}

// MatchSpec is the declarative form of a rule. Exactly one variant field
// must be set; variants nest recursively.
type MatchSpec struct {
	Value      string       `yaml:"value,omitempty"`
	IgnoreCase bool         `yaml:"ignore_case,omitempty"`
	Pattern    string       `yaml:"pattern,omitempty"`
	Types      []string     `yaml:"types,omitempty"`
	Length     *LengthSpec  `yaml:"length,omitempty"`
	Sequence   []*MatchSpec `yaml:"sequence,omitempty"`
	AnyOf      []*MatchSpec `yaml:"any_of,omitempty"`
	AllOf      []*MatchSpec `yaml:"all_of,omitempty"`
	Optional   *MatchSpec   `yaml:"optional,omitempty"`
	Repeat     *RepeatSpec  `yaml:"repeat,omitempty"`
	Boundary   *Bounds      `yaml:"boundary,omitempty"`
	Anchor     string       `yaml:"anchor,omitempty"`
	Lookahead  *MatchSpec   `yaml:"lookahead,omitempty"`
	Lookbehind *MatchSpec   `yaml:"lookbehind,omitempty"`
	Negative   bool         `yaml:"negative,omitempty"` // applies to lookahead/lookbehind
	Capture    *CaptureSpec `yaml:"capture,omitempty"`
	Reference  string       `yaml:"reference,omitempty"`
}

type LengthSpec struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// RepeatSpec bounds a repetition; a nil Max means unbounded.
type RepeatSpec struct {
	Match *MatchSpec `yaml:"match"`
	Min   int        `yaml:"min"`
	Max   *int       `yaml:"max,omitempty"`
}

type Bounds struct {
	Start   *MatchSpec `yaml:"start"`
	Between *MatchSpec `yaml:"between,omitempty"`
	End     *MatchSpec `yaml:"end"`
}

type CaptureSpec struct {
	Key   string     `yaml:"key"`
	Match *MatchSpec `yaml:"match"`
}

// CompiledRule is one rule-file entry compiled into engine values.
type CompiledRule struct {
	Name   string
	Rule   rule.Rule
	Action Action
}

// Load reads and compiles a YAML rule-definition file.
func Load(path string) ([]CompiledRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse compiles YAML rule definitions.
func Parse(data []byte) ([]CompiledRule, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("rules: no rules defined")
	}

	compiled := make([]CompiledRule, 0, len(cfg.Rules))
	for i, spec := range cfg.Rules {
		cr, err := spec.compile()
		if err != nil {
			name := spec.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

// FromRules builds a processor out of compiled rules, preserving order.
func FromRules(rules []CompiledRule) *Processor {
	p := NewProcessor()
	for _, cr := range rules {
		p.RegisterAction(cr.Rule, cr.Action)
	}
	return p
}

// LoadProcessor is Load followed by FromRules.
func LoadProcessor(path string) (*Processor, error) {
	rules, err := Load(path)
	if err != nil {
		return nil, err
	}
	return FromRules(rules), nil
}

func (s RuleSpec) compile() (CompiledRule, error) {
	if s.Match == nil {
		return CompiledRule{}, fmt.Errorf("match specification is required")
	}
	r, err := s.Match.Compile()
	if err != nil {
		return CompiledRule{}, err
	}

	var action Action
	switch s.Action {
	case "", "keep":
		action = Identity()
	case "remove":
		action = Remove()
	case "replace":
		action = ReplaceValues(s.With...)
	default:
		return CompiledRule{}, fmt.Errorf("unknown action %q", s.Action)
	}
	if s.Action != "replace" && len(s.With) > 0 {
		return CompiledRule{}, fmt.Errorf("with: only valid for the replace action")
	}
	return CompiledRule{Name: s.Name, Rule: r, Action: action}, nil
}

// Compile turns the specification into a rule value, validating as the
// rule constructors do.
func (s *MatchSpec) Compile() (rule.Rule, error) {
	if s == nil {
		return nil, fmt.Errorf("empty match specification")
	}
	if err := s.checkExclusive(); err != nil {
		return nil, err
	}

	switch {
	case s.Value != "":
		if s.IgnoreCase {
			return rule.ValueFold(s.Value), nil
		}
		return rule.Value(s.Value), nil
	case s.Pattern != "":
		return rule.Pattern(s.Pattern)
	case len(s.Types) > 0:
		return rule.Type(s.Types...)
	case s.Length != nil:
		return rule.Length(s.Length.Min, s.Length.Max)
	case len(s.Sequence) > 0:
		subs, err := compileAll(s.Sequence)
		if err != nil {
			return nil, err
		}
		return rule.Sequence(subs...)
	case len(s.AnyOf) > 0:
		subs, err := compileAll(s.AnyOf)
		if err != nil {
			return nil, err
		}
		return rule.AnyOf(subs...)
	case len(s.AllOf) > 0:
		subs, err := compileAll(s.AllOf)
		if err != nil {
			return nil, err
		}
		return rule.AllOf(subs...)
	case s.Optional != nil:
		inner, err := s.Optional.Compile()
		if err != nil {
			return nil, err
		}
		return rule.Optional(inner)
	case s.Repeat != nil:
		inner, err := s.Repeat.Match.Compile()
		if err != nil {
			return nil, err
		}
		max := rule.Unbounded
		if s.Repeat.Max != nil {
			max = *s.Repeat.Max
		}
		return rule.Repeat(inner, s.Repeat.Min, max)
	case s.Boundary != nil:
		return s.Boundary.compile()
	case s.Anchor != "":
		return compileAnchor(s.Anchor)
	case s.Lookahead != nil:
		inner, err := s.Lookahead.Compile()
		if err != nil {
			return nil, err
		}
		if s.Negative {
			return rule.NotLookahead(inner)
		}
		return rule.Lookahead(inner)
	case s.Lookbehind != nil:
		inner, err := s.Lookbehind.Compile()
		if err != nil {
			return nil, err
		}
		if s.Negative {
			return rule.NotLookbehind(inner)
		}
		return rule.Lookbehind(inner)
	case s.Capture != nil:
		inner, err := s.Capture.Match.Compile()
		if err != nil {
			return nil, err
		}
		return rule.Capture(s.Capture.Key, inner)
	case s.Reference != "":
		return rule.Reference(s.Reference)
	default:
		return nil, fmt.Errorf("match specification selects no variant")
	}
}

func (b *Bounds) compile() (rule.Rule, error) {
	if b.Start == nil || b.End == nil {
		return nil, fmt.Errorf("boundary: start and end are required")
	}
	start, err := b.Start.Compile()
	if err != nil {
		return nil, err
	}
	end, err := b.End.Compile()
	if err != nil {
		return nil, err
	}
	var between rule.Rule
	if b.Between != nil {
		if between, err = b.Between.Compile(); err != nil {
			return nil, err
		}
	}
	return rule.Boundary(start, between, end)
}

func compileAnchor(name string) (rule.Rule, error) {
	switch name {
	case "document-start":
		return rule.DocumentStart(), nil
	case "document-end":
		return rule.DocumentEnd(), nil
	case "line-start":
		return rule.LineStart(), nil
	case "line-end":
		return rule.LineEnd(), nil
	default:
		return nil, fmt.Errorf("unknown anchor %q", name)
	}
}

func compileAll(specs []*MatchSpec) ([]rule.Rule, error) {
	rules := make([]rule.Rule, len(specs))
	for i, spec := range specs {
		r, err := spec.Compile()
		if err != nil {
			return nil, err
		}
		rules[i] = r
	}
	return rules, nil
}

func (s *MatchSpec) checkExclusive() error {
	set := lo.Count([]bool{
		s.Value != "",
		s.Pattern != "",
		len(s.Types) > 0,
		s.Length != nil,
		len(s.Sequence) > 0,
		len(s.AnyOf) > 0,
		len(s.AllOf) > 0,
		s.Optional != nil,
		s.Repeat != nil,
		s.Boundary != nil,
		s.Anchor != "",
		s.Lookahead != nil,
		s.Lookbehind != nil,
		s.Capture != nil,
		s.Reference != "",
	}, true)
	if set > 1 {
		return fmt.Errorf("match specification sets %d variants, want exactly one", set)
	}
	return nil
}
