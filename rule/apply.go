package rule

import (
	"fmt"
	"strings"

	"github.com/tokmatch/tokmatch/stream"
	"github.com/tokmatch/tokmatch/token"
)

// Apply evaluates r against the stream at its current position. The
// caller's cursor is never moved: probing happens on independent copies,
// and a success is committed by the caller through Match.End. A nil
// match with a nil error is the definitive no-match; a non-nil error is a
// usage error (an unbound lazy rule, a cursor advanced past valid
// bounds), never ordinary match failure.
func Apply(r Rule, s stream.TokenStream, ctx *Context) (*Match, error) {
	if r == nil {
		return nil, fmt.Errorf("rule: nil rule")
	}
	if ctx == nil {
		ctx = NewContext()
	}
	return eval(r, s, ctx)
}

func eval(r Rule, s stream.TokenStream, ctx *Context) (*Match, error) {
	switch v := r.(type) {
	case *AlwaysRule:
		return zeroWidth(v, s.Index()), nil
	case *NeverRule:
		return nil, nil
	case *ValueRule:
		return evalSingle(v, s, v.accepts)
	case *PatternRule:
		return evalSingle(v, s, func(t token.Token) bool { return v.re.MatchString(t.Value()) })
	case *TypeRule:
		return evalSingle(v, s, func(t token.Token) bool {
			for _, tag := range v.tags {
				if !t.HasTag(tag) {
					return false
				}
			}
			return true
		})
	case *LengthRule:
		return evalSingle(v, s, func(t token.Token) bool {
			n := len(t.Value())
			return n >= v.min && n <= v.max
		})
	case *CustomRule:
		return evalSingle(v, s, v.pred)
	case *SequenceRule:
		return evalSequence(v, s, ctx)
	case *AnyOfRule:
		return evalAnyOf(v, s, ctx)
	case *AllOfRule:
		return evalAllOf(v, s, ctx)
	case *OptionalRule:
		return evalOptional(v, s, ctx)
	case *RepeatedRule:
		return evalRepeated(v, s, ctx)
	case *BoundaryRule:
		return evalBoundary(v, s, ctx)
	case *RecursiveRule:
		return evalRecursive(v, s, ctx)
	case *LazyRule:
		if v.target == nil {
			return nil, ErrUnbound
		}
		return eval(v.target, s, ctx)
	case *GroupRule:
		return evalGroup(v, s, ctx)
	case *AnchorRule:
		return evalAnchor(v, s)
	case *LookaroundRule:
		return evalLookaround(v, s, ctx)
	case *CaptureRule:
		return evalCapture(v, s, ctx)
	case *ReferenceRule:
		return evalReference(v, s, ctx)
	default:
		return nil, fmt.Errorf("rule: unknown variant %T", r)
	}
}

// evalSingle matches exactly one non-shadow token accepted by the
// predicate.
func evalSingle(r Rule, s stream.TokenStream, accept func(token.Token) bool) (*Match, error) {
	if !s.HasMore() {
		return nil, nil
	}
	start := s.Index()
	tok, after, err := s.CopyWithIndex(start).Read()
	if err != nil {
		return nil, err
	}
	if !accept(tok) {
		return nil, nil
	}
	return &Match{Start: start, End: after.Index(), Tokens: []token.Token{tok}, Rule: r}, nil
}

func evalSequence(r *SequenceRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	start := s.Index()
	probe := s.CopyWithIndex(start)
	var matched []token.Token
	for _, sub := range r.rules {
		m, err := eval(sub, probe, ctx)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, nil
		}
		probe = probe.AdvanceTo(m.End)
		matched = append(matched, m.Tokens...)
	}
	return &Match{Start: start, End: probe.Index(), Tokens: matched, Rule: r}, nil
}

func evalAnyOf(r *AnyOfRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	for _, alt := range r.rules {
		m, err := eval(alt, s, ctx)
		if err != nil {
			return nil, err
		}
		if m != nil {
			return m, nil
		}
	}
	return nil, nil
}

func evalAllOf(r *AllOfRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	if !s.HasMore() {
		return nil, nil
	}
	for _, sub := range r.rules {
		m, err := eval(sub, s, ctx)
		if err != nil {
			return nil, err
		}
		// every branch must agree on exactly the one token at the cursor
		if m == nil || m.Len() != 1 {
			return nil, nil
		}
	}
	return zeroWidth(r, s.Index()), nil
}

func evalOptional(r *OptionalRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	m, err := eval(r.inner, s, ctx)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m, nil
	}
	return &Match{Start: s.Index(), End: s.Index(), Tokens: []token.Token{}, Rule: r}, nil
}

func evalRepeated(r *RepeatedRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	start := s.Index()
	probe := s.CopyWithIndex(start)
	var matched []token.Token
	count := 0
	for r.max == Unbounded || count < r.max {
		m, err := eval(r.inner, probe, ctx)
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		if m.End <= probe.Index() {
			// zero progress; stop rather than loop forever
			break
		}
		probe = probe.AdvanceTo(m.End)
		matched = append(matched, m.Tokens...)
		count++
	}
	if count < r.min {
		return nil, nil
	}
	return &Match{Start: start, End: probe.Index(), Tokens: matched, Rule: r}, nil
}

func evalBoundary(r *BoundaryRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	start := s.Index()
	probe := s.CopyWithIndex(start)

	ms, err := eval(r.start, probe, ctx)
	if err != nil {
		return nil, err
	}
	if ms == nil {
		return nil, nil
	}
	probe = probe.AdvanceTo(ms.End)
	matched := append([]token.Token(nil), ms.Tokens...)

	for {
		me, err := eval(r.end, probe, ctx)
		if err != nil {
			return nil, err
		}
		if me != nil {
			probe = probe.AdvanceTo(me.End)
			matched = append(matched, me.Tokens...)
			return &Match{Start: start, End: probe.Index(), Tokens: matched, Rule: r}, nil
		}
		if r.between != nil {
			mb, err := eval(r.between, probe, ctx)
			if err != nil {
				return nil, err
			}
			if mb == nil || mb.End <= probe.Index() {
				return nil, nil
			}
			probe = probe.AdvanceTo(mb.End)
			matched = append(matched, mb.Tokens...)
			continue
		}
		if !probe.HasMore() {
			return nil, nil
		}
		tok, after, err := probe.Read()
		if err != nil {
			return nil, err
		}
		probe = after
		matched = append(matched, tok)
	}
}

func evalRecursive(r *RecursiveRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	start := s.Index()
	probe := s.CopyWithIndex(start)

	mo, err := eval(r.open, probe, ctx)
	if err != nil {
		return nil, err
	}
	if mo == nil {
		return nil, nil
	}
	probe = probe.AdvanceTo(mo.End)
	matched := append([]token.Token(nil), mo.Tokens...)

	for {
		mc, err := eval(r.close, probe, ctx)
		if err != nil {
			return nil, err
		}
		if mc != nil {
			probe = probe.AdvanceTo(mc.End)
			matched = append(matched, mc.Tokens...)
			return &Match{Start: start, End: probe.Index(), Tokens: matched, Rule: r}, nil
		}
		if !probe.HasMore() {
			// unbalanced nesting
			return nil, nil
		}
		m, err := eval(r.content, probe, ctx)
		if err != nil {
			return nil, err
		}
		if m == nil || m.End <= probe.Index() {
			return nil, nil
		}
		probe = probe.AdvanceTo(m.End)
		matched = append(matched, m.Tokens...)
	}
}

func evalGroup(r *GroupRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	if !s.HasMore() {
		return nil, nil
	}
	start := s.Index()
	cur, err := s.Current()
	if err != nil {
		return nil, err
	}
	contents, ok := cur.Group()
	if !ok {
		return nil, nil
	}

	inner := stream.New(contents)
	m, err := eval(r.inner, inner, ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	// the whole group must be covered
	if inner.CopyWithIndex(m.End).HasMore() {
		return nil, nil
	}

	_, after, err := s.CopyWithIndex(start).Read()
	if err != nil {
		return nil, err
	}
	return &Match{Start: start, End: after.Index(), Tokens: []token.Token{cur}, Rule: r}, nil
}

func evalAnchor(r *AnchorRule, s stream.TokenStream) (*Match, error) {
	start := s.Index()

	switch r.at {
	case atDocumentStart:
		if start == 0 {
			return zeroWidth(r, start), nil
		}
		return nil, nil

	case atDocumentEnd:
		if !s.HasMore() {
			return zeroWidth(r, start), nil
		}
		return nil, nil

	case atLineStart:
		prev, hasPrev := previousVisible(s)
		if !hasPrev {
			// document start is also a line start
			return zeroWidth(r, start), nil
		}
		if !s.HasMore() {
			return nil, nil
		}
		if strings.Contains(prev.Value(), "\n") {
			return zeroWidth(r, start), nil
		}
		cur, err := s.Current()
		if err != nil {
			return nil, err
		}
		if !prev.Pos().Known() || !cur.Pos().Known() {
			// no determination possible
			return nil, nil
		}
		if cur.Pos().Line > prev.Pos().Line {
			return zeroWidth(r, start), nil
		}
		return nil, nil

	default: // atLineEnd
		if !s.HasMore() {
			// document end closes the final line
			return zeroWidth(r, start), nil
		}
		prev, hasPrev := previousVisible(s)
		if !hasPrev {
			return nil, nil
		}
		if strings.Contains(prev.Value(), "\n") {
			return zeroWidth(r, start), nil
		}
		next, err := s.Current()
		if err != nil {
			return nil, err
		}
		if !prev.Pos().Known() || !next.Pos().Known() {
			return nil, nil
		}
		if next.Pos().Line > prev.Pos().Line {
			return zeroWidth(r, start), nil
		}
		return nil, nil
	}
}

func previousVisible(s stream.TokenStream) (token.Token, bool) {
	behind := s.LookbehindView()
	if !behind.HasMore() {
		return token.Token{}, false
	}
	tok, err := behind.Current()
	if err != nil {
		return token.Token{}, false
	}
	return tok, true
}

func evalLookaround(r *LookaroundRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	var view stream.TokenStream
	if r.behind {
		view = s.LookbehindView()
	} else {
		view = s.LookaheadView()
	}
	m, err := eval(r.inner, view, ctx)
	if err != nil {
		return nil, err
	}
	ok := m != nil
	if r.negative {
		ok = !ok
	}
	if !ok {
		return nil, nil
	}
	return zeroWidth(r, s.Index()), nil
}

func evalCapture(r *CaptureRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	m, err := eval(r.inner, s, ctx)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	ctx.SetCapture(r.key, m.Tokens)
	return m, nil
}

func evalReference(r *ReferenceRule, s stream.TokenStream, ctx *Context) (*Match, error) {
	b, bound := ctx.binding(r.key)

	switch r.mode {
	case refRule:
		if !bound || b.rule == nil {
			return nil, nil
		}
		return eval(b.rule, s, ctx)
	case refTokens:
		if !bound || !b.hasTokens {
			return nil, nil
		}
		return matchLiteral(r, s, b.tokens)
	default: // refDynamic: bound rule, then bound tokens, then capture
		if bound && b.rule != nil {
			return eval(b.rule, s, ctx)
		}
		if bound && b.hasTokens {
			return matchLiteral(r, s, b.tokens)
		}
		if captured, ok := ctx.Capture(r.key); ok {
			return matchLiteral(r, s, captured)
		}
		return nil, nil
	}
}

// matchLiteral compares the upcoming stream tokens positionally, by
// value, against a fixed token list.
func matchLiteral(r Rule, s stream.TokenStream, want []token.Token) (*Match, error) {
	start := s.Index()
	probe := s.CopyWithIndex(start)
	matched := make([]token.Token, 0, len(want))
	for _, w := range want {
		if !probe.HasMore() {
			return nil, nil
		}
		tok, after, err := probe.Read()
		if err != nil {
			return nil, err
		}
		if tok.Value() != w.Value() {
			return nil, nil
		}
		probe = after
		matched = append(matched, tok)
	}
	return &Match{Start: start, End: probe.Index(), Tokens: matched, Rule: r}, nil
}
