package rule

// canMatchZeroWidth conservatively decides whether a rule is statically
// capable of succeeding without consuming tokens. It is used to reject
// unbounded repetition over such bodies at construction time. Lazy and
// Reference bodies are not decidable here and report false; the
// evaluator's zero-progress guard covers them at match time.
func canMatchZeroWidth(r Rule) bool {
	return zeroWidthCapable(r, make(map[Rule]bool))
}

func zeroWidthCapable(r Rule, seen map[Rule]bool) bool {
	if seen[r] {
		// already on the walk: a cycle cannot add zero-width capability
		return false
	}
	seen[r] = true

	switch v := r.(type) {
	case *AlwaysRule, *OptionalRule, *AnchorRule, *LookaroundRule, *AllOfRule:
		return true
	case *SequenceRule:
		for _, sub := range v.rules {
			if !zeroWidthCapable(sub, seen) {
				return false
			}
		}
		return true
	case *AnyOfRule:
		for _, sub := range v.rules {
			if zeroWidthCapable(sub, seen) {
				return true
			}
		}
		return false
	case *RepeatedRule:
		return v.min == 0 || zeroWidthCapable(v.inner, seen)
	case *CaptureRule:
		return zeroWidthCapable(v.inner, seen)
	case *LazyRule:
		return v.target != nil && zeroWidthCapable(v.target, seen)
	default:
		return false
	}
}

// Must panics when a rule constructor returned an error. It keeps grammar
// literals readable where the inputs are known to be valid.
func Must(r Rule, err error) Rule {
	if err != nil {
		panic(err)
	}
	return r
}
