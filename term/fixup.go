package term

import (
	"sort"
)

type ruleState int

const (
	ruleRaw ruleState = iota
	ruleFixing
	ruleFixed
)

type sharedRule struct {
	name     string
	root     Term
	exported bool
	state    ruleState
	used     bool
}

// RuleSet is the shared-grammar-rule table. Rules are keyed by their
// reference form ("<line-style>", "<<track-list>>", "<'border-width'>").
// Rule bodies may reference other rules; resolution fixes them on demand
// and rejects cycles.
type RuleSet struct {
	rules   map[string]*sharedRule
	fixPath []string
}

func NewRuleSet() *RuleSet {
	return &RuleSet{rules: map[string]*sharedRule{}}
}

func (rs *RuleSet) Add(name string, root Term, exported bool) error {
	if _, has := rs.rules[name]; has {
		return ruleDefinedError(name)
	}
	rs.rules[name] = &sharedRule{name: name, root: root, exported: exported}
	return nil
}

// Names returns all rule names in lexical order.
func (rs *RuleSet) Names() []string {
	names := make([]string, 0, len(rs.rules))
	for name := range rs.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (rs *RuleSet) Exported(name string) bool {
	r, has := rs.rules[name]
	return has && r.exported
}

// Lookup returns the fixed-up root term of a rule without marking it used.
func (rs *RuleSet) Lookup(name string) (Term, bool) {
	r, has := rs.rules[name]
	if !has || r.state != ruleFixed {
		return nil, false
	}
	return r.root, true
}

// UnusedNames returns the rules never referenced by any fixed-up grammar,
// in lexical order.
func (rs *RuleSet) UnusedNames() []string {
	var names []string
	for name, r := range rs.rules {
		if !r.used {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// FixupAll fixes every rule body against the set itself. Must run before
// any property grammar is fixed up.
func (rs *RuleSet) FixupAll() error {
	for _, name := range rs.Names() {
		if _, e := rs.resolve(name, false); e != nil {
			return e
		}
	}
	// FixupAll itself resolves every rule; only uses recorded after this
	// point count as real references.
	for _, r := range rs.rules {
		r.used = false
	}
	return nil
}

func (rs *RuleSet) resolve(name string, markUsed bool) (Term, error) {
	r := rs.rules[name]
	switch r.state {
	case ruleFixing:
		return nil, ruleCycleError(append(rs.fixPath, name))
	case ruleRaw:
		r.state = ruleFixing
		rs.fixPath = append(rs.fixPath, name)
		fixed, e := Fixup(r.root, rs)
		rs.fixPath = rs.fixPath[:len(rs.fixPath)-1]
		if e != nil {
			return nil, e
		}
		r.root = fixed
		r.state = ruleFixed
	}
	if markUsed {
		r.used = true
	}
	return r.root, nil
}

// Fixup resolves shared-rule references and re-simplifies composites.
// It returns the term itself or a simplified replacement and is
// idempotent: fixing an already-fixed tree changes nothing.
func Fixup(t Term, rs *RuleSet) (Term, error) {
	switch t := t.(type) {
	case *Reference:
		if t.Builtin() || t.IsValuesPlaceholder() {
			return t, nil
		}
		if rs != nil {
			if _, has := rs.rules[t.Key()]; has {
				tracer().Debugf("substituting shared rule %s", t.Key())
				resolved, e := rs.resolve(t.Key(), true)
				if e != nil {
					return nil, e
				}
				// Each substitution site gets its own copy; later
				// per-property fixups mutate trees in place.
				return Clone(resolved), nil
			}
		}
		return t, nil

	case *MatchOne:
		flattened := make([]Term, 0, len(t.Subterms))
		for _, s := range t.Subterms {
			fixed, e := Fixup(s, rs)
			if e != nil {
				return nil, e
			}
			if nested, ok := fixed.(*MatchOne); ok {
				// Flattening would silently widen the scope of a nested
				// settings-flag gate; the grammar author has to restructure.
				if nested.SettingsFlag != "" {
					return nil, flaggedAlternativesError(nested.SettingsFlag)
				}
				// A single-item opt-out on the nested grouping extends to
				// the merged one.
				if nested.NoSingleItemOpt {
					t.NoSingleItemOpt = true
				}
				flattened = append(flattened, nested.Subterms...)
			} else {
				flattened = append(flattened, fixed)
			}
		}
		t.Subterms = flattened
		return collapseComposite(t, t.Subterms, t.SettingsFlag, t.NoSingleItemOpt), nil

	case *MatchAllOrdered:
		if e := fixupSubterms(t.Subterms, rs); e != nil {
			return nil, e
		}
		return collapseComposite(t, t.Subterms, t.SettingsFlag, t.NoSingleItemOpt), nil

	case *MatchAllAnyOrder:
		if e := fixupSubterms(t.Subterms, rs); e != nil {
			return nil, e
		}
		return collapseComposite(t, t.Subterms, t.SettingsFlag, t.NoSingleItemOpt), nil

	case *MatchOneOrMoreAnyOrder:
		if e := fixupSubterms(t.Subterms, rs); e != nil {
			return nil, e
		}
		return collapseComposite(t, t.Subterms, t.SettingsFlag, t.NoSingleItemOpt), nil

	case *Optional:
		fixed, e := Fixup(t.Subterm, rs)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *UnboundedRepetition:
		fixed, e := Fixup(t.Subterm, rs)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *BoundedRepetition:
		fixed, e := Fixup(t.Subterm, rs)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *Function:
		fixed, e := Fixup(t.Parameter, rs)
		if e != nil {
			return nil, e
		}
		t.Parameter = fixed
		return t, nil

	default: // *Keyword, *Literal
		return t, nil
	}
}

func fixupSubterms(subterms []Term, rs *RuleSet) error {
	for i, s := range subterms {
		fixed, e := Fixup(s, rs)
		if e != nil {
			return e
		}
		subterms[i] = fixed
	}
	return nil
}

// collapseComposite reduces a composite with a single remaining subterm to
// that subterm, unless a gate or directive would be lost.
func collapseComposite(t Term, subterms []Term, flag string, noOpt bool) Term {
	if len(subterms) == 1 && flag == "" && !noOpt {
		return subterms[0]
	}
	return t
}

// FixupValuesReferences replaces every internal <<values>> placeholder by
// a MatchOne over the entry's declared values, preserving list order.
// Runs once per property, after Fixup.
func FixupValuesReferences(t Term, values []*Keyword) (Term, error) {
	switch t := t.(type) {
	case *Reference:
		if !t.IsValuesPlaceholder() {
			return t, nil
		}
		if len(values) == 0 {
			return nil, noValuesError()
		}
		subterms := make([]Term, len(values))
		for i, v := range values {
			kw := *v
			subterms[i] = &kw
		}
		return &MatchOne{Subterms: subterms}, nil

	case *MatchOne:
		if e := fixupValuesSubterms(t.Subterms, values); e != nil {
			return nil, e
		}
		return t, nil

	case *MatchAllOrdered:
		if e := fixupValuesSubterms(t.Subterms, values); e != nil {
			return nil, e
		}
		return t, nil

	case *MatchAllAnyOrder:
		if e := fixupValuesSubterms(t.Subterms, values); e != nil {
			return nil, e
		}
		return t, nil

	case *MatchOneOrMoreAnyOrder:
		if e := fixupValuesSubterms(t.Subterms, values); e != nil {
			return nil, e
		}
		return t, nil

	case *Optional:
		fixed, e := FixupValuesReferences(t.Subterm, values)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *UnboundedRepetition:
		fixed, e := FixupValuesReferences(t.Subterm, values)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *BoundedRepetition:
		fixed, e := FixupValuesReferences(t.Subterm, values)
		if e != nil {
			return nil, e
		}
		t.Subterm = fixed
		return t, nil

	case *Function:
		fixed, e := FixupValuesReferences(t.Parameter, values)
		if e != nil {
			return nil, e
		}
		t.Parameter = fixed
		return t, nil

	default:
		return t, nil
	}
}

func fixupValuesSubterms(subterms []Term, values []*Keyword) error {
	for i, s := range subterms {
		fixed, e := FixupValuesReferences(s, values)
		if e != nil {
			return e
		}
		subterms[i] = fixed
	}
	return nil
}

// Clone returns a deep copy of a term tree.
func Clone(t Term) Term {
	switch t := t.(type) {
	case *MatchOne:
		c := *t
		c.Subterms = cloneTerms(t.Subterms)
		return &c
	case *MatchAllOrdered:
		c := *t
		c.Subterms = cloneTerms(t.Subterms)
		return &c
	case *MatchAllAnyOrder:
		c := *t
		c.Subterms = cloneTerms(t.Subterms)
		return &c
	case *MatchOneOrMoreAnyOrder:
		c := *t
		c.Subterms = cloneTerms(t.Subterms)
		return &c
	case *Optional:
		c := *t
		c.Subterm = Clone(t.Subterm)
		return &c
	case *UnboundedRepetition:
		c := *t
		c.Subterm = Clone(t.Subterm)
		return &c
	case *BoundedRepetition:
		c := *t
		c.Subterm = Clone(t.Subterm)
		return &c
	case *Function:
		c := *t
		c.Parameter = Clone(t.Parameter)
		return &c
	case *Reference:
		c := *t
		return &c
	case *Keyword:
		c := *t
		return &c
	default:
		c := *(t.(*Literal))
		return &c
	}
}

func cloneTerms(terms []Term) []Term {
	result := make([]Term, len(terms))
	for i, t := range terms {
		result[i] = Clone(t)
	}
	return result
}

// CheckAgainstValues diffs the keywords reachable through a fully resolved
// grammar tree against the declared value list. Any name present on one
// side only is a hard error. Callers skip the check when the tree still
// contains unresolved references.
func CheckAgainstValues(t Term, declared []string) error {
	supported := SupportedKeywords(t)
	supportedSet := map[string]bool{}
	for _, name := range supported {
		supportedSet[name] = true
	}
	declaredSet := map[string]bool{}
	for _, name := range declared {
		declaredSet[name] = true
	}

	var missing, extra []string
	for _, name := range supported {
		if !declaredSet[name] {
			missing = append(missing, name)
		}
	}
	for _, name := range declared {
		if !supportedSet[name] {
			extra = append(extra, name)
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		return valueMismatchError(missing, extra)
	}
	return nil
}
