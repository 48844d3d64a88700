package term

import (
	"strconv"
	"strings"

	"github.com/yamp-project/WebKit/bnf"
)

// Term is one node of the grammar term tree.
type Term interface {
	isTerm()
}

// MatchOne matches exactly one of its alternatives.
type MatchOne struct {
	Subterms []Term

	// SettingsFlag gates the whole alternative set at runtime. A flagged
	// MatchOne nested in another MatchOne cannot be flattened.
	SettingsFlag string

	NoSingleItemOpt bool
}

// MatchAllOrdered matches every subterm, in order.
type MatchAllOrdered struct {
	Subterms        []Term
	SettingsFlag    string
	NoSingleItemOpt bool
}

// MatchAllAnyOrder matches every subterm, in any order.
type MatchAllAnyOrder struct {
	Subterms        []Term
	SettingsFlag    string
	NoSingleItemOpt bool
}

// MatchOneOrMoreAnyOrder matches one or more subterms, in any order.
type MatchOneOrMoreAnyOrder struct {
	Subterms        []Term
	SettingsFlag    string
	NoSingleItemOpt bool
}

// Optional wraps one term whose absence is not a match failure.
type Optional struct {
	Subterm Term
}

// UnboundedRepetition repeats its subterm with no upper bound.
type UnboundedRepetition struct {
	Subterm   Term
	Separator byte // ' ' or ','
	Min       int
}

// BoundedRepetition repeats its subterm between Min and Max times.
// DefaultPrevious selects the "reuse previous value" fill policy for the
// unmatched tail.
type BoundedRepetition struct {
	Subterm         Term
	Separator       byte
	Min, Max        int
	DefaultPrevious bool
}

// Reference names a shared grammar rule or a builtin primitive.
type Reference struct {
	Name         string
	Quoted       bool // property reference: <'border-width'>
	Internal     bool // <<...>>
	FunctionCall bool // <ray()>
	Attributes   []bnf.ReferenceAttribute
	SettingsFlag string
}

// Function is CSS function-call notation wrapping one parameter term.
type Function struct {
	Name         string
	Parameter    Term
	SettingsFlag string
}

// Keyword is a single recognized identifier value.
type Keyword struct {
	Name         string
	AliasedTo    string
	SettingsFlag string
	Status       string
}

// Literal is a fixed delimiter character or string.
type Literal struct {
	Text string
}

func (*MatchOne) isTerm()               {}
func (*MatchAllOrdered) isTerm()        {}
func (*MatchAllAnyOrder) isTerm()       {}
func (*MatchOneOrMoreAnyOrder) isTerm() {}
func (*Optional) isTerm()               {}
func (*UnboundedRepetition) isTerm()    {}
func (*BoundedRepetition) isTerm()      {}
func (*Reference) isTerm()              {}
func (*Function) isTerm()               {}
func (*Keyword) isTerm()                {}
func (*Literal) isTerm()                {}

// Builtin primitive value types recognized directly by the generated
// consumers. References to anything else must resolve through the shared
// rule set.
var builtinReferences = map[string]bool{
	"angle":             true,
	"color":             true,
	"custom-ident":      true,
	"dashed-ident":      true,
	"flex":              true,
	"frequency":         true,
	"ident":             true,
	"image":             true,
	"integer":           true,
	"length":            true,
	"length-percentage": true,
	"number":            true,
	"percentage":        true,
	"position":          true,
	"ratio":             true,
	"resolution":        true,
	"string":            true,
	"time":              true,
	"url":               true,
}

// Builtin reports whether the reference names a recognized primitive.
// Internal, quoted, and function-call references always resolve through
// the rule set.
func (r *Reference) Builtin() bool {
	if r.Internal || r.Quoted || r.FunctionCall {
		return false
	}
	return builtinReferences[r.Name]
}

// Key returns the shared-rule lookup form of the reference: brackets and
// name only, attributes excluded.
func (r *Reference) Key() string {
	name := r.Name
	if r.Quoted {
		name = "'" + name + "'"
	}
	if r.FunctionCall {
		name += "()"
	}
	if r.Internal {
		return "<<" + name + ">>"
	}
	return "<" + name + ">"
}

// IsValuesPlaceholder reports whether the reference is the internal
// <<values>> placeholder expanded from the property's value list.
func (r *Reference) IsValuesPlaceholder() bool {
	return r.Internal && !r.Quoted && !r.FunctionCall && r.Name == "values"
}

// SupportedKeywords returns the set of keyword names reachable through the
// term tree, in first-appearance order: the union over all branches, the
// name itself for a bare keyword, nothing for non-keyword leaves.
func SupportedKeywords(t Term) []string {
	var result []string
	seen := map[string]bool{}
	collectKeywords(t, &result, seen)
	return result
}

func collectKeywords(t Term, result *[]string, seen map[string]bool) {
	switch t := t.(type) {
	case *Keyword:
		if !seen[t.Name] {
			seen[t.Name] = true
			*result = append(*result, t.Name)
		}
	case *MatchOne:
		for _, s := range t.Subterms {
			collectKeywords(s, result, seen)
		}
	case *MatchAllOrdered:
		for _, s := range t.Subterms {
			collectKeywords(s, result, seen)
		}
	case *MatchAllAnyOrder:
		for _, s := range t.Subterms {
			collectKeywords(s, result, seen)
		}
	case *MatchOneOrMoreAnyOrder:
		for _, s := range t.Subterms {
			collectKeywords(s, result, seen)
		}
	case *Optional:
		collectKeywords(t.Subterm, result, seen)
	case *UnboundedRepetition:
		collectKeywords(t.Subterm, result, seen)
	case *BoundedRepetition:
		collectKeywords(t.Subterm, result, seen)
	case *Function:
		collectKeywords(t.Parameter, result, seen)
	case *Reference, *Literal:
		// no keywords
	}
}

// ContainsUnresolvedReference reports whether the tree still holds any
// non-builtin reference. Such a tree cannot be validated against a value
// list and cannot drive code generation.
func ContainsUnresolvedReference(t Term) bool {
	switch t := t.(type) {
	case *Reference:
		return !t.Builtin()
	case *MatchOne:
		return anyUnresolved(t.Subterms)
	case *MatchAllOrdered:
		return anyUnresolved(t.Subterms)
	case *MatchAllAnyOrder:
		return anyUnresolved(t.Subterms)
	case *MatchOneOrMoreAnyOrder:
		return anyUnresolved(t.Subterms)
	case *Optional:
		return ContainsUnresolvedReference(t.Subterm)
	case *UnboundedRepetition:
		return ContainsUnresolvedReference(t.Subterm)
	case *BoundedRepetition:
		return ContainsUnresolvedReference(t.Subterm)
	case *Function:
		return ContainsUnresolvedReference(t.Parameter)
	default:
		return false
	}
}

func anyUnresolved(terms []Term) bool {
	for _, t := range terms {
		if ContainsUnresolvedReference(t) {
			return true
		}
	}
	return false
}

// Stringify renders a term tree back into dialect-like text for
// diagnostics and verbose output.
func Stringify(t Term) string {
	switch t := t.(type) {
	case *MatchOne:
		return "[ " + joinTerms(t.Subterms, " | ") + " ]"
	case *MatchAllOrdered:
		return "[ " + joinTerms(t.Subterms, " ") + " ]"
	case *MatchAllAnyOrder:
		return "[ " + joinTerms(t.Subterms, " && ") + " ]"
	case *MatchOneOrMoreAnyOrder:
		return "[ " + joinTerms(t.Subterms, " || ") + " ]"
	case *Optional:
		return Stringify(t.Subterm) + "?"
	case *UnboundedRepetition:
		if t.Separator == ',' {
			if t.Min <= 1 {
				return Stringify(t.Subterm) + "#"
			}
			return Stringify(t.Subterm) + "#{" + strconv.Itoa(t.Min) + ",}"
		}
		switch t.Min {
		case 0:
			return Stringify(t.Subterm) + "*"
		case 1:
			return Stringify(t.Subterm) + "+"
		default:
			return Stringify(t.Subterm) + "{" + strconv.Itoa(t.Min) + ",}"
		}
	case *BoundedRepetition:
		sep := ""
		if t.Separator == ',' {
			sep = "#"
		}
		return Stringify(t.Subterm) + sep + "{" + strconv.Itoa(t.Min) + "," + strconv.Itoa(t.Max) + "}"
	case *Reference:
		return t.Key()
	case *Function:
		return t.Name + "(" + Stringify(t.Parameter) + ")"
	case *Keyword:
		return t.Name
	case *Literal:
		return "'" + t.Text + "'"
	default:
		return "?"
	}
}

func joinTerms(terms []Term, sep string) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = Stringify(t)
	}
	return strings.Join(parts, sep)
}
