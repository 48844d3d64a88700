package term

import (
	"github.com/yamp-project/WebKit/bnf"
)

// FromNode converts one parse-tree node into exactly one term, wrapping it
// according to the node's multiplier. A single-member grouping without an
// annotation converts to its sole member directly.
func FromNode(n bnf.Node) (Term, error) {
	inner, e := convertNode(n)
	if e != nil {
		return nil, e
	}
	return wrapMultiplier(inner, bnf.Mult(n))
}

func convertNode(n bnf.Node) (Term, error) {
	switch n := n.(type) {
	case *bnf.GroupingNode:
		return convertGrouping(n)

	case *bnf.FunctionNode:
		param, e := FromNode(n.Parameters)
		if e != nil {
			return nil, e
		}
		flag, _ := bnf.Ann(n).Value("settings-flag")
		return &Function{Name: n.Name, Parameter: param, SettingsFlag: flag}, nil

	case *bnf.ReferenceNode:
		flag, _ := bnf.Ann(n).Value("settings-flag")
		return &Reference{
			Name:         n.Name,
			Quoted:       n.Quoted,
			Internal:     n.Internal,
			FunctionCall: n.FunctionCall,
			Attributes:   n.Attributes,
			SettingsFlag: flag,
		}, nil

	case *bnf.KeywordNode:
		ann := bnf.Ann(n)
		aliasedTo, _ := ann.Value("aliased-to")
		flag, _ := ann.Value("settings-flag")
		status, _ := ann.Value("status")
		return &Keyword{Name: n.Name, AliasedTo: aliasedTo, SettingsFlag: flag, Status: status}, nil

	case *bnf.LiteralNode:
		return &Literal{Text: n.Text}, nil
	}

	return nil, nil // unreachable: the bnf node set is closed
}

func convertGrouping(n *bnf.GroupingNode) (Term, error) {
	if len(n.Members) == 1 && bnf.Ann(n) == nil {
		return FromNode(n.Members[0])
	}

	subterms := make([]Term, 0, len(n.Members))
	for _, m := range n.Members {
		t, e := FromNode(m)
		if e != nil {
			return nil, e
		}
		subterms = append(subterms, t)
	}

	ann := bnf.Ann(n)
	flag, _ := ann.Value("settings-flag")
	noOpt := ann.Directive("no-single-item-opt") != nil

	switch n.Kind {
	case bnf.OneOf:
		return &MatchOne{Subterms: subterms, SettingsFlag: flag, NoSingleItemOpt: noOpt}, nil
	case bnf.AllAnyOrder:
		return &MatchAllAnyOrder{Subterms: subterms, SettingsFlag: flag, NoSingleItemOpt: noOpt}, nil
	case bnf.OneOrMoreAnyOrder:
		return &MatchOneOrMoreAnyOrder{Subterms: subterms, SettingsFlag: flag, NoSingleItemOpt: noOpt}, nil
	default:
		return &MatchAllOrdered{Subterms: subterms, SettingsFlag: flag, NoSingleItemOpt: noOpt}, nil
	}
}

func wrapMultiplier(inner Term, m *bnf.Multiplier) (Term, error) {
	defValue, hasDefault := m.Ann.Value("default")
	if hasDefault {
		// Recognized early so a bad pragma fails at schema load, not
		// somewhere in code generation.
		if defValue != "previous" {
			return nil, badDefaultError(defValue)
		}
		if m.Kind != bnf.MultExact && m.Kind != bnf.MultBetween {
			return nil, defaultNotApplicableError()
		}
	}

	sep := byte(' ')
	if m.Comma {
		sep = ','
	}

	switch m.Kind {
	case bnf.MultNone:
		return inner, nil
	case bnf.MultZeroOrOne:
		return &Optional{Subterm: inner}, nil
	case bnf.MultZeroOrMore:
		return &UnboundedRepetition{Subterm: inner, Separator: sep, Min: 0}, nil
	case bnf.MultOneOrMore:
		return &UnboundedRepetition{Subterm: inner, Separator: sep, Min: 1}, nil
	case bnf.MultAtLeast:
		return &UnboundedRepetition{Subterm: inner, Separator: sep, Min: m.Min}, nil
	default: // MultExact, MultBetween
		return &BoundedRepetition{
			Subterm:         inner,
			Separator:       sep,
			Min:             m.Min,
			Max:             m.Max,
			DefaultPrevious: hasDefault,
		}, nil
	}
}
