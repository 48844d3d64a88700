package term

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// Dump renders a term tree for verbose and test output.
func Dump(t Term) string {
	p := tp.New()
	addTerm(p, t)
	return p.String()
}

func addTerm(p tp.Tree, t Term) {
	switch t := t.(type) {
	case *MatchOne:
		addBranch(p, "one-of", t.SettingsFlag, t.Subterms)
	case *MatchAllOrdered:
		addBranch(p, "all-ordered", t.SettingsFlag, t.Subterms)
	case *MatchAllAnyOrder:
		addBranch(p, "all-any-order", t.SettingsFlag, t.Subterms)
	case *MatchOneOrMoreAnyOrder:
		addBranch(p, "one-or-more-any-order", t.SettingsFlag, t.Subterms)
	case *Optional:
		addTerm(p.AddBranch("optional"), t.Subterm)
	case *UnboundedRepetition:
		addTerm(p.AddBranch(fmt.Sprintf("repeat{%d,} sep=%q", t.Min, t.Separator)), t.Subterm)
	case *BoundedRepetition:
		label := fmt.Sprintf("repeat{%d,%d} sep=%q", t.Min, t.Max, t.Separator)
		if t.DefaultPrevious {
			label += " default=previous"
		}
		addTerm(p.AddBranch(label), t.Subterm)
	case *Reference:
		label := "reference " + t.Key()
		for _, a := range t.Attributes {
			label += " " + a.String()
		}
		if t.Builtin() {
			label += " (builtin)"
		}
		p.AddNode(label)
	case *Function:
		addTerm(p.AddBranch("function "+t.Name+"()"), t.Parameter)
	case *Keyword:
		label := "keyword " + t.Name
		if t.AliasedTo != "" {
			label += " -> " + t.AliasedTo
		}
		if t.SettingsFlag != "" {
			label += " [" + t.SettingsFlag + "]"
		}
		p.AddNode(label)
	case *Literal:
		p.AddNode("literal '" + t.Text + "'")
	}
}

func addBranch(p tp.Tree, label, flag string, subterms []Term) {
	if flag != "" {
		label += " [" + flag + "]"
	}
	branch := p.AddBranch(label)
	for _, s := range subterms {
		addTerm(branch, s)
	}
}
