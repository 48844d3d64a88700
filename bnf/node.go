package bnf

import (
	"strconv"
	"strings"
)

// GroupingKind selects how the members of a grouping combine.
type GroupingKind int

const (
	// Ordered matches all members in order (juxtaposition).
	Ordered GroupingKind = iota

	// OneOf matches exactly one member ("|").
	OneOf

	// AllAnyOrder matches every member in any order ("&&").
	AllAnyOrder

	// OneOrMoreAnyOrder matches one or more members in any order ("||").
	OneOrMoreAnyOrder
)

var groupingKindNames = map[GroupingKind]string{
	Ordered:           "ordered",
	OneOf:             "one-of",
	AllAnyOrder:       "all-any-order",
	OneOrMoreAnyOrder: "one-or-more-any-order",
}

func (k GroupingKind) String() string {
	return groupingKindNames[k]
}

type MultiplierKind int

const (
	MultNone MultiplierKind = iota
	MultZeroOrOne                // ?
	MultZeroOrMore               // *
	MultOneOrMore                // + (space separated) or # (comma separated)
	MultExact                    // {A}
	MultAtLeast                  // {A,}
	MultBetween                  // {A,B}
)

// Multiplier is attached to any node. Comma selects comma-separated
// repetition; count kinds carry Min/Max. The trailing annotation of a
// multiplied node belongs to the multiplier, not the node.
type Multiplier struct {
	Kind     MultiplierKind
	Comma    bool
	Min, Max int
	Ann      *Annotation
}

func (m *Multiplier) String() string {
	var sep string
	if m.Comma {
		sep = "#"
	}
	switch m.Kind {
	case MultNone:
		return ""
	case MultZeroOrOne:
		return "?"
	case MultZeroOrMore:
		return "*"
	case MultOneOrMore:
		if m.Comma {
			return "#"
		}
		return "+"
	case MultExact:
		return sep + "{" + strconv.Itoa(m.Min) + "}"
	case MultAtLeast:
		return sep + "{" + strconv.Itoa(m.Min) + ",}"
	default:
		return sep + "{" + strconv.Itoa(m.Min) + "," + strconv.Itoa(m.Max) + "}"
	}
}

// Annotation is an ordered list of named directives attached to a construct
// via the trailing @(...) syntax extension.
type Annotation struct {
	Directives []Directive
}

type Directive struct {
	Name   string
	Values []string
}

// Directive returns the named directive, or nil.
func (a *Annotation) Directive(name string) *Directive {
	if a == nil {
		return nil
	}
	for i := range a.Directives {
		if a.Directives[i].Name == name {
			return &a.Directives[i]
		}
	}
	return nil
}

// Value returns the single value of the named directive. The second result
// is false if the directive is missing or does not carry exactly one value.
func (a *Annotation) Value(name string) (string, bool) {
	d := a.Directive(name)
	if d == nil || len(d.Values) != 1 {
		return "", false
	}
	return d.Values[0], true
}

// ReferenceAttribute is either a string attribute (Name, optionally
// Name=Value) or a numeric range attribute [Min,Max]; Range is nil for
// string attributes.
type ReferenceAttribute struct {
	Name  string
	Value string
	Range *NumericRange
}

func (a ReferenceAttribute) String() string {
	if a.Range != nil {
		return a.Range.String()
	}
	if a.Value != "" {
		return a.Name + "=" + a.Value
	}
	return a.Name
}

// NumericRange keeps its bounds textually: a decimal number, "inf", or
// "-inf". Bounds are validated by the parser.
type NumericRange struct {
	Min, Max string
}

func (r *NumericRange) String() string {
	return "[" + r.Min + "," + r.Max + "]"
}

// Node is a parse-tree node produced by the grammar state machine. The
// variant set is closed: GroupingNode, FunctionNode, ReferenceNode,
// KeywordNode, and LiteralNode.
type Node interface {
	base() *nodeBase
	String() string
}

type nodeBase struct {
	Mult Multiplier
	Ann  *Annotation
}

func (b *nodeBase) base() *nodeBase { return b }

// Multiplier returns the node's multiplier for inspection by consumers.
func Mult(n Node) *Multiplier { return &n.base().Mult }

// Ann returns the node's own annotation (nil if absent).
func Ann(n Node) *Annotation { return n.base().Ann }

type GroupingNode struct {
	nodeBase
	Kind    GroupingKind
	Members []Node

	// implicit marks an ordered grouping synthesized for a juxtaposed
	// member run inside a combinator grouping; it never carries its own
	// multiplier or annotation.
	implicit bool
}

type FunctionNode struct {
	nodeBase
	Name       string
	Parameters *GroupingNode
}

type ReferenceNode struct {
	nodeBase
	Name string

	// Quoted references name a property ("<'border-width'>").
	Quoted bool

	// Internal references use <<...>> brackets.
	Internal bool

	// FunctionCall references name a function-typed production ("<ray()>").
	FunctionCall bool

	Attributes []ReferenceAttribute
}

type KeywordNode struct {
	nodeBase
	Name string
}

type LiteralNode struct {
	nodeBase
	Text string
}

func (n *GroupingNode) String() string {
	var sep string
	switch n.Kind {
	case Ordered:
		sep = " "
	case OneOf:
		sep = " | "
	case AllAnyOrder:
		sep = " && "
	case OneOrMoreAnyOrder:
		sep = " || "
	}
	parts := make([]string, len(n.Members))
	for i, m := range n.Members {
		parts[i] = m.String()
	}
	return "[ " + strings.Join(parts, sep) + " ]" + n.Mult.String()
}

func (n *FunctionNode) String() string {
	inner := n.Parameters.String()
	return n.Name + "(" + strings.TrimSuffix(strings.TrimPrefix(inner, "[ "), " ]") + ")" + n.Mult.String()
}

// Key returns the reference's shared-rule lookup form: brackets and name
// only, attributes excluded.
func (n *ReferenceNode) Key() string {
	name := n.Name
	if n.Quoted {
		name = "'" + name + "'"
	}
	if n.FunctionCall {
		name += "()"
	}
	if n.Internal {
		return "<<" + name + ">>"
	}
	return "<" + name + ">"
}

func (n *ReferenceNode) String() string {
	key := n.Key()
	if len(n.Attributes) == 0 {
		return key + n.Mult.String()
	}
	parts := make([]string, 0, len(n.Attributes))
	for _, a := range n.Attributes {
		parts = append(parts, a.String())
	}
	closer := ">"
	if n.Internal {
		closer = ">>"
	}
	return key[:len(key)-len(closer)] + " " + strings.Join(parts, " ") + closer + n.Mult.String()
}

func (n *KeywordNode) String() string {
	return n.Name + n.Mult.String()
}

func (n *LiteralNode) String() string {
	return "'" + n.Text + "'" + n.Mult.String()
}
