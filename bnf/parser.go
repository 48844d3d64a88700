package bnf

import (
	"strconv"
	"strings"

	"github.com/yamp-project/WebKit/lexer"
)

// Automaton states, explicit and exhaustive per construct kind.
type state int

const (
	groupInitialState state = iota // inside a grouping, no member yet
	groupExpectTermState           // a combinator was consumed, a member is required
	groupHasTermState              // after a member
	refNameState                   // after < or <<
	refFuncCloseState              // after a function-call reference name
	refAttrsState                  // after the reference name, expecting attributes or close
	refAttrNamedState              // after a string attribute name
	refAttrValueState              // after = inside a string attribute
	refRangeMinState               // after [ inside a reference
	refRangeCommaState             // after the range minimum
	refRangeMaxState               // after the range comma
	refRangeCloseState             // after the range maximum
	countMinState                  // after { of a count multiplier
	countSepState                  // after the count minimum
	countMaxState                  // after the count comma
	countCloseState                // after the count maximum
	annOpenState                   // after @
	annNameState                   // after @(
	annNamedState                  // after a directive name
	annValueState                  // after = or , inside a directive
	annValuedState                 // after a directive value
)

var stateNames = map[state]string{
	groupInitialState:    "grouping",
	groupExpectTermState: "grouping-required-term",
	groupHasTermState:    "grouping-after-term",
	refNameState:         "reference-name",
	refFuncCloseState:    "reference-function-close",
	refAttrsState:        "reference-attributes",
	refAttrNamedState:    "reference-attribute-named",
	refAttrValueState:    "reference-attribute-value",
	refRangeMinState:     "reference-range-min",
	refRangeCommaState:   "reference-range-comma",
	refRangeMaxState:     "reference-range-max",
	refRangeCloseState:   "reference-range-close",
	countMinState:        "count-min",
	countSepState:        "count-separator",
	countMaxState:        "count-max",
	countCloseState:      "count-close",
	annOpenState:         "annotation-open",
	annNameState:         "annotation-name",
	annNamedState:        "annotation-named",
	annValueState:        "annotation-value",
	annValuedState:       "annotation-valued",
}

func (s state) String() string {
	return stateNames[s]
}

var combinatorKinds = map[string]GroupingKind{
	"|":  OneOf,
	"||": OneOrMoreAnyOrder,
	"&&": AllAnyOrder,
}

var combinatorTexts = map[GroupingKind]string{
	OneOf:             "|",
	OneOrMoreAnyOrder: "||",
	AllAnyOrder:       "&&",
}

// Annotation directive whitelists, per construct kind the annotation
// attaches to.
var directiveWhitelist = map[string]map[string]bool{
	"grouping":   {"settings-flag": true, "no-single-item-opt": true},
	"function":   {"settings-flag": true},
	"reference":  {"settings-flag": true},
	"keyword":    {"settings-flag": true, "aliased-to": true, "status": true},
	"literal":    {},
	"multiplier": {"default": true},
}

var knownDirectives = map[string]bool{
	"settings-flag":      true,
	"no-single-item-opt": true,
	"aliased-to":         true,
	"status":             true,
	"default":            true,
}

// frame is one stack entry of the automaton: the current state, the node
// being built, and construct-specific working storage. The node below the
// frame owns the completed node once the frame pops.
type frame struct {
	st state

	// grouping frames
	group      *GroupingNode
	close      string // "]", ")", or "" for the implicit root
	owner      *FunctionNode
	combLocked bool
	last       Node // most recently attached member

	// reference frames
	ref  *ReferenceNode
	attr ReferenceAttribute
	rng  *NumericRange

	// count-multiplier frames
	countMin int
	countMax int
	target   Node

	// annotation frames
	ann           *Annotation
	annTargetNode Node
	annTargetMult *Multiplier
}

type parser struct {
	src   string
	stack []*frame
}

// Parse consumes one full grammar string and returns the root grouping
// node: an implicit, unbracketed ordered grouping (square brackets are
// elided at the root only).
func Parse(src string) (*GroupingNode, error) {
	tracer().Debugf("parsing grammar %q", src)
	p := &parser{src: src}
	root := &GroupingNode{Kind: Ordered}
	p.push(&frame{st: groupInitialState, group: root})

	lx := lexer.New(src)
	for {
		tok := lx.Next()
		if tok.Type == lexer.IllegalToken {
			return nil, illegalCharError(src, tok)
		}
		if tok.IsEoi() {
			return p.finish()
		}
		if e := p.step(tok); e != nil {
			return nil, e
		}
	}
}

func (p *parser) push(f *frame) {
	p.stack = append(p.stack, f)
}

func (p *parser) pop() *frame {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func (p *parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *parser) finish() (*GroupingNode, error) {
	f := p.top()
	if len(p.stack) > 1 {
		return nil, unexpectedEoiError(p.src, f.st)
	}
	switch f.st {
	case groupExpectTermState:
		return nil, trailingCombinatorError(p.src, combinatorTexts[f.group.Kind])
	case groupHasTermState:
		return f.group, nil
	default:
		return nil, emptyGroupingError(p.src)
	}
}

func (p *parser) step(tok lexer.Token) error {
	f := p.top()
	switch f.st {
	case groupInitialState, groupExpectTermState, groupHasTermState:
		return p.stepGroup(f, tok)
	case refNameState, refFuncCloseState, refAttrsState, refAttrNamedState, refAttrValueState,
		refRangeMinState, refRangeCommaState, refRangeMaxState, refRangeCloseState:
		return p.stepReference(f, tok)
	case countMinState, countSepState, countMaxState, countCloseState:
		return p.stepCount(f, tok)
	default:
		return p.stepAnnotation(f, tok)
	}
}

// attachMember appends a completed node to the grouping under
// construction. A member juxtaposed after another member of a
// combinator-locked grouping binds tighter than the combinator and is
// collected into an implicit ordered sub-grouping.
func (p *parser) attachMember(f *frame, n Node) {
	g := f.group
	if f.st == groupHasTermState && f.combLocked {
		last := g.Members[len(g.Members)-1]
		if ig, ok := last.(*GroupingNode); ok && ig.implicit {
			ig.Members = append(ig.Members, n)
		} else {
			g.Members[len(g.Members)-1] = &GroupingNode{
				Kind:     Ordered,
				Members:  []Node{last, n},
				implicit: true,
			}
		}
	} else {
		g.Members = append(g.Members, n)
	}
	f.last = n
	f.st = groupHasTermState
}

func (p *parser) stepGroup(f *frame, tok lexer.Token) error {
	switch tok.Type {
	case lexer.IdentToken:
		p.attachMember(f, &KeywordNode{Name: tok.Text})
		return nil

	case lexer.StringToken:
		p.attachMember(f, &LiteralNode{Text: strings.Trim(tok.Text, "'")})
		return nil

	case lexer.FunctionToken:
		fn := &FunctionNode{Name: strings.TrimSuffix(tok.Text, "(")}
		p.push(&frame{st: groupInitialState, group: &GroupingNode{Kind: Ordered}, close: ")", owner: fn})
		return nil

	case lexer.CombinatorToken:
		return p.stepGroupCombinator(f, tok)

	case lexer.MultiplierToken:
		if f.st != groupHasTermState {
			return unexpectedTokenError(p.src, f.st, tok)
		}
		return p.stepGroupMultiplier(f, tok)

	case lexer.PunctToken:
		switch tok.Text {
		case "[":
			p.push(&frame{st: groupInitialState, group: &GroupingNode{}, close: "]"})
			return nil
		case "<", "<<":
			p.push(&frame{st: refNameState, ref: &ReferenceNode{Internal: tok.Text == "<<"}})
			return nil
		case "/":
			p.attachMember(f, &LiteralNode{Text: "/"})
			return nil
		case "@":
			if f.st != groupHasTermState {
				return unexpectedTokenError(p.src, f.st, tok)
			}
			return p.pushAnnotation(f.last)
		case "]", ")":
			return p.closeGroup(f, tok)
		}
	}

	return unexpectedTokenError(p.src, f.st, tok)
}

func (p *parser) stepGroupCombinator(f *frame, tok lexer.Token) error {
	if tok.Text == "," {
		// The comma is a literal separator inside an ordered grouping;
		// mixing it into a combinator grouping is malformed.
		if f.st != groupHasTermState || f.combLocked {
			return unexpectedTokenError(p.src, f.st, tok)
		}
		p.attachMember(f, &LiteralNode{Text: ","})
		return nil
	}

	if f.st != groupHasTermState {
		return unexpectedTokenError(p.src, f.st, tok)
	}

	kind := combinatorKinds[tok.Text]
	if f.combLocked {
		if f.group.Kind != kind {
			return mixedCombinatorError(p.src, combinatorTexts[f.group.Kind], tok.Text)
		}
	} else {
		// First combinator locks the grouping kind. Members already
		// collected by juxtaposition bind tighter and become a single
		// implicit ordered member.
		if len(f.group.Members) > 1 {
			f.group.Members = []Node{&GroupingNode{Kind: Ordered, Members: f.group.Members, implicit: true}}
		}
		f.group.Kind = kind
		f.combLocked = true
	}
	f.st = groupExpectTermState
	return nil
}

func (p *parser) stepGroupMultiplier(f *frame, tok lexer.Token) error {
	m := Mult(f.last)
	switch tok.Text {
	case "?", "*", "+", "#":
		if m.Kind != MultNone {
			return stackedMultiplierError(p.src, m, tok)
		}
		switch tok.Text {
		case "?":
			m.Kind = MultZeroOrOne
		case "*":
			m.Kind = MultZeroOrMore
		case "+":
			m.Kind = MultOneOrMore
		case "#":
			m.Kind = MultOneOrMore
			m.Comma = true
		}
		return nil

	case "{":
		// A count may start fresh or refine a preceding # into its
		// comma-counted variants; everything else is sealed.
		if m.Kind != MultNone && !(m.Kind == MultOneOrMore && m.Comma) {
			return stackedMultiplierError(p.src, m, tok)
		}
		p.push(&frame{st: countMinState, target: f.last})
		return nil
	}

	return unexpectedTokenError(p.src, f.st, tok)
}

func (p *parser) closeGroup(f *frame, tok lexer.Token) error {
	if tok.Text != f.close {
		return unbalancedCloseError(p.src, tok, f.close)
	}
	if f.st == groupExpectTermState {
		return trailingCombinatorError(p.src, combinatorTexts[f.group.Kind])
	}
	if len(f.group.Members) == 0 {
		return emptyGroupingError(p.src)
	}

	p.pop()
	var member Node = f.group
	if f.owner != nil {
		f.owner.Parameters = f.group
		member = f.owner
	}
	p.attachMember(p.top(), member)
	return nil
}

func (p *parser) stepReference(f *frame, tok lexer.Token) error {
	ref := f.ref
	switch f.st {
	case refNameState:
		switch tok.Type {
		case lexer.IdentToken:
			ref.Name = tok.Text
			f.st = refAttrsState
			return nil
		case lexer.StringToken:
			ref.Name = strings.Trim(tok.Text, "'")
			ref.Quoted = true
			f.st = refAttrsState
			return nil
		case lexer.FunctionToken:
			ref.Name = strings.TrimSuffix(tok.Text, "(")
			ref.FunctionCall = true
			f.st = refFuncCloseState
			return nil
		}

	case refFuncCloseState:
		if tok.Text == ")" {
			f.st = refAttrsState
			return nil
		}

	case refAttrsState, refAttrNamedState:
		if f.st == refAttrNamedState {
			switch {
			case tok.Text == "=":
				f.st = refAttrValueState
				return nil
			case tok.Type == lexer.IdentToken, tok.Text == "[", tok.Text == ">", tok.Text == ">>":
				ref.Attributes = append(ref.Attributes, f.attr)
			}
		}
		switch {
		case tok.Type == lexer.IdentToken:
			f.attr = ReferenceAttribute{Name: tok.Text}
			f.st = refAttrNamedState
			return nil
		case tok.Text == "[":
			f.rng = &NumericRange{}
			f.st = refRangeMinState
			return nil
		case tok.Text == ">", tok.Text == ">>":
			return p.closeReference(f, tok)
		}

	case refAttrValueState:
		switch tok.Type {
		case lexer.IdentToken, lexer.NumberToken:
			f.attr.Value = tok.Text
		case lexer.StringToken:
			f.attr.Value = strings.Trim(tok.Text, "'")
		default:
			return unexpectedTokenError(p.src, f.st, tok)
		}
		ref.Attributes = append(ref.Attributes, f.attr)
		f.st = refAttrsState
		return nil

	case refRangeMinState:
		if !validRangeBound(tok, false) {
			return badRangeBoundError(p.src, tok.Text)
		}
		f.rng.Min = tok.Text
		f.st = refRangeCommaState
		return nil

	case refRangeCommaState:
		if tok.Text == "," {
			f.st = refRangeMaxState
			return nil
		}

	case refRangeMaxState:
		if !validRangeBound(tok, true) {
			return badRangeBoundError(p.src, tok.Text)
		}
		f.rng.Max = tok.Text
		f.st = refRangeCloseState
		return nil

	case refRangeCloseState:
		if tok.Text == "]" {
			if reversedRange(f.rng) {
				return reversedRangeError(p.src, f.rng)
			}
			ref.Attributes = append(ref.Attributes, ReferenceAttribute{Range: f.rng})
			f.rng = nil
			f.st = refAttrsState
			return nil
		}
	}

	return unexpectedTokenError(p.src, f.st, tok)
}

func (p *parser) closeReference(f *frame, tok lexer.Token) error {
	want := ">"
	if f.ref.Internal {
		want = ">>"
	}
	if tok.Text != want {
		return unbalancedCloseError(p.src, tok, want)
	}

	p.pop()
	p.attachMember(p.top(), f.ref)
	return nil
}

// validRangeBound admits decimal numbers, "inf" for the maximum, and
// "-inf" for the minimum.
func validRangeBound(tok lexer.Token, isMax bool) bool {
	if tok.Type == lexer.NumberToken {
		return true
	}
	if tok.Type != lexer.IdentToken {
		return false
	}
	if isMax {
		return tok.Text == "inf"
	}
	return tok.Text == "-inf"
}

func reversedRange(r *NumericRange) bool {
	min, e1 := strconv.ParseFloat(r.Min, 64)
	max, e2 := strconv.ParseFloat(r.Max, 64)
	if e1 != nil || e2 != nil {
		return false // an infinite bound never reverses
	}
	return min > max
}

func (p *parser) stepCount(f *frame, tok lexer.Token) error {
	switch f.st {
	case countMinState:
		n, ok := countValue(tok)
		if !ok {
			return unexpectedTokenError(p.src, f.st, tok)
		}
		if n < 0 {
			return badCountError(p.src, n, n)
		}
		f.countMin = n
		f.st = countSepState
		return nil

	case countSepState:
		switch tok.Text {
		case "}":
			return p.applyCount(f, MultExact, f.countMin)
		case ",":
			f.st = countMaxState
			return nil
		}

	case countMaxState:
		if tok.Text == "}" {
			return p.applyCount(f, MultAtLeast, 0)
		}
		n, ok := countValue(tok)
		if !ok {
			return unexpectedTokenError(p.src, f.st, tok)
		}
		if n < f.countMin {
			return badCountError(p.src, f.countMin, n)
		}
		f.countMax = n
		f.st = countCloseState
		return nil

	case countCloseState:
		if tok.Text == "}" {
			return p.applyCount(f, MultBetween, f.countMax)
		}
	}

	return unexpectedTokenError(p.src, f.st, tok)
}

func countValue(tok lexer.Token) (int, bool) {
	if tok.Type != lexer.NumberToken {
		return 0, false
	}
	n, e := strconv.Atoi(tok.Text)
	if e != nil {
		return 0, false
	}
	return n, true
}

func (p *parser) applyCount(f *frame, kind MultiplierKind, max int) error {
	p.pop()
	m := Mult(f.target)
	comma := m.Kind == MultOneOrMore && m.Comma
	m.Kind = kind
	m.Comma = comma
	m.Min = f.countMin
	m.Max = max
	if kind == MultExact {
		m.Max = f.countMin
	}
	return nil
}

func (p *parser) pushAnnotation(target Node) error {
	f := &frame{st: annOpenState}
	m := Mult(target)
	if m.Kind != MultNone {
		if m.Ann != nil {
			return duplicateAnnotationError(p.src)
		}
		f.annTargetMult = m
	} else {
		if Ann(target) != nil {
			return duplicateAnnotationError(p.src)
		}
		f.annTargetNode = target
	}
	p.push(f)
	return nil
}

func (p *parser) stepAnnotation(f *frame, tok lexer.Token) error {
	switch f.st {
	case annOpenState:
		if tok.Text == "(" {
			f.ann = &Annotation{}
			f.st = annNameState
			return nil
		}

	case annNameState:
		if tok.Type == lexer.IdentToken {
			return p.beginDirective(f, tok.Text)
		}

	case annNamedState:
		switch {
		case tok.Text == "=":
			f.st = annValueState
			return nil
		case tok.Type == lexer.IdentToken:
			return p.beginDirective(f, tok.Text)
		case tok.Text == ")":
			return p.closeAnnotation(f)
		}

	case annValueState:
		switch tok.Type {
		case lexer.IdentToken, lexer.NumberToken:
			f.appendDirectiveValue(tok.Text)
		case lexer.StringToken:
			f.appendDirectiveValue(strings.Trim(tok.Text, "'"))
		default:
			return unexpectedTokenError(p.src, f.st, tok)
		}
		f.st = annValuedState
		return nil

	case annValuedState:
		switch {
		case tok.Text == ",":
			f.st = annValueState
			return nil
		case tok.Type == lexer.IdentToken:
			return p.beginDirective(f, tok.Text)
		case tok.Text == ")":
			return p.closeAnnotation(f)
		}
	}

	return unexpectedTokenError(p.src, f.st, tok)
}

func (f *frame) appendDirectiveValue(v string) {
	d := &f.ann.Directives[len(f.ann.Directives)-1]
	d.Values = append(d.Values, v)
}

func (p *parser) beginDirective(f *frame, name string) error {
	if !knownDirectives[name] {
		return unknownDirectiveError(p.src, name)
	}
	construct := "multiplier"
	if f.annTargetNode != nil {
		construct = constructName(f.annTargetNode)
	}
	if !directiveWhitelist[construct][name] {
		return inapplicableDirectiveError(p.src, name, construct)
	}
	f.ann.Directives = append(f.ann.Directives, Directive{Name: name})
	f.st = annNamedState
	return nil
}

func (p *parser) closeAnnotation(f *frame) error {
	p.pop()
	if f.annTargetMult != nil {
		f.annTargetMult.Ann = f.ann
	} else {
		f.annTargetNode.base().Ann = f.ann
	}
	return nil
}

func constructName(n Node) string {
	switch n.(type) {
	case *GroupingNode:
		return "grouping"
	case *FunctionNode:
		return "function"
	case *ReferenceNode:
		return "reference"
	case *KeywordNode:
		return "keyword"
	default:
		return "literal"
	}
}
