package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
	"github.com/yamp-project/WebKit/term"
)

const ind = "    "

func consumeName(p *registry.Property) string {
	return "consume" + p.Name.Id()
}

func predicateName(p *registry.Property) string {
	return "isKeywordValidFor" + p.Name.Id()
}

// GenerateParsingHeader emits CSSPropertyParsing.h: the dispatch entry
// points plus the consume functions of parser-exported entries.
func GenerateParsingHeader(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#pragma once\n\n" +
		"#include \"CSSPropertyNames.h\"\n" +
		"#include \"CSSValueKeywords.h\"\n\n" +
		"namespace WebCore {\n\n" +
		"class CSSParserTokenRange;\n" +
		"class CSSValue;\n" +
		"struct CSSParserContext;\n\n" +
		"struct CSSPropertyParsing {\n" +
		ind + "static RefPtr<CSSValue> parseStyleProperty(CSSParserTokenRange&, CSSPropertyID, const CSSParserContext&);\n" +
		ind + "static RefPtr<CSSValue> parseDescriptor(CSSParserTokenRange&, CSSPropertyID, const CSSParserContext&);\n")

	for _, p := range ctx.Registry.All {
		if !p.Codegen.ParserExported {
			continue
		}
		buf.WriteString(ind + "static RefPtr<CSSValue> " + consumeName(p) + "(CSSParserTokenRange&, const CSSParserContext&);\n")
	}
	buf.WriteString("};\n\n} // namespace WebCore\n")
	return buf.Bytes()
}

// GenerateParsing emits CSSPropertyParsing.cpp: keyword predicates,
// consume functions, and the two dispatch switches.
func GenerateParsing(ctx *registry.Context) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"CSSPropertyParsing.h\"\n\n" +
		"#include \"CSSParserContext.h\"\n" +
		"#include \"CSSParserTokenRange.h\"\n" +
		"#include \"CSSPropertyParserConsumer.h\"\n" +
		"#include \"CSSValueList.h\"\n\n" +
		"namespace WebCore {\n\n")

	consumers := map[*registry.Property]Consumer{}
	for _, p := range ctx.Registry.All {
		c := SelectConsumer(p)
		consumers[p] = c
		if e := emitEntryFunctions(&buf, p, c); e != nil {
			return nil, e
		}
	}

	if e := emitDispatch(&buf, "parseStyleProperty", ctx.Registry.Properties, consumers); e != nil {
		return nil, e
	}
	buf.WriteString("\n")
	if e := emitDispatch(&buf, "parseDescriptor", ctx.Registry.Descriptors, consumers); e != nil {
		return nil, e
	}
	buf.WriteString("\n} // namespace WebCore\n")
	return buf.Bytes(), nil
}

func emitEntryFunctions(buf *bytes.Buffer, p *registry.Property, c Consumer) error {
	switch c := c.(type) {
	case *FastPathKeywordOnlyConsumer:
		entryComment(buf, p)
		emitPredicate(buf, p, c.Keywords)
		if p.Codegen.ParserExported {
			fmt.Fprintf(buf, "RefPtr<CSSValue> CSSPropertyParsing::%s(CSSParserTokenRange& range, const CSSParserContext& context)\n{\n", consumeName(p))
			fmt.Fprintf(buf, ind+"return consumeIdent(range, context, %s);\n}\n\n", predicateName(p))
		}

	case *DirectConsumer:
		if !c.Reference.Builtin() {
			return unresolvedReferenceError(p.Name.Text, c.Reference.Key())
		}
		if p.Codegen.ParserExported {
			entryComment(buf, p)
			fmt.Fprintf(buf, "RefPtr<CSSValue> CSSPropertyParsing::%s(CSSParserTokenRange& range, const CSSParserContext& context)\n{\n", consumeName(p))
			fmt.Fprintf(buf, ind+"return %s;\n}\n\n", settingsGuard(c.Reference.SettingsFlag, builtinCall(c.Reference)))
		}

	case *GeneratedConsumer:
		entryComment(buf, p)
		if len(c.FastKeywords) > 0 {
			emitPredicate(buf, p, c.FastKeywords)
		}
		return emitConsumeFunction(buf, p, c)
	}
	return nil
}

func entryComment(buf *bytes.Buffer, p *registry.Property) {
	fmt.Fprintf(buf, "// %s\n", p.Name.Text)
	if p.GrammarText != "" {
		fmt.Fprintf(buf, "// %s\n", p.GrammarText)
	}
}

// emitPredicate writes the keyword-validity predicate: plain keywords
// share one case group, gated keywords each get their own.
func emitPredicate(buf *bytes.Buffer, p *registry.Property, kws []*term.Keyword) {
	fmt.Fprintf(buf, "static bool %s(CSSValueID keyword, const CSSParserContext& context)\n{\n", predicateName(p))
	buf.WriteString(ind + "switch (keyword) {\n")

	plain := false
	for _, kw := range kws {
		if kw.SettingsFlag == "" && !internalKeyword(p, kw) {
			fmt.Fprintf(buf, ind+"case %s:\n", cssValueId(kw.Name))
			plain = true
		}
	}
	if plain {
		buf.WriteString(ind + ind + "return true;\n")
	}
	for _, kw := range kws {
		switch {
		case kw.SettingsFlag != "":
			fmt.Fprintf(buf, ind+"case %s:\n", cssValueId(kw.Name))
			fmt.Fprintf(buf, ind+ind+"return context.%s;\n", kw.SettingsFlag)
		case internalKeyword(p, kw):
			fmt.Fprintf(buf, ind+"case %s:\n", cssValueId(kw.Name))
			buf.WriteString(ind + ind + "return context.mode == CSSParserMode::UASheetMode;\n")
		}
	}
	buf.WriteString(ind + "default:\n" + ind + ind + "return false;\n" + ind + "}\n}\n\n")
}

// internalKeyword reports whether a value is restricted to user-agent
// sheets: internal-status values of public properties only.
func internalKeyword(p *registry.Property, kw *term.Keyword) bool {
	return kw.Status == "internal" && !p.IsInternal()
}

func emitConsumeFunction(buf *bytes.Buffer, p *registry.Property, c *GeneratedConsumer) error {
	linkage := "static RefPtr<CSSValue> "
	name := consumeName(p)
	if p.Codegen.ParserExported {
		linkage = "RefPtr<CSSValue> CSSPropertyParsing::"
	}
	fmt.Fprintf(buf, "%s%s(CSSParserTokenRange& range, const CSSParserContext& context)\n{\n", linkage, name)

	g := &termEmitter{prop: p}
	if one, ok := c.Root.(*term.MatchOne); ok {
		if len(c.FastKeywords) > 0 {
			fmt.Fprintf(buf, ind+"if (auto value = consumeIdent(range, context, %s))\n", predicateName(p))
			buf.WriteString(ind + ind + "return value;\n")
		}
		for _, alt := range one.Subterms {
			if kw, ok := alt.(*term.Keyword); ok && kw.AliasedTo == "" && len(c.FastKeywords) > 0 {
				continue // covered by the predicate
			}
			expr, e := g.expr(alt, ind)
			if e != nil {
				return e
			}
			fmt.Fprintf(buf, ind+"if (auto value = %s)\n", expr)
			buf.WriteString(ind + ind + "return value;\n")
		}
		buf.WriteString(ind + "return nullptr;\n}\n\n")
		return nil
	}

	expr, e := g.expr(c.Root, ind)
	if e != nil {
		return e
	}
	fmt.Fprintf(buf, ind+"return %s;\n}\n\n", expr)
	return nil
}

func emitDispatch(buf *bytes.Buffer, name string, entries []*registry.Property, consumers map[*registry.Property]Consumer) error {
	fmt.Fprintf(buf, "RefPtr<CSSValue> CSSPropertyParsing::%s(CSSParserTokenRange& range, CSSPropertyID id, const CSSParserContext& context)\n{\n", name)
	buf.WriteString(ind + "switch (id) {\n")

	for _, p := range entries {
		if p.CascadeTarget != nil {
			fmt.Fprintf(buf, ind+"case %s:\n", p.Name.PropertyId())
			fmt.Fprintf(buf, ind+ind+"return %s(range, %s, context);\n", name, p.CascadeTarget.Name.PropertyId())
			continue
		}

		var call string
		switch c := consumers[p].(type) {
		case *SkipConsumer:
			continue
		case *CustomConsumer:
			call = c.Function + "(range, context)"
		case *FastPathKeywordOnlyConsumer:
			call = "consumeIdent(range, context, " + predicateName(p) + ")"
		case *DirectConsumer:
			if !c.Reference.Builtin() {
				return unresolvedReferenceError(p.Name.Text, c.Reference.Key())
			}
			call = settingsGuard(c.Reference.SettingsFlag, builtinCall(c.Reference))
		case *GeneratedConsumer:
			call = consumeName(p) + "(range, context)"
		}

		fmt.Fprintf(buf, ind+"case %s:\n", p.Name.PropertyId())
		if flag := p.Codegen.SettingsFlag; flag != "" {
			fmt.Fprintf(buf, ind+ind+"if (!context.%s)\n", flag)
			buf.WriteString(ind + ind + ind + "return nullptr;\n")
		}
		fmt.Fprintf(buf, ind+ind+"return %s;\n", call)
	}

	buf.WriteString(ind + "default:\n" + ind + ind + "return nullptr;\n" + ind + "}\n}\n")
	return nil
}

// termEmitter lowers a term tree to C++ expressions. Composite terms
// become immediately invoked lambdas so every term reads as a single
// expression yielding RefPtr<CSSValue>.
type termEmitter struct {
	prop *registry.Property
}

func (g *termEmitter) expr(t term.Term, indent string) (string, error) {
	switch t := t.(type) {
	case *term.Keyword:
		call := fmt.Sprintf("consumeIdent<%s>(range)", cssValueId(t.Name))
		if t.AliasedTo != "" {
			call = fmt.Sprintf("consumeIdentAliasedTo<%s, %s>(range)", cssValueId(t.Name), cssValueId(t.AliasedTo))
		}
		return settingsGuard(t.SettingsFlag, call), nil

	case *term.Literal:
		return fmt.Sprintf("consumeDelimiter(range, '%s')", t.Text), nil

	case *term.Reference:
		if !t.Builtin() {
			return "", unresolvedReferenceError(g.prop.Name.Text, t.Key())
		}
		return settingsGuard(t.SettingsFlag, builtinCall(t)), nil

	case *term.Function:
		param, e := g.expr(t.Parameter, indent+ind)
		if e != nil {
			return "", e
		}
		expr := fmt.Sprintf("consumeFunctionNotation(range, %s, [&](CSSParserTokenRange& range) -> RefPtr<CSSValue> {\n%sreturn %s;\n%s})",
			cssValueId(t.Name), indent+ind, param, indent)
		return settingsGuard(t.SettingsFlag, expr), nil

	case *term.Optional:
		// Absence is decided by the enclosing composite.
		return g.expr(t.Subterm, indent)

	case *term.MatchOne:
		return g.matchOneExpr(t, indent)

	case *term.MatchAllOrdered:
		return g.orderedExpr(t, indent)

	case *term.MatchAllAnyOrder:
		return g.anyOrderExpr(t.Subterms, t.SettingsFlag, t.NoSingleItemOpt, false, indent)

	case *term.MatchOneOrMoreAnyOrder:
		return g.anyOrderExpr(t.Subterms, t.SettingsFlag, t.NoSingleItemOpt, true, indent)

	case *term.UnboundedRepetition:
		return g.unboundedExpr(t, indent)

	case *term.BoundedRepetition:
		return g.boundedExpr(t, indent)
	}
	return "", unsupportedTermError(g.prop.Name.Text, term.Stringify(t))
}

func (g *termEmitter) matchOneExpr(t *term.MatchOne, indent string) (string, error) {
	var buf bytes.Buffer
	inner := indent + ind
	buf.WriteString("[&]() -> RefPtr<CSSValue> {\n")
	for _, alt := range t.Subterms {
		expr, e := g.expr(alt, inner)
		if e != nil {
			return "", e
		}
		fmt.Fprintf(&buf, "%sif (auto value = %s)\n%sreturn value;\n", inner, expr, inner+ind)
	}
	buf.WriteString(inner + "return nullptr;\n" + indent + "}()")
	return settingsGuard(t.SettingsFlag, buf.String()), nil
}

func (g *termEmitter) orderedExpr(t *term.MatchAllOrdered, indent string) (string, error) {
	var buf bytes.Buffer
	inner := indent + ind
	buf.WriteString("[&]() -> RefPtr<CSSValue> {\n")
	buf.WriteString(inner + "CSSValueListBuilder list;\n")
	for _, s := range t.Subterms {
		expr, e := g.expr(s, inner)
		if e != nil {
			return "", e
		}
		fmt.Fprintf(&buf, "%sif (auto value = %s)\n%slist.append(value.releaseNonNull());\n", inner, expr, inner+ind)
		if !optional(s) {
			buf.WriteString(inner + "else\n" + inner + ind + "return nullptr;\n")
		}
	}
	writeListReturn(&buf, inner, mandatoryCount(t.Subterms) == 1 && !t.NoSingleItemOpt, ' ')
	buf.WriteString(indent + "}()")
	return settingsGuard(t.SettingsFlag, buf.String()), nil
}

// anyOrderExpr emits the shared loop of the any-order composites: each
// iteration tries every not-yet-seen subterm once and stops when none
// matches.
func (g *termEmitter) anyOrderExpr(subterms []term.Term, flag string, noOpt, oneOrMore bool, indent string) (string, error) {
	var buf bytes.Buffer
	inner := indent + ind
	buf.WriteString("[&]() -> RefPtr<CSSValue> {\n")
	buf.WriteString(inner + "CSSValueListBuilder list;\n")
	fmt.Fprintf(&buf, "%sstd::array<bool, %d> seen = { };\n", inner, len(subterms))
	buf.WriteString(inner + "while (!range.atEnd()) {\n")
	for i, s := range subterms {
		expr, e := g.expr(s, inner+ind+ind)
		if e != nil {
			return "", e
		}
		fmt.Fprintf(&buf, "%sif (!seen[%d]) {\n", inner+ind, i)
		fmt.Fprintf(&buf, "%sif (auto value = %s) {\n", inner+ind+ind, expr)
		fmt.Fprintf(&buf, "%sseen[%d] = true;\n", inner+ind+ind+ind, i)
		buf.WriteString(inner + ind + ind + ind + "list.append(value.releaseNonNull());\n")
		buf.WriteString(inner + ind + ind + ind + "continue;\n")
		buf.WriteString(inner + ind + ind + "}\n")
		buf.WriteString(inner + ind + "}\n")
	}
	buf.WriteString(inner + ind + "break;\n")
	buf.WriteString(inner + "}\n")

	if oneOrMore {
		buf.WriteString(inner + "if (list.isEmpty())\n" + inner + ind + "return nullptr;\n")
	} else {
		for i, s := range subterms {
			if !optional(s) {
				fmt.Fprintf(&buf, "%sif (!seen[%d])\n%sreturn nullptr;\n", inner, i, inner+ind)
			}
		}
	}
	writeListReturn(&buf, inner, mandatoryCount(subterms) == 1 && !noOpt, ' ')
	buf.WriteString(indent + "}()")
	return settingsGuard(flag, buf.String()), nil
}

func (g *termEmitter) unboundedExpr(t *term.UnboundedRepetition, indent string) (string, error) {
	expr, e := g.expr(t.Subterm, indent+ind+ind)
	if e != nil {
		return "", e
	}
	var buf bytes.Buffer
	inner := indent + ind
	buf.WriteString("[&]() -> RefPtr<CSSValue> {\n")
	buf.WriteString(inner + "CSSValueListBuilder list;\n")
	buf.WriteString(inner + "do {\n")
	fmt.Fprintf(&buf, "%sauto value = %s;\n", inner+ind, expr)
	buf.WriteString(inner + ind + "if (!value)\n" + inner + ind + ind + "break;\n")
	buf.WriteString(inner + ind + "list.append(value.releaseNonNull());\n")
	if t.Separator == ',' {
		buf.WriteString(inner + "} while (consumeCommaIncludingWhitespace(range));\n")
	} else {
		buf.WriteString(inner + "} while (!range.atEnd());\n")
	}
	// Zero matches signal absence with nullptr; the enclosing composite
	// decides whether absence is allowed.
	min := t.Min
	if min < 1 {
		min = 1
	}
	if min > 1 {
		fmt.Fprintf(&buf, "%sif (list.size() < %d)\n%sreturn nullptr;\n", inner, min, inner+ind)
	} else {
		buf.WriteString(inner + "if (list.isEmpty())\n" + inner + ind + "return nullptr;\n")
	}
	writeListReturn(&buf, inner, false, t.Separator)
	buf.WriteString(indent + "}()")
	return buf.String(), nil
}

func (g *termEmitter) boundedExpr(t *term.BoundedRepetition, indent string) (string, error) {
	expr, e := g.expr(t.Subterm, indent+ind+ind)
	if e != nil {
		return "", e
	}
	var buf bytes.Buffer
	inner := indent + ind
	buf.WriteString("[&]() -> RefPtr<CSSValue> {\n")
	buf.WriteString(inner + "CSSValueListBuilder list;\n")
	fmt.Fprintf(&buf, "%swhile (list.size() < %d) {\n", inner, t.Max)
	fmt.Fprintf(&buf, "%sauto value = %s;\n", inner+ind, expr)
	buf.WriteString(inner + ind + "if (!value)\n" + inner + ind + ind + "break;\n")
	buf.WriteString(inner + ind + "list.append(value.releaseNonNull());\n")
	if t.Separator == ',' {
		buf.WriteString(inner + ind + "if (!consumeCommaIncludingWhitespace(range))\n" + inner + ind + ind + "break;\n")
	}
	buf.WriteString(inner + "}\n")
	min := t.Min
	if min < 1 {
		min = 1
	}
	fmt.Fprintf(&buf, "%sif (list.size() < %d)\n%sreturn nullptr;\n", inner, min, inner+ind)
	if t.DefaultPrevious {
		fmt.Fprintf(&buf, "%swhile (list.size() < %d)\n", inner, t.Max)
		buf.WriteString(inner + ind + "list.append(list.last().copyRef());\n")
	}
	writeListReturn(&buf, inner, false, t.Separator)
	buf.WriteString(indent + "}()")
	return buf.String(), nil
}

func writeListReturn(buf *bytes.Buffer, inner string, singleValueOpt bool, separator byte) {
	if singleValueOpt {
		buf.WriteString(inner + "if (list.size() == 1)\n" + inner + ind + "return WTFMove(list[0]);\n")
	}
	create := "createSpaceSeparated"
	if separator == ',' {
		create = "createCommaSeparated"
	}
	buf.WriteString(inner + "return CSSValueList::" + create + "(WTFMove(list));\n")
}

// optional reports whether a composite member may match nothing: an
// explicit ?, or a repetition whose minimum count is zero.
func optional(t term.Term) bool {
	switch t := t.(type) {
	case *term.Optional:
		return true
	case *term.UnboundedRepetition:
		return t.Min == 0
	case *term.BoundedRepetition:
		return t.Min == 0
	}
	return false
}

func mandatoryCount(terms []term.Term) int {
	count := 0
	for _, t := range terms {
		if !optional(t) {
			count++
		}
	}
	return count
}
