package codegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	"github.com/yamp-project/WebKit/registry"
)

const testSchema = `
categories:
  css-backgrounds:
    shortname: css-backgrounds-3
    url: https://drafts.csswg.org/css-backgrounds-3/
instructions:
  - "Generated sources; regenerate instead of editing."
shared-grammar-rules:
  "<line-style>":
    grammar: "none | hidden | dotted | dashed | solid"
properties:
  border-top-style:
    values: [none, hidden, dotted, dashed, solid]
    codegen-properties:
      parser-grammar: "<line-style>"
      animation-wrapper: discrete
      aliases: [-webkit-border-top-style]
  border-style:
    codegen-properties:
      longhands: [border-top-style]
  color:
    codegen-properties:
      parser-function: consumeColor
      high-priority: true
  opacity:
    codegen-properties:
      parser-grammar: "<number [0,1]>"
      animation-wrapper: float
  will-change:
    values: [auto]
    codegen-properties:
      parser-grammar: "auto | <custom-ident>#{1,4}@(default=previous)"
  break-before:
    values: [auto, avoid]
  page-break-before:
    codegen-properties:
      cascade-alias: break-before
      skip-parser: true
  scroll-timeline-name:
    values: [none]
    codegen-properties:
      parser-grammar: "none | <dashed-ident>"
      settings-flag: scrollTimelineEnabled
      parser-exported: true
  -webkit-mask:
    codegen-properties:
      skip-parser: true
descriptors:
  "@counter-style":
    system:
      values: [cyclic, numeric]
`

func loadContext(t *testing.T) *registry.Context {
	t.Helper()
	ctx, e := registry.LoadBytes([]byte(testSchema), "")
	require.NoError(t, e)
	return ctx
}

func TestConsumerSelection(t *testing.T) {
	ctx := loadContext(t)
	r := ctx.Registry

	samples := []struct {
		name string
		want Consumer
	}{
		{"border-style", &SkipConsumer{}},
		{"-webkit-mask", &SkipConsumer{}},
		{"color", &CustomConsumer{}},
		{"border-top-style", &FastPathKeywordOnlyConsumer{}},
		{"break-before", &FastPathKeywordOnlyConsumer{}},
		{"opacity", &DirectConsumer{}},
		{"will-change", &GeneratedConsumer{}},
		{"scroll-timeline-name", &GeneratedConsumer{}},
	}
	for _, s := range samples {
		c := SelectConsumer(r.Lookup(s.name))
		require.IsType(t, s.want, c, s.name)
	}

	fast := SelectConsumer(r.Lookup("border-top-style")).(*FastPathKeywordOnlyConsumer)
	require.Len(t, fast.Keywords, 5)

	gen := SelectConsumer(r.Lookup("will-change")).(*GeneratedConsumer)
	require.Len(t, gen.FastKeywords, 1)
	require.Equal(t, "auto", gen.FastKeywords[0].Name)
}

func TestGenerateParsing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssgen.codegen")
	defer teardown()

	out, e := GenerateParsing(loadContext(t))
	require.NoError(t, e)
	src := string(out)
	t.Logf("CSSPropertyParsing.cpp is %d bytes", len(src))

	// Fast path keyword properties emit a predicate, not a consume function.
	require.Contains(t, src, "static bool isKeywordValidForBorderTopStyle(CSSValueID keyword, const CSSParserContext& context)")
	require.Contains(t, src, "return consumeIdent(range, context, isKeywordValidForBorderTopStyle);")
	require.NotContains(t, src, "consumeBorderTopStyle")

	// Custom and direct consumers forward from the dispatch.
	require.Contains(t, src, "case CSSPropertyColor:")
	require.Contains(t, src, "return consumeColor(range, context);")
	require.Contains(t, src, "case CSSPropertyOpacity:")
	require.Contains(t, src, "return consumeNumber(range, context, ValueRange::NonNegative);")

	// Generated consumer with a comma-counted repetition and default fill.
	require.Contains(t, src, "static RefPtr<CSSValue> consumeWillChange(CSSParserTokenRange& range, const CSSParserContext& context)")
	require.Contains(t, src, "while (list.size() < 4)")
	require.Contains(t, src, "consumeCommaIncludingWhitespace(range)")
	require.Contains(t, src, "list.append(list.last().copyRef());")
	require.Contains(t, src, "CSSValueList::createCommaSeparated(WTFMove(list));")

	// Cascade aliases forward to their target's dispatch entry.
	require.Contains(t, src, "case CSSPropertyPageBreakBefore:")
	require.Contains(t, src, "return parseStyleProperty(range, CSSPropertyBreakBefore, context);")

	// Settings-flagged properties are gated in the dispatch; exported
	// consumers become struct members.
	require.Contains(t, src, "if (!context.scrollTimelineEnabled)")
	require.Contains(t, src, "RefPtr<CSSValue> CSSPropertyParsing::consumeScrollTimelineName(CSSParserTokenRange& range, const CSSParserContext& context)")

	// Skipped entries get no dispatch case; descriptors get their own.
	require.NotContains(t, src, "case CSSPropertyWebkitMask:")
	require.NotContains(t, src, "case CSSPropertyBorderStyle:")
	require.Contains(t, src, "RefPtr<CSSValue> CSSPropertyParsing::parseDescriptor(CSSParserTokenRange& range, CSSPropertyID id, const CSSParserContext& context)")
	require.Contains(t, src, "case CSSPropertySystem:")
}

// A repetition with a zero minimum may match nothing; the enclosing
// composite must accept the value when it is absent.
func TestZeroMinimumRepetitions(t *testing.T) {
	schema := `
categories:
instructions:
shared-grammar-rules:
properties:
  stroke-dasharray:
    values: [none, auto]
    codegen-properties:
      parser-grammar: "none | [ auto <length>* <percentage>{0,2} ]"
descriptors:
`
	ctx, e := registry.LoadBytes([]byte(schema), "")
	require.NoError(t, e)
	out, e := GenerateParsing(ctx)
	require.NoError(t, e)
	src := string(out)

	// Only the mandatory keyword fails the composite when it is missing;
	// the two zero-minimum repetitions do not.
	require.Equal(t, 1, strings.Count(src, "else"), src)

	// An empty repetition still reads as absence, not as an empty list.
	require.Contains(t, src, "if (list.isEmpty())")
	require.Contains(t, src, "if (list.size() < 1)")

	// With a single mandatory member the one-value form stays unwrapped.
	require.Contains(t, src, "if (list.size() == 1)")
}

func TestGenerateParsingHeader(t *testing.T) {
	src := string(GenerateParsingHeader(loadContext(t)))
	require.Contains(t, src, "static RefPtr<CSSValue> parseStyleProperty(CSSParserTokenRange&, CSSPropertyID, const CSSParserContext&);")
	require.Contains(t, src, "static RefPtr<CSSValue> consumeScrollTimelineName(CSSParserTokenRange&, const CSSParserContext&);")
	require.NotContains(t, src, "consumeWillChange")
}

func TestGenerateNames(t *testing.T) {
	ctx := loadContext(t)
	header := string(GenerateNamesHeader(ctx))
	// High priority sorts first in the canonical order.
	require.Contains(t, header, "CSSPropertyColor = 2,")
	require.Contains(t, header, "CSSPropertyWebkitMask")
	require.Contains(t, header, "CSSPropertySystem")

	src := string(GenerateNames(ctx))
	require.Contains(t, src, `{ "border-top-style"_s, CSSPropertyBorderTopStyle },`)
	require.Contains(t, src, `{ "-webkit-border-top-style"_s, CSSPropertyBorderTopStyle }, // alias`)
	require.Contains(t, src, "return context.scrollTimelineEnabled;")

	// No entry here is internal, so isInternal is a bare default switch.
	require.Contains(t, src, "bool isInternal(CSSPropertyID id)\n{\n    switch (id) {\n    default:\n        return false;")
}

func TestGenerateShorthands(t *testing.T) {
	src := string(GenerateShorthands(loadContext(t)))
	require.Contains(t, src, "StylePropertyShorthand borderStyleShorthand()")
	require.Contains(t, src, "CSSPropertyBorderTopStyle,")
	require.Contains(t, src, "case CSSPropertyBorderStyle:")
}

func TestGenerateStyleBuilder(t *testing.T) {
	src := string(GenerateStyleBuilder(loadContext(t)))
	require.Contains(t, src, "case CSSPropertyOpacity:")
	require.Contains(t, src, "BuilderConverter::convertOpacity(builderState, value)")
	require.Contains(t, src, "RenderStyle::initialOpacity()")
	// Shorthands and cascade aliases have no builder case.
	require.NotContains(t, src, "case CSSPropertyBorderStyle:")
	require.NotContains(t, src, "case CSSPropertyPageBreakBefore:")
}

func TestGenerateAnimationWrappers(t *testing.T) {
	src := string(GenerateAnimationWrappers(loadContext(t)))
	require.Contains(t, src, "DiscreteWrapper>(CSSPropertyBorderTopStyle")
	require.Contains(t, src, "FloatWrapper>(CSSPropertyOpacity")
	require.NotContains(t, src, "CSSPropertyColor")
}

func TestGenerateAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateAll(loadContext(t), dir))

	expected := []string{
		"CSSPropertyNames.h",
		"CSSPropertyNames.cpp",
		"CSSPropertyParsing.h",
		"CSSPropertyParsing.cpp",
		"StyleBuilderGenerated.cpp",
		"StyleExtractorGenerated.cpp",
		"CSSPropertyShorthands.cpp",
		"AnimationPropertyWrappers.cpp",
	}
	for _, name := range expected {
		content, e := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, e, name)
		require.Contains(t, string(content), "This file was generated by cssgen.")
		require.Contains(t, string(content), "regenerate instead of editing")
	}
}

func TestUnresolvedReferenceFails(t *testing.T) {
	schema := `
categories:
instructions:
shared-grammar-rules:
properties:
  shape-outside:
    values: [none]
    codegen-properties:
      parser-grammar: "none | <basic-shape>"
descriptors:
`
	ctx, e := registry.LoadBytes([]byte(schema), "")
	require.NoError(t, e)
	_, e = GenerateParsing(ctx)
	require.Error(t, e)
	require.Contains(t, e.Error(), "<basic-shape>")
}
