package registry

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"

	err "github.com/yamp-project/WebKit/errors"
	"github.com/yamp-project/WebKit/term"
)

const schemaHeader = `
categories:
  css-color:
    shortname: css-color-4
    url: https://drafts.csswg.org/css-color-4/
instructions:
  - "This file is processed by cssgen; do not edit generated output."
`

func load(t *testing.T, body, defines string) (*Context, error) {
	t.Helper()
	return LoadBytes([]byte(schemaHeader+body), defines)
}

func mustLoad(t *testing.T, body, defines string) *Context {
	t.Helper()
	c, e := load(t, body, defines)
	require.NoError(t, e)
	return c
}

func requireCode(t *testing.T, e error, code int) *err.Error {
	t.Helper()
	require.Error(t, e)
	ce, ok := e.(*err.Error)
	require.True(t, ok, "expected a coded error, got %v", e)
	require.Equal(t, code, ce.Code, "unexpected error: %s", ce.Message)
	return ce
}

func TestLoadFullSchema(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssgen.registry")
	defer teardown()

	c := mustLoad(t, `
shared-grammar-rules:
  "<line-style>":
    grammar: "none | hidden | dotted | dashed | solid"
    exported: true
  "<unused-thing>": "a | b"
properties:
  border-top-style:
    inherited: false
    initial: none
    values: [none, hidden, dotted, dashed, solid]
    codegen-properties:
      parser-grammar: "<line-style>"
  border-style:
    codegen-properties:
      longhands: [border-top-style]
  -webkit-line-clamp:
    values: [none]
    codegen-properties:
      parser-grammar: "none | <integer [1,inf]>"
descriptors:
  "@counter-style":
    system:
      values: [cyclic, numeric, alphabetic]
`, "")

	r := c.Registry
	require.Len(t, r.Properties, 3)
	require.Len(t, r.Descriptors, 1)

	names := make([]string, len(r.All))
	for i, p := range r.All {
		names[i] = p.Name.Text
	}
	// Longhands first, prefixed names after plain ones, shorthands after
	// all non-shorthands, descriptors last.
	require.Equal(t, []string{"border-top-style", "-webkit-line-clamp", "border-style", "system"}, names)

	shorthand := r.Lookup("border-style")
	require.True(t, shorthand.IsShorthand())
	require.Len(t, shorthand.Longhands, 1)
	require.Same(t, r.Lookup("border-top-style"), shorthand.Longhands[0])
	require.Nil(t, shorthand.Grammar)

	longhand := r.Lookup("border-top-style")
	require.NotNil(t, longhand.Grammar)
	require.Equal(t,
		[]string{"none", "hidden", "dotted", "dashed", "solid"},
		term.SupportedKeywords(longhand.Grammar))

	// A descriptor with only values gets the implicit placeholder grammar.
	system := r.Lookup("system")
	require.True(t, system.IsDescriptor())
	require.Equal(t, "<<values>>", system.GrammarText)
	require.Equal(t, []string{"cyclic", "numeric", "alphabetic"}, term.SupportedKeywords(system.Grammar))

	require.Equal(t, []string{"<unused-thing>"}, c.UnusedRules())
	require.NoError(t, c.ValidateUnusedRules())
}

func TestPropertyIdDerivation(t *testing.T) {
	samples := []struct {
		text string
		id   string
	}{
		{"color", "CSSPropertyColor"},
		{"background-color", "CSSPropertyBackgroundColor"},
		{"-webkit-box-orient", "CSSPropertyWebkitBoxOrient"},
	}
	for _, s := range samples {
		require.Equal(t, s.id, Name{Text: s.text}.PropertyId())
	}
	require.True(t, Name{Text: "-webkit-box-orient"}.IsPrefixed())
	require.False(t, Name{Text: "color"}.IsPrefixed())
}

func TestParserStrategyConflict(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  color:
    codegen-properties:
      parser-grammar: "<color>"
      parser-function: consumeColor
descriptors:
`, "")
	ce := requireCode(t, e, ConflictError)
	require.Contains(t, ce.Message, "parser-grammar")
	require.Contains(t, ce.Message, "parser-function")
	require.Contains(t, ce.Path, "properties.color")
}

func TestPriorityConflicts(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  color:
    codegen-properties:
      top-priority: true
      high-priority: true
      parser-function: consumeColor
descriptors:
`, "")
	requireCode(t, e, ConflictError)

	_, e = load(t, `
shared-grammar-rules:
properties:
  border-style:
    codegen-properties:
      high-priority: true
      longhands: [border-top-style]
descriptors:
`, "")
	requireCode(t, e, ConflictError)
}

func TestCascadeAliasSelfReference(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  page-break-before:
    codegen-properties:
      cascade-alias: page-break-before
descriptors:
`, "")
	requireCode(t, e, ConflictError)
}

func TestCascadeAliasResolution(t *testing.T) {
	c := mustLoad(t, `
shared-grammar-rules:
properties:
  break-before:
    values: [auto, avoid]
  page-break-before:
    codegen-properties:
      cascade-alias: break-before
      skip-parser: true
descriptors:
`, "")
	alias := c.Registry.Lookup("page-break-before")
	require.Same(t, c.Registry.Lookup("break-before"), alias.CascadeTarget)
}

func TestLogicalPropertyGroups(t *testing.T) {
	c := mustLoad(t, `
shared-grammar-rules:
properties:
  overflow-inline:
    values: [visible, hidden]
    codegen-properties:
      logical-property-group:
        name: overflow
        resolver: inline
  overflow-x:
    values: [visible, hidden]
    codegen-properties:
      logical-property-group:
        name: overflow
        resolver: horizontal
descriptors:
`, "")
	group := c.Registry.LogicalGroups["overflow"]
	require.NotNil(t, group)
	require.Equal(t, AxisGroup, group.Kind)
	require.Same(t, c.Registry.Lookup("overflow-inline"), group.Logical["inline"])
	require.Same(t, c.Registry.Lookup("overflow-x"), group.Physical["horizontal"])

	// The logical member sorts after the physical one.
	names := []string{c.Registry.Properties[0].Name.Text, c.Registry.Properties[1].Name.Text}
	require.Equal(t, []string{"overflow-x", "overflow-inline"}, names)
}

func TestDuplicateResolver(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  overflow-inline:
    values: [visible]
    codegen-properties:
      logical-property-group:
        name: overflow
        resolver: inline
  overflow-block:
    values: [visible]
    codegen-properties:
      logical-property-group:
        name: overflow
        resolver: inline
descriptors:
`, "")
	requireCode(t, e, DuplicateResolverError)
}

func TestMixedResolverKinds(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  margin-top:
    values: [auto]
    codegen-properties:
      logical-property-group:
        name: margin
        resolver: top
  margin-inline:
    values: [auto]
    codegen-properties:
      logical-property-group:
        name: margin
        resolver: inline
descriptors:
`, "")
	requireCode(t, e, MixedResolverKindError)
}

func TestUnknownResolver(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  margin-top:
    values: [auto]
    codegen-properties:
      logical-property-group:
        name: margin
        resolver: sideways
descriptors:
`, "")
	requireCode(t, e, UnknownResolverError)
}

func TestResolverEnumOrder(t *testing.T) {
	require.Equal(t, []string{"inline", "block"}, LogicalResolvers(AxisGroup))
	require.Equal(t, []string{"horizontal", "vertical"}, PhysicalResolvers(AxisGroup))
	require.Equal(t, []string{"top", "right", "bottom", "left"}, PhysicalResolvers(SideGroup))
	require.Equal(t, []string{"start-start", "start-end", "end-start", "end-end"}, LogicalResolvers(CornerGroup))
}

func TestEnableIfGating(t *testing.T) {
	body := `
shared-grammar-rules:
properties:
  overscroll-behavior:
    values:
      - auto
      - none
      - value: contain
        enable-if: ENABLE_CONTAIN
    codegen-properties:
      enable-if: ENABLE_OVERSCROLL !DISABLE_SCROLL
descriptors:
`
	c := mustLoad(t, body, "ENABLE_OVERSCROLL ENABLE_CONTAIN")
	p := c.Registry.Lookup("overscroll-behavior")
	require.NotNil(t, p)
	require.Equal(t, []string{"auto", "none", "contain"}, term.SupportedKeywords(p.Grammar))

	c = mustLoad(t, body, "ENABLE_OVERSCROLL")
	require.Equal(t, []string{"auto", "none"}, term.SupportedKeywords(c.Registry.Lookup("overscroll-behavior").Grammar))

	c = mustLoad(t, body, "ENABLE_OVERSCROLL DISABLE_SCROLL")
	require.Nil(t, c.Registry.Lookup("overscroll-behavior"))
}

func TestValueGrammarDivergence(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  visibility:
    values: [visible]
    codegen-properties:
      parser-grammar: "visible | hidden"
descriptors:
`, "")
	ce := requireCode(t, e, term.ValueMismatchError)
	require.Contains(t, ce.Message, "hidden")
}

func TestUnresolvedReferenceSkipsValueCheck(t *testing.T) {
	c := mustLoad(t, `
shared-grammar-rules:
properties:
  shape-outside:
    values: [none]
    codegen-properties:
      parser-grammar: "none | <basic-shape>"
descriptors:
`, "")
	p := c.Registry.Lookup("shape-outside")
	require.NotNil(t, p.Grammar)
	require.True(t, term.ContainsUnresolvedReference(p.Grammar))
}

func TestUnknownLonghand(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  border-style:
    codegen-properties:
      longhands: [border-top-style]
descriptors:
`, "")
	requireCode(t, e, UnknownNameError)
}

func TestDescriptorRejectsPropertyOnlyOptions(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
descriptors:
  "@font-face":
    font-display:
      values: [auto, block]
      codegen-properties:
        logical-property-group:
          name: font
          resolver: inline
`, "")
	requireCode(t, e, ConflictError)
}

func TestLookupPrefersStyleProperty(t *testing.T) {
	c := mustLoad(t, `
shared-grammar-rules:
properties:
  size:
    values: [auto]
descriptors:
  "@page":
    size:
      values: [auto, portrait, landscape]
`, "")
	p := c.Registry.Lookup("size")
	require.False(t, p.IsDescriptor())
	require.Len(t, c.Registry.AllForName("size"), 2)
}

func TestMissingTopLevelSection(t *testing.T) {
	_, e := LoadBytes([]byte(schemaHeader+"\nproperties:\ndescriptors:\n"), "")
	requireCode(t, e, MissingKeyError)
}

func TestUnknownKeyPath(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  color:
    codegen-properties:
      parser-frobnicator: true
descriptors:
`, "")
	ce := requireCode(t, e, UnknownKeyError)
	require.Equal(t, "properties.color.codegen-properties.parser-frobnicator", ce.Path)
}

func TestNoParserStrategy(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  mystery: {}
descriptors:
`, "")
	requireCode(t, e, NoParserError)
}

func TestGrammarErrorCarriesEntryPath(t *testing.T) {
	_, e := load(t, `
shared-grammar-rules:
properties:
  color:
    codegen-properties:
      parser-grammar: "<length> | <length> || <number>"
descriptors:
`, "")
	require.Error(t, e)
	ce, ok := e.(*err.Error)
	require.True(t, ok)
	require.Equal(t, "properties.color", ce.Path)
}
