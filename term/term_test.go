package term

import (
	"reflect"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/yamp-project/WebKit/bnf"
	err "github.com/yamp-project/WebKit/errors"
)

func parseTerm(t *testing.T, src string) Term {
	t.Helper()
	root, e := bnf.Parse(src)
	if e != nil {
		t.Fatalf("%q: parse error: %s", src, e.Error())
	}
	tm, e := FromNode(root)
	if e != nil {
		t.Fatalf("%q: conversion error: %s", src, e.Error())
	}
	return tm
}

func fixTerm(t *testing.T, src string, rs *RuleSet) Term {
	t.Helper()
	fixed, e := Fixup(parseTerm(t, src), rs)
	if e != nil {
		t.Fatalf("%q: fixup error: %s", src, e.Error())
	}
	return fixed
}

func TestRoundTripScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssgen.term")
	defer teardown()

	tm := parseTerm(t, "auto | none | <length [0,inf]>")
	one, ok := tm.(*MatchOne)
	if !ok || len(one.Subterms) != 3 {
		t.Fatalf("expected a MatchOne with 3 subterms, got %s", Stringify(tm))
	}
	ref, ok := one.Subterms[2].(*Reference)
	if !ok || !ref.Builtin() || ref.Name != "length" {
		t.Fatalf("expected a builtin length reference, got %s", Stringify(one.Subterms[2]))
	}
	if len(ref.Attributes) != 1 || ref.Attributes[0].Range == nil || ref.Attributes[0].Range.Max != "inf" {
		t.Errorf("expected range [0,inf], got %v", ref.Attributes)
	}
	kws := SupportedKeywords(tm)
	if !reflect.DeepEqual(kws, []string{"auto", "none"}) {
		t.Errorf("expected keywords [auto none], got %v", kws)
	}
	t.Logf("term tree =\n%s", Dump(tm))
}

func TestBoundedRepetitionScenario(t *testing.T) {
	tm := parseTerm(t, "<foo>#{2,4}")
	rep, ok := tm.(*BoundedRepetition)
	if !ok {
		t.Fatalf("expected a BoundedRepetition, got %s", Stringify(tm))
	}
	if rep.Separator != ',' || rep.Min != 2 || rep.Max != 4 {
		t.Errorf("expected sep=',' min=2 max=4, got sep=%q min=%d max=%d", rep.Separator, rep.Min, rep.Max)
	}
	ref, ok := rep.Subterm.(*Reference)
	if !ok || ref.Name != "foo" || ref.Builtin() {
		t.Errorf("expected a non-builtin reference to foo, got %s", Stringify(rep.Subterm))
	}
}

func TestSingletonGroupingCollapses(t *testing.T) {
	for _, src := range []string{"[ auto ]", "[ [ auto ] ]"} {
		tm := parseTerm(t, src)
		if _, ok := tm.(*Keyword); !ok {
			t.Errorf("%q: expected collapse to a bare keyword, got %s", src, Stringify(tm))
		}
	}
	// An annotated singleton keeps its grouping.
	tm := parseTerm(t, "[ auto ]@(no-single-item-opt)")
	if _, ok := tm.(*MatchAllOrdered); !ok {
		t.Errorf("expected annotated singleton to stay a grouping, got %s", Stringify(tm))
	}
}

func TestMultiplierWrapping(t *testing.T) {
	samples := []struct {
		src  string
		want string
	}{
		{"auto?", "auto?"},
		{"<length>*", "<length>*"},
		{"<length>+", "<length>+"},
		{"<length>#", "<length>#"},
		{"<length>{2}", "<length>{2,2}"},
		{"<length>{2,}", "<length>{2,}"},
		{"<length>{1,4}", "<length>{1,4}"},
	}
	for _, s := range samples {
		if got := Stringify(parseTerm(t, s.src)); got != s.want {
			t.Errorf("%q: expected %q, got %q", s.src, s.want, got)
		}
	}
}

func TestBadDefaultPolicy(t *testing.T) {
	root, e := bnf.Parse("<length>{1,4}@(default=initial)")
	if e != nil {
		t.Fatal(e)
	}
	_, e = FromNode(root)
	ce, ok := e.(*err.Error)
	if !ok || ce.Code != BadDefaultError {
		t.Errorf("expected a bad-default error, got %v", e)
	}

	root, e = bnf.Parse("<length>#@(default=previous)")
	if e != nil {
		t.Fatal(e)
	}
	_, e = FromNode(root)
	ce, ok = e.(*err.Error)
	if !ok || ce.Code != DefaultNotApplicableError {
		t.Errorf("expected a default-not-applicable error, got %v", e)
	}
}

func newRules(t *testing.T, defs map[string]string) *RuleSet {
	t.Helper()
	rs := NewRuleSet()
	for name, src := range defs {
		if e := rs.Add(name, parseTerm(t, src), false); e != nil {
			t.Fatal(e)
		}
	}
	if e := rs.FixupAll(); e != nil {
		t.Fatal(e)
	}
	return rs
}

func TestRuleSubstitution(t *testing.T) {
	rs := newRules(t, map[string]string{
		"<line-style>": "none | hidden | solid",
	})
	tm := fixTerm(t, "<line-style> | double", rs)
	kws := SupportedKeywords(tm)
	if !reflect.DeepEqual(kws, []string{"none", "hidden", "solid", "double"}) {
		t.Errorf("expected flattened rule keywords, got %v", kws)
	}
	if ContainsUnresolvedReference(tm) {
		t.Error("expected all references resolved")
	}
	if rrs := rs.UnusedNames(); len(rrs) != 0 {
		t.Errorf("expected no unused rules, got %v", rrs)
	}
}

func TestRuleToRuleReference(t *testing.T) {
	rs := newRules(t, map[string]string{
		"<a>": "x | <b>",
		"<b>": "y | z",
	})
	tm := fixTerm(t, "<a>", rs)
	if !reflect.DeepEqual(SupportedKeywords(tm), []string{"x", "y", "z"}) {
		t.Errorf("unexpected keywords %v", SupportedKeywords(tm))
	}
}

func TestRuleCycle(t *testing.T) {
	rs := NewRuleSet()
	rs.Add("<a>", parseTerm(t, "x | <b>"), false)
	rs.Add("<b>", parseTerm(t, "y | <a>"), false)
	e := rs.FixupAll()
	ce, ok := e.(*err.Error)
	if !ok || ce.Code != RuleCycleError {
		t.Errorf("expected a rule-cycle error, got %v", e)
	}
}

func TestFixupIsIdempotent(t *testing.T) {
	rs := newRules(t, map[string]string{
		"<side>": "top | bottom",
	})
	samples := []string{
		"auto | <side> | <length [0,inf]>",
		"[ a | b ] <number>?",
		"<side>#{1,2}",
		"a && b && <percentage>",
	}
	for _, src := range samples {
		once := fixTerm(t, src, rs)
		first := Stringify(once)
		again, e := Fixup(once, rs)
		if e != nil {
			t.Fatalf("%q: refixup error: %s", src, e.Error())
		}
		if Stringify(again) != first {
			t.Errorf("%q: fixup not idempotent: %q vs %q", src, first, Stringify(again))
		}
	}
}

func TestFlattenPreservesFlagGateAsError(t *testing.T) {
	rs := newRules(t, map[string]string{
		"<gated>": "[ fast | slow ]@(settings-flag=speedEnabled)",
	})
	tm := parseTerm(t, "auto | <gated>")
	_, e := Fixup(tm, rs)
	ce, ok := e.(*err.Error)
	if !ok || ce.Code != FlaggedAlternativesError {
		t.Errorf("expected a flagged-alternatives error, got %v", e)
	}
}

func TestFlattenCarriesSingleItemOptOut(t *testing.T) {
	rs := newRules(t, map[string]string{
		"<styles>": "[ dotted | dashed ]@(no-single-item-opt)",
	})
	tm := fixTerm(t, "none | <styles>", rs)
	one, ok := tm.(*MatchOne)
	if !ok || len(one.Subterms) != 3 {
		t.Fatalf("expected a flattened MatchOne with 3 subterms, got %s", Stringify(tm))
	}
	if !one.NoSingleItemOpt {
		t.Error("expected the nested opt-out to survive the flatten")
	}
}

func TestValuesPlaceholderExpansion(t *testing.T) {
	values := []*Keyword{
		{Name: "small"},
		{Name: "medium", SettingsFlag: "mediumEnabled"},
		{Name: "large"},
	}
	tm := parseTerm(t, "<<values>> | <length>")
	fixed, e := FixupValuesReferences(tm, values)
	if e != nil {
		t.Fatal(e)
	}
	one := fixed.(*MatchOne)
	expanded, ok := one.Subterms[0].(*MatchOne)
	if !ok || len(expanded.Subterms) != 3 {
		t.Fatalf("expected the placeholder to expand to a MatchOne of 3, got %s", Stringify(one.Subterms[0]))
	}
	for i, want := range []string{"small", "medium", "large"} {
		kw := expanded.Subterms[i].(*Keyword)
		if kw.Name != want {
			t.Errorf("subterm #%d: expected %q, got %q", i, want, kw.Name)
		}
	}
	if expanded.Subterms[1].(*Keyword).SettingsFlag != "mediumEnabled" {
		t.Error("expected the value gate to survive expansion")
	}

	_, e = FixupValuesReferences(parseTerm(t, "<<values>>"), nil)
	ce, ok := e.(*err.Error)
	if !ok || ce.Code != NoValuesError {
		t.Errorf("expected a no-values error, got %v", e)
	}
}

func TestCheckAgainstValues(t *testing.T) {
	tm := parseTerm(t, "auto | none | scroll")
	if e := CheckAgainstValues(tm, []string{"scroll", "auto", "none"}); e != nil {
		t.Errorf("order must not matter: %v", e)
	}

	e := CheckAgainstValues(tm, []string{"auto", "none"})
	ce, ok := e.(*err.Error)
	if !ok || ce.Code != ValueMismatchError {
		t.Fatalf("expected a value-mismatch error, got %v", e)
	}

	e = CheckAgainstValues(tm, []string{"auto", "none", "scroll", "hidden"})
	if e == nil {
		t.Error("expected extra declared value to be an error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	tm := parseTerm(t, "[ a | b ]#")
	c := Clone(tm)
	rep := tm.(*UnboundedRepetition)
	rep.Subterm.(*MatchOne).Subterms[0].(*Keyword).Name = "mutated"
	if reflect.DeepEqual(tm, c) {
		t.Error("expected clone to be independent of the original")
	}
	if Stringify(c) != "[ a | b ]#" {
		t.Errorf("unexpected clone %s", Stringify(c))
	}
}
