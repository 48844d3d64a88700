package codegen

import (
	"github.com/yamp-project/WebKit/registry"
	"github.com/yamp-project/WebKit/term"
)

// Consumer is the parsing strategy selected for one registry entry.
// Exactly one variant applies per entry.
type Consumer interface {
	isConsumer()
}

// SkipConsumer: shorthands and entries marked skip-parser get no parse
// function; shorthands are parsed through their longhands.
type SkipConsumer struct{}

// CustomConsumer: the entry names a hand-written parser function; the
// dispatch forwards to it directly.
type CustomConsumer struct {
	Function string
}

// FastPathKeywordOnlyConsumer: the whole grammar is a choice between
// plain keywords. Only a keyword-validity predicate is emitted; the
// dispatch consumes an identifier through it. A dedicated consume
// function appears only for parser-exported entries.
type FastPathKeywordOnlyConsumer struct {
	Keywords []*term.Keyword
}

// DirectConsumer: the grammar is a single reference; the dispatch
// forwards to that reference's own consume call.
type DirectConsumer struct {
	Reference *term.Reference
}

// GeneratedConsumer: the default. A full consume function is synthesized
// from the term tree. FastKeywords lists the top-level plain-keyword
// alternatives tried first through a companion predicate.
type GeneratedConsumer struct {
	Root         term.Term
	FastKeywords []*term.Keyword
}

func (*SkipConsumer) isConsumer()                {}
func (*CustomConsumer) isConsumer()              {}
func (*FastPathKeywordOnlyConsumer) isConsumer() {}
func (*DirectConsumer) isConsumer()              {}
func (*GeneratedConsumer) isConsumer()           {}

// SelectConsumer picks the parsing strategy for one entry from its
// options and the shape of its finished grammar tree.
func SelectConsumer(p *registry.Property) Consumer {
	cp := p.Codegen
	switch {
	case p.IsShorthand() || cp.SkipParser:
		return &SkipConsumer{}
	case cp.ParserFunction != "":
		return &CustomConsumer{Function: cp.ParserFunction}
	}

	switch t := p.Grammar.(type) {
	case *term.Keyword:
		if t.AliasedTo == "" {
			return &FastPathKeywordOnlyConsumer{Keywords: []*term.Keyword{t}}
		}
	case *term.MatchOne:
		if kws, all := plainKeywords(t.Subterms); all && t.SettingsFlag == "" {
			return &FastPathKeywordOnlyConsumer{Keywords: kws}
		}
	case *term.Reference:
		return &DirectConsumer{Reference: t}
	}

	g := &GeneratedConsumer{Root: p.Grammar}
	if one, ok := p.Grammar.(*term.MatchOne); ok && one.SettingsFlag == "" {
		for _, s := range one.Subterms {
			if kw, ok := s.(*term.Keyword); ok && kw.AliasedTo == "" {
				g.FastKeywords = append(g.FastKeywords, kw)
			}
		}
	}
	return g
}

// plainKeywords reports whether every term is a non-aliased Keyword and
// returns them in order.
func plainKeywords(terms []term.Term) ([]*term.Keyword, bool) {
	kws := make([]*term.Keyword, 0, len(terms))
	for _, t := range terms {
		kw, ok := t.(*term.Keyword)
		if !ok || kw.AliasedTo != "" {
			return nil, false
		}
		kws = append(kws, kw)
	}
	return kws, true
}
