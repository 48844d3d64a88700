/*
Package bnf parses one grammar-dialect string into a parse tree.

The dialect describes CSS property value syntax: groupings with the CSS
component combinators (juxtaposition, |, ||, &&), references in angle
brackets with optional attributes and numeric ranges, function notation,
keywords, quoted literals, the CSS component multipliers (?, *, +, #,
{A}, {A,}, {A,B}), and a trailing @(...) annotation extension.

Parsing is a push-down automaton over explicit states: entering a nested
construct pushes a (state, node, owner) frame, leaving it pops the frame
and attaches the completed node to the still-open owner. A malformed
grammar string aborts immediately; errors name the offending token, the
automaton state, and the full input.
*/
package bnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssgen.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("cssgen.bnf")
}
