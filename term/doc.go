/*
Package term defines the grammar term tree built from bnf parse trees.

The variant set is closed: MatchOne, MatchAllOrdered, MatchAllAnyOrder,
MatchOneOrMoreAnyOrder, Optional, UnboundedRepetition, BoundedRepetition,
Reference, Function, Keyword, and Literal. Consumers switch exhaustively
over these variants; adding a variant means revisiting every switch in
this package and in codegen.

After conversion a term tree goes through two fixup passes: Fixup resolves
shared-grammar-rule references against the rule set and re-simplifies, and
FixupValuesReferences expands the <<values>> placeholder from a property's
declared value list. Both passes are idempotent.
*/
package term

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssgen.term'.
func tracer() tracing.Trace {
	return tracing.Select("cssgen.term")
}
