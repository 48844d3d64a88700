/*
Package registry loads the declarative CSS property schema, validates it,
and builds the canonical property/descriptor set used by code generation.

The schema is a YAML document with five top-level sections: categories,
instructions, properties, descriptors, and shared-grammar-rules. Loading
is two-phase: shared grammar rules are parsed and fixed up first, then
property and descriptor grammars are compiled against them. The resulting
Context is read-only for the remainder of a generation run.
*/
package registry

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cssgen.registry")
}
