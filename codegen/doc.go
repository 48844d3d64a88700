/*
Package codegen selects a parsing strategy for every registry entry and
emits the generated C++ sources: property name tables, the value parsing
dispatch, style builder and extractor functions, shorthand tables, and
animation wrapper rows.

Strategy selection inspects the finished grammar term tree; emission is
plain text assembly, one buffer per output file. Codegen never writes
partial output: any unsupported construct aborts the run before the first
file is created.
*/
package codegen

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cssgen.codegen")
}
