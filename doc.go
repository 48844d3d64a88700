/*
Package webkit hosts cssgen, a build-time compiler turning the declarative
CSS property schema into generated parser, style builder, and style
extractor sources.

Consists of subpackages:
  - cmd/cssgen: console utility driving a full generation run;
  - lexer: tokenizer for the property grammar dialect;
  - bnf: parse-tree node model and the grammar state machine parser;
  - term: grammar term tree, cross-reference fixups, value validation;
  - registry: property/descriptor schema loading and validation;
  - codegen: parsing-strategy selection and source emission.

Typical usage is:

1. Describe properties, descriptors, and shared grammar rules in the
schema document (see examples/css-properties.yaml).

2. Run cssgen over the schema with the set of active compile-time defines.

3. Feed the generated sources to the consuming build. Any schema or
grammar problem aborts the run; cssgen never emits partial output.
*/
package webkit

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LexicalErrors  = 1   // used by lexer
	GrammarErrors  = 101 // used by bnf
	TermErrors     = 201 // used by term
	RegistryErrors = 301 // used by registry
	CodegenErrors  = 401 // used by codegen
)
