package codegen

import (
	"os"
	"path/filepath"

	"github.com/yamp-project/WebKit/registry"
)

// preamble is the comment header of every generated file, carrying the
// schema's instructions verbatim.
func preamble(ctx *registry.Context) string {
	header := "// This file was generated by cssgen. Do not edit.\n"
	for _, line := range ctx.Registry.Instructions {
		header += "// " + line + "\n"
	}
	return header + "\n"
}

// GenerateAll runs every emitter and writes the output files into dir.
// All content is generated before the first file is written, so a failed
// run leaves no partial output behind.
func GenerateAll(ctx *registry.Context, dir string) error {
	parsing, e := GenerateParsing(ctx)
	if e != nil {
		return e
	}
	files := map[string][]byte{
		"CSSPropertyNames.h":            GenerateNamesHeader(ctx),
		"CSSPropertyNames.cpp":          GenerateNames(ctx),
		"CSSPropertyParsing.h":          GenerateParsingHeader(ctx),
		"CSSPropertyParsing.cpp":        parsing,
		"StyleBuilderGenerated.cpp":     GenerateStyleBuilder(ctx),
		"StyleExtractorGenerated.cpp":   GenerateStyleExtractor(ctx),
		"CSSPropertyShorthands.cpp":     GenerateShorthands(ctx),
		"AnimationPropertyWrappers.cpp": GenerateAnimationWrappers(ctx),
	}

	for name, content := range files {
		path := filepath.Join(dir, name)
		if e := os.WriteFile(path, content, 0o666); e != nil {
			return outputError(e)
		}
		tracer().Infof("wrote %s (%d bytes)", path, len(content))
	}
	return nil
}
