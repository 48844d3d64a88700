package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
)

// GenerateStyleExtractor emits StyleExtractorGenerated.cpp: the switch
// converting computed style values back to CSS values for serialization.
func GenerateStyleExtractor(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"StyleExtractorGenerated.h\"\n\n" +
		"#include \"ExtractorConverter.h\"\n" +
		"#include \"RenderStyle.h\"\n\n" +
		"namespace WebCore {\nnamespace Style {\n\n" +
		"RefPtr<CSSValue> ExtractorGenerated::extractValue(CSSPropertyID id, const RenderStyle& style)\n{\n" +
		ind + "switch (id) {\n")

	for _, p := range ctx.Registry.Properties {
		if p.IsShorthand() || p.CascadeTarget != nil || p.Codegen.SkipStyleExtractor || p.Codegen.SkipStyleBuilder {
			continue
		}
		id := p.Name.Id()
		fmt.Fprintf(&buf, ind+"case %s:\n", p.Name.PropertyId())
		fmt.Fprintf(&buf, ind+ind+"return ExtractorConverter::convert%s(style.%s());\n", id, lowerFirst(id))
	}

	buf.WriteString(ind + "default:\n" + ind + ind + "return nullptr;\n" + ind + "}\n}\n\n" +
		"} // namespace Style\n} // namespace WebCore\n")
	return buf.Bytes()
}
