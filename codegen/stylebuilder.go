package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
)

// GenerateStyleBuilder emits StyleBuilderGenerated.cpp: the applyProperty
// switch mapping each longhand to its initial/inherit/value application.
// Shorthands, cascade aliases, descriptors, and skip-style-builder
// entries get no case; custom entries forward to hand-written BuilderCustom
// functions.
func GenerateStyleBuilder(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"StyleBuilderGenerated.h\"\n\n" +
		"#include \"BuilderConverter.h\"\n" +
		"#include \"BuilderCustom.h\"\n" +
		"#include \"RenderStyle.h\"\n\n" +
		"namespace WebCore {\nnamespace Style {\n\n" +
		"void BuilderGenerated::applyProperty(CSSPropertyID id, BuilderState& builderState, const CSSValue& value, ApplyValueType type)\n{\n" +
		ind + "switch (id) {\n")

	for _, p := range ctx.Registry.Properties {
		cp := p.Codegen
		if p.IsShorthand() || p.CascadeTarget != nil || cp.SkipStyleBuilder {
			continue
		}
		id := p.Name.Id()
		fmt.Fprintf(&buf, ind+"case %s:\n", p.Name.PropertyId())
		if cp.StyleBuilderCustom != "" {
			fmt.Fprintf(&buf, ind+ind+"BuilderCustom::applyValue%s(builderState, value, type);\n", cp.StyleBuilderCustom)
			buf.WriteString(ind + ind + "break;\n")
			continue
		}
		buf.WriteString(ind + ind + "switch (type) {\n")
		fmt.Fprintf(&buf, ind+ind+"case ApplyValueType::Initial:\n")
		fmt.Fprintf(&buf, ind+ind+ind+"builderState.style().set%s(RenderStyle::initial%s());\n", id, id)
		buf.WriteString(ind + ind + ind + "break;\n")
		fmt.Fprintf(&buf, ind+ind+"case ApplyValueType::Inherit:\n")
		fmt.Fprintf(&buf, ind+ind+ind+"builderState.style().set%s(builderState.parentStyle().%s());\n", id, lowerFirst(id))
		buf.WriteString(ind + ind + ind + "break;\n")
		fmt.Fprintf(&buf, ind+ind+"case ApplyValueType::Value:\n")
		fmt.Fprintf(&buf, ind+ind+ind+"builderState.style().set%s(BuilderConverter::convert%s(builderState, value));\n", id, id)
		buf.WriteString(ind + ind + ind + "break;\n")
		buf.WriteString(ind + ind + "}\n" + ind + ind + "break;\n")
	}

	buf.WriteString(ind + "default:\n" + ind + ind + "break;\n" + ind + "}\n}\n\n" +
		"} // namespace Style\n} // namespace WebCore\n")
	return buf.Bytes()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
