package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
)

// GenerateNamesHeader emits CSSPropertyNames.h: the CSSPropertyID
// enumeration in canonical order plus the lookup declarations.
func GenerateNamesHeader(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#pragma once\n\n" +
		"#include <wtf/text/ASCIILiteral.h>\n\n" +
		"namespace WebCore {\n\n" +
		"enum CSSPropertyID : uint16_t {\n" +
		ind + "CSSPropertyInvalid = 0,\n" +
		ind + "CSSPropertyCustom = 1,\n")
	for i, p := range ctx.Registry.All {
		fmt.Fprintf(&buf, ind+"%s = %d,\n", p.Name.PropertyId(), i+2)
	}
	buf.WriteString("};\n\n")

	fmt.Fprintf(&buf, "constexpr uint16_t firstCSSProperty = 2;\n")
	fmt.Fprintf(&buf, "constexpr uint16_t numCSSProperties = %d;\n", len(ctx.Registry.All))
	fmt.Fprintf(&buf, "constexpr uint16_t lastCSSProperty = %d;\n\n", len(ctx.Registry.All)+1)

	buf.WriteString("CSSPropertyID findCSSProperty(const char*, unsigned length);\n" +
		"ASCIILiteral nameLiteral(CSSPropertyID);\n" +
		"bool isInternal(CSSPropertyID);\n" +
		"bool isExposed(CSSPropertyID, const CSSParserContext&);\n\n" +
		"} // namespace WebCore\n")
	return buf.Bytes()
}

// GenerateNames emits CSSPropertyNames.cpp: the name table, the
// name-to-ID mapping including parse-time aliases, and the exposure
// checks driven by settings flags and internal status.
func GenerateNames(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"CSSPropertyNames.h\"\n\n" +
		"#include \"CSSParserContext.h\"\n" +
		"#include <wtf/text/StringView.h>\n\n" +
		"namespace WebCore {\n\n")

	buf.WriteString("static constexpr ASCIILiteral propertyNames[] = {\n")
	for _, p := range ctx.Registry.All {
		fmt.Fprintf(&buf, ind+"\"%s\"_s,\n", p.Name.Text)
	}
	buf.WriteString("};\n\n")

	buf.WriteString("struct PropertyNameMapping {\n" +
		ind + "ASCIILiteral name;\n" +
		ind + "CSSPropertyID id;\n" +
		"};\n\n" +
		"static constexpr PropertyNameMapping propertyNameMappings[] = {\n")
	for _, p := range ctx.Registry.All {
		fmt.Fprintf(&buf, ind+"{ \"%s\"_s, %s },\n", p.Name.Text, p.Name.PropertyId())
		for _, alias := range p.Codegen.Aliases {
			fmt.Fprintf(&buf, ind+"{ \"%s\"_s, %s }, // alias\n", alias, p.Name.PropertyId())
		}
	}
	buf.WriteString("};\n\n")

	buf.WriteString("CSSPropertyID findCSSProperty(const char* characters, unsigned length)\n{\n" +
		ind + "auto name = StringView { characters, length };\n" +
		ind + "for (auto& mapping : propertyNameMappings) {\n" +
		ind + ind + "if (equalIgnoringASCIICase(name, mapping.name))\n" +
		ind + ind + ind + "return mapping.id;\n" +
		ind + "}\n" +
		ind + "return CSSPropertyInvalid;\n}\n\n")

	buf.WriteString("ASCIILiteral nameLiteral(CSSPropertyID id)\n{\n" +
		ind + "if (id < firstCSSProperty || id > lastCSSProperty)\n" +
		ind + ind + "return { };\n" +
		ind + "return propertyNames[id - firstCSSProperty];\n}\n\n")

	buf.WriteString("bool isInternal(CSSPropertyID id)\n{\n" + ind + "switch (id) {\n")
	internal := false
	for _, p := range ctx.Registry.All {
		if p.IsInternal() {
			fmt.Fprintf(&buf, ind+"case %s:\n", p.Name.PropertyId())
			internal = true
		}
	}
	if internal {
		buf.WriteString(ind + ind + "return true;\n")
	}
	buf.WriteString(ind + "default:\n" + ind + ind + "return false;\n" + ind + "}\n}\n\n")

	buf.WriteString("bool isExposed(CSSPropertyID id, const CSSParserContext& context)\n{\n" + ind + "switch (id) {\n")
	for _, p := range ctx.Registry.All {
		if p.Codegen.SettingsFlag == "" {
			continue
		}
		fmt.Fprintf(&buf, ind+"case %s:\n", p.Name.PropertyId())
		fmt.Fprintf(&buf, ind+ind+"return context.%s;\n", p.Codegen.SettingsFlag)
	}
	buf.WriteString(ind + "default:\n" + ind + ind + "return !isInternal(id);\n" + ind + "}\n}\n\n" +
		"} // namespace WebCore\n")
	return buf.Bytes()
}
