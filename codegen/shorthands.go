package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
)

// GenerateShorthands emits CSSPropertyShorthands.cpp: one longhand table
// and accessor per shorthand plus the shorthandForProperty switch.
func GenerateShorthands(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"CSSPropertyShorthands.h\"\n\n" +
		"#include \"CSSPropertyNames.h\"\n\n" +
		"namespace WebCore {\n\n")

	var shorthands []*registry.Property
	for _, p := range ctx.Registry.Properties {
		if p.IsShorthand() {
			shorthands = append(shorthands, p)
		}
	}

	for _, p := range shorthands {
		accessor := lowerFirst(p.Name.Id())
		fmt.Fprintf(&buf, "StylePropertyShorthand %sShorthand()\n{\n", accessor)
		fmt.Fprintf(&buf, ind+"static constexpr CSSPropertyID %sProperties[] = {\n", accessor)
		for _, longhand := range p.Longhands {
			fmt.Fprintf(&buf, ind+ind+"%s,\n", longhand.Name.PropertyId())
		}
		buf.WriteString(ind + "};\n")
		fmt.Fprintf(&buf, ind+"return StylePropertyShorthand(%s, %sProperties);\n}\n\n", p.Name.PropertyId(), accessor)
	}

	buf.WriteString("StylePropertyShorthand shorthandForProperty(CSSPropertyID id)\n{\n" + ind + "switch (id) {\n")
	for _, p := range shorthands {
		fmt.Fprintf(&buf, ind+"case %s:\n", p.Name.PropertyId())
		fmt.Fprintf(&buf, ind+ind+"return %sShorthand();\n", lowerFirst(p.Name.Id()))
	}
	buf.WriteString(ind + "default:\n" + ind + ind + "return { };\n" + ind + "}\n}\n\n" +
		"} // namespace WebCore\n")
	return buf.Bytes()
}
