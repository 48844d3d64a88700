package codegen

import (
	"bytes"
	"fmt"

	"github.com/yamp-project/WebKit/registry"
)

// GenerateAnimationWrappers emits AnimationPropertyWrappers.cpp: one
// interpolation wrapper row per property with an animation-wrapper
// configuration.
func GenerateAnimationWrappers(ctx *registry.Context) []byte {
	var buf bytes.Buffer
	buf.WriteString(preamble(ctx))
	buf.WriteString("#include \"AnimationPropertyWrappers.h\"\n\n" +
		"#include \"CSSPropertyNames.h\"\n" +
		"#include \"RenderStyle.h\"\n\n" +
		"namespace WebCore {\n\n" +
		"void registerAnimationPropertyWrappers(WrapperTable& table)\n{\n")

	for _, p := range ctx.Registry.Properties {
		wrapper := p.Codegen.AnimationWrapper
		if wrapper == "" {
			continue
		}
		id := p.Name.Id()
		fmt.Fprintf(&buf, ind+"table.append(makeUnique<%sWrapper>(%s, &RenderStyle::%s, &RenderStyle::set%s));\n",
			camel(wrapper), p.Name.PropertyId(), lowerFirst(id), id)
	}

	buf.WriteString("}\n\n} // namespace WebCore\n")
	return buf.Bytes()
}
