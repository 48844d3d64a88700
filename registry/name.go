package registry

import (
	"strings"
)

// Name is a raw CSS property or descriptor name plus its derived
// identifier forms.
type Name struct {
	Text string
}

// Id is the camel-cased identifier segment: "background-color" becomes
// "BackgroundColor", "-webkit-box-orient" becomes "WebkitBoxOrient".
func (n Name) Id() string {
	var sb strings.Builder
	for _, seg := range strings.Split(n.Text, "-") {
		if seg == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(seg[:1]))
		sb.WriteString(seg[1:])
	}
	return sb.String()
}

// PropertyId is the generated enumerator name, "CSSProperty" + Id.
// Descriptors share the property ID space.
func (n Name) PropertyId() string {
	return "CSSProperty" + n.Id()
}

// IsPrefixed reports whether the name carries a vendor prefix. Prefixed
// names sort after unprefixed ones in the canonical order.
func (n Name) IsPrefixed() bool {
	return strings.HasPrefix(n.Text, "-")
}
