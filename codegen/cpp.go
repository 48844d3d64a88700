package codegen

import (
	"strings"

	"github.com/yamp-project/WebKit/term"
)

// camel turns a dashed CSS name into its identifier segment:
// "fit-content" becomes "FitContent", "-webkit-box" becomes "WebkitBox".
func camel(name string) string {
	var sb strings.Builder
	for _, seg := range strings.Split(name, "-") {
		if seg == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(seg[:1]))
		sb.WriteString(seg[1:])
	}
	return sb.String()
}

func cssValueId(keyword string) string {
	return "CSSValue" + camel(keyword)
}

// builtinConsumers maps builtin reference names to the hand-written
// consume functions of the consuming parser library.
var builtinConsumers = map[string]string{
	"angle":             "consumeAngle",
	"color":             "consumeColor",
	"custom-ident":      "consumeCustomIdent",
	"dashed-ident":      "consumeDashedIdent",
	"flex":              "consumeFlex",
	"frequency":         "consumeFrequency",
	"ident":             "consumeIdent",
	"image":             "consumeImage",
	"integer":           "consumeInteger",
	"length":            "consumeLength",
	"length-percentage": "consumeLengthPercentage",
	"number":            "consumeNumber",
	"percentage":        "consumePercentage",
	"position":          "consumePosition",
	"ratio":             "consumeRatio",
	"resolution":        "consumeResolution",
	"string":            "consumeString",
	"time":              "consumeTime",
	"url":               "consumeURL",
}

// builtinCall renders the consume call for a builtin reference, mapping a
// [0,inf] range attribute to the non-negative value range.
func builtinCall(ref *term.Reference) string {
	call := builtinConsumers[ref.Name] + "(range, context"
	for _, a := range ref.Attributes {
		if a.Range != nil && a.Range.Min == "0" {
			call += ", ValueRange::NonNegative"
			break
		}
	}
	return call + ")"
}

func settingsGuard(flag, expr string) string {
	if flag == "" {
		return expr
	}
	return "(context." + flag + " ? " + expr + " : nullptr)"
}
