package registry

import (
	yaml "gopkg.in/yaml.v3"

	"github.com/yamp-project/WebKit/term"
)

// Value is one allowed keyword value of a property or descriptor. A value
// is either a bare scalar or a mapping carrying its own gates.
type Value struct {
	Name         string
	SettingsFlag string
	EnableIf     string
	Status       string
	Comment      string
}

func parseValue(n *yaml.Node, path string) (*Value, error) {
	if n.Kind == yaml.ScalarNode && !isNull(n) {
		return &Value{Name: n.Value}, nil
	}

	v := &Value{}
	e := eachPair(n, path, func(key string, val *yaml.Node, path string) error {
		var e error
		switch key {
		case "value":
			v.Name, e = stringValue(val, path)
		case "settings-flag":
			v.SettingsFlag, e = stringValue(val, path)
		case "enable-if":
			v.EnableIf, e = stringValue(val, path)
		case "status":
			v.Status, e = stringValue(val, path)
		case "comment":
			v.Comment, e = stringValue(val, path)
		default:
			e = unknownKeyError(path, key)
		}
		return e
	})
	if e != nil {
		return nil, e
	}
	if v.Name == "" {
		return nil, missingKeyError(path, "value")
	}
	return v, nil
}

// keywords converts a value list into the Keyword terms substituted for a
// <<values>> placeholder, preserving list order.
func keywords(values []*Value) []*term.Keyword {
	kws := make([]*term.Keyword, len(values))
	for i, v := range values {
		kws[i] = &term.Keyword{Name: v.Name, SettingsFlag: v.SettingsFlag, Status: v.Status}
	}
	return kws
}

func valueNames(values []*Value) []string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.Name
	}
	return names
}
