package registry

import (
	yaml "gopkg.in/yaml.v3"

	err "github.com/yamp-project/WebKit/errors"
	"github.com/yamp-project/WebKit/term"
)

// Priority selects the cascade application tier of a longhand.
type Priority int

const (
	UnspecifiedPriority Priority = iota
	MediumPriority
	HighPriority
	TopPriority
)

// CodegenProperties is the validated option bag of one property or
// descriptor entry. It is immutable after parseCodegen returns.
type CodegenProperties struct {
	Priority     Priority
	SinkPriority bool

	Longhands      []string
	ParserGrammar  string
	ParserFunction string
	SkipParser     bool
	ParserExported bool

	SkipStyleBuilder   bool
	StyleBuilderCustom string
	SkipStyleExtractor bool
	AnimationWrapper   string

	LogicalGroup    string
	LogicalResolver string

	Aliases      []string
	CascadeAlias string

	SettingsFlag string
	EnableIf     string
	Internal     bool
	Status       string
	Comment      string
}

// Property is one canonical entry of the registry: a style property when
// AtRule is empty, a descriptor of that at-rule otherwise.
type Property struct {
	Name      Name
	AtRule    string
	Inherited bool
	Initial   string
	Category  string
	Values    []*Value
	Codegen   *CodegenProperties

	// GrammarText is empty for entries parsed by hand-written functions,
	// skipped entries, and shorthands. Grammar is the fixed-up term tree.
	GrammarText string
	Grammar     term.Term

	// Filled by the registry cross-linking pass.
	Longhands     []*Property
	CascadeTarget *Property
	Group         *LogicalPropertyGroup
}

func (p *Property) IsDescriptor() bool {
	return p.AtRule != ""
}

func (p *Property) IsShorthand() bool {
	return len(p.Codegen.Longhands) > 0
}

func (p *Property) IsInternal() bool {
	return p.Codegen.Internal
}

func parseProperty(name string, n *yaml.Node, path, atRule string) (*Property, error) {
	p := &Property{Name: Name{Text: name}, AtRule: atRule, Codegen: &CodegenProperties{}}
	e := eachPair(n, path, func(key string, val *yaml.Node, path string) error {
		var e error
		switch key {
		case "comment":
			_, e = stringValue(val, path)
		case "inherited":
			p.Inherited, e = boolValue(val, path)
		case "initial":
			p.Initial, e = stringValue(val, path)
		case "specification-category":
			p.Category, e = stringValue(val, path)
		case "values":
			e = eachItem(val, path, func(item *yaml.Node, path string) error {
				v, e := parseValue(item, path)
				if e == nil {
					p.Values = append(p.Values, v)
				}
				return e
			})
		case "codegen-properties":
			p.Codegen, e = parseCodegen(val, path)
		default:
			e = unknownKeyError(path, key)
		}
		return e
	})
	if e != nil {
		return nil, e
	}
	return p, validateEntry(p, path)
}

func parseCodegen(n *yaml.Node, path string) (*CodegenProperties, error) {
	cp := &CodegenProperties{}
	e := eachPair(n, path, func(key string, val *yaml.Node, path string) error {
		var e error
		switch key {
		case "top-priority":
			e = setPriority(cp, TopPriority, val, path)
		case "high-priority":
			e = setPriority(cp, HighPriority, val, path)
		case "medium-priority":
			e = setPriority(cp, MediumPriority, val, path)
		case "sink-priority":
			cp.SinkPriority, e = boolValue(val, path)
		case "longhands":
			cp.Longhands, e = stringList(val, path)
		case "parser-grammar":
			cp.ParserGrammar, e = stringValue(val, path)
		case "parser-function":
			cp.ParserFunction, e = stringValue(val, path)
		case "skip-parser":
			cp.SkipParser, e = boolValue(val, path)
		case "parser-exported":
			cp.ParserExported, e = boolValue(val, path)
		case "skip-style-builder":
			cp.SkipStyleBuilder, e = boolValue(val, path)
		case "style-builder-custom":
			cp.StyleBuilderCustom, e = stringValue(val, path)
		case "skip-style-extractor":
			cp.SkipStyleExtractor, e = boolValue(val, path)
		case "animation-wrapper":
			cp.AnimationWrapper, e = stringValue(val, path)
		case "logical-property-group":
			e = parseLogicalGroupRef(cp, val, path)
		case "aliases":
			cp.Aliases, e = stringList(val, path)
		case "cascade-alias":
			cp.CascadeAlias, e = stringValue(val, path)
		case "settings-flag":
			cp.SettingsFlag, e = stringValue(val, path)
		case "enable-if":
			cp.EnableIf, e = stringValue(val, path)
		case "internal-only":
			cp.Internal, e = boolValue(val, path)
		case "status":
			cp.Status, e = stringValue(val, path)
		case "comment":
			cp.Comment, e = stringValue(val, path)
		default:
			e = unknownKeyError(path, key)
		}
		return e
	})
	return cp, e
}

func setPriority(cp *CodegenProperties, tier Priority, n *yaml.Node, path string) error {
	set, e := boolValue(n, path)
	if e != nil || !set {
		return e
	}
	if cp.Priority != UnspecifiedPriority {
		return conflictError(path, priorityKey(cp.Priority), priorityKey(tier))
	}
	cp.Priority = tier
	return nil
}

func priorityKey(tier Priority) string {
	switch tier {
	case TopPriority:
		return "top-priority"
	case HighPriority:
		return "high-priority"
	case MediumPriority:
		return "medium-priority"
	}
	return ""
}

func parseLogicalGroupRef(cp *CodegenProperties, n *yaml.Node, path string) error {
	e := eachPair(n, path, func(key string, val *yaml.Node, path string) error {
		var e error
		switch key {
		case "name":
			cp.LogicalGroup, e = stringValue(val, path)
		case "resolver":
			cp.LogicalResolver, e = stringValue(val, path)
		default:
			e = unknownKeyError(path, key)
		}
		return e
	})
	if e != nil {
		return e
	}
	if cp.LogicalGroup == "" {
		return missingKeyError(path, "name")
	}
	if cp.LogicalResolver == "" {
		return missingKeyError(path, "resolver")
	}
	return nil
}

// validateEntry enforces the cross-field rules of one entry in a single
// pass, before any grammar is compiled.
func validateEntry(p *Property, path string) error {
	cp := p.Codegen
	cgPath := path + ".codegen-properties"

	parserKeys := make([]string, 0, 3)
	if cp.ParserGrammar != "" {
		parserKeys = append(parserKeys, "parser-grammar")
	}
	if cp.ParserFunction != "" {
		parserKeys = append(parserKeys, "parser-function")
	}
	if cp.SkipParser {
		parserKeys = append(parserKeys, "skip-parser")
	}
	if len(parserKeys) > 1 {
		return conflictError(cgPath, parserKeys...)
	}

	if len(cp.Longhands) > 0 {
		if cp.Priority != UnspecifiedPriority {
			return conflictError(cgPath, "longhands", priorityKey(cp.Priority))
		}
		if cp.SinkPriority {
			return conflictError(cgPath, "longhands", "sink-priority")
		}
		if cp.LogicalGroup != "" {
			return conflictError(cgPath, "longhands", "logical-property-group")
		}
		if cp.ParserGrammar != "" {
			return conflictError(cgPath, "longhands", "parser-grammar")
		}
		for _, longhand := range cp.Longhands {
			if longhand == p.Name.Text {
				return err.FormatPath(cgPath, ConflictError, "shorthand %q lists itself as a longhand", p.Name.Text)
			}
		}
	}

	if cp.CascadeAlias == p.Name.Text && cp.CascadeAlias != "" {
		return err.FormatPath(cgPath, ConflictError, "cascade-alias of %q refers to itself", p.Name.Text)
	}

	if p.IsDescriptor() {
		inapplicable := []struct {
			key string
			set bool
		}{
			{priorityKey(cp.Priority), cp.Priority != UnspecifiedPriority},
			{"sink-priority", cp.SinkPriority},
			{"logical-property-group", cp.LogicalGroup != ""},
			{"cascade-alias", cp.CascadeAlias != ""},
			{"longhands", len(cp.Longhands) > 0},
		}
		for _, opt := range inapplicable {
			if opt.set {
				return err.FormatPath(cgPath, ConflictError, "option %q does not apply to descriptors", opt.key)
			}
		}
	}
	return nil
}
