package registry

import (
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/yamp-project/WebKit/bnf"
	err "github.com/yamp-project/WebKit/errors"
	"github.com/yamp-project/WebKit/term"
)

var topLevelKeys = []string{
	"categories",
	"instructions",
	"properties",
	"descriptors",
	"shared-grammar-rules",
}

// Context is the single parsing context of one generation run: the active
// conditional-compilation defines, the shared grammar rule table, and the
// fully loaded registry. It is read-only after Load returns.
type Context struct {
	Defines  map[string]bool
	Rules    *term.RuleSet
	Registry *Registry
}

// ParseDefines splits a space-separated defines string into the active
// flag set.
func ParseDefines(defines string) map[string]bool {
	set := map[string]bool{}
	for _, flag := range strings.Fields(defines) {
		set[flag] = true
	}
	return set
}

// Enabled evaluates an enable-if condition: a space-separated conjunction
// of define names, each optionally negated with a leading "!". An empty
// condition is always enabled.
func (c *Context) Enabled(condition string) bool {
	for _, conjunct := range strings.Fields(condition) {
		want := true
		if strings.HasPrefix(conjunct, "!") {
			want = false
			conjunct = conjunct[1:]
		}
		if c.Defines[conjunct] != want {
			return false
		}
	}
	return true
}

// Load reads and compiles a schema file. Shared grammar rules load before
// properties and descriptors because their grammars reference them.
func Load(path, defines string) (*Context, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return nil, badDocumentError(e)
	}
	return LoadBytes(data, defines)
}

func LoadBytes(data []byte, defines string) (*Context, error) {
	root, e := parseDocument(data)
	if e != nil {
		return nil, e
	}

	sections := map[string]*yaml.Node{}
	e = eachPair(root, "", func(key string, val *yaml.Node, _ string) error {
		for _, known := range topLevelKeys {
			if key == known {
				sections[key] = val
				return nil
			}
		}
		return unknownKeyError("", key)
	})
	if e != nil {
		return nil, e
	}
	for _, key := range topLevelKeys {
		if sections[key] == nil {
			return nil, missingKeyError("", key)
		}
	}

	c := &Context{
		Defines:  ParseDefines(defines),
		Rules:    term.NewRuleSet(),
		Registry: newRegistry(),
	}
	tracer().Infof("loading schema, %d defines active", len(c.Defines))

	if e = c.loadCategories(sections["categories"]); e != nil {
		return nil, e
	}
	if c.Registry.Instructions, e = stringList(sections["instructions"], "instructions"); e != nil {
		return nil, e
	}
	if e = c.loadSharedRules(sections["shared-grammar-rules"]); e != nil {
		return nil, e
	}
	if e = c.loadProperties(sections["properties"]); e != nil {
		return nil, e
	}
	if e = c.loadDescriptors(sections["descriptors"]); e != nil {
		return nil, e
	}
	if e = c.Registry.finish(); e != nil {
		return nil, e
	}
	tracer().Infof("schema loaded: %d properties, %d descriptors, %d shared rules",
		len(c.Registry.Properties), len(c.Registry.Descriptors), len(c.Rules.Names()))
	return c, nil
}

func (c *Context) loadCategories(n *yaml.Node) error {
	return eachPair(n, "categories", func(name string, val *yaml.Node, path string) error {
		cat := &Category{Name: name}
		e := eachPair(val, path, func(key string, val *yaml.Node, path string) error {
			var e error
			switch key {
			case "shortname":
				cat.Shortname, e = stringValue(val, path)
			case "url":
				cat.URL, e = stringValue(val, path)
			case "comment":
				cat.Comment, e = stringValue(val, path)
			default:
				e = unknownKeyError(path, key)
			}
			return e
		})
		if e != nil {
			return e
		}
		c.Registry.Categories[name] = cat
		return nil
	})
}

func (c *Context) loadSharedRules(n *yaml.Node) error {
	e := eachPair(n, "shared-grammar-rules", func(name string, val *yaml.Node, path string) error {
		grammar, exported, enableIf, e := parseSharedRule(val, path)
		if e != nil {
			return e
		}
		if !c.Enabled(enableIf) {
			tracer().Debugf("shared rule %s disabled by enable-if %q", name, enableIf)
			return nil
		}
		t, e := compileGrammar(grammar, path)
		if e != nil {
			return e
		}
		return err.WithPath(c.Rules.Add(name, t, exported), path)
	})
	if e != nil {
		return e
	}
	return c.Rules.FixupAll()
}

func parseSharedRule(n *yaml.Node, path string) (grammar string, exported bool, enableIf string, e error) {
	if n.Kind == yaml.ScalarNode && !isNull(n) {
		return n.Value, false, "", nil
	}
	e = eachPair(n, path, func(key string, val *yaml.Node, path string) error {
		var e error
		switch key {
		case "grammar":
			grammar, e = stringValue(val, path)
		case "exported":
			exported, e = boolValue(val, path)
		case "enable-if":
			enableIf, e = stringValue(val, path)
		case "comment":
			_, e = stringValue(val, path)
		default:
			e = unknownKeyError(path, key)
		}
		return e
	})
	if e == nil && grammar == "" {
		e = missingKeyError(path, "grammar")
	}
	return
}

func (c *Context) loadProperties(n *yaml.Node) error {
	return eachPair(n, "properties", func(name string, val *yaml.Node, path string) error {
		return c.loadEntry(name, val, path, "")
	})
}

func (c *Context) loadDescriptors(n *yaml.Node) error {
	return eachPair(n, "descriptors", func(atRule string, val *yaml.Node, path string) error {
		return eachPair(val, path, func(name string, val *yaml.Node, path string) error {
			return c.loadEntry(name, val, path, atRule)
		})
	})
}

func (c *Context) loadEntry(name string, n *yaml.Node, path, atRule string) error {
	p, e := parseProperty(name, n, path, atRule)
	if e != nil {
		return e
	}
	if !c.Enabled(p.Codegen.EnableIf) {
		tracer().Debugf("entry %s disabled by enable-if %q", name, p.Codegen.EnableIf)
		return nil
	}
	p.Values = c.enabledValues(p.Values)
	if e = c.compileEntryGrammar(p, path); e != nil {
		return e
	}
	return c.Registry.addProperty(p, path)
}

func (c *Context) enabledValues(values []*Value) []*Value {
	kept := values[:0]
	for _, v := range values {
		if c.Enabled(v.EnableIf) {
			kept = append(kept, v)
		}
	}
	return kept
}

// compileEntryGrammar runs the full grammar pipeline for one entry:
// parse, convert, shared-rule fixup, values-placeholder expansion, and
// value-list reconciliation. Entries parsed by hand-written functions,
// skipped entries, and shorthands carry no grammar of their own. An entry
// without an explicit grammar but with declared values gets the implicit
// grammar "<<values>>".
func (c *Context) compileEntryGrammar(p *Property, path string) error {
	cp := p.Codegen
	if cp.ParserFunction != "" || cp.SkipParser || len(cp.Longhands) > 0 {
		return nil
	}
	text := cp.ParserGrammar
	if text == "" {
		if len(p.Values) == 0 {
			return noParserError(path + ".codegen-properties")
		}
		text = "<<values>>"
	}

	t, e := compileGrammar(text, path)
	if e != nil {
		return e
	}
	if t, e = term.Fixup(t, c.Rules); e != nil {
		return err.WithPath(e, path)
	}
	if t, e = term.FixupValuesReferences(t, keywords(p.Values)); e != nil {
		return err.WithPath(e, path)
	}
	if !term.ContainsUnresolvedReference(t) {
		if e = term.CheckAgainstValues(t, valueNames(p.Values)); e != nil {
			return err.WithPath(e, path)
		}
	} else {
		tracer().Debugf("entry %s: unresolved references, skipping value check", p.Name.Text)
	}
	p.GrammarText = text
	p.Grammar = t
	return nil
}

func compileGrammar(src, path string) (term.Term, error) {
	root, e := bnf.Parse(src)
	if e != nil {
		return nil, err.WithPath(e, path)
	}
	t, e := term.FromNode(root)
	if e != nil {
		return nil, err.WithPath(e, path)
	}
	return t, nil
}

// UnusedRules returns the names of non-exported shared rules no property
// or descriptor grammar referenced.
func (c *Context) UnusedRules() []string {
	var names []string
	for _, name := range c.Rules.UnusedNames() {
		if !c.Rules.Exported(name) {
			names = append(names, name)
		}
	}
	return names
}

// ValidateUnusedRules rejects unused rules that still contain unresolved
// references; a used rule would have surfaced those through the value
// check of its referrers.
func (c *Context) ValidateUnusedRules() error {
	for _, name := range c.UnusedRules() {
		root, ok := c.Rules.Lookup(name)
		if ok && term.ContainsUnresolvedReference(root) {
			return err.FormatPath("shared-grammar-rules."+name, UnknownNameError,
				"unused rule %q contains unresolved references", name)
		}
	}
	return nil
}
