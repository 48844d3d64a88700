package registry

import (
	"sort"
)

// Category is a specification category entry properties may point at via
// specification-category.
type Category struct {
	Name      string
	Shortname string
	URL       string
	Comment   string
}

// Registry holds the validated, canonically ordered property and
// descriptor set of one generation run.
type Registry struct {
	// All lists every entry in canonical order: style properties first
	// (longhands before shorthands), then descriptors.
	All         []*Property
	Properties  []*Property
	Descriptors []*Property

	Categories    map[string]*Category
	Instructions  []string
	LogicalGroups map[string]*LogicalPropertyGroup

	byName    map[string]*Property
	allByName map[string][]*Property
}

// Lookup returns the canonical entry for a name. When a style property
// and a descriptor share one name, the style property wins.
func (r *Registry) Lookup(name string) *Property {
	return r.byName[name]
}

// AllForName returns every entry registered under a name, style
// properties first.
func (r *Registry) AllForName(name string) []*Property {
	return r.allByName[name]
}

// GroupNames returns the logical property group names in lexical order.
func (r *Registry) GroupNames() []string {
	names := make([]string, 0, len(r.LogicalGroups))
	for name := range r.LogicalGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRegistry() *Registry {
	return &Registry{
		Categories:    map[string]*Category{},
		LogicalGroups: map[string]*LogicalPropertyGroup{},
		byName:        map[string]*Property{},
		allByName:     map[string][]*Property{},
	}
}

func (r *Registry) addProperty(p *Property, path string) error {
	for _, prior := range r.allByName[p.Name.Text] {
		if prior.AtRule == p.AtRule {
			return duplicateNameError(path, p.Name.Text)
		}
	}
	if p.IsDescriptor() {
		r.Descriptors = append(r.Descriptors, p)
	} else {
		r.Properties = append(r.Properties, p)
	}
	if _, taken := r.byName[p.Name.Text]; !taken || !p.IsDescriptor() {
		r.byName[p.Name.Text] = p
	}
	r.allByName[p.Name.Text] = append(r.allByName[p.Name.Text], p)
	return nil
}

// finish sorts the canonical order and runs the cross-linking fixups.
// After finish the registry is read-only.
func (r *Registry) finish() error {
	sortCanonical(r.Properties)
	sortCanonical(r.Descriptors)
	r.All = append(r.All, r.Properties...)
	r.All = append(r.All, r.Descriptors...)

	for _, p := range r.All {
		if e := r.crossLink(p); e != nil {
			return e
		}
	}
	return nil
}

func (r *Registry) crossLink(p *Property) error {
	path := entryPath(p)

	if p.Category != "" {
		if _, known := r.Categories[p.Category]; !known {
			return unknownKeyError(path+".specification-category", p.Category)
		}
	}

	for _, name := range p.Codegen.Longhands {
		longhand := r.styleProperty(name)
		if longhand == nil {
			return unknownNameError(path+".codegen-properties.longhands", name)
		}
		p.Longhands = append(p.Longhands, longhand)
	}

	if alias := p.Codegen.CascadeAlias; alias != "" {
		target := r.styleProperty(alias)
		if target == nil {
			return unknownNameError(path+".codegen-properties.cascade-alias", alias)
		}
		p.CascadeTarget = target
	}

	if groupName := p.Codegen.LogicalGroup; groupName != "" {
		group := r.LogicalGroups[groupName]
		if group == nil {
			group = newLogicalPropertyGroup(groupName)
			r.LogicalGroups[groupName] = group
		}
		groupPath := path + ".codegen-properties.logical-property-group"
		if e := group.add(p, p.Codegen.LogicalResolver, groupPath); e != nil {
			return e
		}
		p.Group = group
	}
	return nil
}

func (r *Registry) styleProperty(name string) *Property {
	p := r.byName[name]
	if p == nil || p.IsDescriptor() {
		return nil
	}
	return p
}

func entryPath(p *Property) string {
	if p.IsDescriptor() {
		return "descriptors." + p.AtRule + "." + p.Name.Text
	}
	return "properties." + p.Name.Text
}

// sortCanonical orders entries for emission: non-shorthands before
// shorthands; within non-shorthands top, high, and medium priority tiers
// first, then unspecified, then logical-group physical, then
// logical-group logical; sink-priority entries after all of those;
// lexical name order breaks ties with vendor-prefixed names last.
func sortCanonical(entries []*Property) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := canonicalRank(a), canonicalRank(b); ra != rb {
			return ra < rb
		}
		if pa, pb := a.Name.IsPrefixed(), b.Name.IsPrefixed(); pa != pb {
			return pb
		}
		return a.Name.Text < b.Name.Text
	})
}

func canonicalRank(p *Property) int {
	cp := p.Codegen
	switch {
	case p.IsShorthand():
		return 7
	case cp.SinkPriority:
		return 6
	case cp.Priority == TopPriority:
		return 0
	case cp.Priority == HighPriority:
		return 1
	case cp.Priority == MediumPriority:
		return 2
	case cp.LogicalGroup == "":
		return 3
	case isPhysicalResolver(cp.LogicalResolver):
		return 4
	default:
		return 5
	}
}

func isPhysicalResolver(resolver string) bool {
	info, known := resolvers[resolver]
	return known && !info.logical
}
