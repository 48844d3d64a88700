package registry

// GroupKind classifies a logical property group by the box geometry its
// resolvers describe.
type GroupKind int

const (
	AxisGroup GroupKind = iota
	SideGroup
	CornerGroup
)

var groupKindNames = map[GroupKind]string{
	AxisGroup:   "axis",
	SideGroup:   "side",
	CornerGroup: "corner",
}

func (k GroupKind) String() string {
	return groupKindNames[k]
}

type resolverInfo struct {
	kind    GroupKind
	logical bool
	index   int
}

// Resolver index order must match the generated BoxAxis/BoxSide/BoxCorner
// enumerations.
var resolvers = map[string]resolverInfo{
	"inline": {AxisGroup, true, 0},
	"block":  {AxisGroup, true, 1},

	"horizontal": {AxisGroup, false, 0},
	"vertical":   {AxisGroup, false, 1},

	"block-start":  {SideGroup, true, 0},
	"block-end":    {SideGroup, true, 1},
	"inline-start": {SideGroup, true, 2},
	"inline-end":   {SideGroup, true, 3},

	"top":    {SideGroup, false, 0},
	"right":  {SideGroup, false, 1},
	"bottom": {SideGroup, false, 2},
	"left":   {SideGroup, false, 3},

	"start-start": {CornerGroup, true, 0},
	"start-end":   {CornerGroup, true, 1},
	"end-start":   {CornerGroup, true, 2},
	"end-end":     {CornerGroup, true, 3},

	"top-left":     {CornerGroup, false, 0},
	"top-right":    {CornerGroup, false, 1},
	"bottom-right": {CornerGroup, false, 2},
	"bottom-left":  {CornerGroup, false, 3},
}

// LogicalResolvers and PhysicalResolvers list the resolver names of a kind
// in enumeration order, for table emission.
func LogicalResolvers(kind GroupKind) []string {
	return resolverNames(kind, true)
}

func PhysicalResolvers(kind GroupKind) []string {
	return resolverNames(kind, false)
}

func resolverNames(kind GroupKind, logical bool) []string {
	var names []string
	for name, info := range resolvers {
		if info.kind == kind && info.logical == logical {
			for len(names) <= info.index {
				names = append(names, "")
			}
			names[info.index] = name
		}
	}
	return names
}

// LogicalPropertyGroup maps resolver names to member properties, split
// into the logical and physical halves of one group. The group's kind is
// locked by its first member.
type LogicalPropertyGroup struct {
	Name     string
	Kind     GroupKind
	Logical  map[string]*Property
	Physical map[string]*Property
}

func newLogicalPropertyGroup(name string) *LogicalPropertyGroup {
	return &LogicalPropertyGroup{
		Name:     name,
		Logical:  map[string]*Property{},
		Physical: map[string]*Property{},
	}
}

func (g *LogicalPropertyGroup) add(p *Property, resolver, path string) error {
	info, known := resolvers[resolver]
	if !known {
		return unknownResolverError(path, resolver)
	}
	if len(g.Logical)+len(g.Physical) > 0 && info.kind != g.Kind {
		return mixedResolverKindError(path, g.Name, resolver)
	}
	g.Kind = info.kind

	slots := g.Physical
	if info.logical {
		slots = g.Logical
	}
	if _, taken := slots[resolver]; taken {
		return duplicateResolverError(path, g.Name, resolver)
	}
	for _, member := range g.Logical {
		if member == p {
			return groupMembershipError(path, p.Name.Text, g.Name)
		}
	}
	for _, member := range g.Physical {
		if member == p {
			return groupMembershipError(path, p.Name.Text, g.Name)
		}
	}
	slots[resolver] = p
	return nil
}

// Resolve returns the member property for a resolver name, looking at the
// half the resolver belongs to.
func (g *LogicalPropertyGroup) Resolve(resolver string) *Property {
	info, known := resolvers[resolver]
	if !known {
		return nil
	}
	if info.logical {
		return g.Logical[resolver]
	}
	return g.Physical[resolver]
}
