package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamp-project/WebKit/registry"
)

// The example schema doubles as an integration fixture: it must load,
// validate, and generate without errors.
func TestExampleSchema(t *testing.T) {
	ctx, e := registry.Load("../examples/css-properties.yaml", "ENABLE_SCROLL_DRIVEN_ANIMATIONS")
	require.NoError(t, e)

	r := ctx.Registry
	require.NotNil(t, r.Lookup("scroll-timeline-name"))
	require.True(t, r.Lookup("border-top").IsShorthand())
	require.Len(t, r.LogicalGroups["overflow"].Physical, 2)
	require.Len(t, r.LogicalGroups["overflow"].Logical, 2)
	require.Empty(t, ctx.UnusedRules())

	require.NoError(t, GenerateAll(ctx, t.TempDir()))

	// Without the define the gated property disappears but generation
	// still succeeds.
	ctx, e = registry.Load("../examples/css-properties.yaml", "")
	require.NoError(t, e)
	require.Nil(t, ctx.Registry.Lookup("scroll-timeline-name"))
	require.NoError(t, GenerateAll(ctx, t.TempDir()))
}
