package nodegraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegrid/internal/document"
	"github.com/vk/framegrid/internal/evalerr"
	"github.com/vk/framegrid/internal/nodegraph"
	"github.com/vk/framegrid/internal/testutil"
	"github.com/vk/framegrid/internal/value"
)

func chain(ids ...string) []*document.Node {
	nodes := []*document.Node{testutil.NumInput(ids[0], 1)}
	for i := 1; i < len(ids); i++ {
		nodes = append(nodes, testutil.Node(ids[i], "num_cap",
			[]document.Input{testutil.Ref("v", value.TypeNumber, ids[i-1], 0), testutil.Lit("min", 0), testutil.Lit("max", 10)},
			testutil.Out("v", value.TypeNumber)))
	}
	return nodes
}

func TestOrder(t *testing.T) {
	t.Run("chain is ordered dependencies first", func(t *testing.T) {
		g := testutil.NewGraph("g", "l", chain("a", "b", "c")...)
		order, err := nodegraph.Order(g, []string{"c"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, order)
	})

	t.Run("shared dependency is visited once", func(t *testing.T) {
		g := testutil.NewGraph("g", "l",
			testutil.NumInput("a", 1),
			testutil.Node("b", "deg_to_rad", []document.Input{testutil.Ref("v", value.TypeNumber, "a", 0)}, testutil.Out("v", value.TypeNumber)),
			testutil.Node("c", "rad_to_deg", []document.Input{testutil.Ref("v", value.TypeNumber, "a", 0)}, testutil.Out("v", value.TypeNumber)),
			testutil.Node("d", "num_lerp", []document.Input{
				testutil.Ref("a", value.TypeNumber, "b", 0),
				testutil.Ref("b", value.TypeNumber, "c", 0),
				testutil.Lit("t", 0.5),
			}, testutil.Out("v", value.TypeNumber)),
		)
		order, err := nodegraph.Order(g, []string{"d", "b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c", "d"}, order)
	})

	t.Run("unreferenced nodes are not visited", func(t *testing.T) {
		nodes := append(chain("a", "b"), testutil.NumInput("unused", 3))
		g := testutil.NewGraph("g", "l", nodes...)
		order, err := nodegraph.Order(g, []string{"b"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, order)
	})

	t.Run("cycle is reported with its path", func(t *testing.T) {
		nodes := chain("a", "b", "c")
		nodes[0] = testutil.Node("a", "num_cap",
			[]document.Input{testutil.Ref("v", value.TypeNumber, "c", 0)}, testutil.Out("v", value.TypeNumber))
		g := testutil.NewGraph("g", "l", nodes...)

		_, err := nodegraph.Order(g, []string{"c"})
		require.ErrorIs(t, err, evalerr.ErrCyclicGraph)
		assert.Contains(t, err.Error(), "c -> b -> a -> c")

		var e *evalerr.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "g", e.GraphID)
		assert.Equal(t, "c", e.NodeID)
	})

	t.Run("self reference is a cycle", func(t *testing.T) {
		g := testutil.NewGraph("g", "l", testutil.Node("a", "num_cap",
			[]document.Input{testutil.Ref("v", value.TypeNumber, "a", 0)}, testutil.Out("v", value.TypeNumber)))
		_, err := nodegraph.Order(g, []string{"a"})
		assert.ErrorIs(t, err, evalerr.ErrCyclicGraph)
	})

	t.Run("pointer to missing node", func(t *testing.T) {
		g := testutil.NewGraph("g", "l", testutil.Node("a", "num_cap",
			[]document.Input{testutil.Ref("v", value.TypeNumber, "ghost", 0)}, testutil.Out("v", value.TypeNumber)))
		_, err := nodegraph.Order(g, []string{"a"})
		require.ErrorIs(t, err, evalerr.ErrMissingPointer)
		assert.Contains(t, err.Error(), `node="a"`)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("missing root", func(t *testing.T) {
		g := testutil.NewGraph("g", "l")
		_, err := nodegraph.Order(g, []string{"nope"})
		assert.ErrorIs(t, err, evalerr.ErrMissingPointer)
	})
}
