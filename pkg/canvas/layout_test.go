package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	g := chainGraph()

	t.Run("LayersProgressLeftToRight", func(t *testing.T) {
		out := Layout(g.Nodes, g.Edges)
		require.Len(t, out, len(g.Nodes))

		pos := make(map[string]Position)
		for _, n := range out {
			pos[n.ID] = n.Position
		}
		assert.Less(t, pos["A"].X, pos["B"].X)
		assert.Less(t, pos["B"].X, pos["C"].X)
		assert.Less(t, pos["C"].X, pos["D"].X)
		assert.Equal(t, pos["C"].X, pos["E"].X)
	})

	t.Run("SiblingsDoNotOverlap", func(t *testing.T) {
		out := Layout(g.Nodes, g.Edges)
		var c, e Position
		for _, n := range out {
			switch n.ID {
			case "C":
				c = n.Position
			case "E":
				e = n.Position
			}
		}
		assert.NotEqual(t, c.Y, e.Y)
	})

	t.Run("Idempotent", func(t *testing.T) {
		once := Layout(g.Nodes, g.Edges)
		twice := Layout(once, g.Edges)
		assert.Equal(t, once, twice)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Nil(t, Layout(nil, nil))
	})
}
