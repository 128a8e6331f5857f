package mindmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FishWY/lunwen-workspace/pkg/canvas"
)

func TestMaterialize(t *testing.T) {
	tree := &Tree{
		Root: "Paper",
		Children: []*Node{
			{
				Label: "Background",
				Quote: "Prior work relies on recurrence.",
				Page:  2,
				Children: []*Node{
					{Label: "Motivation", Quote: "Sequential computation precludes parallelization."},
				},
			},
			{Label: "Conclusion", Page: 9},
		},
	}

	nodes, edges := Materialize(tree, "file-1")

	require.Len(t, nodes, 4)
	require.Len(t, edges, 4)

	root := nodes[0]
	assert.Equal(t, "Paper", root.Data.Label)
	assert.Equal(t, canvas.NodeTypeTopic, root.Type)
	assert.Equal(t, 1, root.Data.Page)
	assert.True(t, strings.HasPrefix(root.ID, "topic-"))

	t.Run("RootHangsOffFileNode", func(t *testing.T) {
		assert.Equal(t, "file-1", edges[0].Source)
		assert.Equal(t, root.ID, edges[0].Target)
		assert.True(t, edges[0].Animated)
		assert.Equal(t, "efile-1-"+root.ID, edges[0].ID)
	})

	t.Run("ChildWithoutPageInheritsParent", func(t *testing.T) {
		background := nodes[1]
		motivation := nodes[2]
		assert.Equal(t, 2, background.Data.Page)
		assert.Equal(t, 2, motivation.Data.Page)
	})

	t.Run("ExplicitPageWins", func(t *testing.T) {
		assert.Equal(t, 9, nodes[3].Data.Page)
	})

	t.Run("EdgesFollowHierarchy", func(t *testing.T) {
		assert.Equal(t, root.ID, edges[1].Source)
		assert.Equal(t, nodes[1].ID, edges[1].Target)
		assert.Equal(t, nodes[1].ID, edges[2].Source)
		assert.Equal(t, nodes[2].ID, edges[2].Target)
	})

	t.Run("IDsAreUnique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, n := range nodes {
			assert.False(t, seen[n.ID])
			seen[n.ID] = true
		}
	})
}
