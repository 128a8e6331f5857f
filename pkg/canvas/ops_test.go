package canvas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainGraph() Graph {
	// A -> B, B -> C, C -> D, B -> E
	return Graph{
		Nodes: []Node{
			{ID: "A", Type: NodeTypeFile, Data: NodeData{Label: "doc.pdf"}},
			{ID: "B", Type: NodeTypeTopic, Data: NodeData{Label: "Root"}},
			{ID: "C", Type: NodeTypeTopic, Data: NodeData{Label: "Child"}},
			{ID: "D", Type: NodeTypeTopic, Data: NodeData{Label: "Grandchild"}},
			{ID: "E", Type: NodeTypeTopic, Data: NodeData{Label: "Sibling"}},
		},
		Edges: []Edge{
			{ID: "eA-B", Source: "A", Target: "B"},
			{ID: "eB-C", Source: "B", Target: "C"},
			{ID: "eC-D", Source: "C", Target: "D"},
			{ID: "eB-E", Source: "B", Target: "E"},
		},
	}
}

func TestIsDoubleClick(t *testing.T) {
	now := time.Now()
	assert.True(t, IsDoubleClick(now, now.Add(200*time.Millisecond)))
	assert.False(t, IsDoubleClick(now, now.Add(300*time.Millisecond)))
	assert.False(t, IsDoubleClick(now, now.Add(time.Second)))
}

func TestSelect(t *testing.T) {
	g := chainGraph()

	g = Select(g, "C")
	assert.Equal(t, "C", g.Selected)

	g = Select(g, "missing")
	assert.Empty(t, g.Selected)

	g = Select(g, "B")
	g = Deselect(g)
	assert.Empty(t, g.Selected)
}

func TestAddNote(t *testing.T) {
	g := chainGraph()
	before := len(g.Nodes)

	g2, note := AddNote(g, Position{X: 10, Y: 20})

	assert.Len(t, g.Nodes, before, "original graph untouched")
	require.Len(t, g2.Nodes, before+1)
	assert.Equal(t, NodeTypeNote, note.Type)
	assert.Equal(t, Position{X: 10, Y: 20}, note.Position)
	assert.Equal(t, note.ID, g2.Selected)
}

func TestDeleteNode(t *testing.T) {
	g := Select(chainGraph(), "C")

	g2 := DeleteNode(g, "C")

	_, found := g2.FindNode("C")
	assert.False(t, found)
	assert.Empty(t, g2.Selected)
	for _, e := range g2.Edges {
		assert.NotEqual(t, "C", e.Source)
		assert.NotEqual(t, "C", e.Target)
	}
	// Orphaned descendants survive a single-node delete.
	_, found = g2.FindNode("D")
	assert.True(t, found)
}

func TestDeleteBranch(t *testing.T) {
	t.Run("RemovesReachableSubtree", func(t *testing.T) {
		g := Select(chainGraph(), "B")

		g2 := DeleteBranch(g, "B")

		require.Len(t, g2.Nodes, 1)
		assert.Equal(t, "A", g2.Nodes[0].ID)
		assert.Empty(t, g2.Edges)
		assert.Empty(t, g2.Selected)
	})

	t.Run("CycleTerminates", func(t *testing.T) {
		g := chainGraph()
		g.Edges = append(g.Edges, Edge{ID: "eD-B", Source: "D", Target: "B"})

		g2 := DeleteBranch(g, "B")

		require.Len(t, g2.Nodes, 1)
		assert.Equal(t, "A", g2.Nodes[0].ID)
	})

	t.Run("LeafOnly", func(t *testing.T) {
		g2 := DeleteBranch(chainGraph(), "E")
		assert.Len(t, g2.Nodes, 4)
		assert.Len(t, g2.Edges, 3)
	})
}

func TestCopyText(t *testing.T) {
	assert.Equal(t, "full text", CopyText(Node{Data: NodeData{Label: "L", Content: "full text"}}))
	assert.Equal(t, "L", CopyText(Node{Data: NodeData{Label: "L"}}))
}

func TestBeginAndResolveElaboration(t *testing.T) {
	g := chainGraph()

	g2, placeholderID, ok := BeginElaboration(g, "C")
	require.True(t, ok)

	placeholder, found := g2.FindNode(placeholderID)
	require.True(t, found)
	assert.Equal(t, NodeTypeGeneration, placeholder.Type)

	lastEdge := g2.Edges[len(g2.Edges)-1]
	assert.Equal(t, "C", lastEdge.Source)
	assert.Equal(t, placeholderID, lastEdge.Target)
	assert.True(t, lastEdge.Animated)

	g3 := ResolveElaboration(g2, placeholderID, "Deep Dive", "explanation text")
	resolved, found := g3.FindNode(placeholderID)
	require.True(t, found)
	assert.Equal(t, NodeTypeSummary, resolved.Type)
	assert.Equal(t, "explanation text", resolved.Data.Content)
	assert.Len(t, g3.Edges, len(g2.Edges), "edges untouched by resolve")

	t.Run("UnknownSource", func(t *testing.T) {
		_, _, ok := BeginElaboration(g, "nope")
		assert.False(t, ok)
	})
}
