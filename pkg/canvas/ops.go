package canvas

import (
	"time"

	"github.com/google/uuid"
)

// DoubleClickWindow is how close two clicks must land to count as one
// double-click.
const DoubleClickWindow = 300 * time.Millisecond

// IsDoubleClick reports whether a click at now, following one at prev,
// completes a double-click.
func IsDoubleClick(prev, now time.Time) bool {
	return now.Sub(prev) < DoubleClickWindow
}

// Select marks the node as selected. Selecting an id that is not in the
// graph clears the selection instead of pointing at a ghost.
func Select(g Graph, id string) Graph {
	if _, ok := g.FindNode(id); !ok {
		g.Selected = ""
		return g
	}
	g.Selected = id
	return g
}

func Deselect(g Graph) Graph {
	g.Selected = ""
	return g
}

// AddNote drops an empty editable note at the given canvas position and
// selects it.
func AddNote(g Graph, pos Position) (Graph, Node) {
	note := Node{
		ID:       "note-" + uuid.NewString(),
		Type:     NodeTypeNote,
		Position: pos,
		Data:     NodeData{Label: "New Note", Content: ""},
	}
	g.Nodes = append(copyNodes(g.Nodes), note)
	g.Edges = copyEdges(g.Edges)
	g.Selected = note.ID
	return g, note
}

// DeleteNode removes one node and every edge touching it. Deleting the
// selected node clears the selection.
func DeleteNode(g Graph, id string) Graph {
	return deleteSet(g, map[string]bool{id: true})
}

// DeleteBranch removes the node and everything reachable from it through
// outgoing edges. Traversal keeps a visited set, so a cycle in the edge list
// cannot loop forever.
func DeleteBranch(g Graph, id string) Graph {
	children := ChildMap(g.Edges)

	doomed := make(map[string]bool)
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if doomed[cur] {
			continue
		}
		doomed[cur] = true
		queue = append(queue, children[cur]...)
	}
	return deleteSet(g, doomed)
}

// CopyText returns what a copy action should put on the clipboard: the
// node's content when it has any, otherwise its label.
func CopyText(n Node) string {
	if n.Data.Content != "" {
		return n.Data.Content
	}
	return n.Data.Label
}

func deleteSet(g Graph, doomed map[string]bool) Graph {
	nodes := make([]Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if !doomed[n.ID] {
			nodes = append(nodes, n)
		}
	}
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if !doomed[e.Source] && !doomed[e.Target] {
			edges = append(edges, e)
		}
	}
	g.Nodes = nodes
	g.Edges = edges
	if doomed[g.Selected] {
		g.Selected = ""
	}
	return g
}

func copyNodes(in []Node) []Node {
	out := make([]Node, len(in))
	copy(out, in)
	return out
}

func copyEdges(in []Edge) []Edge {
	out := make([]Edge, len(in))
	copy(out, in)
	return out
}
