package canvas

import "github.com/google/uuid"

// Offset of an elaboration node relative to the node it elaborates.
const (
	elaborateOffsetX = 340.0
	elaborateOffsetY = 60.0
)

// BeginElaboration inserts an animated "generating" placeholder linked from
// the given node. The returned placeholder id is the handle the caller must
// later pass to ResolveElaboration; the placeholder is never meant to
// survive a session.
func BeginElaboration(g Graph, sourceID string) (Graph, string, bool) {
	source, ok := g.FindNode(sourceID)
	if !ok {
		return g, "", false
	}

	placeholder := Node{
		ID:   "gen-" + uuid.NewString(),
		Type: NodeTypeGeneration,
		Position: Position{
			X: source.Position.X + elaborateOffsetX,
			Y: source.Position.Y + elaborateOffsetY,
		},
		Data: NodeData{Label: "Thinking..."},
	}
	g.Nodes = append(copyNodes(g.Nodes), placeholder)
	g.Edges = append(copyEdges(g.Edges), Edge{
		ID:       "e" + sourceID + "-" + placeholder.ID,
		Source:   sourceID,
		Target:   placeholder.ID,
		Animated: true,
	})
	return g, placeholder.ID, true
}

// ResolveElaboration swaps the placeholder in place for a summary node
// carrying the generated content. On failure pass the error text as content;
// a stuck spinner is worse than a visible error. Edges keep pointing at the
// same id, so only the node entry changes.
func ResolveElaboration(g Graph, placeholderID, label, content string) Graph {
	nodes := copyNodes(g.Nodes)
	for i, n := range nodes {
		if n.ID != placeholderID {
			continue
		}
		nodes[i].Type = NodeTypeSummary
		nodes[i].Data = NodeData{Label: label, Content: content}
		break
	}
	g.Nodes = nodes
	return g
}
