package mindmap

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/FishWY/lunwen-workspace/pkg/canvas"
)

// Materialize flattens an outline tree into canvas nodes and edges hanging
// off fileNodeID. The tree root becomes a topic node directly under the file
// node; every outline entry becomes a topic node under its parent.
//
// A node with no page of its own inherits its parent's page, so a click on
// any node always scrolls the document viewer somewhere sensible. The root
// defaults to page 1.
func Materialize(tree *Tree, fileNodeID string) ([]canvas.Node, []canvas.Edge) {
	var nodes []canvas.Node
	var edges []canvas.Edge

	rootID := newTopicID()
	nodes = append(nodes, canvas.Node{
		ID:   rootID,
		Type: canvas.NodeTypeTopic,
		Data: canvas.NodeData{Label: tree.Root, Page: 1},
	})
	edges = append(edges, connect(fileNodeID, rootID))

	for _, child := range tree.Children {
		walk(child, rootID, 1, &nodes, &edges)
	}
	return nodes, edges
}

func walk(n *Node, parentID string, parentPage int, nodes *[]canvas.Node, edges *[]canvas.Edge) {
	page := n.Page
	if page <= 0 {
		page = parentPage
	}

	id := newTopicID()
	*nodes = append(*nodes, canvas.Node{
		ID:   id,
		Type: canvas.NodeTypeTopic,
		Data: canvas.NodeData{
			Label: n.Label,
			Quote: n.Quote,
			Page:  page,
		},
	})
	*edges = append(*edges, connect(parentID, id))

	for _, child := range n.Children {
		walk(child, id, page, nodes, edges)
	}
}

func newTopicID() string {
	return "topic-" + uuid.NewString()
}

func connect(source, target string) canvas.Edge {
	return canvas.Edge{
		ID:       fmt.Sprintf("e%s-%s", source, target),
		Source:   source,
		Target:   target,
		Animated: true,
	}
}
