// Package canvas implements the client-side graph editing operations of a
// workspace: selection, deletion, ad-hoc notes, AI elaboration placeholders
// and export. All operations are pure: they take a graph and return a new
// one, so callers never share mutable node state between views.
package canvas

// Node type tags.
const (
	NodeTypeFile       = "file"
	NodeTypeTopic      = "topic"
	NodeTypeSummary    = "summary"
	NodeTypeNote       = "note"
	NodeTypeReference  = "reference"
	NodeTypeGeneration = "generation"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeData struct {
	Label   string `json:"label,omitempty"`
	Content string `json:"content,omitempty"`
	Quote   string `json:"quote,omitempty"`
	Page    int    `json:"page,omitempty"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Animated bool   `json:"animated,omitempty"`
}

// Graph is the working copy a canvas session edits. Selected holds the id of
// the selected node, empty when nothing is selected.
type Graph struct {
	Nodes    []Node
	Edges    []Edge
	Selected string
}

func (g Graph) FindNode(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// ChildMap derives source -> ordered targets from the edge list.
func ChildMap(edges []Edge) map[string][]string {
	children := make(map[string][]string)
	for _, e := range edges {
		children[e.Source] = append(children[e.Source], e.Target)
	}
	return children
}
