package canvas

import (
	"strings"
)

const exportLabelMax = 100

// ExportMarkdown renders the graph as an indented bullet outline. Each root
// (node with no incoming edge) becomes a `#` heading followed by its subtree.
// Traversal keeps a visited set, so shared children print once and cycles
// terminate. Labels longer than 100 runes are truncated with an ellipsis.
func ExportMarkdown(nodes []Node, edges []Edge) string {
	if len(nodes) == 0 {
		return ""
	}

	incoming := make(map[string]int)
	for _, e := range edges {
		incoming[e.Target]++
	}
	children := ChildMap(edges)
	byID := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}

	var b strings.Builder
	visited := make(map[string]bool)

	for _, n := range nodes {
		if incoming[n.ID] > 0 || visited[n.ID] {
			continue
		}
		visited[n.ID] = true
		b.WriteString("# ")
		b.WriteString(exportLabel(n))
		b.WriteString("\n\n")
		for _, child := range children[n.ID] {
			writeOutline(&b, child, 0, byID, children, visited)
		}
	}
	return b.String()
}

func writeOutline(b *strings.Builder, id string, depth int, byID map[string]Node, children map[string][]string, visited map[string]bool) {
	if visited[id] {
		return
	}
	visited[id] = true

	n, ok := byID[id]
	if !ok {
		return
	}

	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("- ")
	b.WriteString(exportLabel(n))
	b.WriteString("\n")

	for _, child := range children[id] {
		writeOutline(b, child, depth+1, byID, children, visited)
	}
}

func exportLabel(n Node) string {
	label := strings.TrimSpace(n.Data.Label)
	if label == "" {
		label = strings.TrimSpace(n.Data.Content)
	}
	if label == "" {
		label = "(untitled)"
	}
	runes := []rune(label)
	if len(runes) > exportLabelMax {
		label = string(runes[:exportLabelMax]) + "..."
	}
	return label
}
