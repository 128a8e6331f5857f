package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportMarkdown(t *testing.T) {
	t.Run("RootHeadingAndIndentedBullets", func(t *testing.T) {
		g := chainGraph()
		md := ExportMarkdown(g.Nodes, g.Edges)

		assert.Equal(t, "# doc.pdf\n\n- Root\n  - Child\n    - Grandchild\n  - Sibling\n", md)
	})

	t.Run("ParentBeforeChildOrdering", func(t *testing.T) {
		g := chainGraph()
		md := ExportMarkdown(g.Nodes, g.Edges)

		assert.Less(t, strings.Index(md, "Root"), strings.Index(md, "Child"))
		assert.Less(t, strings.Index(md, "Child"), strings.Index(md, "Grandchild"))
	})

	t.Run("CycleTerminates", func(t *testing.T) {
		g := chainGraph()
		g.Edges = append(g.Edges, Edge{ID: "eD-B", Source: "D", Target: "B"})

		md := ExportMarkdown(g.Nodes, g.Edges)
		assert.Equal(t, 1, strings.Count(md, "- Root"))
	})

	t.Run("LongLabelTruncated", func(t *testing.T) {
		long := strings.Repeat("x", 150)
		nodes := []Node{{ID: "A", Data: NodeData{Label: long}}}

		md := ExportMarkdown(nodes, nil)
		assert.Contains(t, md, strings.Repeat("x", 100)+"...")
		assert.NotContains(t, md, strings.Repeat("x", 101))
	})

	t.Run("EmptyGraph", func(t *testing.T) {
		assert.Empty(t, ExportMarkdown(nil, nil))
	})
}
