package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeResponse(t *testing.T) {
	t.Run("StripsMarkdownFences", func(t *testing.T) {
		raw := "```json\n{\"root\": \"X\"}\n```"
		assert.Equal(t, `{"root": "X"}`, SanitizeResponse(raw))
	})

	t.Run("SlicesSurroundingCommentary", func(t *testing.T) {
		raw := "Sure, here is the outline:\n{\"root\": \"X\"}\nHope this helps!"
		assert.Equal(t, `{"root": "X"}`, SanitizeResponse(raw))
	})

	t.Run("LeavesCleanJSONAlone", func(t *testing.T) {
		raw := `{"root": "X", "children": []}`
		assert.Equal(t, raw, SanitizeResponse(raw))
	})
}

func TestParseTree(t *testing.T) {
	t.Run("ValidResponse", func(t *testing.T) {
		raw := `{
			"root": "Attention Is All You Need",
			"children": [
				{"label": "Architecture", "quote": "The Transformer follows this overall architecture.", "page": 3,
				 "children": [{"label": "Encoder", "quote": "The encoder is composed of a stack of N = 6 identical layers.", "page": 3}]}
			]
		}`
		tree, err := ParseTree(raw)
		require.NoError(t, err)
		assert.Equal(t, "Attention Is All You Need", tree.Root)
		require.Len(t, tree.Children, 1)
		require.Len(t, tree.Children[0].Children, 1)
		assert.Equal(t, 3, tree.Children[0].Children[0].Page)
	})

	t.Run("DropsUnlabeledNodesWithSubtree", func(t *testing.T) {
		raw := `{"root": "R", "children": [
			{"label": "Kept", "page": 1},
			{"label": "  ", "page": 2, "children": [{"label": "Orphan", "page": 2}]}
		]}`
		tree, err := ParseTree(raw)
		require.NoError(t, err)
		require.Len(t, tree.Children, 1)
		assert.Equal(t, "Kept", tree.Children[0].Label)
	})

	t.Run("CoercesNegativePageToAbsent", func(t *testing.T) {
		raw := `{"root": "R", "children": [{"label": "A", "page": -3}]}`
		tree, err := ParseTree(raw)
		require.NoError(t, err)
		assert.Equal(t, 0, tree.Children[0].Page)
	})

	t.Run("EmptyRootIsError", func(t *testing.T) {
		_, err := ParseTree(`{"root": "", "children": [{"label": "A"}]}`)
		assert.Error(t, err)
	})

	t.Run("NoChildrenIsError", func(t *testing.T) {
		_, err := ParseTree(`{"root": "R", "children": []}`)
		assert.Error(t, err)
	})

	t.Run("MalformedJSONIsError", func(t *testing.T) {
		_, err := ParseTree(`not json at all`)
		assert.Error(t, err)
	})
}
