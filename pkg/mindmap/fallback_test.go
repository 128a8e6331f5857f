package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallback(t *testing.T) {
	t.Run("OneChildPerPage", func(t *testing.T) {
		text := "[Page 1]\nIntroduction begins here. More text follows.\n\n" +
			"[Page 2]\nMethods are described. Details continue.\n\n" +
			"[Page 3]\nResults appear last.\n\n"

		tree := Fallback(text)
		assert.Equal(t, "Document Overview", tree.Root)
		require.Len(t, tree.Children, 3)

		assert.Equal(t, "Page 1", tree.Children[0].Label)
		assert.Equal(t, 1, tree.Children[0].Page)
		assert.Equal(t, "Introduction begins here.", tree.Children[0].Quote)

		assert.Equal(t, "Page 2", tree.Children[1].Label)
		assert.Equal(t, "Methods are described.", tree.Children[1].Quote)
	})

	t.Run("CapsAtFourPages", func(t *testing.T) {
		text := ""
		for i := 1; i <= 7; i++ {
			text += "[Page " + string(rune('0'+i)) + "]\nPage body text.\n\n"
		}
		tree := Fallback(text)
		assert.Len(t, tree.Children, 4)
	})

	t.Run("ChineseSentenceTerminator", func(t *testing.T) {
		text := "[Page 1]\n注意力机制是本文的核心贡献。后续章节展开细节。\n\n"
		tree := Fallback(text)
		require.Len(t, tree.Children, 1)
		assert.Equal(t, "注意力机制是本文的核心贡献。", tree.Children[0].Quote)
	})

	t.Run("NoMarkersYieldsPlaceholder", func(t *testing.T) {
		tree := Fallback("plain text without any markers")
		require.Len(t, tree.Children, 1)
		assert.Equal(t, "No extractable text", tree.Children[0].Label)
		assert.Equal(t, 1, tree.Children[0].Page)
		assert.Empty(t, tree.Children[0].Quote)
	})

	t.Run("LongSentencelessTextTruncatedByRunes", func(t *testing.T) {
		body := ""
		for i := 0; i < 200; i++ {
			body += "字"
		}
		tree := Fallback("[Page 1]\n" + body + "\n\n")
		require.Len(t, tree.Children, 1)
		assert.Equal(t, 120, len([]rune(tree.Children[0].Quote)))
	})
}
