package pdf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitTextSize(t *testing.T) {
	t.Run("short text is returned unchanged", func(t *testing.T) {
		text := "[Page 1]\nHello world.\n\n"
		assert.Equal(t, text, LimitTextSize(text, 1000))
	})

	t.Run("exact length is identity", func(t *testing.T) {
		text := strings.Repeat("a", 50)
		assert.Equal(t, text, LimitTextSize(text, 50))
	})

	t.Run("cuts at page marker past 80 percent of budget", func(t *testing.T) {
		// Marker placed at 90% of the budget.
		prefix := strings.Repeat("x", 90)
		text := prefix + "[Page 2]\n" + strings.Repeat("y", 200)

		got := LimitTextSize(text, 100)
		assert.Equal(t, prefix, got)
		assert.False(t, strings.Contains(got, "[Page 2]"))
	})

	t.Run("hard cut when marker is early", func(t *testing.T) {
		// Marker at 10% of the budget: keeping it loses too much text.
		text := strings.Repeat("x", 10) + "[Page 2]\n" + strings.Repeat("y", 500)

		got := LimitTextSize(text, 100)
		assert.Len(t, got, 100)
	})

	t.Run("output never exceeds the budget", func(t *testing.T) {
		text := strings.Repeat("[Page 1]\nsome page text here\n\n", 100)
		got := LimitTextSize(text, 333)
		assert.LessOrEqual(t, len(got), 333)
	})
}
