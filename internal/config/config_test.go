package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("ReadsEnvironment", func(t *testing.T) {
		t.Setenv("SESSION_STORE_PATH", "custom.db")
		t.Setenv("MINDMAP_TEXT_CAP", "1000")

		cfg := Load()
		assert.Equal(t, "custom.db", cfg.Keys.SessionStorePath)
		assert.Equal(t, 1000, cfg.Ai.MindmapTextCap)
	})

	t.Run("FallsBackToDefaults", func(t *testing.T) {
		t.Setenv("DEEPDIVE_TEXT_CAP", "not-a-number")

		cfg := Load()
		assert.Equal(t, 8000, cfg.Ai.DeepDiveTextCap)
	})
}
