package sessionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FishWY/lunwen-workspace/internal/pkg/logger"
)

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = noopLogger{}

func TestDebouncedSaverCoalesces(t *testing.T) {
	s := newTestStore(t)
	d := NewDebouncedSaver(s, noopLogger{}, 30*time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Save(&Session{ID: "sess-1", Title: "draft"})
	}
	d.Save(&Session{ID: "sess-1", Title: "final"})

	got, err := s.Load("sess-1")
	require.NoError(t, err)
	assert.Nil(t, got, "nothing written inside the window")

	time.Sleep(80 * time.Millisecond)

	got, err = s.Load("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "final", got.Title, "last snapshot wins")
}

func TestDebouncedSaverFlush(t *testing.T) {
	s := newTestStore(t)
	d := NewDebouncedSaver(s, noopLogger{}, time.Minute)

	d.Save(&Session{ID: "a", Title: "A"})
	d.Save(&Session{ID: "b", Title: "B"})
	d.Flush()

	for _, id := range []string{"a", "b"} {
		got, err := s.Load(id)
		require.NoError(t, err)
		assert.NotNil(t, got)
	}
}
