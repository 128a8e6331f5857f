package sessionstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FishWY/lunwen-workspace/pkg/canvas"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)

	session := &Session{
		ID:          "sess-1",
		Title:       "attention.pdf",
		PDF:         []byte("%PDF-1.4 fake"),
		WorkspaceID: "ws-1",
		Nodes: []canvas.Node{
			{ID: "file-1", Type: canvas.NodeTypeFile, Data: canvas.NodeData{Label: "attention.pdf"}},
			{ID: "topic-1", Type: canvas.NodeTypeTopic, Data: canvas.NodeData{Label: "注意力", Quote: "Attention is all you need.", Page: 1}},
		},
		Edges:       []canvas.Edge{{ID: "e1", Source: "file-1", Target: "topic-1", Animated: true}},
		ChatHistory: []ChatMessage{{Role: "user", Content: "summarize page 1"}},
	}
	require.NoError(t, s.Save(session))

	got, err := s.Load("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session.Title, got.Title)
	assert.Equal(t, session.PDF, got.PDF)
	assert.Equal(t, session.Nodes, got.Nodes)
	assert.Equal(t, session.Edges, got.Edges)
	assert.Equal(t, session.ChatHistory, got.ChatHistory)
	assert.False(t, got.LastModified.IsZero())
}

func TestStoreLoadMissing(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Load("no-such-id")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreSaveIsUpsert(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Session{ID: "sess-1", Title: "v1"}))
	require.NoError(t, s.Save(&Session{ID: "sess-1", Title: "v2"}))

	got, err := s.Load("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Title)

	metas, err := s.Metadata()
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "v2", metas[0].Title)
}

func TestStoreMetadataNewestFirst(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Session{ID: "old", Title: "old"}))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Save(&Session{ID: "new", Title: "new"}))

	metas, err := s.Metadata()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "new", metas[0].ID)
	assert.Equal(t, "old", metas[1].ID)

	ids, err := s.IDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "old"}, ids)
}

func TestStoreDelete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Session{ID: "sess-1", Title: "t"}))
	require.NoError(t, s.Delete("sess-1"))

	got, err := s.Load("sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	metas, err := s.Metadata()
	require.NoError(t, err)
	assert.Empty(t, metas)

	assert.NoError(t, s.Delete("sess-1"), "double delete is fine")
}

func TestStoreAppendChat(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(&Session{ID: "sess-1", Title: "t"}))
	require.NoError(t, s.AppendChat("sess-1", ChatMessage{Role: "user", Content: "hi"}))
	require.NoError(t, s.AppendChat("sess-1", ChatMessage{Role: "assistant", Content: "Hello"}))

	got, err := s.Load("sess-1")
	require.NoError(t, err)
	require.Len(t, got.ChatHistory, 2)
	assert.Equal(t, "Hello", got.ChatHistory[1].Content)

	assert.Error(t, s.AppendChat("missing", ChatMessage{Role: "user", Content: "x"}))
}
