// Package sessionstore persists reading sessions locally so a workspace can
// be reopened offline: the uploaded PDF bytes, the canvas graph and the chat
// transcript, keyed by session id. Backed by a single sqlite file.
package sessionstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/FishWY/lunwen-workspace/pkg/canvas"
)

// ChatMessage is one transcript entry. Role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is everything needed to restore a workspace tab.
type Session struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	PDF          []byte        `json:"-"`
	WorkspaceID  string        `json:"workspaceId,omitempty"`
	Nodes        []canvas.Node `json:"nodes"`
	Edges        []canvas.Edge `json:"edges"`
	ChatHistory  []ChatMessage `json:"chatHistory"`
	LastModified time.Time     `json:"lastModified"`
}

// Metadata is the listing projection; it never loads PDF or graph blobs.
type Metadata struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastModified time.Time `json:"lastModified"`
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	pdf           BLOB,
	workspace_id  TEXT NOT NULL DEFAULT '',
	nodes         TEXT NOT NULL DEFAULT '[]',
	edges         TEXT NOT NULL DEFAULT '[]',
	chat_history  TEXT NOT NULL DEFAULT '[]',
	last_modified INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS session_metadata (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	last_modified INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_metadata_modified
	ON session_metadata (last_modified DESC);
`

type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store file. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the full session and its metadata row in one transaction.
// LastModified is stamped here, not by the caller.
func (s *Store) Save(session *Session) error {
	session.LastModified = time.Now()

	nodes, err := json.Marshal(orEmptyNodes(session.Nodes))
	if err != nil {
		return fmt.Errorf("encode nodes: %w", err)
	}
	edges, err := json.Marshal(orEmptyEdges(session.Edges))
	if err != nil {
		return fmt.Errorf("encode edges: %w", err)
	}
	chat, err := json.Marshal(orEmptyChat(session.ChatHistory))
	if err != nil {
		return fmt.Errorf("encode chat history: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := session.LastModified.UnixMilli()
	_, err = tx.Exec(`
		INSERT INTO sessions (id, title, pdf, workspace_id, nodes, edges, chat_history, last_modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			pdf = excluded.pdf,
			workspace_id = excluded.workspace_id,
			nodes = excluded.nodes,
			edges = excluded.edges,
			chat_history = excluded.chat_history,
			last_modified = excluded.last_modified`,
		session.ID, session.Title, session.PDF, session.WorkspaceID,
		string(nodes), string(edges), string(chat), ts)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO session_metadata (id, title, last_modified)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			last_modified = excluded.last_modified`,
		session.ID, session.Title, ts)
	if err != nil {
		return fmt.Errorf("save session metadata: %w", err)
	}
	return tx.Commit()
}

// Load returns the full session, or (nil, nil) when the id is unknown.
func (s *Store) Load(id string) (*Session, error) {
	row := s.db.QueryRow(`
		SELECT id, title, pdf, workspace_id, nodes, edges, chat_history, last_modified
		FROM sessions WHERE id = ?`, id)

	var (
		sess       Session
		nodesJSON  string
		edgesJSON  string
		chatJSON   string
		modifiedMs int64
	)
	err := row.Scan(&sess.ID, &sess.Title, &sess.PDF, &sess.WorkspaceID,
		&nodesJSON, &edgesJSON, &chatJSON, &modifiedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if err := json.Unmarshal([]byte(nodesJSON), &sess.Nodes); err != nil {
		return nil, fmt.Errorf("decode nodes: %w", err)
	}
	if err := json.Unmarshal([]byte(edgesJSON), &sess.Edges); err != nil {
		return nil, fmt.Errorf("decode edges: %w", err)
	}
	if err := json.Unmarshal([]byte(chatJSON), &sess.ChatHistory); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}
	sess.LastModified = time.UnixMilli(modifiedMs)
	return &sess, nil
}

// Delete removes the session and its metadata row. Deleting an unknown id is
// not an error.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM session_metadata WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session metadata: %w", err)
	}
	return tx.Commit()
}

// Metadata lists all sessions newest first without touching the blob table.
func (s *Store) Metadata() ([]Metadata, error) {
	rows, err := s.db.Query(`
		SELECT id, title, last_modified
		FROM session_metadata ORDER BY last_modified DESC`)
	if err != nil {
		return nil, fmt.Errorf("list session metadata: %w", err)
	}
	defer rows.Close()

	var out []Metadata
	for rows.Next() {
		var m Metadata
		var modifiedMs int64
		if err := rows.Scan(&m.ID, &m.Title, &modifiedMs); err != nil {
			return nil, err
		}
		m.LastModified = time.UnixMilli(modifiedMs)
		out = append(out, m)
	}
	return out, rows.Err()
}

// IDs returns all stored session ids, newest first.
func (s *Store) IDs() ([]string, error) {
	metas, err := s.Metadata()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(metas))
	for _, m := range metas {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// AppendChat appends one message to the stored transcript. The caller builds
// assistant messages incrementally in memory and calls this once the stream
// finished; a stream that dies before its sentinel never reaches the store.
func (s *Store) AppendChat(id string, msg ChatMessage) error {
	sess, err := s.Load(id)
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("append chat: session %q not found", id)
	}
	sess.ChatHistory = append(sess.ChatHistory, msg)
	return s.Save(sess)
}

func orEmptyNodes(n []canvas.Node) []canvas.Node {
	if n == nil {
		return []canvas.Node{}
	}
	return n
}

func orEmptyEdges(e []canvas.Edge) []canvas.Edge {
	if e == nil {
		return []canvas.Edge{}
	}
	return e
}

func orEmptyChat(c []ChatMessage) []ChatMessage {
	if c == nil {
		return []ChatMessage{}
	}
	return c
}
