package sessionstore

import (
	"sync"
	"time"

	"github.com/FishWY/lunwen-workspace/internal/pkg/logger"
)

// DefaultDebounce matches the save cadence of the canvas editor: rapid node
// drags collapse into a single write about a second later.
const DefaultDebounce = time.Second

// DebouncedSaver coalesces bursts of Save calls into one store write per
// session. Writes are fire-and-forget; a failed write is logged and the
// in-memory session stays authoritative.
type DebouncedSaver struct {
	store *Store
	log   logger.ILogger
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
}

type pendingSave struct {
	timer   *time.Timer
	session *Session
}

func NewDebouncedSaver(store *Store, log logger.ILogger, delay time.Duration) *DebouncedSaver {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &DebouncedSaver{
		store:   store,
		log:     log,
		delay:   delay,
		pending: make(map[string]*pendingSave),
	}
}

// Save schedules session for writing. A second call for the same id within
// the window replaces the queued snapshot and restarts the timer.
func (d *DebouncedSaver) Save(session *Session) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[session.ID]; ok {
		p.session = session
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingSave{session: session}
	p.timer = time.AfterFunc(d.delay, func() {
		d.flush(session.ID)
	})
	d.pending[session.ID] = p
}

// Flush writes every queued session immediately. Call on shutdown.
func (d *DebouncedSaver) Flush() {
	d.mu.Lock()
	ids := make([]string, 0, len(d.pending))
	for id, p := range d.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	d.mu.Unlock()

	for _, id := range ids {
		d.flush(id)
	}
}

func (d *DebouncedSaver) flush(id string) {
	d.mu.Lock()
	p, ok := d.pending[id]
	if !ok {
		d.mu.Unlock()
		return
	}
	delete(d.pending, id)
	session := p.session
	d.mu.Unlock()

	if err := d.store.Save(session); err != nil {
		d.log.Error("sessionstore", "debounced session save failed", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
	}
}
