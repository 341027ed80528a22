package services

import (
	"context"
	"log"
	"sync"
	"time"

	"chat-gateway/internal/models"
)

// HistoryStore persists answered exchanges. Implementations only append.
type HistoryStore interface {
	Record(ctx context.Context, entry models.HistoryEntry) (models.RecordID, error)
}

// HistoryRecorder writes entries to a HistoryStore from a single background
// goroutine. Enqueue never blocks and never fails the caller.
type HistoryRecorder struct {
	store        HistoryStore
	queue        chan models.HistoryEntry
	writeTimeout time.Duration
	done         chan struct{}
	closeOnce    sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewHistoryRecorder(store HistoryStore, queueSize int) *HistoryRecorder {
	if queueSize <= 0 {
		queueSize = 100
	}
	r := &HistoryRecorder{
		store:        store,
		queue:        make(chan models.HistoryEntry, queueSize),
		writeTimeout: 10 * time.Second,
		done:         make(chan struct{}),
	}
	go r.run()
	return r
}

// Enqueue hands entry to the writer. It reports false when the entry was
// dropped because the queue is full or the recorder is closed.
func (r *HistoryRecorder) Enqueue(entry models.HistoryEntry) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return false
	}

	select {
	case r.queue <- entry:
		return true
	default:
		log.Printf("history: queue full, dropping entry for request %s", entry.RequestID)
		return false
	}
}

// Close stops accepting entries and waits until queued ones are written.
func (r *HistoryRecorder) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.closed = true
		close(r.queue)
		r.mu.Unlock()
	})
	<-r.done
}

func (r *HistoryRecorder) run() {
	defer close(r.done)
	for entry := range r.queue {
		r.write(entry)
	}
}

func (r *HistoryRecorder) write(entry models.HistoryEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), r.writeTimeout)
	defer cancel()

	id, err := r.store.Record(ctx, entry)
	if err != nil {
		log.Printf("history: failed to record request %s: %v", entry.RequestID, err)
		return
	}
	log.Printf("history: recorded %s for request %s", id, entry.RequestID)
}
