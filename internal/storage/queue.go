package storage

import (
	"context"
	"sync"
	"time"

	"grana/internal/common"
)

// SaveQueue decouples persistence from the synchronous mutators: callers
// enqueue a snapshot and move on. A failed save is logged and retried; it
// never rolls back or invalidates in-memory state.
type SaveQueue struct {
	storage  *SQLiteStorage
	requests chan Snapshot
	done     chan struct{}
	wg       sync.WaitGroup
	closed   bool
	mu       sync.Mutex
}

// NewSaveQueue starts the background save worker.
func NewSaveQueue(storage *SQLiteStorage, buffer int) *SaveQueue {
	if buffer < 1 {
		buffer = 8
	}
	q := &SaveQueue{
		storage:  storage,
		requests: make(chan Snapshot, buffer),
		done:     make(chan struct{}),
	}
	q.wg.Add(1)
	go q.run()
	return q
}

// Enqueue submits a snapshot for persistence without blocking. When the
// queue is full the oldest pending snapshot is dropped: only the newest
// state matters.
func (q *SaveQueue) Enqueue(snap Snapshot) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}

	for {
		select {
		case q.requests <- snap:
			return
		default:
			select {
			case stale := <-q.requests:
				common.LogDebug("save queue full, dropping stale snapshot", common.Fields{
					"pending_transactions": len(stale.Transactions),
				})
			default:
			}
		}
	}
}

// Close stops the worker after draining pending saves.
func (q *SaveQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.requests)
	q.mu.Unlock()

	q.wg.Wait()
	close(q.done)
}

func (q *SaveQueue) run() {
	defer q.wg.Done()

	for snap := range q.requests {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := common.WithRetry(ctx, func() error {
			return q.storage.SaveSnapshot(ctx, snap)
		}, common.RetryOptions{MaxAttempts: 3})
		cancel()

		if err != nil {
			common.LogError(err, "snapshot save failed, in-memory state unaffected", common.Fields{
				"transactions": len(snap.Transactions),
			})
		}
	}
}
