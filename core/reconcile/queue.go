package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gallery-index/core/metrics"

	"go.uber.org/zap"
)

// Reconciler persists one queued item.
type Reconciler[T any] interface {
	Reconcile(ctx context.Context, item T) error
}

// ReconcilerFunc adapts a function to Reconciler.
type ReconcilerFunc[T any] func(ctx context.Context, item T) error

// Reconcile calls f(ctx, item).
func (f ReconcilerFunc[T]) Reconcile(ctx context.Context, item T) error {
	return f(ctx, item)
}

// KeyFunc returns the coalescing key of an item. Two pending items with the
// same key are the same unit of work.
type KeyFunc[T any] func(item T) string

// Sink receives failure reports. Implementations must not block or panic.
type Sink interface {
	Warn(message, detail string)
}

// Handle tracks one accepted item until it is reconciled or discarded.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Done is closed once the item left the queue.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the outcome. Only meaningful after Done is closed.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Wait blocks until the item left the queue or ctx ends.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type entry[T any] struct {
	key    string
	label  string
	item   T
	handle *Handle
}

// Queue serializes reconciliation: one item at a time, strictly FIFO.
type Queue[T any] struct {
	reconciler Reconciler[T]
	key        KeyFunc[T]
	sink       Sink
	logger     *zap.Logger

	mu     sync.Mutex
	items  []*entry[T]
	ready   chan struct{}
	saving  bool
	stopped bool

	// drainMu keeps a single drain running, including those started after Run returned.
	drainMu sync.Mutex
	wake    chan struct{}
}

var closedReady = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// NewQueue creates a queue. Run must be started for items to drain.
func NewQueue[T any](reconciler Reconciler[T], key KeyFunc[T], sink Sink, logger *zap.Logger) *Queue[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue[T]{
		reconciler: reconciler,
		key:        key,
		sink:       sink,
		logger:     logger,
		wake:       make(chan struct{}, 1),
	}
}

// Enqueue accepts an item unless an item with the same key is already queued,
// in which case the pending handle is returned and queued is false.
func (q *Queue[T]) Enqueue(item T) (h *Handle, queued bool) {
	key := q.key(item)

	q.mu.Lock()
	for _, e := range q.items {
		if e.key == key {
			q.mu.Unlock()
			q.logger.Debug("Coalesced duplicate save request", zap.String("item", e.label))
			return e.handle, false
		}
	}

	e := &entry[T]{key: key, label: describe(item, key), item: item, handle: newHandle()}
	q.items = append(q.items, e)
	if q.ready == nil {
		q.ready = make(chan struct{})
	}
	metrics.SaveQueueLength.Set(float64(len(q.items)))
	stopped := q.stopped
	q.mu.Unlock()

	if stopped {
		go q.drain(context.Background())
		return e.handle, true
	}
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return e.handle, true
}

// Ready returns a channel that is closed whenever the queue is empty.
// While items are pending it is closed when the queue next drains, whether
// the drain succeeded or failed.
func (q *Queue[T]) Ready() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ready == nil {
		return closedReady
	}
	return q.ready
}

// Pending returns the number of queued items, including the one being saved.
func (q *Queue[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// IsSaving reports whether a drain cycle is in progress.
func (q *Queue[T]) IsSaving() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.saving || len(q.items) > 0
}

// Run is the single drain task. When ctx is cancelled it saves what is still
// queued and returns. Items accepted afterwards are saved by a drain started
// from Enqueue, so an accepted item always runs to completion.
func (q *Queue[T]) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.stopped = true
			q.mu.Unlock()
			q.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case <-q.wake:
			q.drain(context.WithoutCancel(ctx))
		}
	}
}

func (q *Queue[T]) drain(ctx context.Context) {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.saving = false
			if q.ready != nil {
				close(q.ready)
				q.ready = nil
			}
			metrics.SaveQueueLength.Set(0)
			q.mu.Unlock()
			return
		}
		head := q.items[0]
		q.saving = true
		q.mu.Unlock()

		start := time.Now()
		err := q.reconciler.Reconcile(ctx, head.item)
		metrics.ReconcileDuration.Observe(time.Since(start).Seconds())

		q.mu.Lock()
		q.items = q.items[1:]
		var dropped []*entry[T]
		if err != nil {
			dropped = q.items
			q.items = nil
		}
		metrics.SaveQueueLength.Set(float64(len(q.items)))
		q.mu.Unlock()

		if err == nil {
			metrics.ReconcileRunsTotal.WithLabelValues("success").Inc()
			head.handle.finish(nil)
			continue
		}

		rerr := &ReconciliationError{Item: head.label, Err: err}
		metrics.ReconcileRunsTotal.WithLabelValues("error").Inc()
		q.logger.Error("Reconciliation failed, discarding save queue",
			zap.String("item", head.label),
			zap.Int("discarded", len(dropped)),
			zap.Error(err),
		)
		head.handle.finish(rerr)
		for _, d := range dropped {
			d.handle.finish(ErrDiscarded)
		}
		if q.sink != nil {
			q.sink.Warn(fmt.Sprintf("Failed to save %s to the index", head.label), rerr.Error())
		}
	}
}

func describe[T any](item T, key string) string {
	if s, ok := any(item).(fmt.Stringer); ok {
		return s.String()
	}
	return key
}
