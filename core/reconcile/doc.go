// Package reconcile provides the save queue that serializes writes into the index.
//
// Scanning is much faster than persisting, and the backing store is written through a
// single connection. The Queue therefore accepts work immediately and drains it on one
// background task, one item at a time, in submission order.
//
// # Coalescing
//
// Every item has a key. Enqueueing an item whose key matches an item that is still
// queued (including the one currently being reconciled) is a no-op that returns the
// pending Handle.
//
// # Failure
//
// The drain task is the single recovery boundary. When an item fails, its Handle
// reports a *ReconciliationError, every remaining item is discarded with ErrDiscarded,
// and the failure is reported to the Sink. Nothing is retried; the next scan of a
// directory enqueues it again.
//
// # Readiness
//
// Ready returns a channel that is closed while the queue is empty. Callers that need
// the index to have caught up wait on it:
//
//	q := reconcile.NewQueue[*models.DirectorySnapshot](engine, keyFn, sink, logger)
//	go q.Run(ctx)
//	q.Enqueue(snapshot)
//	<-q.Ready()
package reconcile
