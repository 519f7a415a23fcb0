package storage

import "context"

// DefaultChunkSize bounds chunks when a backend reports no ceiling.
const DefaultChunkSize = 100

// FlushFunc persists one chunk atomically.
type FlushFunc[T any] func(ctx context.Context, chunk []T) error

// ChunkedWriter accumulates items and flushes them in chunks bounded by the
// backing store's maximum atomic-write-batch size, committing and resetting
// between chunks. It is shared by the match engine's all-pairs job and the
// ingestion processor; neither wraps a whole job in a single transaction.
//
// Not safe for concurrent use; producers serialize their Add calls.
type ChunkedWriter[T any] struct {
	maxChunk int
	flush    FlushFunc[T]
	buf      []T

	written int
	batches int
	failed  int
}

// NewChunkedWriter creates a writer flushing at most maxChunk items per call.
// A non-positive maxChunk falls back to DefaultChunkSize.
func NewChunkedWriter[T any](maxChunk int, flush FlushFunc[T]) *ChunkedWriter[T] {
	if maxChunk <= 0 {
		maxChunk = DefaultChunkSize
	}
	return &ChunkedWriter[T]{
		maxChunk: maxChunk,
		flush:    flush,
		buf:      make([]T, 0, maxChunk),
	}
}

// Add buffers an item, flushing first if the buffer is at the ceiling.
// A flush failure is counted and returned; the buffer is reset either way so
// the job can continue with subsequent items.
func (w *ChunkedWriter[T]) Add(ctx context.Context, item T) error {
	if len(w.buf) >= w.maxChunk {
		if err := w.Flush(ctx); err != nil {
			w.buf = append(w.buf, item)
			return err
		}
	}
	w.buf = append(w.buf, item)
	return nil
}

// Flush persists the buffered chunk, if any, and resets the buffer.
func (w *ChunkedWriter[T]) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	chunk := w.buf
	w.buf = make([]T, 0, w.maxChunk)
	if err := w.flush(ctx, chunk); err != nil {
		w.failed += len(chunk)
		return err
	}
	w.written += len(chunk)
	w.batches++
	return nil
}

// Written returns the number of items successfully persisted.
func (w *ChunkedWriter[T]) Written() int { return w.written }

// Batches returns the number of committed chunks.
func (w *ChunkedWriter[T]) Batches() int { return w.batches }

// Failed returns the number of items in failed chunks.
func (w *ChunkedWriter[T]) Failed() int { return w.failed }

// Pending returns the number of buffered, not yet flushed items.
func (w *ChunkedWriter[T]) Pending() int { return len(w.buf) }
