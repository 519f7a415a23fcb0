package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkedWriterCommitsAtCeiling(t *testing.T) {
	ctx := context.Background()

	var chunks [][]int
	w := NewChunkedWriter(3, func(ctx context.Context, chunk []int) error {
		copied := make([]int, len(chunk))
		copy(copied, chunk)
		chunks = append(chunks, copied)
		return nil
	})

	for i := 0; i < 10; i++ {
		require.NoError(t, w.Add(ctx, i))
	}
	require.NoError(t, w.Flush(ctx))

	// ceil(10/3) = 4 committed batches
	assert.Equal(t, 4, w.Batches())
	assert.Equal(t, 10, w.Written())
	assert.Equal(t, 0, w.Pending())

	require.Len(t, chunks, 4)
	assert.Len(t, chunks[0], 3)
	assert.Len(t, chunks[3], 1)
	assert.Equal(t, []int{9}, chunks[3])
}

func TestChunkedWriterEmptyFlush(t *testing.T) {
	calls := 0
	w := NewChunkedWriter(5, func(ctx context.Context, chunk []string) error {
		calls++
		return nil
	})
	require.NoError(t, w.Flush(context.Background()))
	assert.Zero(t, calls)
}

func TestChunkedWriterContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("write failed")

	fail := true
	w := NewChunkedWriter(2, func(ctx context.Context, chunk []int) error {
		if fail {
			fail = false
			return boom
		}
		return nil
	})

	require.NoError(t, w.Add(ctx, 1))
	require.NoError(t, w.Add(ctx, 2))
	// Third add forces a flush of {1,2}, which fails; the item still lands
	// in the next chunk and the job keeps going.
	err := w.Add(ctx, 3)
	require.ErrorIs(t, err, boom)

	require.NoError(t, w.Add(ctx, 4))
	require.NoError(t, w.Flush(ctx))

	assert.Equal(t, 2, w.Failed())
	assert.Equal(t, 2, w.Written())
	assert.Equal(t, 1, w.Batches())
}

func TestChunkedWriterDefaultCeiling(t *testing.T) {
	w := NewChunkedWriter[int](0, func(ctx context.Context, chunk []int) error { return nil })
	assert.Equal(t, DefaultChunkSize, w.maxChunk)
}
