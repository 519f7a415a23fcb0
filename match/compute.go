package match

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// ComputeResult summarizes an all-pairs computation.
type ComputeResult struct {
	// Pairs is the number of pairs evaluated: K(K-1)/2 for K actors.
	Pairs int
	// Persisted is the number of matches written to the store.
	Persisted int
	// Skipped is the number of pairs below the profile thresholds.
	Skipped int
	// Failed is the number of matches lost to failed batch writes.
	Failed int
	// Batches is the number of committed write chunks.
	Batches int
	// Profile is the profile the scores were computed under.
	Profile string
	// Duration is the wall time of the computation.
	Duration time.Duration
}

// ComputeAll recomputes the full match graph under one profile: every
// unordered pair is scored, and pairs meeting the profile thresholds
// are persisted in chunks bounded by the store's write-batch ceiling.
// Chunks commit independently; a failed chunk is counted and the job
// continues. The previous match set is cleared first, since matches are
// derived data and the new run replaces it wholesale.
func (e *Engine) ComputeAll(ctx context.Context, profileID string) (*ComputeResult, error) {
	start := time.Now()

	p, err := e.resolveProfile(ctx, profileID, core.ActorKindCompany)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}

	actors, err := e.ensureFresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading corpus: %w", err)
	}

	if err := e.matches.DeleteAllMatches(ctx); err != nil {
		return nil, fmt.Errorf("clearing previous matches: %w", err)
	}

	pool, err := ants.NewPool(e.workers)
	if err != nil {
		return nil, fmt.Errorf("starting worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		skipped int
	)
	writer := storage.NewChunkedWriter(e.matches.MaxWriteBatch(),
		func(ctx context.Context, chunk []*core.Match) error {
			return e.matches.PutMatches(ctx, chunk...)
		})

	pairs := 0
	for i := 0; i < len(actors); i++ {
		for j := i + 1; j < len(actors); j++ {
			pairs++
			a, b := actors[i], actors[j]
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				m := e.Calculate(a, b, p)
				mu.Lock()
				defer mu.Unlock()
				if m.Score < p.Thresholds.MinScore || m.Confidence < p.Thresholds.MinConfidence {
					skipped++
					return
				}
				if err := writer.Add(ctx, m); err != nil {
					e.logger.Warn("match chunk write failed", "error", err)
				}
			}); err != nil {
				wg.Done()
				return nil, fmt.Errorf("submitting pair job: %w", err)
			}
		}
	}
	wg.Wait()

	if err := writer.Flush(ctx); err != nil {
		e.logger.Warn("final match chunk write failed", "error", err)
	}

	result := &ComputeResult{
		Pairs:     pairs,
		Persisted: writer.Written(),
		Skipped:   skipped,
		Failed:    writer.Failed(),
		Batches:   writer.Batches(),
		Profile:   p.Id,
		Duration:  time.Since(start),
	}
	e.logger.Info("all-pairs computation finished",
		"actors", len(actors),
		"pairs", result.Pairs,
		"persisted", result.Persisted,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"batches", result.Batches,
		"duration", result.Duration)
	return result, nil
}
