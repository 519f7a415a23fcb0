package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// FindRequest describes an on-demand match query.
type FindRequest struct {
	// ActorId is the actor to find matches for. When empty the query
	// scores every unordered pair within the candidate set instead.
	ActorId string
	// ActorIds restricts candidates to an explicit set. When empty the
	// whole corpus (after Filters) is considered.
	ActorIds []string
	// ProfileId selects the weight profile. Empty uses the persona
	// default for the actor's kind.
	ProfileId string
	// Limit caps results; 0 uses the profile's MaxResults threshold.
	Limit int
	// Threshold overrides the profile's MinScore when positive.
	Threshold float64
	// Filters narrow the candidate set.
	Filters storage.ActorFilter
	// IncludeContributions keeps per-metric contributions on results.
	IncludeContributions bool
	// IncludeReasons keeps human-readable reasons on results.
	IncludeReasons bool
}

// Find computes matches on demand. With an ActorId the query scores
// that actor against every candidate; an unknown actor id is an error,
// distinct from a known actor with no matches above the threshold,
// which returns an empty slice. Without an ActorId every unordered pair
// within the candidate set is scored instead.
func (e *Engine) Find(ctx context.Context, req FindRequest) ([]*core.Match, error) {
	var subject *core.Actor
	kind := core.ActorKindCompany
	if req.ActorId != "" {
		s, err := e.actors.GetActor(ctx, req.ActorId)
		if err != nil {
			return nil, fmt.Errorf("loading actor %s: %w", req.ActorId, err)
		}
		subject = s
		kind = s.Kind
	}

	p, err := e.resolveProfile(ctx, req.ProfileId, kind)
	if err != nil {
		return nil, err
	}

	if _, err := e.ensureFresh(ctx); err != nil {
		return nil, err
	}

	candidates, err := e.candidates(ctx, req)
	if err != nil {
		return nil, err
	}

	minScore := p.Thresholds.MinScore
	if req.Threshold > 0 {
		minScore = req.Threshold
	}
	limit := req.Limit
	if limit <= 0 {
		limit = p.Thresholds.MaxResults
	}

	admit := func(m *core.Match) *core.Match {
		if m.Score < minScore || m.Confidence < p.Thresholds.MinConfidence {
			return nil
		}
		if !req.IncludeContributions {
			m.Contributions = nil
		}
		if !req.IncludeReasons {
			m.Reasons = nil
		}
		return m
	}

	var results []*core.Match
	if subject != nil {
		results = make([]*core.Match, 0, len(candidates))
		for _, candidate := range candidates {
			if candidate.Id == subject.Id {
				continue
			}
			if m := admit(e.Calculate(subject, candidate, p)); m != nil {
				results = append(results, m)
			}
		}
	} else {
		for i := range candidates {
			for j := i + 1; j < len(candidates); j++ {
				if m := admit(e.Calculate(candidates[i], candidates[j], p)); m != nil {
					results = append(results, m)
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Id < results[j].Id
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Stored returns persisted matches for an actor, best first.
func (e *Engine) Stored(ctx context.Context, actorID string, limit int) ([]*core.Match, error) {
	if _, err := e.actors.GetActor(ctx, actorID); err != nil {
		return nil, fmt.Errorf("loading actor %s: %w", actorID, err)
	}
	return e.matches.MatchesForActor(ctx, actorID, limit)
}

func (e *Engine) candidates(ctx context.Context, req FindRequest) ([]*core.Actor, error) {
	if len(req.ActorIds) > 0 {
		return e.actors.GetActors(ctx, req.ActorIds...)
	}
	return e.actors.QueryActors(ctx, req.Filters)
}
