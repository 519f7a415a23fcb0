package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confero/confero/core"
	"github.com/confero/confero/profile"
)

func TestComputeAllEvaluatesEveryUnorderedPair(t *testing.T) {
	engine, repos, ctx := newTestEngine(t)
	seedCompanies(t, repos, ctx, 5)

	p := openProfile("open")
	manager := profile.NewManager(repos.Profiles)
	require.NoError(t, manager.Create(ctx, p))

	result, err := engine.ComputeAll(ctx, p.Id)
	require.NoError(t, err)

	// 5 actors yield 5*4/2 pairs, each evaluated exactly once.
	assert.Equal(t, 10, result.Pairs)
	assert.Equal(t, result.Pairs, result.Persisted+result.Skipped+result.Failed)
	assert.Equal(t, p.Id, result.Profile)
}

func TestComputeAllPersistsCanonicalIds(t *testing.T) {
	engine, repos, ctx := newTestEngine(t)
	actors := seedCompanies(t, repos, ctx, 3)

	p := openProfile("open")
	manager := profile.NewManager(repos.Profiles)
	require.NoError(t, manager.Create(ctx, p))

	result, err := engine.ComputeAll(ctx, p.Id)
	require.NoError(t, err)
	require.Positive(t, result.Persisted)

	m, err := repos.Matches.GetMatch(ctx, core.MatchID(actors[0].Id, actors[1].Id))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, m.Score, 0.0)
	assert.LessOrEqual(t, m.Score, 1.0)

	// Lookup works regardless of the order the pair is named in.
	same, err := repos.Matches.GetMatch(ctx, core.MatchID(actors[1].Id, actors[0].Id))
	require.NoError(t, err)
	assert.Equal(t, m.Id, same.Id)
}

func TestComputeAllThresholdSkips(t *testing.T) {
	engine, repos, ctx := newTestEngine(t)
	seedCompanies(t, repos, ctx, 4)

	p := openProfile("strict")
	p.Thresholds.MinScore = 0.999
	manager := profile.NewManager(repos.Profiles)
	require.NoError(t, manager.Create(ctx, p))

	result, err := engine.ComputeAll(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, 6, result.Pairs)
	assert.Zero(t, result.Persisted)
	assert.Equal(t, 6, result.Skipped)
}

func TestComputeAllReplacesPreviousRun(t *testing.T) {
	engine, repos, ctx := newTestEngine(t)
	actors := seedCompanies(t, repos, ctx, 3)

	manager := profile.NewManager(repos.Profiles)
	open := openProfile("open")
	require.NoError(t, manager.Create(ctx, open))
	strict := openProfile("strict")
	strict.Thresholds.MinScore = 0.999
	require.NoError(t, manager.Create(ctx, strict))

	first, err := engine.ComputeAll(ctx, open.Id)
	require.NoError(t, err)
	require.Positive(t, first.Persisted)

	// A stricter rerun clears the old graph rather than merging into it.
	second, err := engine.ComputeAll(ctx, strict.Id)
	require.NoError(t, err)
	assert.Zero(t, second.Persisted)

	stored, err := engine.Stored(ctx, actors[0].Id, 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCorpusChangeTriggersRebuild(t *testing.T) {
	engine, repos, ctx := newTestEngine(t)
	actors := seedCompanies(t, repos, ctx, 3)

	_, err := engine.Find(ctx, FindRequest{ActorId: actors[0].Id})
	require.NoError(t, err)
	firstRev := engine.signals.Revision()

	// A corpus write bumps the revision; the next query rebuilds stats.
	newcomer := &core.Actor{
		Id:        core.IDFromContent("newcomer"),
		Kind:      core.ActorKindCompany,
		Name:      "Newcomer",
		Platforms: []string{"ios"},
	}
	require.NoError(t, repos.Actors.PutActors(ctx, newcomer))

	results, err := engine.Find(ctx, FindRequest{ActorId: actors[0].Id})
	require.NoError(t, err)
	assert.Greater(t, engine.signals.Revision(), firstRev)

	found := false
	for _, m := range results {
		if m.ActorA == newcomer.Id || m.ActorB == newcomer.Id {
			found = true
		}
	}
	assert.True(t, found, "new actor should appear as a candidate")
}
