package confero

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confero/confero/config"
	"github.com/confero/confero/core"
	"github.com/confero/confero/ingest"
	"github.com/confero/confero/match"
	"github.com/confero/confero/storage"
	"github.com/confero/confero/taxonomy"
)

func openMemorySystem(t *testing.T) *System {
	t.Helper()
	cfg := config.New()
	cfg.DBPath = ""
	system, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { system.Close() })
	return system
}

func TestOpenWiresEverything(t *testing.T) {
	system := openMemorySystem(t)

	assert.NotNil(t, system.Repositories())
	assert.NotNil(t, system.Profiles())
	assert.NotNil(t, system.NewMatchEngine())
	assert.NotNil(t, system.NewIngestProcessor())
	assert.NotNil(t, system.NewTaxonomyAnalyzer())
}

func TestIngestComputeFindRoundTrip(t *testing.T) {
	system := openMemorySystem(t)
	ctx := context.Background()

	headers := []string{"name", "country", "platforms", "markets"}
	rows := []map[string]string{
		{"name": "Pixel Forge", "country": "DE", "platforms": "ios; android", "markets": "gaming"},
		{"name": "Quiet Signal", "country": "SE", "platforms": "ios", "markets": "gaming; health"},
		{"name": "Ledger Line", "country": "US", "platforms": "web", "markets": "finance"},
	}
	log, err := system.NewIngestProcessor().Process(ctx, headers, rows, ingest.Options{
		SourceName: "exhibitors.csv",
		SourceType: "csv",
		Kind:       core.ActorKindCompany,
	})
	require.NoError(t, err)
	require.Equal(t, 3, log.Counts.Success)

	engine := system.NewMatchEngine()
	result, err := engine.ComputeAll(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Pairs)

	subject, err := system.Repositories().Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)

	matches, err := engine.Find(ctx, match.FindRequest{
		ActorId:        subject.Id,
		Threshold:      0.01,
		IncludeReasons: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.NotEmpty(t, matches[0].Reasons)

	dist, err := system.NewTaxonomyAnalyzer().Distribution(ctx,
		taxonomy.DimensionMarkets, storage.ActorFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, dist.Coverage.SampleSize)
}
