package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confero/confero/ai/mock"
	"github.com/confero/confero/core"
	badgerstore "github.com/confero/confero/storage/badger"
)

func newTestProcessor(t *testing.T, opts ...Option) (*Processor, *badgerstore.Repositories, context.Context) {
	t.Helper()
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })
	return NewProcessor(repos.Actors, repos.IngestLogs, opts...), repos, context.Background()
}

var uploadHeaders = []string{"Company Name", "Primary Markets", "platforms", "country", "website", "email"}

func uploadRows() []map[string]string {
	return []map[string]string{
		{
			"Company Name":    "Pixel Forge",
			"Primary Markets": "gaming; education",
			"platforms":       "ios, android",
			"country":         "DE",
			"website":         "https://pixelforge.example",
			"email":           "hello@pixelforge.example",
		},
		{
			"Company Name":    "Quiet Signal",
			"Primary Markets": "health",
			"platforms":       "web",
			"country":         "SE",
			"website":         "quietsignal.example",
			"email":           "not-an-email",
		},
		{
			// Missing name: excluded with an error-severity issue.
			"Primary Markets": "finance",
			"platforms":       "web",
			"country":         "US",
		},
	}
}

func baseOptions() Options {
	return Options{
		SourceName: "exhibitors.csv",
		SourceType: "csv",
		Kind:       core.ActorKindCompany,
	}
}

func TestProcessUploadEndToEnd(t *testing.T) {
	p, repos, ctx := newTestProcessor(t)

	log, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)

	assert.Equal(t, core.IngestStatusCompleted, log.Status)
	assert.Equal(t, 2, log.Counts.Success)
	assert.Equal(t, 1, log.Counts.Errors)
	assert.Zero(t, log.Counts.Duplicates)

	// Headers auto-mapped through detection, no overrides needed.
	assert.Equal(t, FieldName, log.Mapping["Company Name"])
	assert.Equal(t, FieldMarkets, log.Mapping["Primary Markets"])
	assert.Equal(t, FieldPlatforms, log.Mapping["platforms"])

	// The malformed email is kept but flagged.
	assert.Equal(t, 1, log.ErrorCount())
	assert.GreaterOrEqual(t, log.WarningCount(), 1)

	actor, err := repos.Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)
	assert.Equal(t, []string{"gaming", "education"}, actor.Markets)

	// The log is durable and retrievable by job id.
	stored, err := p.Log(ctx, log.Id)
	require.NoError(t, err)
	assert.Equal(t, log.Counts, stored.Counts)
}

func TestProcessValidateOnlyPersistsNothing(t *testing.T) {
	p, repos, ctx := newTestProcessor(t)

	opts := baseOptions()
	opts.ValidateOnly = true
	log, err := p.Process(ctx, uploadHeaders, uploadRows(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, log.Counts.Success)
	count, err := repos.Actors.CountActors(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProcessRejectsUnsupportedSource(t *testing.T) {
	p, _, ctx := newTestProcessor(t)

	opts := baseOptions()
	opts.SourceType = "pdf"
	log, err := p.Process(ctx, uploadHeaders, uploadRows(), opts)

	assert.ErrorIs(t, err, ErrUnsupportedSource)
	assert.Equal(t, core.IngestStatusFailed, log.Status)
	assert.NotEmpty(t, log.Error)
}

func TestProcessRejectsEmptyAndOversizedUploads(t *testing.T) {
	p, _, ctx := newTestProcessor(t)

	_, err := p.Process(ctx, uploadHeaders, nil, baseOptions())
	assert.ErrorIs(t, err, ErrEmptyUpload)

	opts := baseOptions()
	opts.MaxRows = 2
	_, err = p.Process(ctx, uploadHeaders, uploadRows(), opts)
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestDuplicatePolicySkip(t *testing.T) {
	p, repos, ctx := newTestProcessor(t)

	_, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)

	log, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, log.Counts.Duplicates)
	assert.Equal(t, 2, log.Counts.Skipped)
	assert.Zero(t, log.Counts.Success)

	count, err := repos.Actors.CountActors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestDuplicatePolicyUpdateKeepsId(t *testing.T) {
	p, repos, ctx := newTestProcessor(t)

	_, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)
	original, err := repos.Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)

	rows := uploadRows()
	rows[0]["Primary Markets"] = "gaming; health"
	opts := baseOptions()
	opts.Duplicates = PolicyUpdate
	log, err := p.Process(ctx, uploadHeaders, rows, opts)
	require.NoError(t, err)

	// Duplicates are counted even though the rows were applied.
	assert.Equal(t, 2, log.Counts.Duplicates)
	assert.Equal(t, 2, log.Counts.Success)

	updated, err := repos.Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)
	assert.Equal(t, original.Id, updated.Id)
	assert.Equal(t, []string{"gaming", "health"}, updated.Markets)
}

func TestDuplicatePolicyCreateNew(t *testing.T) {
	p, repos, ctx := newTestProcessor(t)

	_, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)

	opts := baseOptions()
	opts.Duplicates = PolicyCreateNew
	log, err := p.Process(ctx, uploadHeaders, uploadRows(), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, log.Counts.Duplicates)
	assert.Equal(t, 2, log.Counts.Success)

	count, err := repos.Actors.CountActors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestProcessUnknownPolicy(t *testing.T) {
	p, _, ctx := newTestProcessor(t)

	opts := baseOptions()
	opts.Duplicates = "merge"
	_, err := p.Process(ctx, uploadHeaders, uploadRows(), opts)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestProcessEmbedsActors(t *testing.T) {
	embedder := mock.NewEmbedder()
	p, repos, ctx := newTestProcessor(t, WithEmbedder(embedder))

	_, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)
	assert.Positive(t, embedder.Calls())

	actor, err := repos.Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)
	assert.Len(t, actor.Vector, mock.Dim)
}

func TestProcessEmbeddingFailureIsNonFatal(t *testing.T) {
	embedder := mock.NewEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, assert.AnError
	}
	p, repos, ctx := newTestProcessor(t, WithEmbedder(embedder))

	log, err := p.Process(ctx, uploadHeaders, uploadRows(), baseOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, log.Counts.Success)

	actor, err := repos.Actors.FindActorByName(ctx, "Pixel Forge")
	require.NoError(t, err)
	assert.Empty(t, actor.Vector)
}

func TestAvgCompletenessReflectsFilledFields(t *testing.T) {
	p, _, ctx := newTestProcessor(t)

	sparseRows := []map[string]string{
		{"Company Name": "Bare", "country": "US"},
	}
	sparse, err := p.Process(ctx, uploadHeaders, sparseRows, baseOptions())
	require.NoError(t, err)

	rich, err := p.Process(ctx, uploadHeaders, uploadRows()[:1], baseOptions())
	require.NoError(t, err)

	assert.Greater(t, rich.AvgCompleteness, sparse.AvgCompleteness)
}
