package storage

import (
	"context"

	"github.com/confero/confero/core"
)

// ActorFilter narrows corpus queries. Empty slices match everything; a
// non-empty slice matches actors carrying at least one listed value.
type ActorFilter struct {
	Kinds      []core.ActorKind
	Platforms  []string
	Markets    []string
	Stages     []string
	Categories []string
	// Limit caps the result count; 0 means no cap.
	Limit int
}

// Repository provides operations common to all repositories.
type Repository interface {
	// MaxWriteBatch returns the backend's atomic write-batch ceiling.
	// Batch producers must commit and reset before exceeding it.
	MaxWriteBatch() int

	// Close releases resources held by the repository.
	Close() error
}

// ActorRepository manages the actor corpus.
type ActorRepository interface {
	Repository

	// PutActors inserts or replaces actors. Ids must be set by the caller.
	// Sets CreatedAt on first write and UpdatedAt always. Bumps the corpus
	// revision once per call.
	PutActors(ctx context.Context, actors ...*core.Actor) error

	// GetActor retrieves a single actor by id.
	// Returns ErrNotFound if the actor doesn't exist.
	GetActor(ctx context.Context, id string) (*core.Actor, error)

	// GetActors retrieves multiple actors by id.
	// Missing ids are skipped without error.
	GetActors(ctx context.Context, ids ...string) ([]*core.Actor, error)

	// FindActorByName finds an actor by exact (case-insensitive) name.
	// Returns ErrNotFound if no actor matches.
	FindActorByName(ctx context.Context, name string) (*core.Actor, error)

	// QueryActors returns actors matching the filter.
	QueryActors(ctx context.Context, filter ActorFilter) ([]*core.Actor, error)

	// CountActors returns the corpus size.
	CountActors(ctx context.Context) (int, error)

	// Revision returns a counter bumped on every corpus write. Consumers
	// holding corpus-derived statistics compare it to detect staleness.
	Revision(ctx context.Context) (uint64, error)
}

// ProfileRepository manages weight profiles.
type ProfileRepository interface {
	Repository

	// PutProfile inserts or replaces a profile. The caller is responsible
	// for validation; no partially-valid profile may reach this method.
	PutProfile(ctx context.Context, profile *core.WeightProfile) error

	// GetProfile retrieves a profile by id.
	// Returns ErrNotFound if the profile doesn't exist.
	GetProfile(ctx context.Context, id string) (*core.WeightProfile, error)

	// ListProfiles returns all stored profiles.
	ListProfiles(ctx context.Context) ([]*core.WeightProfile, error)

	// DeleteProfile removes a profile by id.
	// Returns ErrNotFound if the profile doesn't exist.
	DeleteProfile(ctx context.Context, id string) error
}

// MatchRepository manages computed match edges. Matches are derived data:
// write-once outputs of a computation, recomputable idempotently.
type MatchRepository interface {
	Repository

	// PutMatches inserts or replaces match edges. The batch must not exceed
	// MaxWriteBatch; producers write through a ChunkedWriter.
	PutMatches(ctx context.Context, matches ...*core.Match) error

	// GetMatch retrieves a match by its canonical pair id.
	// Returns ErrNotFound if absent.
	GetMatch(ctx context.Context, id string) (*core.Match, error)

	// MatchesForActor returns stored matches involving the actor, ordered
	// by score descending, up to limit.
	MatchesForActor(ctx context.Context, actorID string, limit int) ([]*core.Match, error)

	// DeleteAllMatches clears the derived match set before a recompute.
	DeleteAllMatches(ctx context.Context) error
}

// ScanRepository manages the append-only scan event stream.
type ScanRepository interface {
	Repository

	// AppendScans appends scan events. Events are never updated or deleted.
	AppendScans(ctx context.Context, events ...*core.ScanEvent) error

	// AllScans returns every stored scan event.
	AllScans(ctx context.Context) ([]*core.ScanEvent, error)
}

// IngestLogRepository manages ingest job logs.
type IngestLogRepository interface {
	Repository

	// PutIngestLog inserts or replaces an ingest log.
	PutIngestLog(ctx context.Context, log *core.IngestLog) error

	// GetIngestLog retrieves a log by job id.
	// Returns ErrNotFound if absent.
	GetIngestLog(ctx context.Context, id string) (*core.IngestLog, error)

	// ListIngestLogs returns logs ordered by start time descending, up to
	// limit (0 means all).
	ListIngestLogs(ctx context.Context, limit int) ([]*core.IngestLog, error)
}
