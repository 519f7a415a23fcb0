// Copyright 2026 Confero Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ingest turns tabular uploads into corpus actors: column
// detection and mapping, per-row transformation and validation,
// duplicate handling, optional embedding enrichment, and chunked
// persistence, all recorded in a durable ingest log.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/confero/confero/ai"
	"github.com/confero/confero/core"
	"github.com/confero/confero/storage"
)

// DuplicatePolicy controls what happens when an upload row names an
// actor that already exists (matched by name, case-insensitively).
type DuplicatePolicy string

const (
	// PolicySkip leaves the existing actor untouched and skips the row.
	PolicySkip DuplicatePolicy = "skip"
	// PolicyUpdate replaces the existing actor, keeping its id.
	PolicyUpdate DuplicatePolicy = "update"
	// PolicyCreateNew stores the row as a separate actor.
	PolicyCreateNew DuplicatePolicy = "create_new"
)

// DefaultMaxRows caps upload size when Options leaves it unset.
const DefaultMaxRows = 10_000

// allowedSources is the upload source-type allow-list.
var allowedSources = map[string]bool{
	"csv":  true,
	"tsv":  true,
	"xlsx": true,
	"json": true,
}

// Options configures one ingest job.
type Options struct {
	// SourceName labels the job in the ingest log, e.g. the file name.
	SourceName string
	// SourceType must be on the allow-list: csv, tsv, xlsx, json.
	SourceType string
	// Kind is the actor kind rows are ingested as.
	Kind core.ActorKind
	// Mapping overrides the automatic column-to-field mapping.
	// Mapping a column to "" unmaps it.
	Mapping map[string]string
	// Duplicates selects the duplicate policy. Empty means PolicySkip.
	Duplicates DuplicatePolicy
	// ValidateOnly runs the full pipeline without persisting actors.
	ValidateOnly bool
	// MaxRows caps the upload size; 0 uses DefaultMaxRows.
	MaxRows int
	// ArrayFraction is the share of separator-bearing values at which a
	// column is typed as an array; 0 uses DefaultArrayFraction.
	ArrayFraction float64
}

// Processor runs ingest jobs against the actor corpus.
type Processor struct {
	actors   storage.ActorRepository
	logs     storage.IngestLogRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithEmbedder enables embedding enrichment of ingested actors.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(p *Processor) { p.embedder = embedder }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// NewProcessor creates an ingest processor.
func NewProcessor(actors storage.ActorRepository, logs storage.IngestLogRepository, opts ...Option) *Processor {
	p := &Processor{
		actors: actors,
		logs:   logs,
		logger: slog.Default().With("component", "ingest"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process runs one upload through the pipeline and returns its ingest
// log. The log is persisted in every outcome, including rejections, so
// operators can always see what happened to an upload. Row-level
// problems never abort the job; only upload-level rejections do, and
// those are reported both in the log and as the returned error.
func (p *Processor) Process(ctx context.Context, headers []string, rows []map[string]string, opts Options) (*core.IngestLog, error) {
	log := &core.IngestLog{
		Id:         uuid.NewString(),
		SourceName: opts.SourceName,
		Status:     core.IngestStatusProcessing,
		StartedAt:  time.Now().UTC(),
	}

	if err := p.checkUpload(rows, opts); err != nil {
		return p.fail(ctx, log, err)
	}
	policy := opts.Duplicates
	if policy == "" {
		policy = PolicySkip
	}
	switch policy {
	case PolicySkip, PolicyUpdate, PolicyCreateNew:
	default:
		return p.fail(ctx, log, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy))
	}
	kind := opts.Kind
	if kind == 0 {
		kind = core.ActorKindCompany
	}

	log.Columns = DetectColumnsWith(headers, rows, opts.ArrayFraction)
	log.Mapping = BuildMapping(log.Columns, opts.Mapping)

	var (
		keep              []*core.Actor
		completenessTotal float64
	)
	for i, row := range rows {
		rowNum := i + 1
		actor := buildActor(row, log.Mapping, kind)

		issues := validateRow(rowNum, actor)
		log.Issues = append(log.Issues, issues...)
		if hasError(issues) {
			log.Counts.Errors++
			continue
		}

		existing, err := p.actors.FindActorByName(ctx, actor.Name)
		switch {
		case err == nil:
			log.Counts.Duplicates++
			switch policy {
			case PolicySkip:
				log.Counts.Skipped++
				continue
			case PolicyUpdate:
				actor.Id = existing.Id
				actor.CreatedAt = existing.CreatedAt
			case PolicyCreateNew:
				actor.Id = core.IDFromContent(actor.Id + "|" + log.Id)
			}
		case !storage.IsNotFound(err):
			return p.fail(ctx, log, fmt.Errorf("duplicate lookup for row %d: %w", rowNum, err))
		}

		if err := core.ValidateActor(actor); err != nil {
			log.Counts.Errors++
			log.Issues = append(log.Issues, core.RowIssue{
				Row:      rowNum,
				Message:  err.Error(),
				Severity: core.SeverityError,
			})
			continue
		}

		completenessTotal += core.Completeness(actor)
		keep = append(keep, actor)
	}

	if len(keep) > 0 {
		log.AvgCompleteness = completenessTotal / float64(len(keep)) * 100
	}

	if !opts.ValidateOnly && len(keep) > 0 {
		p.embed(ctx, keep)
		persisted, failed := p.persist(ctx, keep)
		log.Counts.Success = persisted
		log.Counts.Errors += failed
	} else {
		log.Counts.Success = len(keep)
	}

	log.Status = core.IngestStatusCompleted
	log.FinishedAt = time.Now().UTC()
	if err := p.logs.PutIngestLog(ctx, log); err != nil {
		return log, fmt.Errorf("storing ingest log: %w", err)
	}

	p.logger.Info("ingest finished",
		"job", log.Id,
		"source", log.SourceName,
		"rows", len(rows),
		"success", log.Counts.Success,
		"skipped", log.Counts.Skipped,
		"errors", log.Counts.Errors,
		"duplicates", log.Counts.Duplicates,
		"validate_only", opts.ValidateOnly)
	return log, nil
}

// Log retrieves an ingest log by job id.
func (p *Processor) Log(ctx context.Context, id string) (*core.IngestLog, error) {
	return p.logs.GetIngestLog(ctx, id)
}

// Logs lists ingest logs, most recent first.
func (p *Processor) Logs(ctx context.Context, limit int) ([]*core.IngestLog, error) {
	return p.logs.ListIngestLogs(ctx, limit)
}

func (p *Processor) checkUpload(rows []map[string]string, opts Options) error {
	sourceType := strings.ToLower(strings.TrimSpace(opts.SourceType))
	if !allowedSources[sourceType] {
		return fmt.Errorf("%w: %q", ErrUnsupportedSource, opts.SourceType)
	}
	if len(rows) == 0 {
		return ErrEmptyUpload
	}
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if len(rows) > maxRows {
		return fmt.Errorf("%w: %d rows, limit %d", ErrTooManyRows, len(rows), maxRows)
	}
	return nil
}

// embed enriches actors with embedding vectors. Embedding is best
// effort; a failure is logged and the job continues without vectors.
func (p *Processor) embed(ctx context.Context, actors []*core.Actor) {
	if p.embedder == nil {
		return
	}
	texts := make([]string, len(actors))
	for i, actor := range actors {
		texts[i] = strings.TrimSpace(strings.Join([]string{
			actor.Name, actor.Title, actor.Description, actor.Pitch,
		}, " "))
	}
	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		p.logger.Warn("embedding enrichment failed", "count", len(actors), "err", err)
		return
	}
	for i := range actors {
		if i < len(vectors) {
			actors[i].Vector = vectors[i]
		}
	}
}

// persist writes actors in chunks bounded by the store's batch ceiling.
// Chunks commit independently; a failed chunk costs only its own rows.
func (p *Processor) persist(ctx context.Context, actors []*core.Actor) (written, failed int) {
	writer := storage.NewChunkedWriter(p.actors.MaxWriteBatch(),
		func(ctx context.Context, chunk []*core.Actor) error {
			return p.actors.PutActors(ctx, chunk...)
		})
	for _, actor := range actors {
		if err := writer.Add(ctx, actor); err != nil {
			p.logger.Warn("actor chunk write failed", "err", err)
		}
	}
	if err := writer.Flush(ctx); err != nil {
		p.logger.Warn("final actor chunk write failed", "err", err)
	}
	return writer.Written(), writer.Failed()
}

func (p *Processor) fail(ctx context.Context, log *core.IngestLog, cause error) (*core.IngestLog, error) {
	log.Status = core.IngestStatusFailed
	log.Error = cause.Error()
	log.FinishedAt = time.Now().UTC()
	if err := p.logs.PutIngestLog(ctx, log); err != nil {
		p.logger.Error("storing failed ingest log", "job", log.Id, "err", err)
	}
	return log, cause
}
