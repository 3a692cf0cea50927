// Package recorder owns the single write path of the registry: validate a
// submitted record, optionally enrich it with geocoding, and append it to
// the store. The write-permission flag is threaded in at construction rather
// than read from ambient state, and there is exactly one gated submit path.
package recorder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lagunalabs/sucesos/internal/domain"
	"github.com/lagunalabs/sucesos/internal/observability"
	"github.com/lagunalabs/sucesos/internal/store"
)

// ErrWritesDisabled is returned for every submission while the registry runs
// in read-only mode.
var ErrWritesDisabled = errors.New("registry is in read-only mode")

// Recorder validates and inserts new event records.
type Recorder struct {
	repo       *store.Repository
	geocoder   domain.Geocoder // nil disables enrichment
	allowWrite bool
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Recorder. Pass a nil geocoder to disable geocoding enrichment.
func New(repo *store.Repository, geocoder domain.Geocoder, allowWrite bool, logger *slog.Logger, metrics *observability.Metrics) *Recorder {
	return &Recorder{
		repo:       repo,
		geocoder:   geocoder,
		allowWrite: allowWrite,
		logger:     logger,
		metrics:    metrics,
	}
}

// AllowWrite reports whether submissions are currently accepted.
func (r *Recorder) AllowWrite() bool { return r.allowWrite }

// Record checks the write gate, validates the submission, enriches it, and
// appends it to the store. Validation failures happen before any write, so a
// rejected submission leaves no partial state. The returned event carries
// the store-assigned ID.
func (r *Recorder) Record(ctx context.Context, event domain.Event) (*domain.Event, error) {
	if !r.allowWrite {
		r.metrics.WriteDenials.Inc()
		return nil, ErrWritesDisabled
	}

	if err := event.Validate(); err != nil {
		r.metrics.ValidationRejections.Inc()
		return nil, err
	}

	event = domain.EnrichWithGeocoding(ctx, event, r.geocoder, r.logger)

	if err := r.repo.Insert(&event); err != nil {
		r.metrics.StorageErrors.Inc()
		return nil, err
	}

	r.metrics.EventsRecorded.Inc()
	r.logger.Info("event recorded",
		"id", event.ID,
		"category", event.Category,
		"severity", event.Severity,
		"date", event.Date.Format(domain.DateLayout),
	)
	return &event, nil
}
