// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/retr0h/storefront/internal/redact"
	"github.com/retr0h/storefront/internal/requestctx"
)

const meterName = "github.com/retr0h/storefront/internal/audit"

// Recorder builds audit records and hands them to a Store. It never returns
// errors to callers; failures are logged and counted.
type Recorder struct {
	logger  *slog.Logger
	store   Store
	now     func() time.Time
	newID   func() (uuid.UUID, error)
	records metric.Int64Counter
	wg      sync.WaitGroup
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithClock overrides the record timestamp source.
func WithClock(
	now func() time.Time,
) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder creates a Recorder writing to store.
func NewRecorder(
	logger *slog.Logger,
	store Store,
	opts ...RecorderOption,
) *Recorder {
	counter, err := otel.Meter(meterName).Int64Counter(
		"storefront.audit.records",
		metric.WithDescription("Audit records by write outcome."),
	)
	if err != nil {
		logger.Warn("audit counter unavailable", slog.String("error", err.Error()))
		counter = noop.Int64Counter{}
	}

	r := &Recorder{
		logger:  logger,
		store:   store,
		now:     time.Now,
		newID:   uuid.NewV7,
		records: counter,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Create builds and persists a record, returning it, or nil when it could
// not be written. It marks ctx's tracker so the request-level audit does not
// record the same request twice.
func (r *Recorder) Create(
	ctx context.Context,
	opts Options,
) *Record {
	markRecorded(ctx)

	return r.write(ctx, r.build(ctx, opts))
}

// CreateAsync is Create without waiting for the store. The write outlives
// ctx's cancellation; Wait blocks until pending writes finish.
func (r *Recorder) CreateAsync(
	ctx context.Context,
	opts Options,
) {
	markRecorded(ctx)
	record := r.build(ctx, opts)
	detached := context.WithoutCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_ = r.write(detached, record)
	}()
}

// Wait blocks until all CreateAsync writes have finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Stop waits for pending writes or until ctx is done.
func (r *Recorder) Stop(
	ctx context.Context,
) {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.logger.Warn("audit writes still pending at shutdown")
	}
}

func (r *Recorder) build(
	ctx context.Context,
	opts Options,
) Record {
	info := requestctx.From(ctx)

	id, err := r.newID()
	if err != nil {
		id = uuid.New()
	}

	status, severity := DeriveOutcome(opts.StatusCode)
	if opts.Status != "" {
		status = opts.Status
	}
	if opts.Severity != "" {
		severity = opts.Severity
	}

	userID := opts.UserID
	if userID == "" {
		userID = info.UserID
	}

	entityType := opts.EntityType
	if entityType == "" {
		entityType = UnknownEntity
	}

	var metadata map[string]any
	if len(opts.Metadata) > 0 {
		metadata = redact.Map(opts.Metadata)
	}

	return Record{
		ID:         id.String(),
		UserID:     userID,
		Action:     opts.Action,
		EntityType: entityType,
		EntityID:   opts.EntityID,
		OldValues:  redact.Value(opts.OldValues),
		NewValues:  redact.Value(opts.NewValues),
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		RequestID:  info.RequestID,
		Status:     status,
		Severity:   severity,
		Metadata:   metadata,
		CreatedAt:  r.now().UTC(),
	}
}

func (r *Recorder) write(
	ctx context.Context,
	record Record,
) (out *Record) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(ctx, record, fmt.Errorf("panic: %v", p))
			out = nil
		}
	}()

	if err := r.store.Write(ctx, record); err != nil {
		r.fail(ctx, record, err)
		return nil
	}

	r.records.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "written"),
		attribute.String("action", string(record.Action)),
	))
	r.logger.DebugContext(
		ctx,
		"audit record written",
		slog.String("audit_id", record.ID),
		slog.String("action", string(record.Action)),
		slog.String("entity_type", record.EntityType),
	)

	return &record
}

func (r *Recorder) fail(
	ctx context.Context,
	record Record,
	err error,
) {
	r.records.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", "failed"),
		attribute.String("action", string(record.Action)),
	))
	r.logger.WarnContext(
		ctx,
		"failed to write audit record",
		slog.String("audit_id", record.ID),
		slog.String("action", string(record.Action)),
		slog.String("entity_type", record.EntityType),
		slog.String("error", err.Error()),
	)
}
