package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aevon-lab/merchant-pulse/internal/core/storage"
)

// RunState is the lifecycle state of one file ingestion.
type RunState string

const (
	StateNotStarted RunState = "NOT_STARTED"
	StateRunning    RunState = "RUNNING"
	StateCompleted  RunState = "COMPLETED"
	StateFailed     RunState = "FAILED"
)

// RunSummary reports the outcome of ingesting one file.
// RowsSeen always equals Accepted + Rejected + Duplicates.
type RunSummary struct {
	File             string             `json:"file"`
	State            RunState           `json:"state"`
	RowsSeen         int                `json:"rows_seen"`
	Accepted         int                `json:"accepted"`
	Inserted         int64              `json:"inserted"`
	AlreadyStored    int64              `json:"already_stored"`
	Rejected         int                `json:"rejected"`
	RejectedByReason map[ReasonCode]int `json:"rejected_by_reason"`
	Duplicates       int                `json:"duplicates"`
	CoercedAmounts   int                `json:"coerced_amounts"`
	PeakBuffered     int                `json:"peak_buffered"`
	StartedAt        time.Time          `json:"started_at"`
	Duration         time.Duration      `json:"-"`
	DurationMS       int64              `json:"duration_ms"`
	Error            string             `json:"error,omitempty"`

	Err error `json:"-"`
}

// Observer receives ingestion progress. Implementations must be cheap; they run inline.
type Observer interface {
	BatchWritten(records int, inserted int64, elapsed time.Duration)
	FileFinished(summary RunSummary)
}

type nopObserver struct{}

func (nopObserver) BatchWritten(int, int64, time.Duration) {}
func (nopObserver) FileFinished(RunSummary)                {}

// CoordinatorOptions tunes a Coordinator.
type CoordinatorOptions struct {
	BatchSize    int
	WriteTimeout time.Duration
	Observer     Observer
}

// Coordinator drives one file through decode, validate, dedup and batch write.
type Coordinator struct {
	store storage.ActivityWriter
	opts  CoordinatorOptions
}

// NewCoordinator returns a Coordinator writing to store.
func NewCoordinator(store storage.ActivityWriter, opts CoordinatorOptions) *Coordinator {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Coordinator{store: store, opts: opts}
}

// IngestFile ingests the CSV file at path. Row-level problems are counted in
// the summary; only an unreadable source, a failed batch write or a cancelled
// ctx end the file in StateFailed. Batches written before a failure stay stored.
func (c *Coordinator) IngestFile(ctx context.Context, path string, filter *DuplicateFilter) RunSummary {
	summary := RunSummary{
		File:             filepath.Base(path),
		State:            StateNotStarted,
		RejectedByReason: make(map[ReasonCode]int),
	}
	if filter == nil {
		filter = NewDuplicateFilter(0)
	}

	summary.StartedAt = time.Now().UTC()
	summary.State = StateRunning
	slog.Info("[Ingestion] Starting file", "file", path, "batch_size", c.opts.BatchSize)

	writer := NewBatchWriter(c.store, c.opts.BatchSize, c.opts.WriteTimeout, c.opts.Observer)
	err := c.ingest(ctx, path, filter, writer, &summary)

	summary.Inserted = writer.Inserted()
	summary.AlreadyStored = writer.AlreadyStored()
	summary.PeakBuffered = writer.PeakBuffered()
	summary.Duration = time.Since(summary.StartedAt)
	summary.DurationMS = summary.Duration.Milliseconds()

	if err != nil {
		var fatal *FatalIngestionError
		if !errors.As(err, &fatal) {
			err = &FatalIngestionError{Op: "ingest", Err: err}
			errors.As(err, &fatal)
		}
		fatal.File = summary.File

		// Records still buffered were never stored; let a later file carry them.
		for _, rec := range writer.Pending() {
			filter.Forget(rec.ActivityID)
		}

		summary.State = StateFailed
		summary.Err = fatal
		summary.Error = fatal.Error()
		slog.Error("[Ingestion] File failed",
			"file", path,
			"rows_seen", summary.RowsSeen,
			"inserted", summary.Inserted,
			"error", fatal)
	} else {
		summary.State = StateCompleted
		slog.Info("[Ingestion] File completed",
			"file", path,
			"rows_seen", summary.RowsSeen,
			"accepted", summary.Accepted,
			"inserted", summary.Inserted,
			"already_stored", summary.AlreadyStored,
			"rejected", summary.Rejected,
			"duplicates", summary.Duplicates,
			"coerced_amounts", summary.CoercedAmounts,
			"duration", summary.Duration)
	}

	c.opts.Observer.FileFinished(summary)
	return summary
}

func (c *Coordinator) ingest(ctx context.Context, path string, filter *DuplicateFilter, writer *BatchWriter, summary *RunSummary) error {
	f, err := os.Open(path)
	if err != nil {
		return &FatalIngestionError{Op: "open", Err: err}
	}
	defer f.Close()

	dec, err := NewDecoder(f)
	if err != nil {
		return &FatalIngestionError{Op: "decode header", Err: err}
	}

	for {
		if err := ctx.Err(); err != nil {
			return &FatalIngestionError{Op: "cancelled", Err: err}
		}

		row, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var malformed *MalformedRowError
			if errors.As(err, &malformed) {
				summary.RowsSeen++
				summary.reject(ReasonMalformedRow)
				slog.Debug("[Ingestion] Skipping malformed row", "file", summary.File, "error", err)
				continue
			}
			return &FatalIngestionError{Op: fmt.Sprintf("read after line %d", summary.RowsSeen+1), Err: err}
		}
		summary.RowsSeen++

		rec, outcome, err := Validate(row)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				summary.reject(verr.Reason)
				slog.Debug("[Ingestion] Rejected row", "file", summary.File, "error", err)
				continue
			}
			return &FatalIngestionError{Op: "validate", Err: err}
		}

		if filter.Seen(rec.ActivityID) {
			summary.Duplicates++
			slog.Debug("[Ingestion] Skipping duplicate",
				"file", summary.File,
				"error", &DuplicateError{Line: row.Line, ActivityID: rec.ActivityID})
			continue
		}
		filter.Mark(rec.ActivityID)

		summary.Accepted++
		if outcome.AmountCoerced {
			summary.CoercedAmounts++
		}

		if err := writer.Add(ctx, rec); err != nil {
			return err
		}
	}

	return writer.Flush(ctx)
}

func (s *RunSummary) reject(reason ReasonCode) {
	s.Rejected++
	s.RejectedByReason[reason]++
}
