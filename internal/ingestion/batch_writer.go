package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/aevon-lab/merchant-pulse/internal/core/storage"
)

const DefaultBatchSize = 5000

// BatchWriter buffers accepted records and writes them in fixed-size batches.
// The buffer never holds more than batchSize records.
type BatchWriter struct {
	store        storage.ActivityWriter
	batchSize    int
	writeTimeout time.Duration
	observer     Observer

	buf  []v1.ActivityRecord
	peak int

	batches       int
	inserted      int64
	alreadyStored int64
}

// NewBatchWriter returns a writer flushing every batchSize records.
// Each flush runs under writeTimeout when it is positive.
func NewBatchWriter(store storage.ActivityWriter, batchSize int, writeTimeout time.Duration, observer Observer) *BatchWriter {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &BatchWriter{
		store:        store,
		batchSize:    batchSize,
		writeTimeout: writeTimeout,
		observer:     observer,
		buf:          make([]v1.ActivityRecord, 0, batchSize),
	}
}

// Add buffers rec and flushes once the buffer is full. A record that breaks a
// storage invariant stops the file: it means the validator let it through.
func (w *BatchWriter) Add(ctx context.Context, rec v1.ActivityRecord) error {
	if err := rec.Validate(); err != nil {
		return &FatalIngestionError{
			Op:  fmt.Sprintf("buffer activity %s", rec.ActivityID),
			Err: err,
		}
	}
	w.buf = append(w.buf, rec)
	if len(w.buf) > w.peak {
		w.peak = len(w.buf)
	}
	if len(w.buf) >= w.batchSize {
		return w.Flush(ctx)
	}
	return nil
}

// Flush writes the buffered records in one InsertBatch call. The buffer is
// cleared only after the store confirms the write.
func (w *BatchWriter) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}

	writeCtx := ctx
	if w.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, w.writeTimeout)
		defer cancel()
	}

	start := time.Now()
	inserted, err := w.store.InsertBatch(writeCtx, w.buf)
	if err != nil {
		return &FatalIngestionError{
			Op:  fmt.Sprintf("write batch %d (%d records)", w.batches+1, len(w.buf)),
			Err: err,
		}
	}
	elapsed := time.Since(start)

	w.batches++
	w.inserted += inserted
	w.alreadyStored += int64(len(w.buf)) - inserted
	w.observer.BatchWritten(len(w.buf), inserted, elapsed)

	slog.Debug("[Ingestion] Batch written",
		"batch", w.batches,
		"batch_size", len(w.buf),
		"inserted", inserted,
		"duration", elapsed)

	w.buf = w.buf[:0]
	return nil
}

// Buffered returns the number of records waiting for the next flush.
func (w *BatchWriter) Buffered() int {
	return len(w.buf)
}

// Pending returns the records not yet written. The slice is only valid until the next Add.
func (w *BatchWriter) Pending() []v1.ActivityRecord {
	return w.buf
}

// PeakBuffered returns the largest buffer size reached so far.
func (w *BatchWriter) PeakBuffered() int {
	return w.peak
}

// Inserted returns the number of rows the store reported as new.
func (w *BatchWriter) Inserted() int64 {
	return w.inserted
}

// AlreadyStored returns the number of written records the store skipped as existing.
func (w *BatchWriter) AlreadyStored() int64 {
	return w.alreadyStored
}
