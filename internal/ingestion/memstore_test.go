package ingestion

import (
	"context"
	"errors"
	"sync"
	"time"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/google/uuid"
)

var errStoreDown = errors.New("store unavailable")

// memStore is an in-memory storage.ActivityWriter with the same insert-or-skip rule as Postgres.
type memStore struct {
	mu         sync.Mutex
	rows       map[uuid.UUID]v1.ActivityRecord
	batchSizes []int

	// failOnCall makes the n-th InsertBatch call (1-based) fail.
	failOnCall int
	calls      int

	// entered and release let a test hold InsertBatch open.
	entered chan struct{}
	release chan struct{}
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[uuid.UUID]v1.ActivityRecord)}
}

func (s *memStore) InsertBatch(ctx context.Context, records []v1.ActivityRecord) (int64, error) {
	if s.entered != nil {
		s.entered <- struct{}{}
		<-s.release
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.failOnCall == s.calls {
		return 0, errStoreDown
	}
	s.batchSizes = append(s.batchSizes, len(records))

	var inserted int64
	for _, rec := range records {
		if _, ok := s.rows[rec.ActivityID]; ok {
			continue
		}
		s.rows[rec.ActivityID] = rec
		inserted++
	}
	return inserted, nil
}

func (s *memStore) CountActivities(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.rows)), nil
}

func (s *memStore) get(id string) (v1.ActivityRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.rows[uuid.MustParse(id)]
	return rec, ok
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// recordingObserver collects observer callbacks.
type recordingObserver struct {
	mu       sync.Mutex
	batches  int
	inserted int64
	files    []RunSummary
}

func (o *recordingObserver) BatchWritten(records int, inserted int64, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.batches++
	o.inserted += inserted
}

func (o *recordingObserver) FileFinished(summary RunSummary) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files = append(o.files, summary)
}
