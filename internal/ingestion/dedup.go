package ingestion

import "github.com/google/uuid"

// DuplicateFilter remembers the activity IDs accepted during one pass.
// It is not safe for concurrent use; a pass runs on a single goroutine.
//
// With maxEntries > 0 the filter stops recording once full. IDs recorded
// before that point are still reported; later repeats fall through to the
// store, whose insert-or-skip rule keeps the result correct.
type DuplicateFilter struct {
	seen       map[uuid.UUID]struct{}
	maxEntries int
}

// NewDuplicateFilter returns an empty filter. maxEntries 0 means unbounded.
func NewDuplicateFilter(maxEntries int) *DuplicateFilter {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &DuplicateFilter{
		seen:       make(map[uuid.UUID]struct{}),
		maxEntries: maxEntries,
	}
}

// Seen reports whether id was marked earlier.
func (f *DuplicateFilter) Seen(id uuid.UUID) bool {
	_, ok := f.seen[id]
	return ok
}

// Mark records id. It is a no-op once a bounded filter is full.
func (f *DuplicateFilter) Mark(id uuid.UUID) {
	if f.Saturated() {
		return
	}
	f.seen[id] = struct{}{}
}

// Forget drops id so a later row carrying it is accepted again.
// Used when a batch holding id was never written.
func (f *DuplicateFilter) Forget(id uuid.UUID) {
	delete(f.seen, id)
}

// Len returns the number of recorded IDs.
func (f *DuplicateFilter) Len() int {
	return len(f.seen)
}

// Saturated reports whether a bounded filter has stopped recording.
func (f *DuplicateFilter) Saturated() bool {
	return f.maxEntries > 0 && len(f.seen) >= f.maxEntries
}
