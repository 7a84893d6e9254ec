package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aevon-lab/merchant-pulse/internal/core/storage"
)

const DefaultFilePattern = "activities_*.csv"

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	DataDir         string
	FilePattern     string
	BatchSize       int
	DedupMaxEntries int
	// SkipIfLoaded skips the whole pass when the store already holds rows.
	SkipIfLoaded bool
	WriteTimeout time.Duration
	Observer     Observer
}

// PassReport describes the latest ingestion pass.
type PassReport struct {
	InProgress bool          `json:"in_progress"`
	Skipped    bool          `json:"skipped"`
	SkipReason string        `json:"skip_reason,omitempty"`
	DataDir    string        `json:"data_dir"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Files      []RunSummary  `json:"files"`
	Duration   time.Duration `json:"-"`
}

// Runner performs ingestion passes over the data directory and keeps the
// summaries of the most recent pass.
type Runner struct {
	store       storage.ActivityWriter
	coordinator *Coordinator
	opts        RunnerOptions

	running atomic.Bool

	mu   sync.RWMutex
	last PassReport
}

// NewRunner returns a Runner writing through store.
func NewRunner(store storage.ActivityWriter, opts RunnerOptions) *Runner {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if opts.FilePattern == "" {
		opts.FilePattern = DefaultFilePattern
	}
	return &Runner{
		store: store,
		coordinator: NewCoordinator(store, CoordinatorOptions{
			BatchSize:    opts.BatchSize,
			WriteTimeout: opts.WriteTimeout,
			Observer:     opts.Observer,
		}),
		opts: opts,
		last: PassReport{DataDir: opts.DataDir, Files: []RunSummary{}},
	}
}

// Run ingests every matching file in name order, one at a time. All files of
// the pass share one DuplicateFilter. A failed file never stops the next one;
// the returned error is non-nil only when the pass could not start.
func (r *Runner) Run(ctx context.Context) ([]RunSummary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	start := time.Now().UTC()
	r.publish(PassReport{InProgress: true, DataDir: r.opts.DataDir, StartedAt: start, Files: []RunSummary{}})

	report, err := r.run(ctx, start)
	report.InProgress = false
	report.FinishedAt = time.Now().UTC()
	report.Duration = report.FinishedAt.Sub(start)
	r.publish(report)

	if err != nil {
		slog.Error("[Ingestion] Pass could not start", "data_dir", r.opts.DataDir, "error", err)
		return nil, err
	}

	failed := 0
	for _, s := range report.Files {
		if s.State == StateFailed {
			failed++
		}
	}
	slog.Info("[Ingestion] Pass finished",
		"data_dir", r.opts.DataDir,
		"files", len(report.Files),
		"failed", failed,
		"skipped", report.Skipped,
		"duration", report.Duration)

	return report.Files, nil
}

func (r *Runner) run(ctx context.Context, start time.Time) (PassReport, error) {
	report := PassReport{DataDir: r.opts.DataDir, StartedAt: start, Files: []RunSummary{}}

	files, err := r.listFiles()
	if err != nil {
		return report, err
	}
	if files == nil {
		report.Skipped = true
		report.SkipReason = "data directory not found"
		return report, nil
	}

	if r.opts.SkipIfLoaded {
		count, err := r.store.CountActivities(ctx)
		if err != nil {
			return report, fmt.Errorf("count stored activities: %w", err)
		}
		if count > 0 {
			slog.Info("[Ingestion] Store already loaded, skipping pass", "rows", count)
			report.Skipped = true
			report.SkipReason = fmt.Sprintf("store already holds %d rows", count)
			return report, nil
		}
	}

	if len(files) == 0 {
		slog.Warn("[Ingestion] No files matched", "data_dir", r.opts.DataDir, "pattern", r.opts.FilePattern)
	}

	filter := NewDuplicateFilter(r.opts.DedupMaxEntries)
	for _, path := range files {
		summary := r.coordinator.IngestFile(ctx, path, filter)
		report.Files = append(report.Files, summary)

		progress := report
		progress.InProgress = true
		progress.Files = append([]RunSummary(nil), report.Files...)
		r.publish(progress)
	}

	if filter.Saturated() {
		slog.Warn("[Ingestion] Duplicate filter reached its bound; later repeats were resolved by the store",
			"max_entries", r.opts.DedupMaxEntries)
	}

	return report, nil
}

// listFiles returns the matching files sorted by name, or nil when the data
// directory does not exist.
func (r *Runner) listFiles() ([]string, error) {
	info, err := os.Stat(r.opts.DataDir)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("[Ingestion] Data directory not found, nothing to ingest", "data_dir", r.opts.DataDir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data dir %s is not a directory", r.opts.DataDir)
	}

	matches, err := filepath.Glob(filepath.Join(r.opts.DataDir, r.opts.FilePattern))
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", r.opts.FilePattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Last returns a copy of the latest pass report.
func (r *Runner) Last() PassReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report := r.last
	report.Files = make([]RunSummary, len(r.last.Files))
	copy(report.Files, r.last.Files)
	return report
}

func (r *Runner) publish(report PassReport) {
	r.mu.Lock()
	r.last = report
	r.mu.Unlock()
}
