package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idOne = "00000000-0000-4000-8000-000000000001"
	idTwo = "00000000-0000-4000-8000-000000000002"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func csvRow(id, merchant, product, status, amount, occurredAt, stage string) string {
	return strings.Join([]string{id, merchant, product, status, amount, occurredAt, stage}, ",") + "\n"
}

func assertSummaryBalanced(t *testing.T, s RunSummary) {
	t.Helper()
	assert.Equal(t, s.RowsSeen, s.Accepted+s.Rejected+s.Duplicates, "rows_seen must equal accepted+rejected+duplicates")
	assert.Equal(t, int64(s.Accepted), s.Inserted+s.AlreadyStored)
}

func TestIngestFile_ThreeRowScenario(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "activities_2024.csv", canonicalHeader+
		csvRow(idOne, "A", "X", "SUCCESS", "100", "2024-01-10", "")+
		csvRow(idOne, "A", "X", "SUCCESS", "100", "2024-01-10", "")+
		csvRow(idTwo, "B", "X", "FAILED", "bad", "2024-01-12", ""))

	store := newMemStore()
	coord := NewCoordinator(store, CoordinatorOptions{BatchSize: 10})

	summary := coord.IngestFile(context.Background(), path, NewDuplicateFilter(0))

	require.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, "activities_2024.csv", summary.File)
	assert.Equal(t, 3, summary.RowsSeen)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, int64(2), summary.Inserted)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 0, summary.Rejected)
	assert.Equal(t, 1, summary.CoercedAmounts)
	assertSummaryBalanced(t, summary)

	require.Equal(t, 2, store.count())
	rec, ok := store.get(idTwo)
	require.True(t, ok)
	assert.Equal(t, "0.00", rec.Amount.StringFixed(2))
	assert.Equal(t, v1.StatusFailed, rec.Status)
}

func TestIngestFile_DuplicateCopiesStoreOnce(t *testing.T) {
	const copies = 7

	var b strings.Builder
	b.WriteString(canonicalHeader)
	for i := 0; i < copies; i++ {
		b.WriteString(csvRow(idOne, "MRC-001", "POS", "SUCCESS", fmt.Sprintf("%d", i+1), "2024-02-01", ""))
	}
	path := writeCSV(t, t.TempDir(), "activities_dups.csv", b.String())

	store := newMemStore()
	summary := NewCoordinator(store, CoordinatorOptions{BatchSize: 2}).
		IngestFile(context.Background(), path, NewDuplicateFilter(0))

	require.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, 1, summary.Accepted)
	assert.Equal(t, copies-1, summary.Duplicates)
	require.Equal(t, 1, store.count())

	rec, _ := store.get(idOne)
	assert.Equal(t, "1.00", rec.Amount.StringFixed(2), "first occurrence wins")
}

func TestIngestFile_ReingestIsIdempotent(t *testing.T) {
	var b strings.Builder
	b.WriteString(canonicalHeader)
	for i := 0; i < 25; i++ {
		b.WriteString(csvRow(uuid.NewString(), fmt.Sprintf("MRC-%03d", i%4), "POS", "SUCCESS", "10.00", "2024-03-01", ""))
	}
	path := writeCSV(t, t.TempDir(), "activities_a.csv", b.String())

	store := newMemStore()
	coord := NewCoordinator(store, CoordinatorOptions{BatchSize: 10})

	first := coord.IngestFile(context.Background(), path, NewDuplicateFilter(0))
	require.Equal(t, StateCompleted, first.State)
	require.Equal(t, int64(25), first.Inserted)

	second := coord.IngestFile(context.Background(), path, NewDuplicateFilter(0))
	require.Equal(t, StateCompleted, second.State)
	assert.Equal(t, int64(0), second.Inserted)
	assert.Equal(t, int64(25), second.AlreadyStored)
	assertSummaryBalanced(t, second)

	require.Equal(t, 25, store.count())
}

func TestIngestFile_MemoryIsBoundedByBatchSize(t *testing.T) {
	const (
		rows      = 20_000
		batchSize = 128
	)

	var b strings.Builder
	b.WriteString(canonicalHeader)
	for i := 0; i < rows; i++ {
		b.WriteString(csvRow(uuid.NewString(), fmt.Sprintf("MRC-%04d", i%500), "CARD", "SUCCESS", "1.00", "2024-04-01T00:00:00Z", ""))
	}
	path := writeCSV(t, t.TempDir(), "activities_large.csv", b.String())

	store := newMemStore()
	observer := &recordingObserver{}
	summary := NewCoordinator(store, CoordinatorOptions{BatchSize: batchSize, Observer: observer}).
		IngestFile(context.Background(), path, NewDuplicateFilter(0))

	require.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, rows, summary.Accepted)
	assert.LessOrEqual(t, summary.PeakBuffered, batchSize)
	for _, n := range store.batchSizes {
		assert.LessOrEqual(t, n, batchSize)
	}
	assert.Equal(t, (rows+batchSize-1)/batchSize, len(store.batchSizes))
	assert.Equal(t, int64(rows), observer.inserted)
	require.Len(t, observer.files, 1)
}

func TestIngestFile_RowErrorsDoNotFailFile(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "activities_mixed.csv", canonicalHeader+
		csvRow(idOne, "MRC-001", "POS", "SUCCESS", "5", "2024-01-01", "")+
		"not,enough,fields\n"+
		csvRow("not-a-uuid", "MRC-002", "POS", "SUCCESS", "5", "2024-01-01", "")+
		csvRow(idTwo, "MRC-003", "POS", "UNKNOWN", "5", "2024-01-01", "")+
		csvRow(uuid.NewString(), "", "POS", "SUCCESS", "5", "2024-01-01", "")+
		csvRow(uuid.NewString(), "MRC-004", "POS", "PENDING", "-3", "2024-01-01", ""))

	store := newMemStore()
	summary := NewCoordinator(store, CoordinatorOptions{}).
		IngestFile(context.Background(), path, NewDuplicateFilter(0))

	require.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, 6, summary.RowsSeen)
	assert.Equal(t, 2, summary.Accepted)
	assert.Equal(t, 4, summary.Rejected)
	assert.Equal(t, map[ReasonCode]int{
		ReasonMalformedRow:      1,
		ReasonInvalidActivityID: 1,
		ReasonInvalidStatus:     1,
		ReasonMissingMerchantID: 1,
	}, summary.RejectedByReason)
	assert.Equal(t, 1, summary.CoercedAmounts)
	assertSummaryBalanced(t, summary)
	require.Equal(t, 2, store.count())
}

func TestIngestFile_UnreadableSourceFails(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		summary := NewCoordinator(newMemStore(), CoordinatorOptions{}).
			IngestFile(context.Background(), filepath.Join(dir, "nope.csv"), nil)

		require.Equal(t, StateFailed, summary.State)
		var fatal *FatalIngestionError
		require.True(t, errors.As(summary.Err, &fatal))
		assert.Equal(t, "open", fatal.Op)
		assert.True(t, errors.Is(summary.Err, os.ErrNotExist))
	})

	t.Run("header missing a column", func(t *testing.T) {
		path := writeCSV(t, dir, "activities_bad.csv", "activity_id,merchant_id,product_id,status,amount\n"+
			idOne+",MRC-001,POS,SUCCESS,10\n")

		store := newMemStore()
		summary := NewCoordinator(store, CoordinatorOptions{}).IngestFile(context.Background(), path, nil)

		require.Equal(t, StateFailed, summary.State)
		assert.True(t, errors.Is(summary.Err, ErrMissingColumns))
		assert.Contains(t, summary.Error, "occurred_at")
		assert.Equal(t, 0, store.count())
	})
}

func TestIngestFile_WriteFailureKeepsEarlierBatches(t *testing.T) {
	var b strings.Builder
	b.WriteString(canonicalHeader)
	ids := make([]string, 5)
	for i := range ids {
		ids[i] = uuid.NewString()
		b.WriteString(csvRow(ids[i], "MRC-001", "POS", "SUCCESS", "1", "2024-01-01", ""))
	}
	path := writeCSV(t, t.TempDir(), "activities_fail.csv", b.String())

	store := newMemStore()
	store.failOnCall = 2
	filter := NewDuplicateFilter(0)

	summary := NewCoordinator(store, CoordinatorOptions{BatchSize: 2}).
		IngestFile(context.Background(), path, filter)

	require.Equal(t, StateFailed, summary.State)
	var fatal *FatalIngestionError
	require.True(t, errors.As(summary.Err, &fatal))
	assert.Equal(t, "activities_fail.csv", fatal.File)
	assert.ErrorIs(t, summary.Err, errStoreDown)

	assert.Equal(t, int64(2), summary.Inserted)
	require.Equal(t, 2, store.count())

	// IDs from the unwritten batch can be accepted again later in the pass.
	assert.True(t, filter.Seen(uuid.MustParse(ids[0])))
	assert.False(t, filter.Seen(uuid.MustParse(ids[2])))
	assert.False(t, filter.Seen(uuid.MustParse(ids[3])))
}

func TestIngestFile_CancelledContextFails(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "activities_cancel.csv", canonicalHeader+
		csvRow(idOne, "MRC-001", "POS", "SUCCESS", "1", "2024-01-01", ""))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := NewCoordinator(newMemStore(), CoordinatorOptions{}).IngestFile(ctx, path, nil)

	require.Equal(t, StateFailed, summary.State)
	assert.ErrorIs(t, summary.Err, context.Canceled)
}

func TestIngestFile_KYCFunnelRows(t *testing.T) {
	var b strings.Builder
	b.WriteString(canonicalHeader)
	for _, m := range []string{"M1", "M2", "M3"} {
		b.WriteString(csvRow(uuid.NewString(), m, "KYC", "SUCCESS", "0", "2024-01-01", "DOCUMENT_SUBMITTED"))
	}
	for _, m := range []string{"M1", "M2"} {
		b.WriteString(csvRow(uuid.NewString(), m, "KYC", "SUCCESS", "0", "2024-01-02", "VERIFIED"))
	}
	b.WriteString(csvRow(uuid.NewString(), "M1", "KYC", "SUCCESS", "0", "2024-01-03", "TIER_UPGRADED"))
	path := writeCSV(t, t.TempDir(), "activities_kyc.csv", b.String())

	store := newMemStore()
	summary := NewCoordinator(store, CoordinatorOptions{}).IngestFile(context.Background(), path, nil)
	require.Equal(t, StateCompleted, summary.State)

	perStage := map[v1.KYCStage]map[string]struct{}{}
	for _, rec := range store.rows {
		require.NotNil(t, rec.KYCStage)
		if perStage[*rec.KYCStage] == nil {
			perStage[*rec.KYCStage] = map[string]struct{}{}
		}
		perStage[*rec.KYCStage][rec.MerchantID] = struct{}{}
	}
	assert.Len(t, perStage[v1.KYCDocumentSubmitted], 3)
	assert.Len(t, perStage[v1.KYCVerified], 2)
	assert.Len(t, perStage[v1.KYCTierUpgraded], 1)
}
