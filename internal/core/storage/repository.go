package storage

import (
	"context"
	"errors"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when an aggregation has no qualifying rows at all.
var ErrNotFound = errors.New("no matching activity")

// ActivityWriter is the ingestion write path into the activity table.
type ActivityWriter interface {
	// InsertBatch stores records in one transaction, skipping any whose activity_id
	// already exists. Existing rows are never overwritten.
	// Returns the number of rows actually inserted. records must not be retained.
	InsertBatch(ctx context.Context, records []v1.ActivityRecord) (int64, error)

	// CountActivities returns the number of stored rows.
	CountActivities(ctx context.Context) (int64, error)
}

// AnalyticsReader runs the fixed read-side aggregations.
// Every method is a single grouped query; results are complete or an error is returned.
type AnalyticsReader interface {
	// TopMerchant returns ErrNotFound when there are no SUCCESS rows.
	TopMerchant(ctx context.Context) (TopMerchantRow, error)
	MonthlyActiveMerchants(ctx context.Context) ([]MonthlyActiveRow, error)
	ProductAdoption(ctx context.Context) ([]ProductAdoptionRow, error)
	// KYCFunnel returns only the stages that have at least one merchant, in no particular order.
	KYCFunnel(ctx context.Context) ([]KYCStageRow, error)
	FailureRates(ctx context.Context) ([]FailureRateRow, error)
}

type TopMerchantRow struct {
	MerchantID  string
	TotalAmount decimal.Decimal
}

type MonthlyActiveRow struct {
	Month           string // YYYY-MM, UTC
	ActiveMerchants int64
}

type ProductAdoptionRow struct {
	ProductID     string
	MerchantCount int64
}

type KYCStageRow struct {
	Stage         v1.KYCStage
	MerchantCount int64
}

type FailureRateRow struct {
	ProductID    string
	FailedCount  int64
	SettledCount int64 // SUCCESS + FAILED; PENDING is excluded
	FailureRate  decimal.Decimal
}
