package analytics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/aevon-lab/merchant-pulse/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultQueryTimeout = 30 * time.Second

	queryTopMerchant     = "top_merchant"
	queryMonthlyActive   = "monthly_active_merchants"
	queryProductAdoption = "product_adoption"
	queryKYCFunnel       = "kyc_funnel"
	queryFailureRates    = "failure_rates"
)

var (
	// ErrNoData means the aggregation has no qualifying rows. Returns HTTP 404.
	ErrNoData = errors.New("no data available")

	// ErrInvalidQuery marks request validation errors that should return HTTP 400.
	ErrInvalidQuery = errors.New("invalid analytics query")

	// ErrQueryTimeout marks a query that ran past its deadline. Returns HTTP 504.
	ErrQueryTimeout = errors.New("analytics query timed out")
)

// QueryObserver receives the outcome of every store query.
type QueryObserver interface {
	QueryFinished(query string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) QueryFinished(string, time.Duration, error) {}

// Options tunes a Service.
type Options struct {
	// QueryTimeout bounds each store query, including the wait for a pooled connection.
	QueryTimeout time.Duration
	Observer     QueryObserver
}

// Service answers the fixed analytics questions from a read-only store.
// Concurrent identical questions share one store query.
type Service struct {
	reader       storage.AnalyticsReader
	queryTimeout time.Duration
	observer     QueryObserver
	group        singleflight.Group
}

// NewService creates a new analytics service.
func NewService(reader storage.AnalyticsReader, opts Options) *Service {
	if reader == nil {
		panic("analytics: reader must not be nil")
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	return &Service{
		reader:       reader,
		queryTimeout: opts.QueryTimeout,
		observer:     opts.Observer,
	}
}

// TopMerchant returns the merchant with the highest successful volume.
func (s *Service) TopMerchant(ctx context.Context) (*TopMerchant, error) {
	v, err := s.do(ctx, queryTopMerchant, func(ctx context.Context) (interface{}, error) {
		return s.reader.TopMerchant(ctx)
	})
	if err != nil {
		return nil, err
	}

	row := v.(storage.TopMerchantRow)
	return &TopMerchant{
		MerchantID:            row.MerchantID,
		TotalSuccessfulAmount: decimalNumber(row.TotalAmount.StringFixed(v1.AmountScale)),
	}, nil
}

// MonthlyActiveMerchants returns active merchant counts per UTC month, oldest first.
func (s *Service) MonthlyActiveMerchants(ctx context.Context) ([]MonthlyActiveMerchants, error) {
	v, err := s.do(ctx, queryMonthlyActive, func(ctx context.Context) (interface{}, error) {
		return s.reader.MonthlyActiveMerchants(ctx)
	})
	if err != nil {
		return nil, err
	}

	rows := v.([]storage.MonthlyActiveRow)
	out := make([]MonthlyActiveMerchants, len(rows))
	for i, r := range rows {
		out[i] = MonthlyActiveMerchants{Month: r.Month, ActiveMerchantCount: r.ActiveMerchants}
	}
	return out, nil
}

// ProductAdoption returns merchant counts per product, most adopted first.
// limit 0 returns every product.
func (s *Service) ProductAdoption(ctx context.Context, limit int) ([]ProductAdoption, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	v, err := s.do(ctx, queryProductAdoption, func(ctx context.Context) (interface{}, error) {
		return s.reader.ProductAdoption(ctx)
	})
	if err != nil {
		return nil, err
	}

	rows := applyLimit(v.([]storage.ProductAdoptionRow), limit)
	out := make([]ProductAdoption, len(rows))
	for i, r := range rows {
		out[i] = ProductAdoption{ProductID: r.ProductID, MerchantCount: r.MerchantCount}
	}
	return out, nil
}

// KYCFunnel returns every funnel stage in order. Stages nobody reached report 0.
// Each count is independent: a merchant may be counted at a later stage
// without a recorded earlier one.
func (s *Service) KYCFunnel(ctx context.Context) ([]KYCFunnelStage, error) {
	v, err := s.do(ctx, queryKYCFunnel, func(ctx context.Context) (interface{}, error) {
		return s.reader.KYCFunnel(ctx)
	})
	if err != nil {
		return nil, err
	}

	counts := make(map[v1.KYCStage]int64, len(v1.KYCFunnelOrder))
	for _, r := range v.([]storage.KYCStageRow) {
		counts[r.Stage] = r.MerchantCount
	}

	out := make([]KYCFunnelStage, len(v1.KYCFunnelOrder))
	for i, stage := range v1.KYCFunnelOrder {
		out[i] = KYCFunnelStage{Stage: stage, MerchantCount: counts[stage]}
	}
	return out, nil
}

// FailureRates returns the failure rate per product, highest first.
// limit 0 returns every product.
func (s *Service) FailureRates(ctx context.Context, limit int) ([]FailureRate, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	v, err := s.do(ctx, queryFailureRates, func(ctx context.Context) (interface{}, error) {
		return s.reader.FailureRates(ctx)
	})
	if err != nil {
		return nil, err
	}

	rows := applyLimit(v.([]storage.FailureRateRow), limit)
	out := make([]FailureRate, len(rows))
	for i, r := range rows {
		out[i] = FailureRate{
			ProductID:    r.ProductID,
			FailureRate:  decimalNumber(r.FailureRate.String()),
			FailedCount:  r.FailedCount,
			SettledCount: r.SettledCount,
		}
	}
	return out, nil
}

// do runs fn once per key for all concurrent callers. The shared query is
// detached from any single caller's cancellation and bounded by queryTimeout;
// each caller still stops waiting when its own ctx ends.
func (s *Service) do(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.queryTimeout)
		defer cancel()

		start := time.Now()
		v, err := fn(qctx)
		elapsed := time.Since(start)

		err = s.classify(qctx, key, elapsed, err)
		s.observer.QueryFinished(key, elapsed, err)
		if err != nil {
			return nil, err
		}
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.Debug("[Analytics] Shared query result", "query", key)
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// classify maps a store error onto the service's sentinel errors.
func (s *Service) classify(qctx context.Context, key string, elapsed time.Duration, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return ErrNoData
	case errors.Is(qctx.Err(), context.DeadlineExceeded):
		slog.Warn("[Analytics] Query timed out", "query", key, "timeout", s.queryTimeout, "error", err)
		return fmt.Errorf("%w: %s: %w", ErrQueryTimeout, key, err)
	default:
		slog.Error("[Analytics] Query failed", "query", key, "duration", elapsed, "error", err)
		return fmt.Errorf("query %s: %w", key, err)
	}
}

func validateLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: limit must be a positive integer", ErrInvalidQuery)
	}
	return nil
}

func applyLimit[T any](rows []T, limit int) []T {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}
