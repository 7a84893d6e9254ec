package postgres

import (
	"context"
	"database/sql"
	"fmt"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/aevon-lab/merchant-pulse/internal/core/storage"
	"github.com/shopspring/decimal"
)

// TopMerchant returns the merchant with the highest successful volume.
// Returns storage.ErrNotFound when no SUCCESS rows exist.
func (a *Adapter) TopMerchant(ctx context.Context) (storage.TopMerchantRow, error) {
	var (
		row      storage.TopMerchantRow
		totalStr string
	)

	err := a.stmtTopMerchant.QueryRowContext(ctx).Scan(&row.MerchantID, &totalStr)
	if err == sql.ErrNoRows {
		return storage.TopMerchantRow{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.TopMerchantRow{}, fmt.Errorf("query top merchant: %w", err)
	}

	total, err := decimal.NewFromString(totalStr)
	if err != nil {
		return storage.TopMerchantRow{}, fmt.Errorf("parse total amount %q: %w", totalStr, err)
	}
	row.TotalAmount = total

	return row, nil
}

// MonthlyActiveMerchants returns distinct successful merchants per UTC month, oldest first.
func (a *Adapter) MonthlyActiveMerchants(ctx context.Context) ([]storage.MonthlyActiveRow, error) {
	rows, err := a.stmtMonthlyActive.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query monthly active merchants: %w", err)
	}
	defer rows.Close()

	results := []storage.MonthlyActiveRow{}
	for rows.Next() {
		var r storage.MonthlyActiveRow
		if err := rows.Scan(&r.Month, &r.ActiveMerchants); err != nil {
			return nil, fmt.Errorf("scan monthly active row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly active rows: %w", err)
	}

	return results, nil
}

// ProductAdoption returns distinct merchants per product, most adopted first.
func (a *Adapter) ProductAdoption(ctx context.Context) ([]storage.ProductAdoptionRow, error) {
	rows, err := a.stmtProductAdoption.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query product adoption: %w", err)
	}
	defer rows.Close()

	results := []storage.ProductAdoptionRow{}
	for rows.Next() {
		var r storage.ProductAdoptionRow
		if err := rows.Scan(&r.ProductID, &r.MerchantCount); err != nil {
			return nil, fmt.Errorf("scan product adoption row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product adoption rows: %w", err)
	}

	return results, nil
}

// KYCFunnel returns distinct successful merchants per recorded KYC stage.
func (a *Adapter) KYCFunnel(ctx context.Context) ([]storage.KYCStageRow, error) {
	rows, err := a.stmtKYCFunnel.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query kyc funnel: %w", err)
	}
	defer rows.Close()

	results := []storage.KYCStageRow{}
	for rows.Next() {
		var (
			stage string
			count int64
		)
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("scan kyc funnel row: %w", err)
		}
		results = append(results, storage.KYCStageRow{Stage: v1.KYCStage(stage), MerchantCount: count})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kyc funnel rows: %w", err)
	}

	return results, nil
}

// FailureRates returns the failure rate per product, highest first.
func (a *Adapter) FailureRates(ctx context.Context) ([]storage.FailureRateRow, error) {
	rows, err := a.stmtFailureRates.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query failure rates: %w", err)
	}
	defer rows.Close()

	results := []storage.FailureRateRow{}
	for rows.Next() {
		r, err := scanFailureRateRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failure rate rows: %w", err)
	}

	return results, nil
}

func scanFailureRateRow(row scanner) (storage.FailureRateRow, error) {
	var (
		r       storage.FailureRateRow
		rateStr string
	)
	if err := row.Scan(&r.ProductID, &r.FailedCount, &r.SettledCount, &rateStr); err != nil {
		return storage.FailureRateRow{}, fmt.Errorf("scan failure rate row: %w", err)
	}

	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return storage.FailureRateRow{}, fmt.Errorf("parse failure rate %q: %w", rateStr, err)
	}
	r.FailureRate = rate

	return r, nil
}
