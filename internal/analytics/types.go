package analytics

import (
	"encoding/json"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
)

// Amounts and rates are emitted as exact JSON numbers rendered from decimals.

// TopMerchant is the merchant with the highest total SUCCESS amount.
type TopMerchant struct {
	MerchantID            string      `json:"merchant_id"`
	TotalSuccessfulAmount json.Number `json:"total_successful_amount"`
}

// MonthlyActiveMerchants counts distinct merchants with a SUCCESS activity in a UTC month.
type MonthlyActiveMerchants struct {
	Month               string `json:"month"` // YYYY-MM
	ActiveMerchantCount int64  `json:"active_merchant_count"`
}

// ProductAdoption counts distinct merchants that used a product, any status.
type ProductAdoption struct {
	ProductID     string `json:"product_id"`
	MerchantCount int64  `json:"merchant_count"`
}

// KYCFunnelStage counts distinct merchants that completed a KYC stage successfully.
type KYCFunnelStage struct {
	Stage         v1.KYCStage `json:"stage"`
	MerchantCount int64       `json:"merchant_count"`
}

// FailureRate is FAILED / (SUCCESS + FAILED) for one product. PENDING counts toward neither.
type FailureRate struct {
	ProductID    string      `json:"product_id"`
	FailureRate  json.Number `json:"failure_rate"`
	FailedCount  int64       `json:"failed_count"`
	SettledCount int64       `json:"settled_count"`
}

func decimalNumber(s string) json.Number {
	return json.Number(s)
}
