package v1

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the closed set of activity outcomes.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusPending Status = "PENDING"
	StatusFailed  Status = "FAILED"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusSuccess, StatusPending, StatusFailed}

// ParseStatus matches raw case-insensitively against the closed enumeration.
func ParseStatus(raw string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range Statuses {
		if candidate == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", raw)
}

// KYCStage is a step of the merchant KYC funnel.
type KYCStage string

const (
	KYCDocumentSubmitted KYCStage = "DOCUMENT_SUBMITTED"
	KYCVerified          KYCStage = "VERIFIED"
	KYCTierUpgraded      KYCStage = "TIER_UPGRADED"
)

// KYCFunnelOrder is the funnel, first stage first.
var KYCFunnelOrder = []KYCStage{KYCDocumentSubmitted, KYCVerified, KYCTierUpgraded}

// Older exports carry the stage in event_type under these names.
var kycStageAliases = map[string]KYCStage{
	"DOCUMENT_SUBMITTED":     KYCDocumentSubmitted,
	"VERIFIED":               KYCVerified,
	"VERIFICATION_COMPLETED": KYCVerified,
	"TIER_UPGRADED":          KYCTierUpgraded,
	"TIER_UPGRADE":           KYCTierUpgraded,
}

// ParseKYCStage returns the stage for raw, or false when raw is empty or unrecognised.
func ParseKYCStage(raw string) (KYCStage, bool) {
	stage, ok := kycStageAliases[strings.ToUpper(strings.TrimSpace(raw))]
	return stage, ok
}

var validChannels = map[string]struct{}{
	"POS":     {},
	"APP":     {},
	"USSD":    {},
	"WEB":     {},
	"OFFLINE": {},
}

// NormalizeChannel upper-cases a known channel and drops anything else.
func NormalizeChannel(raw string) *string {
	channel := strings.ToUpper(strings.TrimSpace(raw))
	if _, ok := validChannels[channel]; !ok {
		return nil
	}
	return &channel
}

// AmountScale is the number of fractional digits kept for monetary amounts.
const AmountScale = 2

// ActivityRecord is one merchant activity row, as validated by ingestion and as stored.
// Records are immutable once persisted.
type ActivityRecord struct {
	// ActivityID is the deduplication key. At most one stored row exists per ID.
	ActivityID uuid.UUID `json:"activity_id"`

	MerchantID string `json:"merchant_id"`
	ProductID  string `json:"product_id"`
	Status     Status `json:"status"`

	// Amount is never negative and always carries AmountScale fractional digits.
	Amount decimal.Decimal `json:"amount"`

	OccurredAt time.Time `json:"occurred_at"`

	// KYCStage is only set for rows that record a KYC funnel step.
	KYCStage *KYCStage `json:"kyc_stage,omitempty"`

	// Descriptive columns carried through from the export when present.
	EventType    *string `json:"event_type,omitempty"`
	Channel      *string `json:"channel,omitempty"`
	Region       *string `json:"region,omitempty"`
	MerchantTier *string `json:"merchant_tier,omitempty"`
}

// Validate checks the invariants a record must hold before it can be stored.
func (r *ActivityRecord) Validate() error {
	if r.ActivityID == uuid.Nil {
		return fmt.Errorf("activity_id is required")
	}
	if r.MerchantID == "" {
		return fmt.Errorf("merchant_id is required")
	}
	if r.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if _, err := ParseStatus(string(r.Status)); err != nil {
		return err
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("amount must not be negative")
	}
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}
	return nil
}
