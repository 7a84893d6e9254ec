package ingestion

import (
	"strings"
	"time"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// kycProduct is the product whose event_type carries the funnel stage in older exports.
const kycProduct = "KYC"

// maxAmount is the largest value a NUMERIC(18,2) column holds.
var maxAmount = decimal.RequireFromString("9999999999999999.99")

// ValidationOutcome carries the non-fatal corrections applied to an accepted row.
type ValidationOutcome struct {
	AmountCoerced bool
}

// Validate turns a decoded row into an ActivityRecord.
// A rejected row returns a *ValidationError naming the first failing field.
// Amount and the optional columns are coerced, never rejected.
func Validate(row RawRow) (v1.ActivityRecord, ValidationOutcome, error) {
	var (
		rec     v1.ActivityRecord
		outcome ValidationOutcome
	)

	reject := func(c column, reason ReasonCode) (v1.ActivityRecord, ValidationOutcome, error) {
		return v1.ActivityRecord{}, ValidationOutcome{}, &ValidationError{
			Line:   row.Line,
			Field:  columnNames[c],
			Reason: reason,
			Value:  row.Get(c),
		}
	}

	rawID := row.Get(colActivityID)
	if rawID == "" {
		return reject(colActivityID, ReasonMissingActivityID)
	}
	id, err := uuid.Parse(rawID)
	if err != nil || id == uuid.Nil {
		return reject(colActivityID, ReasonInvalidActivityID)
	}
	rec.ActivityID = id

	if rec.MerchantID = row.Get(colMerchantID); rec.MerchantID == "" {
		return reject(colMerchantID, ReasonMissingMerchantID)
	}
	if rec.ProductID = row.Get(colProductID); rec.ProductID == "" {
		return reject(colProductID, ReasonMissingProductID)
	}

	status, err := v1.ParseStatus(row.Get(colStatus))
	if err != nil {
		return reject(colStatus, ReasonInvalidStatus)
	}
	rec.Status = status

	rawTS := row.Get(colOccurredAt)
	if rawTS == "" {
		return reject(colOccurredAt, ReasonMissingOccurredAt)
	}
	occurredAt, ok := parseTimestamp(rawTS)
	if !ok {
		return reject(colOccurredAt, ReasonInvalidOccurredAt)
	}
	rec.OccurredAt = occurredAt

	rec.Amount, outcome.AmountCoerced = coerceAmount(row.Get(colAmount))

	// Without a kyc_stage column only KYC product events name a funnel step.
	rawStage := row.Get(colKYCStage)
	if !row.Has(colKYCStage) {
		rawStage = ""
		if strings.EqualFold(rec.ProductID, kycProduct) {
			rawStage = row.Get(colEventType)
		}
	}
	if stage, ok := v1.ParseKYCStage(rawStage); ok {
		rec.KYCStage = &stage
	}

	rec.EventType = optional(row.Get(colEventType))
	rec.Channel = v1.NormalizeChannel(row.Get(colChannel))
	rec.Region = optional(row.Get(colRegion))
	rec.MerchantTier = optional(row.Get(colMerchantTier))

	return rec, outcome, nil
}

// coerceAmount parses raw as a non-negative amount rounded half-up to two places.
// Anything unparseable, negative or out of column range becomes 0.00 and reports true.
func coerceAmount(raw string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || amount.IsNegative() {
		return decimal.Zero, true
	}
	amount = amount.Round(v1.AmountScale)
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, true
	}
	return amount, false
}

// parseTimestamp accepts the layouts seen in activity exports. Values without
// an offset are read as UTC.
func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
