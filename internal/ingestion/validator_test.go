package ingestion

import (
	"errors"
	"testing"
	"time"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRow() RawRow {
	row := RawRow{Line: 2}
	set := map[column]string{
		colActivityID: "11111111-1111-4111-8111-111111111111",
		colMerchantID: "MRC-001",
		colProductID:  "POS",
		colStatus:     "SUCCESS",
		colAmount:     "100.00",
		colOccurredAt: "2024-01-15T10:00:00Z",
		colKYCStage:   "",
	}
	for c, v := range set {
		row.fields[c] = v
		row.present[c] = true
	}
	return row
}

func withField(row RawRow, c column, v string) RawRow {
	row.fields[c] = v
	row.present[c] = true
	return row
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		row    RawRow
		field  string
		reason ReasonCode
	}{
		{"empty activity id", withField(validRow(), colActivityID, ""), "activity_id", ReasonMissingActivityID},
		{"non uuid activity id", withField(validRow(), colActivityID, "evt-1"), "activity_id", ReasonInvalidActivityID},
		{"nil uuid activity id", withField(validRow(), colActivityID, "00000000-0000-0000-0000-000000000000"), "activity_id", ReasonInvalidActivityID},
		{"empty merchant", withField(validRow(), colMerchantID, ""), "merchant_id", ReasonMissingMerchantID},
		{"empty product", withField(validRow(), colProductID, ""), "product_id", ReasonMissingProductID},
		{"unknown status", withField(validRow(), colStatus, "REVERSED"), "status", ReasonInvalidStatus},
		{"empty status", withField(validRow(), colStatus, ""), "status", ReasonInvalidStatus},
		{"empty timestamp", withField(validRow(), colOccurredAt, ""), "occurred_at", ReasonMissingOccurredAt},
		{"garbage timestamp", withField(validRow(), colOccurredAt, "15/01/2024"), "occurred_at", ReasonInvalidOccurredAt},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Validate(tc.row)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.reason, verr.Reason)
			assert.Equal(t, 2, verr.Line)
		})
	}
}

func TestValidate_AmountCoercion(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		coerced bool
	}{
		{"100", "100.00", false},
		{"12.345", "12.35", false},
		{"12.344", "12.34", false},
		{"0", "0.00", false},
		{"bad", "0.00", true},
		{"", "0.00", true},
		{"-5.00", "0.00", true},
		{"1e20", "0.00", true},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			rec, outcome, err := Validate(withField(validRow(), colAmount, tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, rec.Amount.StringFixed(v1.AmountScale))
			assert.Equal(t, tc.coerced, outcome.AmountCoerced)
			assert.False(t, rec.Amount.LessThan(decimal.Zero))
		})
	}
}

func TestValidate_TimestampLayouts(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2024-01-15T10:00:00Z", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2024-01-15T10:00:00.123456+01:00", time.Date(2024, 1, 15, 9, 0, 0, 123456000, time.UTC)},
		{"2024-01-15T10:00:00", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2024-01-15 10:00:00", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)},
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			rec, _, err := Validate(withField(validRow(), colOccurredAt, tc.raw))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(rec.OccurredAt))
			assert.Equal(t, time.UTC, rec.OccurredAt.Location())
		})
	}
}

func TestValidate_StatusIsCaseInsensitive(t *testing.T) {
	rec, _, err := Validate(withField(validRow(), colStatus, "failed"))
	require.NoError(t, err)
	require.Equal(t, v1.StatusFailed, rec.Status)
}

func TestValidate_KYCStage(t *testing.T) {
	t.Run("explicit column", func(t *testing.T) {
		rec, _, err := Validate(withField(validRow(), colKYCStage, "verified"))
		require.NoError(t, err)
		require.NotNil(t, rec.KYCStage)
		require.Equal(t, v1.KYCVerified, *rec.KYCStage)
	})

	t.Run("unknown value is dropped", func(t *testing.T) {
		rec, _, err := Validate(withField(validRow(), colKYCStage, "ONBOARDED"))
		require.NoError(t, err)
		require.Nil(t, rec.KYCStage)
	})

	t.Run("derived from event_type when column is absent", func(t *testing.T) {
		row := withField(validRow(), colProductID, "kyc")
		row.present[colKYCStage] = false
		row = withField(row, colEventType, "VERIFICATION_COMPLETED")

		rec, _, err := Validate(row)
		require.NoError(t, err)
		require.NotNil(t, rec.KYCStage)
		require.Equal(t, v1.KYCVerified, *rec.KYCStage)
		require.Equal(t, "VERIFICATION_COMPLETED", *rec.EventType)
	})

	t.Run("event_type ignored for other products", func(t *testing.T) {
		row := validRow()
		row.present[colKYCStage] = false
		row = withField(row, colEventType, "VERIFIED")

		rec, _, err := Validate(row)
		require.NoError(t, err)
		require.Nil(t, rec.KYCStage)
		require.Equal(t, "VERIFIED", *rec.EventType)
	})

	t.Run("event_type ignored when column is present", func(t *testing.T) {
		rec, _, err := Validate(withField(validRow(), colEventType, "TIER_UPGRADE"))
		require.NoError(t, err)
		require.Nil(t, rec.KYCStage)
	})
}

func TestValidate_OptionalColumns(t *testing.T) {
	row := withField(validRow(), colChannel, "ussd")
	row = withField(row, colRegion, "Kano")
	row = withField(row, colMerchantTier, "")

	rec, _, err := Validate(row)
	require.NoError(t, err)
	require.Equal(t, "USSD", *rec.Channel)
	require.Equal(t, "Kano", *rec.Region)
	require.Nil(t, rec.MerchantTier)

	rec, _, err = Validate(withField(validRow(), colChannel, "CARRIER_PIGEON"))
	require.NoError(t, err)
	require.Nil(t, rec.Channel)
}
