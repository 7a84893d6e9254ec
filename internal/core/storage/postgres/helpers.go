package postgres

import (
	"strconv"
	"strings"

	v1 "github.com/aevon-lab/merchant-pulse/internal/api/v1"
)

// buildInsertActivities renders a multi-row insert for rows records.
// Placeholders are numbered row-major in activityColumns order.
func buildInsertActivities(rows int) string {
	var b strings.Builder
	b.Grow(len(queryInsertActivitiesPrefix) + rows*activityColumnCount*5 + len(queryInsertActivitiesSuffix))
	b.WriteString(queryInsertActivitiesPrefix)

	param := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := 0; c < activityColumnCount; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(param))
			param++
		}
		b.WriteByte(')')
	}

	b.WriteString(queryInsertActivitiesSuffix)
	return b.String()
}

// appendActivityArgs appends rec's bind values in activityColumns order.
// Optional columns are bound as SQL NULL when absent.
func appendActivityArgs(args []interface{}, rec v1.ActivityRecord) []interface{} {
	var kycStage interface{}
	if rec.KYCStage != nil {
		kycStage = string(*rec.KYCStage)
	}

	return append(args,
		rec.ActivityID.String(),
		rec.MerchantID,
		rec.ProductID,
		string(rec.Status),
		rec.Amount.StringFixed(v1.AmountScale),
		rec.OccurredAt.UTC(),
		kycStage,
		nullableString(rec.EventType),
		nullableString(rec.Channel),
		nullableString(rec.Region),
		nullableString(rec.MerchantTier),
	)
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

type scanner interface {
	Scan(dest ...interface{}) error
}
