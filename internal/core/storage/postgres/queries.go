package postgres

// SQL for the merchant_activities table.

const (
	// activityColumns is the insert column order; buildInsertActivities and appendActivityArgs follow it.
	activityColumns = `activity_id, merchant_id, product_id, status, amount, occurred_at,
			kyc_stage, event_type, channel, region, merchant_tier`

	activityColumnCount = 11

	// maxBindParams is the PostgreSQL wire-protocol limit on parameters per statement.
	maxBindParams = 65535

	// queryInsertActivitiesPrefix starts a multi-row insert. Rows whose activity_id is
	// already stored are skipped, never updated: records are immutable once written.
	queryInsertActivitiesPrefix = `
		INSERT INTO merchant_activities (
			` + activityColumns + `
		) VALUES `

	queryInsertActivitiesSuffix = `
		ON CONFLICT (activity_id) DO NOTHING`

	queryCountActivities = `SELECT COUNT(*) FROM merchant_activities`

	// queryTopMerchant ranks merchants by successful volume.
	// Ties (including all-zero volumes) break on the lowest merchant_id by byte order.
	queryTopMerchant = `
		SELECT merchant_id, SUM(amount)::TEXT AS total_amount
		FROM merchant_activities
		WHERE status = 'SUCCESS'
		GROUP BY merchant_id
		ORDER BY SUM(amount) DESC, merchant_id COLLATE "C" ASC
		LIMIT 1
	`

	// queryMonthlyActiveMerchants buckets by UTC calendar month.
	queryMonthlyActiveMerchants = `
		SELECT
			to_char(occurred_at AT TIME ZONE 'UTC', 'YYYY-MM') AS month,
			COUNT(DISTINCT merchant_id) AS active_merchants
		FROM merchant_activities
		WHERE status = 'SUCCESS'
		GROUP BY month
		ORDER BY month ASC
	`

	// queryProductAdoption counts merchants with any activity on a product, whatever the status.
	queryProductAdoption = `
		SELECT product_id, COUNT(DISTINCT merchant_id) AS merchant_count
		FROM merchant_activities
		GROUP BY product_id
		ORDER BY merchant_count DESC, product_id COLLATE "C" ASC
	`

	// queryKYCFunnel is served by the partial index ix_ma_kyc_success.
	queryKYCFunnel = `
		SELECT kyc_stage, COUNT(DISTINCT merchant_id) AS merchant_count
		FROM merchant_activities
		WHERE status = 'SUCCESS'
		  AND kyc_stage IS NOT NULL
		GROUP BY kyc_stage
	`

	// queryFailureRates computes FAILED / (SUCCESS + FAILED) per product in one pass.
	// PENDING rows count toward neither side; a zero denominator yields 0.
	// Ordering uses the exact ratio; only the reported rate is rounded.
	queryFailureRates = `
		WITH counts AS (
			SELECT
				product_id,
				SUM(CASE WHEN status = 'FAILED' THEN 1 ELSE 0 END) AS failed_count,
				SUM(CASE WHEN status IN ('SUCCESS', 'FAILED') THEN 1 ELSE 0 END) AS settled_count
			FROM merchant_activities
			GROUP BY product_id
		),
		rates AS (
			SELECT
				product_id,
				failed_count,
				settled_count,
				COALESCE(failed_count::NUMERIC / NULLIF(settled_count, 0), 0) AS exact_rate
			FROM counts
		)
		SELECT product_id, failed_count, settled_count, ROUND(exact_rate, 4)::TEXT AS failure_rate
		FROM rates
		ORDER BY rates.exact_rate DESC, product_id COLLATE "C" ASC
	`
)
