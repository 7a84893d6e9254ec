package ingestion

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrRunInProgress is returned by Runner.Run while another pass is still running.
var ErrRunInProgress = errors.New("ingestion pass already in progress")

// ReasonCode is the low-cardinality cause of a row rejection.
type ReasonCode string

const (
	ReasonMissingActivityID ReasonCode = "missing_activity_id"
	ReasonInvalidActivityID ReasonCode = "invalid_activity_id"
	ReasonMissingMerchantID ReasonCode = "missing_merchant_id"
	ReasonMissingProductID  ReasonCode = "missing_product_id"
	ReasonInvalidStatus     ReasonCode = "invalid_status"
	ReasonMissingOccurredAt ReasonCode = "missing_occurred_at"
	ReasonInvalidOccurredAt ReasonCode = "invalid_occurred_at"
	ReasonMalformedRow      ReasonCode = "malformed_row"
)

// MalformedRowError reports a line that could not be split into the expected fields.
type MalformedRowError struct {
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: malformed row: %s", e.Line, e.Reason)
}

// ValidationError reports a decoded row that broke a field rule.
type ValidationError struct {
	Line   int
	Field  string
	Reason ReasonCode
	Value  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: %s: %s (value %q)", e.Line, e.Field, e.Reason, e.Value)
}

// DuplicateError reports an activity_id already seen earlier in the pass.
type DuplicateError struct {
	Line       int
	ActivityID uuid.UUID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("line %d: duplicate activity_id %s", e.Line, e.ActivityID)
}

// FatalIngestionError aborts the current file. Batches written before it stay committed.
type FatalIngestionError struct {
	File string
	Op   string
	Err  error
}

func (e *FatalIngestionError) Error() string {
	return fmt.Sprintf("ingest %s: %s: %v", e.File, e.Op, e.Err)
}

func (e *FatalIngestionError) Unwrap() error {
	return e.Err
}
