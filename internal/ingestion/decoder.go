package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type column int

const (
	colActivityID column = iota
	colMerchantID
	colProductID
	colStatus
	colAmount
	colOccurredAt
	colKYCStage
	colEventType
	colChannel
	colRegion
	colMerchantTier
	columnCount
)

var requiredColumns = []column{colActivityID, colMerchantID, colProductID, colStatus, colAmount, colOccurredAt}

var columnNames = [columnCount]string{
	colActivityID:   "activity_id",
	colMerchantID:   "merchant_id",
	colProductID:    "product_id",
	colStatus:       "status",
	colAmount:       "amount",
	colOccurredAt:   "occurred_at",
	colKYCStage:     "kyc_stage",
	colEventType:    "event_type",
	colChannel:      "channel",
	colRegion:       "region",
	colMerchantTier: "merchant_tier",
}

// headerAliases maps normalised header names to columns, including the
// names used by the legacy activity exports.
var headerAliases = func() map[string]column {
	m := make(map[string]column, columnCount+3)
	for c, name := range columnNames {
		m[name] = column(c)
	}
	m["event_id"] = colActivityID
	m["product"] = colProductID
	m["event_timestamp"] = colOccurredAt
	return m
}()

const utf8BOM = "\ufeff"

// ErrMissingColumns is returned by NewDecoder when the header lacks a required column.
var ErrMissingColumns = errors.New("header is missing required columns")

// RawRow holds the trimmed text of one data line, keyed by column.
type RawRow struct {
	Line   int
	fields [columnCount]string
	// present records which columns the header carried.
	present [columnCount]bool
}

// Get returns the trimmed value of c, empty when the column is absent.
func (r RawRow) Get(c column) string {
	return r.fields[c]
}

// Has reports whether the source header carried column c.
func (r RawRow) Has(c column) bool {
	return r.present[c]
}

// Decoder streams RawRows from a CSV source. The first record is the header.
// Only one record is held in memory at a time.
type Decoder struct {
	r       *csv.Reader
	index   [columnCount]int
	present [columnCount]bool
	width   int
}

// NewDecoder reads the header from src and resolves the column layout.
func NewDecoder(src io.Reader) (*Decoder, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true
	// Hand-edited exports leave bare quotes inside unquoted fields; keep them as text.
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header: empty source")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	d := &Decoder{r: r, width: len(header)}
	for i := range d.index {
		d.index[i] = -1
	}

	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		c, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok || d.present[c] {
			continue
		}
		d.index[c] = i
		d.present[c] = true
	}

	var missing []string
	for _, c := range requiredColumns {
		if !d.present[c] {
			missing = append(missing, columnNames[c])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return d, nil
}

// Next returns the next data row. A line that cannot be decoded yields a
// *MalformedRowError and the decoder stays usable. io.EOF ends the stream;
// any other error means the source itself is unreadable.
func (d *Decoder) Next() (RawRow, error) {
	record, err := d.r.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return RawRow{}, &MalformedRowError{Line: perr.StartLine, Reason: perr.Err.Error()}
		}
		return RawRow{}, err
	}

	line, _ := d.r.FieldPos(0)

	if len(record) != d.width {
		return RawRow{}, &MalformedRowError{
			Line:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", d.width, len(record)),
		}
	}

	row := RawRow{Line: line, present: d.present}
	for c, idx := range d.index {
		if idx < 0 {
			continue
		}
		v := record[idx]
		if !utf8.ValidString(v) {
			return RawRow{}, &MalformedRowError{Line: line, Reason: "invalid UTF-8 in " + columnNames[c]}
		}
		row.fields[c] = strings.TrimSpace(v)
	}

	return row, nil
}
