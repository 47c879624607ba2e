// Package poolmon ingests poolmon CSV snapshots of kernel memory-pool
// allocation counters and merges them into one time-ordered dataset.
//
// Each input file is one sampling pass: a header row followed by one row
// per allocation tag, stamped with the pass timestamp in both local and
// UTC form. The package parses every file against a fixed schema, adds a
// synthetic TOTAL row per snapshot, concatenates and time-sorts the
// whole corpus, and offers ranking (peak / change / average) and pivot
// views over the result for console reporting and charting.
package poolmon

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TotalTag is the reserved tag name of the synthetic per-snapshot sum row.
const TotalTag = "TOTAL"

// TimeLayout is the timestamp format used by poolmon CSV files. The
// strings carry no zone offset; DateTime is local wall time, DateTimeUTC
// the same instant in UTC.
const TimeLayout = "2006-01-02T15:04:05"

// TimeColumn selects which of the two timestamp columns to use.
type TimeColumn string

const (
	TimeLocal TimeColumn = "DateTime"
	TimeUTC   TimeColumn = "DateTimeUTC"
)

// MetricColumn names one of the integer counter columns.
type MetricColumn string

const (
	ColTotalUsedBytes    MetricColumn = "TotalUsedBytes"
	ColPagedDiff         MetricColumn = "PagedDiff"
	ColNonPagedDiff      MetricColumn = "NonPagedDiff"
	ColTotalDiff         MetricColumn = "TotalDiff"
	ColPagedUsedBytes    MetricColumn = "PagedUsedBytes"
	ColNonPagedUsedBytes MetricColumn = "NonPagedUsedBytes"
)

// Sentinel errors for the fatal conditions of the ingestion pipeline.
// All are wrapped with per-call context; match with errors.Is.
var (
	ErrSchemaMismatch  = errors.New("snapshot schema mismatch")
	ErrTimestampParse  = errors.New("timestamp parse failure")
	ErrRepeatedDigest  = errors.New("digest called again")
	ErrFinalized       = errors.New("accumulator already finalized")
	ErrNotDigested     = errors.New("dataset not digested yet")
	ErrInvalidSelector = errors.New("invalid column selector")
)

// ValidMetricColumns returns the selectable metric columns. TotalDiff is
// derived during digest and only exists on the aggregated dataset.
func ValidMetricColumns() []MetricColumn {
	return []MetricColumn{
		ColTotalUsedBytes, ColPagedDiff, ColNonPagedDiff,
		ColTotalDiff, ColPagedUsedBytes, ColNonPagedUsedBytes,
	}
}

// ValidTimeColumns returns the selectable timestamp columns.
func ValidTimeColumns() []TimeColumn {
	return []TimeColumn{TimeLocal, TimeUTC}
}

// ParseMetricColumn validates a metric column name.
func ParseMetricColumn(s string) (MetricColumn, error) {
	for _, c := range ValidMetricColumns() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: metric column %q", ErrInvalidSelector, s)
}

// ParseTimeColumn validates a timestamp column name.
func ParseTimeColumn(s string) (TimeColumn, error) {
	for _, c := range ValidTimeColumns() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: timestamp column %q", ErrInvalidSelector, s)
}

// fileColumns is the exact header contract for an input file: the tag,
// the two timestamps, and the five raw counters. Order in the file is
// free; names are case-sensitive. TotalDiff is absent on purpose (it is
// synthesized at digest time).
var fileColumns = []string{
	"Tag", "DateTime", "DateTimeUTC",
	"TotalUsedBytes", "PagedUsedBytes", "NonPagedUsedBytes",
	"PagedDiff", "NonPagedDiff",
}

// Entry is one measurement of one tag at one instant. The timestamps are
// properties of the source file, denormalized onto every row so the
// aggregated dataset can be sorted and grouped row-wise. TotalDiff is
// zero until Digest derives it.
type Entry struct {
	Tag               string
	DateTime          time.Time
	DateTimeUTC       time.Time
	TotalUsedBytes    int64
	PagedUsedBytes    int64
	NonPagedUsedBytes int64
	PagedDiff         int64
	NonPagedDiff      int64
	TotalDiff         int64
}

// Metric returns the value of the named counter column.
func (e *Entry) Metric(col MetricColumn) int64 {
	switch col {
	case ColTotalUsedBytes:
		return e.TotalUsedBytes
	case ColPagedUsedBytes:
		return e.PagedUsedBytes
	case ColNonPagedUsedBytes:
		return e.NonPagedUsedBytes
	case ColPagedDiff:
		return e.PagedDiff
	case ColNonPagedDiff:
		return e.NonPagedDiff
	case ColTotalDiff:
		return e.TotalDiff
	}
	return 0
}

// setMetric assigns the named raw counter column. Derived columns are
// not assignable from file input.
func (e *Entry) setMetric(col string, v int64) bool {
	switch MetricColumn(col) {
	case ColTotalUsedBytes:
		e.TotalUsedBytes = v
	case ColPagedUsedBytes:
		e.PagedUsedBytes = v
	case ColNonPagedUsedBytes:
		e.NonPagedUsedBytes = v
	case ColPagedDiff:
		e.PagedDiff = v
	case ColNonPagedDiff:
		e.NonPagedDiff = v
	default:
		return false
	}
	return true
}

// Timestamp returns the requested timestamp representation.
func (e *Entry) Timestamp(col TimeColumn) time.Time {
	if col == TimeLocal {
		return e.DateTime
	}
	return e.DateTimeUTC
}

// IsBytesMetric reports whether the column counts bytes (as opposed to
// allocations); byte metrics are rescaled to MB for presentation.
func IsBytesMetric(col MetricColumn) bool {
	return strings.HasSuffix(string(col), "Bytes")
}

// Snapshot is one parsed sampling pass: every tag measured at a single
// instant, plus (after totals synthesis) the TOTAL row.
type Snapshot struct {
	Path    string
	Entries []Entry
}

// validateHeader checks a CSV header against the file contract and maps
// column name to field index. Missing and unknown names are both fatal:
// a corpus with drifting schemas must not be silently merged.
func validateHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := idx[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, name)
		}
		idx[name] = i
	}
	for _, want := range fileColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSchemaMismatch, want)
		}
	}
	if len(idx) != len(fileColumns) {
		for name := range idx {
			known := false
			for _, want := range fileColumns {
				if name == want {
					known = true
					break
				}
			}
			if !known {
				return nil, fmt.Errorf("%w: unknown column %q", ErrSchemaMismatch, name)
			}
		}
	}
	return idx, nil
}
