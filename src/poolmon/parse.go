package poolmon

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ParseSnapshot reads one poolmon CSV file into a typed snapshot. The
// file is decoded per its byte-order mark, its header is validated
// against the fixed schema, and every row is parsed into an Entry. Any
// malformed timestamp or counter aborts the whole file: downstream
// sorting and ranking depend on these values, so nothing is coerced and
// no partial snapshot is ever returned.
func ParseSnapshot(path string) (*Snapshot, error) {
	enc, err := DetectEncoding(path)
	if err != nil {
		return nil, fmt.Errorf("detect encoding %s: %w", path, err)
	}
	Debugf("parsing %s (encoding=%s)", path, enc)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseSnapshotReader(DecodeReader(f, enc), path)
}

func parseSnapshotReader(r io.Reader, path string) (*Snapshot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	idx, err := validateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	snap := &Snapshot{Path: path}
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		line++
		entry, err := parseEntry(record, idx)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		snap.Entries = append(snap.Entries, entry)
	}
	return snap, nil
}

func parseEntry(record []string, idx map[string]int) (Entry, error) {
	var e Entry
	e.Tag = strings.TrimSpace(record[idx["Tag"]])

	var err error
	if e.DateTime, err = parseStamp(record[idx["DateTime"]]); err != nil {
		return Entry{}, fmt.Errorf("DateTime: %w", err)
	}
	if e.DateTimeUTC, err = parseStamp(record[idx["DateTimeUTC"]]); err != nil {
		return Entry{}, fmt.Errorf("DateTimeUTC: %w", err)
	}

	for _, col := range fileColumns[3:] {
		raw := strings.TrimSpace(record[idx[col]])
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: column %s value %q", ErrSchemaMismatch, col, raw)
		}
		e.setMetric(col, v)
	}
	return e, nil
}

func parseStamp(raw string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampParse, raw)
	}
	return t, nil
}
