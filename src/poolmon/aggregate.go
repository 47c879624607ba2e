package poolmon

import (
	"fmt"
	"sort"
)

// PoolEntries accumulates parsed snapshots and digests them into one
// time-ordered dataset. The lifecycle is strictly two-phase: while
// accumulating, snapshots may be added in any order; Digest finalizes
// the accumulator exactly once, after which the dataset is read-only and
// both adding and re-digesting fail fast.
type PoolEntries struct {
	pending  []*Snapshot
	entries  []Entry
	digested bool
}

// NewPoolEntries returns an empty accumulator.
func NewPoolEntries() *PoolEntries {
	return &PoolEntries{}
}

// AddCSVFile parses one snapshot file and adds it to the accumulator.
func (p *PoolEntries) AddCSVFile(path string) error {
	snap, err := ParseSnapshot(path)
	if err != nil {
		return err
	}
	return p.AddSnapshot(snap)
}

// AddSnapshot adds an already-parsed snapshot to the accumulator.
func (p *PoolEntries) AddSnapshot(s *Snapshot) error {
	if p.digested {
		return fmt.Errorf("add snapshot %s: %w", s.Path, ErrFinalized)
	}
	p.pending = append(p.pending, s)
	return nil
}

// Digest finalizes the accumulator: it synthesizes each snapshot's TOTAL
// row, concatenates all rows into one table, sorts them ascending by the
// UTC timestamp (stable, so rows sharing an instant keep their relative
// order), and derives TotalDiff on every row. The accumulation buffer is
// consumed; a second Digest fails with ErrRepeatedDigest instead of
// recomputing or returning a stale result.
func (p *PoolEntries) Digest() error {
	if p.digested {
		return ErrRepeatedDigest
	}
	p.digested = true

	rows := 0
	for _, s := range p.pending {
		s.addTotalsRow()
		rows += len(s.Entries)
	}
	p.entries = make([]Entry, 0, rows)
	for _, s := range p.pending {
		p.entries = append(p.entries, s.Entries...)
	}
	p.pending = nil

	sort.SliceStable(p.entries, func(i, j int) bool {
		return p.entries[i].DateTimeUTC.Before(p.entries[j].DateTimeUTC)
	})
	for i := range p.entries {
		p.entries[i].TotalDiff = p.entries[i].PagedDiff + p.entries[i].NonPagedDiff
	}
	Debugf("digested %d rows", len(p.entries))
	return nil
}

// Digested reports whether the accumulator has been finalized.
func (p *PoolEntries) Digested() bool { return p.digested }

// Entries returns the aggregated, time-sorted dataset. Callers must not
// modify the returned slice.
func (p *PoolEntries) Entries() ([]Entry, error) {
	if !p.digested {
		return nil, ErrNotDigested
	}
	return p.entries, nil
}

// AllTags returns every distinct tag (TOTAL included) in dataset order.
func (p *PoolEntries) AllTags() ([]string, error) {
	if !p.digested {
		return nil, ErrNotDigested
	}
	seen := make(map[string]struct{}, 64)
	var tags []string
	for i := range p.entries {
		tag := p.entries[i].Tag
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}
