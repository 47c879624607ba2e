package poolmon

import (
	"testing"
	"time"
)

func mustStamp(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(TimeLayout, s)
	if err != nil {
		t.Fatalf("bad stamp %q: %v", s, err)
	}
	return ts
}

func TestAddTotalsRowSums(t *testing.T) {
	ts := mustStamp(t, "2024-01-01T00:00:00")
	snap := &Snapshot{Entries: []Entry{
		{Tag: "Ntfx", DateTime: ts, DateTimeUTC: ts, TotalUsedBytes: 100, PagedUsedBytes: 60, NonPagedUsedBytes: 40, PagedDiff: 5, NonPagedDiff: -3},
		{Tag: "MmSt", DateTime: ts, DateTimeUTC: ts, TotalUsedBytes: 200, PagedUsedBytes: 120, NonPagedUsedBytes: 80, PagedDiff: 0, NonPagedDiff: 7},
		{Tag: "Pool", DateTime: ts, DateTimeUTC: ts, TotalUsedBytes: 50, PagedUsedBytes: 20, NonPagedUsedBytes: 30, PagedDiff: -2, NonPagedDiff: 1},
	}}
	snap.addTotalsRow()

	if len(snap.Entries) != 4 {
		t.Fatalf("expected appended TOTAL row, got %d entries", len(snap.Entries))
	}
	total := snap.Entries[3]
	if total.Tag != TotalTag {
		t.Fatalf("expected tag %q got %q", TotalTag, total.Tag)
	}
	if total.TotalUsedBytes != 350 || total.PagedUsedBytes != 200 || total.NonPagedUsedBytes != 150 {
		t.Fatalf("bad byte sums: %+v", total)
	}
	if total.PagedDiff != 3 || total.NonPagedDiff != 5 {
		t.Fatalf("bad diff sums: %+v", total)
	}
	// Non-integer columns come from the first row.
	if !total.DateTime.Equal(snap.Entries[0].DateTime) || !total.DateTimeUTC.Equal(snap.Entries[0].DateTimeUTC) {
		t.Fatalf("timestamps not copied from first row: %+v", total)
	}
}

func TestAddTotalsRowEmptySnapshot(t *testing.T) {
	snap := &Snapshot{}
	snap.addTotalsRow()
	if len(snap.Entries) != 0 {
		t.Fatalf("empty snapshot must not grow a TOTAL row: %+v", snap.Entries)
	}
}
