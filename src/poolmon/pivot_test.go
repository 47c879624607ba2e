package poolmon

import (
	"errors"
	"math"
	"testing"
)

func TestPivotBytesMetricScaledToMB(t *testing.T) {
	pe := NewPoolEntries()
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T00:00:00", []testRow{{"X", 100, 0, 0, 0, 0}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T01:00:00", []testRow{{"X", 300, 0, 0, 0, 0}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := pe.Digest(); err != nil {
		t.Fatalf("digest: %v", err)
	}

	pt, err := pe.Pivot([]string{"X"}, TimeUTC, ColTotalUsedBytes)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if len(pt.Series) != 1 || pt.Series[0].Tag != "X" {
		t.Fatalf("expected single X column, got %+v", pt.Series)
	}
	if len(pt.Times) != 2 || !pt.Times[0].Before(pt.Times[1]) {
		t.Fatalf("expected 2 ascending timestamps, got %v", pt.Times)
	}
	// Byte counters are reported in MB for the renderer's axis.
	want0, want1 := 100.0/(1024*1024), 300.0/(1024*1024)
	got := pt.Series[0].Values
	if math.Abs(got[0]-want0) > 1e-12 || math.Abs(got[1]-want1) > 1e-12 {
		t.Fatalf("got %v want [%v %v]", got, want0, want1)
	}
	if pt.AxisTitle != "TotalUsedBytes (MB)" || pt.ValueFormat != "%.3f" {
		t.Fatalf("bad presentation hints: %q %q", pt.AxisTitle, pt.ValueFormat)
	}
}

func TestPivotAllocMetricUnscaled(t *testing.T) {
	pe := NewPoolEntries()
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T00:00:00", []testRow{{"X", 1, 0, 0, 7, 2}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := pe.Digest(); err != nil {
		t.Fatalf("digest: %v", err)
	}
	pt, err := pe.Pivot([]string{"X"}, TimeUTC, ColPagedDiff)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if pt.Series[0].Values[0] != 7 {
		t.Fatalf("allocation counters must stay unscaled, got %v", pt.Series[0].Values)
	}
	if pt.AxisTitle != "PagedDiff (n_allocs)" || pt.ValueFormat != "%d" {
		t.Fatalf("bad presentation hints: %q %q", pt.AxisTitle, pt.ValueFormat)
	}
}

func TestPivotGapsAreNaN(t *testing.T) {
	pe := NewPoolEntries()
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T00:00:00", []testRow{{"X", 1, 0, 0, 0, 0}, {"Y", 2, 0, 0, 0, 0}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	// Y vanishes in the second snapshot.
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T01:00:00", []testRow{{"X", 3, 0, 0, 0, 0}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := pe.Digest(); err != nil {
		t.Fatalf("digest: %v", err)
	}
	pt, err := pe.Pivot([]string{"X", "Y"}, TimeUTC, ColPagedDiff)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	var y *PivotSeries
	for i := range pt.Series {
		if pt.Series[i].Tag == "Y" {
			y = &pt.Series[i]
		}
	}
	if y == nil {
		t.Fatalf("Y column missing: %+v", pt.Series)
	}
	if math.IsNaN(y.Values[0]) || !math.IsNaN(y.Values[1]) {
		t.Fatalf("expected [value NaN], got %v", y.Values)
	}
}

func TestPivotDropsAbsentTags(t *testing.T) {
	pe := NewPoolEntries()
	if err := pe.AddSnapshot(snapAt(t, "2024-01-01T00:00:00", []testRow{{"X", 1, 0, 0, 0, 0}})); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := pe.Digest(); err != nil {
		t.Fatalf("digest: %v", err)
	}
	pt, err := pe.Pivot([]string{"X", "Nope", "X"}, TimeUTC, ColPagedDiff)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if len(pt.Series) != 1 || pt.Series[0].Tag != "X" {
		t.Fatalf("expected only X (deduped, absent dropped), got %+v", pt.Series)
	}
}

func TestPivotInvalidSelectors(t *testing.T) {
	pe := rankFixture(t)
	if _, err := pe.Pivot([]string{"A"}, TimeColumn("Sideways"), ColPagedDiff); !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector for time column, got %v", err)
	}
	if _, err := pe.Pivot([]string{"A"}, TimeUTC, MetricColumn("Bogus")); !errors.Is(err, ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector for metric column, got %v", err)
	}
	notDigested := NewPoolEntries()
	if _, err := notDigested.Pivot([]string{"A"}, TimeUTC, ColPagedDiff); !errors.Is(err, ErrNotDigested) {
		t.Fatalf("expected ErrNotDigested, got %v", err)
	}
}
