package poolmon

// addTotalsRow appends the synthetic TOTAL row to a snapshot: every
// integer counter becomes the sum of that counter across the snapshot's
// rows, while the timestamps are copied from the first row. The copy is
// safe because one file is one sampling pass and every row carries the
// same instant; if that ever stops holding, the copied timestamps are
// arbitrary rather than an error.
//
// Snapshots with no data rows get no TOTAL row; there is nothing to sum
// and a zero-valued row would only pollute the rankings' exclusion set.
func (s *Snapshot) addTotalsRow() {
	if len(s.Entries) == 0 {
		return
	}
	total := Entry{
		Tag:         TotalTag,
		DateTime:    s.Entries[0].DateTime,
		DateTimeUTC: s.Entries[0].DateTimeUTC,
	}
	for i := range s.Entries {
		e := &s.Entries[i]
		total.TotalUsedBytes += e.TotalUsedBytes
		total.PagedUsedBytes += e.PagedUsedBytes
		total.NonPagedUsedBytes += e.NonPagedUsedBytes
		total.PagedDiff += e.PagedDiff
		total.NonPagedDiff += e.NonPagedDiff
	}
	s.Entries = append(s.Entries, total)
}
