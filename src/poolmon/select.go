package poolmon

import (
	"fmt"
	"time"
)

// SelectOptions configures the tag-selection pipeline: which metric and
// time axis to analyze, which tags to force in or keep out, and how many
// tags each ranking contributes (0 disables that ranking).
type SelectOptions struct {
	Metric      MetricColumn
	TimeColumn  TimeColumn
	IncludeTags []string
	ExcludeTags []string
	ChangeMode  ChangeMode

	NMostChanged  int
	NHighestUsage int
	NHighestAvg   int
}

// DefaultSelectOptions mirrors the usual analysis run: TotalUsedBytes
// over local time, five tags per ranking, percentage change scoring.
func DefaultSelectOptions() SelectOptions {
	return SelectOptions{
		Metric:        ColTotalUsedBytes,
		TimeColumn:    TimeLocal,
		ChangeMode:    ChangePercent,
		NMostChanged:  5,
		NHighestUsage: 5,
		NHighestAvg:   5,
	}
}

// Selection is the outcome of the three rankings plus the caller's
// include list. PlotTags is the de-duplicated union in selection order,
// always led by TOTAL so the overall trend is charted alongside the
// interesting tags.
type Selection struct {
	MostChanged    []string
	HighestUsage   []string
	HighestAverage []string
	PlotTags       []string
}

// SelectTags runs the ranking pipeline over the digested dataset and
// composes the set of tags worth charting.
func (p *PoolEntries) SelectTags(opts SelectOptions) (*Selection, error) {
	if _, err := ParseMetricColumn(string(opts.Metric)); err != nil {
		return nil, err
	}
	if _, err := ParseTimeColumn(string(opts.TimeColumn)); err != nil {
		return nil, err
	}

	sel := &Selection{PlotTags: []string{TotalTag}}
	add := func(tags []string) {
		for _, t := range tags {
			dup := false
			for _, have := range sel.PlotTags {
				if have == t {
					dup = true
					break
				}
			}
			if !dup {
				sel.PlotTags = append(sel.PlotTags, t)
			}
		}
	}

	var err error
	if sel.MostChanged, err = p.MostChangedTags(opts.NMostChanged, opts.Metric, opts.ChangeMode, opts.ExcludeTags); err != nil {
		return nil, err
	}
	add(sel.MostChanged)

	if sel.HighestUsage, err = p.HighestTags(opts.NHighestUsage, opts.Metric, opts.ExcludeTags); err != nil {
		return nil, err
	}
	add(sel.HighestUsage)

	if sel.HighestAverage, err = p.HighestAverageTags(opts.NHighestAvg, opts.Metric, opts.ExcludeTags); err != nil {
		return nil, err
	}
	add(sel.HighestAverage)

	add(opts.IncludeTags)
	return sel, nil
}

// AnalyzeDirectory is the whole ingestion pipeline in one call: discover
// every *pool.csv under dir, parse and accumulate them, digest, run the
// ranking selection, and pivot the selected tags for charting.
func AnalyzeDirectory(dir string, opts SelectOptions) (*PoolEntries, *Selection, *PivotTable, error) {
	defer TimeTrack(time.Now(), "analyze directory")

	files, err := ListSnapshotFiles(dir)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, nil, fmt.Errorf("no *pool.csv files in %s", dir)
	}
	Infof("found %d snapshot files in %s", len(files), dir)

	pe := NewPoolEntries()
	for _, f := range files {
		if err := pe.AddCSVFile(f); err != nil {
			return nil, nil, nil, err
		}
	}
	if err := pe.Digest(); err != nil {
		return nil, nil, nil, err
	}

	sel, err := pe.SelectTags(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	pivot, err := pe.Pivot(sel.PlotTags, opts.TimeColumn, opts.Metric)
	if err != nil {
		return nil, nil, nil, err
	}
	return pe, sel, pivot, nil
}
