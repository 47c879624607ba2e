package poolmon

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const bytesPerMB = 1024 * 1024

// PivotSeries is one tag's column in the wide table. Values align with
// PivotTable.Times; NaN marks an instant where the tag has no row.
type PivotSeries struct {
	Tag    string
	Values []float64
}

// PivotTable reshapes the aggregated dataset into one column per tag and
// one row per distinct timestamp, ready for a chart renderer. Byte
// metrics are rescaled to MB, which only affects axis labeling; the
// AxisTitle and ValueFormat hints tell the renderer what it is showing.
type PivotTable struct {
	TimeColumn  TimeColumn
	Metric      MetricColumn
	AxisTitle   string
	ValueFormat string
	Times       []time.Time
	Series      []PivotSeries
}

// Pivot builds the wide tag x timestamp view of metric col for the given
// tags, using timeCol as the row axis. Tags with no rows in the dataset
// produce no column. When two rows of one tag share an instant the later
// row in dataset order wins the cell.
func (p *PoolEntries) Pivot(tags []string, timeCol TimeColumn, col MetricColumn) (*PivotTable, error) {
	if !p.digested {
		return nil, ErrNotDigested
	}
	if _, err := ParseTimeColumn(string(timeCol)); err != nil {
		return nil, err
	}
	if _, err := ParseMetricColumn(string(col)); err != nil {
		return nil, err
	}

	// Distinct instants of the chosen axis, ascending. The dataset is
	// sorted by the UTC column; the local column orders identically, but
	// an explicit sort keeps the axis correct regardless.
	timeIndex := make(map[time.Time]int)
	var times []time.Time
	for i := range p.entries {
		ts := p.entries[i].Timestamp(timeCol)
		if _, ok := timeIndex[ts]; !ok {
			timeIndex[ts] = 0
			times = append(times, ts)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	for i, ts := range times {
		timeIndex[ts] = i
	}

	scale := 1.0
	table := &PivotTable{
		TimeColumn:  timeCol,
		Metric:      col,
		AxisTitle:   fmt.Sprintf("%s (n_allocs)", col),
		ValueFormat: "%d",
		Times:       times,
	}
	if IsBytesMetric(col) {
		scale = 1.0 / bytesPerMB
		table.AxisTitle = fmt.Sprintf("%s (MB)", col)
		table.ValueFormat = "%.3f"
	}

	seriesIndex := make(map[string]int, len(tags))
	for _, tag := range tags {
		if _, dup := seriesIndex[tag]; dup {
			continue
		}
		values := make([]float64, len(times))
		for i := range values {
			values[i] = math.NaN()
		}
		seriesIndex[tag] = len(table.Series)
		table.Series = append(table.Series, PivotSeries{Tag: tag, Values: values})
	}

	filled := make(map[string]bool, len(tags))
	for i := range p.entries {
		e := &p.entries[i]
		si, ok := seriesIndex[e.Tag]
		if !ok {
			continue
		}
		ti := timeIndex[e.Timestamp(timeCol)]
		table.Series[si].Values[ti] = float64(e.Metric(col)) * scale
		filled[e.Tag] = true
	}

	// Drop columns for requested tags absent from the dataset.
	kept := table.Series[:0]
	for _, s := range table.Series {
		if filled[s.Tag] {
			kept = append(kept, s)
		}
	}
	table.Series = kept
	return table, nil
}
