package poolmon

import (
	"fmt"
	"sort"
)

// ChangeMode selects how MostChangedTags scores the first-to-last delta.
type ChangeMode int

const (
	// ChangeAbsolute scores last - first.
	ChangeAbsolute ChangeMode = iota
	// ChangePercent scores (last-first)*100/(last+0.001); the epsilon
	// keeps tags whose final value is exactly zero out of a division by
	// zero without meaningfully shifting anything else.
	ChangePercent
)

const changeEpsilon = 0.001

// tagSeries holds one tag's metric values in dataset (timestamp) order.
type tagSeries struct {
	tag    string
	values []float64
}

// groupByTag collects per-tag metric series from the digested dataset,
// skipping TOTAL and every caller-ignored tag. The caller's ignore slice
// is never modified; series come back in first-appearance order, which
// is what makes ranking ties deterministic.
func (p *PoolEntries) groupByTag(col MetricColumn, ignore []string) ([]tagSeries, error) {
	if !p.digested {
		return nil, ErrNotDigested
	}
	if _, err := ParseMetricColumn(string(col)); err != nil {
		return nil, err
	}
	skip := make(map[string]struct{}, len(ignore)+1)
	skip[TotalTag] = struct{}{}
	for _, t := range ignore {
		skip[t] = struct{}{}
	}

	index := make(map[string]int, 64)
	var groups []tagSeries
	for i := range p.entries {
		e := &p.entries[i]
		if _, ok := skip[e.Tag]; ok {
			continue
		}
		gi, ok := index[e.Tag]
		if !ok {
			gi = len(groups)
			index[e.Tag] = gi
			groups = append(groups, tagSeries{tag: e.Tag})
		}
		groups[gi].values = append(groups[gi].values, float64(e.Metric(col)))
	}
	return groups, nil
}

// rankTags sorts groups descending by score and returns at most n tag
// names. The sort is stable over first-appearance order, so equal scores
// resolve the same way for a given dataset.
func rankTags(groups []tagSeries, score func(tagSeries) float64, n int) []string {
	if n <= 0 {
		return nil
	}
	scores := make([]float64, len(groups))
	for i, g := range groups {
		scores[i] = score(g)
	}
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if n > len(order) {
		n = len(order)
	}
	tags := make([]string, 0, n)
	for _, i := range order[:n] {
		tags = append(tags, groups[i].tag)
	}
	return tags
}

// HighestTags returns up to n tags ranked by the peak value of col
// across each tag's rows, highest first.
func (p *PoolEntries) HighestTags(n int, col MetricColumn, ignore []string) ([]string, error) {
	groups, err := p.groupByTag(col, ignore)
	if err != nil {
		return nil, fmt.Errorf("highest tags: %w", err)
	}
	return rankTags(groups, seriesMax, n), nil
}

// MostChangedTags returns up to n tags ranked by the change of col
// between each tag's first and last row in timestamp order.
func (p *PoolEntries) MostChangedTags(n int, col MetricColumn, mode ChangeMode, ignore []string) ([]string, error) {
	groups, err := p.groupByTag(col, ignore)
	if err != nil {
		return nil, fmt.Errorf("most changed tags: %w", err)
	}
	return rankTags(groups, func(g tagSeries) float64 { return seriesChange(g, mode) }, n), nil
}

// HighestAverageTags returns up to n tags ranked by the arithmetic mean
// of col across each tag's rows.
func (p *PoolEntries) HighestAverageTags(n int, col MetricColumn, ignore []string) ([]string, error) {
	groups, err := p.groupByTag(col, ignore)
	if err != nil {
		return nil, fmt.Errorf("highest average tags: %w", err)
	}
	return rankTags(groups, seriesMean, n), nil
}

func seriesMax(g tagSeries) float64 {
	max := g.values[0]
	for _, v := range g.values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func seriesMean(g tagSeries) float64 {
	var sum float64
	for _, v := range g.values {
		sum += v
	}
	return sum / float64(len(g.values))
}

func seriesChange(g tagSeries, mode ChangeMode) float64 {
	first := g.values[0]
	last := g.values[len(g.values)-1]
	if mode == ChangeAbsolute {
		return last - first
	}
	return (last - first) * 100 / (last + changeEpsilon)
}

// TagPeak returns the peak value of col for one tag, for reporting.
// ok is false when the tag has no rows or the dataset is not digested.
func (p *PoolEntries) TagPeak(tag string, col MetricColumn) (float64, bool) {
	g, ok := p.tagValues(tag, col)
	if !ok {
		return 0, false
	}
	return seriesMax(g), true
}

// TagChange returns the first-to-last change of col for one tag.
func (p *PoolEntries) TagChange(tag string, col MetricColumn, mode ChangeMode) (float64, bool) {
	g, ok := p.tagValues(tag, col)
	if !ok {
		return 0, false
	}
	return seriesChange(g, mode), true
}

// TagAverage returns the mean of col for one tag.
func (p *PoolEntries) TagAverage(tag string, col MetricColumn) (float64, bool) {
	g, ok := p.tagValues(tag, col)
	if !ok {
		return 0, false
	}
	return seriesMean(g), true
}

func (p *PoolEntries) tagValues(tag string, col MetricColumn) (tagSeries, bool) {
	if !p.digested {
		return tagSeries{}, false
	}
	if _, err := ParseMetricColumn(string(col)); err != nil {
		return tagSeries{}, false
	}
	g := tagSeries{tag: tag}
	for i := range p.entries {
		if p.entries[i].Tag == tag {
			g.values = append(g.values, float64(p.entries[i].Metric(col)))
		}
	}
	return g, len(g.values) > 0
}
