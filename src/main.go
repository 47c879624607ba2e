// PoolmonViz console analyzer entrypoint.
//
// Reads every *pool.csv snapshot in a directory, merges them into one
// time-ordered dataset, and reports the tags worth watching: greatest
// increase (first-to-last change), highest peak usage, and highest
// average usage for the chosen metric column. Each ranking prints a
// one-line report plus a consolidated per-tag table.
//
// Design notes:
//   - Dependency direction: main -> poolmon package for all ingestion and
//     ranking; main only parses flags and formats output.
//   - Any parse or validation failure aborts the run with exit code 1; a
//     partial dataset is never reported.
//   - Charting lives in cmd/poolviewer; this binary stays console-only.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jshafer817/PoolmonViz/src/poolmon"
)

// splitTags turns a comma-separated flag value into a clean tag list.
func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func metricNames() string {
	var names []string
	for _, c := range poolmon.ValidMetricColumns() {
		names = append(names, string(c))
	}
	return strings.Join(names, "|")
}

func main() {
	directory := flag.String("directory", "", "Directory where the *pool.csv snapshot files reside (required)")
	metric := flag.String("type", string(poolmon.ColTotalUsedBytes), "Metric column to analyze ("+metricNames()+")")
	timestamp := flag.String("timestamp", string(poolmon.TimeLocal), "Timestamp column to order by (DateTime|DateTimeUTC)")
	includeTags := flag.String("include-tags", "", "Comma-separated tags that must be included in the plot set")
	excludeTags := flag.String("exclude-tags", "", "Comma-separated tags to exclude from every ranking")
	nMostChanged := flag.Int("n-most-changed", 5, "Number of tags that show the highest growth (0 disables)")
	nHighest := flag.Int("n-highest-usage", 5, "Number of tags with the highest peak usage (0 disables)")
	nHighestAvg := flag.Int("n-highest-average-usage", 5, "Number of tags with the highest average usage (0 disables)")
	absoluteChange := flag.Bool("absolute-change", false, "Score growth as last-first instead of percentage change")
	logLevel := flag.String("log-level", "info", "Log level (debug|info|warn|error)")
	flag.Parse()

	poolmon.SetLogLevel(*logLevel)

	if *directory == "" {
		fmt.Fprintln(os.Stderr, "missing required -directory flag")
		flag.Usage()
		os.Exit(1)
	}

	opts := poolmon.DefaultSelectOptions()
	opts.IncludeTags = splitTags(*includeTags)
	opts.ExcludeTags = splitTags(*excludeTags)
	opts.NMostChanged = *nMostChanged
	opts.NHighestUsage = *nHighest
	opts.NHighestAvg = *nHighestAvg
	if *absoluteChange {
		opts.ChangeMode = poolmon.ChangeAbsolute
	}

	var err error
	if opts.Metric, err = poolmon.ParseMetricColumn(*metric); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if opts.TimeColumn, err = poolmon.ParseTimeColumn(*timestamp); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	pe, sel, pivot, err := poolmon.AnalyzeDirectory(*directory, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[analyze] %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("tags with %-25s: %v\n", "GREATEST INCREASE", sel.MostChanged)
	fmt.Printf("tags with %-25s: %v\n", "HIGHEST PEAK USAGE", sel.HighestUsage)
	fmt.Printf("tags with %-25s: %v\n", "HIGHEST AVERAGE USAGE", sel.HighestAverage)
	fmt.Println()

	printRankingTable(pe, sel, opts)

	fmt.Printf("\n%d timestamps x %d tag series ready for plotting (%s)\n",
		len(pivot.Times), len(pivot.Series), pivot.AxisTitle)
}

// printRankingTable renders one consolidated table over the selected
// tags: peak, first-to-last change (both modes), and average of the
// chosen metric per tag.
func printRankingTable(pe *poolmon.PoolEntries, sel *poolmon.Selection, opts poolmon.SelectOptions) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header([]string{"Tag", "Peak", "Change", "Change %", "Average"})

	for _, tag := range sel.PlotTags {
		if tag == poolmon.TotalTag {
			continue
		}
		peak, ok := pe.TagPeak(tag, opts.Metric)
		if !ok {
			continue
		}
		change, _ := pe.TagChange(tag, opts.Metric, poolmon.ChangeAbsolute)
		changePct, _ := pe.TagChange(tag, opts.Metric, poolmon.ChangePercent)
		avg, _ := pe.TagAverage(tag, opts.Metric)
		table.Append([]string{
			tag,
			fmt.Sprintf("%.0f", peak),
			fmt.Sprintf("%.0f", change),
			fmt.Sprintf("%.2f", changePct),
			fmt.Sprintf("%.1f", avg),
		})
	}
	table.Render()
}
