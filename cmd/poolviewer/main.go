// poolviewer renders the aggregated poolmon dataset as an interactive
// chart: one series per selected tag (rankings plus forced includes,
// TOTAL always first), X axis the chosen timestamp column, Y axis the
// chosen metric (MB for byte counters).
//
// Two modes:
//  1. Viewer mode (default): open a window showing the chart, with PNG
//     export from the File menu.
//  2. Screenshots mode (-screenshots): render the same chart headlessly
//     to PNG files under -out, for docs and CI.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/jshafer817/PoolmonViz/src/poolmon"
)

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

func main() {
	directory := flag.String("directory", "", "Directory where the *pool.csv snapshot files reside (required)")
	metric := flag.String("type", string(poolmon.ColTotalUsedBytes), "Metric column to plot")
	timestamp := flag.String("timestamp", string(poolmon.TimeLocal), "Timestamp column to plot against (DateTime|DateTimeUTC)")
	includeTags := flag.String("include-tags", "", "Comma-separated tags that must be included in the plot")
	excludeTags := flag.String("exclude-tags", "", "Comma-separated tags to exclude from every ranking")
	nMostChanged := flag.Int("n-most-changed", 5, "Number of tags that show the highest growth (0 disables)")
	nHighest := flag.Int("n-highest-usage", 5, "Number of tags with the highest peak usage (0 disables)")
	nHighestAvg := flag.Int("n-highest-average-usage", 5, "Number of tags with the highest average usage (0 disables)")
	stylePath := flag.String("style", "", "Optional YAML chart style file")
	screenshots := flag.Bool("screenshots", false, "Render chart PNGs headlessly instead of opening a window")
	outDir := flag.String("out", "screenshots", "Output directory for -screenshots mode")
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

	var err error
	if opts.Metric, err = poolmon.ParseMetricColumn(*metric); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if opts.TimeColumn, err = poolmon.ParseTimeColumn(*timestamp); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	style, err := LoadStyle(*stylePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "style: %v\n", err)
		os.Exit(1)
	}

	if *screenshots {
		if err := RunScreenshotsMode(*directory, *outDir, opts, style); err != nil {
			fmt.Fprintf(os.Stderr, "[screenshots] %v\n", err)
			os.Exit(1)
		}
		return
	}

	_, sel, pivot, err := poolmon.AnalyzeDirectory(*directory, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[analyze] %v\n", err)
		os.Exit(1)
	}
	poolmon.Infof("plotting %d tag series: %v", len(pivot.Series), sel.PlotTags)

	img := renderPivotChart(pivot, style)
	if img == nil {
		fmt.Fprintf(os.Stderr, "nothing to render for %s\n", opts.Metric)
		os.Exit(1)
	}
	showWindow(img, pivot.AxisTitle, style)
}

// showWindow opens the viewer window around a rendered chart image.
func showWindow(img image.Image, title string, style Style) {
	a := app.New()
	w := a.NewWindow("PoolmonViz - " + title)

	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(float32(style.Width), float32(style.Height)))

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG…", func() { exportChartPNG(w, img) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { w.Close() }),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))

	w.SetContent(container.NewScroll(imgCanvas))
	w.Resize(fyne.NewSize(float32(style.Width)+40, float32(style.Height)+80))
	w.ShowAndRun()
}

// exportChartPNG writes the current chart image through a save dialog.
func exportChartPNG(w fyne.Window, img image.Image) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			dialog.ShowError(err, w)
			return
		}
		if _, err := writer.Write(buf.Bytes()); err != nil {
			dialog.ShowError(err, w)
		}
	}, w)
}
