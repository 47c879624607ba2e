package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/jshafer817/PoolmonViz/src/poolmon"
)

// RunScreenshotsMode renders the chart for the selected metric and
// writes it as a PNG under outDir. It runs headlessly without creating a
// UI window.
func RunScreenshotsMode(dir, outDir string, opts poolmon.SelectOptions, style Style) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	_, sel, pivot, err := poolmon.AnalyzeDirectory(dir, opts)
	if err != nil {
		return err
	}
	poolmon.Infof("rendering %d tag series: %v", len(pivot.Series), sel.PlotTags)

	img := renderPivotChart(pivot, style)
	if img == nil {
		return fmt.Errorf("nothing to render for %s", opts.Metric)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode: %w", err)
	}
	name := fmt.Sprintf("pool_%s.png", strings.ToLower(string(opts.Metric)))
	outPath := filepath.Join(outDir, name)
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	poolmon.Infof("wrote %s", outPath)
	return nil
}
