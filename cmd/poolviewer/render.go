package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jshafer817/PoolmonViz/src/poolmon"
)

// seriesStyle returns the point-marker style for the i-th tag series.
func seriesStyle(i int, dotWidth float64) chart.Style {
	c := chart.GetDefaultColor(i)
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 1.5,
		DotColor:    c,
		DotWidth:    dotWidth,
	}
}

// valueFormatter builds the Y-axis formatter from the pivot's format
// hint: integer labels for allocation counts, 3 decimals for MB.
func valueFormatter(format string) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if format == "%d" {
			return fmt.Sprintf("%d", int64(math.Round(f)))
		}
		return fmt.Sprintf(format, f)
	}
}

// renderPivotChart draws one time series per pivot column and returns
// the rendered chart image, or nil when there is nothing to draw.
func renderPivotChart(pt *poolmon.PivotTable, style Style) image.Image {
	if pt == nil || len(pt.Series) == 0 || len(pt.Times) == 0 {
		return nil
	}

	times := pt.Times
	// go-chart cannot place a single X value; pad a second point one
	// second later so one-snapshot corpora still render.
	singlePoint := len(times) == 1
	if singlePoint {
		times = append([]time.Time{times[0]}, times[0].Add(1*time.Second))
	}

	series := make([]chart.Series, 0, len(pt.Series))
	for i, s := range pt.Series {
		ys := s.Values
		if singlePoint {
			ys = append([]float64{ys[0]}, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    s.Tag,
			XValues: times,
			YValues: ys,
			Style:   seriesStyle(i, style.DotWidth),
		})
	}

	graph := chart.Chart{
		Title:  pt.AxisTitle,
		Width:  style.Width,
		Height: style.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 24, Left: 12, Right: 12, Bottom: 12},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(style.TimeFormat),
		},
		YAxis: chart.YAxis{
			Name:           pt.AxisTitle,
			ValueFormatter: valueFormatter(pt.ValueFormat),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph, chart.Style{
		FontColor: drawing.ColorBlack,
	})}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		poolmon.Errorf("chart render: %v", err)
		return nil
	}
	img, err := png.Decode(&buf)
	if err != nil {
		poolmon.Errorf("chart decode: %v", err)
		return nil
	}
	return img
}
