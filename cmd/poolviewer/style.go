package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style controls chart presentation. Loaded from an optional YAML file;
// zero-valued fields fall back to the defaults.
type Style struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	DotWidth   float64 `yaml:"dot_width"`
	TimeFormat string  `yaml:"time_format"`
}

// DefaultStyle returns the built-in chart presentation settings.
func DefaultStyle() Style {
	return Style{
		Width:      1100,
		Height:     340,
		DotWidth:   3,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// LoadStyle reads a YAML style file and overlays it on the defaults.
// An empty path returns the defaults unchanged.
func LoadStyle(path string) (Style, error) {
	st := DefaultStyle()
	if path == "" {
		return st, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	var file Style
	if err := yaml.Unmarshal(b, &file); err != nil {
		return st, fmt.Errorf("parse style %s: %w", path, err)
	}
	if file.Width > 0 {
		st.Width = file.Width
	}
	if file.Height > 0 {
		st.Height = file.Height
	}
	if file.DotWidth > 0 {
		st.DotWidth = file.DotWidth
	}
	if file.TimeFormat != "" {
		st.TimeFormat = file.TimeFormat
	}
	return st, nil
}
