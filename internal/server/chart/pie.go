// Package chart renders category proportions as images.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/climatetracker/internal/insight"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Format selects the output image encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

var (
	// ErrNothingToPlot is returned when every share is zero.
	ErrNothingToPlot = errors.New("nothing to plot: all categories are zero")
	// ErrUnknownFormat is returned for formats other than svg and png.
	ErrUnknownFormat = errors.New("unknown chart format")
)

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// RenderPie draws shares as a pie chart into w. Zero shares are left out.
func RenderPie(w io.Writer, shares []insight.CategoryShare, format Format) error {
	var provider gochart.RendererProvider
	switch format {
	case FormatSVG:
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	values := make([]gochart.Value, 0, len(shares))
	for _, s := range shares {
		if s.Emission <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %.2f", s.Category, s.Emission),
			Value: s.Emission,
		})
	}
	if len(values) == 0 {
		return ErrNothingToPlot
	}

	pie := gochart.PieChart{
		Title:  "Emission by category (kg CO2)",
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Values: values,
	}
	return pie.Render(provider, w)
}
