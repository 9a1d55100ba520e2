package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"github.com/dustin/go-humanize"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const emptyChartHint = "No launches match the current selection"

// PNG renders the pie chart. Charts without a positive slice render a placeholder.
func (p *PieSpec) PNG(width, height int) ([]byte, error) {
	if p.Empty() {
		return placeholder(p.Title, width, height)
	}

	values := make([]chart.Value, 0, len(p.Slices))
	for i, s := range p.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", s.Label, humanize.Commaf(s.Value)),
			Value: s.Value,
			Style: chart.Style{FillColor: hexColor(p.Colors[i]), StrokeColor: drawing.ColorWhite},
		})
	}

	pie := chart.PieChart{
		Title:  p.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// PNG renders the scatter chart with one dot series per booster category.
func (s *ScatterSpec) PNG(width, height int) ([]byte, error) {
	if s.Empty() {
		return placeholder(s.Title, width, height)
	}

	series := make([]chart.Series, 0, len(s.Series))
	for _, ss := range s.Series {
		xs := make([]float64, len(ss.Points))
		ys := make([]float64, len(ss.Points))
		for i, pt := range ss.Points {
			xs[i] = pt.X
			ys[i] = pt.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ss.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(hexColor(ss.Color)),
		})
	}

	xMin, xMax := s.XRange[0], s.XRange[1]
	if xMax <= xMin {
		// Degenerate slider range: widen so the axis has a non-zero span.
		xMin, xMax = xMin-500, xMax+500
		if xMin < 0 {
			xMin = 0
		}
	}

	ch := chart.Chart{
		Title:  s.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           s.XAxis,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: massFormatter,
		},
		YAxis: chart.YAxis{
			Name:  s.YAxis,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return buf.Bytes(), nil
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

func massFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Commaf(f)
	}
	return ""
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// placeholder draws a blank chart area with the title and a hint so the UI
// visibly updates when a selection has no data.
func placeholder(title string, width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	for i, line := range []string{title, emptyChartHint} {
		w := d.MeasureString(line).Round()
		d.Dot = fixed.P((width-w)/2, height/2+i*20)
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
