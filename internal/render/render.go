// Package render turns aggregated launch data into chart descriptions.
//
// Builders are pure: a PieSpec or ScatterSpec is created fresh for every
// selection and carries everything a frontend needs (title, axis names, series,
// colors). The same specs can be rasterized to PNG with go-chart.
package render

import (
	"fmt"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/models"
)

// Chart kinds.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
)

// Axis titles of the scatter chart.
const (
	XAxisPayload = "Payload Mass (kg)"
	YAxisClass   = "class"
)

// Default color palette for slices and series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Chart is a render-ready chart description.
type Chart interface {
	Kind() string
	ChartTitle() string
	// Empty reports whether the chart has nothing to draw.
	Empty() bool
	// PNG rasterizes the chart at the given pixel size.
	PNG(width, height int) ([]byte, error)
}

// PieSpec describes the success pie chart.
type PieSpec struct {
	Type   string           `json:"type"`
	Title  string           `json:"title"`
	Slices []analysis.Slice `json:"slices"`
	Colors []string         `json:"colors"`
}

// Kind returns KindPie.
func (p *PieSpec) Kind() string { return KindPie }

// ChartTitle returns the chart title.
func (p *PieSpec) ChartTitle() string { return p.Title }

// Empty reports whether no slice has a positive value.
func (p *PieSpec) Empty() bool {
	return analysis.Total(p.Slices) <= 0
}

// ScatterSpec describes the payload vs. outcome scatter chart.
type ScatterSpec struct {
	Type   string          `json:"type"`
	Title  string          `json:"title"`
	XAxis  string          `json:"xAxis"`
	YAxis  string          `json:"yAxis"`
	XRange [2]float64      `json:"xRange"`
	Series []ScatterSeries `json:"series"`
}

// ScatterSeries holds the points of one booster version category.
type ScatterSeries struct {
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// Point is one launch on the scatter chart.
type Point struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Site string  `json:"site"`
}

// Kind returns KindScatter.
func (s *ScatterSpec) Kind() string { return KindScatter }

// ChartTitle returns the chart title.
func (s *ScatterSpec) ChartTitle() string { return s.Title }

// Empty reports whether the chart has no points.
func (s *ScatterSpec) Empty() bool {
	return s.PointCount() == 0
}

// PointCount returns the number of points across all series.
func (s *ScatterSpec) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

// Pie builds the pie chart for the selected site.
func Pie(slices []analysis.Slice, site string) *PieSpec {
	title := "Total Success Launches By Site"
	if site != models.AllSites {
		title = fmt.Sprintf("Total Success Launches for site %s", site)
	}
	if slices == nil {
		slices = []analysis.Slice{}
	}
	return &PieSpec{
		Type:   KindPie,
		Title:  title,
		Slices: slices,
		Colors: assignColors(len(slices)),
	}
}

// Scatter builds the payload scatter chart. Rows are grouped into one series per
// booster version category in first-seen order.
func Scatter(rows []models.LaunchRecord, site string, rng models.PayloadRange) *ScatterSpec {
	title := "Correlation between Payload and Success for all Sites"
	if site != models.AllSites {
		title = fmt.Sprintf("Correlation between Payload and Success for site %s", site)
	}

	index := make(map[string]int)
	series := make([]ScatterSeries, 0)
	for _, r := range rows {
		i, exists := index[r.BoosterCategory]
		if !exists {
			i = len(series)
			index[r.BoosterCategory] = i
			series = append(series, ScatterSeries{
				Name:  r.BoosterCategory,
				Color: defaultColors[i%len(defaultColors)],
			})
		}
		series[i].Points = append(series[i].Points, Point{
			X:    r.PayloadMassKg,
			Y:    float64(r.Class),
			Site: r.Site,
		})
	}

	return &ScatterSpec{
		Type:   KindScatter,
		Title:  title,
		XAxis:  XAxisPayload,
		YAxis:  YAxisClass,
		XRange: [2]float64{rng.Low, rng.High},
		Series: series,
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
