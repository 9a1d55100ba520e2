package dashboard

import (
	"math"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/models"
)

// Payload slider bound modes.
const (
	BoundsFixed = "fixed" // use the configured min/max
	BoundsData  = "data"  // use the observed dataset payload range
)

// Slider configures the payload range control.
type Slider struct {
	Bounds string    `json:"bounds"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Step   float64   `json:"step"`
	Marks  []float64 `json:"marks"`
}

// Layout describes the controls rendered by the UI.
type Layout struct {
	Sites  []models.SiteOption `json:"sites"`
	Slider Slider              `json:"slider"`
}

// NewLayout derives the site catalog from records and resolves the slider bounds.
func NewLayout(records []models.LaunchRecord, slider Slider) Layout {
	return Layout{
		Sites:  analysis.ListSites(records),
		Slider: resolveSlider(records, slider),
	}
}

// resolveSlider applies the bounds mode. In data mode the observed range is
// widened to whole steps; an empty dataset keeps the configured bounds.
func resolveSlider(records []models.LaunchRecord, slider Slider) Slider {
	out := slider
	out.Marks = append([]float64(nil), slider.Marks...)
	if slider.Bounds != BoundsData {
		return out
	}

	observed, ok := analysis.ObservedPayloadRange(records)
	if !ok {
		return out
	}

	out.Min, out.Max = observed.Low, observed.High
	if slider.Step > 0 {
		out.Min = math.Floor(observed.Low/slider.Step) * slider.Step
		out.Max = math.Ceil(observed.High/slider.Step) * slider.Step
	}
	out.Marks = evenMarks(out.Min, out.Max, 5)
	return out
}

func evenMarks(min, max float64, n int) []float64 {
	if max <= min || n < 2 {
		return []float64{min}
	}
	marks := make([]float64, n)
	for i := 0; i < n; i++ {
		marks[i] = math.Round(min + (max-min)*float64(i)/float64(n-1))
	}
	return marks
}
