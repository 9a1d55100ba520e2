// Package dashboard implements the interactive shell of the launch dashboard.
//
// A Shell owns one Selection (site + payload range) and a fixed set of chart
// outputs. Each output is registered explicitly together with the controls it
// listens to; a control change updates the Selection and recomputes exactly the
// outputs bound to that control. Events are processed one at a time, so the
// displayed charts always reflect the most recent completed event.
package dashboard

import (
	"fmt"
	"sync"

	"github.com/rewired-gh/launchdash/internal/analysis"
	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
	"github.com/rewired-gh/launchdash/internal/render"
	"github.com/rewired-gh/launchdash/internal/storage"
)

// Control identifies an input control.
type Control string

// Output identifies a chart area.
type Output string

const (
	ControlSite    Control = "site-dropdown"
	ControlPayload Control = "payload-slider"

	OutputPie     Output = "success-pie-chart"
	OutputScatter Output = "success-payload-scatter-chart"
)

// Handler recomputes one chart from the current selection.
type Handler func(records []models.LaunchRecord, sel models.Selection) render.Chart

type binding struct {
	output  Output
	inputs  []Control
	handler Handler
}

func (b binding) listensTo(c Control) bool {
	for _, in := range b.inputs {
		if in == c {
			return true
		}
	}
	return false
}

// Update carries the charts recomputed by one event.
type Update struct {
	Selection models.Selection        `json:"selection"`
	Charts    map[Output]render.Chart `json:"charts"`
}

// Shell holds the selection state and the output bindings of one dashboard view.
type Shell struct {
	records  []models.LaunchRecord
	layout   Layout
	bindings []binding

	mu        sync.Mutex
	selection models.Selection
	current   map[Output]render.Chart
}

// New creates a Shell over ds with the default wiring: the pie chart listens to
// the site dropdown, the scatter chart to both controls.
func New(ds *storage.Dataset, slider Slider) *Shell {
	s := NewEmpty(ds, slider)
	s.Register(OutputPie, []Control{ControlSite}, PieHandler)
	s.Register(OutputScatter, []Control{ControlSite, ControlPayload}, ScatterHandler)
	return s
}

// NewEmpty creates a Shell without any registered outputs.
func NewEmpty(ds *storage.Dataset, slider Slider) *Shell {
	records := ds.Records()
	layout := NewLayout(records, slider)
	return &Shell{
		records: records,
		layout:  layout,
		selection: models.Selection{
			Site:    models.AllSites,
			Payload: models.PayloadRange{Low: layout.Slider.Min, High: layout.Slider.Max},
		},
		current: make(map[Output]render.Chart),
	}
}

// Register binds handler to output and recomputes the output whenever one of
// inputs changes. Registering an output twice replaces the earlier binding.
func (s *Shell) Register(output Output, inputs []Control, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := binding{output: output, inputs: append([]Control(nil), inputs...), handler: handler}
	for i := range s.bindings {
		if s.bindings[i].output == output {
			s.bindings[i] = b
			delete(s.current, output)
			return
		}
	}
	s.bindings = append(s.bindings, b)
}

// Layout returns the static control layout.
func (s *Shell) Layout() Layout {
	return s.layout
}

// Selection returns the current selection.
func (s *Shell) Selection() models.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Charts returns every output for the current selection, computing any output
// that has not been rendered yet.
func (s *Shell) Charts() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bindings {
		if _, ok := s.current[b.output]; !ok {
			s.current[b.output] = b.handler(s.records, s.selection)
		}
	}
	charts := make(map[Output]render.Chart, len(s.current))
	for out, ch := range s.current {
		charts[out] = ch
	}
	return Update{Selection: s.selection, Charts: charts}
}

// Chart returns the currently displayed chart for output.
func (s *Shell) Chart(output Output) (render.Chart, bool) {
	update := s.Charts()
	ch, ok := update.Charts[output]
	return ch, ok
}

// SetSite handles a site dropdown change. Values outside the catalog are kept
// and simply match no launches.
func (s *Shell) SetSite(site string) (Update, error) {
	if site == "" {
		return Update{}, fmt.Errorf("site must not be empty")
	}
	return s.transition(ControlSite, func(sel *models.Selection) { sel.Site = site })
}

// SetPayloadRange handles a range slider change.
func (s *Shell) SetPayloadRange(rng models.PayloadRange) (Update, error) {
	if err := rng.Validate(); err != nil {
		return Update{}, err
	}
	return s.transition(ControlPayload, func(sel *models.Selection) { sel.Payload = rng })
}

func (s *Shell) transition(control Control, apply func(*models.Selection)) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.selection
	apply(&next)
	if err := next.Validate(); err != nil {
		return Update{}, err
	}
	s.selection = next

	update := Update{Selection: next, Charts: make(map[Output]render.Chart)}
	for _, b := range s.bindings {
		if !b.listensTo(control) {
			continue
		}
		ch := b.handler(s.records, next)
		s.current[b.output] = ch
		update.Charts[b.output] = ch
	}

	logger.Debug("Control %s changed: site=%s payload=[%.0f, %.0f], %d outputs recomputed",
		control, next.Site, next.Payload.Low, next.Payload.High, len(update.Charts))
	return update, nil
}

// PieHandler renders the success pie chart. It depends on the site only.
func PieHandler(records []models.LaunchRecord, sel models.Selection) render.Chart {
	return render.Pie(analysis.PieData(records, sel.Site), sel.Site)
}

// ScatterHandler renders the payload scatter chart for the site and range.
func ScatterHandler(records []models.LaunchRecord, sel models.Selection) render.Chart {
	rows := analysis.ScatterRows(records, sel.Site, sel.Payload)
	return render.Scatter(rows, sel.Site, sel.Payload)
}
