// Package analysis computes the data behind the dashboard charts.
//
// Every function is a pure transform over the launch records: the site catalog
// for the dropdown, success counts for the pie chart and the filtered rows for
// the payload scatter chart. Nothing here mutates its input.
package analysis

import (
	"sort"

	"github.com/rewired-gh/launchdash/internal/models"
)

// Outcome labels used for single-site pie slices.
const (
	LabelFailure = "Failure"
	LabelSuccess = "Success"
)

// Slice is one named value of the pie chart.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ListSites returns each distinct site in first-seen order followed by the
// synthetic all-sites option.
func ListSites(records []models.LaunchRecord) []models.SiteOption {
	seen := make(map[string]bool)
	options := make([]models.SiteOption, 0)
	for _, r := range records {
		if seen[r.Site] {
			continue
		}
		seen[r.Site] = true
		options = append(options, models.SiteOption{Label: r.Site, Value: r.Site})
	}
	return append(options, models.SiteOption{Label: models.AllSitesLabel, Value: models.AllSites})
}

// PieData aggregates records for the success pie chart.
//
// For models.AllSites it returns one slice per site (first-seen order) whose
// value is the number of successful launches. For a single site it returns one
// slice per outcome present at that site, failure before success, valued by row
// count. An unknown site yields no slices.
func PieData(records []models.LaunchRecord, site string) []Slice {
	if site == models.AllSites {
		return successesBySite(records)
	}
	return outcomesForSite(records, site)
}

func successesBySite(records []models.LaunchRecord) []Slice {
	totals := make(map[string]float64)
	order := make([]string, 0)
	for _, r := range records {
		if _, exists := totals[r.Site]; !exists {
			order = append(order, r.Site)
			totals[r.Site] = 0
		}
		if r.Succeeded() {
			totals[r.Site]++
		}
	}

	slices := make([]Slice, 0, len(order))
	for _, site := range order {
		slices = append(slices, Slice{Label: site, Value: totals[site]})
	}
	return slices
}

func outcomesForSite(records []models.LaunchRecord, site string) []Slice {
	counts := make(map[int]float64)
	for _, r := range records {
		if r.Site == site {
			counts[r.Class]++
		}
	}

	codes := make([]int, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	slices := make([]Slice, 0, len(codes))
	for _, code := range codes {
		slices = append(slices, Slice{Label: OutcomeLabel(code), Value: counts[code]})
	}
	return slices
}

// OutcomeLabel maps a class code to its human label.
func OutcomeLabel(class int) string {
	if class == models.OutcomeSuccess {
		return LabelSuccess
	}
	return LabelFailure
}

// SliceMap converts ordered slices into a label -> value mapping.
func SliceMap(slices []Slice) map[string]float64 {
	m := make(map[string]float64, len(slices))
	for _, s := range slices {
		m[s.Label] = s.Value
	}
	return m
}

// Total sums the values of all slices.
func Total(slices []Slice) float64 {
	var sum float64
	for _, s := range slices {
		sum += s.Value
	}
	return sum
}

// ScatterRows returns the records whose payload lies within rng and, unless
// site is models.AllSites, whose site matches exactly. Both predicates are
// checked together in a single pass; dataset order is preserved.
func ScatterRows(records []models.LaunchRecord, site string, rng models.PayloadRange) []models.LaunchRecord {
	allSites := site == models.AllSites
	rows := make([]models.LaunchRecord, 0)
	for _, r := range records {
		if rng.Contains(r.PayloadMassKg) && (allSites || r.Site == site) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ObservedPayloadRange returns the smallest and largest payload in records.
// ok is false for an empty record set.
func ObservedPayloadRange(records []models.LaunchRecord) (rng models.PayloadRange, ok bool) {
	if len(records) == 0 {
		return models.PayloadRange{}, false
	}
	rng = models.PayloadRange{Low: records[0].PayloadMassKg, High: records[0].PayloadMassKg}
	for _, r := range records[1:] {
		if r.PayloadMassKg < rng.Low {
			rng.Low = r.PayloadMassKg
		}
		if r.PayloadMassKg > rng.High {
			rng.High = r.PayloadMassKg
		}
	}
	return rng, true
}
