package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rewired-gh/launchdash/internal/models"
)

var scenario = []models.LaunchRecord{
	{Site: "SiteA", PayloadMassKg: 500, Class: 1, BoosterCategory: "v1"},
	{Site: "SiteA", PayloadMassKg: 1500, Class: 0, BoosterCategory: "v1"},
	{Site: "SiteB", PayloadMassKg: 2500, Class: 1, BoosterCategory: "v2"},
}

// launches resembles the real dataset: interleaved sites, zero-success sites and repeated payloads.
var launches = []models.LaunchRecord{
	{Site: "CCAFS LC-40", PayloadMassKg: 0, Class: 0, BoosterCategory: "v1.0"},
	{Site: "CCAFS LC-40", PayloadMassKg: 525, Class: 0, BoosterCategory: "v1.0"},
	{Site: "VAFB SLC-4E", PayloadMassKg: 500, Class: 0, BoosterCategory: "v1.1"},
	{Site: "KSC LC-39A", PayloadMassKg: 2490, Class: 1, BoosterCategory: "FT"},
	{Site: "CCAFS SLC-40", PayloadMassKg: 4600, Class: 0, BoosterCategory: "FT"},
	{Site: "KSC LC-39A", PayloadMassKg: 5300, Class: 1, BoosterCategory: "FT"},
	{Site: "CCAFS LC-40", PayloadMassKg: 3170, Class: 1, BoosterCategory: "v1.1"},
	{Site: "VAFB SLC-4E", PayloadMassKg: 9600, Class: 1, BoosterCategory: "B4"},
	{Site: "KSC LC-39A", PayloadMassKg: 6070, Class: 0, BoosterCategory: "B4"},
	{Site: "CCAFS SLC-40", PayloadMassKg: 0, Class: 1, BoosterCategory: "B5"},
}

func TestListSites(t *testing.T) {
	tests := []struct {
		name    string
		records []models.LaunchRecord
		want    []models.SiteOption
	}{
		{
			name:    "scenario",
			records: scenario,
			want: []models.SiteOption{
				{Label: "SiteA", Value: "SiteA"},
				{Label: "SiteB", Value: "SiteB"},
				{Label: "All sites", Value: "ALL"},
			},
		},
		{
			name:    "first seen order with interleaving",
			records: launches,
			want: []models.SiteOption{
				{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
				{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
				{Label: "KSC LC-39A", Value: "KSC LC-39A"},
				{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
				{Label: "All sites", Value: "ALL"},
			},
		},
		{
			name:    "empty dataset",
			records: nil,
			want:    []models.SiteOption{{Label: "All sites", Value: "ALL"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ListSites(tt.records)); diff != "" {
				t.Errorf("ListSites mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListSites_UniqueValues(t *testing.T) {
	seen := make(map[string]bool)
	for _, opt := range ListSites(launches) {
		if seen[opt.Value] {
			t.Errorf("duplicate site option %q", opt.Value)
		}
		seen[opt.Value] = true
	}
}

func TestPieData(t *testing.T) {
	tests := []struct {
		name    string
		records []models.LaunchRecord
		site    string
		want    []Slice
	}{
		{
			name:    "all sites scenario",
			records: scenario,
			site:    models.AllSites,
			want:    []Slice{{Label: "SiteA", Value: 1}, {Label: "SiteB", Value: 1}},
		},
		{
			name:    "single site scenario",
			records: scenario,
			site:    "SiteA",
			want:    []Slice{{Label: LabelFailure, Value: 1}, {Label: LabelSuccess, Value: 1}},
		},
		{
			name:    "single site only successes",
			records: scenario,
			site:    "SiteB",
			want:    []Slice{{Label: LabelSuccess, Value: 1}},
		},
		{
			name:    "all sites keeps zero success site",
			records: launches[:3],
			site:    models.AllSites,
			want:    []Slice{{Label: "CCAFS LC-40", Value: 0}, {Label: "VAFB SLC-4E", Value: 0}},
		},
		{
			name:    "unknown site",
			records: scenario,
			site:    "Boca Chica",
			want:    []Slice{},
		},
		{
			name:    "empty dataset",
			records: nil,
			site:    models.AllSites,
			want:    []Slice{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, PieData(tt.records, tt.site)); diff != "" {
				t.Errorf("PieData mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPieData_SliceMap(t *testing.T) {
	got := SliceMap(PieData(scenario, "SiteA"))
	want := map[string]float64{"Failure": 1, "Success": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SliceMap mismatch (-want +got):\n%s", diff)
	}
}

func TestPieData_TotalsMatchCounts(t *testing.T) {
	var successes float64
	perSite := make(map[string]float64)
	for _, r := range launches {
		successes += float64(r.Class)
		perSite[r.Site]++
	}

	if got := Total(PieData(launches, models.AllSites)); got != successes {
		t.Errorf("all sites total = %v, want %v successes", got, successes)
	}
	for site, count := range perSite {
		if got := Total(PieData(launches, site)); got != count {
			t.Errorf("site %s total = %v, want %v rows", site, got, count)
		}
	}
}

func TestScatterRows(t *testing.T) {
	tests := []struct {
		name    string
		records []models.LaunchRecord
		site    string
		rng     models.PayloadRange
		want    []models.LaunchRecord
	}{
		{
			name:    "scenario all sites low range",
			records: scenario,
			site:    models.AllSites,
			rng:     models.PayloadRange{Low: 0, High: 1000},
			want:    scenario[:1],
		},
		{
			name:    "inclusive bounds",
			records: scenario,
			site:    models.AllSites,
			rng:     models.PayloadRange{Low: 500, High: 2500},
			want:    scenario,
		},
		{
			name:    "site and range",
			records: scenario,
			site:    "SiteA",
			rng:     models.PayloadRange{Low: 1000, High: 10000},
			want:    scenario[1:2],
		},
		{
			name:    "unknown site",
			records: scenario,
			site:    "Boca Chica",
			rng:     models.PayloadRange{Low: 0, High: 10000},
			want:    []models.LaunchRecord{},
		},
		{
			name:    "empty dataset",
			records: nil,
			site:    models.AllSites,
			rng:     models.PayloadRange{Low: 0, High: 10000},
			want:    []models.LaunchRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ScatterRows(tt.records, tt.site, tt.rng)); diff != "" {
				t.Errorf("ScatterRows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScatterRows_MinimumPayloadBoundary(t *testing.T) {
	observed, ok := ObservedPayloadRange(launches)
	if !ok {
		t.Fatal("expected observed range")
	}

	rows := ScatterRows(launches, models.AllSites, models.PayloadRange{Low: observed.Low, High: observed.Low})
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows at minimum payload, got %d", len(rows))
	}
	for _, r := range rows {
		if r.PayloadMassKg != observed.Low {
			t.Errorf("row payload %v != minimum %v", r.PayloadMassKg, observed.Low)
		}
	}
}

func TestScatterRows_FilterOrderIndependent(t *testing.T) {
	rng := models.PayloadRange{Low: 400, High: 6000}
	for _, opt := range ListSites(launches) {
		site := opt.Value

		siteFirst := ScatterRows(ScatterRows(launches, site, models.PayloadRange{Low: 0, High: 1e9}), models.AllSites, rng)
		rangeFirst := ScatterRows(ScatterRows(launches, models.AllSites, rng), site, models.PayloadRange{Low: 0, High: 1e9})
		combined := ScatterRows(launches, site, rng)

		if diff := cmp.Diff(siteFirst, rangeFirst); diff != "" {
			t.Errorf("site %s: filter order changed result (-site first +range first):\n%s", site, diff)
		}
		if diff := cmp.Diff(combined, siteFirst); diff != "" {
			t.Errorf("site %s: conjunctive filter differs (-combined +chained):\n%s", site, diff)
		}
		if diff := cmp.Diff(combined, ScatterRows(combined, site, rng)); diff != "" {
			t.Errorf("site %s: filter not idempotent:\n%s", site, diff)
		}
	}
}

func TestObservedPayloadRange(t *testing.T) {
	if _, ok := ObservedPayloadRange(nil); ok {
		t.Error("expected ok=false for empty records")
	}

	got, ok := ObservedPayloadRange(launches)
	if !ok {
		t.Fatal("expected ok=true")
	}
	want := models.PayloadRange{Low: 0, High: 9600}
	if got != want {
		t.Errorf("ObservedPayloadRange = %+v, want %+v", got, want)
	}
}
