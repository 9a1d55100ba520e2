// Package models defines the core domain entities for the launch dashboard.
// These models represent launch records loaded from the dataset, the site options
// offered by the dropdown and the user's current selection.
//
// Terminology:
//   - Launch site: the named location a launch originates from.
//   - Class: the binary launch outcome, 1 = success and 0 = failure.
//   - Booster version category: hardware grouping used only as a chart color.
package models

import (
	"errors"
	"math"
	"strings"
)

// Outcome codes stored in the class column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// LaunchRecord is one row of the launch dataset. Records are immutable after load.
type LaunchRecord struct {
	Site            string  `json:"Launch Site"`
	PayloadMassKg   float64 `json:"Payload Mass (kg)"`
	Class           int     `json:"class"`
	BoosterCategory string  `json:"Booster Version Category"`
}

// Succeeded reports whether the launch outcome is a success.
func (r LaunchRecord) Succeeded() bool {
	return r.Class == OutcomeSuccess
}

// Validate checks that all record fields are valid.
func (r *LaunchRecord) Validate() error {
	if strings.TrimSpace(r.Site) == "" {
		return errors.New("launch site must not be empty")
	}
	if math.IsNaN(r.PayloadMassKg) || math.IsInf(r.PayloadMassKg, 0) {
		return errors.New("payload mass must be a finite number")
	}
	if r.PayloadMassKg < 0 {
		return errors.New("payload mass must not be negative")
	}
	if r.Class != OutcomeFailure && r.Class != OutcomeSuccess {
		return errors.New("class must be 0 or 1")
	}
	return nil
}
