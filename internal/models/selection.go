package models

import (
	"errors"
	"fmt"
)

// AllSites is the synthetic site value that selects every launch site.
const (
	AllSites      = "ALL"
	AllSitesLabel = "All sites"
)

// ErrInvalidRange is returned when a payload range violates 0 <= low <= high.
var ErrInvalidRange = errors.New("invalid payload range")

// SiteOption is one entry of the site dropdown.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PayloadRange is a closed interval of payload masses in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether mass lies within the range, bounds included.
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}

// Validate checks that 0 <= low <= high.
func (r PayloadRange) Validate() error {
	if r.Low < 0 {
		return fmt.Errorf("%w: low %.0f must not be negative", ErrInvalidRange, r.Low)
	}
	if r.Low > r.High {
		return fmt.Errorf("%w: low %.0f must be <= high %.0f", ErrInvalidRange, r.Low, r.High)
	}
	return nil
}

// Selection is the current state of the two dashboard controls.
type Selection struct {
	Site    string       `json:"site"`
	Payload PayloadRange `json:"payload"`
}

// Validate checks that the selection has a site and a valid payload range.
func (s *Selection) Validate() error {
	if s.Site == "" {
		return errors.New("selected site must not be empty")
	}
	return s.Payload.Validate()
}
