package model

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// Readiness bounds.
const (
	MinTRL = 1
	MaxTRL = 9
	MinBRL = 1
	MaxBRL = 5
)

// ErrInvalidTrend is wrapped by every defect reported by Trend.Validate.
var ErrInvalidTrend = errors.New("invalid trend")

// Trend is one record of the radar dataset. Trends are never mutated after load.
type Trend struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name"`
	Description       string      `json:"description" yaml:"description"`
	Category          Category    `json:"category" yaml:"category"`
	ReadinessLevel    int         `json:"readinessLevel" yaml:"readinessLevel"`
	BusinessReadiness int         `json:"businessReadiness" yaml:"businessReadiness"`
	Impact            Impact      `json:"impact" yaml:"impact"`
	TimeHorizon       TimeHorizon `json:"timeHorizon" yaml:"timeHorizon"`
	Angle             float64     `json:"angle" yaml:"angle"`
	Radius            float64     `json:"radius" yaml:"radius"`
	Tags              []string    `json:"tags" yaml:"tags"`
	LastUpdated       Date        `json:"lastUpdated" yaml:"lastUpdated"`
}

// Validate reports every data-integrity defect of the record, joined.
// A nil result means every lookup table in the projection code is total for t.
func (t Trend) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w %q: %s", ErrInvalidTrend, t.ID, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(t.ID) == "" {
		bad("id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		bad("name is required")
	}
	if !t.Category.Valid() {
		bad("unknown category")
	}
	if !t.Impact.Valid() {
		bad("unknown impact")
	}
	if !t.TimeHorizon.Valid() {
		bad("unknown time horizon")
	}
	if t.ReadinessLevel < MinTRL || t.ReadinessLevel > MaxTRL {
		bad("readinessLevel %d out of range %d..%d", t.ReadinessLevel, MinTRL, MaxTRL)
	}
	if t.BusinessReadiness < MinBRL || t.BusinessReadiness > MaxBRL {
		bad("businessReadiness %d out of range %d..%d", t.BusinessReadiness, MinBRL, MaxBRL)
	}
	if math.IsNaN(t.Angle) || t.Angle < 0 || t.Angle >= 360 {
		bad("angle %v out of range [0,360)", t.Angle)
	}
	if math.IsNaN(t.Radius) || t.Radius < 0 || t.Radius > 1 {
		bad("radius %v out of range [0,1]", t.Radius)
	}
	return errors.Join(errs...)
}

// HasTag reports whether the trend carries tag (case-insensitive).
func (t Trend) HasTag(tag string) bool {
	return slices.ContainsFunc(t.Tags, func(s string) bool { return strings.EqualFold(s, tag) })
}

// FindByID returns the trend with the given id.
func FindByID(trends []Trend, id string) (Trend, bool) {
	for _, t := range trends {
		if t.ID == id {
			return t, true
		}
	}
	return Trend{}, false
}

// IndexOf returns the position of the trend with the given id, or -1.
func IndexOf(trends []Trend, id string) int {
	return slices.IndexFunc(trends, func(t Trend) bool { return t.ID == id })
}
