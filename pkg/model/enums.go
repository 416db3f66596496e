// Package model defines the trend dataset types: the Trend record, its closed
// enumerations, the filter state and the radar quadrant table entry.
//
// Every enumeration is a small integer type whose zero value means "unknown".
// Text forms are the display strings used by every on-disk format, and an
// unrecognized string decodes to the zero value so that validation can report
// all defects of a dataset at once instead of failing on the first one.
package model

import "strings"

// Category is the domain a trend belongs to.
type Category uint8

const (
	CategoryUnknown Category = iota
	Technology
	Industry
	Humanity

	NumCategories = int(Humanity) + 1
)

var categoryNames = [NumCategories]string{"", "Technology", "Industry", "Humanity"}

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{Technology, Industry, Humanity}
}

func (c Category) String() string {
	if int(c) < NumCategories {
		return categoryNames[c]
	}
	return ""
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return c > CategoryUnknown && int(c) < NumCategories }

// ParseCategory maps a display string (case-insensitive) to a Category.
func ParseCategory(s string) Category { return Category(lookupName(categoryNames[:], s)) }

func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Category) UnmarshalText(b []byte) error {
	*c = ParseCategory(string(b))
	return nil
}

// Impact is the ordinal potential impact of a trend.
type Impact uint8

const (
	ImpactUnknown Impact = iota
	Low
	Medium
	High
	Transformative

	NumImpacts = int(Transformative) + 1
)

var impactNames = [NumImpacts]string{"", "Low", "Medium", "High", "Transformative"}

// Impacts lists the known impact levels from lowest to highest.
func Impacts() []Impact {
	return []Impact{Low, Medium, High, Transformative}
}

func (i Impact) String() string {
	if int(i) < NumImpacts {
		return impactNames[i]
	}
	return ""
}

func (i Impact) Valid() bool { return i > ImpactUnknown && int(i) < NumImpacts }

// ParseImpact maps a display string (case-insensitive) to an Impact.
func ParseImpact(s string) Impact { return Impact(lookupName(impactNames[:], s)) }

func (i Impact) MarshalText() ([]byte, error) { return []byte(i.String()), nil }

func (i *Impact) UnmarshalText(b []byte) error {
	*i = ParseImpact(string(b))
	return nil
}

// TimeHorizon is the expected year a trend becomes relevant.
type TimeHorizon uint8

const (
	HorizonUnknown TimeHorizon = iota
	Horizon2025
	Horizon2026
	Horizon2027
	Horizon2028
	Horizon2029Plus

	NumTimeHorizons = int(Horizon2029Plus) + 1
)

var horizonNames = [NumTimeHorizons]string{"", "2025", "2026", "2027", "2028", "2029+"}

// TimeHorizons lists the known horizons from nearest to farthest.
func TimeHorizons() []TimeHorizon {
	return []TimeHorizon{Horizon2025, Horizon2026, Horizon2027, Horizon2028, Horizon2029Plus}
}

func (h TimeHorizon) String() string {
	if int(h) < NumTimeHorizons {
		return horizonNames[h]
	}
	return ""
}

func (h TimeHorizon) Valid() bool { return h > HorizonUnknown && int(h) < NumTimeHorizons }

// Rank is the 1-based ordinal of the horizon (2025 = 1, 2029+ = 5), or 0 when unknown.
func (h TimeHorizon) Rank() int {
	if !h.Valid() {
		return 0
	}
	return int(h)
}

// ParseTimeHorizon maps "2025" ... "2029+" to a TimeHorizon.
func ParseTimeHorizon(s string) TimeHorizon {
	return TimeHorizon(lookupName(horizonNames[:], s))
}

func (h TimeHorizon) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *TimeHorizon) UnmarshalText(b []byte) error {
	*h = ParseTimeHorizon(string(b))
	return nil
}

// Method selects how the radar chart derives a trend's radius.
// The zero value uses the radius authored in the dataset.
type Method uint8

const (
	MethodAuthored Method = iota
	MethodTechnology
	MethodBusiness
	MethodImpact
	MethodTimeline

	NumMethods = int(MethodTimeline) + 1
)

var methodNames = [NumMethods]string{"authored", "technology", "business", "impact", "timeline"}

var methodLabels = [NumMethods]string{
	"Authored",
	"Technology Readiness",
	"Business Readiness",
	"Impact Level",
	"Time Horizon",
}

var methodDescriptions = [NumMethods]string{
	"Position as authored in the dataset",
	"Position based on technology maturity (TRL 1-9)",
	"Position based on business viability (BRL 1-5)",
	"Position based on potential impact",
	"Position based on expected timeline",
}

// Methods lists the selectable projection methods in toolbar order.
func Methods() []Method {
	return []Method{MethodTechnology, MethodBusiness, MethodImpact, MethodTimeline}
}

func (m Method) String() string {
	if int(m) < NumMethods {
		return methodNames[m]
	}
	return ""
}

func (m Method) Valid() bool { return m > MethodAuthored && int(m) < NumMethods }

// Label is the toolbar title of the method.
func (m Method) Label() string {
	if int(m) < NumMethods {
		return methodLabels[m]
	}
	return methodLabels[MethodAuthored]
}

// Description is the one-line explanation shown under the method selector.
func (m Method) Description() string {
	if int(m) < NumMethods {
		return methodDescriptions[m]
	}
	return methodDescriptions[MethodAuthored]
}

// ParseMethod maps "technology", "business", "impact" or "timeline" to a Method.
// Anything else is MethodAuthored.
func ParseMethod(s string) Method { return Method(lookupName(methodNames[:], s)) }

// LookupMethod is ParseMethod that also reports whether s named a method.
// The empty string and "authored" select MethodAuthored.
func LookupMethod(s string) (Method, bool) {
	if m := ParseMethod(s); m.Valid() {
		return m, true
	}
	s = strings.TrimSpace(s)
	return MethodAuthored, s == "" || strings.EqualFold(s, methodNames[MethodAuthored])
}

func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Method) UnmarshalText(b []byte) error {
	*m = ParseMethod(string(b))
	return nil
}

// ViewMode is the chart currently shown. The zero value is the radar.
type ViewMode uint8

const (
	ViewRadar ViewMode = iota
	ViewMatrix

	NumViewModes = int(ViewMatrix) + 1
)

var viewNames = [NumViewModes]string{"radar", "matrix"}

var viewTitles = [NumViewModes]string{"Radar View", "Matrix View"}

func (v ViewMode) String() string {
	if int(v) < NumViewModes {
		return viewNames[v]
	}
	return viewNames[ViewRadar]
}

// Title is the header text for the view.
func (v ViewMode) Title() string {
	if int(v) < NumViewModes {
		return viewTitles[v]
	}
	return viewTitles[ViewRadar]
}

// Toggle returns the other view.
func (v ViewMode) Toggle() ViewMode {
	if v == ViewMatrix {
		return ViewRadar
	}
	return ViewMatrix
}

// ParseViewMode maps "radar" or "matrix" to a ViewMode; ok is false for anything else.
func ParseViewMode(s string) (ViewMode, bool) {
	for i, n := range viewNames {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return ViewMode(i), true
		}
	}
	return ViewRadar, false
}

func (v ViewMode) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *ViewMode) UnmarshalText(b []byte) error {
	*v, _ = ParseViewMode(string(b))
	return nil
}

// lookupName returns the index of s in names, skipping the empty zero slot.
func lookupName(names []string, s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for i := 1; i < len(names); i++ {
		if strings.EqualFold(names[i], s) {
			return i
		}
	}
	return 0
}
