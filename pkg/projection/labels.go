package projection

import "github.com/vanderheijden86/trendradar/pkg/model"

var ringLabels = [model.NumMethods][4]string{
	model.MethodAuthored:   {"Mature", "Developing", "Emerging", "Early"},
	model.MethodTechnology: {"TRL 9", "TRL 6-7", "TRL 3-4", "TRL 1-2"},
	model.MethodBusiness:   {"BRL 5", "BRL 4", "BRL 2-3", "BRL 1"},
	model.MethodImpact:     {"Transformative", "High", "Medium", "Low"},
	model.MethodTimeline:   {"2025", "2026", "2027-28", "2029+"},
}

// RingLabels returns the four ring labels of method, innermost first. They are
// drawn on the rings listed in RingLabelRings.
func RingLabels(method model.Method) [4]string {
	if int(method) < model.NumMethods {
		return ringLabels[method]
	}
	return ringLabels[model.MethodAuthored]
}

// TRLStage names the development stage of a technology readiness level.
func TRLStage(trl int) string {
	switch {
	case trl <= 3:
		return "Research & Development"
	case trl <= 6:
		return "Technology Development"
	default:
		return "System Development & Deployment"
	}
}

// BRLStage names the market stage of a business readiness level.
func BRLStage(brl int) string {
	switch {
	case brl <= 2:
		return "Early Market Exploration"
	case brl <= 3:
		return "Market Development"
	default:
		return "Market Deployment"
	}
}

// Maturity is the one-word maturity of a technology readiness level.
func Maturity(trl int) string {
	switch {
	case trl <= 3:
		return "Early"
	case trl <= 6:
		return "Developing"
	default:
		return "Advanced"
	}
}

// TRLPercent is readiness as a percentage of TRL 9.
func TRLPercent(trl int) float64 {
	return Clamp(float64(trl)/model.MaxTRL*100, 0, 100)
}

// BRLPercent is business readiness as a percentage of BRL 5.
func BRLPercent(brl int) float64 {
	return Clamp(float64(brl)/model.MaxBRL*100, 0, 100)
}
