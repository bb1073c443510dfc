package eco

import "math"

// Response functions map one state variable to a dimensionless factor
// in [0, 1]. They are pure, clamp their input internally, and never
// return NaN or Inf for finite input.

// LightResponse saturates Michaelis-Menten style in the light level
// (1..5 from window proximity). Approaches 0 as light vanishes.
func LightResponse(light float64) float64 {
	if light < 0 {
		light = 0
	}
	return light / (light + 2)
}

// HumidityResponse rises with relative humidity and plateaus at 1.
// Monotone non-decreasing over the whole domain.
func HumidityResponse(humidity float64) float64 {
	h := clamp(humidity, 0, 100)
	return math.Min(h/70, 1)
}

// TemperatureResponse is a bell curve with its optimum at 24 C, near
// zero at both ends of the envelope.
func TemperatureResponse(temp float64) float64 {
	t := clamp(temp, TempMin, TempMax)
	d := t - 24
	return math.Exp(-d * d / 32)
}

// NutrientResponse saturates in soil nitrogen.
func NutrientResponse(nitrogen float64) float64 {
	if nitrogen < 0 {
		nitrogen = 0
	}
	return nitrogen / (nitrogen + 0.5)
}

// CompetitionResponse is 1-P/Pmax clamped to [0, 1]: full suppression
// at or above capacity, never negative.
func CompetitionResponse(biomass, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return clamp(1-biomass/capacity, 0, 1)
}

// MoistureResponse is unimodal around a healthy standing-water band;
// both a dry and a flooded bottle suppress soil life.
func MoistureResponse(water float64) float64 {
	w := clamp(water, 0, BottleCapacity)
	d := w - 5
	return math.Exp(-d * d / 18)
}

// PHResponse is a bell curve centered on neutral.
func PHResponse(ph float64) float64 {
	p := clamp(ph, 0, 14)
	d := p - 7
	return math.Exp(-d * d / 8)
}

// OxygenResponse rises with the O2 fraction and saturates at ambient.
func OxygenResponse(o2 float64) float64 {
	f := clamp(o2, 0, 1)
	return math.Min(f/0.21, 1)
}

// DetritusResponse saturates in available detritus: more litter means
// more food for decomposers.
func DetritusResponse(detritus float64) float64 {
	if detritus < 0 {
		detritus = 0
	}
	return detritus / (detritus + 1)
}

// ToxicityResponse decays monotonically as toxins accumulate; 1 in a
// clean bottle, toward 0 as toxicity grows without bound.
func ToxicityResponse(toxicity float64) float64 {
	if toxicity < 0 {
		toxicity = 0
	}
	return 1 / (1 + 2*toxicity)
}
