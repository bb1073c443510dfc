package eco

import "fmt"

// Phase selects which rate-term set the integrator applies.
type Phase int

const (
	PhaseDay Phase = iota
	PhaseNight
)

func (p Phase) String() string {
	if p == PhaseDay {
		return "day"
	}
	return "night"
}

// One simulated day is a fixed run of daylight intervals followed by
// dark intervals.
const (
	DayIntervals    = 10
	NightIntervals  = 6
	IntervalsPerDay = DayIntervals + NightIntervals
)

// BottleCapacity is the water volume ceiling in liters.
const BottleCapacity = 10.0

// Setup holds the structural inputs fixed at configuration time. The
// integrator never mutates them; interactive interventions may.
type Setup struct {
	PorousSoil      bool
	Plants          int     // 2..5
	SoilKg          float64 // 10..30
	WindowProximity int     // 1..5, 1 is closest to the window
	WaterLiters     float64 // 1..10
	Rocks           int     // 2..5
}

// Validate rejects out-of-range setup values. Invalid setups are a
// configuration error, never silently clamped.
func (s Setup) Validate() error {
	if s.Plants < 2 || s.Plants > 5 {
		return fmt.Errorf("%w: plants must be 2..5, got %d", ErrSetup, s.Plants)
	}
	if s.SoilKg < 10 || s.SoilKg > 30 {
		return fmt.Errorf("%w: soil mass must be 10..30 kg, got %g", ErrSetup, s.SoilKg)
	}
	if s.WindowProximity < 1 || s.WindowProximity > 5 {
		return fmt.Errorf("%w: window proximity must be 1..5, got %d", ErrSetup, s.WindowProximity)
	}
	if s.WaterLiters < 1 || s.WaterLiters > BottleCapacity {
		return fmt.Errorf("%w: water must be 1..%g liters, got %g", ErrSetup, BottleCapacity, s.WaterLiters)
	}
	if s.Rocks < 2 || s.Rocks > 5 {
		return fmt.Errorf("%w: rocks must be 2..5, got %d", ErrSetup, s.Rocks)
	}
	return nil
}

// Light returns the light level derived from window proximity, in 1..5.
func (s Setup) Light() float64 {
	return float64(6 - s.WindowProximity)
}

// State is the full numeric vector for one simulated bottle at one
// point in time. Populations and chemistry are mutated in place by the
// integrator; Setup stays fixed.
type State struct {
	Setup Setup

	PlantBiomass float64 // 0..PlantCapacity
	Microbes     float64 // individuals, order of 1e3
	Worms        float64
	Shrimp       float64

	// Gas fractions, renormalized to sum to 1 after every step.
	O2  float64
	CO2 float64
	N2  float64

	SoilNitrogen float64 // >= 0
	PH           float64 // 0..14
	Water        float64 // 0..BottleCapacity liters
	Humidity     float64 // 0..100, derived from temperature and water
	Temperature  float64 // 5..45 celsius
	Detritus     float64 // >= 0
	Toxicity     float64 // >= 0

	Day      int // 1-based
	Phase    Phase
	Interval int // within the current phase
}

// NewState builds the nominal initial state for a setup. Randomized
// initial chemistry belongs to the Monte Carlo sampler, not here.
func NewState(setup Setup) (State, error) {
	if err := setup.Validate(); err != nil {
		return State{}, err
	}
	s := State{
		Setup:        setup,
		PlantBiomass: 2.0 * float64(setup.Plants),
		Microbes:     1000,
		Worms:        5,
		Shrimp:       3,
		O2:           0.23,
		CO2:          0.02,
		N2:           0.75,
		SoilNitrogen: 1.0,
		PH:           7.0,
		Water:        setup.WaterLiters,
		Temperature:  22.0,
		Detritus:     0.5,
		Toxicity:     0,
		Day:          1,
		Phase:        PhaseDay,
	}
	s.Humidity = humidityFrom(s.Temperature, s.Water)
	return s, nil
}

// DerivedHumidity exposes the humidity diagnostic for callers that
// adjust temperature or water outside the integrator.
func DerivedHumidity(temp, water float64) float64 {
	return humidityFrom(temp, water)
}

// humidityFrom derives relative humidity from temperature and standing
// water. Humidity is diagnostic, never integrated.
func humidityFrom(temp, water float64) float64 {
	h := 24 + 6.5*water + 0.9*(temp-20)
	return clamp(h, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
