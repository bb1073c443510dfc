package eco

// deltas accumulates one interval's rate terms. Every term is computed
// from the pre-step state; the integrator commits them all at once so
// no field ever reads another field's post-update value mid-step.
type deltas struct {
	plant    float64
	microbes float64
	worms    float64
	shrimp   float64

	o2  float64
	co2 float64

	soilN    float64
	ph       float64
	water    float64
	temp     float64
	detritus float64
	toxicity float64
}

// EventKind tags what an integrator step reported.
type EventKind int

const (
	// EventPhaseChange marks a day-to-night or night-to-day switch.
	EventPhaseChange EventKind = iota
	// EventDayAdvance marks the completion of a full day cycle.
	EventDayAdvance
	// EventClamp marks a field pulled back into its domain. Clamps are
	// recovered locally and counted, never surfaced as errors.
	EventClamp
)

// Event is a threshold breach or cycle transition reported by a step.
type Event struct {
	Kind  EventKind
	Field string
}

// Integrator advances an ecosystem state one interval at a time. It is
// deterministic: no randomness, no hidden inputs beyond the state and
// constants it was built with.
type Integrator struct {
	params Params
	clamps uint64
}

// NewIntegrator builds an integrator for a calibration. The params are
// copied; later mutation of the caller's copy has no effect.
func NewIntegrator(p Params) *Integrator {
	return &Integrator{params: p}
}

// Params returns the calibration in use.
func (it *Integrator) Params() Params { return it.params }

// DomainViolations counts how many field clamps the integrator has
// performed. Useful for model tuning; a healthy calibration keeps this
// near zero.
func (it *Integrator) DomainViolations() uint64 { return it.clamps }

// Step advances s by one interval and returns the triggered events.
func (it *Integrator) Step(s *State) []Event {
	pre := *s
	p := &it.params

	var d deltas
	plantDeltas(&pre, p, &d)
	microbeDeltas(&pre, p, &d)
	wormDeltas(&pre, p, &d)
	shrimpDeltas(&pre, p, &d)
	environmentDeltas(&pre, p, &d)

	// Commit atomically.
	s.PlantBiomass += d.plant
	s.Microbes += d.microbes
	s.Worms += d.worms
	s.Shrimp += d.shrimp
	s.O2 += d.o2
	s.CO2 += d.co2
	s.SoilNitrogen += d.soilN
	s.PH += d.ph
	s.Water += d.water
	s.Temperature += d.temp
	s.Detritus += d.detritus
	s.Toxicity += d.toxicity

	events := it.clampAll(s)

	// Humidity is diagnostic: derived from the committed temperature
	// and water, never integrated on its own.
	s.Humidity = humidityFrom(s.Temperature, s.Water)

	renormalizeGases(s)

	// Advance the phase machine.
	s.Interval++
	switch s.Phase {
	case PhaseDay:
		if s.Interval >= DayIntervals {
			s.Phase = PhaseNight
			s.Interval = 0
			events = append(events, Event{Kind: EventPhaseChange})
		}
	case PhaseNight:
		if s.Interval >= NightIntervals {
			s.Phase = PhaseDay
			s.Interval = 0
			s.Day++
			events = append(events,
				Event{Kind: EventPhaseChange},
				Event{Kind: EventDayAdvance})
		}
	}

	return events
}

// clampAll pulls every committed field back into its declared domain
// and records each violation.
func (it *Integrator) clampAll(s *State) []Event {
	var events []Event
	clampField := func(v *float64, lo, hi float64, name string) {
		if *v < lo || *v > hi {
			*v = clamp(*v, lo, hi)
			it.clamps++
			events = append(events, Event{Kind: EventClamp, Field: name})
		}
	}

	const unbounded = 1e18
	clampField(&s.PlantBiomass, 0, it.params.PlantCapacity, "plant_biomass")
	clampField(&s.Microbes, 0, microbeCapacity(s.Setup, &it.params), "microbes")
	clampField(&s.Worms, 0, unbounded, "worms")
	clampField(&s.Shrimp, 0, unbounded, "shrimp")
	clampField(&s.O2, 0, 1, "o2")
	clampField(&s.CO2, 0, 1, "co2")
	clampField(&s.N2, 0, 1, "n2")
	clampField(&s.SoilNitrogen, 0, unbounded, "soil_nitrogen")
	clampField(&s.PH, 0, 14, "ph")
	clampField(&s.Water, 0, BottleCapacity, "water")
	clampField(&s.Temperature, TempMin, TempMax, "temperature")
	clampField(&s.Detritus, 0, unbounded, "detritus")
	clampField(&s.Toxicity, 0, unbounded, "toxicity")
	return events
}

// renormalizeGases rescales the three gas fractions to sum to exactly
// 1, absorbing accumulated floating error.
func renormalizeGases(s *State) {
	total := s.O2 + s.CO2 + s.N2
	if total <= 0 {
		s.O2, s.CO2, s.N2 = 0, 0, 1
		return
	}
	s.O2 /= total
	s.CO2 /= total
	s.N2 /= total
}
