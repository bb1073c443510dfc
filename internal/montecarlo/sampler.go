package montecarlo

import (
	"math/rand"

	"github.com/san-kum/terrasim/internal/eco"
)

// Ranges bounds every sampled input. Structural ranges follow the
// documented realistic setup; chemistry ranges cover the plausible
// spread of a freshly sealed bottle.
type Ranges struct {
	PlantsMin, PlantsMax       int
	SoilKgMin, SoilKgMax       float64
	ProximityMin, ProximityMax int
	WaterMin, WaterMax         float64
	RocksMin, RocksMax         int

	MicrobesMin, MicrobesMax float64
	WormsMin, WormsMax       float64
	ShrimpMin, ShrimpMax     float64
	SoilNMin, SoilNMax       float64
	PHMin, PHMax             float64
	DetritusMin, DetritusMax float64
	TempMin, TempMax         float64
}

// DefaultRanges returns the documented sampling bounds.
func DefaultRanges() Ranges {
	return Ranges{
		PlantsMin: 2, PlantsMax: 5,
		SoilKgMin: 10, SoilKgMax: 30,
		ProximityMin: 1, ProximityMax: 5,
		WaterMin: 1, WaterMax: 10,
		RocksMin: 2, RocksMax: 5,

		MicrobesMin: 500, MicrobesMax: 2000,
		WormsMin: 1, WormsMax: 10,
		ShrimpMin: 1, ShrimpMax: 5,
		SoilNMin: 0.5, SoilNMax: 2.0,
		PHMin: 5.5, PHMax: 8.5,
		DetritusMin: 0.1, DetritusMax: 2.0,
		TempMin: 18, TempMax: 28,
	}
}

// Sampler draws randomized initial configurations. All randomness in a
// batch lives here: the integrator and runner are deterministic.
type Sampler struct {
	rng    *rand.Rand
	ranges Ranges
}

// NewSampler seeds a sampler. Two samplers with the same seed and
// ranges produce identical draw sequences.
func NewSampler(seed int64, r Ranges) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed)), ranges: r}
}

func (s *Sampler) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

func (s *Sampler) uniformInt(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

// Sample draws one setup plus a randomized initial state. Every drawn
// quantity passes through its validating constructor, so a
// misconfigured range surfaces as a configuration error instead of a
// silently clamped state.
func (s *Sampler) Sample() (eco.State, error) {
	r := s.ranges
	setup := eco.Setup{
		PorousSoil:      s.rng.Float64() < 0.5,
		Plants:          s.uniformInt(r.PlantsMin, r.PlantsMax),
		SoilKg:          s.uniform(r.SoilKgMin, r.SoilKgMax),
		WindowProximity: s.uniformInt(r.ProximityMin, r.ProximityMax),
		WaterLiters:     s.uniform(r.WaterMin, r.WaterMax),
		Rocks:           s.uniformInt(r.RocksMin, r.RocksMax),
	}

	st, err := eco.NewState(setup)
	if err != nil {
		return eco.State{}, err
	}

	if st.Microbes, err = eco.NewPopulation(s.uniform(r.MicrobesMin, r.MicrobesMax)); err != nil {
		return eco.State{}, err
	}
	if st.Worms, err = eco.NewPopulation(s.uniform(r.WormsMin, r.WormsMax)); err != nil {
		return eco.State{}, err
	}
	if st.Shrimp, err = eco.NewPopulation(s.uniform(r.ShrimpMin, r.ShrimpMax)); err != nil {
		return eco.State{}, err
	}
	if st.SoilNitrogen, err = eco.NewPopulation(s.uniform(r.SoilNMin, r.SoilNMax)); err != nil {
		return eco.State{}, err
	}
	if st.PH, err = eco.NewPH(s.uniform(r.PHMin, r.PHMax)); err != nil {
		return eco.State{}, err
	}
	if st.Detritus, err = eco.NewPopulation(s.uniform(r.DetritusMin, r.DetritusMax)); err != nil {
		return eco.State{}, err
	}
	if st.Temperature, err = eco.NewTemperature(s.uniform(r.TempMin, r.TempMax)); err != nil {
		return eco.State{}, err
	}
	st.Humidity = eco.DerivedHumidity(st.Temperature, st.Water)

	return st, nil
}
