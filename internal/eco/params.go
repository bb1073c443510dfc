package eco

import "fmt"

// Temperature envelope inside the bottle.
const (
	TempMin = 5.0
	TempMax = 45.0
)

// Params collects every rate and stoichiometry constant of the update
// rule. All of them are configuration: calibration is done empirically
// (see the calibrate command), never by editing code.
type Params struct {
	PlantCapacity float64 `yaml:"plant_capacity"`
	MicrobeScale  float64 `yaml:"microbe_scale"` // individuals per population unit

	// Plants.
	KPhoto        float64 `yaml:"k_photo"`          // photosynthesis, CO2 drawdown
	PhotoO2PerCO2 float64 `yaml:"photo_o2_per_co2"` // stoichiometric ratio, day
	KPlantGrow    float64 `yaml:"k_plant_grow"`
	KPlantMaint   float64 `yaml:"k_plant_maint"` // biomass upkeep, every interval
	KPlantResp    float64 `yaml:"k_plant_resp"`  // night respiration
	RespCO2PerO2  float64 `yaml:"resp_co2_per_o2"`
	KNUptake      float64 `yaml:"k_n_uptake"`

	// Microbes.
	KFix          float64 `yaml:"k_fix"`
	KMGrow        float64 `yaml:"k_m_grow"`
	KMDeath       float64 `yaml:"k_m_death"`
	KMResp        float64 `yaml:"k_m_resp"`
	MRespCO2PerO2 float64 `yaml:"m_resp_co2_per_o2"`

	// Worms.
	KWormDecomp    float64 `yaml:"k_worm_decomp"`
	DecompNRelease float64 `yaml:"decomp_n_release"`
	KWormGrow      float64 `yaml:"k_worm_grow"`
	KWormDeath     float64 `yaml:"k_worm_death"`

	// Shrimp.
	KShrimpDet   float64 `yaml:"k_shrimp_det"`
	KShrimpWaste float64 `yaml:"k_shrimp_waste"`
	KShrimpGrow  float64 `yaml:"k_shrimp_grow"`
	KShrimpDeath float64 `yaml:"k_shrimp_death"`

	// Soil, water, air.
	KAcid        float64 `yaml:"k_acid"`
	KRockBuffer  float64 `yaml:"k_rock_buffer"`
	KWaterBuffer float64 `yaml:"k_water_buffer"`
	KEvap        float64 `yaml:"k_evap"`
	KPlantUptake float64 `yaml:"k_plant_uptake"`
	KTempRelax   float64 `yaml:"k_temp_relax"`
	KSenesce     float64 `yaml:"k_senesce"`
	KToxGen      float64 `yaml:"k_tox_gen"`
	KToxDecay    float64 `yaml:"k_tox_decay"`
	DetritusSafe float64 `yaml:"detritus_safe"`
}

// DefaultParams returns the baseline calibration.
func DefaultParams() Params {
	return Params{
		PlantCapacity: 100,
		MicrobeScale:  1000,

		KPhoto:        0.0004,
		PhotoO2PerCO2: 0.9,
		KPlantGrow:    0.012,
		KPlantMaint:   0.0022,
		KPlantResp:    0.00012,
		RespCO2PerO2:  1.1,
		KNUptake:      0.002,

		KFix:          0.008,
		KMGrow:        0.004,
		KMDeath:       0.002,
		KMResp:        0.0003,
		MRespCO2PerO2: 1.05,

		KWormDecomp:    0.004,
		DecompNRelease: 0.3,
		KWormGrow:      0.003,
		KWormDeath:     0.0015,

		KShrimpDet:   0.004,
		KShrimpWaste: 0.004,
		KShrimpGrow:  0.003,
		KShrimpDeath: 0.0015,

		KAcid:        0.0008,
		KRockBuffer:  0.0015,
		KWaterBuffer: 0.0006,
		KEvap:        0.00001,
		KPlantUptake: 0.00002,
		KTempRelax:   0.08,
		KSenesce:     0.0004,
		KToxGen:      0.002,
		KToxDecay:    0.01,
		DetritusSafe: 2.0,
	}
}

// Validate rejects calibrations that cannot drive a meaningful update.
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"plant_capacity", p.PlantCapacity},
		{"microbe_scale", p.MicrobeScale},
		{"k_photo", p.KPhoto},
		{"photo_o2_per_co2", p.PhotoO2PerCO2},
		{"k_plant_grow", p.KPlantGrow},
		{"resp_co2_per_o2", p.RespCO2PerO2},
		{"k_fix", p.KFix},
		{"k_m_grow", p.KMGrow},
		{"k_temp_relax", p.KTempRelax},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrParams, c.name, c.v)
		}
	}
	if p.KPlantMaint < 0 || p.KPlantResp < 0 || p.KMDeath < 0 || p.KWormDeath < 0 || p.KShrimpDeath < 0 {
		return fmt.Errorf("%w: death and upkeep rates must be non-negative", ErrParams)
	}
	return nil
}

// WithDifficulty scales the calibration: growth and buffering shrink,
// death and acidification grow. d is 0 (gentle) to 1 (brutal).
func (p Params) WithDifficulty(d float64) Params {
	d = clamp(d, 0, 1)
	q := p
	grow := 1 - 0.5*d
	die := 1 + d

	q.KPlantGrow *= grow
	q.KMGrow *= grow
	q.KWormGrow *= grow
	q.KShrimpGrow *= grow

	q.KPlantMaint *= die
	q.KMDeath *= die
	q.KWormDeath *= die
	q.KShrimpDeath *= die
	q.KAcid *= die

	q.KRockBuffer *= grow
	q.KWaterBuffer *= grow
	return q
}

// paramFields maps calibration names to struct offsets for Set/Get.
// The names double as the grid-search axes in the calibrate command.
func (p *Params) fields() map[string]*float64 {
	return map[string]*float64{
		"plant_capacity":    &p.PlantCapacity,
		"microbe_scale":     &p.MicrobeScale,
		"k_photo":           &p.KPhoto,
		"photo_o2_per_co2":  &p.PhotoO2PerCO2,
		"k_plant_grow":      &p.KPlantGrow,
		"k_plant_maint":     &p.KPlantMaint,
		"k_plant_resp":      &p.KPlantResp,
		"resp_co2_per_o2":   &p.RespCO2PerO2,
		"k_n_uptake":        &p.KNUptake,
		"k_fix":             &p.KFix,
		"k_m_grow":          &p.KMGrow,
		"k_m_death":         &p.KMDeath,
		"k_m_resp":          &p.KMResp,
		"m_resp_co2_per_o2": &p.MRespCO2PerO2,
		"k_worm_decomp":     &p.KWormDecomp,
		"decomp_n_release":  &p.DecompNRelease,
		"k_worm_grow":       &p.KWormGrow,
		"k_worm_death":      &p.KWormDeath,
		"k_shrimp_det":      &p.KShrimpDet,
		"k_shrimp_waste":    &p.KShrimpWaste,
		"k_shrimp_grow":     &p.KShrimpGrow,
		"k_shrimp_death":    &p.KShrimpDeath,
		"k_acid":            &p.KAcid,
		"k_rock_buffer":     &p.KRockBuffer,
		"k_water_buffer":    &p.KWaterBuffer,
		"k_evap":            &p.KEvap,
		"k_plant_uptake":    &p.KPlantUptake,
		"k_temp_relax":      &p.KTempRelax,
		"k_senesce":         &p.KSenesce,
		"k_tox_gen":         &p.KToxGen,
		"k_tox_decay":       &p.KToxDecay,
		"detritus_safe":     &p.DetritusSafe,
	}
}

// Set overrides one constant by name.
func (p *Params) Set(name string, v float64) error {
	f, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("%w: unknown constant %q", ErrParams, name)
	}
	*f = v
	return nil
}

// Get reads one constant by name.
func (p *Params) Get(name string) (float64, error) {
	f, ok := p.fields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown constant %q", ErrParams, name)
	}
	return *f, nil
}
