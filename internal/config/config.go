package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/terrasim/internal/eco"
)

const (
	DefaultRuns   = 1000
	DefaultDayCap = 365
	DefaultSeed   = 42
	SoilPorous    = "porous"
	SoilCompact   = "compact"
)

type Config struct {
	Setup      SetupConfig      `yaml:"setup"`
	Params     eco.Params       `yaml:"params"`
	Difficulty float64          `yaml:"difficulty"`
	Montecarlo MontecarloConfig `yaml:"montecarlo"`
}

type SetupConfig struct {
	Soil            string  `yaml:"soil"` // porous or compact
	Plants          int     `yaml:"plants"`
	SoilKg          float64 `yaml:"soil_kg"`
	WindowProximity int     `yaml:"window_proximity"`
	WaterLiters     float64 `yaml:"water_liters"`
	Rocks           int     `yaml:"rocks"`
}

type MontecarloConfig struct {
	Runs    int   `yaml:"runs"`
	DayCap  int   `yaml:"day_cap"`
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Setup: SetupConfig{
			Soil:            SoilPorous,
			Plants:          3,
			SoilKg:          20,
			WindowProximity: 2,
			WaterLiters:     5,
			Rocks:           3,
		},
		Params: eco.DefaultParams(),
		Montecarlo: MontecarloConfig{
			Runs:   DefaultRuns,
			DayCap: DefaultDayCap,
			Seed:   DefaultSeed,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Setup converts the file form to the simulation setup, validating on
// the way out so a bad file fails before any run starts.
func (c *Config) EcoSetup() (eco.Setup, error) {
	var porous bool
	switch c.Setup.Soil {
	case SoilPorous:
		porous = true
	case SoilCompact:
		porous = false
	default:
		return eco.Setup{}, fmt.Errorf("%w: soil must be %q or %q, got %q",
			eco.ErrSetup, SoilPorous, SoilCompact, c.Setup.Soil)
	}

	setup := eco.Setup{
		PorousSoil:      porous,
		Plants:          c.Setup.Plants,
		SoilKg:          c.Setup.SoilKg,
		WindowProximity: c.Setup.WindowProximity,
		WaterLiters:     c.Setup.WaterLiters,
		Rocks:           c.Setup.Rocks,
	}
	if err := setup.Validate(); err != nil {
		return eco.Setup{}, err
	}
	return setup, nil
}

// EffectiveParams applies the configured difficulty to the rate set.
func (c *Config) EffectiveParams() (eco.Params, error) {
	if c.Difficulty < 0 || c.Difficulty > 1 {
		return eco.Params{}, fmt.Errorf("%w: difficulty must be 0..1, got %g",
			eco.ErrParams, c.Difficulty)
	}
	p := c.Params.WithDifficulty(c.Difficulty)
	if err := p.Validate(); err != nil {
		return eco.Params{}, err
	}
	return p, nil
}
