package config

// Presets are ready-made bottle setups. Each is a complete config;
// the montecarlo block carries the defaults unless a preset overrides
// it.
var Presets = map[string]*Config{
	"classic": {
		Setup: SetupConfig{
			Soil: SoilPorous, Plants: 3, SoilKg: 20, WindowProximity: 2,
			WaterLiters: 5, Rocks: 3,
		},
	},
	"lush": {
		Setup: SetupConfig{
			Soil: SoilPorous, Plants: 5, SoilKg: 30, WindowProximity: 1,
			WaterLiters: 6, Rocks: 4,
		},
	},
	"shade": {
		Setup: SetupConfig{
			Soil: SoilCompact, Plants: 2, SoilKg: 15, WindowProximity: 5,
			WaterLiters: 4, Rocks: 2,
		},
	},
	"swamp": {
		Setup: SetupConfig{
			Soil: SoilCompact, Plants: 4, SoilKg: 25, WindowProximity: 3,
			WaterLiters: 10, Rocks: 5,
		},
	},
	"dry": {
		Setup: SetupConfig{
			Soil: SoilPorous, Plants: 2, SoilKg: 12, WindowProximity: 2,
			WaterLiters: 1, Rocks: 3,
		},
	},
}

// GetPreset returns a full config for the named preset, or nil. The
// preset's setup is merged over the defaults so params and montecarlo
// settings stay complete.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Setup = p.Setup
	if p.Difficulty != 0 {
		cfg.Difficulty = p.Difficulty
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
