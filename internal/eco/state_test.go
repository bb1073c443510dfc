package eco

import (
	"errors"
	"math"
	"testing"
)

func TestSetupValidate(t *testing.T) {
	valid := Setup{
		PorousSoil: false, Plants: 3, SoilKg: 20,
		WindowProximity: 2, WaterLiters: 5, Rocks: 3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid setup rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Setup)
	}{
		{"too few plants", func(s *Setup) { s.Plants = 1 }},
		{"too many plants", func(s *Setup) { s.Plants = 6 }},
		{"light soil", func(s *Setup) { s.SoilKg = 5 }},
		{"heavy soil", func(s *Setup) { s.SoilKg = 31 }},
		{"proximity low", func(s *Setup) { s.WindowProximity = 0 }},
		{"proximity high", func(s *Setup) { s.WindowProximity = 6 }},
		{"dry", func(s *Setup) { s.WaterLiters = 0.5 }},
		{"overfilled", func(s *Setup) { s.WaterLiters = 11 }},
		{"few rocks", func(s *Setup) { s.Rocks = 1 }},
		{"many rocks", func(s *Setup) { s.Rocks = 6 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrSetup) {
				t.Errorf("expected ErrSetup, got %v", err)
			}
			if _, err := NewState(s); !errors.Is(err, ErrSetup) {
				t.Errorf("NewState should reject it too, got %v", err)
			}
		})
	}
}

func TestLightFromProximity(t *testing.T) {
	s := Setup{WindowProximity: 1}
	if got := s.Light(); got != 5 {
		t.Errorf("closest spot should be brightest: got %g", got)
	}
	s.WindowProximity = 5
	if got := s.Light(); got != 1 {
		t.Errorf("farthest spot should be dimmest: got %g", got)
	}
}

func TestNewStateInitialValues(t *testing.T) {
	setup := Setup{
		PorousSoil: true, Plants: 4, SoilKg: 15,
		WindowProximity: 3, WaterLiters: 6, Rocks: 2,
	}
	st, err := NewState(setup)
	if err != nil {
		t.Fatal(err)
	}

	if st.PlantBiomass != 8 {
		t.Errorf("biomass should scale with plant count: got %g", st.PlantBiomass)
	}
	if st.Water != setup.WaterLiters {
		t.Errorf("water should match the setup: got %g", st.Water)
	}
	if st.Day != 1 || st.Phase != PhaseDay || st.Interval != 0 {
		t.Errorf("fresh state should start day 1 daylight: %+v", st)
	}
	if sum := st.O2 + st.CO2 + st.N2; math.Abs(sum-1) > 1e-9 {
		t.Errorf("initial gas mix should sum to 1, got %g", sum)
	}
	if st.Humidity != DerivedHumidity(st.Temperature, st.Water) {
		t.Error("humidity should derive from temperature and water")
	}
}

func TestQuantityConstructors(t *testing.T) {
	if _, err := NewPH(15); !errors.Is(err, ErrQuantity) {
		t.Error("ph above 14 should be rejected")
	}
	if _, err := NewPH(7); err != nil {
		t.Errorf("neutral ph rejected: %v", err)
	}
	if _, err := NewTemperature(50); !errors.Is(err, ErrQuantity) {
		t.Error("temperature above the envelope should be rejected")
	}
	if _, err := NewHumidity(-1); !errors.Is(err, ErrQuantity) {
		t.Error("negative humidity should be rejected")
	}
	if _, err := NewFraction(1.2); !errors.Is(err, ErrQuantity) {
		t.Error("fraction above 1 should be rejected")
	}
	if _, err := NewPopulation(-3); !errors.Is(err, ErrQuantity) {
		t.Error("negative population should be rejected")
	}
	if v, err := NewPopulation(0); err != nil || v != 0 {
		t.Errorf("zero population is valid: %g, %v", v, err)
	}
}

func TestParamsSetGet(t *testing.T) {
	p := DefaultParams()
	if err := p.Set("k_photo", 0.001); err != nil {
		t.Fatal(err)
	}
	v, err := p.Get("k_photo")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.001 {
		t.Errorf("expected 0.001, got %g", v)
	}

	if err := p.Set("k_nonsense", 1); !errors.Is(err, ErrParams) {
		t.Errorf("unknown constant should be rejected, got %v", err)
	}
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	p.KPhoto = 0
	if err := p.Validate(); !errors.Is(err, ErrParams) {
		t.Errorf("zero photosynthesis rate should fail, got %v", err)
	}

	p = DefaultParams()
	p.KMDeath = -1
	if err := p.Validate(); !errors.Is(err, ErrParams) {
		t.Errorf("negative death rate should fail, got %v", err)
	}
}

func TestWithDifficulty(t *testing.T) {
	base := DefaultParams()
	hard := base.WithDifficulty(1)

	if hard.KPlantGrow >= base.KPlantGrow {
		t.Error("difficulty should slow growth")
	}
	if hard.KMDeath <= base.KMDeath {
		t.Error("difficulty should raise death rates")
	}
	if hard.KRockBuffer >= base.KRockBuffer {
		t.Error("difficulty should weaken buffering")
	}

	// Clamped outside [0, 1].
	if base.WithDifficulty(-1) != base.WithDifficulty(0) {
		t.Error("negative difficulty should clamp to 0")
	}
	if base.WithDifficulty(2) != hard {
		t.Error("difficulty above 1 should clamp to 1")
	}
}

func TestInterventions(t *testing.T) {
	st, err := NewState(Setup{
		PorousSoil: true, Plants: 3, SoilKg: 20,
		WindowProximity: 1, WaterLiters: 5, Rocks: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	st.O2 = 0.08
	OpenBottle(&st)
	if st.O2 != 0.21 {
		t.Errorf("opening should restore ambient oxygen, got %g", st.O2)
	}
	if sum := st.O2 + st.CO2 + st.N2; math.Abs(sum-1) > 1e-9 {
		t.Errorf("gas mix should renormalize after opening, got %g", sum)
	}

	if MoveCloser(&st) {
		t.Error("already at the window, no closer to move")
	}
	if !MoveFarther(&st) || st.Setup.WindowProximity != 2 {
		t.Errorf("move farther failed: proximity %d", st.Setup.WindowProximity)
	}

	plantsBefore, biomassBefore := st.Setup.Plants, st.PlantBiomass
	if !AddPlant(&st) {
		t.Fatal("room for more plants")
	}
	if st.Setup.Plants != plantsBefore+1 || st.PlantBiomass <= biomassBefore {
		t.Error("adding a plant should grow the count and biomass")
	}
	st.Setup.Plants = 5
	if AddPlant(&st) {
		t.Error("a full bottle should reject more plants")
	}

	st.Water = BottleCapacity
	if AddWater(&st) {
		t.Error("a full bottle should reject more water")
	}
	st.Water = 5
	if !AddWater(&st) || st.Water != 6 {
		t.Errorf("adding water failed: %g", st.Water)
	}
}
