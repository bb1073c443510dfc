package eco

// Interventions model a keeper physically interfering with the bottle
// between days. They mutate state directly; the integrator itself
// never does any of this.

// OpenBottle vents the bottle: oxygen resets to ambient and the gas
// fractions renormalize around it.
func OpenBottle(s *State) {
	s.O2 = 0.21
	s.CO2 = clamp(s.CO2, 0, 1-s.O2)
	s.N2 = 1 - s.O2 - s.CO2
}

// MoveCloser moves the bottle one step toward the window. Reports
// whether anything changed.
func MoveCloser(s *State) bool {
	if s.Setup.WindowProximity <= 1 {
		return false
	}
	s.Setup.WindowProximity--
	return true
}

// MoveFarther moves the bottle one step away from the window.
func MoveFarther(s *State) bool {
	if s.Setup.WindowProximity >= 5 {
		return false
	}
	s.Setup.WindowProximity++
	return true
}

// AddPlant adds one plant if the bottle has room for it.
func AddPlant(s *State) bool {
	if s.Setup.Plants >= 5 {
		return false
	}
	s.Setup.Plants++
	s.PlantBiomass += 2.0
	return true
}

// AddWater pours one liter in, up to the bottle capacity.
func AddWater(s *State) bool {
	if s.Water >= BottleCapacity {
		return false
	}
	s.Water = clamp(s.Water+1, 0, BottleCapacity)
	if s.Setup.WaterLiters < BottleCapacity {
		s.Setup.WaterLiters++
	}
	return true
}
