package eco

// microbeDeltas runs every interval: nitrogen fixation gated by oxygen
// and moisture, respiration, and population growth net of pH and
// oxygen stress. Microbe counts are normalized by MicrobeScale so the
// rate constants stay comparable across organisms.
func microbeDeltas(pre *State, p *Params, d *deltas) {
	m := pre.Microbes / p.MicrobeScale

	// Fixation moves atmospheric nitrogen into the soil pool.
	d.soilN += p.KFix * m * OxygenResponse(pre.O2) * MoistureResponse(pre.Water)

	// Respiration.
	o2Used := p.KMResp * m * OxygenResponse(pre.O2)
	d.o2 -= o2Used
	d.co2 += p.MRespCO2PerO2 * o2Used

	// Logistic growth against a soil-mass carrying capacity, death
	// driven by pH and oxygen stress.
	capacity := microbeCapacity(pre.Setup, p)
	growth := p.KMGrow * pre.Microbes *
		NutrientResponse(pre.SoilNitrogen) *
		MoistureResponse(pre.Water) *
		TemperatureResponse(pre.Temperature) *
		clamp(1-pre.Microbes/capacity, 0, 1)

	phStress := 1 - PHResponse(pre.PH)
	o2Stress := 1 - OxygenResponse(pre.O2)
	death := p.KMDeath * pre.Microbes * (0.5 + phStress + o2Stress)

	d.microbes += growth - death
}

// microbeCapacity scales with soil mass; porous soil holds more life.
func microbeCapacity(s Setup, p *Params) float64 {
	c := s.SoilKg * 200
	if s.PorousSoil {
		c *= 1.5
	}
	if c < p.MicrobeScale {
		c = p.MicrobeScale
	}
	return c
}
