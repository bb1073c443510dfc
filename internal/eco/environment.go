package eco

// environmentDeltas covers the abiotic terms that run every interval:
// pH drift, water balance, temperature relaxation, plant senescence
// into detritus, and toxin buildup and decay.
func environmentDeltas(pre *State, p *Params, d *deltas) {
	// Microbial acidification against rock and water buffering. The
	// buffers pull toward neutral rather than pushing one way.
	m := pre.Microbes / p.MicrobeScale
	buffer := p.KRockBuffer*float64(pre.Setup.Rocks) + p.KWaterBuffer*pre.Water
	d.ph += -p.KAcid*m + buffer*(7-pre.PH)

	// The bottle is closed: condensation returns most evaporation, so
	// the net water loss is evaporation residue plus plant uptake.
	d.water -= p.KEvap*pre.Water + p.KPlantUptake*pre.PlantBiomass

	// Temperature relaxes toward a window- and phase-dependent
	// equilibrium.
	d.temp += p.KTempRelax * (equilibriumTemp(pre.Setup, pre.Phase) - pre.Temperature)

	// Senescent biomass becomes detritus.
	d.detritus += p.KSenesce * pre.PlantBiomass

	// Toxins accumulate once detritus exceeds the safe load and decay
	// faster in a wetter bottle.
	excess := pre.Detritus - p.DetritusSafe
	if excess > 0 {
		d.toxicity += p.KToxGen * excess
	}
	d.toxicity -= p.KToxDecay * pre.Toxicity * (1 + 0.05*pre.Water)
}

// equilibriumTemp is the temperature the bottle drifts toward: sunnier
// placements run warmer, nights run cooler.
func equilibriumTemp(s Setup, phase Phase) float64 {
	t := 18 + 2.5*s.Light()
	if phase == PhaseNight {
		t -= 6
	}
	return t
}
