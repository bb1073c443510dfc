package eco

// shrimpDeltas runs every interval: shrimp graze detritus, excrete
// nutrient-rich waste into the soil pool, and grow net of a
// toxicity-gated death term.
func shrimpDeltas(pre *State, p *Params, d *deltas) {
	d.detritus -= p.KShrimpDet * pre.Shrimp * DetritusResponse(pre.Detritus)
	d.soilN += p.KShrimpWaste * pre.Shrimp

	growth := p.KShrimpGrow * pre.Shrimp *
		DetritusResponse(pre.Detritus) *
		OxygenResponse(pre.O2) *
		TemperatureResponse(pre.Temperature)

	toxStress := 1 - ToxicityResponse(pre.Toxicity)
	death := p.KShrimpDeath * pre.Shrimp * (0.5 + toxStress)

	d.shrimp += growth - death
}
