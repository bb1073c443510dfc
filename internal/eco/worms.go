package eco

// wormDeltas runs every interval: worms decompose detritus back into
// soil nitrogen and grow net of a toxicity-gated death term. Porous
// soil makes burrowing cheaper and decomposition faster.
func wormDeltas(pre *State, p *Params, d *deltas) {
	soilFactor := 1.0
	if pre.Setup.PorousSoil {
		soilFactor = 1.3
	}

	consumed := p.KWormDecomp * pre.Worms * DetritusResponse(pre.Detritus) * soilFactor
	d.detritus -= consumed
	d.soilN += p.DecompNRelease * consumed

	growth := p.KWormGrow * pre.Worms *
		DetritusResponse(pre.Detritus) *
		MoistureResponse(pre.Water) *
		TemperatureResponse(pre.Temperature) *
		soilFactor

	toxStress := 1 - ToxicityResponse(pre.Toxicity)
	death := p.KWormDeath * pre.Worms * (0.5 + toxStress)

	d.worms += growth - death
}
