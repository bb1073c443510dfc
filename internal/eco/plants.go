package eco

import "math"

// plantDeltas applies photosynthesis, growth and nitrogen uptake during
// the day phase, respiration at night, and biomass upkeep in both. All
// reads come from the pre-step state.
func plantDeltas(pre *State, p *Params, d *deltas) {
	light := pre.Setup.Light()

	if pre.Phase == PhaseDay {
		// Photosynthesis: CO2-limited, gated by light and humidity.
		rate := p.KPhoto * pre.PlantBiomass * LightResponse(light) * HumidityResponse(pre.Humidity)
		co2Used := rate * pre.CO2 / (pre.CO2 + 0.005)
		co2Used = math.Min(co2Used, pre.CO2)
		d.co2 -= co2Used
		d.o2 += p.PhotoO2PerCO2 * co2Used

		// Growth: light, nutrient, humidity and crowding all gate it.
		growth := p.KPlantGrow * pre.PlantBiomass *
			LightResponse(light) *
			NutrientResponse(pre.SoilNitrogen) *
			HumidityResponse(pre.Humidity) *
			CompetitionResponse(pre.PlantBiomass, p.PlantCapacity)
		d.plant += growth

		d.soilN -= p.KNUptake * pre.PlantBiomass * NutrientResponse(pre.SoilNitrogen)
	} else {
		// Night respiration: O2 down, CO2 up by its own ratio.
		o2Used := p.KPlantResp * pre.PlantBiomass * OxygenResponse(pre.O2)
		d.o2 -= o2Used
		d.co2 += p.RespCO2PerO2 * o2Used
	}

	// Upkeep runs every interval; toxins make it more expensive.
	toxStress := 1 - ToxicityResponse(pre.Toxicity)
	d.plant -= p.KPlantMaint * pre.PlantBiomass * (1 + toxStress)
}
