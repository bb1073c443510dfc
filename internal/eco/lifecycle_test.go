package eco_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/terrasim/internal/eco"
)

var _ = Describe("a sealed bottle", func() {
	var (
		st    eco.State
		integ *eco.Integrator
		eval  *eco.Evaluator
	)

	BeforeEach(func() {
		var err error
		st, err = eco.NewState(eco.Setup{
			PorousSoil: true, Plants: 3, SoilKg: 20,
			WindowProximity: 2, WaterLiters: 5, Rocks: 3,
		})
		Expect(err).NotTo(HaveOccurred())
		integ = eco.NewIntegrator(eco.DefaultParams())
		eval = eco.NewEvaluator(eco.DefaultThresholds())
	})

	It("stays stable through the first week", func() {
		for day := 0; day < 7; day++ {
			for i := 0; i < eco.IntervalsPerDay; i++ {
				integ.Step(&st)
				v := eval.Evaluate(&st)
				Expect(v.Status).NotTo(Equal(eco.StatusCollapsed))
			}
		}
		Expect(st.Day).To(Equal(8))
	})

	It("keeps the gas mix normalized across a long run", func() {
		for i := 0; i < 200*eco.IntervalsPerDay; i++ {
			integ.Step(&st)
			Expect(st.O2 + st.CO2 + st.N2).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("cycles through phases on the fixed schedule", func() {
		Expect(st.Phase).To(Equal(eco.PhaseDay))
		for i := 0; i < eco.DayIntervals; i++ {
			integ.Step(&st)
		}
		Expect(st.Phase).To(Equal(eco.PhaseNight))
		for i := 0; i < eco.NightIntervals; i++ {
			integ.Step(&st)
		}
		Expect(st.Phase).To(Equal(eco.PhaseDay))
		Expect(st.Day).To(Equal(2))
	})

	It("never resurrects after a collapse verdict", func() {
		st.O2 = 0.01
		Expect(eval.Evaluate(&st).Status).To(Equal(eco.StatusCollapsed))

		eco.OpenBottle(&st)
		Expect(eval.Evaluate(&st).Status).To(Equal(eco.StatusCollapsed))
		Expect(eval.Evaluate(&st).Cause).To(Equal(eco.CauseOxygenCritical))
	})
})
