package sim

import "github.com/san-kum/terrasim/internal/eco"

// MinOxygen tracks the lowest O2 fraction seen over a run.
type MinOxygen struct {
	min float64
	set bool
}

func NewMinOxygen() *MinOxygen { return &MinOxygen{} }

func (m *MinOxygen) Name() string { return "min_o2" }

func (m *MinOxygen) Observe(s *eco.State) {
	if !m.set || s.O2 < m.min {
		m.min = s.O2
		m.set = true
	}
}

func (m *MinOxygen) Value() float64 {
	if !m.set {
		return 0
	}
	return m.min
}

func (m *MinOxygen) Reset() { m.min, m.set = 0, false }

// PeakToxicity tracks the highest toxin load seen over a run.
type PeakToxicity struct {
	peak float64
}

func NewPeakToxicity() *PeakToxicity { return &PeakToxicity{} }

func (p *PeakToxicity) Name() string { return "peak_toxicity" }

func (p *PeakToxicity) Observe(s *eco.State) {
	if s.Toxicity > p.peak {
		p.peak = s.Toxicity
	}
}

func (p *PeakToxicity) Value() float64 { return p.peak }

func (p *PeakToxicity) Reset() { p.peak = 0 }
