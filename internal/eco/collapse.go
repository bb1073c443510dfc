package eco

// Cause names the dominant reason a bottle destabilized or collapsed.
type Cause int

const (
	CauseNone Cause = iota
	CausePlantsDied
	CauseMicrobesDied
	CauseWormsDied
	CauseShrimpDied
	CauseOxygenCritical
	CauseOther
)

func (c Cause) String() string {
	switch c {
	case CausePlantsDied:
		return "plants_died"
	case CauseMicrobesDied:
		return "microbes_died"
	case CauseWormsDied:
		return "worms_died"
	case CauseShrimpDied:
		return "shrimp_died"
	case CauseOxygenCritical:
		return "oxygen_critical"
	case CauseOther:
		return "other"
	default:
		return "none"
	}
}

// ParseCause maps a stored cause name back to its value.
func ParseCause(s string) Cause {
	for c := CauseNone; c <= CauseOther; c++ {
		if c.String() == s {
			return c
		}
	}
	return CauseNone
}

// Status is the stability classification of one evaluated state.
type Status int

const (
	StatusStable Status = iota
	StatusWarning
	StatusCollapsed
)

func (s Status) String() string {
	switch s {
	case StatusWarning:
		return "warning"
	case StatusCollapsed:
		return "collapsed"
	default:
		return "stable"
	}
}

// Verdict is the evaluator's classification of a single state.
// Severity is only meaningful for warnings: 0 is barely past the soft
// threshold, 1 is at the hard one.
type Verdict struct {
	Status   Status
	Cause    Cause
	Severity float64
}

// Thresholds holds the soft (warning) and hard (collapse) floors.
type Thresholds struct {
	PlantHard, PlantSoft     float64
	MicrobeHard, MicrobeSoft float64
	WormHard, WormSoft       float64
	ShrimpHard, ShrimpSoft   float64
	O2Hard, O2Soft           float64

	// Advisory-only bands; breaches warn with CauseOther.
	PHLow, PHHigh float64
	ToxicityWarn  float64
}

// DefaultThresholds returns the baseline stability floors.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PlantHard: 0.5, PlantSoft: 2.0,
		MicrobeHard: 50, MicrobeSoft: 300,
		WormHard: 0.05, WormSoft: 0.5,
		ShrimpHard: 0.05, ShrimpSoft: 0.3,
		O2Hard: 0.05, O2Soft: 0.12,
		PHLow: 5.5, PHHigh: 8.5,
		ToxicityWarn: 1.0,
	}
}

// Evaluator classifies states produced by repeated integrator steps.
// Collapsed is absorbing: once reached, every later Evaluate returns
// the same verdict regardless of the state.
type Evaluator struct {
	thr       Thresholds
	collapsed bool
	final     Verdict
}

// NewEvaluator builds an evaluator with the given floors.
func NewEvaluator(thr Thresholds) *Evaluator {
	return &Evaluator{thr: thr}
}

// Collapsed reports whether a terminal verdict has been reached.
func (e *Evaluator) Collapsed() bool { return e.collapsed }

// Thresholds returns the floors this evaluator was built with.
func (e *Evaluator) Thresholds() Thresholds { return e.thr }

type breach struct {
	cause  Cause
	margin float64 // value / threshold, lower is closer to failure
}

// Evaluate classifies s. Collapse is checked first; when several hard
// thresholds are breached at once the cause with the lowest normalized
// margin wins, so the primary cause is deterministic.
func (e *Evaluator) Evaluate(s *State) Verdict {
	if e.collapsed {
		return e.final
	}

	hard := []breach{}
	check := func(value, threshold float64, cause Cause) {
		if value <= threshold {
			m := 0.0
			if threshold > 0 {
				m = value / threshold
			}
			hard = append(hard, breach{cause: cause, margin: m})
		}
	}
	check(s.PlantBiomass, e.thr.PlantHard, CausePlantsDied)
	check(s.Microbes, e.thr.MicrobeHard, CauseMicrobesDied)
	check(s.Worms, e.thr.WormHard, CauseWormsDied)
	check(s.Shrimp, e.thr.ShrimpHard, CauseShrimpDied)
	check(s.O2, e.thr.O2Hard, CauseOxygenCritical)

	if len(hard) > 0 {
		worst := hard[0]
		for _, b := range hard[1:] {
			if b.margin < worst.margin {
				worst = b
			}
		}
		e.collapsed = true
		e.final = Verdict{Status: StatusCollapsed, Cause: worst.cause}
		return e.final
	}

	return e.warn(s)
}

// warn checks the advisory soft thresholds.
func (e *Evaluator) warn(s *State) Verdict {
	type softBreach struct {
		cause    Cause
		severity float64
		margin   float64
	}
	soft := []softBreach{}
	check := func(value, hardThr, softThr float64, cause Cause) {
		if value <= softThr {
			span := softThr - hardThr
			sev := 1.0
			if span > 0 {
				sev = clamp(1-(value-hardThr)/span, 0, 1)
			}
			m := 0.0
			if softThr > 0 {
				m = value / softThr
			}
			soft = append(soft, softBreach{cause: cause, severity: sev, margin: m})
		}
	}
	check(s.PlantBiomass, e.thr.PlantHard, e.thr.PlantSoft, CausePlantsDied)
	check(s.Microbes, e.thr.MicrobeHard, e.thr.MicrobeSoft, CauseMicrobesDied)
	check(s.Worms, e.thr.WormHard, e.thr.WormSoft, CauseWormsDied)
	check(s.Shrimp, e.thr.ShrimpHard, e.thr.ShrimpSoft, CauseShrimpDied)
	check(s.O2, e.thr.O2Hard, e.thr.O2Soft, CauseOxygenCritical)

	if s.PH < e.thr.PHLow || s.PH > e.thr.PHHigh {
		dist := clamp((e.thr.PHLow-s.PH)/e.thr.PHLow, 0, 1)
		if s.PH > e.thr.PHHigh {
			dist = clamp((s.PH-e.thr.PHHigh)/(14-e.thr.PHHigh), 0, 1)
		}
		soft = append(soft, softBreach{cause: CauseOther, severity: dist, margin: 0.5})
	}
	if s.Toxicity > e.thr.ToxicityWarn {
		sev := clamp(s.Toxicity/(2*e.thr.ToxicityWarn), 0, 1)
		soft = append(soft, softBreach{cause: CauseOther, severity: sev, margin: 0.5})
	}

	if len(soft) == 0 {
		return Verdict{Status: StatusStable}
	}
	worst := soft[0]
	for _, b := range soft[1:] {
		if b.margin < worst.margin {
			worst = b
		}
	}
	return Verdict{Status: StatusWarning, Cause: worst.cause, Severity: worst.severity}
}
