package eco

import "fmt"

// Validated constructors for range-checked quantities. Configuration
// paths build state through these and fail fast on out-of-domain
// input; inside the integrator the same domains are enforced by
// clamping instead.

// NewPH validates a pH value against [0, 14].
func NewPH(v float64) (float64, error) {
	if v < 0 || v > 14 {
		return 0, fmt.Errorf("%w: pH %g outside [0, 14]", ErrQuantity, v)
	}
	return v, nil
}

// NewTemperature validates a temperature against the bottle's
// survivable envelope [5, 45] celsius.
func NewTemperature(v float64) (float64, error) {
	if v < TempMin || v > TempMax {
		return 0, fmt.Errorf("%w: temperature %g outside [%g, %g]", ErrQuantity, v, TempMin, TempMax)
	}
	return v, nil
}

// NewHumidity validates a relative humidity against [0, 100].
func NewHumidity(v float64) (float64, error) {
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: humidity %g outside [0, 100]", ErrQuantity, v)
	}
	return v, nil
}

// NewFraction validates a gas fraction against [0, 1].
func NewFraction(v float64) (float64, error) {
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: fraction %g outside [0, 1]", ErrQuantity, v)
	}
	return v, nil
}

// NewPopulation validates a non-negative population or biomass value.
func NewPopulation(v float64) (float64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: population %g is negative", ErrQuantity, v)
	}
	return v, nil
}
