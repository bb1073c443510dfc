package eco

import "errors"

// Domain errors. Collapse is never one of these: a collapsed run is a
// normal outcome reported as data, not an error.
var (
	// ErrSetup indicates an out-of-range structural input.
	ErrSetup = errors.New("eco: invalid setup")

	// ErrParams indicates a non-positive or out-of-range rate constant.
	ErrParams = errors.New("eco: invalid parameters")

	// ErrQuantity indicates a value outside its declared domain at
	// construction time.
	ErrQuantity = errors.New("eco: quantity out of domain")

	// ErrDayCap indicates a missing or non-positive day budget.
	ErrDayCap = errors.New("eco: day cap must be positive")
)
