package integrate

import "errors"

var (
	// ErrNilSpectrum indicates a nil initial spectrum tensor.
	ErrNilSpectrum = errors.New("integrate: initial spectrum must not be nil")

	// ErrMissingSizes indicates no population-size argument was supplied.
	ErrMissingSizes = errors.New("integrate: population sizes are required")

	// ErrNonPositiveSize indicates a population size ≤ 0 at some evaluated
	// time. This aborts the whole integration; no partial result exists.
	ErrNonPositiveSize = errors.New("integrate: all population sizes must be positive")

	// ErrNegativeTime indicates a negative target integration time.
	ErrNegativeTime = errors.New("integrate: integration time must be non-negative")

	// ErrBadStepFactor indicates a negative time-step factor.
	ErrBadStepFactor = errors.New("integrate: step factor must be positive")

	// ErrLengthMismatch indicates a per-population argument whose length
	// differs from the spectrum rank.
	ErrLengthMismatch = errors.New("integrate: per-population argument length does not match spectrum rank")

	// ErrVaryingRates indicates a mutation rate supplied as a function of
	// time; the mutation operators are built once per integration and only
	// sizes, selection and dominance may vary.
	ErrVaryingRates = errors.New("integrate: mutation rates cannot vary in time")

	// ErrMissingRates indicates the finite-genome model was requested
	// without forward and backward rates.
	ErrMissingRates = errors.New("integrate: finite-genome model requires forward and backward rates")
)
