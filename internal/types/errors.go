package types

import "errors"

// Failure taxonomy for the two external collaborators. Callers wrap these
// with %w so errors.Is works across layers. Parse failures are not part of
// the taxonomy: they degrade the output instead of failing the request.
var (
	// ErrRepository marks a POI data-source failure (unreachable or
	// malformed query).
	ErrRepository = errors.New("poi repository failure")

	// ErrGeneration marks a text-generation capability failure
	// (unreachable, rate-limited, or timed out).
	ErrGeneration = errors.New("text generation failure")
)
