package recognition

import (
	"errors"
	"fmt"
)

// Errors returned by Analyzer implementations. The two failure subkinds wrap
// ErrRecognition, so callers that only care about "the recognition call
// failed" can match the umbrella while telemetry keeps the distinction
// between a transport fault and an unusable payload.
var (
	// ErrRecognition is the umbrella error for any recognition failure.
	ErrRecognition = errors.New("food recognition failed")

	// ErrTransportFailure marks non-success statuses, timeouts, and network
	// errors on the outbound call. The upstream diagnostic is preserved in
	// the wrapped error text for logging.
	ErrTransportFailure = fmt.Errorf("%w: transport failure", ErrRecognition)

	// ErrInvalidResponse marks responses that cannot be parsed into the
	// expected shape, or that fail result validation.
	ErrInvalidResponse = fmt.Errorf("%w: invalid response payload", ErrRecognition)

	// ErrInvalidConfig is returned when a backend is constructed with missing
	// or malformed configuration.
	ErrInvalidConfig = errors.New("invalid recognition configuration")
)
