package recognition

import (
	"context"

	"github.com/phrazzld/nutrisnap/internal/domain"
)

// Analyzer sends a meal image to an external vision-capable recognition
// service and normalizes the response into a canonical analysis result.
//
// Implementations make a single outbound call per invocation, never retry on
// their own, and have no side effects beyond the call itself: retry policy,
// timeouts, and the fallback-on-failure substitution all belong to the
// caller. A caller that wants a timeout imposes one through ctx and treats
// expiry like any other recognition failure.
type Analyzer interface {
	// Analyze inspects the referenced image and returns the itemized foods
	// with their aggregate totals.
	//
	// Returns domain.ErrInvalidInput if imageRef is empty (before any
	// network attempt), ErrTransportFailure on call failure, and
	// ErrInvalidResponse when the payload cannot be parsed into a valid
	// result. Both failure kinds match ErrRecognition.
	Analyze(ctx context.Context, imageRef string) (*domain.AnalysisResult, error)
}
