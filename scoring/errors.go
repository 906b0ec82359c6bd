package scoring

import "errors"

var (
	// ErrInvalidStrokes rejects raw entries outside [1,15] before any strategy runs.
	ErrInvalidStrokes = errors.New("strokes must be between 1 and 15")

	// ErrUnknownHole rejects entries for a hole number the teebox does not define.
	ErrUnknownHole = errors.New("unknown hole number")

	// ErrUnsupportedScoringType is returned by the strategy factory for
	// stableford (reserved) and any unrecognized scoring type.
	ErrUnsupportedScoringType = errors.New("unsupported scoring type")

	// ErrConfigurationMissing means the event has no winner configuration.
	// The caller must create one before invoking winner calculation.
	ErrConfigurationMissing = errors.New("winner configuration missing for event")

	// ErrRecalculationInProgress means another winner recalculation holds the
	// event's critical section. The caller may retry later; no partial state
	// was written.
	ErrRecalculationInProgress = errors.New("winner recalculation already in progress for event")
)
