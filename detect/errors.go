package detect

import "errors"

var (
	// ErrInvalidArgument reports malformed or out-of-range input: an
	// unknown language or ISO code token, an empty identifier list, or a
	// minimum relative distance outside [0.0, 1.0].
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBuilderConsumed reports an operation on a Builder whose
	// configuration has already been moved into a Detector by Build.
	ErrBuilderConsumed = errors.New("language detector builder has already been consumed")
)
