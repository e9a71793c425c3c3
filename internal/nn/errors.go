package nn

import "errors"

// Errors returned by the engine. Call sites wrap them with the offending
// sizes, so compare with errors.Is.
var (
	ErrShapeMismatch            = errors.New("shape mismatch")
	ErrDegenerateInitialization = errors.New("degenerate initialization: weight sum is zero")
	ErrPreconditionViolated     = errors.New("precondition violated: no forward pass recorded")
)
