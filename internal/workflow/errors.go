package workflow

import "errors"

// Workflow step errors. Node failures wrap these sentinels so callers can
// report which phase of the step aborted.
var (
	ErrVisionFailed = errors.New("vision negotiation failed")
	ErrDebateFailed = errors.New("debate round failed")
	ErrScribeFailed = errors.New("document generation failed")
)
