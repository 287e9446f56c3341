package summarize

import "errors"

var (
	// ErrInvalidRequest marks a TargetSpec outside the allowed bounds.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmptyInput marks an empty or whitespace-only document.
	ErrEmptyInput = errors.New("input is empty")

	// ErrInputTooShort marks a document below the minimum word count; a
	// summary of near-trivial text is not meaningful.
	ErrInputTooShort = errors.New("input is too short to summarize")

	// ErrMalformedResponse marks a final generation response missing the
	// structural markers the instruction demands.
	ErrMalformedResponse = errors.New("malformed generation response")

	// ErrAggregationFailed marks a reduce stage with no usable chunk
	// summaries left.
	ErrAggregationFailed = errors.New("aggregation failed")
)
