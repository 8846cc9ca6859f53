package service

import "errors"

var (
	// ErrQuotaExceeded is returned when the daily usage limiter refuses a
	// generation call. Recoverable; surfaced to the caller as "try again
	// later".
	ErrQuotaExceeded = errors.New("daily usage limits exceeded")

	// ErrNoCandidates is returned when no catalog record survives the
	// include/exclude filters.
	ErrNoCandidates = errors.New("no recipes match the given filters")

	// ErrEmptyResponse is returned when the model returned empty or
	// whitespace-only content.
	ErrEmptyResponse = errors.New("model returned empty content")

	// ErrNoJSONFound is returned when the response contains no {...} span
	// at all.
	ErrNoJSONFound = errors.New("no JSON object found in model response")

	// ErrUnparseableResponse is returned when both the direct parse and
	// the brace-span extraction fail.
	ErrUnparseableResponse = errors.New("failed to parse model response as JSON")

	// ErrSchemaValidation is returned when the parsed object is missing
	// required recipe fields.
	ErrSchemaValidation = errors.New("model response missing required fields")

	// ErrServiceUnavailable is returned on transport failures toward the
	// text-generation service.
	ErrServiceUnavailable = errors.New("text-generation service unavailable")
)
