package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrParseFailure marks a material that could not be converted to
	// text. Ingestion skips the item and continues with the rest.
	ErrParseFailure = goerr.New("failed to extract text from material")

	// ErrMalformedOutput marks generative output that failed JSON
	// extraction, repair and validation after the retry budget. The raw
	// text is attached as a goerr value for diagnostics.
	ErrMalformedOutput = goerr.New("malformed output from generative backend")

	// ErrBackendTransient marks a retryable backend failure (rate limit,
	// transient network error). Exhausted retries convert it to a fatal
	// synthesis failure.
	ErrBackendTransient = goerr.New("transient generative backend failure")

	// ErrBackendFatal marks an auth/quota failure that must surface
	// immediately without retry.
	ErrBackendFatal = goerr.New("fatal generative backend failure")

	// ErrPersistence marks a record that could not be saved. Already
	// computed in-memory results are not discarded.
	ErrPersistence = goerr.New("failed to persist record")

	ErrMeetingNotFound  = goerr.New("meeting not found")
	ErrMaterialNotFound = goerr.New("material not found")
	ErrBriefNotFound    = goerr.New("brief not found")
)
