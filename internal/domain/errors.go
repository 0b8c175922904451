package domain

import "errors"

// ErrUpstream is returned by repo functions when the flight-data provider
// could not be reached or answered with something other than a flight list.
// The board service degrades this to an empty board instead of failing.
var ErrUpstream = errors.New("upstream error")

// ErrRateLimited is returned by repo functions when the local request budget
// for the flight-data provider is exhausted. No request was sent.
var ErrRateLimited = errors.New("upstream request budget exhausted")

// ErrValidation is returned when request input fails validation
// (e.g. an unknown export format).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
