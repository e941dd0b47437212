package service

import "errors"

var (
	// ErrParseAmbiguous means free-text budget input matched no price stage
	ErrParseAmbiguous = errors.New("budget not understood")
	// ErrUpstreamUnavailable means the search backend failed or returned a non-success status
	ErrUpstreamUnavailable = errors.New("search backend unavailable")
	// ErrEmptyResultSet means nothing survived filtering; surfaced as an offer, not a failure
	ErrEmptyResultSet = errors.New("no matching properties")
	// ErrUnsupportedBedroomCount means bedrooms were mentioned without a 0-3 count
	ErrUnsupportedBedroomCount = errors.New("unsupported bedroom count")

	ErrSearchInFlight  = errors.New("a search is already running for this session")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmptyInput      = errors.New("empty input")
)
