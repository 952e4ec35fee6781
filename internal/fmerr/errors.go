// Package fmerr holds the sentinel errors shared across the fire model
// so callers can errors.Is against a failure class regardless of which
// package raised it (spec §7: InvalidInput, GeometryFailure,
// MissingFallback).
package fmerr

import "errors"

var (
	// ErrInvalidInput is returned when a construction-time invariant
	// (crown shape, species proportions, stratum weights, ...) is
	// violated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeometryFailure is returned when a geometric configuration is
	// impossible to resolve, e.g. a ray parallel to the line it should
	// originate from.
	ErrGeometryFailure = errors.New("geometry failure")

	// ErrMissingFallback is returned when a parameter lookup finds the
	// key in neither the parsed parameters nor the fallback table.
	ErrMissingFallback = errors.New("missing fallback")

	// ErrInvalidOverlapType is returned when a raw overlap-kind token
	// does not normalize to any recognized StratumOverlapType.
	ErrInvalidOverlapType = errors.New("invalid overlap type")
)
