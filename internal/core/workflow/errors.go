// Package workflow defines domain-specific errors
package workflow

import "errors"

// Domain errors - defined once, used everywhere
var (
	// ErrInvalidPortReference is returned by AddEdge when an endpoint
	// node is missing or the named port is not declared in the required
	// direction on its descriptor.
	ErrInvalidPortReference = errors.New("invalid port reference")
)
