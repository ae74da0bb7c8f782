// Package node defines domain-specific errors
package node

import "errors"

// Domain errors - defined once, used everywhere
var (
	// ErrUnknownNodeKind is returned for kinds outside the static catalog.
	// Reaching it through the sanctioned palette is a programmer error,
	// so callers are expected to fail loud in tests rather than recover.
	ErrUnknownNodeKind = errors.New("unknown node kind")
)
