// Package store defines domain-specific errors
package store

import "errors"

// Domain errors - defined once, used everywhere
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrEmptyKey    = errors.New("key cannot be empty")
)
