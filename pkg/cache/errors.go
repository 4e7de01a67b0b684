package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by backends that cannot distinguish a miss
	// from an empty value; most callers should rely on Get's bool instead.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned when operating on a closed backend.
	ErrClosed = errors.New("cache closed")
)
