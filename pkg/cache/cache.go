// Package cache provides result caching for the lint pipeline.
//
// The engine itself is stateless and recomputes from every Document it is
// given; caching by input fingerprint is the caller's job. This package is
// that caller-side machinery: a small Cache interface with null, in-memory,
// file, and Redis backends, plus a Keyer that derives stable keys from
// content hashes and option fingerprints.
package cache

import (
	"context"
	"time"
)

// Cache time-to-live defaults per key type.
const (
	// TTLResult is how long lint results (parse + validation) are kept.
	TTLResult = 24 * time.Hour

	// TTLLayout is how long computed layouts are kept.
	TTLLayout = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Derivation
// =============================================================================

// LintKeyOpts fingerprints the options that change a lint result.
type LintKeyOpts struct {
	Repair bool // whether the normalizer ran before parsing
}

// LayoutKeyOpts fingerprints the layout configuration.
type LayoutKeyOpts struct {
	DX      float64
	DY      float64
	OriginX float64
	OriginY float64
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LintKey keys a lint result by the hash of the raw input text.
	LintKey(textHash string, opts LintKeyOpts) string

	// LayoutKey keys a computed layout by the document hash and spacing.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key derivation: a typed prefix plus a
// SHA-256 over the JSON encoding of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// LintKey generates a key for lint result caching.
func (k *DefaultKeyer) LintKey(textHash string, opts LintKeyOpts) string {
	return hashKey("lint", textHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// =============================================================================
// ScopedKeyer - Namespaced Keys
// =============================================================================

// ScopedKeyer wraps a Keyer with a prefix so multiple projects or tenants
// sharing one backend get separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LintKey generates a prefixed lint key.
func (k *ScopedKeyer) LintKey(textHash string, opts LintKeyOpts) string {
	return k.prefix + k.inner.LintKey(textHash, opts)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(docHash, opts)
}
