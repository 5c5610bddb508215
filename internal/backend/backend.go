package backend

import "context"

// Backend is the raw key/value capability an expiring store is built on.
// Values are opaque strings; envelope encoding and expiry live above this
// layer. Implementations must be safe for concurrent use.
type Backend interface {
	// Has reports whether a raw entry exists for key. It does not
	// interpret the entry in any way.
	Has(ctx context.Context, key string) (bool, error)

	// Get retrieves the raw entry for a key. The boolean reports
	// whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a raw entry for a key, overwriting any prior entry.
	Set(ctx context.Context, key, value string) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every entry held by this backend.
	Clear(ctx context.Context) error
}
