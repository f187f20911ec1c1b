// Package interfaces contains interfaces for myregistry adapters.
package interfaces

import (
	"context"
	"errors"
)

// ErrNoNode reports that a tree node does not exist. Store implementations
// translate their client's own not-found condition to this sentinel so the
// service layer can branch on it with errors.Is; every other store failure
// is passed through untranslated.
var ErrNoNode = errors.New("node does not exist")

// TreeStore is a client for a hierarchical store of named nodes, each
// holding an opaque byte payload. Node paths are slash-separated absolute
// paths ("/services/webapp/host-1"); path segments are compared byte for
// byte, no normalization.
//
// Implementations must be safe for concurrent use.
type TreeStore interface {
	// Start opens the connection to the backing store.
	Start() error

	// Close tears down the connection. Safe to call more than once.
	Close() error

	// Write stores data at path, creating the node if needed and
	// overwriting any previous payload. Missing parent nodes are
	// created empty.
	Write(ctx context.Context, path string, data []byte) error

	// Read returns the payload stored at path.
	// Returns ErrNoNode if the node does not exist.
	Read(ctx context.Context, path string) ([]byte, error)

	// ListChildren returns the names (not full paths) of the direct
	// children of path, in lexical order.
	// Returns ErrNoNode if the node itself does not exist.
	ListChildren(ctx context.Context, path string) ([]string, error)

	// Delete removes the node at path.
	// Returns ErrNoNode if the node does not exist.
	Delete(ctx context.Context, path string) error
}
