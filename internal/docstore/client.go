package docstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("docstore: document not found")

// Client is the minimal document-store contract the rest of the
// application depends on. Consistency is last-writer-wins per field;
// there are no transactions and no queries.
type Client interface {
	// Get returns the fields of the document at path, or ErrNotFound.
	Get(ctx context.Context, path string) (Fields, error)

	// Create writes a full document at path, replacing any existing one.
	Create(ctx context.Context, path string, fields Fields) error

	// Patch merges the masked fields into the document at path, creating
	// it when absent. Only field names listed in mask are touched; a
	// masked name missing from fields is deleted from the document.
	Patch(ctx context.Context, path string, fields Fields, mask []string) error
}

// Lister is an optional capability for backends that can enumerate
// documents by path prefix. The Firestore REST backend does not
// implement it; the SQLite backend does.
type Lister interface {
	ListPaths(ctx context.Context, prefix string) ([]string, error)
}
