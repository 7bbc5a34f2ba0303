package ports

import (
	"context"
	"io"
)

// PhotoStorage stores checklist photos and driver signatures outside the
// database. Implementations return a URL that is persisted with the checklist.
type PhotoStorage interface {
	// Store writes the given content under the delivery's media prefix and
	// returns the public URL of the stored object.
	Store(ctx context.Context, deliveryID string, filename string, content io.Reader) (string, error)
}
