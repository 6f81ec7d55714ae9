package config

import (
	"context"

	"github.com/vk/framegrid/internal/document"
)

// Loader is the interface for a format-specific document loader.
type Loader interface {
	// Load reads the document from the given files or directories and
	// translates it into an immutable snapshot.
	Load(ctx context.Context, paths ...string) (*document.Snapshot, error)
}
