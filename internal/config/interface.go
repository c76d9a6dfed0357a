package config

import "context"

// Loader is the interface for a format-specific run file loader.
type Loader interface {
	// Load reads the given files and translates them into a single Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string
}
