// Package diskio provides the default filesystem-read collaborator
// consumed by cache.Cache (spec.md §6's "Filesystem reader" contract).
package diskio

import (
	"context"
	"fmt"
	"os"
)

// Reader reads the full contents of path. It checks ctx before doing any
// work so a context that has already ended when Reader is called never
// pays for the read, but (matching spec.md §5's "no
// cancellation of in-flight decodes" non-goal) it does not interrupt a
// read already underway.
func Reader(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
