package typegen

import (
	"context"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/extforge/cli/internal/fsutil"
	"github.com/extforge/cli/internal/output"
)

// WriteResult is the outcome of persisting one file.
type WriteResult struct {
	Path   string             `json:"path" yaml:"path"`
	Status fsutil.WriteStatus `json:"status" yaml:"status"`
}

// Writer persists resolved files concurrently, skipping files whose content
// is unchanged.
type Writer struct {
	// Limit caps concurrent writes. Zero means no limit.
	Limit int
}

// Write persists files and returns one result per file, in input order. The
// first failure cancels the remaining writes and is returned.
func (w *Writer) Write(ctx context.Context, files []ResolvedFile) ([]WriteResult, error) {
	results := make([]WriteResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if w.Limit > 0 {
		g.SetLimit(w.Limit)
	}

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fsutil.EnsureDir(filepath.Dir(f.Path)); err != nil {
				return err
			}

			status, err := fsutil.WriteFileIfDifferent(f.Path, []byte(f.Text))
			if err != nil {
				return err
			}

			output.Debug("wrote file", "path", f.Path, "status", status)
			results[i] = WriteResult{Path: f.Path, Status: status}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
