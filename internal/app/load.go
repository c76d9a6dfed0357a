package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/blotterkit/internal/config"
	"github.com/vk/blotterkit/internal/ctxlog"
	"github.com/vk/blotterkit/internal/fsutil"
)

// loadRunFile loads path, a single run file or a directory of them, with the
// loader matching each file's extension and merges the results.
func (a *App) loadRunFile(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		return nil, errors.New("no run file given")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing run path %s: %w", path, err)
	}

	model := config.NewModel()
	if !info.IsDir() {
		loader := a.loaderFor(path)
		if loader == nil {
			return nil, fmt.Errorf("unsupported run file %s: no loader for extension %q", path, filepath.Ext(path))
		}
		loaded, err := loader.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		return loaded, nil
	}

	found := 0
	for _, loader := range a.loaders {
		files, err := fsutil.FindFilesByExtension(path, loader.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to walk run directory %s: %w", path, err)
		}
		if len(files) == 0 {
			continue
		}
		found += len(files)
		loaded, err := loader.Load(ctx, files...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(loaded); err != nil {
			return nil, fmt.Errorf("failed to merge run files in %s: %w", path, err)
		}
	}
	if found == 0 {
		return nil, fmt.Errorf("no run files found in %s", path)
	}
	logger.Debug("Run directory loaded.", "path", path, "files", found)
	return model, nil
}

func (a *App) loaderFor(path string) config.Loader {
	ext := filepath.Ext(path)
	for _, l := range a.loaders {
		if slices.Contains(l.Extensions(), ext) {
			return l
		}
	}
	return nil
}
