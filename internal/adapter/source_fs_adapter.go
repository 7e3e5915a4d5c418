// Package adapter contains the infrastructure the code action and namespace
// logic relies on: document snapshots, file access, edit sinks, formatting
// and project descriptor readers.
package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	m "seesharp.dev/pkg/seesharp/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations so the domain
// layer can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// WriteFile replaces the contents of path, keeping perm for new files.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can check existence or
	// distinguish between files and directories when necessary.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// FindUp walks from startDir towards the filesystem root and returns the
	// first file whose base name matches the glob pattern. Within one
	// directory, matches are taken in lexical order. An empty path and a nil
	// error mean nothing matched.
	FindUp(ctx context.Context, startDir m.Path, pattern string) (m.Path, error)
}

// LocalSourceFSAdapter implements SourceFSAdapter over the os package.
type LocalSourceFSAdapter struct {
	logger *slog.Logger
}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter(logger *slog.Logger) *LocalSourceFSAdapter {
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalSourceFSAdapter{logger: logger}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path is chosen by the user invoking the tool
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	a.logger.Debug("writing file", "path", path, "bytes", len(content))

	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// FindUp searches for a file matching pattern walking up the directory tree.
func (a *LocalSourceFSAdapter) FindUp(ctx context.Context, startDir m.Path, pattern string) (m.Path, error) {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	dir, err := filepath.Abs(string(startDir))
	if err != nil {
		return "", err
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		entries, err := os.ReadDir(dir)
		if err != nil && !os.IsNotExist(err) {
			a.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !matcher.Match(entry.Name()) {
				continue
			}

			found := filepath.Join(dir, entry.Name())
			a.logger.Debug("found ancestor file", "pattern", pattern, "path", found)

			return m.Path(found), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}

		dir = parent
	}
}
