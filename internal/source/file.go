package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/theirongolddev/budgetring/internal/model"
)

// FileSource reads a budget document from disk.
type FileSource struct {
	path string
}

// NewFileSource returns a source for path. A leading "~/" expands to the
// home directory.
func NewFileSource(path string) *FileSource {
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return &FileSource{path: path}
}

// Path returns the file being read.
func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) String() string {
	return s.path
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]model.CategoryDatum, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	if info.Size() > maxBodySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetch, s.path, maxBodySize)
	}
	body, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return Decode(body)
}

// Watch signals on the returned channel whenever the file is written,
// created or renamed into place. Bursts are coalesced by debounce. The
// channel closes when ctx is done.
func (s *FileSource) Watch(ctx context.Context, debounce time.Duration) (<-chan struct{}, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("source: creating watcher: %w", err)
	}
	// Editors often replace files, so the parent directory is watched.
	dir := filepath.Dir(s.path)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("source: watching %s: %w", dir, err)
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	out := make(chan struct{}, 1)
	go s.watchLoop(ctx, fw, debounce, out)
	return out, nil
}

func (s *FileSource) watchLoop(ctx context.Context, fw *fsnotify.Watcher, debounce time.Duration, out chan<- struct{}) {
	defer close(out)
	defer func() { _ = fw.Close() }()

	target := filepath.Clean(s.path)
	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < debounce {
				continue
			}
			pending = time.Time{}
			select {
			case out <- struct{}{}:
			default: // a signal is already queued
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			slog.Warn("file watch error", "path", s.path, "err", err)
		}
	}
}
