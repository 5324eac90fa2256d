package shader

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/planetview/internal/logger"
)

// Watcher collects filesystem notifications for shader sources.
// Directories are watched rather than files so editors that save by
// rename-and-replace keep being observed.
type Watcher struct {
	fs *fsnotify.Watcher
}

// NewWatcher watches the directories containing the given paths.
func NewWatcher(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}

	seen := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(filepath.Clean(p))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	return &Watcher{fs: fw}, nil
}

// Drain returns every path touched since the last call. It never blocks.
func (w *Watcher) Drain() map[string]bool {
	touched := make(map[string]bool)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return touched
			}
			touched[filepath.Clean(ev.Name)] = true
		case err, ok := <-w.fs.Errors:
			if !ok {
				return touched
			}
			logger.Warn("shader watcher error", zap.Error(err))
		default:
			return touched
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
