package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// rebuildDebounce coalesces bursts of events (editor saves, git checkouts)
// into a single rebuild.
const rebuildDebounce = 200 * time.Millisecond

// watch runs rebuild after changes under source until ctx is canceled.
// Events under skip (the output directory when it sits inside the source
// tree) are ignored so a build does not trigger itself. New directories are
// added to the watch list as they appear.
func watch(ctx context.Context, source, skip string, debounce time.Duration, logger *slog.Logger, rebuild func(context.Context)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	source = absOrSelf(source)
	if skip != "" {
		skip = absOrSelf(skip)
	}

	if err := addDirsRecursive(w, source, skip); err != nil {
		return err
	}
	logger.Info("watching for changes", "root", source)

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher stopped")
			return nil

		case <-timerCh:
			rebuild(ctx)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			path := absOrSelf(ev.Name)
			if within(path, skip) {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, path, skip); addErr != nil {
						logger.Warn("watch new directory failed", "path", path, "error", addErr)
					}
				}
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}

			logger.Debug("change detected", "path", path, "op", ev.Op.String())
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", watchErr)
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher,
// except skip and everything below it.
func addDirsRecursive(w *fsnotify.Watcher, root, skip string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if within(path, skip) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}

// within reports whether path is dir or lies below it. An empty dir
// contains nothing.
func within(path, dir string) bool {
	return dir != "" && fileutil.IsPathUnderDir(path, dir)
}

// absOrSelf returns the absolute form of path, or path if that fails.
func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
