// Package watcher re-triggers detection runs when a watched suspicious path
// appears on disk, instead of waiting for the next monitor interval.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Handler is invoked when a watched path appears.
type Handler func(ctx context.Context, path string)

// PathWatcher observes the parent directories of a fixed path set. The paths
// themselves usually do not exist (their existence is the compromise signal),
// so the watch is placed on the closest existing parent and events are
// filtered back down to the paths of interest.
type PathWatcher struct {
	watcher  *fsnotify.Watcher
	watched  map[string]struct{}
	handler  Handler
	logger   *logrus.Logger
	debounce time.Duration
	stopChan chan struct{}
}

func New(paths []string, handler Handler, logger *logrus.Logger) (*PathWatcher, error) {
	if handler == nil {
		return nil, fmt.Errorf("watch handler must not be nil")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	watched := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		watched[filepath.Clean(p)] = struct{}{}
		dirs[filepath.Dir(filepath.Clean(p))] = struct{}{}
	}

	added := 0
	for dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			// The parent does not exist on this host either; nothing to
			// watch until it does.
			logger.WithField("dir", dir).Debug("watch parent absent, skipping")
			continue
		}
		if err := w.Add(dir); err != nil {
			logger.WithError(err).WithField("dir", dir).Warn("failed to watch directory")
			continue
		}
		added++
	}
	if added == 0 {
		w.Close()
		return nil, fmt.Errorf("no watchable parent directories among %d paths", len(paths))
	}

	pw := &PathWatcher{
		watcher:  w,
		watched:  watched,
		handler:  handler,
		logger:   logger,
		debounce: 2 * time.Second,
		stopChan: make(chan struct{}),
	}

	logger.WithFields(logrus.Fields{
		"paths": len(watched),
		"dirs":  added,
	}).Info("Path watcher created")

	return pw, nil
}

// Start launches the event loop. It returns immediately; the loop runs until
// ctx is done or Stop is called.
func (pw *PathWatcher) Start(ctx context.Context) {
	go pw.eventLoop(ctx)
}

func (pw *PathWatcher) eventLoop(ctx context.Context) {
	debounceTimer := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			pw.logger.Info("Path watcher context done")
			return
		case <-pw.stopChan:
			pw.logger.Info("Path watcher stopped")
			return
		case event, ok := <-pw.watcher.Events:
			if !ok {
				pw.logger.Warn("Watcher events channel closed")
				return
			}

			if event.Op&fsnotify.Create != fsnotify.Create &&
				event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}

			name := filepath.Clean(event.Name)
			if _, interested := pw.watched[name]; !interested {
				continue
			}

			pw.logger.WithFields(logrus.Fields{
				"event": event.Op.String(),
				"path":  name,
			}).Debug("Watched path appeared")

			// Debounce: the same path appearing repeatedly in a short
			// window triggers one run.
			if timer, exists := debounceTimer[name]; exists {
				timer.Stop()
			}
			debounceTimer[name] = time.AfterFunc(pw.debounce, func() {
				pw.handler(ctx, name)
			})

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				pw.logger.Warn("Watcher errors channel closed")
				return
			}
			pw.logger.WithError(err).Error("Watcher error")
		}
	}
}

// SetDebounce overrides the trigger debounce window. Must be called before
// Start.
func (pw *PathWatcher) SetDebounce(d time.Duration) {
	pw.debounce = d
}

func (pw *PathWatcher) Stop() error {
	close(pw.stopChan)
	return pw.watcher.Close()
}
