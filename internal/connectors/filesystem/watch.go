package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/lineage-cli/internal/core/ports/driven"
	"github.com/custodia-labs/lineage-cli/internal/logger"
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("connector closed")

// Watch reports changes to files directly inside dirs until ctx is done.
// Directories that do not exist are skipped; at least one must exist.
func (c *Connector) Watch(ctx context.Context, dirs ...string) (<-chan driven.ChangeEvent, <-chan error, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, nil, ErrClosed
	}

	if len(dirs) == 0 {
		dirs = []string{c.rootPath}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}

	watched := 0
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Debug("Not watching missing directory %s", dir)
				continue
			}
			w.Close()
			return nil, nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched++
		logger.Debug("Watching %s", dir)
	}
	if watched == 0 {
		w.Close()
		return nil, nil, fmt.Errorf("watch: none of %v exist: %w", dirs, os.ErrNotExist)
	}

	c.watchers = append(c.watchers, w)

	events := make(chan driven.ChangeEvent)
	errs := make(chan error)
	go func() {
		defer close(events)
		defer close(errs)
		defer w.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				change := handleFsEvent(ev)
				if change == nil {
					continue
				}
				select {
				case events <- *change:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, errs, nil
}

// handleFsEvent converts an fsnotify event into a change event.
// Hidden files, directories and attribute-only changes are ignored.
func handleFsEvent(ev fsnotify.Event) *driven.ChangeEvent {
	if isHidden(ev.Name) {
		return nil
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return nil
	}
	if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			return nil
		}
	}
	return &driven.ChangeEvent{Path: ev.Name}
}
