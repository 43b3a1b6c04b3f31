// Package watcher watches the script directory and signals, debounced, when a
// script file is written, created, removed or renamed.
package watcher

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/pagedeck/internal/log"
)

// Watcher monitors a directory for script file changes.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	dir        string
	extensions []string
	debounce   time.Duration
	onChange   chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
}

// Config holds watcher configuration options.
type Config struct {
	Dir         string
	Extensions  []string // matched case-insensitively, with the leading dot
	DebounceDur time.Duration
}

// DefaultConfig watches YAML files in dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		Extensions:  []string{".yaml", ".yml"},
		DebounceDur: 250 * time.Millisecond,
	}
}

// New creates a new directory watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	exts := make([]string, len(cfg.Extensions))
	for i, e := range cfg.Extensions {
		exts[i] = strings.ToLower(e)
	}

	return &Watcher{
		fsWatcher:  fsw,
		dir:        cfg.Dir,
		extensions: exts,
		debounce:   cfg.DebounceDur,
		onChange:   make(chan struct{}, 1),
		done:       make(chan struct{}),
	}, nil
}

// Start begins watching the directory.
// Returns a channel that receives a signal after a burst of changes settles.
func (w *Watcher) Start() (<-chan struct{}, error) {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Debug(log.CatWatcher, "Watching directory", "dir", w.dir, "debounce", w.debounce)

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources. Safe to call twice.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			log.Debug(log.CatWatcher, "Script file changed", "file", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				// Drop if a signal is already waiting
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err, "dir", w.dir)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether event touches a watched file type.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return slices.Contains(w.extensions, strings.ToLower(filepath.Ext(event.Name)))
}
