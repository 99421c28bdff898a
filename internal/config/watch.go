package config

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
type FileWatcher struct {
	Paths    []string
	Interval time.Duration
	onChange func(string) // called with path that changed

	stopOnce  sync.Once
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtime cache, then polls in a goroutine.
func (w *FileWatcher) Start() {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
// A file that appears after priming counts as a change.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		w.lastMTime[p] = mt
		if prime {
			continue
		}
		if (!ok || mt.After(last)) && w.onChange != nil {
			w.onChange(p)
		}
	}
}

// WatchLoader reloads l whenever one of its files changes and hands the new
// Config to apply. Invalid configs are reported to onErr and not applied.
func WatchLoader(l *Loader, interval time.Duration, apply func(Config), onErr func(error)) *FileWatcher {
	return NewFileWatcher(l.Paths(), interval, func(string) {
		cfg, err := l.Load()
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		apply(cfg)
	})
}
