// Package reload keeps the in-memory catalog in sync with the content
// directory. Edits are picked up by an fsnotify watcher; a cron-driven sweep
// covers mounts where inotify events never arrive (NFS, some container
// volumes).
package reload

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorhill/cronexpr"

	"github.com/thetrustgroup/trustsite/internal/catalog"
	"github.com/thetrustgroup/trustsite/internal/sitesearch"
)

// Events arriving closer together than this collapse into one reload, so a
// multi-file save from an editor does not trigger three generations.
const debounce = 500 * time.Millisecond

const sweepInterval = time.Minute

// Reloader swaps fresh catalog generations into the library and rebuilds the
// search index. A failed load keeps the previous generation live.
type Reloader struct {
	Library *catalog.Library
	Index   *sitesearch.Index
	DataDir string
	// Cron is the fallback sweep schedule ("@hourly", "@daily" or a 5-field
	// expression). Empty disables the sweep.
	Cron string
	Stop chan struct{}

	logger  *log.Logger
	watcher *fsnotify.Watcher

	mu         sync.Mutex
	lastReload time.Time
}

// Start launches the watcher (unless watch is false) and the sweep loop.
func (r *Reloader) Start(watch bool) error {
	if r.logger == nil {
		r.logger = log.New(log.Writer(), "[RELOAD] ", log.LstdFlags)
	}
	r.mu.Lock()
	r.lastReload = time.Now()
	r.mu.Unlock()

	if watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		if err := w.Add(r.DataDir); err != nil {
			_ = w.Close()
			return err
		}
		r.watcher = w
		go r.handleEvents()
	}
	if r.Cron != "" {
		go r.sweepLoop()
	}
	return nil
}

// Close stops the watcher. The sweep loop exits via the Stop channel.
func (r *Reloader) Close() error {
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

func (r *Reloader) handleEvents() {
	var timer *time.Timer
	for {
		select {
		case <-r.Stop:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isContentEvent(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, r.reload)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.logger.Printf("watch error: %v", err)
		}
	}
}

func isContentEvent(event fsnotify.Event) bool {
	if filepath.Ext(event.Name) != ".json" {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (r *Reloader) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.Stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			last := r.lastReload
			r.mu.Unlock()
			if isDue(r.Cron, last) {
				r.reload()
			}
		}
	}
}

func (r *Reloader) reload() {
	c, err := catalog.Load(r.DataDir)
	if err != nil {
		r.logger.Printf("reload skipped, keeping previous generation: %v", err)
		return
	}
	r.Library.Replace(c)
	if r.Index != nil {
		if err := r.Index.Rebuild(c); err != nil {
			r.logger.Printf("search index rebuild failed: %v", err)
		}
	}
	r.mu.Lock()
	r.lastReload = time.Now()
	r.mu.Unlock()
	r.logger.Printf("content reloaded: %d posts, %d jobs, %d engagements", len(c.Posts), len(c.Jobs), len(c.Work))
}

// isDue determines whether the sweep schedule has elapsed since last.
// Supports "@daily", "@hourly" and standard 5-field cron expressions;
// an unparseable expression falls back to @daily.
func isDue(cronSpec string, last time.Time) bool {
	now := time.Now()
	switch cronSpec {
	case "@daily":
		return now.Sub(last) >= 24*time.Hour
	case "@hourly":
		return now.Sub(last) >= time.Hour
	default:
		expr, err := cronexpr.Parse(cronSpec)
		if err != nil {
			return now.Sub(last) >= 24*time.Hour
		}
		next := expr.Next(last)
		return !next.After(now)
	}
}
