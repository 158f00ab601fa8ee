// Package watcher keeps the displayed catalog fresh by polling the
// backend and diffing snapshots structurally. Only a real change swaps
// the cache; a quiet poll leaves the view untouched.
package watcher

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lumenik/install-client/catalog"
	"github.com/lumenik/install-client/model"
)

type (
	// Backend is the slice of the gateway the watcher polls through.
	Backend interface {
		GamesByPlatform(ctx context.Context, platform string) (model.GameList, error)
	}

	// Watcher polls the displayed platform's catalog.
	Watcher struct {
		// Config
		backend  Backend
		cache    *catalog.Cache
		notifier model.Notifier
		pollDur  time.Duration // catalog refresh period
		// State
		mu       sync.Mutex
		platform string // current poll target
		//
		stopCh chan interface{}
	}
)

// String implements the stringer interface.
func (w *Watcher) String() string {
	return fmt.Sprintf("Watcher (%s)", w.Platform())
}

// NewWatcher creates a new Watcher object.
func NewWatcher(backend Backend, cache *catalog.Cache, notifier model.Notifier,
	platform string, pollDur time.Duration) (*Watcher, error) {

	if backend == nil {
		return nil, fmt.Errorf("%s: must be set", "backend")
	}
	if cache == nil {
		return nil, fmt.Errorf("%s: must be set", "cache")
	}
	if platform == "" {
		return nil, fmt.Errorf("%s: must be set", "platform")
	}
	if pollDur <= 0 {
		return nil, fmt.Errorf("%s: must be GT 0", "pollDur")
	}
	if notifier == nil {
		notifier = model.DiscardNotices
	}

	return &Watcher{
		backend:  backend,
		cache:    cache,
		notifier: notifier,
		pollDur:  pollDur,
		platform: platform,
	}, nil
}

// Platform returns the current poll target.
func (w *Watcher) Platform() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.platform
}

// SetPlatform re-aims the poll. The next tick fetches the new platform;
// selection state is not touched here.
func (w *Watcher) SetPlatform(platform string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.platform = platform
}

// Start starts the Watcher worker.
func (w *Watcher) Start() {
	if w.stopCh != nil {
		return
	}
	w.stopCh = make(chan interface{})

	monitor.Start()
	go w.worker()
}

// Stop stops the Watcher worker.
func (w *Watcher) Stop() {
	if w.stopCh == nil {
		return
	}

	close(w.stopCh)
	monitor.Stop()
}

// worker does the actual job.
func (w *Watcher) worker() {
	log.Printf("%s: start", w.String())
	log.Printf("%s: pollDur: %v", w.String(), w.pollDur)

	pollCh := time.Tick(w.pollDur)
	for {
		select {
		case <-pollCh:
			// Refresh the catalog snapshot
			if err := w.Poll(context.Background()); err != nil {
				log.Printf("%s: polling catalog: %v", w.String(), err)
			}
		case <-w.stopCh:
			// Stop the watcher
			log.Printf("%s: stop", w.String())
			return
		}
	}
}

// Poll fetches the target platform's catalog once and reconciles the
// cache. A snapshot identical by id/field comparison is dropped without
// touching the cache or emitting notices.
func (w *Watcher) Poll(ctx context.Context) error {
	platform := w.Platform()

	start := time.Now()
	next, err := w.backend.GamesByPlatform(ctx, platform)
	if err != nil {
		return fmt.Errorf("fetching %s catalog: %w", platform, err)
	}
	dur := time.Since(start)

	// SetPlatform raced the fetch; the result aims at the wrong target
	if w.Platform() != platform {
		return nil
	}

	// first fetch after a re-aim replaces the view silently; diffing
	// across platforms would report the whole old catalog as removed
	if w.cache.Platform() != platform {
		w.cache.Replace(platform, next)
		monitor.PollDone(0, dur)

		return nil
	}

	diff := model.DiffCatalogs(w.cache.Snapshot(), next)
	if diff.Empty() {
		monitor.PollDone(0, dur)
		return nil
	}

	w.cache.Replace(platform, next)
	w.notify(diff)
	monitor.PollDone(diff.Size(), dur)

	return nil
}

func (w *Watcher) notify(diff model.CatalogDiff) {
	for _, g := range diff.Added {
		w.notifier(model.NewNotice(model.SeverityInfo,
			fmt.Sprintf("Nuevo juego disponible: %s", g.Name)))
	}
	for _, g := range diff.Removed {
		w.notifier(model.NewNotice(model.SeverityWarning,
			fmt.Sprintf("Juego retirado del catálogo: %s", g.Name)))
	}
	for _, g := range diff.Flips {
		severity, state := model.SeverityInfo, "disponible"
		if !g.Available {
			severity, state = model.SeverityWarning, "agotado"
		}
		w.notifier(model.NewNotice(severity,
			fmt.Sprintf("%s ahora está %s", g.Name, state)))
	}
}
