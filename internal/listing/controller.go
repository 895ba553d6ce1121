// Package listing contains the listing controller: it owns the in-memory
// collection fetched from the backend, the active filter and page state, and
// derives the visible page from them.
//
// Load phase graph:
//
//	IDLE ──► LOADING ──► READY
//	             │
//	             └──► ERROR
//
// READY is sticky: a failed refresh keeps the last good collection and stays
// READY; ERROR is reached only when no collection could be obtained at all.
package listing

import (
	"context"
	"fmt"
	"log"
	"sync"

	"jobboard/listing-service/internal/filter"
	"jobboard/listing-service/internal/pagination"
)

// Phase is the load phase of a listing.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseReady   Phase = "READY"
	PhaseError   Phase = "ERROR"
)

// Source fetches the full collection for a listing.
type Source[T any] func(ctx context.Context) ([]T, error)

// Predicate decides whether an entity matches the active filter state.
// A nil predicate means the listing is never filtered.
type Predicate[T any] func(*T, filter.State) bool

// View is a snapshot of everything a listing renders: phase, the current
// page of the filtered collection, and the counts behind it. Views are
// derived on demand and never stored.
type View[T any] struct {
	Phase     Phase
	Err       string
	Filters   filter.State
	Page      pagination.Page[T]
	RawTotal  int // size of the unfiltered collection
	LastError string
}

// Controller orchestrates fetch → filter → paginate for one collection.
// All state is replaced wholesale under a single mutex; filtering and
// pagination are pure derivations over it.
type Controller[T any] struct {
	name     string
	source   Source[T]
	fallback Source[T]
	match    Predicate[T]
	pageSize int

	mu      sync.Mutex
	phase   Phase
	loadErr string // message of the failure that caused ERROR
	lastErr string // most recent refresh failure, phase unaffected
	items   []T
	filters filter.State
	page    int
	gen     uint64

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New returns an idle controller for the named collection. match may be nil
// for listings that are paginated but never filtered.
func New[T any](name string, pageSize int, source Source[T], match Predicate[T]) *Controller[T] {
	return &Controller[T]{
		name:     name,
		source:   source,
		match:    match,
		pageSize: pageSize,
		phase:    PhaseIdle,
		filters:  filter.Clear(),
		page:     1,
		subs:     make(map[int]func()),
	}
}

// UseFallback registers a secondary source consulted only when the primary
// source fails and no collection has been loaded yet (warm start from cache).
func (c *Controller[T]) UseFallback(src Source[T]) {
	c.fallback = src
}

// ─── Loading ─────────────────────────────────────────────────────────────────

// Load fetches the collection and replaces the previous one wholesale,
// resetting the current page to 1.
//
// Each call increments the load generation; a fetch whose generation is no
// longer current when it completes is discarded, so a stale in-flight fetch
// can never overwrite newer state.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.phase == PhaseIdle || c.phase == PhaseError {
		c.phase = PhaseLoading
	}
	c.mu.Unlock()

	items, err := c.source(ctx)
	if err != nil && c.fallback != nil && !c.hasItems() {
		log.Printf("[listing] %s: fetch failed (%v) — trying fallback source", c.name, err)
		var ferr error
		items, ferr = c.fallback(ctx)
		if ferr != nil {
			log.Printf("[listing] %s: fallback failed: %v", c.name, ferr)
		} else {
			err = nil
		}
	}

	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		log.Printf("[listing] %s: discarding stale fetch result (generation %d < %d)", c.name, gen, c.gen)
		return nil
	}

	if err != nil {
		if len(c.items) > 0 {
			// Keep serving the last good collection.
			c.lastErr = err.Error()
			c.mu.Unlock()
			log.Printf("[listing] %s: refresh failed: %v — keeping previous collection", c.name, err)
			return fmt.Errorf("refresh %s: %w", c.name, err)
		}
		c.phase = PhaseError
		c.loadErr = err.Error()
		c.mu.Unlock()
		c.notify()
		return fmt.Errorf("load %s: %w", c.name, err)
	}

	c.items = items
	c.phase = PhaseReady
	c.loadErr = ""
	c.lastErr = ""
	c.page = 1
	c.mu.Unlock()

	log.Printf("[listing] %s: loaded %d item(s)", c.name, len(items))
	c.notify()
	return nil
}

func (c *Controller[T]) hasItems() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) > 0
}

// ─── Filter and page state ───────────────────────────────────────────────────

// SetFilterValue adds or removes one selection in the given category and
// resets the current page to 1.
func (c *Controller[T]) SetFilterValue(cat filter.Category, value string, included bool) {
	c.mu.Lock()
	c.filters = c.filters.SetValue(cat, value, included)
	c.page = 1
	c.mu.Unlock()
	c.notify()
}

// ReplaceFilters swaps in a whole new filter state (used when applying a
// saved preset) and resets the current page to 1.
func (c *Controller[T]) ReplaceFilters(s filter.State) {
	c.mu.Lock()
	c.filters = s
	c.page = 1
	c.mu.Unlock()
	c.notify()
}

// ClearFilters empties every category and resets the current page to 1.
func (c *Controller[T]) ClearFilters() {
	c.ReplaceFilters(filter.Clear())
}

// SetPage moves to the given 1-based page. Pages outside [1, totalPages] for
// the current filtered collection are rejected.
func (c *Controller[T]) SetPage(page int) error {
	c.mu.Lock()
	total := pagination.TotalPages(len(c.filtered()), c.pageSize)
	if page < 1 || page > total {
		c.mu.Unlock()
		return fmt.Errorf("page %d out of range [1, %d]", page, total)
	}
	c.page = page
	c.mu.Unlock()
	c.notify()
	return nil
}

// ─── Derivation ──────────────────────────────────────────────────────────────

// View derives the current visible page from the raw collection, the filter
// state and the page state. It recomputes the filtered collection on every
// call; nothing derived is cached.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filtered()
	return View[T]{
		Phase:     c.phase,
		Err:       c.loadErr,
		LastError: c.lastErr,
		Filters:   c.filters,
		Page:      pagination.Paginate(filtered, c.page, c.pageSize),
		RawTotal:  len(c.items),
	}
}

// Items returns a copy of the whole unfiltered collection.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

// filtered applies the predicate to the raw collection, preserving order.
// Callers must hold c.mu.
func (c *Controller[T]) filtered() []T {
	if c.match == nil || c.filters.Empty() {
		return c.items
	}
	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if c.match(&c.items[i], c.filters) {
			out = append(out, c.items[i])
		}
	}
	return out
}

// ─── Invalidation subscribers ────────────────────────────────────────────────

// Subscribe registers fn to run after every state change (load completion,
// filter mutation, page change). It returns an unsubscribe func. Callbacks
// run synchronously on the mutating goroutine and must not call back into
// the controller's mutating methods.
func (c *Controller[T]) Subscribe(fn func()) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller[T]) notify() {
	c.subMu.Lock()
	fns := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
