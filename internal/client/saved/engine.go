// Package saved implements the dual-mode saved-listing engine. A saved mark
// is a boolean association between the visitor and a listing; exactly one
// backend is authoritative at a time, picked per operation from the
// individual-user domain's authentication flag: server records when
// authenticated, local storage flags when anonymous. Dealers and admins do
// not participate.
package saved

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/haulbay/haulbay-cli/internal/client/api"
	"github.com/haulbay/haulbay-cli/internal/client/storage"
	"github.com/haulbay/haulbay-cli/internal/logging"
)

// storageKeyPrefix namespaces the anonymous per-listing flags.
const storageKeyPrefix = "saved-"

// StorageKey derives the deterministic local-storage key for a listing,
// e.g. "saved-truck-42".
func StorageKey(ref api.ListingRef) string {
	return fmt.Sprintf("%s%s-%d", storageKeyPrefix, ref.Type, ref.ID)
}

// parseStorageKey is the inverse of StorageKey. ok is false for keys that
// are not well-formed saved flags.
func parseStorageKey(key string) (api.ListingRef, bool) {
	rest, found := strings.CutPrefix(key, storageKeyPrefix)
	if !found {
		return api.ListingRef{}, false
	}
	typ, idStr, found := strings.Cut(rest, "-")
	if !found {
		return api.ListingRef{}, false
	}
	if typ != string(api.ListingTruck) && typ != string(api.ListingTrailer) {
		return api.ListingRef{}, false
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return api.ListingRef{}, false
	}
	return api.ListingRef{Type: api.ListingType(typ), ID: id}, true
}

// AuthFunc reports the individual-user domain's current authentication flag.
// The engine re-evaluates it on every operation, so backend selection tracks
// auth changes with no manual invalidation.
type AuthFunc func() bool

// Engine owns backend selection and the in-memory cache of the server-side
// saved collection. The cache is invalidated, never locked, by confirmed
// toggles.
type Engine struct {
	api    api.SavedListingsAPI
	store  storage.Store
	auth   AuthFunc
	notify Notifier
	log    logging.Logger

	mu         sync.Mutex
	collection []api.SavedListing
	cacheValid bool
}

func NewEngine(client api.SavedListingsAPI, store storage.Store, auth AuthFunc, notify Notifier, log logging.Logger) *Engine {
	if notify == nil {
		notify = NopNotifier{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{
		api:    client,
		store:  store,
		auth:   auth,
		notify: notify,
		log:    log.With("component", "saved"),
	}
}

// Mark hydrates the saved state for one listing. Authenticated visitors get
// one check-endpoint call; anonymous visitors get a synchronous local read
// with no network traffic. Hydration failures resolve to unsaved and are
// logged, not surfaced.
func (e *Engine) Mark(ctx context.Context, ref api.ListingRef, title string) *Mark {
	m := &Mark{engine: e, ref: ref, title: title}

	if e.auth() {
		saved, err := e.api.CheckSaved(ctx, ref)
		if err != nil {
			e.log.Warn(ctx, "saved check failed, presenting unsaved", "listing", ref.String(), "error", err)
		} else {
			m.saved = saved
		}
		e.noteLocalFlagShadowed(ctx, ref)
		return m
	}

	flag, err := e.store.Get(ctx, StorageKey(ref))
	if err != nil {
		e.log.Warn(ctx, "local saved flag unreadable", "listing", ref.String(), "error", err)
	}
	m.saved = flag == "true"
	return m
}

// noteLocalFlagShadowed keeps the no-migration policy visible: local flags
// written while anonymous are ignored, not imported, once authenticated.
func (e *Engine) noteLocalFlagShadowed(ctx context.Context, ref api.ListingRef) {
	if flag, err := e.store.Get(ctx, StorageKey(ref)); err == nil && flag == "true" {
		e.log.Debug(ctx, "local saved flag shadowed by server backend", "listing", ref.String())
	}
}

// List returns the visitor's saved collection: the server collection
// (cached until invalidated) when authenticated, or the locally flagged
// listings when anonymous.
func (e *Engine) List(ctx context.Context) ([]api.SavedListing, error) {
	if !e.auth() {
		return e.listLocal(ctx)
	}

	e.mu.Lock()
	if e.cacheValid {
		cached := make([]api.SavedListing, len(e.collection))
		copy(cached, e.collection)
		e.mu.Unlock()
		return cached, nil
	}
	e.mu.Unlock()

	listings, err := e.api.ListSaved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved listings: %w", err)
	}

	e.mu.Lock()
	e.collection = listings
	e.cacheValid = true
	e.mu.Unlock()
	return listings, nil
}

func (e *Engine) listLocal(ctx context.Context) ([]api.SavedListing, error) {
	keys, err := e.store.Keys(ctx, storageKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan local saved flags: %w", err)
	}

	var listings []api.SavedListing
	for _, key := range keys {
		ref, ok := parseStorageKey(key)
		if !ok {
			continue
		}
		entry := api.SavedListing{ListingType: ref.Type}
		if ref.Type == api.ListingTrailer {
			entry.TrailerID = ref.ID
		} else {
			entry.TruckID = ref.ID
		}
		listings = append(listings, entry)
	}
	return listings, nil
}

// Invalidate drops the cached server collection so the next List refetches.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.collection = nil
	e.cacheValid = false
	e.mu.Unlock()
}

// Mark is the per-listing saved state handle.
type Mark struct {
	engine *Engine
	ref    api.ListingRef
	title  string

	mu      sync.Mutex
	saved   bool
	pending bool
}

func (m *Mark) Ref() api.ListingRef { return m.ref }

// Saved reports the currently displayed saved state.
func (m *Mark) Saved() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// Pending reports whether an authenticated toggle is awaiting confirmation.
func (m *Mark) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Toggle flips the saved state through whichever backend is authoritative
// right now. The authenticated path is pessimistic: the visible state only
// changes on server confirmation, and a failure leaves it at its pre-toggle
// value. The anonymous path is optimistic by construction and cannot fail.
func (m *Mark) Toggle(ctx context.Context) error {
	e := m.engine

	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return nil
	}
	m.pending = true
	target := !m.saved
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}()

	if e.auth() {
		return m.toggleServer(ctx, target)
	}
	m.toggleLocal(ctx, target)
	return nil
}

func (m *Mark) toggleServer(ctx context.Context, target bool) error {
	e := m.engine

	var err error
	if target {
		err = e.api.SaveListing(ctx, m.ref)
	} else {
		err = e.api.UnsaveListing(ctx, m.ref)
	}
	if err != nil {
		e.log.Warn(ctx, "saved toggle rejected", "listing", m.ref.String(), "error", err)
		e.notify.NotifyError(ctx, "Error", "Failed to update saved status")
		return err
	}

	m.mu.Lock()
	m.saved = target
	m.mu.Unlock()

	e.Invalidate()
	if target {
		e.notify.Notify(ctx, "Saved", fmt.Sprintf("%s saved to your list", m.title))
	} else {
		e.notify.Notify(ctx, "Removed", fmt.Sprintf("%s removed from saved list", m.title))
	}
	return nil
}

func (m *Mark) toggleLocal(ctx context.Context, target bool) {
	e := m.engine
	key := StorageKey(m.ref)

	m.mu.Lock()
	m.saved = target
	m.mu.Unlock()

	if target {
		if err := e.store.Set(ctx, key, "true"); err != nil {
			e.log.Warn(ctx, "failed to persist local saved flag", "key", key, "error", err)
		}
		e.notify.Notify(ctx, "Saved Locally",
			fmt.Sprintf("%s saved to this device. Sign in to sync across devices.", m.title))
		return
	}

	if err := e.store.Delete(ctx, key); err != nil {
		e.log.Warn(ctx, "failed to remove local saved flag", "key", key, "error", err)
	}
	e.notify.Notify(ctx, "Removed", fmt.Sprintf("%s removed from your local saves", m.title))
}
