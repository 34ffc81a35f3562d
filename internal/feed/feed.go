package feed

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"bookworm/internal/api"
)

// DefaultLimit is the fixed page size requested from the backend.
const DefaultLimit = 2

// defaultMinRefresh is how long the refreshing flag stays up after a
// refresh fetch, so a pull-to-refresh indicator never flashes
// imperceptibly. UX smoothing only; correctness does not depend on it.
const defaultMinRefresh = 800 * time.Millisecond

// ErrBusy is returned by Load when another fetch is already in flight.
var ErrBusy = errors.New("feed: load already in flight")

// Mode selects how a fetched page is folded into the list.
type Mode int

const (
	// ModeInitial replaces the list with the fetched page (first load).
	ModeInitial Mode = iota + 1
	// ModeRefresh replaces the list and holds the refreshing flag for
	// the minimum visible duration.
	ModeRefresh
	// ModeAppend merges the fetched page after the existing items,
	// dropping any book whose ID was already seen.
	ModeAppend
)

func (m Mode) String() string {
	switch m {
	case ModeInitial:
		return "initial"
	case ModeRefresh:
		return "refresh"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Source fetches one page of books for a scope.
// totalPages is the backend-reported page count for the query.
type Source interface {
	Page(ctx context.Context, page, limit int) (books []api.Book, totalPages int, err error)
}

// Feed is the synchronizer for one scope. Construct with New; one Feed
// per mounted screen/scope.
type Feed struct {
	source Source
	limit  int

	// minRefresh and sleep exist as fields so tests can observe the
	// refresh floor without waiting it out.
	minRefresh time.Duration
	sleep      func(time.Duration)

	mu         sync.Mutex
	items      []api.Book
	page       int
	hasMore    bool
	inFlight   bool
	loading    bool
	refreshing bool
}

// New creates an empty Feed over source. A limit <= 0 falls back to
// DefaultLimit.
func New(source Source, limit int) *Feed {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Feed{
		source:     source,
		limit:      limit,
		minRefresh: defaultMinRefresh,
		sleep:      time.Sleep,
		hasMore:    true,
	}
}

// Load fetches one page and folds it into the list according to mode.
//
// On success: initial/refresh replace the items wholesale, append merges
// with first-seen-order dedup; page records the loaded page number and
// hasMore becomes page < totalPages. On failure: items, page and hasMore
// are all left untouched, the error is logged, and the error is returned
// as a value for the caller's benefit.
//
// At most one Load runs at a time; a second concurrent call returns
// ErrBusy without fetching.
func (f *Feed) Load(ctx context.Context, page int, mode Mode) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrBusy
	}
	f.inFlight = true
	switch mode {
	case ModeInitial:
		f.loading = true
	case ModeRefresh:
		f.refreshing = true
	}
	f.mu.Unlock()

	books, totalPages, err := f.source.Page(ctx, page, f.limit)
	if err == nil {
		f.mu.Lock()
		if mode == ModeAppend {
			f.items = mergeUnique(f.items, books)
		} else {
			f.items = mergeUnique(nil, books)
		}
		f.page = page
		f.hasMore = page < totalPages
		f.mu.Unlock()
	} else {
		slog.Error("feed: load failed", "page", page, "mode", mode.String(), "error", err)
	}

	// Keep the refresh indicator visible long enough to register.
	if mode == ModeRefresh {
		f.sleep(f.minRefresh)
	}

	f.mu.Lock()
	switch mode {
	case ModeInitial:
		f.loading = false
	case ModeRefresh:
		f.refreshing = false
	}
	f.inFlight = false
	f.mu.Unlock()
	return err
}

// Refresh re-fetches page 1 and replaces the list.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.Load(ctx, 1, ModeRefresh)
}

// LoadMore fetches the next page if one is known to exist and no fetch
// is outstanding. Otherwise it is a no-op.
//
// A failed LoadMore does not clear hasMore: a transient failure should
// not permanently end pagination, so the next gesture retries the same
// page.
func (f *Feed) LoadMore(ctx context.Context) error {
	f.mu.Lock()
	if !f.hasMore || f.inFlight || f.loading || f.refreshing {
		f.mu.Unlock()
		return nil
	}
	next := f.page + 1
	f.mu.Unlock()

	err := f.Load(ctx, next, ModeAppend)
	if errors.Is(err, ErrBusy) {
		// Lost the race to another fetch; same outcome as the guard.
		return nil
	}
	return err
}

// RemoveLocal drops the book with the given ID from the list, leaving
// the relative order of the rest unchanged. Used after a successful
// remote delete so the list reflects server state without a refetch.
func (f *Feed) RemoveLocal(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.items {
		if b.ID == id {
			f.items = slices.Delete(f.items, i, i+1)
			return
		}
	}
}

// Items returns a copy of the current list in display order.
func (f *Feed) Items() []api.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

// Page returns the last successfully loaded page number (0 before any
// load succeeds).
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// HasMore reports whether a further page is known to exist.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// IsLoading reports whether an initial load is outstanding.
func (f *Feed) IsLoading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// IsRefreshing reports whether a refresh is outstanding (including its
// minimum visible duration).
func (f *Feed) IsRefreshing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshing
}

// mergeUnique concatenates existing and fetched, keeping only the first
// occurrence of each ID. Single linear pass; order is first-seen order.
func mergeUnique(existing, fetched []api.Book) []api.Book {
	seen := make(map[string]struct{}, len(existing)+len(fetched))
	out := make([]api.Book, 0, len(existing)+len(fetched))
	for _, list := range [2][]api.Book{existing, fetched} {
		for _, b := range list {
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			out = append(out, b)
		}
	}
	return out
}
