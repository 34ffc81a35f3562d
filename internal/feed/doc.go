// Package feed maintains the paginated, deduplicated list of books for
// one scope: the global feed or the signed-in user's own shelf.
//
// A Feed guarantees that no book ID appears twice in Items, whatever
// overlap the backend returns across page boundaries, and that at most
// one fetch is in flight at a time. Failed fetches leave prior state
// intact; retries are always user gestures, never automatic.
package feed
