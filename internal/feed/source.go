package feed

import (
	"context"

	"bookworm/internal/api"
)

// TokenSource supplies the current bearer token. Implemented by the
// session store; the feed's only dependency on authentication state.
type TokenSource interface {
	Token() string
}

// GlobalSource pages through the community-wide listing endpoint.
type GlobalSource struct {
	Client *api.Client
	Tokens TokenSource
}

// Page implements Source.
func (s *GlobalSource) Page(ctx context.Context, page, limit int) ([]api.Book, int, error) {
	resp, err := s.Client.ListBooks(ctx, s.Tokens.Token(), page, limit)
	if err != nil {
		return nil, 0, err
	}
	return resp.Books, resp.TotalPages, nil
}

// ShelfSource adapts the un-paginated own-books endpoint to the Source
// contract: everything arrives as page 1 and totalPages is always 1, so
// the Feed reports hasMore=false after the first load.
type ShelfSource struct {
	Client *api.Client
	Tokens TokenSource
}

// Page implements Source. The page and limit arguments are ignored by
// the backend for this scope.
func (s *ShelfSource) Page(ctx context.Context, page, limit int) ([]api.Book, int, error) {
	books, err := s.Client.ListMine(ctx, s.Tokens.Token())
	if err != nil {
		return nil, 0, err
	}
	return books, 1, nil
}
