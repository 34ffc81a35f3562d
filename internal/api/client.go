// Package api is the typed client for the remote BookWorm HTTP API.
//
// The API owns all persistence, pagination and authorization; this client
// only shapes requests and decodes responses. Authorized endpoints take the
// bearer token explicitly so the caller (the session store) stays the single
// source of truth for credentials.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// genericFailure is the fallback message when a rejection carries no body.
const genericFailure = "Something went wrong"

// Client talks to one BookWorm backend.
//
// HTTPClient and ClientID may be set after New and before first use
// (e.g. to configure a timeout or attach the persistent install ID).
type Client struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// HTTPClient performs the requests. Defaults to a client with no
	// timeout; the transport's defaults govern worst-case latency.
	HTTPClient *http.Client

	// ClientID, when non-empty, is sent as the X-Client-ID header on
	// every request so the backend can correlate one install's traffic.
	ClientID string
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

// Register creates a new account and returns the signed-in identity.
func (c *Client) Register(ctx context.Context, params RegisterParams) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges an email/password pair for the signed-in identity.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListBooks fetches one page of the global feed.
func (c *Client) ListBooks(ctx context.Context, token string, page, limit int) (*BookPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	var resp BookPage
	if err := c.do(ctx, http.MethodGet, "/api/books?"+q.Encode(), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMine fetches all books created by the token's owner.
// The endpoint is not paginated.
func (c *Client) ListMine(ctx context.Context, token string) ([]Book, error) {
	var resp struct {
		Books []Book `json:"books"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/books/user", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// CreateBook publishes a new recommendation and returns the created record.
func (c *Client) CreateBook(ctx context.Context, token string, draft BookDraft) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodPost, "/api/books", token, draft, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a recommendation owned by the token's owner.
func (c *Client) DeleteBook(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), token, nil, nil)
}

// do performs one round trip: marshal body, attach headers, decode the
// response into out on 2xx, or into an *Error on anything else.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	}
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.ClientID != "" {
		req.Header.Set("X-Client-ID", c.ClientID)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error, preferring the
// backend's message field over the generic fallback.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Message: genericFailure}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
