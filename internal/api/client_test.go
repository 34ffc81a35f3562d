package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_SendsBodyAndDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var params RegisterParams
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "maria", params.Username)
		assert.Equal(t, "+1 555 0101", params.Phone)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"user":{"_id":"u-1","username":"maria"},"token":"tok-123"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Register(context.Background(), RegisterParams{
		Username: "maria",
		Email:    "maria@example.com",
		Phone:    "+1 555 0101",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "tok-123", resp.Token)
}

func TestLogin_BackendRejectionCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Login(context.Background(), "x@example.com", "bad")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.True(t, IsAuthError(err))
}

func TestDo_RejectionWithoutBodyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Login(context.Background(), "x@example.com", "pw")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Something went wrong", apiErr.Message)
	assert.False(t, IsAuthError(err))
}

func TestListBooks_QueryHeadersAndDecode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "install-1", r.Header.Get("X-Client-ID"))
		assert.Empty(t, r.Header.Get("Content-Type"), "GET carries no body")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"books":[{"_id":"a","title":"A","rating":4,"price":12.5,` +
			`"user":{"username":"maria","phone":"+1 555 0101"}}],"totalPages":7}`))
	}))
	defer server.Close()

	client := New(server.URL)
	client.ClientID = "install-1"
	page, err := client.ListBooks(context.Background(), "tok-123", 2, 5)

	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalPages)
	require.Len(t, page.Books, 1)
	assert.Equal(t, "A", page.Books[0].Title)
	assert.Equal(t, 4, page.Books[0].Rating)
	assert.Equal(t, 12.5, page.Books[0].Price)
	assert.Equal(t, "maria", page.Books[0].Author.Username)
}

func TestListMine_Decode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books/user", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"books":[{"_id":"m-1"},{"_id":"m-2"}]}`))
	}))
	defer server.Close()

	client := New(server.URL)
	books, err := client.ListMine(context.Background(), "tok")

	require.NoError(t, err)
	assert.Len(t, books, 2)
}

func TestCreateBook_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)

		var draft BookDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "Dune", draft.Title)
		assert.Equal(t, 5, draft.Rating)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"b-9","title":"Dune"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	book, err := client.CreateBook(context.Background(), "tok", BookDraft{
		Title:   "Dune",
		Caption: "Spice.",
		Rating:  5,
		Price:   9.99,
		Image:   "data:image/jpeg;base64,AAAA",
	})

	require.NoError(t, err)
	assert.Equal(t, "b-9", book.ID)
}

func TestDeleteBook_PathAndErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/api/books/gone" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Book not found"}`))
			return
		}
		assert.Equal(t, "/api/books/b-1", r.URL.Path)
		w.Write([]byte(`{"message":"Book deleted successfully"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	require.NoError(t, client.DeleteBook(context.Background(), "tok", "b-1"))

	err := client.DeleteBook(context.Background(), "tok", "gone")
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Book not found", apiErr.Message)
}

func TestDo_TransportFailureIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL)
	_, err := client.Login(context.Background(), "x@example.com", "pw")

	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr))
	assert.Equal(t, "fallback", MessageOr(err, "fallback"))
}

func TestMessageOr(t *testing.T) {
	assert.Equal(t, "from backend", MessageOr(&Error{Status: 400, Message: "from backend"}, "fb"))
	assert.Equal(t, "fb", MessageOr(&Error{Status: 400}, "fb"))
	assert.Equal(t, "fb", MessageOr(errors.New("net down"), "fb"))
	assert.Equal(t, "fb", MessageOr(nil, "fb"))
}
