package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"bookworm/internal/api"
)

// Durable storage keys. The session store is their only reader and writer.
const (
	keyUser  = "user"
	keyToken = "token"
)

// Fallback messages when a failure carries no backend message.
const (
	registerFallback = "Something went wrong"
	loginFallback    = "Invalid credentials"
)

// AuthAPI is the slice of the remote API the store needs.
type AuthAPI interface {
	Register(ctx context.Context, params api.RegisterParams) (*api.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
}

// CredentialStore is durable key/value storage for the session keys.
type CredentialStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Result is the outcome of Register or Login.
// OK is true on success; otherwise Message explains the failure.
type Result struct {
	OK      bool
	Message string
}

func success() Result               { return Result{OK: true} }
func failure(message string) Result { return Result{Message: message} }

// Store holds the authentication state for one running client.
//
// All state mutation is serialized by an internal mutex. Register and
// Login are not mutually guarded against each other: the caller is
// expected to disable the triggering control while IsLoading reports
// true, exactly as the UI contract requires.
type Store struct {
	authAPI AuthAPI
	creds   CredentialStore

	mu       sync.Mutex
	user     *api.User
	token    string
	loading  bool
	checking bool
}

// New creates a signed-out Store. IsCheckingAuth reports true until
// CheckAuth has run once.
func New(authAPI AuthAPI, creds CredentialStore) *Store {
	return &Store{
		authAPI:  authAPI,
		creds:    creds,
		checking: true,
	}
}

// CheckAuth loads a previously persisted session into memory.
//
// Durable storage is only read, never written. A storage read failure or
// a corrupt stored user is logged and otherwise swallowed: the session
// simply starts signed out. IsCheckingAuth reports false afterwards in
// every outcome.
func (s *Store) CheckAuth(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.checking = false
		s.mu.Unlock()
	}()

	token, haveToken, err := s.creds.Get(ctx, keyToken)
	if err != nil {
		slog.Warn("auth check failed", "error", err)
		return
	}
	userJSON, haveUser, err := s.creds.Get(ctx, keyUser)
	if err != nil {
		slog.Warn("auth check failed", "error", err)
		return
	}
	if !haveToken || !haveUser {
		// Nothing (or only half a session) stored; stay signed out.
		return
	}

	var user api.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		slog.Warn("auth check failed", "error", err)
		return
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
}

// Register creates an account and signs the new user in.
//
// On success the credentials are persisted first, then mirrored into
// memory. On any failure - transport, backend rejection, or storage
// write - memory and durable storage are left untouched and the Result
// carries the best available message.
func (s *Store) Register(ctx context.Context, username, email, phone, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.authAPI.Register(ctx, api.RegisterParams{
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: password,
	})
	if err != nil {
		return failure(api.MessageOr(err, registerFallback))
	}
	return s.persist(ctx, resp, registerFallback)
}

// Login exchanges an email/password pair for a session.
// Contract is identical in shape to Register.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.authAPI.Login(ctx, email, password)
	if err != nil {
		return failure(api.MessageOr(err, loginFallback))
	}
	return s.persist(ctx, resp, loginFallback)
}

// Logout erases the persisted session and clears memory.
// Calling it while signed out is a harmless no-op.
func (s *Store) Logout(ctx context.Context) {
	if err := s.creds.Delete(ctx, keyUser); err != nil {
		slog.Warn("logout: delete stored user", "error", err)
	}
	if err := s.creds.Delete(ctx, keyToken); err != nil {
		slog.Warn("logout: delete stored token", "error", err)
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

// User returns the signed-in user, or nil when signed out.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsLoading reports whether a Register or Login call is outstanding.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsCheckingAuth reports whether the initial CheckAuth has yet to finish.
// It is true exactly once per process: from construction until the first
// CheckAuth returns.
func (s *Store) IsCheckingAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checking
}

// persist writes the fresh credentials durably, then mirrors them into
// memory. Storage is written before memory so a write failure never
// leaves memory claiming a session that was not persisted. A partial
// durable write (user stored, token not) is tolerated: CheckAuth refuses
// to load a session unless both keys are present.
func (s *Store) persist(ctx context.Context, resp *api.AuthResponse, fallback string) Result {
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		slog.Warn("persist session: encode user", "error", err)
		return failure(fallback)
	}
	if err := s.creds.Set(ctx, keyUser, string(userJSON)); err != nil {
		slog.Warn("persist session: store user", "error", err)
		return failure(fallback)
	}
	if err := s.creds.Set(ctx, keyToken, resp.Token); err != nil {
		slog.Warn("persist session: store token", "error", err)
		return failure(fallback)
	}

	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.token = resp.Token
	s.mu.Unlock()
	return success()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
