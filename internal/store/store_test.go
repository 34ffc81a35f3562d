package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookworm.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestGet_MissingKeyIsNotAnError(t *testing.T) {
	s, _ := openTestStore(t)

	value, ok, err := s.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSetGetRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "tok-123"))

	value, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", value)
}

func TestSet_OverwritesPreviousValue(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "old"))
	require.NoError(t, s.Set(ctx, "token", "new"))

	value, ok, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", value)
}

func TestDelete_IsIdempotent(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user", `{"username":"maria"}`))
	require.NoError(t, s.Delete(ctx, "user"))
	require.NoError(t, s.Delete(ctx, "user"), "deleting an absent key is a no-op")

	_, ok, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValuesSurviveReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "token", "tok-persist"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-persist", value)
}

func TestClientID_StableAcrossCallsAndReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()

	id1, err := s.ClientID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id1)

	id2, err := s.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	require.NoError(t, s.Close())
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	id3, err := reopened.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id3, "install id survives restarts")
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "bookworm.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", "v"))
}

func TestOpen_IsIdempotent(t *testing.T) {
	s, path := openTestStore(t)
	require.NoError(t, s.Close())

	again, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, again.Close())
}
