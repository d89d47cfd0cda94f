package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phanto-shop/storefront/models"
	"github.com/phanto-shop/storefront/session"
	"github.com/phanto-shop/storefront/storage"
)

func newTestStore(t *testing.T) (*session.Store, storage.Store) {
	t.Helper()
	st := storage.NewMemStore()
	ss := session.NewStore(st, session.NewLocalAuthenticator(), zap.NewNop())
	require.NoError(t, ss.Initialize(context.Background()))
	return ss, st
}

func TestLoginLogoutCycle(t *testing.T) {
	ss, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, ss.IsAuthenticated())

	result, err := ss.Login(ctx, "ana@example.com", "whatever")
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.User)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.True(t, ss.IsAuthenticated())

	require.NoError(t, ss.Logout(ctx))
	assert.False(t, ss.IsAuthenticated())
	assert.Nil(t, ss.Current())

	// Logging in again works after logout.
	_, err = ss.Login(ctx, "ana@example.com", "whatever")
	require.NoError(t, err)
	assert.True(t, ss.IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	ss, st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, ss.Logout(ctx))
	require.NoError(t, ss.Logout(ctx))
	assert.False(t, ss.IsAuthenticated())

	_, err := st.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRegisterGeneratesDistinctIDs(t *testing.T) {
	ss, _ := newTestStore(t)
	ctx := context.Background()

	first, err := ss.Register(ctx, "Ana", "ana@x.com", "secret1")
	require.NoError(t, err)
	second, err := ss.Register(ctx, "Bea", "bea@x.com", "secret2")
	require.NoError(t, err)

	require.NotNil(t, first.User)
	require.NotNil(t, second.User)
	assert.NotEqual(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Bea", second.User.DisplayName)
}

func TestLoginPersistsUser(t *testing.T) {
	ss, st := newTestStore(t)
	ctx := context.Background()

	_, err := ss.Login(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	data, err := st.Get(ctx, storage.KeyUser)
	require.NoError(t, err)

	var stored models.User
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestInitializeRehydratesStoredUser(t *testing.T) {
	st := storage.NewMemStore()
	ctx := context.Background()

	user := models.User{ID: 7, DisplayName: "Ana", Email: "ana@x.com"}
	data, err := json.Marshal(user)
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, storage.KeyUser, data))

	ss := session.NewStore(st, session.NewLocalAuthenticator(), zap.NewNop())
	assert.False(t, ss.Ready())
	require.NoError(t, ss.Initialize(ctx))

	assert.True(t, ss.Ready())
	assert.True(t, ss.IsAuthenticated())
	require.NotNil(t, ss.Current())
	assert.Equal(t, int64(7), ss.Current().ID)
}

func TestCorruptUserRecordDegradesToLoggedOut(t *testing.T) {
	st := storage.NewMemStore()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, storage.KeyUser, []byte("][garbage")))

	ss := session.NewStore(st, session.NewLocalAuthenticator(), zap.NewNop())
	require.NoError(t, ss.Initialize(ctx))

	assert.True(t, ss.Ready())
	assert.False(t, ss.IsAuthenticated())
}

// flakyStore fails its first Get calls, then delegates.
type flakyStore struct {
	storage.Store
	failures int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("storage offline")
	}
	return f.Store.Get(ctx, key)
}

func TestInitializeRetriesAfterStorageError(t *testing.T) {
	mem := storage.NewMemStore()
	ctx := context.Background()

	data, err := json.Marshal(models.User{ID: 7, DisplayName: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	require.NoError(t, mem.Set(ctx, storage.KeyUser, data))

	ss := session.NewStore(&flakyStore{Store: mem, failures: 1}, session.NewLocalAuthenticator(), zap.NewNop())

	require.Error(t, ss.Initialize(ctx))
	assert.False(t, ss.Ready())

	// Storage recovered: the retry must actually rehydrate.
	require.NoError(t, ss.Initialize(ctx))
	assert.True(t, ss.Ready())
	require.NotNil(t, ss.Current())
	assert.Equal(t, int64(7), ss.Current().ID)
}

func TestInitializeRunsOnce(t *testing.T) {
	ss, st := newTestStore(t)
	ctx := context.Background()

	// A record written after the first Initialize must not leak in via a
	// second call.
	data, err := json.Marshal(models.User{ID: 9, Email: "late@x.com"})
	require.NoError(t, err)
	require.NoError(t, st.Set(ctx, storage.KeyUser, data))

	require.NoError(t, ss.Initialize(ctx))
	assert.False(t, ss.IsAuthenticated())
}
