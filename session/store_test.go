package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/lumenik/install-client/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)

	return store
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": "u1",
		"exp":        exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func Test_Store_SaveLoadClear(t *testing.T) {
	store := newTestStore(t)

	require.False(t, store.Authenticated())
	_, ok := store.User()
	require.False(t, ok)

	user := model.User{ID: "u1", Username: "carlos", FullName: "Carlos M.", Role: model.RoleClient}
	require.NoError(t, store.Save("tok-123", user))

	require.True(t, store.Authenticated())
	require.Equal(t, "tok-123", store.Token())

	loaded, ok := store.User()
	require.True(t, ok)
	require.Equal(t, user, loaded)

	// both keys vanish together
	require.NoError(t, store.Clear())
	require.False(t, store.Authenticated())
	_, ok = store.User()
	require.False(t, ok)

	// clearing an already empty store is fine
	require.NoError(t, store.Clear())
}

func Test_Store_TokenExpired(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()
	user := model.User{ID: "u1", Role: model.RoleClient}

	// no session at all
	require.True(t, store.TokenExpired(now))

	// live token
	require.NoError(t, store.Save(signedToken(t, now.Add(time.Hour)), user))
	require.False(t, store.TokenExpired(now))

	// expired token
	require.NoError(t, store.Save(signedToken(t, now.Add(-time.Hour)), user))
	require.True(t, store.TokenExpired(now))

	// opaque token: the backend stays authoritative, not expired locally
	require.NoError(t, store.Save("not-a-jwt", user))
	require.False(t, store.TokenExpired(now))
}
