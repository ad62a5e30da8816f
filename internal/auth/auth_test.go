package auth

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := seal("secret-1", []byte("hello"))
	require.NoError(t, err)

	plain, err := open("secret-1", sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))

	_, err = open("wrong-secret", sealed)
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	c := NewCacheAt(filepath.Join(t.TempDir(), "nested", "session"), "s3cret")

	_, err := c.Load()
	assert.ErrorIs(t, err, ErrNoSession)

	id := Identity{Token: "tok-1", UserID: "u1", FullName: "Ana López", Email: "ana@example.com", Role: RoleClient}
	require.NoError(t, c.Save(id))

	got, err := c.Load()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.NoError(t, c.Clear())
	_, err = c.Load()
	assert.ErrorIs(t, err, ErrNoSession)
	assert.NoError(t, c.Clear(), "clearing twice is fine")
}

func TestCacheSaveNeedsSecret(t *testing.T) {
	c := NewCacheAt(filepath.Join(t.TempDir(), "session"), "")
	assert.Error(t, c.Save(Identity{Token: "tok"}))
}

func TestTokenClaims(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "u42",
		"rol": RoleBarber,
	})
	signed, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	id, role, err := TokenClaims(signed)
	require.NoError(t, err)
	assert.Equal(t, "u42", id)
	assert.Equal(t, RoleBarber, role)

	_, _, err = TokenClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestIdentityRoles(t *testing.T) {
	assert.True(t, Identity{Token: "t", Role: RoleBarber}.IsBarber())
	assert.False(t, Identity{Token: "t", Role: RoleClient}.IsBarber())
	assert.True(t, Identity{Token: "t", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Identity{}.LoggedIn())
}
