package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeysRejectsEmptySecret(t *testing.T) {
	_, err := NewKeys("")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	keys, err := NewKeys("secret-one")
	require.NoError(t, err)

	token, err := keys.GenerateToken("user-42", RoleAdmin)
	require.NoError(t, err)

	claims, err := keys.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestTokenRejectedByOtherKeys(t *testing.T) {
	keysA, err := NewKeys("secret-one")
	require.NoError(t, err)
	keysB, err := NewKeys("secret-two")
	require.NoError(t, err)

	token, err := keysA.GenerateToken("user-42", RoleUser)
	require.NoError(t, err)

	_, err = keysB.ParseToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	keys, err := NewKeys("secret-one")
	require.NoError(t, err)

	_, err = keys.ParseToken("not.a.token")
	assert.Error(t, err)
}
