package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("María García", "maria@resto.com", "admin", "La Esquina")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "María García", claims.Name)
	assert.Equal(t, "maria@resto.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "La Esquina", claims.BusinessName)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
