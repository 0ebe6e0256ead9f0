package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestGenerateParse(t *testing.T) {
	tok, err := Generate(secret, "u-1", "caja1", "Cashier", "pos-restaurante", 60)
	require.NoError(t, err)

	userID, username, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "caja1", username)
	assert.Equal(t, "Cashier", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate(secret, "u-1", "caja1", "Cashier", "pos", 60)
	require.NoError(t, err)

	_, _, _, err = Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, "u-1", "caja1", "Cashier", "pos", -1)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.Error(t, err)
}

// Un token sin rol es válido; RequireRole decide qué hacer con él.
func TestParse_SinRol(t *testing.T) {
	tok, err := Generate(secret, "u-1", "caja1", "", "pos", 60)
	require.NoError(t, err)

	_, _, role, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Empty(t, role)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "n", "Admin", "pos", 60)
	assert.Error(t, err)
	_, _, _, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
