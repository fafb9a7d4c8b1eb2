package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("s3cr3t", "u-1", "bodeguero", "stock-ledger", 5)
	require.NoError(t, err)

	userID, role, err := Parse("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "bodeguero", role)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestExpirado(t *testing.T) {
	token, err := Generate("s3cr3t", "u-1", "admin", "stock-ledger", -1)
	require.NoError(t, err)
	_, _, err = Parse("s3cr3t", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u", "r", "i", 1)
	assert.ErrorIs(t, err, ErrEmptySecret)
	_, _, err = Parse("", "x")
	assert.ErrorIs(t, err, ErrEmptySecret)
}
