package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	signed, err := GenerateJWT("seed-admin", WriteScope, "s3cret", 5)
	require.NoError(t, err)

	claims, err := ValidateJWT(signed, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "seed-admin", claims.Subject)
	assert.Equal(t, WriteScope, claims.Scope)
	assert.Equal(t, Issuer, claims.Issuer)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := GenerateJWT("seed-admin", WriteScope, "s3cret", 5)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, "other")
	assert.EqualError(t, err, "token signature is invalid")
}

func TestValidateRejectsExpired(t *testing.T) {
	signed, err := GenerateJWT("seed-admin", WriteScope, "s3cret", -1)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, "s3cret")
	assert.EqualError(t, err, "token has expired")
}

func TestValidateRejectsEmptyInput(t *testing.T) {
	_, err := ValidateJWT("", "s3cret")
	assert.Error(t, err)

	_, err = ValidateJWT("abc", "")
	assert.Error(t, err)

	_, err = GenerateJWT("x", WriteScope, "", 5)
	assert.Error(t, err)
}

func TestValidateRequiresSubject(t *testing.T) {
	signed, err := GenerateJWT("", WriteScope, "s3cret", 5)
	require.NoError(t, err)

	_, err = ValidateJWT(signed, "s3cret")
	assert.EqualError(t, err, "sub claim is missing")
}
