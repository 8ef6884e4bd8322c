package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "segredo-de-teste"

func TestGenerateParse_IdaEVolta(t *testing.T) {
	tenant := int64(7)
	tok, err := Generate(testSecret, 42, "gerente", &tenant, "cordoba-test", 60)
	require.NoError(t, err)

	id, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id.UserID)
	assert.Equal(t, "gerente", id.Role)
	require.NotNil(t, id.TenantID)
	assert.Equal(t, int64(7), *id.TenantID)
}

func TestGenerate_DiretorSemTenant(t *testing.T) {
	tok, err := Generate(testSecret, 1, "diretor", nil, "cordoba-test", 60)
	require.NoError(t, err)

	id, err := Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Nil(t, id.TenantID)
}

func TestParse_SecretErrado(t *testing.T) {
	tok, err := Generate(testSecret, 1, "operador", nil, "cordoba-test", 60)
	require.NoError(t, err)

	_, err = Parse("outro-segredo", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(testSecret, 1, "operador", nil, "cordoba-test", -1)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestParse_AlgoritmoNone(t *testing.T) {
	claims := Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = Parse(testSecret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVazio(t *testing.T) {
	_, err := Generate("", 1, "operador", nil, "x", 60)
	assert.Error(t, err)
}
