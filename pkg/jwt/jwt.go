package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType é o valor de token_type devolvido no login.
const TokenType = "bearer"

// Claims carrega os claims registrados mais o perfil e o tenant do usuário.
// O subject é o id do usuário.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role,omitempty"`
	TenantID *int64 `json:"tenant_id,omitempty"`
}

// Identity é o resultado de um token válido.
type Identity struct {
	UserID   int64
	Role     string
	TenantID *int64
}

var errEmptySecret = errors.New("jwt: secret vazio")

// Generate assina um token HS256 para o usuário.
func Generate(secret string, userID int64, role string, tenantID *int64, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Role:     role,
		TenantID: tenantID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida assinatura e expiração e devolve a identidade do token.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, errEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, errors.New("jwt: claims inválidos")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return Identity{}, errors.New("jwt: subject inválido")
	}
	return Identity{UserID: userID, Role: claims.Role, TenantID: claims.TenantID}, nil
}
