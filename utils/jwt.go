package utils

import (
	"errors"
	"fmt"

	"tidybook/config"

	"github.com/golang-jwt/jwt"
)

// TokenClaims carries the identity fields this service reads from a verified
// token. Token issuance belongs to the external auth system; we only parse.
type TokenClaims struct {
	Subject string
	Role    string // "housekeeper" or "homeowner"
	Name    string
}

// ParseToken verifies an HS256 token issued by the auth collaborator and
// extracts the subject, role and display name claims.
func ParseToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token missing subject")
	}
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)

	return &TokenClaims{Subject: sub, Role: role, Name: name}, nil
}
