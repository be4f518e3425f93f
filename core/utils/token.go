package utils

import (
	"fmt"
	"strings"
	"time"

	"room-booking-api/core/config"
	"room-booking-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is what the auth middleware stores in the echo context.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not configured")
	}
	return []byte(cfg.JWT.Secret), nil
}

// GenerateToken signs an access token. Issuing tokens belongs to the identity
// service; this exists for the CLI and for tests.
func GenerateToken(userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Scope:  constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if cfg, ok := config.GetSafe(); ok {
		claims.Issuer = cfg.JWT.Issuer
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, err := jwtSecret()
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != constants.ScopeTokenAccess {
		return nil, fmt.Errorf("invalid token scope %q", claims.Scope)
	}

	return claims, nil
}

// GetTokenFromHeader strips the "Bearer " prefix from an Authorization header.
func GetTokenFromHeader(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}
