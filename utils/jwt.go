package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdferoz/electricity-board-api/config"
)

// Claims carries the authenticated caller's identity and role. The store
// layer never looks at ambient session state; handlers resolve the caller
// from these claims and pass ids into the workflow explicitly.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a session token for the given user.
func GenerateJWT(userID, role string) (string, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.JWTSecret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	expiry := time.Now().Add(time.Duration(cfg.SessionDuration) * time.Minute)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ValidateJWT validates a token string and returns its claims.
func ValidateJWT(tokenStr string) (*Claims, error) {
	cfg := config.GetConfig()
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret is not configured")
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
