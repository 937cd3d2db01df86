package auth

import (
	"fmt"
	"time"

	"github.com/cognitiondigest/digest-backend/pkg/config"
	"github.com/golang-jwt/jwt/v5"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// SessionClaims is the payload carried by the signed session cookie.
type SessionClaims struct {
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Picture  string `json:"picture,omitempty"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// SessionProfile is the identity baked into a freshly minted session.
type SessionProfile struct {
	Subject  string
	Email    string
	Name     string
	Picture  string
	Provider string
}

// MintSessionToken issues a signed session JWT for the provided profile.
func MintSessionToken(cfg config.AuthConfig, now time.Time, profile SessionProfile) (string, error) {
	if cfg.SessionSecret == "" {
		return "", fmt.Errorf("session secret is required")
	}
	if profile.Subject == "" {
		return "", fmt.Errorf("profile subject is required")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		return "", fmt.Errorf("session ttl must be positive")
	}

	claims := SessionClaims{
		Email:    profile.Email,
		Name:     profile.Name,
		Picture:  profile.Picture,
		Provider: profile.Provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("signing session jwt: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates the session JWT and returns typed claims.
func ParseSessionToken(cfg config.AuthConfig, tokenString string) (*SessionClaims, error) {
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.SessionSecret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing session jwt: %w", err)
	}
	return claims, nil
}
