package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sessions signs and verifies the tokens handed out with every new game.
type Sessions struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	TTL           time.Duration
}

type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

func loadSecret() ([]byte, error) {
	secret, ok := os.LookupEnv("SESSION_SECRET")
	if ok {
		return []byte(secret), nil
	}
	secretPath, ok := os.LookupEnv("SESSION_SECRET_FILE")
	if !ok {
		return nil, fmt.Errorf("no SESSION_SECRET or SESSION_SECRET_FILE env variable set")
	}
	data, err := os.ReadFile(secretPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read session secret: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func NewSessions() (*Sessions, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("session secret is empty")
	}

	ttl := time.Hour
	if ttlStr, ok := os.LookupEnv("SESSION_TTL"); ok {
		ttl, err = time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", ttl)
		}
	}

	return NewSessionsWithSecret(secret, ttl), nil
}

func NewSessionsWithSecret(secret []byte, ttl time.Duration) *Sessions {
	return &Sessions{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		TTL:           ttl,
	}
}

func (s *Sessions) Sign(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(s.signingMethod, claims).SignedString(s.secret)
}

func (s *Sessions) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.SessionID == "" {
		return nil, errors.New("malformed claims")
	}
	return claims, nil
}
