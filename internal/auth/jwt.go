// Package auth issues and checks the HS256 tokens that API clients present.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// Client identifies the holder of an API token.
type Client struct {
	ID   uuid.UUID
	Name string
}

// JWTManager handles API token generation and validation.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager.
// secret must be at least 32 characters for HS256 security.
func NewJWTManager(secret string, issuer string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

type clientClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name,omitempty"`
}

// IssueToken creates a signed HS256 JWT with the client ID as subject.
// A nil client ID is replaced with a new one. Returns the token and its expiry.
func (m *JWTManager) IssueToken(client Client) (string, time.Time, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	now := m.now()
	expires := now.Add(m.ttl)
	claims := clientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   client.ID.String(),
			Issuer:    m.issuer,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Name: client.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expires, nil
}

// ValidateToken parses and validates a token. Every failure wraps
// domain.ErrUnauthorized.
func (m *JWTManager) ValidateToken(_ context.Context, tokenString string) (Client, error) {
	if tokenString == "" {
		return Client{}, fmt.Errorf("token is empty: %w", domain.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &clientClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Client{}, fmt.Errorf("parse token: %w: %w", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*clientClaims)
	if !ok || !token.Valid {
		return Client{}, fmt.Errorf("invalid token claims: %w", domain.ErrUnauthorized)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Client{}, fmt.Errorf("invalid subject UUID: %w", domain.ErrUnauthorized)
	}

	return Client{ID: id, Name: claims.Name}, nil
}
