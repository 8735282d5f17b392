package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token lifetimes. "Remember me" logins receive the longer one.
const (
	TokenLifetime         = 8 * 24 * time.Hour
	ExtendedTokenLifetime = 15 * 24 * time.Hour
)

// Claims represents the JWT payload for a signed-in user
type Claims struct {
	UserID         uuid.UUID `json:"user_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	jwt.RegisteredClaims
}

// Service issues and validates the bearer credentials used on every
// authenticated endpoint
type Service struct {
	secret []byte
}

// NewService creates a new auth service
func NewService(jwtSecret string) *Service {
	return &Service{secret: []byte(jwtSecret)}
}

// IssueToken signs a JWT for the user. rememberMe extends the lifetime.
func (s *Service) IssueToken(userID, orgID uuid.UUID, rememberMe bool) (string, error) {
	lifetime := TokenLifetime
	if rememberMe {
		lifetime = ExtendedTokenLifetime
	}

	now := time.Now()
	claims := &Claims{
		UserID:         userID,
		OrganizationID: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "grievance-portal-backend",
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a JWT and returns its claims
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.UserID == uuid.Nil || claims.OrganizationID == uuid.Nil {
		return nil, fmt.Errorf("token missing identity claims")
	}
	return claims, nil
}
