// Package auth issues and validates session tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stwalsh4118/room4rent/internal/models"
)

// ErrInvalidToken is returned for any token that fails validation.
var ErrInvalidToken = errors.New("invalid token")

// Session is the authenticated caller of a request.
type Session struct {
	UserID   int64       `json:"user_id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	TenantID *int64      `json:"tenant_id,omitempty"`
}

// IsAdmin reports whether the caller has the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// OwnsTenant reports whether the caller is the given tenant.
func (s Session) OwnsTenant(tenantID int64) bool {
	return s.TenantID != nil && *s.TenantID == tenantID
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID   int64       `json:"user_id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	TenantID *int64      `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates HS256 session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// GenerateToken signs a token for the session.
func (tm *TokenManager) GenerateToken(s Session) (string, error) {
	if s.UserID == 0 || s.Role == "" {
		return "", fmt.Errorf("user id and role required")
	}
	now := tm.now()
	claims := Claims{
		UserID:   s.UserID,
		Email:    s.Email,
		Role:     s.Role,
		TenantID: s.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", s.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			Issuer:    tm.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ValidateToken parses and verifies a token, returning its session.
func (tm *TokenManager) ValidateToken(tokenString string) (*Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithIssuer(tm.issuer),
		jwt.WithTimeFunc(tm.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Session{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}

// ExtractToken returns the token from a "Bearer <token>" header value.
func ExtractToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	return parts[1], nil
}
