// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rolevend/rolevend/pkg/identity"
)

// Claims are the token claims the service issues and accepts. Subject is the
// requester id.
type Claims struct {
	Department string `json:"department,omitempty"`
	MFAUsed    bool   `json:"mfa_used,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator validates bearer tokens and attaches the caller identity to
// the request context.
type Authenticator struct {
	key []byte
}

// NewAuthenticator creates an authenticator over a shared signing key.
func NewAuthenticator(key []byte) *Authenticator {
	return &Authenticator{key: key}
}

// IssueToken mints a token for a requester. Used by the token command and by
// tests.
func (a *Authenticator) IssueToken(requesterID, department string, mfaUsed bool, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Department: department,
		MFAUsed:    mfaUsed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   requesterID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
}

// Middleware rejects requests without a valid bearer token and stores the
// verified identity on the context for handlers.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization missing", http.StatusUnauthorized)
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			http.Error(w, "Malformed authorization header", http.StatusUnauthorized)
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return a.key, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		if claims.Subject == "" {
			http.Error(w, "Token has no subject", http.StatusUnauthorized)
			return
		}

		ctx := identity.NewContext(r.Context(), identity.Identity{
			RequesterID: claims.Subject,
			Department:  claims.Department,
			MFAUsed:     claims.MFAUsed,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
