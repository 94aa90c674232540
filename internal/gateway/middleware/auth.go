package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const ContextKeyCaller contextKey = "caller"

// InvokeAuth guards the invoke endpoints with HS256 bearer tokens.
// An empty secret disables the check.
type InvokeAuth struct {
	jwtSecret string
}

func NewInvokeAuth(jwtSecret string) *InvokeAuth {
	return &InvokeAuth{jwtSecret: jwtSecret}
}

// Enabled reports whether requests are checked at all
func (m *InvokeAuth) Enabled() bool {
	return m.jwtSecret != ""
}

// RequireToken rejects requests without a valid bearer token and stores the
// token subject in the request context under ContextKeyCaller.
func (m *InvokeAuth) RequireToken(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := ""
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenStr = strings.TrimSpace(parts[1])
		}

		if tokenStr == "" {
			http.Error(w, `{"error": "missing or invalid authorization"}`, http.StatusUnauthorized)
			return
		}

		claims, err := ValidateToken(tokenStr, m.jwtSecret)
		if err != nil {
			http.Error(w, `{"error": "invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyCaller, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GenerateToken signs an invoke token for subject valid for ttl
func GenerateToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken parses tokenStr and verifies its HMAC signature and expiry
func ValidateToken(tokenStr, secret string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}
