package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/service"
)

const (
	KeyJwtSessionCookieName = "jwt_session"
	DefaultTokenTTL         = 24 * time.Hour
)

// JWTAuth guards write routes. With an empty secret every request passes
// through unauthenticated, which is how a local serve runs.
type JWTAuth struct {
	Secret []byte
}

func (j JWTAuth) Enabled() bool {
	return len(j.Secret) > 0
}

func (j JWTAuth) JWTMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !j.Enabled() {
			handler(w, r)
			return
		}

		token := tokenFromRequest(r)
		if token == "" {
			http.Error(w, "missing session token, please login", http.StatusUnauthorized)
			return
		}

		claims, err := j.ParseToken(token)
		if err != nil {
			log.WithField("path", r.URL.Path).Warn(err)
			http.Error(w, "invalid or expired session token", http.StatusUnauthorized)
			return
		}

		// pass claims to the handler through the context
		handler(w, r.WithContext(service.WithClaims(r.Context(), claims)))
	}
}

// ParseToken verifies an HS256 token and returns its claims.
func (j JWTAuth) ParseToken(token string) (service.UserCredentialClaims, error) {
	var claims service.UserCredentialClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		return service.UserCredentialClaims{}, fmt.Errorf("%w, %w", algo_errors.ErrUnAuthorized, err)
	}
	if !parsed.Valid || claims.UserName == "" {
		return service.UserCredentialClaims{}, fmt.Errorf("%w, token carries no user", algo_errors.ErrUnAuthorized)
	}
	return claims, nil
}

// IssueToken signs a session token for userName that expires after ttl.
func (j JWTAuth) IssueToken(userName string, ttl time.Duration) (string, time.Time, error) {
	if !j.Enabled() {
		return "", time.Time{}, fmt.Errorf("%w, %s is not configured", algo_errors.ErrInvalidInput, service.KeyJWTSecret)
	}
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return "", time.Time{}, fmt.Errorf("%w, user name is required", algo_errors.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	expiry := now.Add(ttl)
	claims := service.UserCredentialClaims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w, cannot sign token, %w", algo_errors.ErrInternal, err)
	}
	return signed, expiry, nil
}

// bearer header first, then the session cookie
func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	cookie, err := r.Cookie(KeyJwtSessionCookieName)
	if err != nil {
		if !errors.Is(err, http.ErrNoCookie) {
			log.Warn(err)
		}
		return ""
	}
	return cookie.Value
}
