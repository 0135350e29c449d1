package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/doodlesbykumbi/forms-in-go/pkg/config"
	"github.com/doodlesbykumbi/forms-in-go/pkg/session"
)

// SessionClaims are the claims the host webapp puts in its session token.
// The subject is the decimal user id; group is the active group selected
// in the host UI.
type SessionClaims struct {
	ActiveGroup int64 `json:"group,omitempty"`
	jwt.RegisteredClaims
}

// SessionAuthenticator is middleware that validates host session tokens
// and attaches the caller's session to the request context.
type SessionAuthenticator struct {
	Sessions *session.Store
}

// NewSessionAuthenticator creates a new session authenticator middleware
func NewSessionAuthenticator(sessions *session.Store) *SessionAuthenticator {
	return &SessionAuthenticator{Sessions: sessions}
}

// Middleware returns an HTTP middleware that validates session tokens
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authorization missing"))
			return
		}

		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization header"))
			return
		}

		secret := config.Get().SessionTokenSecret
		if secret == "" {
			http.Error(w, "forms configuration error: missing session token secret", http.StatusInternalServerError)
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid session token"))
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid session token subject"))
			return
		}

		caller, err := a.Sessions.ForUser(userID, claims.ActiveGroup)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Unknown session user"))
			return
		}

		next.ServeHTTP(w, r.WithContext(session.Set(r.Context(), caller)))
	})
}
