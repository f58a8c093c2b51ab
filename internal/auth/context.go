package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
)

type contextKey struct{}

// Subject identifies who issued a request.
type Subject struct {
	Name          string
	Authenticated bool
}

func WithSubject(ctx context.Context, s Subject) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// GetSubject returns the subject stored by the middleware, or an anonymous one.
func GetSubject(ctx context.Context) Subject {
	if s, ok := ctx.Value(contextKey{}).(Subject); ok {
		return s
	}
	return Subject{Name: "anonymous"}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireToken gates write requests behind a static bearer token. Reads stay
// open. An empty token disables the gate.
func RequireToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := bearerToken(r)
			valid := token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
			if valid {
				r = r.WithContext(WithSubject(r.Context(), Subject{Name: "token", Authenticated: true}))
			}

			if token == "" || valid || r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("WWW-Authenticate", "Bearer")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"unauthorized"}`))
		})
	}
}
