package httpapi

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
	gerr "github.com/jekabolt/salesboard/internal/errors"
	mw "github.com/jekabolt/salesboard/internal/middleware"
)

// requireAdmin rejects requests without the configured X-Admin-Key.
// With no key configured every request is rejected.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !validAdminKey(s.admin.Key, r.Header.Get(adminKeyHeader)) {
			render.Render(w, r, ErrFromError(r, gerr.ErrUnauthorized))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func validAdminKey(want, got string) bool {
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}

// rateLimit limits admin calls per client IP, counting failed attempts too.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := mw.GetClientIP(r.Context())
		err := s.limiter.Check(ip)
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.admin.RateLimitMax))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(s.limiter.GetRemaining(ip)))
		if err != nil {
			w.Header().Set("Retry-After", strconv.Itoa(int(s.admin.RateLimitWindow.Seconds())))
			render.Render(w, r, ErrFromError(r, err))
			return
		}
		next.ServeHTTP(w, r)
	})
}
