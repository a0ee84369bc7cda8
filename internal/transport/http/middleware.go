package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/YusovID/service-dispatch/internal/apperrors"
	"github.com/YusovID/service-dispatch/internal/domain"
	"github.com/YusovID/service-dispatch/internal/session"
	"github.com/google/uuid"
)

func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := getRequestID(r.Context())

		log := s.log.With(
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
		log.Info("request started")

		t1 := time.Now()

		next.ServeHTTP(w, r)

		log.Info("request completed",
			slog.String("duration", time.Since(t1).String()),
		)
	})
}

type contextKey string

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = contextKey("requestID")
)

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey).(string); ok {
		return reqID
	}

	return ""
}

// authenticate resolves the bearer token into a session and stores it on the
// request context. Requests without a valid, unrevoked token stop here.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "internal.transport.http.authenticate"

		token, ok := bearerToken(r)
		if !ok {
			s.handleServiceError(w, r, op, apperrors.ErrUnauthorized)
			return
		}

		sess, err := s.accounts.Resolve(r.Context(), token)
		if err != nil {
			s.handleServiceError(w, r, op, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

// requireRole gates a route group by the role of the signed-in profile.
func (s *Server) requireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "internal.transport.http.requireRole"

			sess, ok := session.FromContext(r.Context())
			if !ok {
				s.handleServiceError(w, r, op, apperrors.ErrUnauthorized)
				return
			}

			if sess.Role() != role {
				s.handleServiceError(w, r, op, apperrors.ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// mustSession returns the session placed by authenticate. Handlers behind that
// middleware can rely on it being present.
func mustSession(r *http.Request) *session.Session {
	sess, _ := session.FromContext(r.Context())

	return sess
}
