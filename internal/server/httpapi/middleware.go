package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/roadwatch/internal/common"
	"github.com/dmitrijs2005/roadwatch/internal/metrics"
	"github.com/dmitrijs2005/roadwatch/internal/server/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	requestIDHeader    = "X-Request-ID"
	maxRequestIDLength = 128
)

type ctxKey int

const (
	requestInfoKey ctxKey = iota
	claimsKey
)

// requestInfo is shared by the outer middleware and the handlers so the
// access log can report the authenticated user.
type requestInfo struct {
	id     string
	userID int64
}

func requestInfoFrom(ctx context.Context) *requestInfo {
	if ri, ok := ctx.Value(requestInfoKey).(*requestInfo); ok {
		return ri
	}
	return &requestInfo{}
}

func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// requestID keeps a caller supplied X-Request-ID or assigns a fresh one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestInfoKey, &requestInfo{id: id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// instrument records request metrics and writes one access log line per request.
func (s *HTTPServer) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		duration := time.Since(start)
		metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), duration)

		ri := requestInfoFrom(r.Context())
		args := []any{
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", duration,
			"request_id", ri.id,
		}
		if ri.userID != 0 {
			args = append(args, "user_id", ri.userID)
		}
		s.logger.Info(r.Context(), "request", args...)
	})
}

func (s *HTTPServer) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error(r.Context(), "panic while serving request",
				"panic", rec, "request_id", requestInfoFrom(r.Context()).id)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
		}()
		next.ServeHTTP(w, r)
	})
}

// authenticate verifies the bearer access token and stores its claims in
// the request context.
func (s *HTTPServer) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeaderName)
		if header == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Missing Authorization header"})
			return
		}

		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Authorization header must be 'Bearer <token>'"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token has expired"
			}
			s.logger.Debug(r.Context(), "token rejected", "error", err)
			writeJSON(w, http.StatusUnauthorized, errorBody{Error: msg})
			return
		}

		requestInfoFrom(r.Context()).userID = claims.UserID

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole must run after authenticate.
func requireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFrom(r.Context())
			if !ok {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Missing Authorization header"})
				return
			}
			if claims.Role != role {
				writeJSON(w, http.StatusForbidden, errorBody{Error: "Admin access required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
