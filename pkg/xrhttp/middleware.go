package xrhttp

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/xrcaps/pkg/logger"
	"github.com/dmitrymomot/xrcaps/pkg/useragent"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 128

var validRequestID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type (
	requestIDKey struct{}
	platformKey  struct{}
)

// RequestID propagates a valid inbound X-Request-ID or assigns a new one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if len(id) == 0 || len(id) > maxRequestIDLength || !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestIDFromContext returns the request identifier, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Platform attaches the platform parsed from the request's User-Agent.
// Touch support is unknown server-side and reads as false.
func Platform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := useragent.DetectPlatform(r.UserAgent(), false)
		next.ServeHTTP(w, r.WithContext(WithPlatform(r.Context(), p)))
	})
}

// WithPlatform stores p in ctx.
func WithPlatform(ctx context.Context, p useragent.Platform) context.Context {
	return context.WithValue(ctx, platformKey{}, p)
}

// PlatformFromContext returns the platform stored by the Platform middleware.
func PlatformFromContext(ctx context.Context) (useragent.Platform, bool) {
	p, ok := ctx.Value(platformKey{}).(useragent.Platform)
	return p, ok
}

// LoggerExtractors add the request ID and the client OS to log records
// written with a request context.
func LoggerExtractors() []logger.ContextExtractor {
	return []logger.ContextExtractor{
		func(ctx context.Context) (slog.Attr, bool) {
			if id := RequestIDFromContext(ctx); id != "" {
				return slog.String("request_id", id), true
			}
			return slog.Attr{}, false
		},
		func(ctx context.Context) (slog.Attr, bool) {
			if p, ok := PlatformFromContext(ctx); ok {
				return slog.String("client_os", p.OS), true
			}
			return slog.Attr{}, false
		},
	}
}

// AccessLog logs one line per request.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(started)),
			)
		})
	}
}
