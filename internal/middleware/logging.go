package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"sheet-shop/internal/logger"
)

// LoggingMiddleware logs each request once it completes and attaches a
// request scoped logger to the context for handlers further down.
func LoggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// set by chi middleware.RequestID
			requestID := middleware.GetReqID(r.Context())
			reqLogger := log.With(zap.String("request_id", requestID))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLogger)))

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}

			switch {
			case ww.Status() >= http.StatusInternalServerError:
				reqLogger.Error("Request failed", fields...)
			case ww.Status() >= http.StatusBadRequest:
				reqLogger.Warn("Request rejected", fields...)
			default:
				reqLogger.Info("Request completed", fields...)
			}
		})
	}
}
