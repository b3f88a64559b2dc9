package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"sheet-shop/internal/config"
	custommiddleware "sheet-shop/internal/middleware"
	"sheet-shop/internal/service"
	"sheet-shop/internal/sheets"
	"sheet-shop/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP server is built from.
// Redis is optional; without it requests are not rate limited.
type Dependencies struct {
	Gateway sheets.Gateway
	Store   service.StoreService
	Redis   *redis.Client
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Dependencies) (*Server, error) {
	renderer, err := transport.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))

	if deps.Redis != nil {
		router.Use(custommiddleware.RateLimitMiddleware(deps.Redis, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "sheet_shop_rate_limit",
		}, logger))
	}

	router.Get("/health", healthHandler(deps.Gateway, logger))

	transport.NewPageHandler(deps.Store, renderer).RegisterRoutes(router)
	transport.NewAPIHandler(deps.Store, logger).RegisterRoutes(router,
		custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()),
	)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  deps.Redis,
	}

	return server, nil
}

// healthHandler reports ok when the spreadsheet document can be opened.
func healthHandler(gateway sheets.Gateway, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		doc, err := gateway.OpenDocument(ctx)
		if err != nil {
			logger.Warn("Health check failed", zap.Error(err))
			custommiddleware.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
			return
		}

		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"document": doc.Title,
			"sheets":   len(doc.Sheets),
		})
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
