package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sheet-shop/internal/config"
	"sheet-shop/internal/repository"
	"sheet-shop/internal/service"
	"sheet-shop/internal/sheets"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Env: "test"},
		Sheets:    config.SheetsConfig{Backend: config.BackendMemory},
		RateLimit: config.RateLimitConfig{Requests: 3, Window: time.Minute},
	}
}

func newTestServer(t *testing.T, cfg *config.Config, redisClient *redis.Client) *Server {
	t.Helper()

	gateway, err := repository.NewGateway(context.Background(), cfg.Sheets)
	if err != nil {
		t.Fatalf("failed to open gateway: %v", err)
	}
	repo := repository.NewSpreadsheetRepository(gateway, zap.NewNop())
	if _, err := repo.SeedDefaultProducts(context.Background()); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}

	srv, err := NewServer(cfg, zap.NewNop(), Dependencies{
		Gateway: gateway,
		Store:   service.NewStoreService(repo),
		Redis:   redisClient,
	})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return srv
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t, testConfig(), nil)
	defer srv.Close()

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	for path, status := range map[string]int{
		"/":             http.StatusOK,
		"/home":         http.StatusOK,
		"/about":        http.StatusOK,
		"/products":     http.StatusOK,
		"/orders":       http.StatusOK,
		"/health":       http.StatusOK,
		"/api/products": http.StatusOK,
		"/nowhere":      http.StatusNotFound,
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		resp.Body.Close()

		if resp.StatusCode != status {
			t.Errorf("%s: expected %d, got %d", path, status, resp.StatusCode)
		}
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, testConfig(), nil)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["sheets"] != float64(2) {
		t.Errorf("unexpected health body %v", body)
	}
}

type brokenGateway struct {
	sheets.Gateway
}

func (brokenGateway) OpenDocument(ctx context.Context) (*sheets.Document, error) {
	return nil, errors.New("document unavailable")
}

func TestServer_HealthUnavailable(t *testing.T) {
	handler := healthHandler(brokenGateway{}, zap.NewNop())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestServer_CORSOnAPI(t *testing.T) {
	srv := newTestServer(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}
}

func TestServer_RateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	srv := newTestServer(t, testConfig(), redisClient)
	defer srv.Close()

	var codes []int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.RemoteAddr = "10.1.1.1:5555"
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[2] != http.StatusOK || codes[3] != http.StatusTooManyRequests {
		t.Errorf("expected the fourth request to be limited, got %v", codes)
	}
}
