package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/isekco/vestia/internal/adapter/http/handler"
	"github.com/isekco/vestia/internal/domain"
	"github.com/isekco/vestia/internal/engine"
	"github.com/isekco/vestia/internal/infrastructure/metrics"
	"github.com/isekco/vestia/internal/usecase"
	"github.com/isekco/vestia/internal/usecase/mocks"
)

var testMetrics = metrics.New()

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	provider := mocks.NewMockLedgerProvider()
	provider.GetLedgerFunc = func(ctx context.Context, forceRefresh bool) (*domain.Ledger, error) {
		return &domain.Ledger{
			SchemaVersion: 1,
			BaseCurrency:  domain.CurrencyTRY,
			Owners:        []domain.Owner{{ID: "o1", Name: "Owner One"}},
			Accounts: []domain.Account{
				{ID: "a1", OwnerID: "o1", Name: "Vault", Currency: domain.CurrencyUSD},
			},
			Transactions: []domain.Transaction{
				{
					ID:              "t1",
					OwnerID:         "o1",
					AccountID:       "a1",
					EpochMs:         1000,
					Type:            domain.TransactionBuy,
					AssetType:       domain.AssetGold,
					AssetInstrument: "XAU_SPOT",
					UnitType:        domain.UnitGram,
					Quantity:        decimal.RequireFromString("10"),
					UnitPrice:       decimal.RequireFromString("100"),
					PriceCurrency:   domain.CurrencyUSD,
				},
			},
		}, nil
	}

	logger := zerolog.Nop()
	positionUC := usecase.NewPositionUseCase(provider, engine.New())
	ledgerUC := usecase.NewLedgerUseCase(provider)

	cfg := RouterConfig{
		PositionHandler: handler.NewPositionHandler(positionUC, testMetrics, logger),
		LedgerHandler:   handler.NewLedgerHandler(ledgerUC, nil, testMetrics, logger),
		HealthHandler:   handler.NewHealthHandler(nil, nil),
		Logger:          logger,
		Metrics:         testMetrics,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_PositionsEndToEnd(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/positions", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var positions []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&positions); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("expected 1 position, got %d", len(positions))
	}
	if positions[0]["assetKey"] != "XAU|XAU_SPOT|GRAM" {
		t.Fatalf("unexpected asset key %v", positions[0]["assetKey"])
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimitPerSecond = 1
		cfg.RateLimitBurst = 1
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/positions", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/positions", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /api/v1/positions",
		"GET /api/v1/transactions",
		"GET /api/v1/ledger/",
		"PUT /api/v1/ledger/",
		"POST /api/v1/ledger/refresh",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
