package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/divyde/divyde/internal/adapter/http/handler"
	apimiddleware "github.com/divyde/divyde/internal/adapter/http/middleware"
	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/infrastructure/auth"
	"github.com/divyde/divyde/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"email":"amy@example.com","name":"Amy","password":"longenough1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/friends/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
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
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/friends/",
		"GET /api/v1/friends/",
		"GET /api/v1/friends/{id}",
		"DELETE /api/v1/friends/{id}",
		"GET /api/v1/debts/",
		"POST /api/v1/debts/",
		"PATCH /api/v1/debts/{id}",
		"DELETE /api/v1/debts/{id}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)

	cfg := RouterConfig{
		AuthHandler:   handler.NewAuthHandler(&stubUserService{}, jwtManager),
		FriendHandler: handler.NewFriendHandler(&stubFriendService{}),
		DebtHandler:   handler.NewDebtHandler(&stubDebtService{}),
		HealthHandler: handler.NewHealthHandler(nil),
		JWTManager:    jwtManager,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: input.Email, Name: input.Name}, nil
}

func (stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: input.Email}, nil
}

type stubFriendService struct{}

func (stubFriendService) CreateFriend(ctx context.Context, input usecase.CreateFriendInput) (*domain.Friend, error) {
	return &domain.Friend{ID: "f1", Name: input.Name}, nil
}

func (stubFriendService) ListFriends(ctx context.Context, userID string) ([]usecase.FriendWithBalance, error) {
	return []usecase.FriendWithBalance{}, nil
}

func (stubFriendService) GetFriend(ctx context.Context, userID, friendID string) (*usecase.FriendDetail, error) {
	return &usecase.FriendDetail{Friend: domain.Friend{ID: friendID}}, nil
}

func (stubFriendService) DeleteFriend(ctx context.Context, userID, friendID string) error {
	return nil
}

type stubDebtService struct{}

func (stubDebtService) ListDebts(ctx context.Context, input usecase.ListDebtsInput) (*usecase.ListDebtsOutput, error) {
	return &usecase.ListDebtsOutput{}, nil
}

func (stubDebtService) CreateSplit(ctx context.Context, input usecase.CreateSplitInput) ([]*domain.Debt, error) {
	return []*domain.Debt{}, nil
}

func (stubDebtService) UpdateDebt(ctx context.Context, input usecase.UpdateDebtInput) (*domain.Debt, error) {
	return &domain.Debt{ID: input.DebtID}, nil
}

func (stubDebtService) DeleteDebt(ctx context.Context, userID, debtID string) error {
	return nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
