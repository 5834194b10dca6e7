package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/divyde/divyde/internal/adapter/http/dto"
	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/infrastructure/auth"
	"github.com/divyde/divyde/internal/usecase"
)

type userServiceStub struct {
	registerFn func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	authFn     func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

func (s *userServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *userServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.authFn(ctx, input)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: input.Email, Name: input.Name}, nil
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "amy@example.com",
		Name:     "Amy",
		Password: "longenough1",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.ID != "u1" || resp.User.Email != "amy@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "amy@example.com",
		Name:     "Amy",
		Password: "longenough1",
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return &domain.User{ID: "u1", Email: input.Email, Name: "Amy"}, nil
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.LoginRequest{Email: "amy@example.com", Password: "longenough1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	}, testJWTManager())

	body, _ := json.Marshal(dto.LoginRequest{Email: "amy@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	handler := NewAuthHandler(&userServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
			t.Fatal("Register should not be called for invalid payload")
			return nil, nil
		},
	}, testJWTManager())

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{invalid"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
