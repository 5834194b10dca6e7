package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/divyde/divyde/internal/domain"
	"github.com/divyde/divyde/internal/infrastructure/metrics"
)

// UserUseCase handles account registration and authentication.
type UserUseCase struct {
	userRepo UserRepository
	idGen    IDGenerator
	clock    Clock
	metrics  *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, idGen IDGenerator, clock Clock) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		idGen:    idGen,
		clock:    clock,
	}
}

// WithMetrics attaches auth metrics. Absent metrics are a no-op.
func (uc *UserUseCase) WithMetrics(m *metrics.Metrics) *UserUseCase {
	uc.metrics = m
	return uc
}

func (uc *UserUseCase) countAuth(status, reason string) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	if reason != "" {
		uc.metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new account with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          email,
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}

// AuthenticateInput represents login credentials.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the user on success.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		uc.countAuth("failure", "unknown_email")
		return nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		uc.countAuth("failure", "bad_password")
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""
	uc.countAuth("success", "")

	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""

	return user, nil
}
