package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/config"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// RegisterInput carries the registration payload.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Role      domain.Role
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     auth.TokenIssuer
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account in the pending validation state.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" {
		return nil, apperrors.NewValidationError("email is required", map[string]any{"field": "email"})
	}
	if input.Password == "" {
		return nil, apperrors.NewValidationError("password is required", map[string]any{"field": "password"})
	}
	if input.Role == "" {
		input.Role = domain.RoleVisitor
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(input.Role)})
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Email:           input.Email,
		PasswordHash:    hash,
		Role:            input.Role,
		ValidationState: domain.ValidationPending,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Company:         input.Company,
		Phone:           input.Phone,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Email: user.Email,
			Role:  user.Role,
		},
	})
	return user, nil
}

// Login authenticates an account and issues a session token. Wrong email and
// wrong password produce the same error so callers cannot tell which it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.ValidationState != domain.ValidationValidated {
		return nil, "", time.Time{}, apperrors.NewForbidden("account pending validation")
	}

	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token issuer for middleware usage.
func (s *AuthService) TokenManager() auth.TokenIssuer {
	return s.tokens
}

// SeedAccounts creates the admin and sample accounts when missing, so a
// fresh database is immediately usable.
func (s *AuthService) SeedAccounts(ctx context.Context, logger *zap.Logger) error {
	premium := "Premium Pass"
	gold := "Gold Package"

	seeds := []struct {
		user     domain.User
		password string
	}{
		{
			user: domain.User{
				Email:           "admin@siportevent.com",
				Role:            domain.RoleAdmin,
				ValidationState: domain.ValidationValidated,
				FirstName:       "Admin",
				LastName:        "SIPORTS",
			},
			password: "admin123",
		},
		{
			user: domain.User{
				Email:           "visitor@example.com",
				Role:            domain.RoleVisitor,
				ValidationState: domain.ValidationValidated,
				FirstName:       "Marie",
				LastName:        "Dupont",
				Company:         "Port Autonome Marseille",
				VisitorPackage:  &premium,
			},
			password: "visitor123",
		},
		{
			user: domain.User{
				Email:              "exposant@example.com",
				Role:               domain.RoleExhibitor,
				ValidationState:    domain.ValidationValidated,
				FirstName:          "Jean",
				LastName:           "Martin",
				Company:            "Maritime Solutions Ltd",
				PartnershipPackage: &gold,
			},
			password: "exhibitor123",
		},
	}

	for _, seed := range seeds {
		if _, err := s.users.GetByEmail(ctx, seed.user.Email); err == nil {
			continue
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword(seed.password, s.bcryptCost)
		if err != nil {
			return err
		}
		user := seed.user
		user.PasswordHash = hash
		if err := s.users.Create(ctx, &user); err != nil {
			return err
		}
		logger.Info("seeded account", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
