package service

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siports/event-service/internal/config"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:    "test-secret",
		TokenTTLDays: 1,
		BcryptCost:   4, // min cost keeps the suite fast
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(testAuthConfig(), users, dispatcher)

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    gofakeit.Email(),
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleVisitor, user.Role, "missing role defaults to visitor")
	assert.Equal(t, domain.ValidationPending, user.ValidationState)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventUserRegistered, published[0].Type)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, &recordingDispatcher{})

	email := gofakeit.Email()
	_, err := svc.Register(context.Background(), RegisterInput{Email: email, Password: "pw-one-two"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{Email: email, Password: "pw-one-two"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestAuthService_Register_MissingCredentials(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), &recordingDispatcher{})

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"empty payload", RegisterInput{}},
		{"blank email", RegisterInput{Email: "   ", Password: "pw-one-two"}},
		{"missing password", RegisterInput{Email: gofakeit.Email()}},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.input)
		require.Error(t, err, tc.name)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code, tc.name)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(testAuthConfig(), newFakeUserRepo(), &recordingDispatcher{})

	for _, role := range []domain.Role{domain.RoleAdmin, domain.Role("alien")} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    gofakeit.Email(),
			Password: "pw-one-two",
			Role:     role,
		})
		require.Error(t, err, "role %s", role)
		assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, &recordingDispatcher{})

	email := gofakeit.Email()
	user, err := svc.Register(context.Background(), RegisterInput{Email: email, Password: "pw-one-two"})
	require.NoError(t, err)

	// pending accounts cannot log in
	_, _, _, err = svc.Login(context.Background(), email, "pw-one-two")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	require.NoError(t, users.UpdateValidationState(context.Background(), user.ID, domain.ValidationValidated))

	logged, token, expiresAt, err := svc.Login(context.Background(), email, "pw-one-two")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, &recordingDispatcher{})

	email := gofakeit.Email()
	user, err := svc.Register(context.Background(), RegisterInput{Email: email, Password: "pw-one-two"})
	require.NoError(t, err)
	require.NoError(t, users.UpdateValidationState(context.Background(), user.ID, domain.ValidationValidated))

	// wrong password and unknown email are indistinguishable
	_, _, _, wrongPass := svc.Login(context.Background(), email, "other-pass")
	_, _, _, unknownEmail := svc.Login(context.Background(), "nobody@example.com", "pw-one-two")

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(wrongPass).Code)
	assert.Equal(t, apperrors.ToDomainError(wrongPass).Message, apperrors.ToDomainError(unknownEmail).Message)
}

func TestAuthService_SeedAccounts_Idempotent(t *testing.T) {
	t.Parallel()

	users := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), users, &recordingDispatcher{})

	require.NoError(t, svc.SeedAccounts(context.Background(), testLogger()))
	admin, err := users.GetByEmail(context.Background(), "admin@siportevent.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, admin.Role)
	assert.Equal(t, domain.ValidationValidated, admin.ValidationState)

	// running twice must not duplicate or reset accounts
	require.NoError(t, svc.SeedAccounts(context.Background(), testLogger()))
	counts, err := users.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Total)
}
