package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/siports/event-service/internal/api/http/handlers"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/chatbot"
	"github.com/siports/event-service/internal/config"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/observability"
	"github.com/siports/event-service/internal/repository"
	"github.com/siports/event-service/internal/service"
)

// memUserRepo is a map-backed stand-in for the Postgres user repository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = gofakeit.UUID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateValidationState(_ context.Context, id string, state domain.ValidationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ValidationState = state
	return nil
}

func (r *memUserRepo) UpdateVisitorPackage(_ context.Context, id, tierName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.VisitorPackage = &tierName
	return nil
}

func (r *memUserRepo) UpdatePartnershipPackage(_ context.Context, id, tierName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PartnershipPackage = &tierName
	return nil
}

func (r *memUserRepo) ListPending(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.ValidationState == domain.ValidationPending {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) ListValidated(_ context.Context, excludeID string, roles []domain.Role, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.ID != excludeID && user.ValidationState == domain.ValidationValidated {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *memUserRepo) Counts(_ context.Context) (*repository.UserCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := &repository.UserCounts{}
	for _, user := range r.users {
		counts.Total++
		switch user.ValidationState {
		case domain.ValidationPending:
			counts.Pending++
		case domain.ValidationValidated:
			counts.Validated++
		case domain.ValidationRejected:
			counts.Rejected++
		}
	}
	return counts, nil
}

type memStatusRepo struct {
	mu     sync.Mutex
	checks []domain.StatusCheck
}

func (r *memStatusRepo) Create(_ context.Context, check *domain.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, *check)
	return nil
}

func (r *memStatusRepo) List(_ context.Context) ([]domain.StatusCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.StatusCheck{}, r.checks...), nil
}

type memChatRepo struct {
	mu   sync.Mutex
	rows []domain.ChatMessage
}

func (r *memChatRepo) Append(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *msg)
	return nil
}

func (r *memChatRepo) ListBySession(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ChatMessage, 0)
	for _, row := range r.rows {
		if row.SessionID == sessionID {
			out = append(out, row)
		}
	}
	return out, nil
}

type testEnv struct {
	app   *fiber.App
	users *memUserRepo
	auth  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUserRepo()
	dispatcher := events.NewInMemoryDispatcher()
	authCfg := config.AuthConfig{JWTSecret: "test-secret", TokenTTLDays: 1, BcryptCost: 4}

	authService := service.NewAuthService(authCfg, users, dispatcher)
	adminService := service.NewAdminService(users, dispatcher, nil, time.Second)
	statusService := service.NewStatusService(&memStatusRepo{})
	chatService := service.NewChatService(chatbot.NewRuleset(), &memChatRepo{}, nil, time.Minute, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second, nil)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("siports-event-service", "2.0.0", nil, chatService, time.Second),
		Status:         handlers.NewStatusHandler(statusService),
		Auth:           handlers.NewAuthHandler(authService),
		Admin:          handlers.NewAdminHandler(adminService),
		Packages:       handlers.NewPackageHandler(service.NewPackageService(&memPackageRepo{}, users, dispatcher)),
		Chat:           handlers.NewChatHandler(chatService),
		Messages:       handlers.NewMessageHandler(service.NewMessageService(&memMessageRepo{}, users, dispatcher)),
		Matching:       handlers.NewMatchHandler(service.NewMatchService(&memProfileRepo{}, &memInteractionRepo{}, users)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})

	return &testEnv{app: app, users: users, auth: authService}
}

type memPackageRepo struct{}

func (r *memPackageRepo) ListByAudience(_ context.Context, audience domain.PackageAudience) ([]domain.Package, error) {
	if audience == domain.AudienceVisitor {
		return []domain.Package{
			{ID: 1, TierName: "Free Pass", Audience: audience, Currency: "EUR"},
			{ID: 2, TierName: "Premium Pass", Audience: audience, Price: 350, Currency: "EUR", Popular: true},
		}, nil
	}
	return []domain.Package{
		{ID: 3, TierName: "Gold Package", Audience: audience, Price: 15000, Currency: "USD"},
	}, nil
}

func (r *memPackageRepo) GetByTier(_ context.Context, audience domain.PackageAudience, tierName string) (*domain.Package, error) {
	packages, _ := r.ListByAudience(context.Background(), audience)
	for _, pkg := range packages {
		if pkg.TierName == tierName {
			clone := pkg
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memMessageRepo struct{}

func (r *memMessageRepo) Create(context.Context, *domain.Message) error { return nil }
func (r *memMessageRepo) ListConversation(context.Context, string, string) ([]domain.Message, error) {
	return nil, nil
}
func (r *memMessageRepo) ListConversations(context.Context, string) ([]domain.Conversation, error) {
	return nil, nil
}
func (r *memMessageRepo) MarkRead(context.Context, string, string) error { return nil }
func (r *memMessageRepo) UnreadCount(context.Context, string) (int, error) {
	return 0, nil
}

type memProfileRepo struct{}

func (r *memProfileRepo) Upsert(context.Context, *domain.MatchProfile) error { return nil }
func (r *memProfileRepo) GetByUserID(context.Context, string) (*domain.MatchProfile, error) {
	return nil, pgx.ErrNoRows
}

type memInteractionRepo struct{}

func (r *memInteractionRepo) Create(context.Context, *domain.Interaction) error { return nil }
func (r *memInteractionRepo) SuccessfulTargets(context.Context, string) (map[string]int, error) {
	return map[string]int{}, nil
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestRoot(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp, body := doJSON(t, env.app, fiber.MethodGet, "/api/", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "2.0.0", body["version"])
}

func TestStatusEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/status", map[string]string{"client_name": "monitor-1"}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "monitor-1", body["client_name"])
	assert.NotEmpty(t, body["id"])

	req := httptest.NewRequest(fiber.MethodGet, "/api/status", nil)
	listResp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "monitor-1", list[0]["client_name"])
}

func TestStatusValidationError(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/status", map[string]string{"client_name": "  "}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "errors use the envelope shape")
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.NotEmpty(t, errObj["message"])
}

func TestChatEndpoint(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/chat", map[string]string{
		"message": "Quel est le prix VIP ?",
		"context": "package",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body["response"], "VIP Pass")
	assert.Equal(t, "package", body["context"])
	assert.NotEmpty(t, body["session_id"])
}

func TestChatScopedRoute(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/chat/package", map[string]string{
		"message": "prix vip",
	}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "package", body["context"])
	assert.Contains(t, body["response"], "VIP Pass")
}

func TestChatbotHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodGet, "/api/chatbot/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	email := gofakeit.Email()

	// register
	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/auth/register", map[string]string{
		"email":     email,
		"password":  "pw-one-two",
		"user_type": "exhibitor",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "pending", user["validation_state"])
	userID := user["id"].(string)

	// pending accounts cannot log in yet
	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "pw-one-two",
	}, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	require.NoError(t, env.users.UpdateValidationState(context.Background(), userID, domain.ValidationValidated))

	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "pw-one-two",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "bearer", body["token_type"])

	// verify with the issued token
	resp, body = doJSON(t, env.app, fiber.MethodGet, "/api/auth/verify", nil, bearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, email, body["user"].(map[string]any)["email"])
}

func TestRegisterMissingCredentials(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/auth/register", map[string]string{}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])

	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/auth/register", map[string]string{
		"email": gofakeit.Email(),
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", body["error"].(map[string]any)["code"])
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	resp, body := doJSON(t, env.app, fiber.MethodGet, "/api/auth/verify", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]any)["code"])

	resp, _ = doJSON(t, env.app, fiber.MethodGet, "/api/messages/conversations", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// seed an admin and a validated visitor directly
	_, adminToken := seedLoggedIn(t, env, domain.RoleAdmin)
	_, visitorToken := seedLoggedIn(t, env, domain.RoleVisitor)

	// a pending registration to act on
	resp, body := doJSON(t, env.app, fiber.MethodPost, "/api/auth/register", map[string]string{
		"email": gofakeit.Email(), "password": "pw-one-two",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pendingID := body["user"].(map[string]any)["id"].(string)

	// visitors cannot reach admin routes
	resp, body = doJSON(t, env.app, fiber.MethodGet, "/api/admin/users/pending", nil, bearer(visitorToken))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"])

	// admins see the pending list
	resp, body = doJSON(t, env.app, fiber.MethodGet, "/api/admin/users/pending", nil, bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending := body["users"].([]any)
	require.Len(t, pending, 1)

	// validate then re-validate: the second call conflicts
	resp, _ = doJSON(t, env.app, fiber.MethodPost, "/api/admin/users/"+pendingID+"/validate", nil, bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/admin/users/"+pendingID+"/validate", nil, bearer(adminToken))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE_TRANSITION", body["error"].(map[string]any)["code"])

	// stats reflect the accounts created above
	resp, body = doJSON(t, env.app, fiber.MethodGet, "/api/admin/dashboard/stats", nil, bearer(adminToken))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["validated"])
}

func TestPackageRoutes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, token := seedLoggedIn(t, env, domain.RoleVisitor)

	resp, body := doJSON(t, env.app, fiber.MethodGet, "/api/visitor-packages", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	packages := body["packages"].([]any)
	require.Len(t, packages, 2)
	first := packages[0].(map[string]any)
	assert.Equal(t, "Free Pass", first["name"])

	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/visitor-packages/update", map[string]string{
		"package_type": "Premium Pass",
	}, bearer(token))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Premium Pass", body["package"].(map[string]any)["name"])

	resp, body = doJSON(t, env.app, fiber.MethodPost, "/api/visitor-packages/update", map[string]string{
		"package_type": "Diamond Pass",
	}, bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_PACKAGE_TIER", body["error"].(map[string]any)["code"])
}

func TestMatchingProfileOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	owner, ownerToken := seedLoggedIn(t, env, domain.RoleExhibitor)
	_, otherToken := seedLoggedIn(t, env, domain.RoleVisitor)
	_, adminToken := seedLoggedIn(t, env, domain.RoleAdmin)

	for _, path := range []string{
		"/api/matching/profile/" + owner.ID,
		"/api/matching/recommendations/" + owner.ID,
	} {
		// only the owner and admins may read per-user matching data
		resp, body := doJSON(t, env.app, fiber.MethodGet, path, nil, bearer(otherToken))
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Equal(t, "FORBIDDEN", body["error"].(map[string]any)["code"], path)

		resp, _ = doJSON(t, env.app, fiber.MethodGet, path, nil, bearer(ownerToken))
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)

		resp, _ = doJSON(t, env.app, fiber.MethodGet, path, nil, bearer(adminToken))
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

// seedLoggedIn creates a validated account and returns it with a live token.
func seedLoggedIn(t *testing.T, env *testEnv, role domain.Role) (*domain.User, string) {
	t.Helper()

	email := fmt.Sprintf("%s_%s", role, gofakeit.Email())
	hashed := mustHash(t, "pw-one-two")
	user := &domain.User{
		Email:           email,
		PasswordHash:    hashed,
		Role:            role,
		ValidationState: domain.ValidationValidated,
	}
	require.NoError(t, env.users.Create(context.Background(), user))

	token, _, err := env.auth.TokenManager().Issue(user)
	require.NoError(t, err)
	return user, token
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	return hash
}
