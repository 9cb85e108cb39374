package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/repository"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// In-memory repository fakes backing the service tests. They mirror the
// Postgres implementations' contract, including pgx.ErrNoRows on misses.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) UpdateValidationState(_ context.Context, id string, state domain.ValidationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.ValidationState = state
	return nil
}

func (r *fakeUserRepo) UpdateVisitorPackage(_ context.Context, id, tierName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.VisitorPackage = &tierName
	return nil
}

func (r *fakeUserRepo) UpdatePartnershipPackage(_ context.Context, id, tierName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PartnershipPackage = &tierName
	return nil
}

func (r *fakeUserRepo) ListPending(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.ValidationState == domain.ValidationPending {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) ListValidated(_ context.Context, excludeID string, roles []domain.Role, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0)
	for _, user := range r.users {
		if user.ID == excludeID || user.ValidationState != domain.ValidationValidated {
			continue
		}
		if len(roles) > 0 && !roleIn(user.Role, roles) {
			continue
		}
		out = append(out, *user)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Counts(_ context.Context) (*repository.UserCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	counts := &repository.UserCounts{}
	for _, user := range r.users {
		counts.Total++
		switch user.Role {
		case domain.RoleVisitor:
			counts.Visitors++
		case domain.RoleExhibitor:
			counts.Exhibitors++
		case domain.RolePartner:
			counts.Partners++
		}
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

func roleIn(role domain.Role, roles []domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

type fakeStatusRepo struct {
	mu     sync.Mutex
	checks []domain.StatusCheck
	err    error
}

func (r *fakeStatusRepo) Create(_ context.Context, check *domain.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.checks = append(r.checks, *check)
	return nil
}

func (r *fakeStatusRepo) List(_ context.Context) ([]domain.StatusCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return append([]domain.StatusCheck{}, r.checks...), nil
}

type fakePackageRepo struct {
	packages []domain.Package
}

func (r *fakePackageRepo) ListByAudience(_ context.Context, audience domain.PackageAudience) ([]domain.Package, error) {
	out := make([]domain.Package, 0)
	for _, pkg := range r.packages {
		if pkg.Audience == audience {
			out = append(out, pkg)
		}
	}
	return out, nil
}

func (r *fakePackageRepo) GetByTier(_ context.Context, audience domain.PackageAudience, tierName string) (*domain.Package, error) {
	for _, pkg := range r.packages {
		if pkg.Audience == audience && pkg.TierName == tierName {
			clone := pkg
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeChatRepo struct {
	mu       sync.Mutex
	messages []domain.ChatMessage
	err      error
}

func (r *fakeChatRepo) Append(_ context.Context, msg *domain.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeChatRepo) ListBySession(_ context.Context, sessionID string) ([]domain.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ChatMessage, 0)
	for _, msg := range r.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
}

func (r *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) ListConversation(_ context.Context, userID, contactID string) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Message, 0)
	for _, msg := range r.messages {
		if (msg.SenderID == userID && msg.RecipientID == contactID) ||
			(msg.SenderID == contactID && msg.RecipientID == userID) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListConversations(_ context.Context, userID string) ([]domain.Conversation, error) {
	return nil, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, senderID, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.messages {
		if r.messages[i].SenderID == senderID && r.messages[i].RecipientID == recipientID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) UnreadCount(_ context.Context, recipientID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, msg := range r.messages {
		if msg.RecipientID == recipientID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.MatchProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.MatchProfile)}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.MatchProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.MatchProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *profile
	return &clone, nil
}

type fakeInteractionRepo struct {
	mu           sync.Mutex
	interactions []domain.Interaction
}

func (r *fakeInteractionRepo) Create(_ context.Context, interaction *domain.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, *interaction)
	return nil
}

func (r *fakeInteractionRepo) SuccessfulTargets(_ context.Context, userID string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int)
	for _, interaction := range r.interactions {
		if interaction.UserID == userID && interaction.Success > 0 {
			out[interaction.TargetUserID]++
		}
	}
	return out, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
