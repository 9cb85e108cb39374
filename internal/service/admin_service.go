package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

const statsCacheKey = "admin:dashboard:stats"

// AdminService runs the admin-gated validation workflow.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	cache      *redis.Client
	statsTTL   time.Duration
}

// NewAdminService builds the service. The cache client may be nil, in which
// case dashboard stats are computed on every call.
func NewAdminService(users repository.UserRepository, dispatcher events.Dispatcher, cache *redis.Client, statsTTL time.Duration) *AdminService {
	return &AdminService{
		users:      users,
		dispatcher: dispatcher,
		cache:      cache,
		statsTTL:   statsTTL,
	}
}

// ListPending returns accounts awaiting validation, newest first.
func (s *AdminService) ListPending(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListPending(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Validate moves a pending account to the validated state.
func (s *AdminService) Validate(ctx context.Context, userID, adminID string) (*domain.User, error) {
	return s.transition(ctx, userID, adminID, domain.ValidationValidated, events.EventUserValidated)
}

// Reject moves a pending account to the rejected state.
func (s *AdminService) Reject(ctx context.Context, userID, adminID string) (*domain.User, error) {
	return s.transition(ctx, userID, adminID, domain.ValidationRejected, events.EventUserRejected)
}

// transition applies the one-way state rule: only pending accounts may move,
// and re-transitioning a terminal state is an explicit conflict, never a
// silent success.
func (s *AdminService) transition(ctx context.Context, userID, adminID string, target domain.ValidationState, eventType events.EventType) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if !user.ValidationState.CanTransition() {
		return nil, apperrors.NewInvalidStateTransition(
			"user is not in pending state",
			map[string]any{"id": userID, "state": string(user.ValidationState)},
		)
	}

	if err := s.users.UpdateValidationState(ctx, userID, target); err != nil {
		return nil, apperrors.MapError(err)
	}
	user.ValidationState = target

	s.invalidateStats(ctx)
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      eventType,
			UserID:    user.ID,
			Timestamp: time.Now(),
			Payload: events.ValidationChangedPayload{
				Email:    user.Email,
				NewState: target,
				AdminID:  adminID,
			},
		})
	}
	return user, nil
}

// DashboardStats returns account counters, cached briefly in redis.
func (s *AdminService) DashboardStats(ctx context.Context) (*repository.UserCounts, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var cached repository.UserCounts
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	counts, err := s.users.Counts(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(counts); err == nil {
			_ = s.cache.Set(ctx, statsCacheKey, raw, s.statsTTL).Err()
		}
	}
	return counts, nil
}

func (s *AdminService) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, statsCacheKey).Err()
	}
}
