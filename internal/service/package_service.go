package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/events"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// PackageService serves the seeded catalog and assigns tiers to accounts.
type PackageService struct {
	packages   repository.PackageRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewPackageService builds the service.
func NewPackageService(packages repository.PackageRepository, users repository.UserRepository, dispatcher events.Dispatcher) *PackageService {
	return &PackageService{packages: packages, users: users, dispatcher: dispatcher}
}

// Catalog returns the seeded catalog for one audience.
func (s *PackageService) Catalog(ctx context.Context, audience domain.PackageAudience) ([]domain.Package, error) {
	packages, err := s.packages.ListByAudience(ctx, audience)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return packages, nil
}

// AssignTier sets the user's package for the given audience. Assignment is a
// pure lookup against the catalog; an unknown tier name fails.
func (s *PackageService) AssignTier(ctx context.Context, userID string, audience domain.PackageAudience, tierName string) (*domain.Package, error) {
	pkg, err := s.packages.GetByTier(ctx, audience, tierName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnknownPackageTier(tierName)
		}
		return nil, apperrors.MapError(err)
	}

	switch audience {
	case domain.AudienceVisitor:
		err = s.users.UpdateVisitorPackage(ctx, userID, pkg.TierName)
	case domain.AudiencePartner:
		err = s.users.UpdatePartnershipPackage(ctx, userID, pkg.TierName)
	default:
		return nil, apperrors.NewValidationError("invalid audience", map[string]any{"audience": string(audience)})
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventPackageAssigned,
			UserID:    userID,
			Timestamp: time.Now(),
			Payload: events.PackageAssignedPayload{
				Audience: audience,
				TierName: pkg.TierName,
			},
		})
	}
	return pkg, nil
}
