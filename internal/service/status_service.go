package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/repository"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// StatusService creates and lists status-check records.
type StatusService struct {
	checks repository.StatusRepository
}

// NewStatusService builds the service.
func NewStatusService(checks repository.StatusRepository) *StatusService {
	return &StatusService{checks: checks}
}

// Create validates and stores a new status check. The id and timestamp are
// assigned server-side; ids come from a collision-resistant generator so
// concurrent calls never couple.
func (s *StatusService) Create(ctx context.Context, clientName string) (*domain.StatusCheck, error) {
	if strings.TrimSpace(clientName) == "" {
		return nil, apperrors.NewValidationError("client_name is required", map[string]any{"field": "client_name"})
	}

	check := &domain.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return check, nil
}

// List returns all status checks in insertion order.
func (s *StatusService) List(ctx context.Context) ([]domain.StatusCheck, error) {
	checks, err := s.checks.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return checks, nil
}
