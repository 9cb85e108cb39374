package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// StatusHandler serves the connectivity check endpoints.
type StatusHandler struct {
	status *service.StatusService
}

func NewStatusHandler(status *service.StatusService) *StatusHandler {
	return &StatusHandler{status: status}
}

// Create handles POST /api/status.
func (h *StatusHandler) Create(c *fiber.Ctx) error {
	var req dto.StatusCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	check, err := h.status.Create(c.Context(), req.ClientName)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(statusView(check))
}

// List handles GET /api/status. The response is a bare array, oldest first.
func (h *StatusHandler) List(c *fiber.Ctx) error {
	checks, err := h.status.List(c.Context())
	if err != nil {
		return err
	}

	views := make([]dto.StatusCheckView, 0, len(checks))
	for i := range checks {
		views = append(views, statusView(&checks[i]))
	}
	return c.JSON(views)
}

func statusView(s *domain.StatusCheck) dto.StatusCheckView {
	return dto.StatusCheckView{
		ID:         s.ID,
		ClientName: s.ClientName,
		Timestamp:  s.Timestamp,
	}
}
