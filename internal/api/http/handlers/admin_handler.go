package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// AdminHandler serves the validation workflow and the dashboard.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListPending handles GET /api/admin/users/pending.
func (h *AdminHandler) ListPending(c *fiber.Ctx) error {
	users, err := h.admin.ListPending(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": userViews(users)})
}

// Validate handles POST /api/admin/users/:id/validate.
func (h *AdminHandler) Validate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.admin.Validate(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "user validated",
		"user":    userView(user),
	})
}

// Reject handles POST /api/admin/users/:id/reject.
func (h *AdminHandler) Reject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	user, err := h.admin.Reject(c.Context(), c.Params("id"), principal.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "user rejected",
		"user":    userView(user),
	})
}

// DashboardStats handles GET /api/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	counts, err := h.admin.DashboardStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"total_users":      counts.Total,
		"visitors":         counts.Visitors,
		"exhibitors":       counts.Exhibitors,
		"partners":         counts.Partners,
		"pending_accounts": counts.Pending,
		"validated":        counts.Validated,
		"rejected":         counts.Rejected,
	})
}
