package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// PackageHandler serves the two package catalogs and tier assignment.
type PackageHandler struct {
	packages *service.PackageService
}

func NewPackageHandler(packages *service.PackageService) *PackageHandler {
	return &PackageHandler{packages: packages}
}

// VisitorCatalog handles GET /api/visitor-packages.
func (h *PackageHandler) VisitorCatalog(c *fiber.Ctx) error {
	return h.catalog(c, domain.AudienceVisitor)
}

// PartnershipCatalog handles GET /api/partnership-packages.
func (h *PackageHandler) PartnershipCatalog(c *fiber.Ctx) error {
	return h.catalog(c, domain.AudiencePartner)
}

func (h *PackageHandler) catalog(c *fiber.Ctx, audience domain.PackageAudience) error {
	packages, err := h.packages.Catalog(c.Context(), audience)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"packages": packageViews(packages)})
}

// UpdateVisitorPackage handles POST /api/visitor-packages/update.
func (h *PackageHandler) UpdateVisitorPackage(c *fiber.Ctx) error {
	return h.assign(c, domain.AudienceVisitor)
}

// UpdatePartnershipPackage handles POST /api/partnership-packages/update.
func (h *PackageHandler) UpdatePartnershipPackage(c *fiber.Ctx) error {
	return h.assign(c, domain.AudiencePartner)
}

func (h *PackageHandler) assign(c *fiber.Ctx, audience domain.PackageAudience) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PackageUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	pkg, err := h.packages.AssignTier(c.Context(), principal.User.ID, audience, req.PackageType)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "package updated",
		"package": packageView(pkg),
	})
}
