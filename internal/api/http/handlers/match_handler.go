package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// MatchHandler serves the matchmaking endpoints.
type MatchHandler struct {
	matching *service.MatchService
}

func NewMatchHandler(matching *service.MatchService) *MatchHandler {
	return &MatchHandler{matching: matching}
}

// requireOwnerOrAdmin restricts per-user resources to their owner, with an
// admin override.
func requireOwnerOrAdmin(c *fiber.Ctx, userID string) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.User.ID != userID && principal.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("access restricted to the profile owner")
	}
	return nil
}

// Find handles POST /api/matching/find.
func (h *MatchHandler) Find(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MatchFindRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	roles := make([]domain.Role, 0, len(req.MatchTypes))
	for _, t := range req.MatchTypes {
		role := domain.Role(t)
		if !domain.ValidRole(role) {
			return apperrors.NewValidationError("unknown match type", map[string]any{"match_type": t})
		}
		roles = append(roles, role)
	}

	results, err := h.matching.FindMatches(c.Context(), service.MatchQuery{
		UserID:           principal.User.ID,
		Roles:            roles,
		MinCompatibility: req.MinCompatibility,
		Limit:            req.Limit,
	})
	if err != nil {
		return err
	}

	views := make([]dto.MatchResultView, 0, len(results))
	for i := range results {
		views = append(views, matchResultView(&results[i]))
	}
	return c.JSON(fiber.Map{
		"matches":      views,
		"total_found":  len(views),
		"generated_at": time.Now().UTC(),
	})
}

// Recommendations handles GET /api/matching/recommendations/:userID.
func (h *MatchHandler) Recommendations(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if err := requireOwnerOrAdmin(c, userID); err != nil {
		return err
	}

	recommendations, err := h.matching.Recommendations(c.Context(), userID)
	if err != nil {
		return err
	}

	views := make([]dto.RecommendationView, 0, len(recommendations))
	for i := range recommendations {
		views = append(views, recommendationView(&recommendations[i]))
	}
	return c.JSON(fiber.Map{"recommendations": views})
}

// UpdateProfile handles POST /api/matching/profile for the calling account.
func (h *MatchHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.MatchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	profile := &domain.MatchProfile{
		UserID:                  principal.User.ID,
		SectorsActivity:         req.SectorsActivity,
		ProductsServices:        req.ProductsServices,
		ParticipationObjectives: req.ParticipationObjectives,
		InterestThemes:          req.InterestThemes,
		VisitObjectives:         req.VisitObjectives,
		SkillsExpertise:         req.SkillsExpertise,
		LookingFor:              req.LookingFor,
		BudgetRange:             req.BudgetRange,
		CompanySize:             req.CompanySize,
		GeographicLocation:      req.GeographicLocation,
		MeetingAvailability:     req.MeetingAvailability,
		Languages:               req.Languages,
		Certifications:          req.Certifications,
	}
	if err := h.matching.UpdateProfile(c.Context(), profile); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "profile updated"})
}

// Profile handles GET /api/matching/profile/:userID.
func (h *MatchHandler) Profile(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if err := requireOwnerOrAdmin(c, userID); err != nil {
		return err
	}

	profile, err := h.matching.Profile(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user_id":                  profile.UserID,
		"sectors_activity":         profile.SectorsActivity,
		"products_services":        profile.ProductsServices,
		"participation_objectives": profile.ParticipationObjectives,
		"interest_themes":          profile.InterestThemes,
		"visit_objectives":         profile.VisitObjectives,
		"skills_expertise":         profile.SkillsExpertise,
		"looking_for":              profile.LookingFor,
		"budget_range":             profile.BudgetRange,
		"company_size":             profile.CompanySize,
		"geographic_location":      profile.GeographicLocation,
		"meeting_availability":     profile.MeetingAvailability,
		"languages":                profile.Languages,
		"certifications":           profile.Certifications,
		"updated_at":               profile.UpdatedAt,
	})
}

// Feedback handles POST /api/matching/feedback.
func (h *MatchHandler) Feedback(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	if err := h.matching.RecordFeedback(c.Context(), principal.User.ID, req.TargetUserID, req.InteractionType, req.Success); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "feedback recorded"})
}
