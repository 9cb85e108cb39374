package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/siports/event-service/internal/api/dto"
	"github.com/siports/event-service/internal/auth"
	"github.com/siports/event-service/internal/domain"
	"github.com/siports/event-service/internal/service"
	apperrors "github.com/siports/event-service/pkg/util/errorutil"
)

// AuthHandler serves registration, login and token verification.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register. New accounts always start
// pending and must be validated by an admin before login succeeds.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Phone:     req.Phone,
		Role:      domain.Role(req.UserType),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration received, account pending validation",
		"user":    userView(user),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        userView(user),
	})
}

// Verify handles GET /api/auth/verify. The auth middleware has already
// resolved the principal, so this just echoes the current account.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	return c.JSON(fiber.Map{
		"valid": true,
		"user":  userView(principal.User),
	})
}
