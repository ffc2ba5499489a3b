package controllers

import (
	"errors"

	"hoot-api/dto"
	"hoot-api/internal/middleware"
	"hoot-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Svc *services.AuthService
}

func authError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "email already exists"})
	case errors.Is(err, services.ErrBadCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid email or password"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ve.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

// SignUp godoc
// @Summary      Register and get a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignUpReq  true  "Sign-up payload"
// @Success      201   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var body dto.SignUpReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.SignUp(ctx, body)
	if err != nil {
		return authError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SignIn godoc
// @Summary      Sign in and get a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SignInReq  true  "Sign-in payload"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var body dto.SignInReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.SignIn(ctx, body)
	if err != nil {
		return authError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Me godoc
// @Summary      Current principal's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserProfile
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
	}
	return c.Status(fiber.StatusOK).JSON(dto.ProfileOf(principal))
}
