package controllers

import (
	"context"
	"errors"
	"time"

	"hoot-api/dto"
	"hoot-api/internal/middleware"
	"hoot-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type HootHandler struct {
	Svc *services.HootService
}

const requestTimeout = 5 * time.Second

func requestCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), requestTimeout)
}

// serviceError maps service failures onto the error envelope. Forbidden and
// not-found get their own statuses instead of collapsing into a 500.
func serviceError(c *fiber.Ctx, err error) error {
	var ve validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrHootNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "hoot not found"})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "you are not allowed to do this"})
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: ve.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

// Create godoc
// @Summary      Create a hoot
// @Tags         hoots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateHootReq  true  "Hoot payload"
// @Success      201   {object}  dto.HootResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /hoots [post]
func (h *HootHandler) Create(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
	}

	var body dto.CreateHootReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.Create(ctx, principal, body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      List hoots, newest first
// @Tags         hoots
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.HootResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /hoots [get]
func (h *HootHandler) List(c *fiber.Ctx) error {
	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.List(ctx)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Get godoc
// @Summary      Get one hoot
// @Tags         hoots
// @Produce      json
// @Security     BearerAuth
// @Param        hootId  path      string  true  "Hoot ID (hex)"
// @Success      200     {object}  dto.HootResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /hoots/{hootId} [get]
func (h *HootHandler) Get(c *fiber.Ctx) error {
	id, err := bson.ObjectIDFromHex(c.Params("hootId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid hoot id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.Get(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Update godoc
// @Summary      Update a hoot (owner only)
// @Tags         hoots
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        hootId  path      string             true  "Hoot ID (hex)"
// @Param        body    body      dto.UpdateHootReq  true  "Fields to update"
// @Success      200     {object}  dto.HootResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /hoots/{hootId} [put]
func (h *HootHandler) Update(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("hootId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid hoot id"})
	}

	var body dto.UpdateHootReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.Update(ctx, principal, id, body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// Delete godoc
// @Summary      Delete a hoot (owner only)
// @Tags         hoots
// @Produce      json
// @Security     BearerAuth
// @Param        hootId  path      string  true  "Hoot ID (hex)"
// @Success      200     {object}  dto.HootResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /hoots/{hootId} [delete]
func (h *HootHandler) Delete(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("hootId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid hoot id"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.Delete(ctx, principal, id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// AddComment godoc
// @Summary      Comment on a hoot
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        hootId  path      string                true  "Hoot ID (hex)"
// @Param        body    body      dto.CreateCommentReq  true  "Comment payload"
// @Success      201     {object}  dto.CommentResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /hoots/{hootId}/comments [post]
func (h *HootHandler) AddComment(c *fiber.Ctx) error {
	principal, err := middleware.PrincipalFrom(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthenticated"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("hootId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid hoot id"})
	}

	var body dto.CreateCommentReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid body"})
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	resp, err := h.Svc.AddComment(ctx, principal, id, body)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
