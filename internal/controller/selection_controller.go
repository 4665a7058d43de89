package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/serverutils"
	"github.com/vinixspb/vnxChooseApple-bot/internal/service"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

type ISelectionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Options(ctx *fiber.Ctx) error
	Choose(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type selectionController struct {
	service service.ISelectionService
}

func NewSelectionController(service service.ISelectionService) ISelectionController {
	return &selectionController{service: service}
}

func (c *selectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/selection")
	h.Post("/start", c.Start)
	h.Get("/options", c.Options)
	h.Post("/choose", c.Choose)
	h.Post("/reset", c.Reset)
}

func (c *selectionController) Start(ctx *fiber.Ctx) error {
	var req dto.StartSelectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if req.UserId == "" || req.Source == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id and source are required"))
	}

	res, err := c.service.Start(ctx.Context(), &req)
	if err != nil {
		return selectionError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *selectionController) Options(ctx *fiber.Ctx) error {
	userID := ctx.Query("user_id", "")
	if userID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id parameter is required"))
	}

	res, err := c.service.Options(ctx.Context(), userID)
	if err != nil {
		return selectionError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *selectionController) Choose(ctx *fiber.Ctx) error {
	var req dto.ChooseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if req.UserId == "" || req.Value == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id and value are required"))
	}

	res, err := c.service.Choose(ctx.Context(), &req)
	if errors.Is(err, catalog.ErrInvalidChoice) {
		// Stage unchanged; hand the same options back so the adapter can
		// re-render them.
		options, optErr := c.service.Options(ctx.Context(), req.UserId)
		if optErr != nil {
			return selectionError(ctx, optErr)
		}
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":   serverutils.ErrorResponse(422, "value is not among the available choices")["error"],
			"options": options,
		})
	}
	if err != nil {
		return selectionError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *selectionController) Reset(ctx *fiber.Ctx) error {
	var req dto.ResetRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if req.UserId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "user_id is required"))
	}

	if err := c.service.Reset(ctx.Context(), req.UserId); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// selectionError maps engine conditions onto transport responses. All of
// them are recoverable; none should read as a server crash to the adapter.
func selectionError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, catalog.ErrSourceUnavailable):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "catalog temporarily unavailable, try again"))
	case errors.Is(err, catalog.ErrNoSession):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "no active selection, start a new one"))
	case errors.Is(err, catalog.ErrNoOptions):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, "no options available, restart the selection"))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
