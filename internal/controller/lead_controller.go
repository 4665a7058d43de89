package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/serverutils"
	"github.com/vinixspb/vnxChooseApple-bot/internal/service"
)

type ILeadController interface {
	RegisterRoutes(r fiber.Router)
	GetLeads(ctx *fiber.Ctx) error
}

type leadController struct {
	service service.ILeadService
}

func NewLeadController(service service.ILeadService) ILeadController {
	return &leadController{service: service}
}

func (c *leadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/leads")
	h.Get("/", c.GetLeads)
}

func (c *leadController) GetLeads(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	leads, total, err := c.service.GetLeads(ctx.Context(), limit, offset)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}

	return ctx.JSON(fiber.Map{
		"data":  leads,
		"total": total,
	})
}
