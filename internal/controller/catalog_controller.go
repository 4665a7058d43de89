package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/pkg/serverutils"
	"github.com/vinixspb/vnxChooseApple-bot/internal/service"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router, adminMiddleware fiber.Handler)
	GetSources(ctx *fiber.Ctx) error
	GetRecords(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
	schema  catalog.Schema
}

func NewCatalogController(service service.ICatalogService, schema catalog.Schema) ICatalogController {
	return &catalogController{service: service, schema: schema}
}

func (c *catalogController) RegisterRoutes(r fiber.Router, adminMiddleware fiber.Handler) {
	h := r.Group("/catalog")
	h.Get("/sources", c.GetSources)
	h.Get("/:source/records", c.GetRecords)

	admin := r.Group("/admin/catalog", adminMiddleware)
	admin.Post("/refresh", c.Refresh)
}

func (c *catalogController) GetSources(ctx *fiber.Ctx) error {
	return ctx.JSON(dto.CatalogSourcesResponse{
		Sources: c.service.Sources(),
		Schema:  []string(c.schema),
	})
}

func (c *catalogController) GetRecords(ctx *fiber.Ctx) error {
	source := ctx.Params("source")

	records, err := c.service.Load(ctx.Context(), source)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "catalog temporarily unavailable, try again"))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	out := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]string(rec))
	}
	return ctx.JSON(dto.CatalogRecordsResponse{
		Source:  source,
		Count:   len(out),
		Records: out,
	})
}

func (c *catalogController) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshCatalogRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid request body"))
	}
	if req.Source == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "source is required"))
	}

	records, err := c.service.Refresh(ctx.Context(), req.Source)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse(503, "catalog source unreachable"))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(dto.RefreshCatalogResponse{
		Source: req.Source,
		Count:  len(records),
	})
}
