package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/dto"
	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	Inline      fulfillment.Workflow
	Procedure   fulfillment.Workflow
	Lines       LineQuery
	Logger      *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.ServiceName})
	})

	api := app.Group("/api")

	// Despacho de órdenes
	warehouse := api.Group("/warehouse")
	h := NewFulfillmentHandler(deps.Inline, deps.Procedure, deps.Lines, deps.Logger)
	warehouse.Post("/", h.Fulfill)
	warehouse.Post("/procedure", h.FulfillProcedure)
	warehouse.Get("/:id", h.GetLine)
	warehouse.Get("/:id/receipt", h.Receipt)
}
