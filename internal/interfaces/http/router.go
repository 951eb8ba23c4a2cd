package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-close-by-tax/internal/application/posclose"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PrepareMove *posclose.PrepareMoveUseCase
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	pos := protected.Group("/pos")
	posHandler := NewPOSCloseHandler(deps.PrepareMove)
	pos.Post("/move-lines/group-by-tax", posHandler.GroupByTax)
}
