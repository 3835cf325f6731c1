package main

import (
	"log"
	"strings"

	"queseria-backend/internal/audit"
	"queseria-backend/internal/cache"
	"queseria-backend/internal/catalog"
	"queseria-backend/internal/config"
	"queseria-backend/internal/database"
	"queseria-backend/internal/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)
	cache.Init(cfg.RedisAddr)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,OPTIONS",
	}))

	api := app.Group("/api")

	// Catálogos (propiedad del sistema externo, acá solo la superficie)
	api.Get("/tipos-queso", catalog.ListTiposQuesoHandler())
	api.Post("/tipos-queso", catalog.CreateTipoQuesoHandler())
	api.Get("/productos", catalog.ListProductosHandler())
	api.Post("/productos", catalog.CreateProductoHandler())

	// Decodificación de escaneos
	api.Post("/barcodes/decode", inventory.DecodificarBarcodeHandler())

	// Unidades: ingreso, inventario, historial, edición y cortes
	api.Post("/unidades", inventory.CreateUnidadHandler())
	api.Get("/unidades", inventory.ListUnidadesHandler())
	api.Get("/unidades/historial", inventory.HistorialHandler())
	api.Get("/unidades/historial/export", inventory.ExportHistorialHandler())
	api.Put("/unidades/:id", inventory.UpdateUnidadHandler())
	api.Post("/unidades/:id/particiones", inventory.CortarUnidadHandler())

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Servidor corriendo en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
