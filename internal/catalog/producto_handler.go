package catalog

import (
	"encoding/json"
	"strings"

	"queseria-backend/internal/cache"
	"queseria-backend/internal/database"
	"queseria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const claveCacheProductos = "catalogo:productos"

type CreateProductoRequest struct {
	Nombre           string `json:"nombre"`
	PLU              string `json:"plu"`
	SeVendePorUnidad bool   `json:"seVendePorUnidad"`
	TipoQuesoID      uint   `json:"tipoQuesoId"`
}

// GET /api/productos
// Catálogo de lectura intensiva: se sirve desde Redis cuando hay caché.
func ListProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cached := cache.Get(c.Context(), claveCacheProductos); cached != "" {
			c.Set("Content-Type", "application/json")
			return c.SendString(cached)
		}

		var productos []models.Producto
		if err := database.DB.
			Preload("TipoQueso").
			Order("nombre asc").
			Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los productos")
		}

		if body, err := json.Marshal(productos); err == nil {
			cache.Set(c.Context(), claveCacheProductos, string(body))
		}

		return c.JSON(productos)
	}
}

// POST /api/productos
// Superficie del catálogo externo: alta de un producto con PLU único.
func CreateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.Nombre = strings.TrimSpace(body.Nombre)
		body.PLU = strings.TrimSpace(body.PLU)

		if body.Nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}
		if !esPLUValido(body.PLU) {
			return fiber.NewError(fiber.StatusBadRequest, "El PLU debe tener exactamente 5 dígitos")
		}
		if body.TipoQuesoID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "tipoQuesoId es obligatorio")
		}

		var tipo models.TipoQueso
		if err := database.DB.First(&tipo, "id = ?", body.TipoQuesoID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Tipo de queso no encontrado")
		}

		var existente models.Producto
		if err := database.DB.Where("plu = ?", body.PLU).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ese PLU ya está en uso")
		}

		p := models.Producto{
			Nombre:           body.Nombre,
			PLU:              body.PLU,
			SeVendePorUnidad: body.SeVendePorUnidad,
			TipoQuesoID:      body.TipoQuesoID,
			TipoQueso:        tipo,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el producto")
		}

		cache.Invalidate(c.Context(), claveCacheProductos)

		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func esPLUValido(plu string) bool {
	if len(plu) != 5 {
		return false
	}
	for _, r := range plu {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
