package catalog

import (
	"strings"

	"queseria-backend/internal/database"
	"queseria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateTipoQuesoRequest struct {
	Nombre string `json:"nombre"`
}

// GET /api/tipos-queso
func ListTiposQuesoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var tipos []models.TipoQueso
		if err := database.DB.Order("nombre asc").Find(&tipos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los tipos de queso")
		}
		return c.JSON(tipos)
	}
}

// POST /api/tipos-queso
func CreateTipoQuesoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTipoQuesoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		nombre := strings.ToLower(strings.TrimSpace(body.Nombre))
		if nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es obligatorio")
		}

		var existente models.TipoQueso
		if err := database.DB.Where("nombre = ?", nombre).First(&existente).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ese tipo de queso ya existe")
		}

		tipo := models.TipoQueso{Nombre: nombre}
		if err := database.DB.Create(&tipo).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el tipo de queso")
		}

		return c.Status(fiber.StatusCreated).JSON(tipo)
	}
}
