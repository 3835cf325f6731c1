package inventory

import (
	"errors"
	"log"

	"queseria-backend/internal/barcode"
	"queseria-backend/internal/cutplan"
	"queseria-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// traducirError convierte los errores tipados del núcleo en respuestas
// HTTP. Los errores de codec y de validación de corte son del usuario;
// un invariante roto es un defecto interno y jamás se persiste.
func traducirError(err error) error {
	if err == nil {
		return nil
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr
	}

	switch {
	case errors.Is(err, barcode.ErrFormatoCodigo),
		errors.Is(err, barcode.ErrPesoCodigoInvalido),
		errors.Is(err, ledger.ErrPesoInicialInvalido),
		errors.Is(err, ledger.ErrPesoCorteInvalido):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var desconocido *barcode.ProductoDesconocidoError
	if errors.As(err, &desconocido) {
		return fiber.NewError(fiber.StatusBadRequest, desconocido.Error())
	}

	var excedido *ledger.CorteExcedidoError
	if errors.As(err, &excedido) {
		return fiber.NewError(fiber.StatusBadRequest, excedido.Error())
	}

	var excede *cutplan.ExcedeDisponibleError
	if errors.As(err, &excede) {
		return fiber.NewError(fiber.StatusBadRequest, excede.Error())
	}

	var roto *ledger.InvarianteRotaError
	if errors.As(err, &roto) {
		log.Printf("[ERROR] %v", roto)
		return fiber.NewError(fiber.StatusInternalServerError, "Error interno de consistencia, la operación fue descartada")
	}

	return fiber.NewError(fiber.StatusInternalServerError, "Error inesperado")
}
