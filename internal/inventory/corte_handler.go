package inventory

import (
	"fmt"
	"strings"

	"queseria-backend/internal/audit"
	"queseria-backend/internal/catalog"
	"queseria-backend/internal/cutplan"
	"queseria-backend/internal/database"
	"queseria-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CortarUnidadRequest struct {
	// Modo peso directo
	Peso *int `json:"peso"`

	// Modo escaneo: código del queso que quedó después del corte
	CodigoBarras string `json:"codigoBarras"`

	// Egreso total de lo que queda
	Total bool `json:"total"`

	ObservacionesCorte *string `json:"observacionesCorte"`
}

// POST /api/unidades/:id/particiones
// Registra un corte. La unidad se lee con FOR UPDATE dentro de la
// transacción: validar y descontar es indivisible, dos cortes
// simultáneos sobre la misma horma se serializan acá.
func CortarUnidadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body CortarUnidadRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		modos := 0
		if body.Peso != nil {
			modos++
		}
		if strings.TrimSpace(body.CodigoBarras) != "" {
			modos++
		}
		if body.Total {
			modos++
		}
		if modos != 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Indicá un solo modo de corte: peso, código de barras o egreso total")
		}

		var unidad models.Unidad
		var particion *models.Particion
		var pesoAntes int

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&unidad, "id = ?", id).Error; err != nil {
				return fiber.NewError(fiber.StatusNotFound, "Unidad no encontrada")
			}
			if err := tx.
				Preload("TipoQueso").
				First(&unidad.Producto, "id = ?", unidad.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el producto")
			}
			if err := tx.
				Where("unidad_id = ?", unidad.ID).
				Order("created_at asc, id asc").
				Find(&unidad.Particiones).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar los cortes")
			}

			pesoAntes = unidad.PesoActual
			nota := normalizarNota(body.ObservacionesCorte)

			var corte *cutplan.Corte
			var err error
			switch {
			case body.Total:
				corte = cutplan.CorteTotal(&unidad)
			case body.Peso != nil:
				corte, err = cutplan.CortePorPeso(&unidad, *body.Peso, nota)
			default:
				corte, err = cutplan.CortePorEscaneo(&unidad, strings.TrimSpace(body.CodigoBarras), catalog.NuevoBuscador(tx), nota)
			}
			if err != nil {
				return traducirError(err)
			}

			particion, err = corte.Confirmar()
			if err != nil {
				return traducirError(err)
			}

			if err := tx.Create(particion).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo registrar el corte")
			}

			// Activa la escribe solamente este camino, siempre derivada
			// del peso actual que acaba de calcular el ledger.
			if err := tx.Model(&models.Unidad{}).
				Where("id = ?", unidad.ID).
				Updates(map[string]any{
					"peso_actual": unidad.PesoActual,
					"activa":      unidad.Activa,
				}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la unidad")
			}

			return nil
		})
		if err != nil {
			return err
		}

		_ = audit.WriteLog(audit.LogOptions{
			EntityType:  "particion",
			EntityID:    particion.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Corte de %dg sobre unidad #%d (%s)", particion.Peso, unidad.ID, unidad.Producto.Nombre),
			Before:      fiber.Map{"pesoActual": pesoAntes},
			After:       fiber.Map{"pesoActual": unidad.PesoActual, "activa": unidad.Activa},
		})

		return c.Status(fiber.StatusCreated).JSON(&unidad)
	}
}
