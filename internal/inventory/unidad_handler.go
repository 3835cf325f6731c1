package inventory

import (
	"fmt"
	"strings"

	"queseria-backend/internal/audit"
	"queseria-backend/internal/barcode"
	"queseria-backend/internal/catalog"
	"queseria-backend/internal/database"
	"queseria-backend/internal/ledger"
	"queseria-backend/internal/models"
	"queseria-backend/internal/reporting"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DecodeBarcodeRequest struct {
	CodigoBarras string `json:"codigoBarras"`
}

type DecodeBarcodeResponse struct {
	Producto   models.Producto `json:"producto"`
	PesoGramos int             `json:"pesoGramos"`
}

type CreateUnidadRequest struct {
	// Con código de barras el peso y el producto salen del escaneo.
	CodigoBarras string `json:"codigoBarras"`

	// Alternativa manual (el cliente ya decodificó)
	ProductoID  uint `json:"productoId"`
	PesoInicial int  `json:"pesoInicial"`

	ObservacionesIngreso *string `json:"observacionesIngreso"`
}

type UpdateUnidadRequest struct {
	ObservacionesIngreso *string `json:"observacionesIngreso"`
}

// POST /api/barcodes/decode
// Decodifica un escaneo y resuelve el producto, sin crear nada.
func DecodificarBarcodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body DecodeBarcodeRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		producto, dec, err := resolverCodigo(strings.TrimSpace(body.CodigoBarras), nil)
		if err != nil {
			return err
		}

		return c.JSON(DecodeBarcodeResponse{Producto: *producto, PesoGramos: dec.PesoGramos})
	}
}

// POST /api/unidades
// Ingreso de una horma nueva: por escaneo o con producto y peso explícitos.
func CreateUnidadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUnidadRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		var producto *models.Producto
		pesoInicial := body.PesoInicial

		if codigo := strings.TrimSpace(body.CodigoBarras); codigo != "" {
			p, dec, err := resolverCodigo(codigo, nil)
			if err != nil {
				return err
			}
			producto = p
			pesoInicial = dec.PesoGramos
		} else {
			if body.ProductoID == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Falta el código de barras o el producto")
			}
			var p models.Producto
			if err := database.DB.Preload("TipoQueso").First(&p, "id = ?", body.ProductoID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Producto no encontrado")
			}
			producto = &p
		}

		unidad, err := ledger.NuevaUnidad(producto, pesoInicial, normalizarNota(body.ObservacionesIngreso))
		if err != nil {
			return traducirError(err)
		}

		if err := database.DB.Omit("Producto", "Particiones").Create(unidad).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo ingresar la unidad")
		}

		_ = audit.WriteLog(audit.LogOptions{
			EntityType:  "unidad",
			EntityID:    unidad.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Ingreso: %s, %dg (unidad #%d)", producto.Nombre, pesoInicial, unidad.ID),
			After:       unidad,
		})

		return c.Status(fiber.StatusCreated).JSON(unidad)
	}
}

// GET /api/unidades?texto=&soloObservaciones=true
// Inventario actual: solo unidades activas, con filtro de texto opcional.
func ListUnidadesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unidades, err := cargarUnidades(true)
		if err != nil {
			return err
		}

		res := reporting.FiltrarYAgregar(unidades, reporting.Filtro{
			Estado:            reporting.EstadoActivos,
			Texto:             c.Query("texto"),
			SoloObservaciones: c.Query("soloObservaciones") == "true",
		})

		return c.JSON(res.Unidades)
	}
}

// PUT /api/unidades/:id
// Reemplaza la nota de ingreso. Permitido también sobre unidades agotadas.
func UpdateUnidadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		unidad, err := cargarUnidad(c.Params("id"))
		if err != nil {
			return err
		}

		var body UpdateUnidadRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		antes := unidad.ObservacionesIngreso
		ledger.Anotar(unidad, normalizarNota(body.ObservacionesIngreso))

		if err := database.DB.Model(&models.Unidad{}).
			Where("id = ?", unidad.ID).
			Update("observaciones_ingreso", unidad.ObservacionesIngreso).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la unidad")
		}

		_ = audit.WriteLog(audit.LogOptions{
			EntityType:  "unidad",
			EntityID:    unidad.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Edición de observaciones de la unidad #%d", unidad.ID),
			Before:      fiber.Map{"observacionesIngreso": antes},
			After:       fiber.Map{"observacionesIngreso": unidad.ObservacionesIngreso},
		})

		return c.JSON(unidad)
	}
}

// cargarUnidad trae una unidad con producto, tipo y cortes en orden.
func cargarUnidad(id string) (*models.Unidad, error) {
	var unidad models.Unidad
	err := database.DB.
		Preload("Producto.TipoQueso").
		Preload("Particiones", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
		First(&unidad, "id = ?", id).Error
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Unidad no encontrada")
	}
	return &unidad, nil
}

// cargarUnidades trae el snapshot completo o solo el inventario activo.
func cargarUnidades(soloActivas bool) ([]models.Unidad, error) {
	dbq := database.DB.
		Preload("Producto.TipoQueso").
		Preload("Particiones", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
		Order("created_at desc, id desc")
	if soloActivas {
		dbq = dbq.Where("activa = ?", true)
	}

	var unidades []models.Unidad
	if err := dbq.Find(&unidades).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las unidades")
	}
	return unidades, nil
}

// resolverCodigo decodifica y resuelve contra el catálogo (con la
// transacción dada, o la conexión global si es nil).
func resolverCodigo(codigo string, tx *gorm.DB) (*models.Producto, barcode.Decodificado, error) {
	producto, dec, err := barcode.ResolverProducto(codigo, catalog.NuevoBuscador(tx))
	if err != nil {
		return nil, barcode.Decodificado{}, traducirError(err)
	}
	return producto, dec, nil
}

func normalizarNota(nota *string) *string {
	if nota == nil {
		return nil
	}
	limpia := strings.TrimSpace(*nota)
	if limpia == "" {
		return nil
	}
	return &limpia
}
