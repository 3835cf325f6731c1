package inventory

import (
	"time"

	"queseria-backend/internal/database"
	"queseria-backend/internal/models"
	"queseria-backend/internal/reporting"

	"github.com/gofiber/fiber/v2"
)

type HistorialResponse struct {
	Unidades            []models.Unidad        `json:"unidades"`
	Estadisticas        reporting.Estadisticas `json:"estadisticas"`
	AgotadasPorProducto map[string]int         `json:"agotadasPorProducto"`
	PesoVendidoPorTipo  map[string]int         `json:"pesoVendidoPorTipo"`
	StockPorProducto    map[string]int         `json:"stockPorProducto"`
}

// GET /api/unidades/historial
// ?estado=todos|activos|agotados&tipoQueso=&desde=2026-01-01&hasta=2026-01-31
// &texto=&soloObservaciones=true
// Historial completo filtrado con estadísticas derivadas del snapshot.
func HistorialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filtro, err := filtroDesdeQuery(c)
		if err != nil {
			return err
		}

		unidades, err := cargarUnidades(false)
		if err != nil {
			return err
		}

		res := reporting.FiltrarYAgregar(unidades, filtro)

		return c.JSON(HistorialResponse{
			Unidades:            res.Unidades,
			Estadisticas:        res.Estadisticas,
			AgotadasPorProducto: res.AgotadasPorProducto,
			PesoVendidoPorTipo:  res.PesoVendidoPorTipo,
			StockPorProducto:    stockActivoPorProducto(),
		})
	}
}

// filtroDesdeQuery arma el filtro declarativo a partir de la query.
// Las fechas son días calendario, ambos extremos inclusive.
func filtroDesdeQuery(c *fiber.Ctx) (reporting.Filtro, error) {
	filtro := reporting.Filtro{
		Estado:            reporting.Estado(c.Query("estado", string(reporting.EstadoTodos))),
		TipoQueso:         c.Query("tipoQueso"),
		Texto:             c.Query("texto"),
		SoloObservaciones: c.Query("soloObservaciones") == "true",
	}

	switch filtro.Estado {
	case reporting.EstadoTodos, reporting.EstadoActivos, reporting.EstadoAgotados:
	default:
		return reporting.Filtro{}, fiber.NewError(fiber.StatusBadRequest, "estado debe ser todos, activos o agotados")
	}

	if desdeStr := c.Query("desde"); desdeStr != "" {
		desde, err := time.ParseInLocation("2006-01-02", desdeStr, time.Local)
		if err != nil {
			return reporting.Filtro{}, fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}
		filtro.Desde = &desde
	}

	if hastaStr := c.Query("hasta"); hastaStr != "" {
		hasta, err := time.ParseInLocation("2006-01-02", hastaStr, time.Local)
		if err != nil {
			return reporting.Filtro{}, fiber.NewError(fiber.StatusBadRequest, "El formato de fecha debe ser 'YYYY-MM-DD'")
		}
		// inclusive: hasta el último instante del día
		finDeDia := hasta.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filtro.Hasta = &finDeDia
	}

	return filtro, nil
}

// stockActivoPorProducto cuenta las unidades activas por producto, para
// mostrar el stock vigente junto al historial.
func stockActivoPorProducto() map[string]int {
	type fila struct {
		Nombre string
		Total  int
	}
	var filas []fila
	database.DB.Model(&models.Unidad{}).
		Select("productos.nombre as nombre, COUNT(*) as total").
		Joins("JOIN productos ON productos.id = unidades.producto_id").
		Where("unidades.activa = ?", true).
		Group("productos.nombre").
		Scan(&filas)

	stock := make(map[string]int, len(filas))
	for _, f := range filas {
		stock[f.Nombre] = f.Total
	}
	return stock
}
