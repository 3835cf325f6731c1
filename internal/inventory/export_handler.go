package inventory

import (
	"queseria-backend/internal/models"
	"queseria-backend/internal/reporting"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/unidades/historial/export
// Mismos filtros que el historial, pero devuelve una planilla .xlsx.
func ExportHistorialHandler() fiber.Handler {
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

		f := excelize.NewFile()
		defer f.Close()
		hoja := f.GetSheetName(0)

		encabezados := []string{
			"ID", "Producto", "PLU", "Tipo de Queso", "Estado",
			"Peso Inicial (g)", "Peso Actual (g)", "Vendido (g)",
			"Cortes", "Ingresado", "Observaciones",
		}
		for i, titulo := range encabezados {
			f.SetCellValue(hoja, celda(i+1, 1), titulo)
		}

		for i, unidad := range res.Unidades {
			fila := i + 2
			f.SetCellValue(hoja, celda(1, fila), unidad.ID)
			f.SetCellValue(hoja, celda(2, fila), unidad.Producto.Nombre)
			f.SetCellValue(hoja, celda(3, fila), unidad.Producto.PLU)
			f.SetCellValue(hoja, celda(4, fila), unidad.Producto.TipoQueso.Nombre)
			f.SetCellValue(hoja, celda(5, fila), etiquetaEstado(unidad))
			f.SetCellValue(hoja, celda(6, fila), unidad.PesoInicial)
			f.SetCellValue(hoja, celda(7, fila), unidad.PesoActual)
			f.SetCellValue(hoja, celda(8, fila), unidad.PesoVendido())
			f.SetCellValue(hoja, celda(9, fila), len(unidad.Particiones))
			f.SetCellValue(hoja, celda(10, fila), unidad.CreatedAt.Format("2006-01-02 15:04"))
			if unidad.ObservacionesIngreso != nil {
				f.SetCellValue(hoja, celda(11, fila), *unidad.ObservacionesIngreso)
			}
		}

		// resumen al pie, separado por una fila vacía
		base := len(res.Unidades) + 3
		resumen := [][2]any{
			{"Total unidades", res.Estadisticas.Total},
			{"Activas", res.Estadisticas.Activas},
			{"Agotadas", res.Estadisticas.Agotadas},
			{"Peso total (kg)", res.Estadisticas.PesoTotalKg.String()},
			{"Egreso total (kg)", res.Estadisticas.PesoVendidoKg.String()},
			{"Productos distintos", res.Estadisticas.ProductosDistintos},
		}
		for i, par := range resumen {
			f.SetCellValue(hoja, celda(1, base+i), par[0])
			f.SetCellValue(hoja, celda(2, base+i), par[1])
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar la planilla")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="historial.xlsx"`)
		return c.SendStream(buf)
	}
}

func celda(col, fila int) string {
	nombre, _ := excelize.CoordinatesToCellName(col, fila)
	return nombre
}

func etiquetaEstado(unidad models.Unidad) string {
	if unidad.Activa {
		return "Activa"
	}
	return "Agotada"
}
