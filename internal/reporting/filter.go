// Package reporting responde las preguntas de inventario e historial:
// aplica un filtro declarativo sobre un snapshot de unidades y deriva
// las estadísticas desde cero en cada pasada. No mantiene contadores
// incrementales, así que una colección vacía siempre da todo en cero.
package reporting

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"queseria-backend/internal/models"
)

type Estado string

const (
	EstadoTodos    Estado = "todos"
	EstadoActivos  Estado = "activos"
	EstadoAgotados Estado = "agotados"
)

// Filtro: predicados independientes combinados por conjunción. Un campo
// vacío (o "todos") no filtra.
type Filtro struct {
	Estado    Estado
	TipoQueso string // nombre del tipo, comparación exacta sin mayúsculas
	Desde     *time.Time
	Hasta     *time.Time

	// Texto busca como substring, sin mayúsculas, en nombre de producto,
	// PLU e ID. Con SoloObservaciones la búsqueda se restringe a la nota
	// de ingreso y los otros campos no se consultan.
	Texto             string
	SoloObservaciones bool
}

type Estadisticas struct {
	Total              int             `json:"total"`
	Activas            int             `json:"activas"`
	Agotadas           int             `json:"agotadas"`
	PesoTotal          int             `json:"pesoTotal"`   // gramos
	PesoVendido        int             `json:"pesoVendido"` // gramos
	PesoTotalKg        decimal.Decimal `json:"pesoTotalKg"`
	PesoVendidoKg      decimal.Decimal `json:"pesoVendidoKg"`
	ProductosDistintos int             `json:"productosDistintos"`
}

type Resultado struct {
	Unidades     []models.Unidad `json:"unidades"`
	Estadisticas Estadisticas    `json:"estadisticas"`

	// Desgloses calculados solo sobre el subconjunto agotado del filtro.
	AgotadasPorProducto map[string]int `json:"agotadasPorProducto"` // nombre producto -> unidades
	PesoVendidoPorTipo  map[string]int `json:"pesoVendidoPorTipo"`  // tipo de queso -> gramos
}

// FiltrarYAgregar evalúa el filtro y deriva las estadísticas sobre
// exactamente el conjunto filtrado. Es puro: no muta la colección de
// entrada y conserva el orden relativo original.
func FiltrarYAgregar(unidades []models.Unidad, filtro Filtro) Resultado {
	filtradas := make([]models.Unidad, 0, len(unidades))
	for _, unidad := range unidades {
		if pasaFiltro(&unidad, filtro) {
			filtradas = append(filtradas, unidad)
		}
	}

	stats := Estadisticas{
		PesoTotalKg:   decimal.Zero,
		PesoVendidoKg: decimal.Zero,
	}
	productos := make(map[uint]struct{})
	agotadasPorProducto := make(map[string]int)
	pesoVendidoPorTipo := make(map[string]int)

	for _, unidad := range filtradas {
		stats.Total++
		if unidad.Activa {
			stats.Activas++
		} else {
			stats.Agotadas++
		}
		stats.PesoTotal += unidad.PesoInicial
		stats.PesoVendido += unidad.PesoVendido()
		productos[unidad.ProductoID] = struct{}{}

		if !unidad.Activa {
			agotadasPorProducto[unidad.Producto.Nombre]++
			pesoVendidoPorTipo[unidad.Producto.TipoQueso.Nombre] += unidad.PesoVendido()
		}
	}

	stats.ProductosDistintos = len(productos)
	stats.PesoTotalKg = kilos(stats.PesoTotal)
	stats.PesoVendidoKg = kilos(stats.PesoVendido)

	return Resultado{
		Unidades:            filtradas,
		Estadisticas:        stats,
		AgotadasPorProducto: agotadasPorProducto,
		PesoVendidoPorTipo:  pesoVendidoPorTipo,
	}
}

func pasaFiltro(unidad *models.Unidad, filtro Filtro) bool {
	switch filtro.Estado {
	case EstadoActivos:
		if !unidad.Activa {
			return false
		}
	case EstadoAgotados:
		if unidad.Activa {
			return false
		}
	}

	if filtro.TipoQueso != "" && filtro.TipoQueso != "todos" {
		if !strings.EqualFold(unidad.Producto.TipoQueso.Nombre, filtro.TipoQueso) {
			return false
		}
	}

	// rango de fechas inclusivo en ambos extremos
	if filtro.Desde != nil && unidad.CreatedAt.Before(*filtro.Desde) {
		return false
	}
	if filtro.Hasta != nil && unidad.CreatedAt.After(*filtro.Hasta) {
		return false
	}

	if filtro.Texto != "" {
		return coincideTexto(unidad, filtro.Texto, filtro.SoloObservaciones)
	}

	return true
}

func coincideTexto(unidad *models.Unidad, texto string, soloObservaciones bool) bool {
	buscado := strings.ToLower(texto)

	if soloObservaciones {
		if unidad.ObservacionesIngreso == nil {
			return false
		}
		return strings.Contains(strings.ToLower(*unidad.ObservacionesIngreso), buscado)
	}

	return strings.Contains(strings.ToLower(unidad.Producto.Nombre), buscado) ||
		strings.Contains(unidad.Producto.PLU, buscado) ||
		strings.Contains(strconv.FormatUint(uint64(unidad.ID), 10), buscado)
}

// kilos convierte gramos a kg con un decimal, como se muestra en planilla.
func kilos(gramos int) decimal.Decimal {
	return decimal.NewFromInt(int64(gramos)).DivRound(decimal.NewFromInt(1000), 1)
}
