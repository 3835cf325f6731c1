package reporting

import (
	"reflect"
	"testing"
	"time"

	"queseria-backend/internal/models"
)

func strPtr(s string) *string { return &s }

func fecha(dia int) time.Time {
	return time.Date(2026, time.March, dia, 10, 0, 0, 0, time.UTC)
}

// snapshot de prueba: tres productos, dos tipos, activas y agotadas.
func unidadesDePrueba() []models.Unidad {
	blando := models.TipoQueso{ID: 1, Nombre: "blando"}
	duro := models.TipoQueso{ID: 2, Nombre: "duro"}

	cremoso := models.Producto{ID: 1, Nombre: "Cremoso", PLU: "00010", TipoQueso: blando}
	sardo := models.Producto{ID: 2, Nombre: "Sardo", PLU: "00020", TipoQueso: duro}
	reggianito := models.Producto{ID: 3, Nombre: "Reggianito", PLU: "00030", TipoQueso: duro}

	return []models.Unidad{
		{ID: 1, ProductoID: 1, Producto: cremoso, PesoInicial: 1000, PesoActual: 600, Activa: true, CreatedAt: fecha(1), ObservacionesIngreso: strPtr("Lote #123")},
		{ID: 2, ProductoID: 2, Producto: sardo, PesoInicial: 3000, PesoActual: 0, Activa: false, CreatedAt: fecha(5)},
		{ID: 3, ProductoID: 2, Producto: sardo, PesoInicial: 2000, PesoActual: 0, Activa: false, CreatedAt: fecha(10), ObservacionesIngreso: strPtr("vencimiento 15/03")},
		{ID: 4, ProductoID: 3, Producto: reggianito, PesoInicial: 4000, PesoActual: 4000, Activa: true, CreatedAt: fecha(20)},
	}
}

func TestColeccionVacia(t *testing.T) {
	res := FiltrarYAgregar(nil, Filtro{})

	if len(res.Unidades) != 0 {
		t.Errorf("Unidades = %d, esperado 0", len(res.Unidades))
	}
	s := res.Estadisticas
	if s.Total != 0 || s.Activas != 0 || s.Agotadas != 0 || s.PesoTotal != 0 || s.PesoVendido != 0 || s.ProductosDistintos != 0 {
		t.Errorf("estadísticas no nulas sobre colección vacía: %+v", s)
	}
	if !s.PesoTotalKg.IsZero() || !s.PesoVendidoKg.IsZero() {
		t.Errorf("kg no nulos: %s / %s", s.PesoTotalKg, s.PesoVendidoKg)
	}
	if len(res.AgotadasPorProducto) != 0 || len(res.PesoVendidoPorTipo) != 0 {
		t.Error("desgloses no vacíos sobre colección vacía")
	}
}

func TestSinPredicadosDevuelveTodoEnOrden(t *testing.T) {
	unidades := unidadesDePrueba()
	res := FiltrarYAgregar(unidades, Filtro{Estado: EstadoTodos, TipoQueso: "todos"})

	if len(res.Unidades) != 4 {
		t.Fatalf("Unidades = %d, esperado 4", len(res.Unidades))
	}
	for i, u := range res.Unidades {
		if u.ID != unidades[i].ID {
			t.Errorf("posición %d: ID %d, el orden original debe conservarse", i, u.ID)
		}
	}
}

func TestEstadisticas(t *testing.T) {
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{})
	s := res.Estadisticas

	if s.Total != 4 || s.Activas != 2 || s.Agotadas != 2 {
		t.Errorf("conteos = %d/%d/%d", s.Total, s.Activas, s.Agotadas)
	}
	if s.PesoTotal != 10000 {
		t.Errorf("PesoTotal = %d, esperado 10000", s.PesoTotal)
	}
	// vendido = (1000-600) + 3000 + 2000 + 0
	if s.PesoVendido != 5400 {
		t.Errorf("PesoVendido = %d, esperado 5400", s.PesoVendido)
	}
	if s.ProductosDistintos != 3 {
		t.Errorf("ProductosDistintos = %d, esperado 3", s.ProductosDistintos)
	}
	if s.PesoTotalKg.String() != "10" {
		t.Errorf("PesoTotalKg = %s, esperado 10", s.PesoTotalKg)
	}
	if s.PesoVendidoKg.String() != "5.4" {
		t.Errorf("PesoVendidoKg = %s, esperado 5.4", s.PesoVendidoKg)
	}
}

func TestDesglosesSoloSobreAgotadas(t *testing.T) {
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{})

	// solo las dos unidades de Sardo están agotadas
	if res.AgotadasPorProducto["Sardo"] != 2 {
		t.Errorf("AgotadasPorProducto[Sardo] = %d, esperado 2", res.AgotadasPorProducto["Sardo"])
	}
	if _, ok := res.AgotadasPorProducto["Cremoso"]; ok {
		t.Error("Cremoso está activa, no debe aparecer en el desglose")
	}
	if res.PesoVendidoPorTipo["duro"] != 5000 {
		t.Errorf("PesoVendidoPorTipo[duro] = %d, esperado 5000", res.PesoVendidoPorTipo["duro"])
	}
	if _, ok := res.PesoVendidoPorTipo["blando"]; ok {
		t.Error("el tipo blando no tiene unidades agotadas")
	}
}

func TestFiltroEstado(t *testing.T) {
	activas := FiltrarYAgregar(unidadesDePrueba(), Filtro{Estado: EstadoActivos})
	if len(activas.Unidades) != 2 || activas.Estadisticas.Agotadas != 0 {
		t.Errorf("activos: %d unidades, %d agotadas", len(activas.Unidades), activas.Estadisticas.Agotadas)
	}

	agotadas := FiltrarYAgregar(unidadesDePrueba(), Filtro{Estado: EstadoAgotados})
	if len(agotadas.Unidades) != 2 || agotadas.Estadisticas.Activas != 0 {
		t.Errorf("agotados: %d unidades, %d activas", len(agotadas.Unidades), agotadas.Estadisticas.Activas)
	}
}

func TestFiltroTipoQuesoSinMayusculas(t *testing.T) {
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{TipoQueso: "DURO"})
	if len(res.Unidades) != 3 {
		t.Fatalf("Unidades = %d, esperado 3", len(res.Unidades))
	}
	for _, u := range res.Unidades {
		if u.Producto.TipoQueso.Nombre != "duro" {
			t.Errorf("unidad %d no es de tipo duro", u.ID)
		}
	}
}

func TestFiltroFechasInclusivo(t *testing.T) {
	desde := fecha(5)
	hasta := fecha(10)
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{Desde: &desde, Hasta: &hasta})

	if len(res.Unidades) != 2 {
		t.Fatalf("Unidades = %d, esperado 2 (ambos extremos inclusive)", len(res.Unidades))
	}
	if res.Unidades[0].ID != 2 || res.Unidades[1].ID != 3 {
		t.Errorf("IDs = %d, %d", res.Unidades[0].ID, res.Unidades[1].ID)
	}

	// extremo abierto
	soloDesde := FiltrarYAgregar(unidadesDePrueba(), Filtro{Desde: &desde})
	if len(soloDesde.Unidades) != 3 {
		t.Errorf("solo desde: %d unidades, esperado 3", len(soloDesde.Unidades))
	}
}

func TestFiltroTexto(t *testing.T) {
	// por nombre, sin mayúsculas
	porNombre := FiltrarYAgregar(unidadesDePrueba(), Filtro{Texto: "sArDo"})
	if len(porNombre.Unidades) != 2 {
		t.Errorf("por nombre: %d unidades, esperado 2", len(porNombre.Unidades))
	}

	// por PLU
	porPLU := FiltrarYAgregar(unidadesDePrueba(), Filtro{Texto: "00030"})
	if len(porPLU.Unidades) != 1 || porPLU.Unidades[0].ID != 4 {
		t.Errorf("por PLU: %+v", porPLU.Unidades)
	}

	// por ID literal
	porID := FiltrarYAgregar(unidadesDePrueba(), Filtro{Texto: "4"})
	if len(porID.Unidades) != 1 || porID.Unidades[0].ID != 4 {
		t.Errorf("por ID: %+v", porID.Unidades)
	}
}

func TestModoObservacionesRestringeLaBusqueda(t *testing.T) {
	// "Sardo" aparece como nombre de producto pero en ninguna nota
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{Texto: "sardo", SoloObservaciones: true})
	if len(res.Unidades) != 0 {
		t.Errorf("con modo observaciones el nombre de producto no debe coincidir: %d unidades", len(res.Unidades))
	}

	porNota := FiltrarYAgregar(unidadesDePrueba(), Filtro{Texto: "lote", SoloObservaciones: true})
	if len(porNota.Unidades) != 1 || porNota.Unidades[0].ID != 1 {
		t.Errorf("por nota: %+v", porNota.Unidades)
	}
}

func TestPredicadosSeCombinanPorConjuncion(t *testing.T) {
	hasta := fecha(6)
	res := FiltrarYAgregar(unidadesDePrueba(), Filtro{
		Estado:    EstadoAgotados,
		TipoQueso: "duro",
		Hasta:     &hasta,
		Texto:     "sardo",
	})
	if len(res.Unidades) != 1 || res.Unidades[0].ID != 2 {
		t.Errorf("conjunción: %+v", res.Unidades)
	}
}

func TestIdempotenciaSobreElMismoSnapshot(t *testing.T) {
	unidades := unidadesDePrueba()
	filtro := Filtro{Estado: EstadoAgotados, Texto: "sardo"}

	primero := FiltrarYAgregar(unidades, filtro)
	segundo := FiltrarYAgregar(unidades, filtro)

	if !reflect.DeepEqual(primero, segundo) {
		t.Error("dos pasadas sobre el mismo snapshot deben dar resultados idénticos")
	}

	// la entrada no se mutó
	if !reflect.DeepEqual(unidades, unidadesDePrueba()) {
		t.Error("FiltrarYAgregar mutó la colección de entrada")
	}
}
