package ledger

import (
	"errors"
	"testing"

	"queseria-backend/internal/models"
)

func productoDePrueba() *models.Producto {
	return &models.Producto{ID: 1, Nombre: "Reggianito", PLU: "00123"}
}

func strPtr(s string) *string { return &s }

func TestNuevaUnidad(t *testing.T) {
	unidad, err := NuevaUnidad(productoDePrueba(), 3200, strPtr("Lote #7"))
	if err != nil {
		t.Fatalf("NuevaUnidad falló: %v", err)
	}
	if unidad.PesoInicial != 3200 || unidad.PesoActual != 3200 {
		t.Errorf("pesos = (%d, %d), esperado (3200, 3200)", unidad.PesoInicial, unidad.PesoActual)
	}
	if !unidad.Activa {
		t.Error("una unidad recién ingresada debe estar activa")
	}
	if len(unidad.Particiones) != 0 {
		t.Errorf("particiones = %d, esperado 0", len(unidad.Particiones))
	}
	if unidad.ObservacionesIngreso == nil || *unidad.ObservacionesIngreso != "Lote #7" {
		t.Error("la nota de ingreso no se guardó")
	}
}

func TestNuevaUnidadPesoInvalido(t *testing.T) {
	for _, peso := range []int{0, -1, -500} {
		if _, err := NuevaUnidad(productoDePrueba(), peso, nil); !errors.Is(err, ErrPesoInicialInvalido) {
			t.Errorf("NuevaUnidad(peso=%d) err = %v, esperado ErrPesoInicialInvalido", peso, err)
		}
	}
}

func TestAplicarCorteMantieneInvarianteEnCadaPaso(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 1000, nil)

	cortes := []int{250, 0, 300, 450}
	restante := 1000
	for i, peso := range cortes {
		particion, err := AplicarCorte(unidad, peso, nil)
		if err != nil {
			t.Fatalf("corte %d (%dg) falló: %v", i, peso, err)
		}
		if particion.Peso != peso {
			t.Errorf("corte %d: partición de %dg, esperado %dg", i, particion.Peso, peso)
		}
		restante -= peso
		if unidad.PesoActual != restante {
			t.Errorf("corte %d: PesoActual = %d, esperado %d", i, unidad.PesoActual, restante)
		}
		if err := VerificarInvariante(unidad); err != nil {
			t.Fatalf("invariante roto después del corte %d: %v", i, err)
		}
	}

	if unidad.PesoActual != 0 {
		t.Errorf("PesoActual final = %d, esperado 0", unidad.PesoActual)
	}
	if unidad.Activa {
		t.Error("la unidad debe quedar agotada al llegar a 0g")
	}
	if len(unidad.Particiones) != len(cortes) {
		t.Errorf("particiones = %d, esperado %d", len(unidad.Particiones), len(cortes))
	}
}

func TestAplicarCorteCeroNoCambiaEstado(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 800, nil)

	if _, err := AplicarCorte(unidad, 0, strPtr("control de balanza")); err != nil {
		t.Fatalf("un corte de 0g es válido: %v", err)
	}
	if unidad.PesoActual != 800 || !unidad.Activa {
		t.Error("un corte de 0g no debe cambiar peso ni estado")
	}
	if len(unidad.Particiones) != 1 {
		t.Error("el corte de 0g igual se registra como partición")
	}
}

func TestAplicarCorteExcedidoSinEfectosParciales(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 500, nil)
	if _, err := AplicarCorte(unidad, 200, nil); err != nil {
		t.Fatal(err)
	}

	_, err := AplicarCorte(unidad, 301, nil)
	var excedido *CorteExcedidoError
	if !errors.As(err, &excedido) {
		t.Fatalf("err = %v, esperado CorteExcedidoError", err)
	}
	if excedido.Solicitado != 301 || excedido.Disponible != 300 {
		t.Errorf("contexto del error = %+v", excedido)
	}

	// nada cambió
	if unidad.PesoActual != 300 {
		t.Errorf("PesoActual = %d, el corte rechazado no debe descontar", unidad.PesoActual)
	}
	if !unidad.Activa {
		t.Error("Activa cambió con un corte rechazado")
	}
	if len(unidad.Particiones) != 1 {
		t.Errorf("particiones = %d, el corte rechazado no debe agregar", len(unidad.Particiones))
	}
}

func TestAplicarCorteNegativo(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 500, nil)
	if _, err := AplicarCorte(unidad, -50, nil); !errors.Is(err, ErrPesoCorteInvalido) {
		t.Errorf("err = %v, esperado ErrPesoCorteInvalido", err)
	}
}

func TestAnotarNoAfectaPesos(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 500, strPtr("vieja"))
	AplicarCorte(unidad, 500, nil) // agotada

	Anotar(unidad, strPtr("Vencimiento 15/03"))
	if unidad.ObservacionesIngreso == nil || *unidad.ObservacionesIngreso != "Vencimiento 15/03" {
		t.Error("la nota no se reemplazó")
	}
	if unidad.PesoActual != 0 || unidad.Activa {
		t.Error("anotar no debe tocar pesos ni estado")
	}
	if err := VerificarInvariante(unidad); err != nil {
		t.Errorf("invariante roto tras anotar: %v", err)
	}
}

func TestVerificarInvarianteDetectaCorrupcion(t *testing.T) {
	unidad, _ := NuevaUnidad(productoDePrueba(), 500, nil)
	AplicarCorte(unidad, 100, nil)

	// corrupción externa simulada
	unidad.PesoActual = 450

	err := VerificarInvariante(unidad)
	var roto *InvarianteRotaError
	if !errors.As(err, &roto) {
		t.Fatalf("err = %v, esperado InvarianteRotaError", err)
	}
	if roto.PesoInicial != 500 || roto.PesoActual != 450 || roto.SumaCortes != 100 {
		t.Errorf("contexto del error = %+v", roto)
	}
}
