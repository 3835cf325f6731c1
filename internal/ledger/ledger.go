// Package ledger es el único camino de mutación de una unidad: alta,
// corte y nota de ingreso. Toda mutación re-verifica el invariante de
// conservación de peso antes de devolver éxito.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"queseria-backend/internal/models"
)

var (
	// ErrPesoInicialInvalido: alta con peso inicial <= 0.
	ErrPesoInicialInvalido = errors.New("el peso inicial debe ser mayor a cero")

	// ErrPesoCorteInvalido: corte con peso negativo. Cero está permitido
	// (un corte confirmatorio de 0g es válido).
	ErrPesoCorteInvalido = errors.New("el peso del corte no puede ser negativo")
)

// CorteExcedidoError: el corte pide más gramos de los que quedan.
type CorteExcedidoError struct {
	Solicitado int
	Disponible int
}

func (e *CorteExcedidoError) Error() string {
	return fmt.Sprintf("el corte de %dg supera el peso disponible (%dg)", e.Solicitado, e.Disponible)
}

// InvarianteRotaError: el invariante de conservación de peso falló
// después de una operación. Es un defecto interno, nunca un error de
// usuario: la mutación se revierte y no debe persistirse.
type InvarianteRotaError struct {
	UnidadID     uint
	PesoInicial  int
	PesoActual   int
	SumaCortes   int
}

func (e *InvarianteRotaError) Error() string {
	return fmt.Sprintf(
		"invariante roto en unidad #%d: inicial=%dg actual=%dg cortes=%dg",
		e.UnidadID, e.PesoInicial, e.PesoActual, e.SumaCortes,
	)
}

// NuevaUnidad crea una unidad activa con el peso completo y sin cortes.
func NuevaUnidad(producto *models.Producto, pesoInicial int, observaciones *string) (*models.Unidad, error) {
	if pesoInicial <= 0 {
		return nil, ErrPesoInicialInvalido
	}

	unidad := &models.Unidad{
		ProductoID:           producto.ID,
		Producto:             *producto,
		PesoInicial:          pesoInicial,
		PesoActual:           pesoInicial,
		Activa:               true,
		Particiones:          []models.Particion{},
		ObservacionesIngreso: observaciones,
		CreatedAt:            time.Now(),
	}

	if err := VerificarInvariante(unidad); err != nil {
		return nil, err
	}
	return unidad, nil
}

// AplicarCorte agrega una partición de `peso` gramos, descuenta el peso
// actual y recalcula Activa. Si el invariante queda roto la unidad se
// restaura al estado previo y se devuelve el error. No hay efectos
// parciales: o el corte entra completo o la unidad queda intacta.
func AplicarCorte(unidad *models.Unidad, peso int, observaciones *string) (*models.Particion, error) {
	if peso < 0 {
		return nil, ErrPesoCorteInvalido
	}
	if peso > unidad.PesoActual {
		return nil, &CorteExcedidoError{Solicitado: peso, Disponible: unidad.PesoActual}
	}

	previoPeso := unidad.PesoActual
	previoActiva := unidad.Activa

	particion := models.Particion{
		UnidadID:           unidad.ID,
		Peso:               peso,
		ObservacionesCorte: observaciones,
		CreatedAt:          time.Now(),
	}

	unidad.Particiones = append(unidad.Particiones, particion)
	unidad.PesoActual -= peso
	unidad.Activa = unidad.PesoActual > 0

	if err := VerificarInvariante(unidad); err != nil {
		// rollback en memoria: el corte no existió
		unidad.Particiones = unidad.Particiones[:len(unidad.Particiones)-1]
		unidad.PesoActual = previoPeso
		unidad.Activa = previoActiva
		return nil, err
	}

	return &unidad.Particiones[len(unidad.Particiones)-1], nil
}

// Anotar reemplaza la nota de ingreso. No toca pesos ni estado, y está
// permitido sobre unidades agotadas.
func Anotar(unidad *models.Unidad, observaciones *string) {
	unidad.ObservacionesIngreso = observaciones
}

// VerificarInvariante chequea la conservación de peso:
// PesoInicial == PesoActual + suma de particiones, con PesoActual >= 0.
func VerificarInvariante(unidad *models.Unidad) error {
	suma := 0
	for _, p := range unidad.Particiones {
		suma += p.Peso
	}
	if unidad.PesoActual < 0 || unidad.PesoInicial != unidad.PesoActual+suma {
		return &InvarianteRotaError{
			UnidadID:    unidad.ID,
			PesoInicial: unidad.PesoInicial,
			PesoActual:  unidad.PesoActual,
			SumaCortes:  suma,
		}
	}
	return nil
}
