// Package cutplan decide cuántos gramos cortar antes de que el ledger
// confirme nada. Tres modos sobre el mismo AplicarCorte: peso directo,
// re-escaneo del código después del corte, y egreso total.
package cutplan

import (
	"fmt"

	"queseria-backend/internal/barcode"
	"queseria-backend/internal/ledger"
	"queseria-backend/internal/models"
)

// NotaCorteTotal se usa para distinguir el egreso total de un corte
// cargado a mano.
const NotaCorteTotal = "Corte final – queso agotado"

// NotaCorteVacia es la nota por defecto cuando el operador no escribe nada.
const NotaCorteVacia = "Corte sin observaciones"

// ExcedeDisponibleError: el escaneo posterior al corte dice que quedó
// más queso del que había. Físicamente imposible, el escaneo es erróneo.
type ExcedeDisponibleError struct {
	PesoEscaneado int
	Disponible    int
}

func (e *ExcedeDisponibleError) Error() string {
	return fmt.Sprintf("el peso escaneado (%dg) es mayor al disponible (%dg)", e.PesoEscaneado, e.Disponible)
}

// Corte es un corte planificado y validado, todavía sin confirmar.
type Corte struct {
	unidad        *models.Unidad
	Peso          int
	Observaciones *string
}

// CortePorPeso planifica un corte de peso explícito. Valida contra el
// estado actual del ledger pero no muta nada.
func CortePorPeso(unidad *models.Unidad, peso int, observaciones *string) (*Corte, error) {
	if peso < 0 {
		return nil, ledger.ErrPesoCorteInvalido
	}
	if peso > unidad.PesoActual {
		return nil, &ledger.CorteExcedidoError{Solicitado: peso, Disponible: unidad.PesoActual}
	}
	return &Corte{unidad: unidad, Peso: peso, Observaciones: notaODefecto(observaciones)}, nil
}

// CortePorEscaneo planifica a partir de un escaneo fresco del queso que
// quedó: el peso decodificado es el nuevo peso restante y el corte es la
// diferencia. El PLU solo se resuelve para confirmar que el código es
// real; no se exige que coincida con el producto de la unidad (las
// piezas re-etiquetadas siguen funcionando).
func CortePorEscaneo(unidad *models.Unidad, codigo string, catalogo barcode.BuscadorProductos, observaciones *string) (*Corte, error) {
	_, dec, err := barcode.ResolverProducto(codigo, catalogo)
	if err != nil {
		return nil, err
	}

	if dec.PesoGramos > unidad.PesoActual {
		return nil, &ExcedeDisponibleError{PesoEscaneado: dec.PesoGramos, Disponible: unidad.PesoActual}
	}

	peso := unidad.PesoActual - dec.PesoGramos
	return &Corte{unidad: unidad, Peso: peso, Observaciones: notaODefecto(observaciones)}, nil
}

// CorteTotal planifica el egreso de todo lo que queda, con la nota de
// sistema que lo identifica.
func CorteTotal(unidad *models.Unidad) *Corte {
	nota := NotaCorteTotal
	return &Corte{unidad: unidad, Peso: unidad.PesoActual, Observaciones: &nota}
}

// Confirmar aplica el corte planificado sobre el ledger. Si el ledger lo
// rechaza (otro corte entró en el medio, invariante roto) la unidad
// queda intacta.
func (c *Corte) Confirmar() (*models.Particion, error) {
	return ledger.AplicarCorte(c.unidad, c.Peso, c.Observaciones)
}

func notaODefecto(observaciones *string) *string {
	if observaciones == nil || *observaciones == "" {
		nota := NotaCorteVacia
		return &nota
	}
	return observaciones
}
