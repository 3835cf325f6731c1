// Package barcode decodifica los códigos de 13 dígitos que imprime la
// balanza: 2 dígitos de prefijo, 5 de PLU, 5 de peso en gramos y 1 dígito
// verificador. El prefijo y el verificador no se validan: la balanza no
// emite checksums inválidos y rechazar acá rompería el flujo de escaneo.
package barcode

import (
	"errors"
	"fmt"
	"strconv"

	"queseria-backend/internal/models"
)

const LargoCodigo = 13

var (
	// ErrFormatoCodigo: el código no tiene exactamente 13 dígitos ASCII.
	ErrFormatoCodigo = errors.New("el código debe tener exactamente 13 dígitos")

	// ErrPesoCodigoInvalido: el campo de peso no es un entero positivo.
	ErrPesoCodigoInvalido = errors.New("peso inválido en código de barras")
)

// ProductoDesconocidoError: el PLU no existe en el catálogo.
type ProductoDesconocidoError struct {
	PLU string
}

func (e *ProductoDesconocidoError) Error() string {
	return fmt.Sprintf("no se encontró producto con PLU: %s", e.PLU)
}

// Decodificado es el resultado crudo de un escaneo válido.
type Decodificado struct {
	PLU        string // 5 dígitos, con ceros a la izquierda
	PesoGramos int
}

// Decodificar parsea un código de 13 dígitos. Es una función pura: no
// consulta el catálogo ni toca ninguna unidad.
func Decodificar(codigo string) (Decodificado, error) {
	if len(codigo) != LargoCodigo {
		return Decodificado{}, ErrFormatoCodigo
	}
	for _, r := range codigo {
		if r < '0' || r > '9' {
			return Decodificado{}, ErrFormatoCodigo
		}
	}

	// Layout fijo: [0,2) prefijo, [2,7) PLU, [7,12) peso, [12,13) verificador
	plu := codigo[2:7]
	peso, err := strconv.Atoi(codigo[7:12])
	if err != nil || peso <= 0 {
		return Decodificado{}, ErrPesoCodigoInvalido
	}

	return Decodificado{PLU: plu, PesoGramos: peso}, nil
}

// BuscadorProductos es el catálogo externo. La búsqueda puede fallar por
// sí sola (es una llamada al store); producto nil sin error significa
// PLU inexistente.
type BuscadorProductos interface {
	BuscarPorPLU(plu string) (*models.Producto, error)
}

// ResolverProducto decodifica el código y resuelve el PLU contra el
// catálogo. El PLU se compara textual, nunca numérico.
func ResolverProducto(codigo string, catalogo BuscadorProductos) (*models.Producto, Decodificado, error) {
	dec, err := Decodificar(codigo)
	if err != nil {
		return nil, Decodificado{}, err
	}

	producto, err := catalogo.BuscarPorPLU(dec.PLU)
	if err != nil {
		return nil, Decodificado{}, err
	}
	if producto == nil {
		return nil, Decodificado{}, &ProductoDesconocidoError{PLU: dec.PLU}
	}

	return producto, dec, nil
}
