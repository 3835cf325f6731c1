package catalog

import (
	"errors"

	"queseria-backend/internal/database"
	"queseria-backend/internal/models"

	"gorm.io/gorm"
)

// Buscador resuelve PLUs contra la base. Implementa
// barcode.BuscadorProductos para el codec y el planificador de cortes.
type Buscador struct {
	db *gorm.DB
}

// NuevoBuscador usa la conexión global si no se pasa otra (los cortes
// dentro de una transacción pasan la suya).
func NuevoBuscador(db *gorm.DB) *Buscador {
	if db == nil {
		db = database.DB
	}
	return &Buscador{db: db}
}

// BuscarPorPLU devuelve (nil, nil) cuando el PLU no existe; un error
// solo cuando el store falló.
func (b *Buscador) BuscarPorPLU(plu string) (*models.Producto, error) {
	var producto models.Producto
	err := b.db.Preload("TipoQueso").Where("plu = ?", plu).First(&producto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &producto, nil
}
