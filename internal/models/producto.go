package models

import "time"

// Producto: referencia de catálogo. El PLU es el código de 5 dígitos que
// emite la balanza dentro del código de barras (los ceros a la izquierda
// son significativos, por eso es string y no número).
type Producto struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Nombre           string    `gorm:"size:100;not null" json:"nombre"`
	PLU              string    `gorm:"column:plu;size:5;not null;uniqueIndex" json:"plu"`
	SeVendePorUnidad bool      `gorm:"not null;default:false" json:"seVendePorUnidad"`
	TipoQuesoID      uint      `gorm:"index;not null" json:"-"`
	TipoQueso        TipoQueso `json:"tipoQueso"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

func (Producto) TableName() string { return "productos" }
