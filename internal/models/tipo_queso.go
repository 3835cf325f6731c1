package models

import "time"

// TipoQueso: categoría de dureza del queso (blando, semi-duro, duro).
// Catálogo de solo lectura, se crea una vez y no tiene ciclo de vida.
type TipoQueso struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nombre    string    `gorm:"size:50;not null;unique" json:"nombre"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (TipoQueso) TableName() string { return "tipos_queso" }
