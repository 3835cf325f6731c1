package models

import "time"

// Particion: un corte registrado contra una unidad. Inmutable una vez
// creada; el orden de inserción es el orden cronológico de los cortes.
type Particion struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UnidadID           uint      `gorm:"index;not null" json:"-"`
	Peso               int       `gorm:"not null" json:"peso"` // gramos egresados en este corte
	ObservacionesCorte *string   `gorm:"size:500" json:"observacionesCorte"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (Particion) TableName() string { return "particiones" }
