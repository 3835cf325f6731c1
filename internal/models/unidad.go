package models

import "time"

// Unidad: una horma física de queso, desde el ingreso hasta agotarse.
// Invariante: PesoInicial == PesoActual + suma de Particiones.Peso.
// Activa se persiste pero solo la escribe el ledger, siempre derivada
// de PesoActual > 0. Una unidad agotada nunca vuelve a activarse.
type Unidad struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	ProductoID           uint        `gorm:"index;not null" json:"-"`
	Producto             Producto    `json:"producto"`
	PesoInicial          int         `gorm:"not null" json:"pesoInicial"` // gramos
	PesoActual           int         `gorm:"not null" json:"pesoActual"`  // gramos
	Activa               bool        `gorm:"not null;default:true;index" json:"activa"`
	Particiones          []Particion `gorm:"foreignKey:UnidadID" json:"particiones"`
	ObservacionesIngreso *string     `gorm:"size:500" json:"observacionesIngreso"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"-"`
}

func (Unidad) TableName() string { return "unidades" }

// PesoVendido: gramos egresados hasta el momento.
func (u *Unidad) PesoVendido() int { return u.PesoInicial - u.PesoActual }
