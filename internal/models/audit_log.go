package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
)

// AuditLog: rastro de cada mutación sobre el inventario. Las unidades
// nunca se borran, así que acá solo existen altas y actualizaciones.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Identificador opaco del evento, para correlacionar con logs externos
	EventID string `gorm:"size:36;uniqueIndex" json:"event_id"`

	// Qué entidad: "unidad" o "particion"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action AuditAction `gorm:"size:20" json:"action"`

	// Resumen corto legible (ej: "Corte de 400g sobre unidad #12")
	Description string `gorm:"size:255" json:"description"`

	// Estado anterior y posterior (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
