package model

import (
	"time"

	"github.com/google/uuid"
)

// Proveedor is a supplier: rental houses, subcontracted event services
// (catering, sound, decoration) and disposable-goods vendors.
type Proveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RazonSocial string    `gorm:"not null"`
	NIT         string    `gorm:"uniqueIndex;not null;column:nit"`
	Telefono    *string
	Email       *string
	Direccion   *string
	// Rubro: "alquiler" | "servicios" | "desechables" | "otro"
	Rubro     string `gorm:"type:varchar(20);not null;default:'otro'"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Contactos []ContactoProveedor `gorm:"foreignKey:ProveedorID"`
}

// ContactoProveedor is a named contact person at a supplier.
type ContactoProveedor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProveedorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nombre      string    `gorm:"not null"`
	Cargo       *string
	Telefono    *string
	Email       *string
	CreatedAt   time.Time
}
