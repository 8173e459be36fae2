package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a customer of the events company.
// Tipo: "social" | "corporativo" — corporate clients are usually subject to
// tax retention, but the rate itself is configured per quote, never derived
// from the type inside the pricing engine.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"index;not null"`
	Tipo      string    `gorm:"type:varchar(20);not null;default:'social'"`
	NIT       *string   `gorm:"type:varchar(30);uniqueIndex"`
	Email     *string
	Telefono  *string
	Direccion *string
	Ciudad    *string
	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
