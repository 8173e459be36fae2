package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Empleado is a staff member hired out for events (waiters, chefs, logistics).
// RecargoARL is the flat occupational-insurance surcharge added when the
// employee is quoted on an event; zero when not applicable.
type Empleado struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string          `gorm:"index;not null"`
	Cargo      string          `gorm:"not null"`
	TarifaHora decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RecargoARL decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:recargo_arl"`
	Telefono   *string
	Activo     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
