package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZonaTransporte is a priced delivery destination tier. Reference data:
// created and edited by administrators, referenced by quotes, never owned
// by them.
type ZonaTransporte struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string          `gorm:"uniqueIndex;not null"`
	CostoBase decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CostoEquipoAdicional is the surcharge per trip when machinery or
	// heavy equipment travels with the load. Optional — zero means none.
	CostoEquipoAdicional decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// TiempoEstimadoMin is informational only (1–600 minutes when set).
	TiempoEstimadoMin *int `gorm:"column:tiempo_estimado_min"`
	Activo            bool `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
