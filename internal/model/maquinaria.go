package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Maquinaria is rentable machinery (generators, light towers, cold rooms).
// From 8 hours the daily rate replaces the hourly charge.
type Maquinaria struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre              string          `gorm:"index;not null"`
	Descripcion         *string
	TarifaHora          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TarifaDia           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TarifaOperador      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoMontaje        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MantenimientoPorUso decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CombustiblePorHora  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo              bool            `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
