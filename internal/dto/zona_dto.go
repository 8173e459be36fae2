package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearZonaRequest struct {
	Nombre               string          `json:"nombre"                 validate:"required,min=2"`
	CostoBase            decimal.Decimal `json:"costo_base"             validate:"min=0"`
	CostoEquipoAdicional decimal.Decimal `json:"costo_equipo_adicional" validate:"min=0"`
	TiempoEstimadoMin    *int            `json:"tiempo_estimado_min"    validate:"omitempty,gt=0,lte=600"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ZonaResponse struct {
	ID                   string          `json:"id"`
	Nombre               string          `json:"nombre"`
	CostoBase            decimal.Decimal `json:"costo_base"`
	CostoEquipoAdicional decimal.Decimal `json:"costo_equipo_adicional"`
	TiempoEstimadoMin    *int            `json:"tiempo_estimado_min,omitempty"`
	Activo               bool            `json:"activo"`
}
