package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a rentable/sellable catalog item (furniture, tents, sound).
// TipoPrecio: "unidad" — quantity × base price; "medida" — quantity ×
// units-per-product × base price (e.g. tents priced per square meter).
type Producto struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre              string    `gorm:"index;not null"`
	Descripcion         *string
	Categoria           string          `gorm:"not null"`
	TipoPrecio          string          `gorm:"type:varchar(10);not null;default:'unidad'"`
	PrecioBase          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnidadesPorProducto decimal.Decimal `gorm:"type:decimal(10,2);not null;default:1"`
	UnidadMedida        string          `gorm:"not null;default:'unidad'"`
	ProveedorID         *uuid.UUID      `gorm:"type:uuid;index"`
	Activo              bool            `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}
