package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Cotizacion is the aggregate root of a priced proposal.
//
// Derived fields (Subtotal, MontoMargen, MontoRetencion, CostoTransporte,
// Total) are a snapshot: recomputed in full by the pricing engine whenever
// any item or configuration changes, never patched incrementally. The
// invariant Total = Subtotal + MontoMargen − MontoRetencion holds after
// every recomputation, with transport already inside the subtotal.
//
// Estado: "borrador" | "enviada" | "aprobada" | "rechazada"
// EstadoPDF: "pendiente" | "generado" | "error"
type Cotizacion struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Numero is the human-readable sequential identifier, COT-YYYY-NNN,
	// zero padded and reset each year.
	Numero       string    `gorm:"uniqueIndex;not null"`
	ClienteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioID    uuid.UUID `gorm:"type:uuid;not null"`
	NombreEvento string    `gorm:"not null"`
	FechaEvento  *time.Time

	MargenPct       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	RetencionActiva bool            `gorm:"not null;default:false"`
	RetencionPct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	// BaseRetencion: "subtotal" | "subtotal_mas_margen" — versioned so a
	// future base change is a config migration, not a formula edit.
	BaseRetencion string `gorm:"type:varchar(30);not null;default:'subtotal_mas_margen'"`

	Subtotal        decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoMargen     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MontoRetencion  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CostoTransporte decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`

	Estado        string `gorm:"type:varchar(20);not null;default:'borrador'"`
	Observaciones *string

	// PDF generation lifecycle — driven by the async worker.
	EstadoPDF   string  `gorm:"type:varchar(20);not null;default:'pendiente';column:estado_pdf"`
	PDFPath     *string `gorm:"column:pdf_path"`
	RetryCount  int     `gorm:"not null;default:0"`
	NextRetryAt *time.Time
	LastError   *string

	Activo    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente         `gorm:"foreignKey:ClienteID"`
	Items   []CotizacionItem `gorm:"foreignKey:CotizacionID"`
	Zonas   []CotizacionZona `gorm:"foreignKey:CotizacionID"`
}

// CotizacionItem is one priced line. Tipo discriminates which parameter
// columns apply; TotalItem is the engine-computed cost for the line.
// Tipo: "empleado" | "producto" | "maquinaria" | "subcontrato" |
// "desechable" | "manual"
type CotizacionItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo         string    `gorm:"type:varchar(20);not null"`
	// ReferenciaID points at the catalog entity behind the line (empleado,
	// producto, maquinaria or proveedor). Nil for free-form lines.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	Descripcion  string     `gorm:"not null"`

	Cantidad            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Horas               decimal.Decimal `gorm:"type:decimal(8,2);not null;default:0"`
	TarifaHora          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RecargoARL          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:recargo_arl"`
	CostoExtra          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioUnitario      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	UnidadesPorProducto decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TarifaDia           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	IncluirOperador     bool            `gorm:"not null;default:false"`
	TarifaOperador      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoMontaje        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MantenimientoPorUso decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CombustiblePorHora  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoProveedor      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioReventa       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MargenItem          decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CostoManual         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	TotalItem decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt time.Time
}

// CotizacionZona is the per-quote transport configuration for one zone.
// In manual mode (AsignacionFlexible) the operator's allocations persist as
// child rows; in automatic mode only the selected product ids persist — the
// per-product split is recomputed by the engine on every change.
type CotizacionZona struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ZonaID         uuid.UUID `gorm:"type:uuid;not null"`
	NumTransportes int       `gorm:"not null"`
	IncluirEquipo  bool      `gorm:"not null;default:false"`
	// AsignacionFlexible selects manual per-product allocation.
	AsignacionFlexible     bool           `gorm:"not null;default:false"`
	ProductosSeleccionados pq.StringArray `gorm:"type:text[]"`
	CreatedAt              time.Time

	Zona         *ZonaTransporte        `gorm:"foreignKey:ZonaID"`
	Asignaciones []AsignacionTransporte `gorm:"foreignKey:CotizacionZonaID"`
}

// AsignacionTransporte is a persisted manual allocation: transports assigned
// to one product within a zone. Nil ProductoID means unattributed.
type AsignacionTransporte struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CotizacionZonaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID       *uuid.UUID      `gorm:"type:uuid"`
	Cantidad         decimal.Decimal `gorm:"type:decimal(8,2);not null"`
}
