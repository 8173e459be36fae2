package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// CotizacionFilter is bound from the query string of GET /v1/cotizaciones.
type CotizacionFilter struct {
	Estado    string `form:"estado"`     // borrador | enviada | aprobada | rechazada | all
	ClienteID string `form:"cliente_id"` // optional UUID
	Anio      int    `form:"anio"`       // optional; 0 = all years
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemCotizacionRequest is one line of a quote. Tipo selects which fields
// apply; percentages outside documented bounds are rejected here so the
// engine never needs to clamp.
type ItemCotizacionRequest struct {
	Tipo         string  `json:"tipo"          validate:"required,oneof=empleado producto maquinaria subcontrato desechable manual"`
	ReferenciaID *string `json:"referencia_id" validate:"omitempty,uuid"`
	Descripcion  string  `json:"descripcion"   validate:"required,min=2"`

	Cantidad            decimal.Decimal `json:"cantidad"              validate:"min=0"`
	Horas               decimal.Decimal `json:"horas"                 validate:"min=0"`
	TarifaHora          decimal.Decimal `json:"tarifa_hora"           validate:"min=0"`
	RecargoARL          decimal.Decimal `json:"recargo_arl"           validate:"min=0"`
	CostoExtra          decimal.Decimal `json:"costo_extra"           validate:"min=0"`
	PrecioUnitario      decimal.Decimal `json:"precio_unitario"       validate:"min=0"`
	UnidadesPorProducto decimal.Decimal `json:"unidades_por_producto" validate:"min=0"`
	TarifaDia           decimal.Decimal `json:"tarifa_dia"            validate:"min=0"`
	IncluirOperador     bool            `json:"incluir_operador"`
	TarifaOperador      decimal.Decimal `json:"tarifa_operador"       validate:"min=0"`
	CostoMontaje        decimal.Decimal `json:"costo_montaje"         validate:"min=0"`
	MantenimientoPorUso decimal.Decimal `json:"mantenimiento_por_uso" validate:"min=0"`
	CombustiblePorHora  decimal.Decimal `json:"combustible_por_hora"  validate:"min=0"`
	CostoProveedor      decimal.Decimal `json:"costo_proveedor"       validate:"min=0"`
	PrecioReventa       decimal.Decimal `json:"precio_reventa"        validate:"min=0"`
	MargenItem          decimal.Decimal `json:"margen_item"           validate:"min=0,max=200"`
	CostoManual         decimal.Decimal `json:"costo_manual"          validate:"min=0"`
}

// AsignacionManualRequest pairs a product (or null for whole-zone) with a
// number of transports.
type AsignacionManualRequest struct {
	ProductoID *string         `json:"producto_id" validate:"omitempty,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required"`
}

// ZonaCotizacionRequest is the per-zone transport configuration. In manual
// mode (asignacion_flexible + non-empty asignaciones) quantities must sum to
// num_transportes — enforced as a hard precondition by the engine.
type ZonaCotizacionRequest struct {
	ZonaID                 string                    `json:"zona_id"                 validate:"required,uuid"`
	NumTransportes         int                       `json:"num_transportes"         validate:"required,min=1"`
	IncluirEquipo          bool                      `json:"incluir_equipo"`
	AsignacionFlexible     bool                      `json:"asignacion_flexible"`
	Asignaciones           []AsignacionManualRequest `json:"asignaciones"            validate:"dive"`
	ProductosSeleccionados []string                  `json:"productos_seleccionados" validate:"dive,uuid"`
}

type CrearCotizacionRequest struct {
	ClienteID       string                  `json:"cliente_id"       validate:"required,uuid"`
	NombreEvento    string                  `json:"nombre_evento"    validate:"required,min=2"`
	FechaEvento     *string                 `json:"fecha_evento"     validate:"omitempty,datetime=2006-01-02"`
	MargenPct       decimal.Decimal         `json:"margen_pct"       validate:"min=0,max=200"`
	RetencionActiva bool                    `json:"retencion_activa"`
	RetencionPct    decimal.Decimal         `json:"retencion_pct"    validate:"min=0,max=100"`
	Items           []ItemCotizacionRequest `json:"items"            validate:"dive"`
	Zonas           []ZonaCotizacionRequest `json:"zonas"            validate:"dive"`
	Observaciones   *string                 `json:"observaciones"`
	EmailCliente    *string                 `json:"email_cliente"    validate:"omitempty,email"`
}

// PreviewCotizacionRequest prices a quote without persisting anything. It
// carries the same shape as a create so the live-editing UI and the
// persistence path share one computation.
type PreviewCotizacionRequest struct {
	MargenPct       decimal.Decimal         `json:"margen_pct"       validate:"min=0,max=200"`
	RetencionActiva bool                    `json:"retencion_activa"`
	RetencionPct    decimal.Decimal         `json:"retencion_pct"    validate:"min=0,max=100"`
	Items           []ItemCotizacionRequest `json:"items"            validate:"dive"`
	Zonas           []ZonaCotizacionRequest `json:"zonas"            validate:"dive"`
}

type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=borrador enviada aprobada rechazada"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemCotizacionResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	ReferenciaID *string         `json:"referencia_id,omitempty"`
	Descripcion  string          `json:"descripcion"`
	Cantidad     decimal.Decimal `json:"cantidad"`
	TotalItem    decimal.Decimal `json:"total_item"`
}

type AsignacionResponse struct {
	ProductoID *string         `json:"producto_id"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Costo      decimal.Decimal `json:"costo"`
}

type ZonaCotizacionResponse struct {
	ZonaID         string               `json:"zona_id"`
	Zona           string               `json:"zona"`
	NumTransportes int                  `json:"num_transportes"`
	IncluirEquipo  bool                 `json:"incluir_equipo"`
	Asignaciones   []AsignacionResponse `json:"asignaciones"`
}

// DesgloseResponse is the computed breakdown: total = subtotal + margen −
// retención, with transport already inside the subtotal.
type DesgloseResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	MontoMargen     decimal.Decimal `json:"monto_margen"`
	MontoRetencion  decimal.Decimal `json:"monto_retencion"`
	CostoTransporte decimal.Decimal `json:"costo_transporte"`
	Total           decimal.Decimal `json:"total"`
}

// PreviewCotizacionResponse is what the live-editing UI renders on every
// change: the breakdown plus the computed per-zone allocation split.
type PreviewCotizacionResponse struct {
	Desglose DesgloseResponse         `json:"desglose"`
	Zonas    []ZonaCotizacionResponse `json:"zonas"`
}

type CotizacionResponse struct {
	ID              string                   `json:"id"`
	Numero          string                   `json:"numero"`
	ClienteID       string                   `json:"cliente_id"`
	Cliente         string                   `json:"cliente,omitempty"`
	NombreEvento    string                   `json:"nombre_evento"`
	FechaEvento     *string                  `json:"fecha_evento,omitempty"`
	MargenPct       decimal.Decimal          `json:"margen_pct"`
	RetencionActiva bool                     `json:"retencion_activa"`
	RetencionPct    decimal.Decimal          `json:"retencion_pct"`
	BaseRetencion   string                   `json:"base_retencion"`
	Desglose        DesgloseResponse         `json:"desglose"`
	Estado          string                   `json:"estado"`
	EstadoPDF       string                   `json:"estado_pdf"`
	Items           []ItemCotizacionResponse `json:"items"`
	Zonas           []ZonaCotizacionResponse `json:"zonas"`
	Observaciones   *string                  `json:"observaciones,omitempty"`
	CreatedAt       string                   `json:"created_at"`
}

type CotizacionListItem struct {
	ID           string          `json:"id"`
	Numero       string          `json:"numero"`
	Cliente      string          `json:"cliente"`
	NombreEvento string          `json:"nombre_evento"`
	Total        decimal.Decimal `json:"total"`
	Estado       string          `json:"estado"`
	CreatedAt    string          `json:"created_at"`
}

type CotizacionListResponse struct {
	Data  []CotizacionListItem `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
