package dto

import "github.com/shopspring/decimal"

// ─── Empleados ───────────────────────────────────────────────────────────────

type CrearEmpleadoRequest struct {
	Nombre     string          `json:"nombre"      validate:"required,min=2"`
	Cargo      string          `json:"cargo"       validate:"required"`
	TarifaHora decimal.Decimal `json:"tarifa_hora" validate:"required,gt=0"`
	RecargoARL decimal.Decimal `json:"recargo_arl" validate:"min=0"`
	Telefono   *string         `json:"telefono"`
}

type EmpleadoResponse struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	Cargo      string          `json:"cargo"`
	TarifaHora decimal.Decimal `json:"tarifa_hora"`
	RecargoARL decimal.Decimal `json:"recargo_arl"`
	Telefono   *string         `json:"telefono,omitempty"`
	Activo     bool            `json:"activo"`
}

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre              string          `json:"nombre"                validate:"required,min=2"`
	Descripcion         *string         `json:"descripcion"`
	Categoria           string          `json:"categoria"             validate:"required"`
	TipoPrecio          string          `json:"tipo_precio"           validate:"required,oneof=unidad medida"`
	PrecioBase          decimal.Decimal `json:"precio_base"           validate:"required,gt=0"`
	UnidadesPorProducto decimal.Decimal `json:"unidades_por_producto" validate:"min=0"`
	UnidadMedida        string          `json:"unidad_medida"`
	ProveedorID         *string         `json:"proveedor_id"          validate:"omitempty,uuid"`
}

type ProductoResponse struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	Descripcion         *string         `json:"descripcion,omitempty"`
	Categoria           string          `json:"categoria"`
	TipoPrecio          string          `json:"tipo_precio"`
	PrecioBase          decimal.Decimal `json:"precio_base"`
	UnidadesPorProducto decimal.Decimal `json:"unidades_por_producto"`
	UnidadMedida        string          `json:"unidad_medida"`
	ProveedorID         *string         `json:"proveedor_id,omitempty"`
	Activo              bool            `json:"activo"`
}

// ─── Maquinaria ──────────────────────────────────────────────────────────────

type CrearMaquinariaRequest struct {
	Nombre              string          `json:"nombre"                validate:"required,min=2"`
	Descripcion         *string         `json:"descripcion"`
	TarifaHora          decimal.Decimal `json:"tarifa_hora"           validate:"required,gt=0"`
	TarifaDia           decimal.Decimal `json:"tarifa_dia"            validate:"required,gt=0"`
	TarifaOperador      decimal.Decimal `json:"tarifa_operador"       validate:"min=0"`
	CostoMontaje        decimal.Decimal `json:"costo_montaje"         validate:"min=0"`
	MantenimientoPorUso decimal.Decimal `json:"mantenimiento_por_uso" validate:"min=0"`
	CombustiblePorHora  decimal.Decimal `json:"combustible_por_hora"  validate:"min=0"`
}

type MaquinariaResponse struct {
	ID                  string          `json:"id"`
	Nombre              string          `json:"nombre"`
	Descripcion         *string         `json:"descripcion,omitempty"`
	TarifaHora          decimal.Decimal `json:"tarifa_hora"`
	TarifaDia           decimal.Decimal `json:"tarifa_dia"`
	TarifaOperador      decimal.Decimal `json:"tarifa_operador"`
	CostoMontaje        decimal.Decimal `json:"costo_montaje"`
	MantenimientoPorUso decimal.Decimal `json:"mantenimiento_por_uso"`
	CombustiblePorHora  decimal.Decimal `json:"combustible_por_hora"`
	Activo              bool            `json:"activo"`
}
