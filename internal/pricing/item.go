// Package pricing implements the quote pricing engine: rate primitives,
// transport allocation, aggregation, and margin/retention math.
//
// The package is pure — no I/O, no persistence, no HTTP. Both the live
// preview endpoint and the persisted-totals path MUST go through
// CalcularTotales so the two can never drift. All money is decimal in the
// base currency unit; primitives never round — rounding belongs to display
// boundaries outside this package.
package pricing

import "github.com/shopspring/decimal"

var cien = decimal.NewFromInt(100)

// horasJornada is the cutover at which machinery switches from hourly to
// daily billing.
var horasJornada = decimal.NewFromInt(8)

// Item is a priced line of a quote. Each concrete type computes its own
// total; the aggregator treats the result as opaque and only sums it.
type Item interface {
	Costo() decimal.Decimal
}

// ItemEmpleado prices labor: hours × hourly rate, plus the ARL/insurance
// surcharge and any manual extra cost. Absent surcharges are simply zero.
type ItemEmpleado struct {
	Horas      decimal.Decimal
	TarifaHora decimal.Decimal
	RecargoARL decimal.Decimal
	CostoExtra decimal.Decimal
}

func (i ItemEmpleado) Costo() decimal.Decimal {
	return i.Horas.Mul(i.TarifaHora).Add(i.RecargoARL).Add(i.CostoExtra)
}

// ItemProductoUnidad prices a product sold per unit.
type ItemProductoUnidad struct {
	Cantidad   decimal.Decimal
	PrecioBase decimal.Decimal
}

func (i ItemProductoUnidad) Costo() decimal.Decimal {
	return i.Cantidad.Mul(i.PrecioBase)
}

// ItemProductoMedida prices a product sold by measurement: each product
// contains UnidadesPorProducto billable units.
type ItemProductoMedida struct {
	Cantidad            decimal.Decimal
	UnidadesPorProducto decimal.Decimal
	PrecioBase          decimal.Decimal
}

func (i ItemProductoMedida) Costo() decimal.Decimal {
	return i.Cantidad.Mul(i.UnidadesPorProducto).Mul(i.PrecioBase)
}

// ItemMaquinaria prices machinery rental. At 8 or more hours the daily rate
// replaces the hourly charge; operator, setup, maintenance and fuel costs
// are added on top.
type ItemMaquinaria struct {
	Horas               decimal.Decimal
	TarifaHora          decimal.Decimal
	TarifaDia           decimal.Decimal
	IncluirOperador     bool
	TarifaOperador      decimal.Decimal
	CostoMontaje        decimal.Decimal
	MantenimientoPorUso decimal.Decimal
	CombustiblePorHora  decimal.Decimal
}

func (i ItemMaquinaria) Costo() decimal.Decimal {
	base := i.TarifaHora.Mul(i.Horas)
	if i.Horas.GreaterThanOrEqual(horasJornada) {
		base = i.TarifaDia
	}
	total := base.
		Add(i.CostoMontaje).
		Add(i.MantenimientoPorUso.Mul(i.Horas)).
		Add(i.CombustiblePorHora.Mul(i.Horas))
	if i.IncluirOperador {
		total = total.Add(i.TarifaOperador.Mul(i.Horas))
	}
	return total
}

// ItemSubcontrato prices a subcontracted event service. When the operator
// fixed a resale price it wins; otherwise the supplier cost is marked up by
// the per-line margin.
type ItemSubcontrato struct {
	CostoProveedor decimal.Decimal
	PrecioReventa  decimal.Decimal
	MargenPct      decimal.Decimal
}

func (i ItemSubcontrato) Costo() decimal.Decimal {
	if !i.PrecioReventa.IsZero() {
		return i.PrecioReventa
	}
	return i.CostoProveedor.Add(i.CostoProveedor.Mul(i.MargenPct).Div(cien))
}

// ItemDesechable prices disposable supplies per unit.
type ItemDesechable struct {
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

func (i ItemDesechable) Costo() decimal.Decimal {
	return i.Cantidad.Mul(i.PrecioUnitario)
}

// CostoManual is the explicit manual-override arm of the item union: the
// operator typed a total and that total is used verbatim. Modeling the
// override as its own item type (instead of a boolean flag next to an
// optional field) makes "flag set but value missing" unrepresentable.
type CostoManual struct {
	Valor decimal.Decimal
}

func (i CostoManual) Costo() decimal.Decimal { return i.Valor }
