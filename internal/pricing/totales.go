package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BaseRetencion selects what the retention percentage is applied to. It is
// an explicit, versioned parameter — changing the base is a configuration
// change with a migration path (cmd/recalc), never a silent formula edit.
type BaseRetencion string

const (
	// BaseSubtotal applies retention on the subtotal alone. Kept for
	// recomputing quotes persisted before the base change.
	BaseSubtotal BaseRetencion = "subtotal"
	// BaseSubtotalMasMargen applies retention on subtotal + margin. This is
	// the current base for all new quotes.
	BaseSubtotalMasMargen BaseRetencion = "subtotal_mas_margen"
)

// Cotizacion is the engine-side view of a quote: its line items, transport
// configuration, and pricing parameters. Percentage bounds (margen 0–200,
// retención 0–100) are validated at the input boundary, not here — the
// calculator computes out-of-range values mathematically rather than
// clamping, so a validation regression shows up in totals instead of being
// silently corrected.
type Cotizacion struct {
	Items           []Item
	Zonas           []ConfigZona
	MargenPct       decimal.Decimal
	RetencionActiva bool
	RetencionPct    decimal.Decimal
	BaseRetencion   BaseRetencion
}

// Desglose is the full computed breakdown. Invariant:
// Total = Subtotal + MontoMargen − MontoRetencion, with CostoTransporte
// already contained in Subtotal.
type Desglose struct {
	Subtotal        decimal.Decimal
	MontoMargen     decimal.Decimal
	MontoRetencion  decimal.Decimal
	CostoTransporte decimal.Decimal
	Total           decimal.Decimal
}

// SumarItems aggregates line-item totals plus transport allocation costs
// into the subtotal. An empty quote sums to zero.
func SumarItems(items []Item, asignaciones []Asignacion) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Costo())
	}
	for _, a := range asignaciones {
		subtotal = subtotal.Add(a.Costo)
	}
	return subtotal
}

// MargenYRetencion applies the margin percentage to the subtotal, then the
// retention percentage to the configured base, and derives the total.
func MargenYRetencion(subtotal, margenPct decimal.Decimal, retencionActiva bool, retencionPct decimal.Decimal, base BaseRetencion) (montoMargen, montoRetencion, total decimal.Decimal, err error) {
	montoMargen = subtotal.Mul(margenPct).Div(cien)

	montoRetencion = decimal.Zero
	if retencionActiva {
		var baseRetencion decimal.Decimal
		switch base {
		case BaseSubtotal:
			baseRetencion = subtotal
		case BaseSubtotalMasMargen:
			baseRetencion = subtotal.Add(montoMargen)
		default:
			return decimal.Zero, decimal.Zero, decimal.Zero,
				fmt.Errorf("base de retención desconocida: %q", base)
		}
		montoRetencion = baseRetencion.Mul(retencionPct).Div(cien)
	}

	total = subtotal.Add(montoMargen).Sub(montoRetencion)
	return montoMargen, montoRetencion, total, nil
}

// CalcularTotales is the single entry point for pricing a quote. Live
// preview and persisted recomputation both call it — the pipeline reruns in
// full on every change, there is no incremental update.
//
// Steps: validate manual allocations (hard precondition), allocate every
// zone's transports, aggregate items plus allocations into the subtotal
// (transport is inside the subtotal — margin and retention are computed on
// a base that already contains it), then apply margin and retention.
func CalcularTotales(c *Cotizacion) (*Desglose, error) {
	base := c.BaseRetencion
	if base == "" {
		base = BaseSubtotalMasMargen
	}

	costoTransporte := decimal.Zero
	var asignaciones []Asignacion
	for _, zona := range c.Zonas {
		if err := ValidarAsignacionManual(zona); err != nil {
			return nil, err
		}
		asigs, err := AsignarTransportes(zona)
		if err != nil {
			return nil, err
		}
		for _, a := range asigs {
			costoTransporte = costoTransporte.Add(a.Costo)
		}
		asignaciones = append(asignaciones, asigs...)
	}

	subtotal := SumarItems(c.Items, asignaciones)

	montoMargen, montoRetencion, total, err := MargenYRetencion(
		subtotal, c.MargenPct, c.RetencionActiva, c.RetencionPct, base)
	if err != nil {
		return nil, err
	}

	return &Desglose{
		Subtotal:        subtotal,
		MontoMargen:     montoMargen,
		MontoRetencion:  montoRetencion,
		CostoTransporte: costoTransporte,
		Total:           total,
	}, nil
}
