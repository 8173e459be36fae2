package pricing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrZonaRequerida is returned when a zone configuration references no zone.
// A missing zone is never silently priced as zero — only missing optional
// numeric fields (like the equipment surcharge) default to zero.
var ErrZonaRequerida = errors.New("zona de transporte requerida")

// Zona is the priced delivery tier the allocator works against. Reference
// data owned by the catalog, passed in as a plain value.
type Zona struct {
	Nombre               string
	CostoBase            decimal.Decimal
	CostoEquipoAdicional decimal.Decimal
}

// CostoUnitarioZona is the price of one transport trip to the zone:
// base cost plus, when requested, the additional-equipment surcharge.
// A nil zone is a construction error.
func CostoUnitarioZona(z *Zona, incluirEquipo bool) (decimal.Decimal, error) {
	if z == nil {
		return decimal.Zero, ErrZonaRequerida
	}
	costo := z.CostoBase
	if incluirEquipo {
		costo = costo.Add(z.CostoEquipoAdicional)
	}
	return costo, nil
}

// AsignacionManual is an operator-entered allocation: so many transports for
// this product. A nil ProductoID means the allocation is unattributed
// (whole zone).
type AsignacionManual struct {
	ProductoID *uuid.UUID
	Cantidad   decimal.Decimal
}

// Asignacion is a computed allocation: transports assigned to a product (or
// to the whole zone) and what they cost. Transient — produced fresh on every
// recomputation, never persisted on its own.
type Asignacion struct {
	ProductoID *uuid.UUID
	Cantidad   decimal.Decimal
	Costo      decimal.Decimal
}

// ConfigZona is the per-quote transport configuration for one zone.
type ConfigZona struct {
	Zona           *Zona
	NumTransportes int
	IncluirEquipo  bool
	// AsignacionFlexible selects manual allocation. With an empty manual
	// list the allocator falls through to automatic mode — documented
	// fallback, not an error.
	AsignacionFlexible     bool
	Asignaciones           []AsignacionManual
	ProductosSeleccionados []uuid.UUID
}

// AsignarTransportes distributes a zone's transports across products.
//
// Manual mode: each allocation costs cantidad × unit cost, computed exactly
// as given — the allocator does not validate that quantities sum to
// NumTransportes; that precondition belongs to the caller (CalcularTotales
// enforces it on the authoritative path).
//
// Automatic mode: transports divide evenly across the selected products.
// The division is not rounded — quantities may be fractional — and the last
// allocation absorbs the division remainder so that quantities sum exactly
// to NumTransportes and costs sum exactly to NumTransportes × unit cost.
// With no products selected the whole count goes to a single unattributed
// allocation.
func AsignarTransportes(cfg ConfigZona) ([]Asignacion, error) {
	unitario, err := CostoUnitarioZona(cfg.Zona, cfg.IncluirEquipo)
	if err != nil {
		return nil, err
	}

	if cfg.AsignacionFlexible && len(cfg.Asignaciones) > 0 {
		out := make([]Asignacion, 0, len(cfg.Asignaciones))
		for _, a := range cfg.Asignaciones {
			out = append(out, Asignacion{
				ProductoID: a.ProductoID,
				Cantidad:   a.Cantidad,
				Costo:      a.Cantidad.Mul(unitario),
			})
		}
		return out, nil
	}

	total := decimal.NewFromInt(int64(cfg.NumTransportes))

	if len(cfg.ProductosSeleccionados) == 0 {
		return []Asignacion{{
			ProductoID: nil,
			Cantidad:   total,
			Costo:      total.Mul(unitario),
		}}, nil
	}

	n := len(cfg.ProductosSeleccionados)
	porProducto := total.Div(decimal.NewFromInt(int64(n)))

	out := make([]Asignacion, 0, n)
	acumulado := decimal.Zero
	for i, pid := range cfg.ProductosSeleccionados {
		cantidad := porProducto
		if i == n-1 {
			// Last product absorbs the division remainder: decimal
			// division carries finite precision, and the conservation
			// invariant (sum == NumTransportes) must hold exactly.
			cantidad = total.Sub(acumulado)
		}
		acumulado = acumulado.Add(cantidad)
		id := pid
		out = append(out, Asignacion{
			ProductoID: &id,
			Cantidad:   cantidad,
			Costo:      cantidad.Mul(unitario),
		})
	}
	return out, nil
}

// ValidarAsignacionManual checks the hard precondition for manual mode:
// allocation quantities must sum to the zone's transport count. The UI may
// surface the same mismatch as a soft warning while editing; on the
// authoritative path it is an error.
func ValidarAsignacionManual(cfg ConfigZona) error {
	if !cfg.AsignacionFlexible || len(cfg.Asignaciones) == 0 {
		return nil
	}
	suma := decimal.Zero
	for _, a := range cfg.Asignaciones {
		suma = suma.Add(a.Cantidad)
	}
	esperado := decimal.NewFromInt(int64(cfg.NumTransportes))
	if !suma.Equal(esperado) {
		nombre := ""
		if cfg.Zona != nil {
			nombre = cfg.Zona.Nombre
		}
		return fmt.Errorf("asignaciones manuales de la zona %q suman %s, se esperaban %s transportes",
			nombre, suma.String(), esperado.String())
	}
	return nil
}
