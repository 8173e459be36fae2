package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumarItems(t *testing.T) {
	t.Run("cotizacion vacia suma cero", func(t *testing.T) {
		assert.True(t, SumarItems(nil, nil).IsZero())
	})
	t.Run("items y asignaciones", func(t *testing.T) {
		items := []Item{
			ItemProductoUnidad{Cantidad: d("2"), PrecioBase: d("10000")},
			CostoManual{Valor: d("5000")},
		}
		asigs := []Asignacion{{Cantidad: d("1"), Costo: d("50000")}}
		assert.True(t, SumarItems(items, asigs).Equal(d("75000")))
	})
}

func TestMargenYRetencion(t *testing.T) {
	t.Run("regresion base de retencion", func(t *testing.T) {
		// Retention applies on subtotal + margin, not on the bare subtotal.
		// 1.000.000 + 20% margin → base 1.200.000, retención 4% = 48.000.
		margen, retencion, total, err := MargenYRetencion(
			d("1000000"), d("20"), true, d("4"), BaseSubtotalMasMargen)
		require.NoError(t, err)
		assert.True(t, margen.Equal(d("200000")))
		assert.True(t, retencion.Equal(d("48000")), "retención fue %s, no 48000", retencion)
		assert.False(t, retencion.Equal(d("40000")), "retención calculada sobre la base antigua")
		assert.True(t, total.Equal(d("1152000")))
	})

	t.Run("base historica sobre subtotal", func(t *testing.T) {
		_, retencion, _, err := MargenYRetencion(
			d("1000000"), d("20"), true, d("4"), BaseSubtotal)
		require.NoError(t, err)
		assert.True(t, retencion.Equal(d("40000")))
	})

	t.Run("retencion desactivada", func(t *testing.T) {
		_, retencion, total, err := MargenYRetencion(
			d("500000"), d("30"), false, d("4"), BaseSubtotalMasMargen)
		require.NoError(t, err)
		assert.True(t, retencion.IsZero())
		assert.True(t, total.Equal(d("650000")))
	})

	t.Run("base desconocida es error", func(t *testing.T) {
		_, _, _, err := MargenYRetencion(d("100"), d("10"), true, d("4"), BaseRetencion("otra"))
		assert.Error(t, err)
	})

	t.Run("no recorta porcentajes fuera de rango", func(t *testing.T) {
		// The calculator computes mathematically; clamping is the input
		// boundary's job. A regression that clamps here must fail this test.
		margen, _, _, err := MargenYRetencion(d("1000"), d("300"), false, decimal.Zero, BaseSubtotalMasMargen)
		require.NoError(t, err)
		assert.True(t, margen.Equal(d("3000")))

		margen, _, total, err := MargenYRetencion(d("1000"), d("-10"), false, decimal.Zero, BaseSubtotalMasMargen)
		require.NoError(t, err)
		assert.True(t, margen.Equal(d("-100")))
		assert.True(t, total.Equal(d("900")))
	})
}

func TestCalcularTotales(t *testing.T) {
	t.Run("escenario corporativo", func(t *testing.T) {
		// 10×5.000 + 3×20.000 = 110.000; margen 30% = 33.000;
		// retención 4% sobre 143.000 = 5.720; total 137.280.
		c := &Cotizacion{
			Items: []Item{
				ItemProductoUnidad{Cantidad: d("10"), PrecioBase: d("5000")},
				ItemProductoUnidad{Cantidad: d("3"), PrecioBase: d("20000")},
			},
			MargenPct:       d("30"),
			RetencionActiva: true,
			RetencionPct:    d("4"),
			BaseRetencion:   BaseSubtotalMasMargen,
		}
		desglose, err := CalcularTotales(c)
		require.NoError(t, err)
		assert.True(t, desglose.Subtotal.Equal(d("110000")))
		assert.True(t, desglose.MontoMargen.Equal(d("33000")))
		assert.True(t, desglose.MontoRetencion.Equal(d("5720")))
		assert.True(t, desglose.Total.Equal(d("137280")))
	})

	t.Run("cotizacion vacia da ceros", func(t *testing.T) {
		desglose, err := CalcularTotales(&Cotizacion{
			MargenPct: d("30"), RetencionActiva: true, RetencionPct: d("4"),
		})
		require.NoError(t, err)
		assert.True(t, desglose.Subtotal.IsZero())
		assert.True(t, desglose.MontoMargen.IsZero())
		assert.True(t, desglose.MontoRetencion.IsZero())
		assert.True(t, desglose.CostoTransporte.IsZero())
		assert.True(t, desglose.Total.IsZero())
	})

	t.Run("el transporte entra al subtotal antes del margen", func(t *testing.T) {
		c := &Cotizacion{
			Items: []Item{ItemProductoUnidad{Cantidad: d("1"), PrecioBase: d("100000")}},
			Zonas: []ConfigZona{{
				Zona:           &Zona{Nombre: "Sur", CostoBase: d("50000")},
				NumTransportes: 2,
			}},
			MargenPct: d("10"),
		}
		desglose, err := CalcularTotales(c)
		require.NoError(t, err)
		assert.True(t, desglose.CostoTransporte.Equal(d("100000")))
		assert.True(t, desglose.Subtotal.Equal(d("200000")))
		// Margin over 200.000 (with transport), not over 100.000.
		assert.True(t, desglose.MontoMargen.Equal(d("20000")))
	})

	t.Run("invariante de descomposicion", func(t *testing.T) {
		c := &Cotizacion{
			Items: []Item{
				ItemEmpleado{Horas: d("6"), TarifaHora: d("17500"), RecargoARL: d("8000")},
				ItemMaquinaria{Horas: d("9"), TarifaHora: d("30000"), TarifaDia: d("210000")},
				ItemDesechable{Cantidad: d("150"), PrecioUnitario: d("433")},
			},
			Zonas: []ConfigZona{{
				Zona:                   zonaNorte(),
				NumTransportes:         5,
				IncluirEquipo:          true,
				ProductosSeleccionados: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
			}},
			MargenPct:       d("35"),
			RetencionActiva: true,
			RetencionPct:    d("3.5"),
			BaseRetencion:   BaseSubtotalMasMargen,
		}
		desglose, err := CalcularTotales(c)
		require.NoError(t, err)
		esperado := desglose.Subtotal.Add(desglose.MontoMargen).Sub(desglose.MontoRetencion)
		assert.True(t, desglose.Total.Equal(esperado),
			"total %s != subtotal %s + margen %s - retención %s",
			desglose.Total, desglose.Subtotal, desglose.MontoMargen, desglose.MontoRetencion)
	})

	t.Run("idempotencia", func(t *testing.T) {
		pid := uuid.New()
		c := &Cotizacion{
			Items: []Item{ItemSubcontrato{CostoProveedor: d("700000"), MargenPct: d("20")}},
			Zonas: []ConfigZona{{
				Zona:                   zonaNorte(),
				NumTransportes:         3,
				ProductosSeleccionados: []uuid.UUID{pid},
			}},
			MargenPct:       d("25"),
			RetencionActiva: true,
			RetencionPct:    d("4"),
			BaseRetencion:   BaseSubtotalMasMargen,
		}
		primero, err := CalcularTotales(c)
		require.NoError(t, err)
		segundo, err := CalcularTotales(c)
		require.NoError(t, err)
		assert.Equal(t, primero, segundo)
	})

	t.Run("asignacion manual descuadrada es error", func(t *testing.T) {
		p1 := uuid.New()
		c := &Cotizacion{
			Zonas: []ConfigZona{{
				Zona:               zonaNorte(),
				NumTransportes:     3,
				AsignacionFlexible: true,
				Asignaciones:       []AsignacionManual{{ProductoID: &p1, Cantidad: d("2")}},
			}},
		}
		_, err := CalcularTotales(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "asignaciones manuales")
	})

	t.Run("zona faltante es error", func(t *testing.T) {
		c := &Cotizacion{Zonas: []ConfigZona{{NumTransportes: 1}}}
		_, err := CalcularTotales(c)
		assert.ErrorIs(t, err, ErrZonaRequerida)
	})
}
