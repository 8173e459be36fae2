package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// zonaNorte is the fixture zone used across the allocator tests.
func zonaNorte() *Zona {
	return &Zona{Nombre: "Norte", CostoBase: d("50000"), CostoEquipoAdicional: d("25000")}
}

func TestCostoUnitarioZona(t *testing.T) {
	t.Run("sin equipo", func(t *testing.T) {
		c, err := CostoUnitarioZona(zonaNorte(), false)
		require.NoError(t, err)
		assert.True(t, c.Equal(d("50000")))
	})
	t.Run("con equipo", func(t *testing.T) {
		c, err := CostoUnitarioZona(zonaNorte(), true)
		require.NoError(t, err)
		assert.True(t, c.Equal(d("75000")))
	})
	t.Run("recargo de equipo ausente vale cero", func(t *testing.T) {
		zona := &Zona{Nombre: "Centro", CostoBase: d("40000")}
		c, err := CostoUnitarioZona(zona, true)
		require.NoError(t, err)
		assert.True(t, c.Equal(d("40000")))
	})
	t.Run("zona nil es error", func(t *testing.T) {
		_, err := CostoUnitarioZona(nil, false)
		assert.ErrorIs(t, err, ErrZonaRequerida)
	})
}

func TestAsignarTransportesManual(t *testing.T) {
	p1 := uuid.New()
	p2 := uuid.New()
	cfg := ConfigZona{
		Zona:               zonaNorte(),
		NumTransportes:     3,
		AsignacionFlexible: true,
		Asignaciones: []AsignacionManual{
			{ProductoID: &p1, Cantidad: d("1")},
			{ProductoID: &p2, Cantidad: d("2")},
		},
	}

	t.Run("sin equipo", func(t *testing.T) {
		asigs, err := AsignarTransportes(cfg)
		require.NoError(t, err)
		require.Len(t, asigs, 2)
		assert.True(t, asigs[0].Costo.Equal(d("50000")))
		assert.True(t, asigs[1].Costo.Equal(d("100000")))
	})

	t.Run("con equipo", func(t *testing.T) {
		conEquipo := cfg
		conEquipo.IncluirEquipo = true
		asigs, err := AsignarTransportes(conEquipo)
		require.NoError(t, err)
		require.Len(t, asigs, 2)
		assert.True(t, asigs[0].Costo.Equal(d("75000")))
		assert.True(t, asigs[1].Costo.Equal(d("150000")))
	})

	t.Run("el asignador no valida la suma", func(t *testing.T) {
		// Quantities that do not sum to NumTransportes still compute — the
		// hard check lives in CalcularTotales, not here.
		suelto := cfg
		suelto.Asignaciones = []AsignacionManual{{ProductoID: &p1, Cantidad: d("5")}}
		asigs, err := AsignarTransportes(suelto)
		require.NoError(t, err)
		require.Len(t, asigs, 1)
		assert.True(t, asigs[0].Costo.Equal(d("250000")))
	})

	t.Run("lista manual vacia cae a modo automatico", func(t *testing.T) {
		vacio := cfg
		vacio.Asignaciones = nil
		asigs, err := AsignarTransportes(vacio)
		require.NoError(t, err)
		require.Len(t, asigs, 1)
		assert.Nil(t, asigs[0].ProductoID)
		assert.True(t, asigs[0].Cantidad.Equal(d("3")))
	})
}

func TestAsignarTransportesAutomatico(t *testing.T) {
	t.Run("division fraccional", func(t *testing.T) {
		cfg := ConfigZona{
			Zona:                   zonaNorte(),
			NumTransportes:         3,
			ProductosSeleccionados: []uuid.UUID{uuid.New(), uuid.New()},
		}
		asigs, err := AsignarTransportes(cfg)
		require.NoError(t, err)
		require.Len(t, asigs, 2)
		assert.True(t, asigs[0].Cantidad.Equal(d("1.5")))
		assert.True(t, asigs[1].Cantidad.Equal(d("1.5")))
	})

	t.Run("sin productos seleccionados asigna la zona completa", func(t *testing.T) {
		cfg := ConfigZona{Zona: zonaNorte(), NumTransportes: 4}
		asigs, err := AsignarTransportes(cfg)
		require.NoError(t, err)
		require.Len(t, asigs, 1)
		assert.Nil(t, asigs[0].ProductoID)
		assert.True(t, asigs[0].Cantidad.Equal(d("4")))
		assert.True(t, asigs[0].Costo.Equal(d("200000")))
	})

	t.Run("conservacion exacta para cualquier N", func(t *testing.T) {
		// Sum of quantities == NumTransportes and sum of costs ==
		// NumTransportes × unit cost, including divisions that do not
		// terminate (N=3, N=7).
		for _, n := range []int{1, 2, 3, 4, 5, 7} {
			productos := make([]uuid.UUID, n)
			for i := range productos {
				productos[i] = uuid.New()
			}
			cfg := ConfigZona{
				Zona:                   zonaNorte(),
				NumTransportes:         5,
				IncluirEquipo:          true,
				ProductosSeleccionados: productos,
			}
			asigs, err := AsignarTransportes(cfg)
			require.NoError(t, err)
			require.Len(t, asigs, n)

			sumaCantidad := decimal.Zero
			sumaCosto := decimal.Zero
			for _, a := range asigs {
				sumaCantidad = sumaCantidad.Add(a.Cantidad)
				sumaCosto = sumaCosto.Add(a.Costo)
			}
			assert.True(t, sumaCantidad.Equal(d("5")), "N=%d: cantidades suman %s", n, sumaCantidad)
			assert.True(t, sumaCosto.Equal(d("375000")), "N=%d: costos suman %s", n, sumaCosto)
		}
	})

	t.Run("zona de costo cero", func(t *testing.T) {
		cfg := ConfigZona{
			Zona:                   &Zona{Nombre: "Local", CostoBase: d("0")},
			NumTransportes:         9,
			ProductosSeleccionados: []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
		}
		asigs, err := AsignarTransportes(cfg)
		require.NoError(t, err)
		for _, a := range asigs {
			assert.True(t, a.Costo.IsZero())
		}
	})
}

func TestValidarAsignacionManual(t *testing.T) {
	p1 := uuid.New()

	t.Run("suma correcta pasa", func(t *testing.T) {
		cfg := ConfigZona{
			Zona: zonaNorte(), NumTransportes: 2, AsignacionFlexible: true,
			Asignaciones: []AsignacionManual{{ProductoID: &p1, Cantidad: d("2")}},
		}
		assert.NoError(t, ValidarAsignacionManual(cfg))
	})

	t.Run("suma incorrecta falla", func(t *testing.T) {
		cfg := ConfigZona{
			Zona: zonaNorte(), NumTransportes: 3, AsignacionFlexible: true,
			Asignaciones: []AsignacionManual{{ProductoID: &p1, Cantidad: d("2")}},
		}
		err := ValidarAsignacionManual(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Norte")
	})

	t.Run("modo automatico no valida", func(t *testing.T) {
		cfg := ConfigZona{Zona: zonaNorte(), NumTransportes: 3}
		assert.NoError(t, ValidarAsignacionManual(cfg))
	})
}
