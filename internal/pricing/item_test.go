package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestItemEmpleado(t *testing.T) {
	tests := []struct {
		name   string
		item   ItemEmpleado
		expect string
	}{
		{"horas por tarifa", ItemEmpleado{Horas: d("8"), TarifaHora: d("15000")}, "120000"},
		{"con recargo ARL", ItemEmpleado{Horas: d("8"), TarifaHora: d("15000"), RecargoARL: d("12000")}, "132000"},
		{"con costo extra", ItemEmpleado{Horas: d("4"), TarifaHora: d("20000"), CostoExtra: d("10000")}, "90000"},
		{"horas fraccionales", ItemEmpleado{Horas: d("2.5"), TarifaHora: d("18000")}, "45000"},
		{"cero horas", ItemEmpleado{Horas: d("0"), TarifaHora: d("15000")}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.item.Costo().Equal(d(tt.expect)),
				"got %s, want %s", tt.item.Costo(), tt.expect)
		})
	}
}

func TestItemProducto(t *testing.T) {
	t.Run("por unidad", func(t *testing.T) {
		item := ItemProductoUnidad{Cantidad: d("10"), PrecioBase: d("5000")}
		assert.True(t, item.Costo().Equal(d("50000")))
	})
	t.Run("por medida", func(t *testing.T) {
		// 3 carpas de 24 m² a 2.000 el m²
		item := ItemProductoMedida{Cantidad: d("3"), UnidadesPorProducto: d("24"), PrecioBase: d("2000")}
		assert.True(t, item.Costo().Equal(d("144000")))
	})
	t.Run("medida fraccional", func(t *testing.T) {
		item := ItemProductoMedida{Cantidad: d("1"), UnidadesPorProducto: d("2.5"), PrecioBase: d("1000")}
		assert.True(t, item.Costo().Equal(d("2500")))
	})
}

func TestItemMaquinaria(t *testing.T) {
	tests := []struct {
		name   string
		item   ItemMaquinaria
		expect string
	}{
		{
			"por hora debajo de la jornada",
			ItemMaquinaria{Horas: d("5"), TarifaHora: d("30000"), TarifaDia: d("200000")},
			"150000",
		},
		{
			"tarifa diaria desde 8 horas",
			ItemMaquinaria{Horas: d("8"), TarifaHora: d("30000"), TarifaDia: d("200000")},
			"200000",
		},
		{
			"tarifa diaria sobre 8 horas",
			ItemMaquinaria{Horas: d("12"), TarifaHora: d("30000"), TarifaDia: d("200000")},
			"200000",
		},
		{
			"con operador",
			ItemMaquinaria{Horas: d("4"), TarifaHora: d("30000"), TarifaDia: d("200000"),
				IncluirOperador: true, TarifaOperador: d("12000")},
			"168000", // 120000 + 48000
		},
		{
			"con montaje mantenimiento y combustible",
			ItemMaquinaria{Horas: d("4"), TarifaHora: d("30000"), TarifaDia: d("200000"),
				CostoMontaje: d("50000"), MantenimientoPorUso: d("5000"), CombustiblePorHora: d("8000")},
			"222000", // 120000 + 50000 + 20000 + 32000
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.item.Costo().Equal(d(tt.expect)),
				"got %s, want %s", tt.item.Costo(), tt.expect)
		})
	}
}

func TestItemSubcontrato(t *testing.T) {
	t.Run("precio de reventa fijado gana", func(t *testing.T) {
		item := ItemSubcontrato{CostoProveedor: d("800000"), PrecioReventa: d("1000000"), MargenPct: d("50")}
		assert.True(t, item.Costo().Equal(d("1000000")))
	})
	t.Run("margen por linea sobre costo proveedor", func(t *testing.T) {
		item := ItemSubcontrato{CostoProveedor: d("800000"), MargenPct: d("25")}
		assert.True(t, item.Costo().Equal(d("1000000")))
	})
	t.Run("sin reventa ni margen usa costo proveedor", func(t *testing.T) {
		item := ItemSubcontrato{CostoProveedor: d("800000")}
		assert.True(t, item.Costo().Equal(d("800000")))
	})
}

func TestItemDesechableYCostoManual(t *testing.T) {
	t.Run("desechable por unidad", func(t *testing.T) {
		item := ItemDesechable{Cantidad: d("200"), PrecioUnitario: d("350")}
		assert.True(t, item.Costo().Equal(d("70000")))
	})
	t.Run("costo manual se usa tal cual", func(t *testing.T) {
		item := CostoManual{Valor: d("123456.78")}
		assert.True(t, item.Costo().Equal(d("123456.78")))
	})
}
