package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cotizador/internal/dto"
	"cotizador/internal/model"
	"cotizador/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubCotizacionRepo is an in-memory CotizacionRepository. DB() returns nil so
// runTx executes the callback directly, without a real transaction.
type stubCotizacionRepo struct {
	cotizaciones map[uuid.UUID]*model.Cotizacion
	numeroSeq    int
}

func newStubCotizacionRepo() *stubCotizacionRepo {
	return &stubCotizacionRepo{cotizaciones: make(map[uuid.UUID]*model.Cotizacion)}
}

func (r *stubCotizacionRepo) DB() *gorm.DB { return nil }

func (r *stubCotizacionRepo) Create(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cotizaciones[c.ID] = c
	return nil
}

func (r *stubCotizacionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	c, ok := r.cotizaciones[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubCotizacionRepo) List(_ context.Context, _ dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	out := make([]model.Cotizacion, 0, len(r.cotizaciones))
	for _, c := range r.cotizaciones {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubCotizacionRepo) ListAll(_ context.Context) ([]model.Cotizacion, error) {
	out := make([]model.Cotizacion, 0, len(r.cotizaciones))
	for _, c := range r.cotizaciones {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCotizacionRepo) Update(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	stored, ok := r.cotizaciones[c.ID]
	if !ok {
		return errors.New("not found")
	}
	items, zonas := stored.Items, stored.Zonas
	*stored = *c
	stored.Items, stored.Zonas = items, zonas
	return nil
}

func (r *stubCotizacionRepo) ReplaceItemsYZonas(_ context.Context, _ *gorm.DB, c *model.Cotizacion) error {
	stored, ok := r.cotizaciones[c.ID]
	if !ok {
		return errors.New("not found")
	}
	stored.Items = c.Items
	stored.Zonas = c.Zonas
	return nil
}

func (r *stubCotizacionRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("not found")
	}
	c.Estado = estado
	return nil
}

func (r *stubCotizacionRepo) UpdateTotales(_ context.Context, id uuid.UUID, subtotal, montoMargen, montoRetencion, costoTransporte, total decimal.Decimal) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("not found")
	}
	c.Subtotal = subtotal
	c.MontoMargen = montoMargen
	c.MontoRetencion = montoRetencion
	c.CostoTransporte = costoTransporte
	c.Total = total
	return nil
}

func (r *stubCotizacionRepo) UpdatePDF(_ context.Context, id uuid.UUID, estadoPDF string, pdfPath, lastError *string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("not found")
	}
	c.EstadoPDF = estadoPDF
	c.PDFPath = pdfPath
	c.LastError = lastError
	return nil
}

func (r *stubCotizacionRepo) ScheduleRetry(_ context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, lastError string) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("not found")
	}
	c.RetryCount = retryCount
	c.NextRetryAt = &nextRetryAt
	c.LastError = &lastError
	return nil
}

func (r *stubCotizacionRepo) ListPendingPDFRetries(_ context.Context, _ time.Time, _ int) ([]model.Cotizacion, error) {
	return nil, nil
}

func (r *stubCotizacionRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.cotizaciones[id]
	if !ok {
		return errors.New("not found")
	}
	c.Activo = false
	return nil
}

func (r *stubCotizacionRepo) NextNumero(_ context.Context, _ *gorm.DB, anio int) (string, error) {
	r.numeroSeq++
	return fmt.Sprintf("COT-%d-%03d", anio, r.numeroSeq), nil
}

var _ repository.CotizacionRepository = (*stubCotizacionRepo)(nil)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) { return nil, nil }
func (r *stubClienteRepo) Update(_ context.Context, _ *model.Cliente) error { return nil }
func (r *stubClienteRepo) SoftDelete(_ context.Context, _ uuid.UUID) error  { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubZonaRepo struct {
	zonas map[uuid.UUID]*model.ZonaTransporte
}

func (r *stubZonaRepo) Create(_ context.Context, z *model.ZonaTransporte) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	r.zonas[z.ID] = z
	return nil
}

func (r *stubZonaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ZonaTransporte, error) {
	z, ok := r.zonas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return z, nil
}

func (r *stubZonaRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ZonaTransporte, error) {
	out := make(map[uuid.UUID]*model.ZonaTransporte)
	for _, id := range ids {
		if z, ok := r.zonas[id]; ok {
			out[id] = z
		}
	}
	return out, nil
}

func (r *stubZonaRepo) List(_ context.Context) ([]model.ZonaTransporte, error) { return nil, nil }
func (r *stubZonaRepo) Update(_ context.Context, _ *model.ZonaTransporte) error { return nil }
func (r *stubZonaRepo) SoftDelete(_ context.Context, _ uuid.UUID) error         { return nil }

var _ repository.ZonaRepository = (*stubZonaRepo)(nil)

// ── Fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	svc       CotizacionService
	repo      *stubCotizacionRepo
	clienteID uuid.UUID
	zonaID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newStubCotizacionRepo()
	clienteRepo := &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
	zonaRepo := &stubZonaRepo{zonas: make(map[uuid.UUID]*model.ZonaTransporte)}

	cliente := &model.Cliente{Nombre: "Industrias Acme", Tipo: "corporativo", Activo: true}
	require.NoError(t, clienteRepo.Create(context.Background(), cliente))

	zona := &model.ZonaTransporte{
		Nombre:    "Norte",
		CostoBase: d("80000"),
		Activo:    true,
	}
	require.NoError(t, zonaRepo.Create(context.Background(), zona))

	return &fixture{
		svc:       NewCotizacionService(repo, clienteRepo, zonaRepo, nil),
		repo:      repo,
		clienteID: cliente.ID,
		zonaID:    zona.ID,
	}
}

func reqCorporativa(f *fixture) dto.CrearCotizacionRequest {
	return dto.CrearCotizacionRequest{
		ClienteID:       f.clienteID.String(),
		NombreEvento:    "Lanzamiento corporativo",
		MargenPct:       d("30"),
		RetencionActiva: true,
		RetencionPct:    d("4"),
		Items: []dto.ItemCotizacionRequest{
			{Tipo: "producto", Descripcion: "Silla Rimax", Cantidad: d("10"), PrecioUnitario: d("5000")},
			{Tipo: "producto", Descripcion: "Mesa redonda", Cantidad: d("3"), PrecioUnitario: d("20000")},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCrearCotizacion(t *testing.T) {
	ctx := context.Background()

	t.Run("calcula y persiste el desglose completo", func(t *testing.T) {
		f := newFixture(t)
		// 10×5.000 + 3×20.000 = 110.000; margen 30% = 33.000;
		// retención 4% sobre 143.000 = 5.720; total 137.280.
		resp, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)

		assert.True(t, resp.Desglose.Subtotal.Equal(d("110000")))
		assert.True(t, resp.Desglose.MontoMargen.Equal(d("33000")))
		assert.True(t, resp.Desglose.MontoRetencion.Equal(d("5720")))
		assert.True(t, resp.Desglose.Total.Equal(d("137280")))
		assert.Equal(t, "borrador", resp.Estado)
		assert.Equal(t, "pendiente", resp.EstadoPDF)
		assert.Equal(t, "subtotal_mas_margen", resp.BaseRetencion)
	})

	t.Run("numeracion secuencial por anio", func(t *testing.T) {
		f := newFixture(t)
		anio := time.Now().Year()

		r1, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		r2, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)

		assert.Equal(t, fmt.Sprintf("COT-%d-001", anio), r1.Numero)
		assert.Equal(t, fmt.Sprintf("COT-%d-002", anio), r2.Numero)
	})

	t.Run("cotizacion vacia totaliza cero", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.Items = nil

		resp, err := f.svc.Crear(ctx, uuid.New(), req)
		require.NoError(t, err)
		assert.True(t, resp.Desglose.Subtotal.IsZero())
		assert.True(t, resp.Desglose.Total.IsZero())
	})

	t.Run("cliente inexistente es rechazado", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.ClienteID = uuid.NewString()

		_, err := f.svc.Crear(ctx, uuid.New(), req)
		assert.ErrorContains(t, err, "cliente no encontrado")
	})

	t.Run("zona inexistente es rechazada", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.Zonas = []dto.ZonaCotizacionRequest{
			{ZonaID: uuid.NewString(), NumTransportes: 2},
		}

		_, err := f.svc.Crear(ctx, uuid.New(), req)
		assert.ErrorContains(t, err, "zona de transporte")
	})

	t.Run("tipo de item desconocido es rechazado", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.Items = append(req.Items, dto.ItemCotizacionRequest{
			Tipo: "catering", Descripcion: "Almuerzo",
		})

		_, err := f.svc.Crear(ctx, uuid.New(), req)
		assert.ErrorContains(t, err, "tipo de item desconocido")
	})

	t.Run("asignacion manual que no suma num_transportes es rechazada", func(t *testing.T) {
		f := newFixture(t)
		pid := uuid.NewString()
		req := reqCorporativa(f)
		req.Zonas = []dto.ZonaCotizacionRequest{{
			ZonaID:             f.zonaID.String(),
			NumTransportes:     3,
			AsignacionFlexible: true,
			Asignaciones: []dto.AsignacionManualRequest{
				{ProductoID: &pid, Cantidad: d("2")},
			},
		}}

		_, err := f.svc.Crear(ctx, uuid.New(), req)
		assert.Error(t, err)
		// Nothing was persisted: the engine runs before the transaction.
		assert.Empty(t, f.repo.cotizaciones)
	})

	t.Run("transporte entra al subtotal antes del margen", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.Zonas = []dto.ZonaCotizacionRequest{
			{ZonaID: f.zonaID.String(), NumTransportes: 2},
		}

		resp, err := f.svc.Crear(ctx, uuid.New(), req)
		require.NoError(t, err)
		// 110.000 + 2×80.000 = 270.000; margen 30% = 81.000;
		// retención 4% sobre 351.000 = 14.040; total 336.960.
		assert.True(t, resp.Desglose.CostoTransporte.Equal(d("160000")))
		assert.True(t, resp.Desglose.Subtotal.Equal(d("270000")))
		assert.True(t, resp.Desglose.Total.Equal(d("336960")), "total fue %s", resp.Desglose.Total)
	})
}

func TestPreviewCotizacion(t *testing.T) {
	ctx := context.Background()

	t.Run("preview y creacion producen el mismo desglose", func(t *testing.T) {
		f := newFixture(t)
		crearReq := reqCorporativa(f)
		crearReq.Zonas = []dto.ZonaCotizacionRequest{
			{ZonaID: f.zonaID.String(), NumTransportes: 2},
		}

		preview, err := f.svc.Preview(ctx, dto.PreviewCotizacionRequest{
			MargenPct:       crearReq.MargenPct,
			RetencionActiva: crearReq.RetencionActiva,
			RetencionPct:    crearReq.RetencionPct,
			Items:           crearReq.Items,
			Zonas:           crearReq.Zonas,
		})
		require.NoError(t, err)

		creada, err := f.svc.Crear(ctx, uuid.New(), crearReq)
		require.NoError(t, err)

		assert.True(t, preview.Desglose.Subtotal.Equal(creada.Desglose.Subtotal))
		assert.True(t, preview.Desglose.MontoMargen.Equal(creada.Desglose.MontoMargen))
		assert.True(t, preview.Desglose.MontoRetencion.Equal(creada.Desglose.MontoRetencion))
		assert.True(t, preview.Desglose.Total.Equal(creada.Desglose.Total))
	})

	t.Run("preview no persiste nada", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)

		_, err := f.svc.Preview(ctx, dto.PreviewCotizacionRequest{
			MargenPct: req.MargenPct,
			Items:     req.Items,
		})
		require.NoError(t, err)
		assert.Empty(t, f.repo.cotizaciones)
	})

	t.Run("expone el reparto de transportes por zona", func(t *testing.T) {
		f := newFixture(t)
		resp, err := f.svc.Preview(ctx, dto.PreviewCotizacionRequest{
			Zonas: []dto.ZonaCotizacionRequest{
				{ZonaID: f.zonaID.String(), NumTransportes: 2},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Zonas, 1)
		require.Len(t, resp.Zonas[0].Asignaciones, 1)
		assert.True(t, resp.Zonas[0].Asignaciones[0].Costo.Equal(d("160000")))
	})
}

func TestActualizarCotizacion(t *testing.T) {
	ctx := context.Background()

	t.Run("reemplaza items y recalcula el snapshot", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)

		req := reqCorporativa(f)
		req.Items = []dto.ItemCotizacionRequest{
			{Tipo: "manual", Descripcion: "Operador logístico", CostoManual: d("1000000")},
		}
		req.MargenPct = d("20")

		resp, err := f.svc.Actualizar(ctx, id, req)
		require.NoError(t, err)
		// 1.000.000 + 20% = 1.200.000; retención 4% = 48.000.
		assert.True(t, resp.Desglose.MontoRetencion.Equal(d("48000")))
		assert.True(t, resp.Desglose.Total.Equal(d("1152000")))
		assert.Equal(t, "pendiente", resp.EstadoPDF)
	})

	t.Run("conserva la base de retencion historica", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)

		// Simulate a quote persisted before the base change.
		f.repo.cotizaciones[id].BaseRetencion = "subtotal"

		req := reqCorporativa(f)
		req.Items = []dto.ItemCotizacionRequest{
			{Tipo: "manual", Descripcion: "Operador logístico", CostoManual: d("1000000")},
		}
		req.MargenPct = d("20")

		resp, err := f.svc.Actualizar(ctx, id, req)
		require.NoError(t, err)
		// Historic base: retención 4% sobre 1.000.000 = 40.000, no 48.000.
		assert.True(t, resp.Desglose.MontoRetencion.Equal(d("40000")), "retención fue %s", resp.Desglose.MontoRetencion)
	})

	t.Run("una cotizacion aprobada no se modifica", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)
		require.NoError(t, f.svc.CambiarEstado(ctx, id, "aprobada"))

		_, err = f.svc.Actualizar(ctx, id, reqCorporativa(f))
		assert.ErrorContains(t, err, "aprobada")
	})
}

func TestEliminarCotizacion(t *testing.T) {
	ctx := context.Background()

	t.Run("borrado logico", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)

		require.NoError(t, f.svc.Eliminar(ctx, id))
		assert.False(t, f.repo.cotizaciones[id].Activo)
	})

	t.Run("una cotizacion aprobada no se elimina", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)
		require.NoError(t, f.svc.CambiarEstado(ctx, id, "aprobada"))

		err = f.svc.Eliminar(ctx, id)
		assert.ErrorContains(t, err, "aprobada")
		assert.True(t, f.repo.cotizaciones[id].Activo)
	})
}

func TestRecalcularTodas(t *testing.T) {
	ctx := context.Background()

	t.Run("recalcular sin cambios es idempotente", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)

		n, err := f.svc.RecalcularTodas(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		c := f.repo.cotizaciones[id]
		assert.True(t, c.Total.Equal(d("137280")), "total tras recalcular fue %s", c.Total)
	})

	t.Run("cada cotizacion conserva su propia base", func(t *testing.T) {
		f := newFixture(t)
		req := reqCorporativa(f)
		req.Items = []dto.ItemCotizacionRequest{
			{Tipo: "manual", Descripcion: "Operador logístico", CostoManual: d("1000000")},
		}
		req.MargenPct = d("20")

		nueva, err := f.svc.Crear(ctx, uuid.New(), req)
		require.NoError(t, err)
		vieja, err := f.svc.Crear(ctx, uuid.New(), req)
		require.NoError(t, err)

		viejaID := uuid.MustParse(vieja.ID)
		f.repo.cotizaciones[viejaID].BaseRetencion = "subtotal"

		n, err := f.svc.RecalcularTodas(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		assert.True(t, f.repo.cotizaciones[uuid.MustParse(nueva.ID)].MontoRetencion.Equal(d("48000")))
		assert.True(t, f.repo.cotizaciones[viejaID].MontoRetencion.Equal(d("40000")))
	})
}

func TestObtenerPDFPath(t *testing.T) {
	ctx := context.Background()

	t.Run("pendiente es conflicto", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)

		_, err = f.svc.ObtenerPDFPath(ctx, uuid.MustParse(creada.ID))
		assert.ErrorContains(t, err, "no está generado")
	})

	t.Run("generado devuelve la ruta", func(t *testing.T) {
		f := newFixture(t)
		creada, err := f.svc.Crear(ctx, uuid.New(), reqCorporativa(f))
		require.NoError(t, err)
		id := uuid.MustParse(creada.ID)

		path := "/tmp/cotizador/pdfs/cotizacion_COT-2026-001.pdf"
		require.NoError(t, f.repo.UpdatePDF(ctx, id, "generado", &path, nil))

		got, err := f.svc.ObtenerPDFPath(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})
}
