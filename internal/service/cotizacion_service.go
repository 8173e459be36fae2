package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cotizador/internal/dto"
	"cotizador/internal/infra"
	"cotizador/internal/model"
	"cotizador/internal/pricing"
	"cotizador/internal/repository"
	"cotizador/internal/worker"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type CotizacionService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error)
	Preview(ctx context.Context, req dto.PreviewCotizacionRequest) (*dto.PreviewCotizacionResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error)
	Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	RecalcularTodas(ctx context.Context) (int, error)
	ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error)
	ExportarExcel(ctx context.Context) (*excelize.File, error)
}

type cotizacionService struct {
	repo        repository.CotizacionRepository
	clienteRepo repository.ClienteRepository
	zonaRepo    repository.ZonaRepository
	dispatcher  *worker.Dispatcher
}

func NewCotizacionService(
	repo repository.CotizacionRepository,
	clienteRepo repository.ClienteRepository,
	zonaRepo repository.ZonaRepository,
	dispatcher *worker.Dispatcher,
) CotizacionService {
	return &cotizacionService{
		repo:        repo,
		clienteRepo: clienteRepo,
		zonaRepo:    zonaRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// Persisting and previewing share one computation: both build the engine-side
// quote and hand it to pricing.CalcularTotales. What gets stored is the
// snapshot that call produced — the preview a comercial saw while editing is,
// by construction, the total that lands in the database.

func (s *cotizacionService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	items, pricingItems, err := s.armarItems(req.Items)
	if err != nil {
		return nil, err
	}
	zonas, configs, err := s.armarZonas(ctx, req.Zonas)
	if err != nil {
		return nil, err
	}

	desglose, err := pricing.CalcularTotales(&pricing.Cotizacion{
		Items:           pricingItems,
		Zonas:           configs,
		MargenPct:       req.MargenPct,
		RetencionActiva: req.RetencionActiva,
		RetencionPct:    req.RetencionPct,
		BaseRetencion:   pricing.BaseSubtotalMasMargen,
	})
	if err != nil {
		return nil, err
	}

	var fechaEvento *time.Time
	if req.FechaEvento != nil {
		t, err := time.Parse("2006-01-02", *req.FechaEvento)
		if err != nil {
			return nil, fmt.Errorf("fecha_evento inválida: %w", err)
		}
		fechaEvento = &t
	}

	var cotizacion model.Cotizacion
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		numero, err := s.repo.NextNumero(ctx, tx, time.Now().Year())
		if err != nil {
			return err
		}
		cotizacion = model.Cotizacion{
			Numero:          numero,
			ClienteID:       clienteID,
			UsuarioID:       usuarioID,
			NombreEvento:    req.NombreEvento,
			FechaEvento:     fechaEvento,
			MargenPct:       req.MargenPct,
			RetencionActiva: req.RetencionActiva,
			RetencionPct:    req.RetencionPct,
			BaseRetencion:   string(pricing.BaseSubtotalMasMargen),
			Subtotal:        desglose.Subtotal,
			MontoMargen:     desglose.MontoMargen,
			MontoRetencion:  desglose.MontoRetencion,
			CostoTransporte: desglose.CostoTransporte,
			Total:           desglose.Total,
			Estado:          "borrador",
			EstadoPDF:       "pendiente",
			Observaciones:   req.Observaciones,
			Activo:          true,
			Items:           items,
			Zonas:           zonas,
		}
		return s.repo.Create(ctx, tx, &cotizacion)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarPDF(ctx, cotizacion.ID, req.EmailCliente)

	cotizacion.Cliente = cliente
	return s.cotizacionToResponse(&cotizacion)
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Every edit reprices the quote in full: child collections are replaced and
// the snapshot overwritten with a fresh CalcularTotales run. There is no
// incremental patching of totals.

func (s *cotizacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearCotizacionRequest) (*dto.CotizacionResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	if existing.Estado == "aprobada" {
		return nil, errors.New("una cotización aprobada no puede modificarse")
	}

	clienteID, err := uuid.Parse(req.ClienteID)
	if err != nil {
		return nil, fmt.Errorf("cliente_id inválido: %w", err)
	}
	cliente, err := s.clienteRepo.FindByID(ctx, clienteID)
	if err != nil {
		return nil, errors.New("cliente no encontrado")
	}

	items, pricingItems, err := s.armarItems(req.Items)
	if err != nil {
		return nil, err
	}
	zonas, configs, err := s.armarZonas(ctx, req.Zonas)
	if err != nil {
		return nil, err
	}

	desglose, err := pricing.CalcularTotales(&pricing.Cotizacion{
		Items:           pricingItems,
		Zonas:           configs,
		MargenPct:       req.MargenPct,
		RetencionActiva: req.RetencionActiva,
		RetencionPct:    req.RetencionPct,
		BaseRetencion:   pricing.BaseRetencion(existing.BaseRetencion),
	})
	if err != nil {
		return nil, err
	}

	var fechaEvento *time.Time
	if req.FechaEvento != nil {
		t, err := time.Parse("2006-01-02", *req.FechaEvento)
		if err != nil {
			return nil, fmt.Errorf("fecha_evento inválida: %w", err)
		}
		fechaEvento = &t
	}

	existing.ClienteID = clienteID
	existing.NombreEvento = req.NombreEvento
	existing.FechaEvento = fechaEvento
	existing.MargenPct = req.MargenPct
	existing.RetencionActiva = req.RetencionActiva
	existing.RetencionPct = req.RetencionPct
	existing.Subtotal = desglose.Subtotal
	existing.MontoMargen = desglose.MontoMargen
	existing.MontoRetencion = desglose.MontoRetencion
	existing.CostoTransporte = desglose.CostoTransporte
	existing.Total = desglose.Total
	existing.Observaciones = req.Observaciones
	existing.EstadoPDF = "pendiente"
	existing.PDFPath = nil
	existing.Items = items
	existing.Zonas = zonas

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ReplaceItemsYZonas(ctx, tx, existing); err != nil {
			return err
		}
		// Children were already recreated; persist the header alone so Save
		// does not upsert them a second time.
		header := *existing
		header.Items = nil
		header.Zonas = nil
		header.Cliente = nil
		return s.repo.Update(ctx, tx, &header)
	})
	if txErr != nil {
		return nil, txErr
	}

	s.encolarPDF(ctx, existing.ID, req.EmailCliente)

	existing.Cliente = cliente
	return s.cotizacionToResponse(existing)
}

// ── Preview ───────────────────────────────────────────────────────────────────

// Preview prices a quote without persisting anything. Same mapping, same
// engine call as Crear — the live-editing UI shows exactly what would be
// stored.
func (s *cotizacionService) Preview(ctx context.Context, req dto.PreviewCotizacionRequest) (*dto.PreviewCotizacionResponse, error) {
	_, pricingItems, err := s.armarItems(req.Items)
	if err != nil {
		return nil, err
	}
	zonas, configs, err := s.armarZonas(ctx, req.Zonas)
	if err != nil {
		return nil, err
	}

	desglose, err := pricing.CalcularTotales(&pricing.Cotizacion{
		Items:           pricingItems,
		Zonas:           configs,
		MargenPct:       req.MargenPct,
		RetencionActiva: req.RetencionActiva,
		RetencionPct:    req.RetencionPct,
		BaseRetencion:   pricing.BaseSubtotalMasMargen,
	})
	if err != nil {
		return nil, err
	}

	zonasResp := make([]dto.ZonaCotizacionResponse, 0, len(zonas))
	for i := range zonas {
		zr, err := zonaToResponse(&zonas[i])
		if err != nil {
			return nil, err
		}
		zonasResp = append(zonasResp, *zr)
	}

	return &dto.PreviewCotizacionResponse{
		Desglose: desgloseToResponse(desglose),
		Zonas:    zonasResp,
	}, nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *cotizacionService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CotizacionResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cotización no encontrada")
	}
	return s.cotizacionToResponse(c)
}

func (s *cotizacionService) Listar(ctx context.Context, filter dto.CotizacionFilter) (*dto.CotizacionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cotizaciones, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CotizacionListItem, 0, len(cotizaciones))
	for i := range cotizaciones {
		c := &cotizaciones[i]
		clienteNombre := ""
		if c.Cliente != nil {
			clienteNombre = c.Cliente.Nombre
		}
		items = append(items, dto.CotizacionListItem{
			ID:           c.ID.String(),
			Numero:       c.Numero,
			Cliente:      clienteNombre,
			NombreEvento: c.NombreEvento,
			Total:        c.Total,
			Estado:       c.Estado,
			CreatedAt:    c.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.CotizacionListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *cotizacionService) CambiarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("cotización no encontrada")
	}
	if c.Estado == estado {
		return nil
	}
	return s.repo.UpdateEstado(ctx, id, estado)
}

func (s *cotizacionService) Eliminar(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("cotización no encontrada")
	}
	if c.Estado == "aprobada" {
		return errors.New("una cotización aprobada no puede eliminarse")
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *cotizacionService) ObtenerPDFPath(ctx context.Context, id uuid.UUID) (string, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("cotización no encontrada")
	}
	if c.EstadoPDF != "generado" || c.PDFPath == nil {
		return "", fmt.Errorf("el PDF aún no está generado (estado: %s)", c.EstadoPDF)
	}
	return *c.PDFPath, nil
}

// ExportarExcel builds the back-office workbook over every active quote.
func (s *cotizacionService) ExportarExcel(ctx context.Context) (*excelize.File, error) {
	cotizaciones, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return infra.ExportCotizacionesExcel(cotizaciones)
}

// ── RecalcularTodas ───────────────────────────────────────────────────────────

// RecalcularTodas reruns the pricing pipeline over every active quote and
// rewrites the persisted snapshots. Each quote keeps its own BaseRetencion —
// quotes created before the base change recompute on the old base, never
// silently migrate. Returns the number of quotes updated.
func (s *cotizacionService) RecalcularTodas(ctx context.Context) (int, error) {
	cotizaciones, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	actualizadas := 0
	for i := range cotizaciones {
		c := &cotizaciones[i]
		desglose, err := s.recalcular(c)
		if err != nil {
			return actualizadas, fmt.Errorf("cotización %s: %w", c.Numero, err)
		}
		if err := s.repo.UpdateTotales(ctx, c.ID,
			desglose.Subtotal, desglose.MontoMargen, desglose.MontoRetencion,
			desglose.CostoTransporte, desglose.Total); err != nil {
			return actualizadas, fmt.Errorf("cotización %s: %w", c.Numero, err)
		}
		actualizadas++
	}
	return actualizadas, nil
}

// recalcular rebuilds the engine-side quote from a fully preloaded model and
// runs it through the same orchestrator as creates and previews.
func (s *cotizacionService) recalcular(c *model.Cotizacion) (*pricing.Desglose, error) {
	pricingItems := make([]pricing.Item, 0, len(c.Items))
	for i := range c.Items {
		it, err := itemDesdeModelo(&c.Items[i])
		if err != nil {
			return nil, err
		}
		pricingItems = append(pricingItems, it)
	}
	configs := make([]pricing.ConfigZona, 0, len(c.Zonas))
	for i := range c.Zonas {
		cfg, err := configDesdeModelo(&c.Zonas[i])
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return pricing.CalcularTotales(&pricing.Cotizacion{
		Items:           pricingItems,
		Zonas:           configs,
		MargenPct:       c.MargenPct,
		RetencionActiva: c.RetencionActiva,
		RetencionPct:    c.RetencionPct,
		BaseRetencion:   pricing.BaseRetencion(c.BaseRetencion),
	})
}

// ── Mapeo request → model + engine ───────────────────────────────────────────

// armarItems maps request lines to persistence rows and engine items in one
// pass, so the stored TotalItem is the same Costo() the engine sums.
func (s *cotizacionService) armarItems(reqs []dto.ItemCotizacionRequest) ([]model.CotizacionItem, []pricing.Item, error) {
	items := make([]model.CotizacionItem, 0, len(reqs))
	pricingItems := make([]pricing.Item, 0, len(reqs))

	for idx, req := range reqs {
		var referenciaID *uuid.UUID
		if req.ReferenciaID != nil {
			rid, err := uuid.Parse(*req.ReferenciaID)
			if err != nil {
				return nil, nil, fmt.Errorf("item %d: referencia_id inválido: %w", idx+1, err)
			}
			referenciaID = &rid
		}

		m := model.CotizacionItem{
			Tipo:                req.Tipo,
			ReferenciaID:        referenciaID,
			Descripcion:         req.Descripcion,
			Cantidad:            req.Cantidad,
			Horas:               req.Horas,
			TarifaHora:          req.TarifaHora,
			RecargoARL:          req.RecargoARL,
			CostoExtra:          req.CostoExtra,
			PrecioUnitario:      req.PrecioUnitario,
			UnidadesPorProducto: req.UnidadesPorProducto,
			TarifaDia:           req.TarifaDia,
			IncluirOperador:     req.IncluirOperador,
			TarifaOperador:      req.TarifaOperador,
			CostoMontaje:        req.CostoMontaje,
			MantenimientoPorUso: req.MantenimientoPorUso,
			CombustiblePorHora:  req.CombustiblePorHora,
			CostoProveedor:      req.CostoProveedor,
			PrecioReventa:       req.PrecioReventa,
			MargenItem:          req.MargenItem,
			CostoManual:         req.CostoManual,
		}

		it, err := itemDesdeModelo(&m)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", idx+1, err)
		}
		m.TotalItem = it.Costo()

		items = append(items, m)
		pricingItems = append(pricingItems, it)
	}
	return items, pricingItems, nil
}

// itemDesdeModelo selects the engine arm for a persisted line. An operator
// override is its own tipo ("manual") — never a flag on another arm.
func itemDesdeModelo(m *model.CotizacionItem) (pricing.Item, error) {
	switch m.Tipo {
	case "empleado":
		return pricing.ItemEmpleado{
			Horas:      m.Horas,
			TarifaHora: m.TarifaHora,
			RecargoARL: m.RecargoARL,
			CostoExtra: m.CostoExtra,
		}, nil
	case "producto":
		if !m.UnidadesPorProducto.IsZero() {
			return pricing.ItemProductoMedida{
				Cantidad:            m.Cantidad,
				UnidadesPorProducto: m.UnidadesPorProducto,
				PrecioBase:          m.PrecioUnitario,
			}, nil
		}
		return pricing.ItemProductoUnidad{
			Cantidad:   m.Cantidad,
			PrecioBase: m.PrecioUnitario,
		}, nil
	case "maquinaria":
		return pricing.ItemMaquinaria{
			Horas:               m.Horas,
			TarifaHora:          m.TarifaHora,
			TarifaDia:           m.TarifaDia,
			IncluirOperador:     m.IncluirOperador,
			TarifaOperador:      m.TarifaOperador,
			CostoMontaje:        m.CostoMontaje,
			MantenimientoPorUso: m.MantenimientoPorUso,
			CombustiblePorHora:  m.CombustiblePorHora,
		}, nil
	case "subcontrato":
		return pricing.ItemSubcontrato{
			CostoProveedor: m.CostoProveedor,
			PrecioReventa:  m.PrecioReventa,
			MargenPct:      m.MargenItem,
		}, nil
	case "desechable":
		return pricing.ItemDesechable{
			Cantidad:       m.Cantidad,
			PrecioUnitario: m.PrecioUnitario,
		}, nil
	case "manual":
		return pricing.CostoManual{Valor: m.CostoManual}, nil
	default:
		return nil, fmt.Errorf("tipo de item desconocido: %q", m.Tipo)
	}
}

// armarZonas resolves zone references in one query and maps request zones to
// persistence rows and engine configurations. An unknown zone id is an
// error — never a zero-cost default.
func (s *cotizacionService) armarZonas(ctx context.Context, reqs []dto.ZonaCotizacionRequest) ([]model.CotizacionZona, []pricing.ConfigZona, error) {
	if len(reqs) == 0 {
		return nil, nil, nil
	}

	ids := make([]uuid.UUID, 0, len(reqs))
	for _, req := range reqs {
		zid, err := uuid.Parse(req.ZonaID)
		if err != nil {
			return nil, nil, fmt.Errorf("zona_id inválido: %w", err)
		}
		ids = append(ids, zid)
	}
	zonasCatalogo, err := s.zonaRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	zonas := make([]model.CotizacionZona, 0, len(reqs))
	configs := make([]pricing.ConfigZona, 0, len(reqs))

	for i, req := range reqs {
		zid := ids[i]
		zm, ok := zonasCatalogo[zid]
		if !ok {
			return nil, nil, fmt.Errorf("zona de transporte %s no encontrada", req.ZonaID)
		}

		asignaciones := make([]model.AsignacionTransporte, 0, len(req.Asignaciones))
		for _, a := range req.Asignaciones {
			var pid *uuid.UUID
			if a.ProductoID != nil {
				p, err := uuid.Parse(*a.ProductoID)
				if err != nil {
					return nil, nil, fmt.Errorf("producto_id inválido en asignación: %w", err)
				}
				pid = &p
			}
			asignaciones = append(asignaciones, model.AsignacionTransporte{
				ProductoID: pid,
				Cantidad:   a.Cantidad,
			})
		}

		z := model.CotizacionZona{
			ZonaID:                 zid,
			NumTransportes:         req.NumTransportes,
			IncluirEquipo:          req.IncluirEquipo,
			AsignacionFlexible:     req.AsignacionFlexible,
			ProductosSeleccionados: pq.StringArray(req.ProductosSeleccionados),
			Asignaciones:           asignaciones,
			Zona:                   zm,
		}
		zonas = append(zonas, z)

		cfg, err := configDesdeModelo(&z)
		if err != nil {
			return nil, nil, err
		}
		configs = append(configs, cfg)
	}
	return zonas, configs, nil
}

// configDesdeModelo converts a persisted (or freshly mapped) zone row into
// the engine's configuration. Requires z.Zona to be loaded.
func configDesdeModelo(z *model.CotizacionZona) (pricing.ConfigZona, error) {
	if z.Zona == nil {
		return pricing.ConfigZona{}, pricing.ErrZonaRequerida
	}

	manuales := make([]pricing.AsignacionManual, 0, len(z.Asignaciones))
	for _, a := range z.Asignaciones {
		manuales = append(manuales, pricing.AsignacionManual{
			ProductoID: a.ProductoID,
			Cantidad:   a.Cantidad,
		})
	}

	seleccionados := make([]uuid.UUID, 0, len(z.ProductosSeleccionados))
	for _, s := range z.ProductosSeleccionados {
		pid, err := uuid.Parse(s)
		if err != nil {
			return pricing.ConfigZona{}, fmt.Errorf("producto seleccionado inválido: %w", err)
		}
		seleccionados = append(seleccionados, pid)
	}

	return pricing.ConfigZona{
		Zona: &pricing.Zona{
			Nombre:               z.Zona.Nombre,
			CostoBase:            z.Zona.CostoBase,
			CostoEquipoAdicional: z.Zona.CostoEquipoAdicional,
		},
		NumTransportes:         z.NumTransportes,
		IncluirEquipo:          z.IncluirEquipo,
		AsignacionFlexible:     z.AsignacionFlexible,
		Asignaciones:           manuales,
		ProductosSeleccionados: seleccionados,
	}, nil
}

// ── Mapeo model → response ───────────────────────────────────────────────────

func (s *cotizacionService) cotizacionToResponse(c *model.Cotizacion) (*dto.CotizacionResponse, error) {
	items := make([]dto.ItemCotizacionResponse, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		var refID *string
		if item.ReferenciaID != nil {
			rid := item.ReferenciaID.String()
			refID = &rid
		}
		items = append(items, dto.ItemCotizacionResponse{
			ID:           item.ID.String(),
			Tipo:         item.Tipo,
			ReferenciaID: refID,
			Descripcion:  item.Descripcion,
			Cantidad:     item.Cantidad,
			TotalItem:    item.TotalItem,
		})
	}

	zonas := make([]dto.ZonaCotizacionResponse, 0, len(c.Zonas))
	for i := range c.Zonas {
		zr, err := zonaToResponse(&c.Zonas[i])
		if err != nil {
			return nil, err
		}
		zonas = append(zonas, *zr)
	}

	clienteNombre := ""
	if c.Cliente != nil {
		clienteNombre = c.Cliente.Nombre
	}
	var fechaEvento *string
	if c.FechaEvento != nil {
		f := c.FechaEvento.Format("2006-01-02")
		fechaEvento = &f
	}

	return &dto.CotizacionResponse{
		ID:              c.ID.String(),
		Numero:          c.Numero,
		ClienteID:       c.ClienteID.String(),
		Cliente:         clienteNombre,
		NombreEvento:    c.NombreEvento,
		FechaEvento:     fechaEvento,
		MargenPct:       c.MargenPct,
		RetencionActiva: c.RetencionActiva,
		RetencionPct:    c.RetencionPct,
		BaseRetencion:   c.BaseRetencion,
		Desglose: dto.DesgloseResponse{
			Subtotal:        c.Subtotal,
			MontoMargen:     c.MontoMargen,
			MontoRetencion:  c.MontoRetencion,
			CostoTransporte: c.CostoTransporte,
			Total:           c.Total,
		},
		Estado:        c.Estado,
		EstadoPDF:     c.EstadoPDF,
		Items:         items,
		Zonas:         zonas,
		Observaciones: c.Observaciones,
		CreatedAt:     c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}, nil
}

// zonaToResponse reruns the allocator over the persisted configuration: in
// automatic mode only the selection persists, the split is always derived.
func zonaToResponse(z *model.CotizacionZona) (*dto.ZonaCotizacionResponse, error) {
	cfg, err := configDesdeModelo(z)
	if err != nil {
		return nil, err
	}
	asignaciones, err := pricing.AsignarTransportes(cfg)
	if err != nil {
		return nil, err
	}

	asigs := make([]dto.AsignacionResponse, 0, len(asignaciones))
	for _, a := range asignaciones {
		var pid *string
		if a.ProductoID != nil {
			p := a.ProductoID.String()
			pid = &p
		}
		asigs = append(asigs, dto.AsignacionResponse{
			ProductoID: pid,
			Cantidad:   a.Cantidad,
			Costo:      a.Costo,
		})
	}

	return &dto.ZonaCotizacionResponse{
		ZonaID:         z.ZonaID.String(),
		Zona:           z.Zona.Nombre,
		NumTransportes: z.NumTransportes,
		IncluirEquipo:  z.IncluirEquipo,
		Asignaciones:   asigs,
	}, nil
}

func desgloseToResponse(d *pricing.Desglose) dto.DesgloseResponse {
	return dto.DesgloseResponse{
		Subtotal:        d.Subtotal,
		MontoMargen:     d.MontoMargen,
		MontoRetencion:  d.MontoRetencion,
		CostoTransporte: d.CostoTransporte,
		Total:           d.Total,
	}
}

// encolarPDF dispatches async PDF generation. Best effort — a queue failure
// never fails the quote; the retry cron picks up quotes stuck in pendiente.
func (s *cotizacionService) encolarPDF(ctx context.Context, id uuid.UUID, emailCliente *string) {
	if s.dispatcher == nil {
		return
	}
	payload := map[string]interface{}{
		"cotizacion_id": id.String(),
	}
	if emailCliente != nil && *emailCliente != "" {
		payload["email_cliente"] = *emailCliente
	}
	_ = s.dispatcher.EnqueuePDF(ctx, payload)
}
