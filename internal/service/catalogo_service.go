package service

// catalogo_service.go — CRUD over the quotable catalog: empleados, productos
// y maquinaria. The catalog only feeds defaults into the quote editor; the
// pricing engine works on the snapshot stored per line, so editing a rate
// here never changes an existing quote until it is recomputed.

import (
	"context"
	"errors"
	"fmt"

	"cotizador/internal/dto"
	"cotizador/internal/model"
	"cotizador/internal/repository"

	"github.com/google/uuid"
)

type CatalogoService interface {
	CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	ListarEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error)
	ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	EliminarEmpleado(ctx context.Context, id uuid.UUID) error

	CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ListarProductos(ctx context.Context, categoria string) ([]dto.ProductoResponse, error)
	ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	EliminarProducto(ctx context.Context, id uuid.UUID) error

	CrearMaquinaria(ctx context.Context, req dto.CrearMaquinariaRequest) (*dto.MaquinariaResponse, error)
	ListarMaquinaria(ctx context.Context) ([]dto.MaquinariaResponse, error)
	ActualizarMaquinaria(ctx context.Context, id uuid.UUID, req dto.CrearMaquinariaRequest) (*dto.MaquinariaResponse, error)
	EliminarMaquinaria(ctx context.Context, id uuid.UUID) error
}

type catalogoService struct {
	empleadoRepo   repository.EmpleadoRepository
	productoRepo   repository.ProductoRepository
	maquinariaRepo repository.MaquinariaRepository
}

func NewCatalogoService(
	empleadoRepo repository.EmpleadoRepository,
	productoRepo repository.ProductoRepository,
	maquinariaRepo repository.MaquinariaRepository,
) CatalogoService {
	return &catalogoService{
		empleadoRepo:   empleadoRepo,
		productoRepo:   productoRepo,
		maquinariaRepo: maquinariaRepo,
	}
}

// ─── Empleados ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearEmpleado(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e := &model.Empleado{
		Nombre:     req.Nombre,
		Cargo:      req.Cargo,
		TarifaHora: req.TarifaHora,
		RecargoARL: req.RecargoARL,
		Telefono:   req.Telefono,
		Activo:     true,
	}
	if err := s.empleadoRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return empleadoToResponse(e), nil
}

func (s *catalogoService) ListarEmpleados(ctx context.Context) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.empleadoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmpleadoResponse, 0, len(empleados))
	for i := range empleados {
		out = append(out, *empleadoToResponse(&empleados[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarEmpleado(ctx context.Context, id uuid.UUID, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e, err := s.empleadoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("empleado no encontrado")
	}
	e.Nombre = req.Nombre
	e.Cargo = req.Cargo
	e.TarifaHora = req.TarifaHora
	e.RecargoARL = req.RecargoARL
	e.Telefono = req.Telefono
	if err := s.empleadoRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return empleadoToResponse(e), nil
}

func (s *catalogoService) EliminarEmpleado(ctx context.Context, id uuid.UUID) error {
	if _, err := s.empleadoRepo.FindByID(ctx, id); err != nil {
		return errors.New("empleado no encontrado")
	}
	return s.empleadoRepo.SoftDelete(ctx, id)
}

// ─── Productos ───────────────────────────────────────────────────────────────

func (s *catalogoService) CrearProducto(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p, err := productoFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.productoRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *catalogoService) ListarProductos(ctx context.Context, categoria string) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.List(ctx, categoria)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		out = append(out, *productoToResponse(&productos[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarProducto(ctx context.Context, id uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	existing, err := s.productoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	p, err := productoFromRequest(req)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.Activo = existing.Activo
	p.CreatedAt = existing.CreatedAt
	if err := s.productoRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *catalogoService) EliminarProducto(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productoRepo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.productoRepo.SoftDelete(ctx, id)
}

// ─── Maquinaria ──────────────────────────────────────────────────────────────

func (s *catalogoService) CrearMaquinaria(ctx context.Context, req dto.CrearMaquinariaRequest) (*dto.MaquinariaResponse, error) {
	m := maquinariaFromRequest(req)
	if err := s.maquinariaRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return maquinariaToResponse(m), nil
}

func (s *catalogoService) ListarMaquinaria(ctx context.Context) ([]dto.MaquinariaResponse, error) {
	maquinas, err := s.maquinariaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaquinariaResponse, 0, len(maquinas))
	for i := range maquinas {
		out = append(out, *maquinariaToResponse(&maquinas[i]))
	}
	return out, nil
}

func (s *catalogoService) ActualizarMaquinaria(ctx context.Context, id uuid.UUID, req dto.CrearMaquinariaRequest) (*dto.MaquinariaResponse, error) {
	existing, err := s.maquinariaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("maquinaria no encontrada")
	}
	m := maquinariaFromRequest(req)
	m.ID = existing.ID
	m.Activo = existing.Activo
	m.CreatedAt = existing.CreatedAt
	if err := s.maquinariaRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return maquinariaToResponse(m), nil
}

func (s *catalogoService) EliminarMaquinaria(ctx context.Context, id uuid.UUID) error {
	if _, err := s.maquinariaRepo.FindByID(ctx, id); err != nil {
		return errors.New("maquinaria no encontrada")
	}
	return s.maquinariaRepo.SoftDelete(ctx, id)
}

// ─── Mapeo ───────────────────────────────────────────────────────────────────

func empleadoToResponse(e *model.Empleado) *dto.EmpleadoResponse {
	return &dto.EmpleadoResponse{
		ID:         e.ID.String(),
		Nombre:     e.Nombre,
		Cargo:      e.Cargo,
		TarifaHora: e.TarifaHora,
		RecargoARL: e.RecargoARL,
		Telefono:   e.Telefono,
		Activo:     e.Activo,
	}
}

func productoFromRequest(req dto.CrearProductoRequest) (*model.Producto, error) {
	var proveedorID *uuid.UUID
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("proveedor_id inválido: %w", err)
		}
		proveedorID = &pid
	}
	unidadMedida := req.UnidadMedida
	if unidadMedida == "" {
		unidadMedida = "unidad"
	}
	return &model.Producto{
		Nombre:              req.Nombre,
		Descripcion:         req.Descripcion,
		Categoria:           req.Categoria,
		TipoPrecio:          req.TipoPrecio,
		PrecioBase:          req.PrecioBase,
		UnidadesPorProducto: req.UnidadesPorProducto,
		UnidadMedida:        unidadMedida,
		ProveedorID:         proveedorID,
		Activo:              true,
	}, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	var proveedorID *string
	if p.ProveedorID != nil {
		pid := p.ProveedorID.String()
		proveedorID = &pid
	}
	return &dto.ProductoResponse{
		ID:                  p.ID.String(),
		Nombre:              p.Nombre,
		Descripcion:         p.Descripcion,
		Categoria:           p.Categoria,
		TipoPrecio:          p.TipoPrecio,
		PrecioBase:          p.PrecioBase,
		UnidadesPorProducto: p.UnidadesPorProducto,
		UnidadMedida:        p.UnidadMedida,
		ProveedorID:         proveedorID,
		Activo:              p.Activo,
	}
}

func maquinariaFromRequest(req dto.CrearMaquinariaRequest) *model.Maquinaria {
	return &model.Maquinaria{
		Nombre:              req.Nombre,
		Descripcion:         req.Descripcion,
		TarifaHora:          req.TarifaHora,
		TarifaDia:           req.TarifaDia,
		TarifaOperador:      req.TarifaOperador,
		CostoMontaje:        req.CostoMontaje,
		MantenimientoPorUso: req.MantenimientoPorUso,
		CombustiblePorHora:  req.CombustiblePorHora,
		Activo:              true,
	}
}

func maquinariaToResponse(m *model.Maquinaria) *dto.MaquinariaResponse {
	return &dto.MaquinariaResponse{
		ID:                  m.ID.String(),
		Nombre:              m.Nombre,
		Descripcion:         m.Descripcion,
		TarifaHora:          m.TarifaHora,
		TarifaDia:           m.TarifaDia,
		TarifaOperador:      m.TarifaOperador,
		CostoMontaje:        m.CostoMontaje,
		MantenimientoPorUso: m.MantenimientoPorUso,
		CombustiblePorHora:  m.CombustiblePorHora,
		Activo:              m.Activo,
	}
}
