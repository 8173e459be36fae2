package service

import (
	"context"
	"errors"

	"cotizador/internal/dto"
	"cotizador/internal/model"
	"cotizador/internal/repository"

	"github.com/google/uuid"
)

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type proveedorService struct {
	repo repository.ProveedorRepository
}

func NewProveedorService(repo repository.ProveedorRepository) ProveedorService {
	return &proveedorService{repo: repo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := proveedorFromRequest(req)
	p.Activo = true
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, errors.New("no se pudo crear el proveedor (¿NIT duplicado?)")
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Listar(ctx context.Context) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for i := range proveedores {
		out = append(out, *proveedorToResponse(&proveedores[i]))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("proveedor no encontrado")
	}
	p := proveedorFromRequest(req)
	p.ID = existing.ID
	p.Activo = existing.Activo
	p.CreatedAt = existing.CreatedAt
	for i := range p.Contactos {
		p.Contactos[i].ProveedorID = existing.ID
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("proveedor no encontrado")
	}
	return s.repo.SoftDelete(ctx, id)
}

func proveedorFromRequest(req dto.CrearProveedorRequest) *model.Proveedor {
	contactos := make([]model.ContactoProveedor, 0, len(req.Contactos))
	for _, c := range req.Contactos {
		contactos = append(contactos, model.ContactoProveedor{
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	return &model.Proveedor{
		RazonSocial: req.RazonSocial,
		NIT:         req.NIT,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		Rubro:       req.Rubro,
		Contactos:   contactos,
	}
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	contactos := make([]dto.ContactoProveedorResponse, 0, len(p.Contactos))
	for i := range p.Contactos {
		c := &p.Contactos[i]
		contactos = append(contactos, dto.ContactoProveedorResponse{
			ID:       c.ID.String(),
			Nombre:   c.Nombre,
			Cargo:    c.Cargo,
			Telefono: c.Telefono,
			Email:    c.Email,
		})
	}
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		NIT:         p.NIT,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Rubro:       p.Rubro,
		Activo:      p.Activo,
		Contactos:   contactos,
	}
}
