package service

import (
	"context"
	"errors"

	"cotizador/internal/dto"
	"cotizador/internal/model"
	"cotizador/internal/repository"

	"github.com/google/uuid"
)

type ZonaService interface {
	Crear(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error)
	Listar(ctx context.Context) ([]dto.ZonaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearZonaRequest) (*dto.ZonaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type zonaService struct {
	repo repository.ZonaRepository
}

func NewZonaService(repo repository.ZonaRepository) ZonaService {
	return &zonaService{repo: repo}
}

func (s *zonaService) Crear(ctx context.Context, req dto.CrearZonaRequest) (*dto.ZonaResponse, error) {
	z := &model.ZonaTransporte{
		Nombre:               req.Nombre,
		CostoBase:            req.CostoBase,
		CostoEquipoAdicional: req.CostoEquipoAdicional,
		TiempoEstimadoMin:    req.TiempoEstimadoMin,
		Activo:               true,
	}
	if err := s.repo.Create(ctx, z); err != nil {
		return nil, errors.New("no se pudo crear la zona (¿nombre duplicado?)")
	}
	return zonaCatalogoToResponse(z), nil
}

func (s *zonaService) Listar(ctx context.Context) ([]dto.ZonaResponse, error) {
	zonas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZonaResponse, 0, len(zonas))
	for i := range zonas {
		out = append(out, *zonaCatalogoToResponse(&zonas[i]))
	}
	return out, nil
}

// Actualizar edits the zone's rates. Persisted quotes keep their snapshot
// totals; only a recompute (preview, edit or cmd/recalc) picks up new rates.
func (s *zonaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearZonaRequest) (*dto.ZonaResponse, error) {
	z, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("zona no encontrada")
	}
	z.Nombre = req.Nombre
	z.CostoBase = req.CostoBase
	z.CostoEquipoAdicional = req.CostoEquipoAdicional
	z.TiempoEstimadoMin = req.TiempoEstimadoMin
	if err := s.repo.Update(ctx, z); err != nil {
		return nil, err
	}
	return zonaCatalogoToResponse(z), nil
}

func (s *zonaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("zona no encontrada")
	}
	return s.repo.SoftDelete(ctx, id)
}

func zonaCatalogoToResponse(z *model.ZonaTransporte) *dto.ZonaResponse {
	return &dto.ZonaResponse{
		ID:                   z.ID.String(),
		Nombre:               z.Nombre,
		CostoBase:            z.CostoBase,
		CostoEquipoAdicional: z.CostoEquipoAdicional,
		TiempoEstimadoMin:    z.TiempoEstimadoMin,
		Activo:               z.Activo,
	}
}
