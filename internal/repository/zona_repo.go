package repository

import (
	"context"

	"cotizador/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ZonaRepository interface {
	Create(ctx context.Context, z *model.ZonaTransporte) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ZonaTransporte, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ZonaTransporte, error)
	List(ctx context.Context) ([]model.ZonaTransporte, error)
	Update(ctx context.Context, z *model.ZonaTransporte) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type zonaRepo struct{ db *gorm.DB }

func NewZonaRepository(db *gorm.DB) ZonaRepository { return &zonaRepo{db: db} }

func (r *zonaRepo) Create(ctx context.Context, z *model.ZonaTransporte) error {
	return r.db.WithContext(ctx).Create(z).Error
}

func (r *zonaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ZonaTransporte, error) {
	var z model.ZonaTransporte
	err := r.db.WithContext(ctx).First(&z, id).Error
	return &z, err
}

// FindByIDs resolves a set of zone references in one query. Callers must
// check presence per id — an absent zone is an invalid-reference error on
// the pricing path, never a zero-cost default.
func (r *zonaRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*model.ZonaTransporte, error) {
	var zonas []model.ZonaTransporte
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&zonas).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*model.ZonaTransporte, len(zonas))
	for i := range zonas {
		out[zonas[i].ID] = &zonas[i]
	}
	return out, nil
}

func (r *zonaRepo) List(ctx context.Context) ([]model.ZonaTransporte, error) {
	var zonas []model.ZonaTransporte
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre").Find(&zonas).Error
	return zonas, err
}

func (r *zonaRepo) Update(ctx context.Context, z *model.ZonaTransporte) error {
	return r.db.WithContext(ctx).Save(z).Error
}

func (r *zonaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.ZonaTransporte{}).Where("id = ?", id).Update("activo", false).Error
}
