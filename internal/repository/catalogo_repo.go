package repository

// catalogo_repo.go — repositories for the quotable catalog: empleados,
// productos and maquinaria. All reads filter on activo=true; deletes are
// soft so historical quotes keep their references.

import (
	"context"

	"cotizador/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ─── Empleados ───────────────────────────────────────────────────────────────

type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	List(ctx context.Context) ([]model.Empleado, error)
	Update(ctx context.Context, e *model.Empleado) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *empleadoRepo) List(ctx context.Context) ([]model.Empleado, error) {
	var empleados []model.Empleado
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre").Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).Where("id = ?", id).Update("activo", false).Error
}

// ─── Productos ───────────────────────────────────────────────────────────────

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context, categoria string) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, categoria string) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).Where("activo = true")
	if categoria != "" {
		q = q.Where("categoria = ?", categoria)
	}
	err := q.Order("nombre").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

// ─── Maquinaria ──────────────────────────────────────────────────────────────

type MaquinariaRepository interface {
	Create(ctx context.Context, m *model.Maquinaria) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Maquinaria, error)
	List(ctx context.Context) ([]model.Maquinaria, error)
	Update(ctx context.Context, m *model.Maquinaria) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type maquinariaRepo struct{ db *gorm.DB }

func NewMaquinariaRepository(db *gorm.DB) MaquinariaRepository { return &maquinariaRepo{db: db} }

func (r *maquinariaRepo) Create(ctx context.Context, m *model.Maquinaria) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *maquinariaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Maquinaria, error) {
	var m model.Maquinaria
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *maquinariaRepo) List(ctx context.Context) ([]model.Maquinaria, error) {
	var maquinas []model.Maquinaria
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre").Find(&maquinas).Error
	return maquinas, err
}

func (r *maquinariaRepo) Update(ctx context.Context, m *model.Maquinaria) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *maquinariaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Maquinaria{}).Where("id = ?", id).Update("activo", false).Error
}
