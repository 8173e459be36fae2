package repository

import (
	"context"
	"fmt"
	"time"

	"cotizador/internal/dto"
	"cotizador/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CotizacionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error)
	List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error)
	ListAll(ctx context.Context) ([]model.Cotizacion, error)
	Update(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	ReplaceItemsYZonas(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	UpdateTotales(ctx context.Context, id uuid.UUID, subtotal, montoMargen, montoRetencion, costoTransporte, total decimal.Decimal) error
	UpdatePDF(ctx context.Context, id uuid.UUID, estadoPDF string, pdfPath *string, lastError *string) error
	ScheduleRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, lastError string) error
	ListPendingPDFRetries(ctx context.Context, before time.Time, limit int) ([]model.Cotizacion, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	NextNumero(ctx context.Context, tx *gorm.DB, anio int) (string, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type cotizacionRepo struct{ db *gorm.DB }

func NewCotizacionRepository(db *gorm.DB) CotizacionRepository { return &cotizacionRepo{db: db} }

func (r *cotizacionRepo) DB() *gorm.DB { return r.db }

func (r *cotizacionRepo) Create(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *cotizacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cotizacion, error) {
	var c model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Items").
		Preload("Zonas.Zona").
		Preload("Zonas.Asignaciones").
		First(&c, id).Error
	return &c, err
}

func (r *cotizacionRepo) List(ctx context.Context, filter dto.CotizacionFilter) ([]model.Cotizacion, int64, error) {
	var cotizaciones []model.Cotizacion
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("activo = true")

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Anio > 0 {
		q = q.Where("numero LIKE ?", fmt.Sprintf("COT-%d-%%", filter.Anio))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Cliente").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&cotizaciones).Error
	return cotizaciones, total, err
}

// ListAll returns every active quote with full detail — used by cmd/recalc
// and the Excel export.
func (r *cotizacionRepo) ListAll(ctx context.Context) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Items").
		Preload("Zonas.Zona").
		Preload("Zonas.Asignaciones").
		Where("activo = true").
		Order("numero").
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) Update(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	return tx.WithContext(ctx).Save(c).Error
}

// ReplaceItemsYZonas swaps the child collections wholesale. Quotes are
// recomputed as a snapshot, never patched, so a full replace is the honest
// persistence of that model.
func (r *cotizacionRepo) ReplaceItemsYZonas(ctx context.Context, tx *gorm.DB, c *model.Cotizacion) error {
	db := tx.WithContext(ctx)
	if err := db.Where("cotizacion_id = ?", c.ID).Delete(&model.CotizacionItem{}).Error; err != nil {
		return err
	}
	var zonaIDs []uuid.UUID
	if err := db.Model(&model.CotizacionZona{}).Where("cotizacion_id = ?", c.ID).Pluck("id", &zonaIDs).Error; err != nil {
		return err
	}
	if len(zonaIDs) > 0 {
		if err := db.Where("cotizacion_zona_id IN ?", zonaIDs).Delete(&model.AsignacionTransporte{}).Error; err != nil {
			return err
		}
	}
	if err := db.Where("cotizacion_id = ?", c.ID).Delete(&model.CotizacionZona{}).Error; err != nil {
		return err
	}
	for i := range c.Items {
		c.Items[i].ID = uuid.Nil
		c.Items[i].CotizacionID = c.ID
	}
	for i := range c.Zonas {
		c.Zonas[i].ID = uuid.Nil
		c.Zonas[i].CotizacionID = c.ID
	}
	if len(c.Items) > 0 {
		if err := db.Create(&c.Items).Error; err != nil {
			return err
		}
	}
	if len(c.Zonas) > 0 {
		if err := db.Create(&c.Zonas).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *cotizacionRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Update("estado", estado).Error
}

// UpdateTotales persists a recomputed snapshot without touching children —
// used by cmd/recalc after rerunning the pricing pipeline.
func (r *cotizacionRepo) UpdateTotales(ctx context.Context, id uuid.UUID, subtotal, montoMargen, montoRetencion, costoTransporte, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subtotal":         subtotal,
		"monto_margen":     montoMargen,
		"monto_retencion":  montoRetencion,
		"costo_transporte": costoTransporte,
		"total":            total,
	}).Error
}

func (r *cotizacionRepo) UpdatePDF(ctx context.Context, id uuid.UUID, estadoPDF string, pdfPath *string, lastError *string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado_pdf": estadoPDF,
		"pdf_path":   pdfPath,
		"last_error": lastError,
	}).Error
}

func (r *cotizacionRepo) ScheduleRetry(ctx context.Context, id uuid.UUID, retryCount int, nextRetryAt time.Time, lastError string) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Updates(map[string]interface{}{
		"estado_pdf":    "pendiente",
		"retry_count":   retryCount,
		"next_retry_at": nextRetryAt,
		"last_error":    lastError,
	}).Error
}

func (r *cotizacionRepo) ListPendingPDFRetries(ctx context.Context, before time.Time, limit int) ([]model.Cotizacion, error) {
	var cotizaciones []model.Cotizacion
	err := r.db.WithContext(ctx).
		Where("estado_pdf = 'pendiente' AND next_retry_at IS NOT NULL AND next_retry_at <= ?", before).
		Limit(limit).
		Find(&cotizaciones).Error
	return cotizaciones, err
}

func (r *cotizacionRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cotizacion{}).Where("id = ?", id).Update("activo", false).Error
}

// NextNumero produces the next COT-YYYY-NNN identifier, zero padded,
// resetting each year. Runs inside the create transaction so concurrent
// creates cannot take the same number.
func (r *cotizacionRepo) NextNumero(ctx context.Context, tx *gorm.DB, anio int) (string, error) {
	prefijo := fmt.Sprintf("COT-%d-", anio)
	// Advisory lock keyed on the year serializes number assignment across
	// concurrent creates without locking the whole table.
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", int64(anio)).Error; err != nil {
		return "", err
	}
	var max int
	err := tx.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SPLIT_PART(numero, '-', 3) AS INT)), 0)
		FROM cotizaciones
		WHERE numero LIKE ?`, prefijo+"%").Scan(&max).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefijo, max+1), nil
}
