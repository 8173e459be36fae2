package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"cotizador/internal/apierror"
	"cotizador/internal/dto"
	"cotizador/internal/middleware"
	"cotizador/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CotizacionesHandler struct{ svc service.CotizacionService }

func NewCotizacionesHandler(svc service.CotizacionService) *CotizacionesHandler {
	return &CotizacionesHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear cotización
// @Description  Crea una cotización: calcula el desglose completo (subtotal, margen, retención, transporte), asigna el número COT-YYYY-NNN y despacha la generación asíncrona del PDF.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearCotizacionRequest true "Detalle de la cotización"
// @Success      201  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones [post]
func (h *CotizacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Crear(c.Request.Context(), usuarioID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Preview godoc
// @Summary      Previsualizar cotización
// @Description  Calcula el desglose sin persistir nada. Misma lógica de cálculo que la creación — lo que muestra el preview es exactamente lo que se guardaría.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PreviewCotizacionRequest true "Items y configuración"
// @Success      200  {object} dto.PreviewCotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/preview [post]
func (h *CotizacionesHandler) Preview(c *gin.Context) {
	var req dto.PreviewCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Preview(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar cotización
// @Description  Reemplaza items y zonas, recalcula el desglose completo y regenera el PDF.
// @Tags         cotizaciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID de la cotización"
// @Param        body body dto.CrearCotizacionRequest true "Detalle actualizado"
// @Success      200  {object} dto.CotizacionResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cotizaciones/{id} [put]
func (h *CotizacionesHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CrearCotizacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) Obtener(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar cotizaciones
// @Tags         cotizaciones
// @Produce      json
// @Security     BearerAuth
// @Param        estado     query string false "borrador | enviada | aprobada | rechazada | all"
// @Param        cliente_id query string false "UUID del cliente"
// @Param        anio       query int    false "Año (COT-YYYY-…)"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.CotizacionListResponse
// @Router       /v1/cotizaciones [get]
func (h *CotizacionesHandler) Listar(c *gin.Context) {
	var filter dto.CotizacionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cotizaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CotizacionesHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CotizacionesHandler) Eliminar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// DescargarPDF godoc
// @Summary      Descargar PDF de la cotización
// @Description  Sirve el documento generado por el worker. 409 si aún está pendiente o falló.
// @Tags         cotizaciones
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la cotización"
// @Success      200
// @Failure      409 {object} apierror.APIError
// @Router       /v1/cotizaciones/{id}/pdf [get]
func (h *CotizacionesHandler) DescargarPDF(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	path, err := h.svc.ObtenerPDFPath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// ExportarExcel godoc
// @Summary      Exportar cotizaciones a Excel
// @Tags         cotizaciones
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Router       /v1/cotizaciones/export [get]
func (h *CotizacionesHandler) ExportarExcel(c *gin.Context) {
	f, err := h.svc.ExportarExcel(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al exportar cotizaciones"))
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("cotizaciones_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
