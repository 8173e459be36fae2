package handler

import (
	"net/http"

	"cotizador/internal/apierror"
	"cotizador/internal/dto"
	"cotizador/internal/service"

	"github.com/gin-gonic/gin"
)

type ZonasHandler struct{ svc service.ZonaService }

func NewZonasHandler(svc service.ZonaService) *ZonasHandler {
	return &ZonasHandler{svc: svc}
}

// Crear godoc
// @Summary Crear zona de transporte
// @Tags zonas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearZonaRequest true "Datos de la zona"
// @Success 201 {object} dto.ZonaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/zonas [post]
func (h *ZonasHandler) Crear(c *gin.Context) {
	var req dto.CrearZonaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ZonasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar zonas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ZonasHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.CrearZonaRequest
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

func (h *ZonasHandler) Eliminar(c *gin.Context) {
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
