package handler

import (
	"net/http"
	"strconv"

	"parquetec/internal/apierror"
	"parquetec/internal/dto"
	"parquetec/internal/service"

	"github.com/gin-gonic/gin"
)

type AuxiliaresHandler struct{ svc service.AuxiliarService }

func NewAuxiliaresHandler(svc service.AuxiliarService) *AuxiliaresHandler {
	return &AuxiliaresHandler{svc: svc}
}

func auxiliarID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(id), true
}

func (h *AuxiliaresHandler) Crear(c *gin.Context) {
	var req dto.CrearAuxiliarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuxiliaresHandler) Listar(c *gin.Context) {
	var filter dto.AuxiliarFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar auxiliares"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuxiliaresHandler) ObtenerPorID(c *gin.Context) {
	id, ok := auxiliarID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuxiliaresHandler) Actualizar(c *gin.Context) {
	id, ok := auxiliarID(c)
	if !ok {
		return
	}
	var req dto.ActualizarAuxiliarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuxiliaresHandler) Desactivar(c *gin.Context) {
	id, ok := auxiliarID(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Restaurar reactiva un auxiliar dado de baja. Falla con 400 si el equipo al
// que apunta quedó inactivo.
func (h *AuxiliaresHandler) Restaurar(c *gin.Context) {
	id, ok := auxiliarID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Restaurar(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuxiliaresHandler) Reasignar(c *gin.Context) {
	id, ok := auxiliarID(c)
	if !ok {
		return
	}
	var req dto.ReasignarAuxiliarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Reasignar(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
