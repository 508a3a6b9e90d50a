package handler

import (
	"net/http"

	"parquetec/internal/apierror"
	"parquetec/internal/dto"
	"parquetec/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SoftwareHandler struct{ svc service.SoftwareService }

func NewSoftwareHandler(svc service.SoftwareService) *SoftwareHandler {
	return &SoftwareHandler{svc: svc}
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *SoftwareHandler) Crear(c *gin.Context) {
	var req dto.CrearSoftwareRequest
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

// Listar devuelve los títulos con su estado derivado (activo, sin uso,
// vencido, por vencer) calculado al momento de la consulta.
func (h *SoftwareHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar software"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SoftwareHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
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

func (h *SoftwareHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarSoftwareRequest
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

func (h *SoftwareHandler) Eliminar(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SoftwareHandler) CrearLicencia(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearLicenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearLicencia(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SoftwareHandler) EliminarLicencia(c *gin.Context) {
	id, ok := parseUUID(c, "licenciaId")
	if !ok {
		return
	}
	if err := h.svc.EliminarLicencia(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AsignarLicencia vincula una licencia a un equipo activo. Para licencias no
// compartidas respeta el cupo definido en cantidad.
func (h *SoftwareHandler) AsignarLicencia(c *gin.Context) {
	id, ok := parseUUID(c, "licenciaId")
	if !ok {
		return
	}
	var req dto.AsignarLicenciaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AsignarLicencia(c.Request.Context(), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SoftwareHandler) DesasignarLicencia(c *gin.Context) {
	id, ok := parseUUID(c, "licenciaId")
	if !ok {
		return
	}
	if err := h.svc.DesasignarLicencia(c.Request.Context(), id, c.Param("idEquipo")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
