package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"parquetec/internal/apierror"
	"parquetec/internal/dto"
	"parquetec/internal/infra"
	"parquetec/internal/service"

	"github.com/gin-gonic/gin"
)

type EquiposHandler struct {
	svc      service.EquipoService
	imagenes *infra.ImagenStore
}

func NewEquiposHandler(svc service.EquipoService, imagenes *infra.ImagenStore) *EquiposHandler {
	return &EquiposHandler{svc: svc, imagenes: imagenes}
}

// guardarImagen extracts the optional "imagen" file from a multipart request
// and stores it, returning the public path ("" when no file was sent).
func (h *EquiposHandler) guardarImagen(c *gin.Context) (string, bool) {
	file, err := c.FormFile("imagen")
	if err != nil {
		return "", true // field absent
	}
	ruta, err := h.imagenes.Guardar(c, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return "", false
	}
	return ruta, true
}

func esMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// Crear godoc
// @Summary      Registrar un equipo
// @Description  Crea un equipo con sus auxiliares iniciales. Acepta JSON o multipart (campos de formulario + imagen); los subcampos auxiliares y componentesAdicionales pueden llegar como JSON stringificado.
// @Tags         equipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearEquipoRequest true "Datos del equipo"
// @Success      201  {object} dto.EquipoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/equipos [post]
func (h *EquiposHandler) Crear(c *gin.Context) {
	var req dto.CrearEquipoRequest
	var imagenPath string
	if esMultipart(c) {
		if !bindFormAndValidate(c, &req) {
			return
		}
		ruta, ok := h.guardarImagen(c)
		if !ok {
			return
		}
		imagenPath = ruta
	} else if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Crear(c.Request.Context(), req, imagenPath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EquiposHandler) Listar(c *gin.Context) {
	var filter dto.EquipoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar equipos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EquiposHandler) ObtenerPorID(c *gin.Context) {
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary      Actualizar un equipo
// @Description  Actualiza los campos del equipo dentro de una transacción que primero guarda un snapshot del estado previo en el historial. Si el payload trae auxiliares, el conjunto completo de auxiliares del equipo se reemplaza.
// @Tags         equipos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "ID del equipo"
// @Param        body body dto.ActualizarEquipoRequest true "Campos a actualizar"
// @Success      200  {object} dto.EquipoResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/equipos/{id} [put]
func (h *EquiposHandler) Actualizar(c *gin.Context) {
	id := c.Param("id")
	var req dto.ActualizarEquipoRequest
	var imagenPath string
	if esMultipart(c) {
		if !bindFormAndValidate(c, &req) {
			return
		}
		ruta, ok := h.guardarImagen(c)
		if !ok {
			return
		}
		imagenPath = ruta
	} else if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Actualizar(c.Request.Context(), id, req, imagenPath)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary      Eliminar un equipo
// @Description  Borra el equipo y sus auxiliares. Antes de borrar, guarda snapshots de eliminación de todos ellos en el historial, dentro de la misma transacción.
// @Tags         equipos
// @Security     BearerAuth
// @Param        id path string true "ID del equipo"
// @Success      200 {object} map[string]string
// @Failure      404 {object} apierror.APIError
// @Router       /v1/equipos/{id} [delete]
func (h *EquiposHandler) Eliminar(c *gin.Context) {
	if err := h.svc.Eliminar(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "Equipo eliminado correctamente"})
}

// Historial returns the equipment's snapshot trail, newest first.
func (h *EquiposHandler) Historial(c *gin.Context) {
	items, err := h.svc.Historial(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar historial"))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *EquiposHandler) HistorialAuxiliares(c *gin.Context) {
	items, err := h.svc.HistorialAuxiliares(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar historial de auxiliares"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Reporte streams the equipment's hoja de vida as a PDF attachment.
func (h *EquiposHandler) Reporte(c *gin.Context) {
	ruta, err := h.svc.GenerarReporte(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(ruta, filepath.Base(ruta))
}
