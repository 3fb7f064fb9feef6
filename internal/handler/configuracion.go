package handler

import (
	"net/http"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

// ObtenerCortes godoc
// @Summary Horarios de corte vigentes
// @Tags configuracion
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ConfiguracionCortesResponse
// @Router /v1/configuracion/cortes [get]
func (h *ConfiguracionHandler) ObtenerCortes(c *gin.Context) {
	resp, err := h.svc.ObtenerCortes(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ActualizarCortes godoc
// @Summary Actualiza los horarios de corte (solo admin)
// @Tags configuracion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ActualizarCortesRequest true "Nuevos horarios HH:MM"
// @Success 200 {object} dto.ConfiguracionCortesResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/configuracion/cortes [put]
func (h *ConfiguracionHandler) ActualizarCortes(c *gin.Context) {
	var req dto.ActualizarCortesRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCortes(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
