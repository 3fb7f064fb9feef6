package handler

import (
	"net/http"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/middleware"
	"github.com/kikehil/dental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct {
	svc  service.CajaService
	auth service.AuthService
}

func NewCajaHandler(svc service.CajaService, auth service.AuthService) *CajaHandler {
	return &CajaHandler{svc: svc, auth: auth}
}

// Estado godoc
// @Summary Estado actual de la sesión de caja
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.EstadoSesionResponse
// @Router /v1/caja/estado [get]
func (h *CajaHandler) Estado(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Resumen de la sesión en curso (ventas desde el último corte)
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ResumenSesionResponse
// @Router /v1/caja/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AbrirSesion godoc
// @Summary Registra el saldo inicial del día
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SaldoInicialRequest true "Saldo inicial"
// @Success 201 {object} dto.CorteResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/saldo-inicial [post]
func (h *CajaHandler) AbrirSesion(c *gin.Context) {
	var req dto.SaldoInicialRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AbrirSesion(c.Request.Context(), req.SaldoInicial, usuarioIDDe(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ProcesarCorte godoc
// @Summary Realiza un corte programado (14:00 / 18:00)
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CorteRequest true "Datos del corte"
// @Success 201 {object} dto.CorteResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/corte [post]
func (h *CajaHandler) ProcesarCorte(c *gin.Context) {
	var req dto.CorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ProcesarCorte(c.Request.Context(), service.ProcesarCorteInput{
		Hora:          req.Hora,
		SaldoFinal:    req.SaldoFinal,
		Observaciones: req.Observaciones,
		UsuarioID:     usuarioIDDe(c),
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CorteManual godoc
// @Summary Realiza un corte fuera de horario (requiere contraseña de administrador)
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CorteManualRequest true "Datos del corte manual"
// @Success 201 {object} dto.CorteResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/caja/corte-manual [post]
func (h *CajaHandler) CorteManual(c *gin.Context) {
	var req dto.CorteManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	// La contraseña de admin se re-verifica siempre, aunque quien llama ya
	// tenga sesión: el corte manual es una operación elevada.
	if err := h.auth.VerificarPasswordAdmin(c.Request.Context(), req.PasswordAdmin); err != nil {
		writeServiceError(c, err)
		return
	}
	resp, err := h.svc.ProcesarCorte(c.Request.Context(), service.ProcesarCorteInput{
		Hora:          req.Hora,
		SaldoFinal:    req.SaldoFinal,
		Observaciones: req.Observaciones,
		UsuarioID:     usuarioIDDe(c),
		EsManual:      true,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Historial godoc
// @Summary Cortes registrados de un día (hoy si no se indica fecha)
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param fecha query string false "Fecha YYYY-MM-DD"
// @Success 200 {array} dto.CorteResponse
// @Router /v1/caja/historial [get]
func (h *CajaHandler) Historial(c *gin.Context) {
	resp, err := h.svc.Historial(c.Request.Context(), c.Query("fecha"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// usuarioIDDe extracts the authenticated user's ID from the JWT claims,
// returning nil when absent or malformed.
func usuarioIDDe(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	if uid, err := uuid.Parse(claims.UserID); err == nil {
		return &uid
	}
	return nil
}
