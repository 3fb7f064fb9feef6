package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kikehil/dental/internal/dto"
	"github.com/kikehil/dental/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	preciosCacheKey = "catalogo:precios"
	preciosCacheTTL = 10 * time.Minute
)

// PreciosHandler sirve la lista de precios pública del mostrador.
// Sin autenticación y sin efectos secundarios; cacheada en Redis para que la
// pantalla de recepción no golpee la base en cada consulta.
type PreciosHandler struct {
	servicios repository.ServicioRepository
	productos repository.ProductoRepository
	rdb       *redis.Client
}

func NewPreciosHandler(servicios repository.ServicioRepository, productos repository.ProductoRepository, rdb *redis.Client) *PreciosHandler {
	return &PreciosHandler{servicios: servicios, productos: productos, rdb: rdb}
}

// ListaPrecios godoc
// @Summary Lista de precios vigente (sin autenticación)
// @Tags precios
// @Produce json
// @Success 200 {object} dto.ListaPreciosResponse
// @Router /v1/precios [get]
func (h *PreciosHandler) ListaPrecios(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, preciosCacheKey).Bytes(); err == nil {
			var resp dto.ListaPreciosResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	servicios, err := h.servicios.List(ctx, true)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	productos, err := h.productos.List(ctx, true)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	resp := dto.ListaPreciosResponse{
		Items:       make([]dto.PrecioItem, 0, len(servicios)+len(productos)),
		Actualizado: time.Now().UTC().Format(time.RFC3339),
	}
	for _, s := range servicios {
		resp.Items = append(resp.Items, dto.PrecioItem{
			Tipo: "servicio", ID: s.ID.String(), Nombre: s.Nombre, Precio: s.Precio,
		})
	}
	for _, p := range productos {
		resp.Items = append(resp.Items, dto.PrecioItem{
			Tipo: "producto", ID: p.ID.String(), Nombre: p.Nombre, Precio: p.Precio,
		})
	}

	// Poblar cache — best effort, los errores se ignoran.
	if h.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = h.rdb.Set(context.Background(), preciosCacheKey, b, preciosCacheTTL).Err()
		}
	}

	c.JSON(http.StatusOK, resp)
}
