package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// WebhookNotifier envía notificaciones JSON (ventas registradas, cortes
// realizados) al endpoint externo configurado, protegido con circuit breaker
// para que una caída del receptor nunca bloquee el flujo del POS.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	breaker *CircuitBreaker
}

// NewWebhookNotifier crea el notificador. Si url está vacía las llamadas
// Notify* son no-op (el webhook es opcional).
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: 5 * time.Second},
		breaker: NewCircuitBreaker(DefaultCBConfig()),
	}
}

// Enabled indica si hay un endpoint configurado.
func (n *WebhookNotifier) Enabled() bool { return n != nil && n.url != "" }

// BreakerState expone el estado del circuit breaker para el health check.
func (n *WebhookNotifier) BreakerState() string {
	if n == nil || n.breaker == nil {
		return "disabled"
	}
	return n.breaker.State().String()
}

// NotifyVenta publica el evento de una venta registrada.
func (n *WebhookNotifier) NotifyVenta(ctx context.Context, payload any) {
	n.notify(ctx, "venta.registrada", payload)
}

// NotifyCorte publica el evento de un corte de caja realizado.
func (n *WebhookNotifier) NotifyCorte(ctx context.Context, payload any) {
	n.notify(ctx, "corte.realizado", payload)
}

func (n *WebhookNotifier) notify(ctx context.Context, evento string, payload any) {
	if !n.Enabled() {
		return
	}

	body, err := json.Marshal(map[string]any{
		"evento":    evento,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"datos":     payload,
	})
	if err != nil {
		log.Error().Err(err).Str("evento", evento).Msg("webhook: error serializando payload")
		return
	}

	err = n.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return fmt.Errorf("webhook respondió %d", resp.StatusCode)
		}
		return nil
	})

	if err == ErrCircuitOpen {
		log.Warn().Str("evento", evento).Msg("webhook: circuito abierto, notificación descartada")
		return
	}
	if err != nil {
		log.Warn().Err(err).Str("evento", evento).Msg("webhook: fallo al notificar")
	}
}
