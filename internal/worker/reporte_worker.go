package worker

// reporte_worker.go
// Processes corte-report jobs from QueueReportes: renders the PDF summary of
// a processed corte and hands it to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kikehil/dental/internal/infra"
	"github.com/kikehil/dental/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ReporteWorker struct {
	cortes        repository.CorteRepository
	dispatcher    *Dispatcher
	pdfPath       string
	destinatario  string
	nombreClinica string
}

func NewReporteWorker(cortes repository.CorteRepository, dispatcher *Dispatcher, pdfPath, destinatario, nombreClinica string) *ReporteWorker {
	return &ReporteWorker{
		cortes:        cortes,
		dispatcher:    dispatcher,
		pdfPath:       pdfPath,
		destinatario:  destinatario,
		nombreClinica: nombreClinica,
	}
}

func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return nil // malformed payloads are not retryable
	}

	id, err := uuid.Parse(payload.CorteID)
	if err != nil {
		log.Error().Str("corte_id", payload.CorteID).Msg("reporte_worker: invalid corte_id")
		return nil
	}

	corte, err := w.cortes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("reporte_worker: find corte %s: %w", id, err)
	}

	pdfFile, err := infra.GenerateCortePDF(corte, w.pdfPath, w.nombreClinica)
	if err != nil {
		return fmt.Errorf("reporte_worker: generate pdf: %w", err)
	}
	log.Info().Str("corte_id", payload.CorteID).Str("pdf", pdfFile).Msg("reporte_worker: pdf generated")

	if w.destinatario == "" {
		return nil
	}

	hora := "saldo inicial"
	if corte.Hora != nil {
		hora = *corte.Hora
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: w.destinatario,
		Subject: fmt.Sprintf("Corte de caja %s — %s", corte.Fecha.Format("02/01/2006"), hora),
		Body: fmt.Sprintf(
			"Se procesó el corte de caja de las %s.\nSaldo declarado: $%s\nDiferencia: $%s\nEl detalle completo va adjunto.",
			hora, corte.SaldoFinal.StringFixed(2), corte.Diferencia.StringFixed(2)),
		PDFPath: pdfFile,
	})
}
