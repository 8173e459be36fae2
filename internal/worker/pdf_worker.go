package worker

// pdf_worker.go
// Processes quote-document jobs from QueuePDF: renders the A4 quote PDF and
// advances the cotización's estado_pdf lifecycle
// (pendiente → generado | error). Failed generations are rescheduled with
// exponential backoff; after MaxPDFRetries the quote is parked in estado_pdf
// "error" and the job lands in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cotizador/internal/infra"
	"cotizador/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxPDFRetries is the total number of generation attempts (first try
// included) before a quote is parked in estado_pdf="error".
const MaxPDFRetries = 5

// PDFJobPayload is the job envelope sent to QueuePDF.
type PDFJobPayload struct {
	CotizacionID string  `json:"cotizacion_id"`
	EmailCliente *string `json:"email_cliente,omitempty"`
}

// PDFWorker renders quote documents and drives the estado_pdf lifecycle.
type PDFWorker struct {
	repo           repository.CotizacionRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
}

func NewPDFWorker(repo repository.CotizacionRepository, dispatcher *Dispatcher, rdb *redis.Client, pdfStoragePath string) *PDFWorker {
	return &PDFWorker{
		repo:           repo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single PDF job:
//  1. Parse PDFJobPayload from the job envelope
//  2. Fetch the Cotizacion (with items and zones) from DB
//  3. Render the PDF with up to 3 in-process attempts
//  4. On success: estado_pdf="generado", optionally enqueue the email job
//  5. On failure: schedule a cron retry with backoff, or park + DLQ
func (w *PDFWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload PDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return
	}

	cotizacionID, err := uuid.Parse(payload.CotizacionID)
	if err != nil {
		log.Error().Str("cotizacion_id", payload.CotizacionID).Msg("pdf_worker: invalid cotizacion_id")
		return
	}

	cotizacion, err := w.repo.FindByID(ctx, cotizacionID)
	if err != nil {
		log.Error().Err(err).Str("cotizacion_id", payload.CotizacionID).Msg("pdf_worker: cotización not found")
		return
	}

	var pdfPath string
	genErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateCotizacionPDF(cotizacion, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("numero", cotizacion.Numero).
				Msg("pdf_worker: generation attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if genErr != nil {
		w.scheduleOrPark(ctx, cotizacion.ID, cotizacion.Numero, cotizacion.RetryCount, genErr, raw)
		return
	}

	if err := w.repo.UpdatePDF(ctx, cotizacion.ID, "generado", &pdfPath, nil); err != nil {
		log.Error().Err(err).Str("numero", cotizacion.Numero).Msg("pdf_worker: failed to persist pdf path")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("numero", cotizacion.Numero).Msg("pdf_worker: PDF generated")

	if payload.EmailCliente != nil && *payload.EmailCliente != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.EmailCliente,
			Subject: fmt.Sprintf("Cotización %s — %s", cotizacion.Numero, cotizacion.NombreEvento),
			Body: fmt.Sprintf("Adjunto encontrarás la cotización %s para tu evento.\nTotal: $%s",
				cotizacion.Numero, cotizacion.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.EmailCliente).Msg("pdf_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.EmailCliente).Msg("pdf_worker: email job enqueued")
		}
	}
}

// scheduleOrPark records the failure: either schedules a cron retry with
// exponential backoff or, past MaxPDFRetries, parks the quote in "error" and
// moves the job to the DLQ for manual inspection.
func (w *PDFWorker) scheduleOrPark(ctx context.Context, id uuid.UUID, numero string, retryCount int, genErr error, raw json.RawMessage) {
	retryCount++
	errMsg := genErr.Error()

	if retryCount >= MaxPDFRetries {
		_ = w.repo.UpdatePDF(ctx, id, "error", nil, &errMsg)
		log.Error().
			Str("numero", numero).
			Int("retries", retryCount).
			Msg("pdf_worker: max retries exceeded, moving to error/DLQ")
		SendToDLQ(ctx, w.rdb, QueuePDF, "pdf", raw,
			fmt.Sprintf("max retries (%d) exceeded: %s", MaxPDFRetries, errMsg), retryCount)
		return
	}

	nextRetry := time.Now().Add(computeRetryBackoff(retryCount))
	if err := w.repo.ScheduleRetry(ctx, id, retryCount, nextRetry, errMsg); err != nil {
		log.Error().Err(err).Str("numero", numero).Msg("pdf_worker: failed to schedule retry")
		return
	}
	log.Warn().
		Str("numero", numero).
		Int("retry_count", retryCount).
		Time("next_retry_at", nextRetry).
		Msg("pdf_worker: generation failed, scheduled next attempt")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			// 1s, 2s … (exponential backoff)
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff returns the cron-level backoff for the nth retry:
// 1m, 2m, 4m, … capped at 30m.
func computeRetryBackoff(retryCount int) time.Duration {
	d := time.Duration(1<<uint(retryCount-1)) * time.Minute
	if d > 30*time.Minute {
		d = 30 * time.Minute
	}
	return d
}
