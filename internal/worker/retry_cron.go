package worker

// retry_cron.go
// Background goroutine that periodically re-enqueues PDF generation for
// cotizaciones stuck in estado_pdf='pendiente' with a next_retry_at in the
// past. Re-enqueueing (instead of generating inline) keeps all rendering on
// the worker pool, where the per-job retry accounting lives.

import (
	"context"
	"time"

	"cotizador/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	CotizacionRepo repository.CotizacionRepository
	Dispatcher     *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries cotizaciones due for a PDF retry, and pushes them back onto the
// queue. It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	cotizaciones, err := cfg.CotizacionRepo.ListPendingPDFRetries(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(cotizaciones) == 0 {
		return
	}

	log.Info().Int("count", len(cotizaciones)).Msg("retry_cron: re-enqueueing pending cotizaciones")

	for i := range cotizaciones {
		c := &cotizaciones[i]
		payload := PDFJobPayload{CotizacionID: c.ID.String()}
		if err := cfg.Dispatcher.EnqueuePDF(ctx, payload); err != nil {
			log.Error().Err(err).Str("numero", c.Numero).Msg("retry_cron: failed to enqueue retry")
			continue
		}
		log.Info().
			Str("numero", c.Numero).
			Int("retry_count", c.RetryCount).
			Msg("retry_cron: PDF retry enqueued")
	}
}
